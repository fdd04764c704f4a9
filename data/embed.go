// Package data provides embedded level templates and utilities for loading them.
package data

import "embed"

// dataFS embeds all YAML files from the data directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS

// FS returns the embedded filesystem containing the templates.
func FS() embed.FS {
	return dataFS
}
