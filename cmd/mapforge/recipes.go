package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/mapforge/internal/builders"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "recipes",
		Short: "List the named recipes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range builders.RecipeNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})
}
