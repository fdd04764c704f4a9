package data

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Template is a hand-authored block of tiles. Each row is one line of glyphs.
type Template struct {
	Name       string   `yaml:"name"`
	Rows       []string `yaml:"rows"`
	MinDepth   int      `yaml:"min_depth"`
	MaxDepth   int      `yaml:"max_depth"`
	Horizontal string   `yaml:"horizontal"` // left, center, right (sections only)
	Vertical   string   `yaml:"vertical"`   // top, center, bottom (sections only)
}

// Width returns the number of glyphs per row.
func (t *Template) Width() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return utf8.RuneCountInString(t.Rows[0])
}

// Height returns the number of rows.
func (t *Template) Height() int {
	return len(t.Rows)
}

// Glyphs returns the template as a row-major rune slice.
func (t *Template) Glyphs() []rune {
	out := make([]rune, 0, t.Width()*t.Height())
	for _, row := range t.Rows {
		out = append(out, []rune(row)...)
	}
	return out
}

// Prefabs holds every template in prefabs.yaml.
type Prefabs struct {
	Levels   []Template `yaml:"levels"`
	Sections []Template `yaml:"sections"`
	Vaults   []Template `yaml:"vaults"`
}

// Level returns the named level template, or nil.
func (p *Prefabs) Level(name string) *Template {
	return find(p.Levels, name)
}

// Section returns the named section template, or nil.
func (p *Prefabs) Section(name string) *Template {
	return find(p.Sections, name)
}

func find(ts []Template, name string) *Template {
	for i := range ts {
		if ts[i].Name == name {
			return &ts[i]
		}
	}
	return nil
}

// ParsePrefabs decodes and validates template YAML.
func ParsePrefabs(content []byte) (*Prefabs, error) {
	var p Prefabs
	if err := yaml.Unmarshal(content, &p); err != nil {
		return nil, fmt.Errorf("failed to parse prefab YAML: %w", err)
	}
	for _, group := range [][]Template{p.Levels, p.Sections, p.Vaults} {
		for _, t := range group {
			if err := validate(&t); err != nil {
				return nil, err
			}
		}
	}
	return &p, nil
}

func validate(t *Template) error {
	if t.Height() == 0 {
		return fmt.Errorf("template %q has no rows", t.Name)
	}
	w := t.Width()
	for i, row := range t.Rows {
		if n := utf8.RuneCountInString(row); n != w {
			return fmt.Errorf("template %q row %d is %d wide, want %d", t.Name, i, n, w)
		}
	}
	if t.MaxDepth < t.MinDepth {
		return fmt.Errorf("template %q has max_depth %d below min_depth %d", t.Name, t.MaxDepth, t.MinDepth)
	}
	return nil
}

// LoadPrefabs reads the embedded prefabs.yaml.
func LoadPrefabs() (*Prefabs, error) {
	content, err := dataFS.ReadFile("prefabs.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded file prefabs.yaml: %w", err)
	}
	return ParsePrefabs(content)
}

// MustLoadPrefabs loads the templates, panicking on error.
func MustLoadPrefabs() *Prefabs {
	p, err := LoadPrefabs()
	if err != nil {
		panic(err)
	}
	return p
}
