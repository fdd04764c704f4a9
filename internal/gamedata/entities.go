package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// EntityDef defines something a level can spawn.
type EntityDef struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"` // Single character for rendering
	Color string `yaml:"color"` // Hex color code
	Kind  string `yaml:"kind"`  // monster, npc, item, trap, prop or door
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EntityDef) GlyphRune() rune {
	for _, r := range e.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color.
func (e *EntityDef) TCellColor() tcell.Color {
	return colorOr(e.Color, tcell.ColorWhite)
}

// EntitiesFile represents the structure of entities.yaml.
type EntitiesFile struct {
	Entities []EntityDef `yaml:"entities"`
}

// EntityRegistry looks entity definitions up by spawn key.
type EntityRegistry struct {
	byKey map[string]*EntityDef
	all   []EntityDef
}

// NewEntityRegistry indexes definitions. Duplicate keys are an error.
func NewEntityRegistry(defs []EntityDef) (*EntityRegistry, error) {
	r := &EntityRegistry{byKey: make(map[string]*EntityDef, len(defs)), all: defs}
	for i := range defs {
		if _, dup := r.byKey[defs[i].Key]; dup {
			return nil, fmt.Errorf("duplicate entity key %q", defs[i].Key)
		}
		r.byKey[defs[i].Key] = &defs[i]
	}
	return r, nil
}

// LoadEntityRegistry loads the embedded entities.yaml.
func LoadEntityRegistry() (*EntityRegistry, error) {
	file, err := Load[EntitiesFile]("entities.yaml")
	if err != nil {
		return nil, err
	}
	return NewEntityRegistry(file.Entities)
}

// MustLoadEntityRegistry loads the registry, panicking on error.
func MustLoadEntityRegistry() *EntityRegistry {
	r, err := LoadEntityRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the definition for key, or nil.
func (r *EntityRegistry) Get(key string) *EntityDef {
	return r.byKey[key]
}

// All returns every definition.
func (r *EntityRegistry) All() []EntityDef {
	return r.all
}

// Count returns the number of definitions.
func (r *EntityRegistry) Count() int {
	return len(r.all)
}
