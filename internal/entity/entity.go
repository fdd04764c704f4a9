// Package entity turns spawn requests from the level builders into concrete
// entities placed on the map.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mapforge/internal/gamedata"
)

// Entity is a spawned thing on a generated level.
type Entity struct {
	Def  *gamedata.EntityDef // Definition this entity was created from
	Key  string              // Spawn key (e.g., "goblin")
	Name string              // Display name
	X, Y int                 // Position on the map
}

// NewEntity creates an entity from a definition at the given position.
func NewEntity(def *gamedata.EntityDef, x, y int) *Entity {
	return &Entity{
		Def:  def,
		Key:  def.Key,
		Name: def.Name,
		X:    x,
		Y:    y,
	}
}

// Position returns the entity's x, y coordinates.
func (e *Entity) Position() (int, int) {
	return e.X, e.Y
}

// Symbol returns the display rune.
func (e *Entity) Symbol() rune {
	return e.Def.GlyphRune()
}

// Color returns the tcell color for this entity.
func (e *Entity) Color() tcell.Color {
	return e.Def.TCellColor()
}

// Kind returns the entity category (monster, npc, item, trap, prop or door).
func (e *Entity) Kind() string {
	return e.Def.Kind
}

// Marker is the party symbol drawn at a level's starting position.
type Marker struct {
	X, Y   int
	Symbol rune
}

// NewMarker places the party marker at the given position.
func NewMarker(x, y int) *Marker {
	return &Marker{X: x, Y: y, Symbol: '&'}
}
