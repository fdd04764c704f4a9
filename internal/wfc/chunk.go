// Package wfc implements chunk-based Wave Function Collapse over tile maps.
//
// A sample map is cut into square chunks. Each chunk's edges are reduced to
// exit bitmaps (which border tiles are walkable), chunks are paired up by
// matching exits, and a solver assembles a new map from chunks so that every
// pair of neighbours is compatible.
package wfc

import (
	"github.com/samdwyer/mapforge/internal/world"
)

// Direction names a chunk edge. The numeric value indexes MapChunk.Exits.
type Direction int

const (
	North Direction = iota
	South
	West
	East
)

// Directions lists the four edges in index order.
var Directions = [4]Direction{North, South, West, East}

// Opposite returns the facing edge of the neighbour in direction d.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	default:
		return West
	}
}

// Delta returns the chunk grid offset of the neighbour in direction d.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 1, 0
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return "unknown"
	}
}

// MapChunk is one candidate pattern together with its edge exits and the
// patterns allowed next to it.
type MapChunk struct {
	Pattern    []world.Tile
	Exits      [4][]bool
	HasExits   bool
	Compatible [4][]int
}

// open reports whether the edge in direction d has any exit.
func (c *MapChunk) open(d Direction) bool {
	for _, e := range c.Exits[d] {
		if e {
			return true
		}
	}
	return false
}

// Compatible reports whether b may sit next to a in direction d: every exit
// on a's d edge must have a matching exit on b's opposite edge. A closed edge
// imposes nothing. The solver checks each pair from both sides, so adjacent
// chunks in a finished layout have identical facing edges.
func Compatible(a, b *MapChunk, d Direction) bool {
	ae, be := a.Exits[d], b.Exits[d.Opposite()]
	for slot, open := range ae {
		if open && (slot >= len(be) || !be[slot]) {
			return false
		}
	}
	return true
}

// sameEdge reports whether a's d edge and b's opposite edge have the same
// exits.
func sameEdge(a, b *MapChunk, d Direction) bool {
	return Compatible(a, b, d) && Compatible(b, a, d.Opposite())
}

// computeExits fills the exit bitmaps of a chunk from its pattern.
func computeExits(c *MapChunk, chunkSize int) {
	for i := range c.Exits {
		c.Exits[i] = make([]bool, chunkSize)
	}
	n := 0
	mark := func(d Direction, slot int, t world.Tile) {
		if t.IsWalkable() {
			c.Exits[d][slot] = true
			n++
		}
	}
	for i := 0; i < chunkSize; i++ {
		mark(North, i, c.Pattern[i])
		mark(South, i, c.Pattern[(chunkSize-1)*chunkSize+i])
		mark(West, i, c.Pattern[i*chunkSize])
		mark(East, i, c.Pattern[i*chunkSize+chunkSize-1])
	}
	c.HasExits = n > 0
}

// BuildConstraints turns patterns into chunks with exits and adjacency lists.
func BuildConstraints(patterns [][]world.Tile, chunkSize int) []MapChunk {
	chunks := make([]MapChunk, len(patterns))
	for i, p := range patterns {
		chunks[i].Pattern = p
		computeExits(&chunks[i], chunkSize)
	}

	for i := range chunks {
		for j := range chunks {
			for _, d := range Directions {
				if Compatible(&chunks[i], &chunks[j], d) {
					chunks[i].Compatible[d] = append(chunks[i].Compatible[d], j)
				}
			}
		}
	}
	return chunks
}
