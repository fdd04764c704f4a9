package world

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	// Default map dimensions
	DefaultWidth  = 80
	DefaultHeight = 50
)

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Map is a row-major tile grid. It is the persistent result of a build and
// also the working buffer that build stages mutate.
type Map struct {
	Width  int
	Height int
	Depth  int
	Tiles  []Tile
	Rooms  []Rect
	Start  int // Index of the starting tile, -1 if unset
}

// NewMap creates a new map filled with walls.
func NewMap(width, height int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
		Start:  -1,
	}
	m.Fill(TileWall)
	return m
}

// ParseMap builds a map from rows of tile glyphs. All rows must have the same length.
func ParseMap(rows []string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse map: no rows")
	}
	width := len([]rune(rows[0]))
	m := NewMap(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("parse map: row %d has width %d, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			t, err := ParseTile(r)
			if err != nil {
				return nil, fmt.Errorf("parse map: (%d,%d): %w", x, y, err)
			}
			m.Tiles[m.Idx(x, y)] = t
		}
	}
	return m, nil
}

// MustParseMap is ParseMap that panics on error. Intended for fixtures.
func MustParseMap(rows ...string) *Map {
	m, err := ParseMap(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Idx converts a coordinate to a buffer index.
func (m *Map) Idx(x, y int) int {
	return y*m.Width + x
}

// XY converts a buffer index to a coordinate.
func (m *Map) XY(idx int) (int, int) {
	return idx % m.Width, idx / m.Width
}

// InBounds reports whether the coordinate lies on the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IsPassable returns true if the given position can be walked on.
func (m *Map) IsPassable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[m.Idx(x, y)].IsWalkable()
}

// GetTile returns the tile at the given position. Out of bounds reads as wall.
func (m *Map) GetTile(x, y int) Tile {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[m.Idx(x, y)]
}

// SetTile writes a tile. Out of bounds writes are ignored.
func (m *Map) SetTile(x, y int, t Tile) {
	if m.InBounds(x, y) {
		m.Tiles[m.Idx(x, y)] = t
	}
}

// Fill sets every tile to t.
func (m *Map) Fill(t Tile) {
	for i := range m.Tiles {
		m.Tiles[i] = t
	}
}

// CountTiles returns how many tiles match the predicate.
func (m *Map) CountTiles(match func(Tile) bool) int {
	n := 0
	for _, t := range m.Tiles {
		if match(t) {
			n++
		}
	}
	return n
}

// Count returns how many tiles equal t.
func (m *Map) Count(t Tile) int {
	return m.CountTiles(func(o Tile) bool { return o == t })
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (m *Map) RoomIndexAt(x, y int) int {
	for i, room := range m.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (m *Map) Clone() *Map {
	c := *m
	c.Tiles = append([]Tile(nil), m.Tiles...)
	if m.Rooms != nil {
		c.Rooms = append([]Rect(nil), m.Rooms...)
	}
	return &c
}

// Fingerprint hashes the tile buffer. Equal grids give equal fingerprints.
func (m *Map) Fingerprint() uint64 {
	return xxhash.Sum64String(m.String())
}

// String renders the grid as newline-separated rows of glyphs.
func (m *Map) String() string {
	var sb strings.Builder
	sb.Grow((m.Width + 1) * m.Height * 2)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sb.WriteRune(m.Tiles[m.Idx(x, y)].Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
