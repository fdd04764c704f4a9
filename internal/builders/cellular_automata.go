package builders

import (
	"math/rand"

	"github.com/samdwyer/mapforge/internal/world"
)

const (
	caFloorPercent = 55
	caIterations   = 15
)

// CellularAutomata grows organic caves from random noise.
type CellularAutomata struct{}

// Name implements Stage.
func (CellularAutomata) Name() string { return "cellular_automata" }

// BuildInitial implements InitialBuilder.
func (CellularAutomata) BuildInitial(rng *rand.Rand, d *BuildData) {
	m := d.Map
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if rng.Intn(100) < caFloorPercent {
				m.SetTile(x, y, world.TileFloor)
			} else {
				m.SetTile(x, y, world.TileWall)
			}
		}
	}
	d.TakeSnapshot()

	for i := 0; i < caIterations; i++ {
		smoothCaves(m)
		d.TakeSnapshot()
	}
}

// smoothCaves applies one pass of the cave rule: a cell becomes wall when more
// than four or none of its eight neighbours are walls.
func smoothCaves(m *world.Map) {
	next := append([]world.Tile(nil), m.Tiles...)
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			walls := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && m.GetTile(x+dx, y+dy) == world.TileWall {
						walls++
					}
				}
			}
			if walls > 4 || walls == 0 {
				next[m.Idx(x, y)] = world.TileWall
			} else {
				next[m.Idx(x, y)] = world.TileFloor
			}
		}
	}
	copy(m.Tiles, next)
}
