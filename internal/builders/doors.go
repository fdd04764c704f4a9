package builders

import (
	"math/rand"

	"github.com/samdwyer/mapforge/internal/world"
)

// DoorKey is the spawn key used for doors.
const DoorKey = "door"

// DoorPlacement puts doors at corridor mouths, or at random chokepoints when
// the chain recorded no corridors.
type DoorPlacement struct{}

// Name implements Stage.
func (DoorPlacement) Name() string { return "door_placement" }

// BuildMeta implements MetaBuilder.
func (DoorPlacement) BuildMeta(rng *rand.Rand, d *BuildData) {
	if d.Corridors != nil {
		for _, hall := range d.Corridors {
			if len(hall) > 2 && doorPossible(d, hall[0]) {
				d.Spawn(hall[0], DoorKey)
			}
		}
		return
	}

	// Decide against a copy so new doors don't influence the scan.
	tiles := append([]world.Tile(nil), d.Map.Tiles...)
	for i, t := range tiles {
		if t == world.TileFloor && doorPossible(d, i) && rng.Intn(3) == 0 {
			d.Spawn(i, DoorKey)
		}
	}
}

// doorPossible reports whether idx is a floor cell walled on one axis and
// open on the other, with nothing spawned on it yet.
func doorPossible(d *BuildData, idx int) bool {
	if d.HasSpawnAt(idx) {
		return false
	}
	m := d.Map
	x, y := m.XY(idx)
	if m.Tiles[idx] != world.TileFloor {
		return false
	}
	left, right := m.GetTile(x-1, y), m.GetTile(x+1, y)
	up, down := m.GetTile(x, y-1), m.GetTile(x, y+1)

	// East-west corridor
	if x > 1 && left == world.TileFloor && x < m.Width-2 && right == world.TileFloor &&
		y > 1 && up == world.TileWall && y < m.Height-2 && down == world.TileWall {
		return true
	}
	// North-south corridor
	if x > 1 && left == world.TileWall && x < m.Width-2 && right == world.TileWall &&
		y > 1 && up == world.TileFloor && y < m.Height-2 && down == world.TileFloor {
		return true
	}
	return false
}
