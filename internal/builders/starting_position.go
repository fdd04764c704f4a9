package builders

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/world"
)

// XStart selects the horizontal seed point for AreaStartingPosition.
type XStart int

const (
	XLeft XStart = iota
	XCenter
	XRight
)

// YStart selects the vertical seed point for AreaStartingPosition.
type YStart int

const (
	YTop YStart = iota
	YCenter
	YBottom
)

// AreaStartingPosition starts the player on the walkable tile closest to a
// point on the map edge or centre.
type AreaStartingPosition struct {
	X XStart
	Y YStart
}

// Name implements Stage.
func (AreaStartingPosition) Name() string { return "area_starting_position" }

// BuildMeta implements MetaBuilder.
func (a AreaStartingPosition) BuildMeta(_ *rand.Rand, d *BuildData) {
	var seed world.Point
	switch a.X {
	case XLeft:
		seed.X = 1
	case XCenter:
		seed.X = d.Width / 2
	default:
		seed.X = d.Width - 2
	}
	switch a.Y {
	case YTop:
		seed.Y = 1
	case YCenter:
		seed.Y = d.Height / 2
	default:
		seed.Y = d.Height - 2
	}

	idx := nearestWalkable(d.Map, seed)
	if idx < 0 {
		panic(fmt.Errorf("%w: %s found no walkable tile", ErrPrecondition, a.Name()))
	}
	x, y := d.Map.XY(idx)
	d.SetStart(x, y)
	d.Logger().Debug("starting position", zap.Int("x", x), zap.Int("y", y))
}

// nearestWalkable returns the walkable, non-stairs index closest to p, or -1.
// Ties resolve to the lowest index.
func nearestWalkable(m *world.Map, p world.Point) int {
	best, bestDist := -1, 0
	for i, t := range m.Tiles {
		if !t.IsWalkable() || t == world.TileStairsDown || t == world.TileStairsUp {
			continue
		}
		x, y := m.XY(i)
		dist := world.DistanceSquared(p, world.Point{X: x, Y: y})
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// RoomBasedStartingPosition starts the player at the centre of the first
// room. Rooms whose centre was built over are skipped.
type RoomBasedStartingPosition struct{}

// Name implements Stage.
func (RoomBasedStartingPosition) Name() string { return "room_based_starting_position" }

// BuildMeta implements MetaBuilder.
func (s RoomBasedStartingPosition) BuildMeta(_ *rand.Rand, d *BuildData) {
	for _, room := range d.RequireRooms(s.Name()) {
		x, y := room.Center()
		if d.Map.IsPassable(x, y) {
			d.SetStart(x, y)
			return
		}
	}
	panic(fmt.Errorf("%w: %s found no room with a walkable centre", ErrPrecondition, s.Name()))
}

// CenterWalkStartingPosition starts at the map centre, stepping left until a
// walkable tile is found.
type CenterWalkStartingPosition struct{}

// Name implements Stage.
func (CenterWalkStartingPosition) Name() string { return "center_walk_starting_position" }

// BuildMeta implements MetaBuilder.
func (s CenterWalkStartingPosition) BuildMeta(_ *rand.Rand, d *BuildData) {
	x, y := d.Width/2, d.Height/2
	for ; x > 0; x-- {
		if d.Map.IsPassable(x, y) {
			d.SetStart(x, y)
			return
		}
	}
	idx := nearestWalkable(d.Map, world.Point{X: d.Width / 2, Y: d.Height / 2})
	if idx < 0 {
		panic(fmt.Errorf("%w: %s found no walkable tile", ErrPrecondition, s.Name()))
	}
	d.SetStart(d.Map.XY(idx))
}
