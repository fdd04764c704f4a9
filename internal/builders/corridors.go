package builders

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/world"
)

// DoglegCorridors joins consecutive rooms with L-shaped tunnels between centers.
type DoglegCorridors struct{}

// Name implements Stage.
func (DoglegCorridors) Name() string { return "dogleg_corridors" }

// BuildMeta implements MetaBuilder.
func (c DoglegCorridors) BuildMeta(rng *rand.Rand, d *BuildData) {
	rooms := d.RequireRooms(c.Name())
	corridors := [][]int{}
	for i := 1; i < len(rooms); i++ {
		newX, newY := rooms[i].Center()
		prevX, prevY := rooms[i-1].Center()

		// Randomly choose to go horizontal-then-vertical or vertical-then-horizontal
		var corridor []int
		if rng.Intn(2) == 0 {
			corridor = append(corridor, carveHorizontalTunnel(d.Map, prevX, newX, prevY)...)
			corridor = append(corridor, carveVerticalTunnel(d.Map, prevY, newY, newX)...)
		} else {
			corridor = append(corridor, carveVerticalTunnel(d.Map, prevY, newY, prevX)...)
			corridor = append(corridor, carveHorizontalTunnel(d.Map, prevX, newX, newY)...)
		}
		corridors = append(corridors, corridor)
		d.TakeSnapshot()
	}
	d.Corridors = corridors
}

// BSPCorridors joins consecutive rooms between random points inside each room.
type BSPCorridors struct{}

// Name implements Stage.
func (BSPCorridors) Name() string { return "bsp_corridors" }

// BuildMeta implements MetaBuilder.
func (c BSPCorridors) BuildMeta(rng *rand.Rand, d *BuildData) {
	rooms := d.RequireRooms(c.Name())
	corridors := [][]int{}
	for i := 0; i+1 < len(rooms); i++ {
		room, next := rooms[i], rooms[i+1]
		startX := jitter(rng.Intn, room.X1, room.X2)
		startY := jitter(rng.Intn, room.Y1, room.Y2)
		endX := jitter(rng.Intn, next.X1, next.X2)
		endY := jitter(rng.Intn, next.Y1, next.Y2)
		corridors = append(corridors, drawCorridor(d.Map, startX, startY, endX, endY))
		d.TakeSnapshot()
	}
	d.Corridors = corridors
}

// NearestCorridors joins every room to its closest room that has not
// already been used as a corridor source.
type NearestCorridors struct{}

// Name implements Stage.
func (NearestCorridors) Name() string { return "nearest_corridors" }

// BuildMeta implements MetaBuilder.
func (c NearestCorridors) BuildMeta(_ *rand.Rand, d *BuildData) {
	rooms := d.RequireRooms(c.Name())
	corridors := [][]int{}
	for i, target := range nearestTargets(rooms) {
		if target < 0 {
			d.Logger().Debug("no corridor target", zap.Int("room", i))
			continue
		}
		x1, y1 := rooms[i].Center()
		x2, y2 := rooms[target].Center()
		corridors = append(corridors, drawCorridor(d.Map, x1, y1, x2, y2))
		d.TakeSnapshot()
	}
	d.Corridors = corridors
}

// StraightLineCorridors is NearestCorridors drawn as straight lines.
type StraightLineCorridors struct{}

// Name implements Stage.
func (StraightLineCorridors) Name() string { return "straight_line_corridors" }

// BuildMeta implements MetaBuilder.
func (c StraightLineCorridors) BuildMeta(_ *rand.Rand, d *BuildData) {
	rooms := d.RequireRooms(c.Name())
	corridors := [][]int{}
	for i, target := range nearestTargets(rooms) {
		if target < 0 {
			continue
		}
		x1, y1 := rooms[i].Center()
		x2, y2 := rooms[target].Center()
		var corridor []int
		for _, p := range world.Line(world.Point{X: x1, Y: y1}, world.Point{X: x2, Y: y2}) {
			idx := d.Map.Idx(p.X, p.Y)
			if d.Map.Tiles[idx] != world.TileFloor {
				d.Map.Tiles[idx] = world.TileFloor
				corridor = append(corridor, idx)
			}
		}
		corridors = append(corridors, corridor)
		d.TakeSnapshot()
	}
	d.Corridors = corridors
}

// nearestTargets returns, per room, the closest room not yet connected as a
// source, or -1. Ties go to the lower room index.
func nearestTargets(rooms []world.Rect) []int {
	connected := mapset.New[int]()
	targets := make([]int, len(rooms))
	for i, room := range rooms {
		x, y := room.Center()
		from := world.Point{X: x, Y: y}
		best, bestDist := -1, 0.0
		for j, other := range rooms {
			if i == j || connected.Has(j) {
				continue
			}
			ox, oy := other.Center()
			dist := world.Pythagoras.Distance(from, world.Point{X: ox, Y: oy})
			if best == -1 || dist < bestDist {
				best, bestDist = j, dist
			}
		}
		targets[i] = best
		if best >= 0 {
			connected.Put(i)
		}
	}
	return targets
}

// CorridorSpawner requests spawns along recorded corridors.
type CorridorSpawner struct{}

// Name implements Stage.
func (CorridorSpawner) Name() string { return "corridor_spawner" }

// BuildMeta implements MetaBuilder.
func (c CorridorSpawner) BuildMeta(rng *rand.Rand, d *BuildData) {
	for _, corridor := range d.RequireCorridors(c.Name()) {
		var area []int
		for _, idx := range corridor {
			if d.Map.Tiles[idx].IsWalkable() {
				area = append(area, idx)
			}
		}
		spawnRegion(rng, d, area, monsterTable)
	}
}
