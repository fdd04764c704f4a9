package builders

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/pathing"
	"github.com/samdwyer/mapforge/internal/world"
)

// YellowBrickRoad runs a road from the starting position to the east side of
// the map, ends it with the down stairs and lets a stream cross the level.
type YellowBrickRoad struct{}

// Name implements Stage.
func (YellowBrickRoad) Name() string { return "yellow_brick_road" }

// BuildMeta implements MetaBuilder.
func (y YellowBrickRoad) BuildMeta(rng *rand.Rand, d *BuildData) {
	m := d.Map
	start := d.RequireStart(y.Name())
	from := m.Idx(start.X, start.Y)
	end := nearestWalkable(m, world.Point{X: m.Width - 2, Y: m.Height / 2})
	if end < 0 {
		panic(fmt.Errorf("%w: %s found no walkable tile for the road end", ErrPrecondition, y.Name()))
	}

	road := pathing.Path(m, from, end, world.Tile.IsWalkable)
	for _, idx := range road {
		x, ry := m.XY(idx)
		paintRoad(m, x, ry)
	}
	d.TakeSnapshot()

	sx := m.Width/4 + rng.Intn(max(m.Width/2, 1))
	ex := m.Width/4 + rng.Intn(max(m.Width/2, 1))
	stream := 0
	for _, p := range world.Line(world.Point{X: sx, Y: 0}, world.Point{X: ex, Y: m.Height - 1}) {
		if p.X <= 0 || p.X >= m.Width-1 || p.Y <= 0 || p.Y >= m.Height-1 {
			continue
		}
		idx := m.Idx(p.X, p.Y)
		switch m.Tiles[idx] {
		case world.TileFloor, world.TileGrass, world.TileFoliage, world.TileHeavyFoliage:
			m.Tiles[idx] = world.TileShallowWater
			stream++
		}
	}

	m.Tiles[end] = world.TileStairsDown
	d.TakeSnapshot()
	d.Logger().Debug("road laid",
		zap.Int("road_tiles", len(road)),
		zap.Int("stream_tiles", stream),
	)
}

// paintRoad paves (x, y) and its walkable orthogonal neighbours.
func paintRoad(m *world.Map, x, y int) {
	m.SetTile(x, y, world.TileRoad)
	for _, n := range [][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
		if m.IsPassable(n[0], n[1]) && m.GetTile(n[0], n[1]) != world.TileStairsDown {
			m.SetTile(n[0], n[1], world.TileRoad)
		}
	}
}
