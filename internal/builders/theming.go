package builders

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/noise"
	"github.com/samdwyer/mapforge/internal/world"
)

// RoomTheme decorates a room.
type RoomTheme int

const (
	// ThemeGrassy grows grass inward from the room walls.
	ThemeGrassy RoomTheme = iota
	// ThemeBarracks lines the room with beds and posts a guard.
	ThemeBarracks
)

// String returns the theme name.
func (t RoomTheme) String() string {
	switch t {
	case ThemeGrassy:
		return "grassy"
	case ThemeBarracks:
		return "barracks"
	default:
		return "unknown"
	}
}

// RoomThemer applies a theme to a share of the rooms.
type RoomThemer struct {
	Theme RoomTheme
	// Chance is the percentage of rooms themed.
	Chance int
}

// Name implements Stage.
func (r RoomThemer) Name() string { return "room_themer/" + r.Theme.String() }

// BuildMeta implements MetaBuilder.
func (r RoomThemer) BuildMeta(rng *rand.Rand, d *BuildData) {
	themed := 0
	for _, room := range d.RequireRooms(r.Name()) {
		if rng.Intn(100) >= r.Chance {
			continue
		}
		switch r.Theme {
		case ThemeGrassy:
			growGrass(rng, d.Map, room)
		case ThemeBarracks:
			if !furnishBarracks(rng, d, room) {
				continue
			}
		}
		themed++
		d.TakeSnapshot()
	}
	d.Logger().Debug("rooms themed", zap.String("theme", r.Theme.String()), zap.Int("rooms", themed))
}

// growGrass turns floor to grass with a chance that falls off with distance
// from the room edge, and a quarter of the grass to foliage.
func growGrass(rng *rand.Rand, m *world.Map, room world.Rect) {
	for y := room.Y1; y < room.Y2; y++ {
		for x := room.X1; x < room.X2; x++ {
			if m.GetTile(x, y) != world.TileFloor {
				continue
			}
			edge := min(x-room.X1, room.X2-1-x, y-room.Y1, room.Y2-1-y)
			if rng.Intn(100) >= 60/(edge+1) {
				continue
			}
			if rng.Intn(4) == 0 {
				m.SetTile(x, y, world.TileFoliage)
			} else {
				m.SetTile(x, y, world.TileGrass)
			}
		}
	}
}

// furnishBarracks puts beds along the top wall, a weapon rack in a corner and
// a guard in the middle. Rooms smaller than 5x5 are left alone.
func furnishBarracks(rng *rand.Rand, d *BuildData, room world.Rect) bool {
	if room.Width() < 5 || room.Height() < 5 {
		return false
	}
	m := d.Map
	place := func(x, y int, key string) {
		idx := m.Idx(x, y)
		if key != "" && m.Tiles[idx].IsWalkable() && !d.HasSpawnAt(idx) {
			d.Spawn(idx, key)
		}
	}
	for x := room.X1 + 1; x < room.X2-1; x += 2 {
		place(x, room.Y1, "bed")
	}
	place(room.X2-1, room.Y2-1, "weapon_rack")
	cx, cy := room.Center()
	place(cx, cy, d.roller().Roll(rng, "barracks", d.Difficulty))
	return true
}

// Foliage converts a tile type to vegetation. Density follows a Perlin field
// so plants grow in clumps.
//
//   - floor becomes grass
//   - grass becomes foliage, one in four heavy
//   - wall touching an orthogonal walkable tile becomes heavy foliage
type Foliage struct {
	From    world.Tile
	Percent int
}

// Name implements Stage.
func (f Foliage) Name() string { return "foliage/" + f.From.Name() }

// BuildMeta implements MetaBuilder.
func (f Foliage) BuildMeta(rng *rand.Rand, d *BuildData) {
	m := d.Map
	before := m.Clone()
	field := noise.NewField(rng.Int63(), 0.15)
	changed := 0
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			idx := m.Idx(x, y)
			if m.Tiles[idx] != f.From {
				continue
			}
			if f.From == world.TileWall && !touchesWalkable(before, x, y) {
				continue
			}
			chance := float64(f.Percent) * (0.5 + field.At(x, y))
			if float64(rng.Intn(100)) >= chance {
				continue
			}
			switch f.From {
			case world.TileFloor:
				m.Tiles[idx] = world.TileGrass
			case world.TileGrass:
				if rng.Intn(4) == 0 {
					m.Tiles[idx] = world.TileHeavyFoliage
				} else {
					m.Tiles[idx] = world.TileFoliage
				}
			case world.TileWall:
				m.Tiles[idx] = world.TileHeavyFoliage
			default:
				continue
			}
			changed++
		}
	}
	d.TakeSnapshot()
	d.Logger().Debug("foliage grown", zap.String("from", f.From.Name()), zap.Int("tiles", changed))
}

func touchesWalkable(m *world.Map, x, y int) bool {
	return m.IsPassable(x-1, y) || m.IsPassable(x+1, y) || m.IsPassable(x, y-1) || m.IsPassable(x, y+1)
}
