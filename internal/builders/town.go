package builders

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/pathing"
	"github.com/samdwyer/mapforge/internal/world"
)

const (
	townMinWidth  = 60
	townMinHeight = 30

	maxBuildings        = 12
	maxBuildingAttempts = 400
	townsfolkTable      = "townsfolk"
)

// Town builds the surface level: a walled settlement on a lake shore.
//
// The west edge is water in deep and shallow bands whose width follows a sine
// wave, crossed by wooden piers. East of the shore a wall encloses a gravel
// district, pierced by a road on both sides. Buildings are placed on free
// gravel, given a door facing the road and connected to the nearest road tile.
// The biggest building is the pub, where the player starts.
type Town struct{}

// Name implements Stage.
func (Town) Name() string { return "town" }

type building struct {
	rect world.Rect
	door int
}

// townLayout carries intermediate positions between the town steps.
type townLayout struct {
	shore   []int // first land column per row
	wallX   int
	gapY    int
	piers   []int
	streets []int
}

// BuildInitial implements InitialBuilder.
func (t Town) BuildInitial(rng *rand.Rand, d *BuildData) {
	if d.Width < townMinWidth || d.Height < townMinHeight {
		panic(fmt.Errorf("%w: %s needs at least %dx%d, got %dx%d",
			ErrPrecondition, t.Name(), townMinWidth, townMinHeight, d.Width, d.Height))
	}
	m := d.Map
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			m.SetTile(x, y, world.TileGrass)
		}
	}
	d.TakeSnapshot()

	l := &townLayout{gapY: m.Height / 2}
	t.water(rng, m, l)
	d.TakeSnapshot()
	t.walls(m, l)
	d.TakeSnapshot()
	buildings := t.buildings(rng, m, l)
	d.TakeSnapshot()
	t.doors(d, buildings)
	t.paths(m, l, buildings)
	d.TakeSnapshot()

	m.SetTile(m.Width-5, l.gapY, world.TileStairsDown)

	sort.SliceStable(buildings, func(i, j int) bool {
		return buildings[i].rect.Area() > buildings[j].rect.Area()
	})
	if len(buildings) > 0 {
		d.SetStart(buildings[0].rect.Center())
	} else {
		d.SetStart(l.wallX+2, l.gapY)
	}
	t.furnish(rng, d, buildings)
	t.townsfolk(rng, d)
	d.TakeSnapshot()

	d.Logger().Debug("town built",
		zap.Int("buildings", len(buildings)),
		zap.Int("piers", len(l.piers)),
		zap.Int("street_tiles", len(l.streets)),
		zap.Int("spawns", len(d.SpawnList)),
	)
}

// water lays the lake along the west edge and the piers reaching into it.
func (t Town) water(rng *rand.Rand, m *world.Map, l *townLayout) {
	phase := rng.Float64() * 2 * math.Pi
	l.shore = make([]int, m.Height)
	for y := 1; y < m.Height-1; y++ {
		deep := 3 + int(2.5+2.5*math.Sin(float64(y)*0.25+phase))
		shallow := deep + 2 + rng.Intn(2)
		for x := 1; x < shallow; x++ {
			if x < deep {
				m.SetTile(x, y, world.TileDeepWater)
			} else {
				m.SetTile(x, y, world.TileShallowWater)
			}
		}
		l.shore[y] = shallow
	}

	n := 2 + rng.Intn(3)
	for range n {
		y := 2 + rng.Intn(m.Height-4)
		if y == l.gapY {
			continue
		}
		end := l.shore[y] + 1
		for x := 2; x <= end; x++ {
			m.SetTile(x, y, world.TileWoodFloor)
		}
		l.piers = append(l.piers, m.Idx(end, y))
	}
}

// walls encloses the district and runs the road through both gates.
func (t Town) walls(m *world.Map, l *townLayout) {
	maxShore := 0
	for _, s := range l.shore {
		maxShore = max(maxShore, s)
	}
	l.wallX = maxShore + 4
	right := m.Width - 3
	top, bottom := 2, m.Height-3

	for y := top; y <= bottom; y++ {
		for x := l.wallX; x <= right; x++ {
			edge := x == l.wallX || x == right || y == top || y == bottom
			gate := (x == l.wallX || x == right) && absInt(y-l.gapY) <= 1
			switch {
			case gate:
				m.SetTile(x, y, world.TileRoad)
			case edge:
				m.SetTile(x, y, world.TileWall)
			default:
				m.SetTile(x, y, world.TileGravel)
			}
		}
	}
	for y := l.gapY - 1; y <= l.gapY+1; y++ {
		for x := maxShore + 1; x < m.Width-1; x++ {
			m.SetTile(x, y, world.TileRoad)
		}
	}
}

// buildings places non-overlapping buildings on free gravel. Each keeps a
// one tile street around it.
func (t Town) buildings(rng *rand.Rand, m *world.Map, l *townLayout) []building {
	available := mapset.New[int]()
	for y := 1; y < m.Height-2; y++ {
		for x := l.wallX + 1; x < m.Width-1; x++ {
			if m.GetTile(x, y) == world.TileGravel {
				available.Put(m.Idx(x, y))
			}
		}
	}

	var placed []building
	for attempt := 0; attempt < maxBuildingAttempts && len(placed) < maxBuildings; attempt++ {
		w := 4 + rng.Intn(8)
		h := 4 + rng.Intn(8)
		x := l.wallX + 1 + rng.Intn(m.Width-l.wallX)
		y := 1 + rng.Intn(m.Height-2)

		fits := true
		for cy := y - 1; cy <= y+h && fits; cy++ {
			for cx := x - 1; cx <= x+w; cx++ {
				if !m.InBounds(cx, cy) || !available.Has(m.Idx(cx, cy)) {
					fits = false
					break
				}
			}
		}
		if !fits {
			continue
		}

		rect := world.NewRect(x, y, w, h)
		for cy := y - 1; cy <= y+h; cy++ {
			for cx := x - 1; cx <= x+w; cx++ {
				available.Remove(m.Idx(cx, cy))
			}
		}
		for cy := rect.Y1; cy < rect.Y2; cy++ {
			for cx := rect.X1; cx < rect.X2; cx++ {
				outline := cx == rect.X1 || cx == rect.X2-1 || cy == rect.Y1 || cy == rect.Y2-1
				if outline {
					m.SetTile(cx, cy, world.TileWall)
				} else {
					m.SetTile(cx, cy, world.TileWoodFloor)
				}
			}
		}
		placed = append(placed, building{rect: rect, door: -1})
	}
	return placed
}

// doors opens each building on the wall facing the road.
func (t Town) doors(d *BuildData, buildings []building) {
	gapY := d.Height / 2
	for i := range buildings {
		b := &buildings[i]
		cx, _ := b.rect.Center()
		y := b.rect.Y1
		if b.rect.Y2 <= gapY {
			y = b.rect.Y2 - 1
		}
		b.door = d.Map.Idx(cx, y)
		d.Map.Tiles[b.door] = world.TileFloor
		d.Spawn(b.door, DoorKey)
	}
}

// paths carves a road from every door and pier head to the nearest road.
func (t Town) paths(m *world.Map, l *townLayout, buildings []building) {
	var roads []int
	for i, tile := range m.Tiles {
		if tile == world.TileRoad {
			roads = append(roads, i)
		}
	}
	keep := func(tile world.Tile) bool {
		return tile.IsWalkable() && tile != world.TileWoodFloor && tile != world.TileShallowWater
	}

	var sources []int
	for _, b := range buildings {
		sources = append(sources, b.door)
	}
	sources = append(sources, l.piers...)
	for _, from := range sources {
		fx, fy := m.XY(from)
		target, best := -1, 0
		for _, r := range roads {
			rx, ry := m.XY(r)
			dist := world.DistanceSquared(world.Point{X: fx, Y: fy}, world.Point{X: rx, Y: ry})
			if target < 0 || dist < best {
				target, best = r, dist
			}
		}
		if target < 0 {
			continue
		}
		path := pathing.Path(m, from, target, keep)
		if len(path) < 2 {
			continue
		}
		for _, idx := range path[1:] {
			m.Tiles[idx] = world.TileRoad
		}
		l.streets = append(l.streets, path[1:]...)
	}
}

// buildingRoles lists the fixed contents of the largest buildings in order.
var buildingRoles = []struct {
	name string
	keys []string
}{
	{"pub", []string{"barkeep", "shady_patron", "patron", "keg", "table"}},
	{"temple", []string{"priest", "parishioner", "altar", "candle"}},
	{"blacksmith", []string{"blacksmith", "anvil", "water_trough"}},
	{"clothier", []string{"clothier", "cabinet", "loom"}},
	{"alchemist", []string{"alchemist", "chemistry_set"}},
	{"player_house", []string{"mom", "bed", "cabinet"}},
}

// furnish populates buildings by role. Buildings beyond the named roles are
// hovels, one in three of them abandoned.
func (t Town) furnish(rng *rand.Rand, d *BuildData, buildings []building) {
	start := d.StartIdx()
	for i, b := range buildings {
		var keys []string
		role := "hovel"
		switch {
		case i < len(buildingRoles):
			role, keys = buildingRoles[i].name, buildingRoles[i].keys
		case rng.Intn(3) == 0:
			role = "abandoned"
			keys = []string{"rat", "rat"}
		default:
			keys = []string{"peasant", "bed"}
		}

		var free []int
		for y := b.rect.Y1 + 1; y < b.rect.Y2-1; y++ {
			for x := b.rect.X1 + 1; x < b.rect.X2-1; x++ {
				idx := d.Map.Idx(x, y)
				if idx != start && !d.HasSpawnAt(idx) {
					free = append(free, idx)
				}
			}
		}
		for _, key := range keys {
			if len(free) == 0 {
				d.Logger().Debug("building full", zap.String("role", role), zap.String("key", key))
				break
			}
			pick := rng.Intn(len(free))
			d.Spawn(free[pick], key)
			free[pick] = free[len(free)-1]
			free = free[:len(free)-1]
		}
	}
}

// townsfolk scatters people on the gravel.
func (t Town) townsfolk(rng *rand.Rand, d *BuildData) {
	roller := d.roller()
	for idx, tile := range d.Map.Tiles {
		if tile != world.TileGravel || d.HasSpawnAt(idx) || rng.Intn(50) != 0 {
			continue
		}
		if key := roller.Roll(rng, townsfolkTable, d.Difficulty); key != "" {
			d.Spawn(idx, key)
		}
	}
}
