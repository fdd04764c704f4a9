package builders

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/data"
	"github.com/samdwyer/mapforge/internal/world"
)

var (
	prefabsOnce sync.Once
	prefabs     *data.Prefabs
)

func loadPrefabs() *data.Prefabs {
	prefabsOnce.Do(func() {
		prefabs = data.MustLoadPrefabs()
	})
	return prefabs
}

// glyph describes what a template character stamps.
type glyph struct {
	tile  world.Tile
	key   string
	start bool
}

var prefabLegend = map[rune]glyph{
	'#': {tile: world.TileWall},
	'.': {tile: world.TileFloor},
	' ': {tile: world.TileFloor},
	'@': {tile: world.TileFloor, start: true},
	'>': {tile: world.TileStairsDown},
	'g': {tile: world.TileFloor, key: "goblin"},
	'o': {tile: world.TileFloor, key: "orc"},
	'^': {tile: world.TileFloor, key: "bear_trap"},
	'%': {tile: world.TileFloor, key: "rations"},
	'!': {tile: world.TileFloor, key: "health_potion"},
	'~': {tile: world.TileShallowWater},
	'≈': {tile: world.TileDeepWater},
}

// stampTemplate writes a template with its top-left corner at (ox, oy).
// Cells outside the map are skipped.
func stampTemplate(d *BuildData, t *data.Template, ox, oy int) {
	w := t.Width()
	for i, r := range t.Glyphs() {
		x, y := ox+i%w, oy+i/w
		if !d.Map.InBounds(x, y) {
			continue
		}
		g, ok := prefabLegend[r]
		if !ok {
			d.Logger().Debug("unknown prefab glyph", zap.String("template", t.Name), zap.String("glyph", string(r)))
			g = glyph{tile: world.TileFloor}
		}
		idx := d.Map.Idx(x, y)
		d.Map.Tiles[idx] = g.tile
		if g.key != "" {
			d.Spawn(idx, g.key)
		}
		if g.start {
			d.SetStart(x, y)
		}
	}
}

// PrefabConstant loads a complete hand-authored level. Space the template
// does not cover stays wall.
type PrefabConstant struct {
	Level string
}

// Name implements Stage.
func (p PrefabConstant) Name() string { return "prefab_constant/" + p.Level }

// BuildInitial implements InitialBuilder.
func (p PrefabConstant) BuildInitial(_ *rand.Rand, d *BuildData) {
	t := loadPrefabs().Level(p.Level)
	if t == nil {
		panic(fmt.Errorf("%w: unknown prefab level %q", ErrPrecondition, p.Level))
	}
	stampTemplate(d, t, 0, 0)
	d.TakeSnapshot()
}

// PrefabSectional stamps a section over the map produced by earlier stages,
// dropping spawns it covers.
type PrefabSectional struct {
	Section string
}

// Name implements Stage.
func (p PrefabSectional) Name() string { return "prefab_sectional/" + p.Section }

// BuildMeta implements MetaBuilder.
func (p PrefabSectional) BuildMeta(_ *rand.Rand, d *BuildData) {
	t := loadPrefabs().Section(p.Section)
	if t == nil {
		panic(fmt.Errorf("%w: unknown prefab section %q", ErrPrecondition, p.Section))
	}
	w, h := t.Width(), t.Height()
	if w > d.Width || h > d.Height {
		d.Logger().Debug("section does not fit", zap.String("section", t.Name))
		return
	}

	var ox, oy int
	switch t.Horizontal {
	case "left":
		ox = 0
	case "right":
		ox = d.Width - w
	default:
		ox = (d.Width - w) / 2
	}
	switch t.Vertical {
	case "top":
		oy = 0
	case "bottom":
		oy = d.Height - h
	default:
		oy = (d.Height - h) / 2
	}

	area := world.NewRect(ox, oy, w, h)
	d.SpawnList = dropSpawnsIn(d, area)
	stampTemplate(d, t, ox, oy)
	d.TakeSnapshot()
}

func dropSpawnsIn(d *BuildData, area world.Rect) []Spawn {
	kept := d.SpawnList[:0]
	for _, s := range d.SpawnList {
		if !area.Contains(d.Map.XY(s.Idx)) {
			kept = append(kept, s)
		}
	}
	return kept
}

// RoomVaults places up to three small vaults on open floor. Vaults are chosen
// from the templates allowed at the current depth and never overlap each
// other or the starting position.
type RoomVaults struct{}

// Name implements Stage.
func (RoomVaults) Name() string { return "room_vaults" }

// BuildMeta implements MetaBuilder.
func (v RoomVaults) BuildMeta(rng *rand.Rand, d *BuildData) {
	var eligible []*data.Template
	for i := range loadPrefabs().Vaults {
		t := &loadPrefabs().Vaults[i]
		if d.Depth >= t.MinDepth && d.Depth <= t.MaxDepth {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return
	}

	n := rng.Intn(4)
	used := mapset.New[int]()
	if start := d.StartIdx(); start >= 0 {
		used.Put(start)
	}
	placed := 0
	for range n {
		t := eligible[rng.Intn(len(eligible))]
		w, h := t.Width(), t.Height()

		var spots []world.Point
		for y := 1; y+h < d.Height; y++ {
			for x := 1; x+w < d.Width; x++ {
				if vaultFits(d.Map, used, x, y, w, h) {
					spots = append(spots, world.Point{X: x, Y: y})
				}
			}
		}
		if len(spots) == 0 {
			d.Logger().Debug("no room for vault", zap.String("vault", t.Name))
			continue
		}

		at := spots[rng.Intn(len(spots))]
		d.SpawnList = dropSpawnsIn(d, world.NewRect(at.X, at.Y, w, h))
		stampTemplate(d, t, at.X, at.Y)
		for y := at.Y; y < at.Y+h; y++ {
			for x := at.X; x < at.X+w; x++ {
				used.Put(d.Map.Idx(x, y))
			}
		}
		placed++
		d.TakeSnapshot()
	}
	d.Logger().Debug("vaults placed", zap.Int("vaults", placed))
}

func vaultFits(m *world.Map, used mapset.Set[int], x, y, w, h int) bool {
	for vy := y; vy < y+h; vy++ {
		for vx := x; vx < x+w; vx++ {
			idx := m.Idx(vx, vy)
			if m.Tiles[idx] != world.TileFloor || used.Has(idx) {
				return false
			}
		}
	}
	return true
}
