package builders

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/world"
)

// DrunkSpawnMode chooses where each digger starts.
type DrunkSpawnMode int

const (
	// SpawnAtStart starts every digger at the map center.
	SpawnAtStart DrunkSpawnMode = iota
	// SpawnRandom starts the first digger at the center and the rest anywhere.
	SpawnRandom
)

// drunkardStallLimit is how many walkers in a row may dig nothing before the
// walk gives up on its floor target.
const drunkardStallLimit = 100

// DrunkardsWalk carves with random walkers until a floor fraction is reached.
type DrunkardsWalk struct {
	SpawnMode    DrunkSpawnMode
	Lifetime     int
	FloorPercent float64
	BrushSize    int
	Symmetry     Symmetry
	// Momentum is the percent chance a walker repeats its previous step.
	Momentum int
	label    string
}

// OpenArea keeps every walker at the center: one large open cavern.
func OpenArea() *DrunkardsWalk {
	return &DrunkardsWalk{SpawnMode: SpawnAtStart, Lifetime: 400, FloorPercent: 0.5, BrushSize: 1, label: "open_area"}
}

// OpenHalls scatters long-lived walkers.
func OpenHalls() *DrunkardsWalk {
	return &DrunkardsWalk{SpawnMode: SpawnRandom, Lifetime: 400, FloorPercent: 0.5, BrushSize: 1, label: "open_halls"}
}

// WindingPassages uses many short walkers.
func WindingPassages() *DrunkardsWalk {
	return &DrunkardsWalk{SpawnMode: SpawnRandom, Lifetime: 100, FloorPercent: 0.4, BrushSize: 1, Momentum: 30, label: "winding_passages"}
}

// FatPassages is WindingPassages with a wider brush.
func FatPassages() *DrunkardsWalk {
	return &DrunkardsWalk{SpawnMode: SpawnRandom, Lifetime: 100, FloorPercent: 0.4, BrushSize: 2, Momentum: 30, label: "fat_passages"}
}

// FearfulSymmetry mirrors every step on both axes.
func FearfulSymmetry() *DrunkardsWalk {
	return &DrunkardsWalk{SpawnMode: SpawnRandom, Lifetime: 100, FloorPercent: 0.4, BrushSize: 1, Symmetry: SymmetryBoth, label: "fearful_symmetry"}
}

// Name implements Stage.
func (w *DrunkardsWalk) Name() string {
	if w.label == "" {
		return "drunkards_walk"
	}
	return "drunkards_walk/" + w.label
}

// BuildInitial implements InitialBuilder.
func (w *DrunkardsWalk) BuildInitial(rng *rand.Rand, d *BuildData) {
	m := d.Map
	startX, startY := m.Width/2, m.Height/2
	m.SetTile(startX, startY, world.TileFloor)

	// Walkers never leave the two outer rings.
	paintable := max(m.Width-3, 1) * max(m.Height-3, 1)
	desired := min(int(w.FloorPercent*float64(len(m.Tiles))), paintable)
	floors := m.Count(world.TileFloor)
	diggers := 0
	active := 0
	stalled := 0

	for floors < desired {
		if stalled >= drunkardStallLimit {
			d.Logger().Debug("drunkards stalled short of floor target",
				zap.Int("floors", floors),
				zap.Int("desired", desired),
			)
			break
		}
		x, y := startX, startY
		if w.SpawnMode == SpawnRandom && diggers > 0 {
			x = 2 + rng.Intn(m.Width-3)
			y = 2 + rng.Intn(m.Height-3)
		}

		dir := -1
		for life := w.Lifetime; life > 0; life-- {
			paint(m, w.Symmetry, w.BrushSize, x, y)
			// Mark the trail so the snapshot shows the walker's path.
			m.SetTile(x, y, world.TileStairsDown)
			dir = w.nextStep(rng, dir)
			x, y = step(m, x, y, dir)
		}
		if m.Count(world.TileFloor)+m.Count(world.TileStairsDown) > floors {
			d.TakeSnapshot()
			active++
			stalled = 0
		} else {
			stalled++
		}
		diggers++

		for i, t := range m.Tiles {
			if t == world.TileStairsDown {
				m.Tiles[i] = world.TileFloor
			}
		}
		floors = m.Count(world.TileFloor)
	}

	d.Logger().Debug("drunkards done",
		zap.Int("diggers", diggers),
		zap.Int("active", active),
		zap.Int("floors", floors),
	)
}

// nextStep picks a cardinal direction, repeating last with the walker's
// momentum.
func (w *DrunkardsWalk) nextStep(rng *rand.Rand, last int) int {
	if w.Momentum > 0 && last >= 0 && rng.Intn(100) < w.Momentum {
		return last
	}
	return rng.Intn(4)
}

// stagger moves one step in a random cardinal direction, staying off the
// two outermost rings.
func stagger(rng *rand.Rand, m *world.Map, x, y int) (int, int) {
	return step(m, x, y, rng.Intn(4))
}

// step moves one cell west, east, north or south for dir 0 to 3, staying
// off the two outermost rings.
func step(m *world.Map, x, y, dir int) (int, int) {
	switch dir {
	case 0:
		if x > 2 {
			x--
		}
	case 1:
		if x < m.Width-2 {
			x++
		}
	case 2:
		if y > 2 {
			y--
		}
	default:
		if y < m.Height-2 {
			y++
		}
	}
	return x, y
}
