package builders

import (
	"math/rand"

	"github.com/samdwyer/mapforge/internal/world"
)

// DLAAlgorithm selects how particles move.
type DLAAlgorithm int

const (
	// WalkInwards releases particles at random spots that wander until they hit floor.
	WalkInwards DLAAlgorithm = iota
	// WalkOutwards releases particles at the center that wander until they hit wall.
	WalkOutwards
	// CentralAttractor flies particles in a straight line toward the center.
	CentralAttractor
)

// DLA grows a map by diffusion-limited aggregation.
type DLA struct {
	Algorithm    DLAAlgorithm
	BrushSize    int
	Symmetry     Symmetry
	FloorPercent float64
	label        string
}

// DLAWalkInwards is the classic inward-walking aggregation.
func DLAWalkInwards() *DLA {
	return &DLA{Algorithm: WalkInwards, BrushSize: 1, FloorPercent: 0.25, label: "walk_inwards"}
}

// DLAWalkOutwards digs outward from the center.
func DLAWalkOutwards() *DLA {
	return &DLA{Algorithm: WalkOutwards, BrushSize: 2, FloorPercent: 0.25, label: "walk_outwards"}
}

// DLACentralAttractor produces radial tendrils.
func DLACentralAttractor() *DLA {
	return &DLA{Algorithm: CentralAttractor, BrushSize: 2, FloorPercent: 0.25, label: "central_attractor"}
}

// DLAInsectoid is a mirrored central attractor.
func DLAInsectoid() *DLA {
	return &DLA{Algorithm: CentralAttractor, BrushSize: 2, Symmetry: SymmetryHorizontal, FloorPercent: 0.25, label: "insectoid"}
}

// Name implements Stage.
func (g *DLA) Name() string {
	if g.label == "" {
		return "dla"
	}
	return "dla/" + g.label
}

// BuildInitial implements InitialBuilder.
func (g *DLA) BuildInitial(rng *rand.Rand, d *BuildData) {
	m := d.Map
	startX, startY := m.Width/2, m.Height/2
	start := world.Point{X: startX, Y: startY}

	// Seed a small cross so particles have something to stick to.
	for _, p := range []world.Point{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}} {
		m.SetTile(startX+p.X, startY+p.Y, world.TileFloor)
	}
	d.TakeSnapshot()

	desired := int(g.FloorPercent * float64(len(m.Tiles)))
	floors := m.Count(world.TileFloor)
	for floors < desired {
		switch g.Algorithm {
		case WalkInwards:
			x := 2 + rng.Intn(m.Width-3)
			y := 2 + rng.Intn(m.Height-3)
			prevX, prevY := x, y
			for m.GetTile(x, y) == world.TileWall {
				prevX, prevY = x, y
				x, y = stagger(rng, m, x, y)
			}
			paint(m, g.Symmetry, g.BrushSize, prevX, prevY)

		case WalkOutwards:
			x, y := startX, startY
			for m.GetTile(x, y) == world.TileFloor {
				x, y = stagger(rng, m, x, y)
			}
			paint(m, g.Symmetry, g.BrushSize, x, y)

		case CentralAttractor:
			x := 2 + rng.Intn(m.Width-3)
			y := 2 + rng.Intn(m.Height-3)
			prevX, prevY := x, y
			path := world.Line(world.Point{X: x, Y: y}, start)
			for m.GetTile(x, y) == world.TileWall && len(path) > 0 {
				prevX, prevY = x, y
				x, y = path[0].X, path[0].Y
				path = path[1:]
			}
			paint(m, g.Symmetry, g.BrushSize, prevX, prevY)
		}

		d.TakeSnapshot()
		floors = m.Count(world.TileFloor)
	}
}
