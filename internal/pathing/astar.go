package pathing

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"

	"github.com/samdwyer/mapforge/internal/world"
)

// roadSearch is a 4-way A* over tiles accepted by the keep predicate.
type roadSearch struct {
	m    *world.Map
	keep func(world.Tile) bool
	nbs  paths.Neighbors
}

func (s *roadSearch) passable(p gruid.Point) bool {
	return s.m.InBounds(p.X, p.Y) && s.keep(s.m.GetTile(p.X, p.Y))
}

func (s *roadSearch) Neighbors(p gruid.Point) []gruid.Point {
	return s.nbs.Cardinal(p, s.passable)
}

func (s *roadSearch) Cost(p, q gruid.Point) int {
	return 1
}

func (s *roadSearch) Estimation(p, q gruid.Point) int {
	return paths.DistanceManhattan(p, q)
}

// Path finds a shortest 4-way path from one index to another crossing only
// tiles accepted by keep. The result includes both ends and is nil when no
// path exists.
func Path(m *world.Map, from, to int, keep func(world.Tile) bool) []int {
	fx, fy := m.XY(from)
	tx, ty := m.XY(to)
	pr := paths.NewPathRange(gruid.NewRange(0, 0, m.Width, m.Height))
	pts := pr.AstarPath(&roadSearch{m: m, keep: keep}, gruid.Point{X: fx, Y: fy}, gruid.Point{X: tx, Y: ty})
	if len(pts) == 0 {
		return nil
	}
	out := make([]int, len(pts))
	for i, p := range pts {
		out[i] = m.Idx(p.X, p.Y)
	}
	return out
}
