// Package pathing runs distance maps and path searches over world maps.
package pathing

import (
	"math"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"

	"github.com/samdwyer/mapforge/internal/world"
)

const (
	orthogonalCost = 100
	diagonalCost   = 145 // 1.45 tiles
	costScale      = 100.0
)

// Unreachable is the distance reported for tiles the source cannot reach.
const Unreachable = math.MaxFloat64

// walker adapts a map to gruid's Dijkstra interface: 8-way movement over walkable tiles.
type walker struct {
	m   *world.Map
	nbs paths.Neighbors
}

func (w *walker) passable(p gruid.Point) bool {
	return w.m.IsPassable(p.X, p.Y)
}

func (w *walker) Neighbors(p gruid.Point) []gruid.Point {
	return w.nbs.All(p, w.passable)
}

func (w *walker) Cost(p, q gruid.Point) int {
	if p.X != q.X && p.Y != q.Y {
		return diagonalCost
	}
	return orthogonalCost
}

// Reachability is the result of a single-source distance map.
type Reachability struct {
	m     *world.Map
	start int
	cost  []int // -1 when unreachable
}

// Analyze computes walking distance from start to every walkable tile.
func Analyze(m *world.Map, start int) *Reachability {
	r := &Reachability{
		m:     m,
		start: start,
		cost:  make([]int, len(m.Tiles)),
	}
	for i := range r.cost {
		r.cost[i] = -1
	}
	if start < 0 || start >= len(m.Tiles) {
		return r
	}

	sx, sy := m.XY(start)
	pr := paths.NewPathRange(gruid.NewRange(0, 0, m.Width, m.Height))
	maxCost := len(m.Tiles) * diagonalCost
	nodes := pr.DijkstraMap(&walker{m: m}, []gruid.Point{{X: sx, Y: sy}}, maxCost)
	for _, n := range nodes {
		r.cost[m.Idx(n.P.X, n.P.Y)] = n.Cost
	}
	return r
}

// Start returns the source index.
func (r *Reachability) Start() int {
	return r.start
}

// Reachable reports whether idx was reached.
func (r *Reachability) Reachable(idx int) bool {
	return r.cost[idx] >= 0
}

// Distance returns the walking distance in tiles, or Unreachable.
func (r *Reachability) Distance(idx int) float64 {
	if r.cost[idx] < 0 {
		return Unreachable
	}
	return float64(r.cost[idx]) / costScale
}

// Farthest returns the reachable walkable index with the greatest distance.
// Ties resolve to the lowest index. Returns -1 if nothing is reachable.
func (r *Reachability) Farthest() int {
	best, bestCost := -1, -1
	for i, c := range r.cost {
		if c > bestCost && r.m.Tiles[i].IsWalkable() {
			best, bestCost = i, c
		}
	}
	return best
}

// Unreachable returns the walkable tiles that were never reached, ascending.
func (r *Reachability) Unreachable() []int {
	var out []int
	for i, t := range r.m.Tiles {
		if t.IsWalkable() && r.cost[i] < 0 {
			out = append(out, i)
		}
	}
	return out
}

// Cull converts every walkable tile unreachable from start into wall and
// returns the number of tiles changed. Running it twice changes nothing.
func Cull(m *world.Map, start int) int {
	r := Analyze(m, start)
	culled := r.Unreachable()
	for _, idx := range culled {
		m.Tiles[idx] = world.TileWall
	}
	return len(culled)
}
