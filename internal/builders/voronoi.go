package builders

import (
	"math/rand"
	"sort"

	"github.com/samdwyer/mapforge/internal/world"
)

// VoronoiCell partitions the map around random seeds and opens the interior
// of every region, leaving thin walls along region borders.
type VoronoiCell struct {
	Seeds  int
	Metric world.DistanceMetric
}

// VoronoiPythagoras uses straight-line distance.
func VoronoiPythagoras() *VoronoiCell {
	return &VoronoiCell{Seeds: 64, Metric: world.Pythagoras}
}

// VoronoiManhattan uses taxicab distance.
func VoronoiManhattan() *VoronoiCell {
	return &VoronoiCell{Seeds: 64, Metric: world.Manhattan}
}

// VoronoiChebyshev uses chessboard distance.
func VoronoiChebyshev() *VoronoiCell {
	return &VoronoiCell{Seeds: 64, Metric: world.Chebyshev}
}

// Name implements Stage.
func (v *VoronoiCell) Name() string { return "voronoi/" + v.Metric.String() }

// BuildInitial implements InitialBuilder.
func (v *VoronoiCell) BuildInitial(rng *rand.Rand, d *BuildData) {
	m := d.Map
	seeds := v.placeSeeds(rng, m)
	membership := v.assign(m, seeds)

	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			mine := membership[m.Idx(x, y)]
			foreign := 0
			if membership[m.Idx(x-1, y)] != mine {
				foreign++
			}
			if membership[m.Idx(x+1, y)] != mine {
				foreign++
			}
			if membership[m.Idx(x, y-1)] != mine {
				foreign++
			}
			if membership[m.Idx(x, y+1)] != mine {
				foreign++
			}
			if foreign < 2 {
				m.SetTile(x, y, world.TileFloor)
			}
		}
		d.TakeSnapshot()
	}
}

// placeSeeds picks distinct random seed points.
func (v *VoronoiCell) placeSeeds(rng *rand.Rand, m *world.Map) []world.Point {
	n := min(v.Seeds, (m.Width-1)*(m.Height-1))
	seen := make(map[world.Point]bool, n)
	seeds := make([]world.Point, 0, n)
	for len(seeds) < n {
		p := world.Point{X: 1 + rng.Intn(m.Width-1), Y: 1 + rng.Intn(m.Height-1)}
		if seen[p] {
			continue
		}
		seen[p] = true
		seeds = append(seeds, p)
	}
	return seeds
}

// assign maps every cell to its nearest seed. Equidistant seeds resolve to
// the one placed first.
func (v *VoronoiCell) assign(m *world.Map, seeds []world.Point) []int {
	type seedDistance struct {
		seed int
		dist float64
	}
	membership := make([]int, len(m.Tiles))
	dists := make([]seedDistance, len(seeds))
	for i := range membership {
		x, y := m.XY(i)
		p := world.Point{X: x, Y: y}
		for s, pos := range seeds {
			dists[s] = seedDistance{seed: s, dist: v.Metric.Distance(p, pos)}
		}
		sort.SliceStable(dists, func(a, b int) bool { return dists[a].dist < dists[b].dist })
		membership[i] = dists[0].seed
	}
	return membership
}
