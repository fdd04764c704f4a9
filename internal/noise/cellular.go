// Package noise provides the coherent noise sources used by map generation.
package noise

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/samdwyer/mapforge/internal/world"
)

// Cellular is Worley noise that returns a value identifying the nearest
// feature point rather than the distance to it. Every input point inside
// one Voronoi cell yields the same value.
type Cellular struct {
	Seed      int64
	Frequency float64
	Metric    world.DistanceMetric
}

// NewCellular returns cellular noise with the defaults used for spawn regions.
func NewCellular(seed int64) *Cellular {
	return &Cellular{
		Seed:      seed,
		Frequency: 0.08,
		Metric:    world.Manhattan,
	}
}

// Value returns the cell value at (x, y), in [-1, 1).
func (c *Cellular) Value(x, y float64) float64 {
	x *= c.Frequency
	y *= c.Frequency
	cx := int(math.Floor(x))
	cy := int(math.Floor(y))

	best := math.MaxFloat64
	var value float64
	for yi := cy - 1; yi <= cy+1; yi++ {
		for xi := cx - 1; xi <= cx+1; xi++ {
			h := c.hash(xi, yi)
			fx := float64(xi) + float64(h&0xffff)/65536
			fy := float64(yi) + float64((h>>16)&0xffff)/65536
			d := c.distance(fx-x, fy-y)
			if d < best {
				best = d
				value = float64(h>>32)/float64(1<<31) - 1
			}
		}
	}
	return value
}

func (c *Cellular) distance(dx, dy float64) float64 {
	dx, dy = math.Abs(dx), math.Abs(dy)
	switch c.Metric {
	case world.Manhattan:
		return dx + dy
	case world.Chebyshev:
		return math.Max(dx, dy)
	default:
		return dx*dx + dy*dy
	}
}

func (c *Cellular) hash(x, y int) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(c.Seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(x)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(y)))
	return xxhash.Sum64(buf[:])
}
