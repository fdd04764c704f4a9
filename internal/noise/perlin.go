package noise

import (
	"github.com/aquilax/go-perlin"
)

const (
	perlinAlpha  = 2
	perlinBeta   = 2
	perlinOctave = 3
)

// Field is a smooth 2D noise field sampled on grid coordinates.
type Field struct {
	p     *perlin.Perlin
	scale float64
}

// NewField creates a Perlin field. Scale sets how many noise units one tile spans.
func NewField(seed int64, scale float64) *Field {
	return &Field{
		p:     perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, seed),
		scale: scale,
	}
}

// At returns the field value at a tile, normalized to [0, 1].
func (f *Field) At(x, y int) float64 {
	v := (f.p.Noise2D(float64(x)*f.scale, float64(y)*f.scale) + 1) / 2
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
