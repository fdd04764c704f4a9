package builders

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/wfc"
	"github.com/samdwyer/mapforge/internal/world"
)

// WaveformCollapse rebuilds the current map from its own chunks. The input is
// cut into ChunkSize squares, mirrored, deduplicated and reassembled so that
// every pair of neighbouring chunks has matching exits.
type WaveformCollapse struct {
	ChunkSize int
}

// Name implements Stage.
func (WaveformCollapse) Name() string { return "waveform_collapse" }

// BuildMeta implements MetaBuilder.
func (w WaveformCollapse) BuildMeta(rng *rand.Rand, d *BuildData) {
	size := w.ChunkSize
	if size <= 0 {
		size = 8
	}

	patterns := wfc.BuildPatterns(d.Map, size, true, true)
	constraints := wfc.BuildConstraints(patterns, size)
	for _, page := range wfc.Gallery(patterns, size, d.Width, d.Height) {
		pushSnapshot(d, page)
	}

	solver := wfc.NewSolver(constraints, size, d.Width, d.Height)
	solver.Logger = d.Logger()
	if d.snapshots {
		solver.Observer = func(m *world.Map) { pushSnapshot(d, m) }
	}
	m := solver.Solve(rng)
	m.Depth = d.Depth

	for x := 0; x < m.Width; x++ {
		m.SetTile(x, 0, world.TileWall)
		m.SetTile(x, m.Height-1, world.TileWall)
	}
	for y := 0; y < m.Height; y++ {
		m.SetTile(0, y, world.TileWall)
		m.SetTile(m.Width-1, y, world.TileWall)
	}

	d.Map = m
	d.Rooms = nil
	d.Corridors = nil
	d.StartingPosition = nil
	d.SpawnList = nil
	d.TakeSnapshot()
	d.Logger().Debug("waveform collapse solved",
		zap.Int("patterns", len(patterns)),
		zap.Int("attempts", solver.Attempts()),
	)
}

// pushSnapshot records a map that is not the build grid, such as a pattern
// gallery page.
func pushSnapshot(d *BuildData, m *world.Map) {
	if d.snapshots {
		d.History = append(d.History, m.Clone())
	}
}
