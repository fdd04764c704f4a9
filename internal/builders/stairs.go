package builders

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/pathing"
	"github.com/samdwyer/mapforge/internal/world"
)

// DistantExit places the down stairs on the reachable tile farthest from the
// starting position.
type DistantExit struct{}

// Name implements Stage.
func (DistantExit) Name() string { return "distant_exit" }

// BuildMeta implements MetaBuilder.
func (e DistantExit) BuildMeta(_ *rand.Rand, d *BuildData) {
	start := d.RequireStart(e.Name())
	r := pathing.Analyze(d.Map, d.Map.Idx(start.X, start.Y))
	exit := r.Farthest()
	if exit < 0 {
		d.Logger().Debug("no reachable exit tile")
		return
	}
	d.Map.Tiles[exit] = world.TileStairsDown
	d.TakeSnapshot()
	d.Logger().Debug("exit placed", zap.Int("idx", exit), zap.Float64("distance", r.Distance(exit)))
}

// CullUnreachable turns every walkable tile the player cannot reach into wall
// and drops the spawns that stood on them.
type CullUnreachable struct{}

// Name implements Stage.
func (CullUnreachable) Name() string { return "cull_unreachable" }

// BuildMeta implements MetaBuilder.
func (c CullUnreachable) BuildMeta(_ *rand.Rand, d *BuildData) {
	start := d.RequireStart(c.Name())
	culled := pathing.Cull(d.Map, d.Map.Idx(start.X, start.Y))
	if culled > 0 {
		kept := d.SpawnList[:0]
		for _, s := range d.SpawnList {
			if d.Map.Tiles[s.Idx].IsWalkable() {
				kept = append(kept, s)
			}
		}
		d.SpawnList = kept
	}
	d.TakeSnapshot()
	d.Logger().Debug("unreachable tiles culled", zap.Int("tiles", culled), zap.Int("spawns", len(d.SpawnList)))
}
