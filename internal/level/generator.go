// Package level drives level generation: it picks the builder chain for a
// level, runs it and hands the spawn requests to a materializer.
package level

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/builders"
	"github.com/samdwyer/mapforge/internal/entity"
	"github.com/samdwyer/mapforge/internal/gamedata"
	"github.com/samdwyer/mapforge/internal/telemetry"
	"github.com/samdwyer/mapforge/internal/wfc"
	"github.com/samdwyer/mapforge/internal/world"
)

// Params identifies the level to build.
type Params struct {
	Depth      int
	Difficulty int
	Width      int
	Height     int
	// Seed for the random stream. A seed of 0 means a time-based seed.
	Seed int64
	// Recipe names a chain from builders.RecipeNames. Empty picks by depth.
	Recipe string
}

// Result is a finished level.
type Result struct {
	Map     *world.Map
	Spawns  []builders.Spawn
	History []*world.Map
	Stages  []string
	Recipe  string
	RunID   uuid.UUID
	Seed    int64
	// Roster holds the spawned entities when the generator used its default
	// materializer.
	Roster *entity.Roster
}

// Generator builds levels.
type Generator struct {
	Logger *zap.Logger
	// Roller overrides the embedded spawn tables.
	Roller builders.Roller
	// Materializer receives every spawn. Nil creates an entity.Roster per level.
	Materializer builders.Materializer
	// Snapshots records the build history for playback.
	Snapshots bool
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// Generate builds one level. Recipe bugs surface as errors wrapping
// builders.ErrPrecondition, ErrNoStartingPosition or ErrNoStairs.
func (g *Generator) Generate(ctx context.Context, p Params) (res *Result, err error) {
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ctx, span := telemetry.Tracer("level").Start(ctx, "level.generate")
	defer span.End()

	opts := []builders.Option{
		builders.WithLogger(g.logger()),
		builders.WithSnapshots(g.Snapshots),
		builders.WithSeed(seed),
	}
	if g.Roller != nil {
		opts = append(opts, builders.WithRoller(g.Roller))
	}

	var chain *builders.BuilderChain
	if p.Recipe != "" {
		chain, err = builders.Recipe(p.Recipe, p.Depth, p.Difficulty, p.Width, p.Height, rng, opts...)
		if err != nil {
			return nil, err
		}
	} else {
		chain = builders.LevelBuilder(p.Depth, p.Difficulty, p.Width, p.Height, rng, opts...)
	}

	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			res, err = nil, fmt.Errorf("build %s (seed %d): %w", chain.Name(), seed, e)
		}
	}()

	d := chain.Build(ctx, rng)
	res = &Result{
		Map:     d.Map.Clone(),
		Spawns:  append([]builders.Spawn(nil), d.SpawnList...),
		History: d.History,
		Stages:  chain.Stages(),
		Recipe:  chain.Name(),
		RunID:   d.RunID,
		Seed:    seed,
	}

	m := g.Materializer
	if m == nil {
		res.Roster = entity.NewRoster(gamedata.MustLoadEntityRegistry(), res.Map.Width)
		m = res.Roster
	}
	span.SetAttributes(
		attribute.String("level.recipe", res.Recipe),
		attribute.Int64("level.seed", seed),
		attribute.Int("level.spawns", len(res.Spawns)),
	)
	g.logger().Info("level generated",
		zap.String("recipe", res.Recipe),
		zap.Int64("seed", seed),
		zap.Int("depth", p.Depth),
		zap.Int("stages", len(res.Stages)),
		zap.Int("spawns", len(res.Spawns)),
	)
	if err := chain.SpawnEntities(m); err != nil {
		return res, err
	}
	return res, nil
}

// Start returns the starting position of the level.
func (r *Result) Start() (int, int) {
	return r.Map.XY(r.Map.Start)
}

// Gallery cuts the finished map into chunk-sized patterns the way the wave
// function collapse stage does and lays them out on pages of the map's size.
func (r *Result) Gallery(chunkSize int) []*world.Map {
	patterns := wfc.BuildPatterns(r.Map, chunkSize, true, true)
	return wfc.Gallery(patterns, chunkSize, r.Map.Width, r.Map.Height)
}
