package builders

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/gamedata"
	"github.com/samdwyer/mapforge/internal/telemetry"
	"github.com/samdwyer/mapforge/internal/world"
)

// runNamespace scopes run ids derived from recipe and seed.
var runNamespace = uuid.MustParse("6f1c9a62-3b7e-4c55-9a0e-2d8f4b6e7a10")

var (
	rollerOnce sync.Once
	rollerDef  Roller
)

func defaultRoller() Roller {
	rollerOnce.Do(func() {
		rollerDef = gamedata.MustLoadSpawnTables()
	})
	return rollerDef
}

// BuilderChain runs one initial builder followed by meta builders in order.
type BuilderChain struct {
	name     string
	seed     int64
	starter  InitialBuilder
	builders []MetaBuilder
	data     *BuildData
	log      *zap.Logger
	built    bool
}

// Option configures a chain.
type Option func(*BuilderChain)

// WithLogger sets the logger used by the chain and its stages.
func WithLogger(l *zap.Logger) Option {
	return func(c *BuilderChain) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSnapshots records a copy of the grid after significant steps.
func WithSnapshots(on bool) Option {
	return func(c *BuilderChain) {
		c.data.EnableSnapshots(on)
	}
}

// WithRoller sets the spawn table collaborator.
func WithRoller(r Roller) Option {
	return func(c *BuilderChain) {
		c.data.Roller = r
	}
}

// WithName labels the chain in logs and traces.
func WithName(name string) Option {
	return func(c *BuilderChain) {
		c.name = name
	}
}

// WithSeed records the seed the caller's rng was created from. It only
// affects the run id.
func WithSeed(seed int64) Option {
	return func(c *BuilderChain) {
		c.seed = seed
	}
}

// NewChain creates an empty chain for a level.
func NewChain(depth, difficulty, width, height int, opts ...Option) *BuilderChain {
	c := &BuilderChain{
		name: "custom",
		data: NewBuildData(depth, difficulty, width, height),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.data.RunID = uuid.NewSHA1(runNamespace, []byte(fmt.Sprintf("%s/%d/%d", c.name, depth, c.seed)))
	c.log = c.log.With(zap.String("recipe", c.name), zap.String("run_id", c.data.RunID.String()))
	c.data.SetLogger(c.log)
	return c
}

// Name returns the recipe name.
func (c *BuilderChain) Name() string {
	return c.name
}

// Data returns the build context.
func (c *BuilderChain) Data() *BuildData {
	return c.data
}

// StartWith sets the initial builder. A chain has exactly one.
func (c *BuilderChain) StartWith(b InitialBuilder) *BuilderChain {
	if c.starter != nil {
		panic(fmt.Errorf("%w: chain %s already has a starting builder", ErrPrecondition, c.name))
	}
	c.starter = b
	return c
}

// With appends a meta builder.
func (c *BuilderChain) With(b MetaBuilder) *BuilderChain {
	c.builders = append(c.builders, b)
	return c
}

// Stages returns the stage names in execution order.
func (c *BuilderChain) Stages() []string {
	var names []string
	if c.starter != nil {
		names = append(names, c.starter.Name())
	}
	for _, b := range c.builders {
		names = append(names, b.Name())
	}
	return names
}

// Build runs every stage and returns the finished context. It panics when the
// chain has no initial builder, or when the finished level lacks a starting
// position or down stairs.
func (c *BuilderChain) Build(ctx context.Context, rng *rand.Rand) *BuildData {
	if c.starter == nil {
		panic(fmt.Errorf("%w: cannot run chain %s without a starting builder", ErrPrecondition, c.name))
	}

	tracer := telemetry.Tracer("builders")
	ctx, span := tracer.Start(ctx, "mapforge.build")
	defer span.End()

	startTime := time.Now()
	d := c.data

	c.runStage(ctx, 0, c.starter, func() { c.starter.BuildInitial(rng, d) })
	for i, b := range c.builders {
		c.runStage(ctx, i+1, b, func() { b.BuildMeta(rng, d) })
	}

	d.Map.Depth = d.Depth
	d.Map.Rooms = d.Rooms
	d.Map.Start = d.StartIdx()

	span.SetAttributes(
		attribute.String("build.recipe", c.name),
		attribute.String("build.run_id", d.RunID.String()),
		attribute.Int("build.width", d.Width),
		attribute.Int("build.height", d.Height),
		attribute.Int("build.depth", d.Depth),
		attribute.Int("build.difficulty", d.Difficulty),
		attribute.Int("build.stage_count", len(c.builders)+1),
		attribute.Int("build.spawn_count", len(d.SpawnList)),
		attribute.String("build.fingerprint", fmt.Sprintf("%016x", d.Map.Fingerprint())),
		attribute.Int64("build.generation_ms", time.Since(startTime).Milliseconds()),
	)

	if d.StartingPosition == nil {
		span.SetStatus(codes.Error, ErrNoStartingPosition.Error())
		panic(fmt.Errorf("%w: chain %s", ErrNoStartingPosition, c.name))
	}
	if d.Map.Count(world.TileStairsDown) == 0 {
		span.SetStatus(codes.Error, ErrNoStairs.Error())
		panic(fmt.Errorf("%w: chain %s", ErrNoStairs, c.name))
	}

	c.built = true
	c.log.Debug("build complete",
		zap.Int("spawns", len(d.SpawnList)),
		zap.Int("snapshots", len(d.History)),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return d
}

func (c *BuilderChain) runStage(ctx context.Context, index int, s Stage, run func()) {
	_, span := telemetry.Tracer("builders").Start(ctx, "mapforge.stage")
	defer span.End()

	run()

	walkable := c.data.Map.CountTiles(world.Tile.IsWalkable)
	span.SetAttributes(
		attribute.String("stage.name", s.Name()),
		attribute.Int("stage.index", index),
		attribute.Int("stage.walkable_tiles", walkable),
		attribute.Int("stage.spawn_count", len(c.data.SpawnList)),
	)
	c.log.Debug("stage complete",
		zap.Int("index", index),
		zap.String("stage", s.Name()),
		zap.Int("walkable", walkable),
		zap.Int("spawns", len(c.data.SpawnList)),
	)
}

// SpawnEntities hands every spawn request to the materializer in order.
// Failures do not stop the loop; they are joined into the returned error.
// It panics when the chain has not finished a Build.
func (c *BuilderChain) SpawnEntities(m Materializer) error {
	if !c.built {
		panic(fmt.Errorf("%w: chain %s has not been built", ErrPrecondition, c.name))
	}
	var errs []error
	for _, s := range c.data.SpawnList {
		if err := m.Materialize(s.Idx, s.Key); err != nil {
			errs = append(errs, fmt.Errorf("spawn %q at %d: %w", s.Key, s.Idx, err))
		}
	}
	return errors.Join(errs...)
}
