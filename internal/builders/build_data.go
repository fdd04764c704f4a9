// Package builders assembles levels from a chain of generation stages.
//
// A chain starts with exactly one InitialBuilder, which lays out the grid,
// followed by any number of MetaBuilders that transform it: carving
// corridors, placing doors, choosing the starting position, pruning
// unreachable areas, placing stairs and requesting spawns. All stages share a
// single BuildData and draw from a single random stream, so a seed fully
// determines the result.
package builders

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/world"
)

var (
	// ErrPrecondition is raised (via panic) when a stage runs without the
	// build data it needs, e.g. a corridor stage in a chain with no rooms.
	ErrPrecondition = errors.New("builder precondition violated")
	// ErrNoStartingPosition is raised when a finished chain never chose a start.
	ErrNoStartingPosition = errors.New("build finished without a starting position")
	// ErrNoStairs is raised when a finished chain has no down stairs.
	ErrNoStairs = errors.New("build finished without down stairs")
)

// Stage is the part shared by every builder.
type Stage interface {
	Name() string
}

// InitialBuilder creates the first layout of a chain.
type InitialBuilder interface {
	Stage
	BuildInitial(rng *rand.Rand, data *BuildData)
}

// MetaBuilder transforms a layout produced by earlier stages.
type MetaBuilder interface {
	Stage
	BuildMeta(rng *rand.Rand, data *BuildData)
}

// Roller picks a weighted spawn key from a named table. A band of zero means
// no difficulty filter. An empty key means nothing should spawn.
type Roller interface {
	Roll(rng *rand.Rand, table string, band int) string
}

// Materializer turns a spawn request into a concrete entity.
type Materializer interface {
	Materialize(idx int, key string) error
}

// Spawn requests an entity with Key at tile index Idx.
type Spawn struct {
	Idx int
	Key string
}

// BuildData is the state shared by all stages of a chain.
type BuildData struct {
	Map    *world.Map
	Width  int
	Height int

	// Depth identifies the level; Difficulty scales spawns.
	Depth      int
	Difficulty int

	// Rooms is nil until a room-based stage records rooms.
	Rooms []world.Rect
	// Corridors is nil until a corridor stage records carved cells.
	Corridors [][]int
	// StartingPosition is nil until a starting-position stage runs.
	StartingPosition *world.Point

	SpawnList []Spawn
	History   []*world.Map

	Roller Roller
	RunID  uuid.UUID

	log       *zap.Logger
	snapshots bool
}

// NewBuildData creates an all-wall context without snapshots.
func NewBuildData(depth, difficulty, width, height int) *BuildData {
	m := world.NewMap(width, height)
	m.Depth = depth
	return &BuildData{
		Map:        m,
		Width:      width,
		Height:     height,
		Depth:      depth,
		Difficulty: difficulty,
		log:        zap.NewNop(),
	}
}

// Logger returns the logger stages should use.
func (d *BuildData) Logger() *zap.Logger {
	return d.log
}

// SetLogger replaces the stage logger.
func (d *BuildData) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	d.log = l
}

// EnableSnapshots turns the snapshot history on or off.
func (d *BuildData) EnableSnapshots(on bool) {
	d.snapshots = on
}

// TakeSnapshot appends a copy of the current grid to the history when
// snapshots are enabled.
func (d *BuildData) TakeSnapshot() {
	if d.snapshots {
		d.History = append(d.History, d.Map.Clone())
	}
}

// RequireRooms returns the rooms or panics if no stage has recorded any.
func (d *BuildData) RequireRooms(stage string) []world.Rect {
	if d.Rooms == nil {
		panic(fmt.Errorf("%w: %s requires a builder with room structures", ErrPrecondition, stage))
	}
	return d.Rooms
}

// RequireCorridors returns the corridors or panics if none were recorded.
func (d *BuildData) RequireCorridors(stage string) [][]int {
	if d.Corridors == nil {
		panic(fmt.Errorf("%w: %s requires a builder with corridors", ErrPrecondition, stage))
	}
	return d.Corridors
}

// RequireStart returns the starting position or panics if none was set.
func (d *BuildData) RequireStart(stage string) world.Point {
	if d.StartingPosition == nil {
		panic(fmt.Errorf("%w: %s requires a starting position", ErrPrecondition, stage))
	}
	return *d.StartingPosition
}

// StartIdx returns the grid index of the starting position, -1 if unset.
func (d *BuildData) StartIdx() int {
	if d.StartingPosition == nil {
		return -1
	}
	return d.Map.Idx(d.StartingPosition.X, d.StartingPosition.Y)
}

// SetStart records the starting position.
func (d *BuildData) SetStart(x, y int) {
	d.StartingPosition = &world.Point{X: x, Y: y}
}

// Spawn appends a spawn request.
func (d *BuildData) Spawn(idx int, key string) {
	d.SpawnList = append(d.SpawnList, Spawn{Idx: idx, Key: key})
}

// HasSpawnAt reports whether a spawn is already requested at idx.
func (d *BuildData) HasSpawnAt(idx int) bool {
	for _, s := range d.SpawnList {
		if s.Idx == idx {
			return true
		}
	}
	return false
}

// roller returns the configured roller or the embedded spawn tables.
func (d *BuildData) roller() Roller {
	if d.Roller == nil {
		d.Roller = defaultRoller()
	}
	return d.Roller
}
