package builders

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/mapforge/internal/world"
)

// fixedRoller always rolls the same key.
type fixedRoller string

func (f fixedRoller) Roll(*rand.Rand, string, int) string { return string(f) }

// expectPanic runs fn and checks that it panics with an error matching target.
func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic wrapping %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want an error wrapping %v", r, target)
		}
	}()
	fn()
}

func TestBuildWithoutStarterPanics(t *testing.T) {
	c := NewChain(3, 1, 40, 30)
	expectPanic(t, ErrPrecondition, func() {
		c.Build(context.Background(), rand.New(rand.NewSource(1)))
	})
}

func TestSecondStarterPanics(t *testing.T) {
	c := NewChain(3, 1, 40, 30).StartWith(CellularAutomata{})
	expectPanic(t, ErrPrecondition, func() {
		c.StartWith(Maze{})
	})
}

func TestMissingStartPanics(t *testing.T) {
	c := NewChain(3, 1, 40, 30).StartWith(CellularAutomata{})
	expectPanic(t, ErrNoStartingPosition, func() {
		c.Build(context.Background(), rand.New(rand.NewSource(12345)))
	})
}

func TestMissingStairsPanics(t *testing.T) {
	c := NewChain(3, 1, 40, 30).
		StartWith(CellularAutomata{}).
		With(AreaStartingPosition{X: XCenter, Y: YCenter})
	expectPanic(t, ErrNoStairs, func() {
		c.Build(context.Background(), rand.New(rand.NewSource(12345)))
	})
}

func TestMetaStageWithoutRoomsPanics(t *testing.T) {
	c := NewChain(3, 1, 40, 30).
		StartWith(CellularAutomata{}).
		With(DoglegCorridors{})
	expectPanic(t, ErrPrecondition, func() {
		c.Build(context.Background(), rand.New(rand.NewSource(12345)))
	})
}

func TestStagesRunInOrder(t *testing.T) {
	c := NewChain(3, 1, 40, 30).
		StartWith(CellularAutomata{}).
		With(AreaStartingPosition{X: XCenter, Y: YCenter}).
		With(CullUnreachable{}).
		With(DistantExit{})

	want := []string{"cellular_automata", "area_starting_position", "cull_unreachable", "distant_exit"}
	got := c.Stages()
	if len(got) != len(want) {
		t.Fatalf("Stages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage %d: %s != %s", i, got[i], want[i])
		}
	}
}

func TestBuildCopiesIdentityIntoMap(t *testing.T) {
	c := NewChain(7, 2, 40, 30, WithName("cave"), WithSeed(99)).
		StartWith(CellularAutomata{}).
		With(AreaStartingPosition{X: XCenter, Y: YCenter}).
		With(CullUnreachable{}).
		With(DistantExit{})
	d := c.Build(context.Background(), rand.New(rand.NewSource(99)))

	if d.Map.Depth != 7 {
		t.Errorf("map depth: %v != %v", d.Map.Depth, 7)
	}
	if d.Map.Start != d.StartIdx() {
		t.Errorf("map start: %v != %v", d.Map.Start, d.StartIdx())
	}
	if c.Name() != "cave" {
		t.Errorf("chain name: %v != %v", c.Name(), "cave")
	}

	other := NewChain(7, 2, 40, 30, WithName("cave"), WithSeed(99))
	if other.Data().RunID != d.RunID {
		t.Errorf("run id should derive from recipe and seed: %v != %v", other.Data().RunID, d.RunID)
	}
}

func TestSnapshots(t *testing.T) {
	build := func(on bool) *BuildData {
		c := NewChain(3, 1, 40, 30, WithSnapshots(on)).
			StartWith(CellularAutomata{}).
			With(AreaStartingPosition{X: XCenter, Y: YCenter}).
			With(CullUnreachable{}).
			With(DistantExit{})
		return c.Build(context.Background(), rand.New(rand.NewSource(5)))
	}

	if h := build(false).History; len(h) != 0 {
		t.Errorf("snapshots disabled but history has %d entries", len(h))
	}
	d := build(true)
	// Initial noise, every smoothing pass, cull and exit.
	if want := 1 + caIterations + 2; len(d.History) != want {
		t.Errorf("history length: %v != %v", len(d.History), want)
	}
	last := d.History[len(d.History)-1]
	if last.Fingerprint() != d.Map.Fingerprint() {
		t.Error("last snapshot should match the final map")
	}
}

type recordingMaterializer struct {
	calls []Spawn
	fail  string
}

func (r *recordingMaterializer) Materialize(idx int, key string) error {
	r.calls = append(r.calls, Spawn{Idx: idx, Key: key})
	if key == r.fail {
		return errors.New("no such entity")
	}
	return nil
}

func TestSpawnEntities(t *testing.T) {
	c := NewChain(3, 1, 40, 30).
		StartWith(CellularAutomata{}).
		With(AreaStartingPosition{X: XCenter, Y: YCenter}).
		With(CullUnreachable{}).
		With(DistantExit{})
	d := c.Build(context.Background(), rand.New(rand.NewSource(12345)))
	d.SpawnList = nil
	d.Spawn(41, "goblin")
	d.Spawn(42, "door")
	d.Spawn(43, "orc")

	m := &recordingMaterializer{fail: "door"}
	err := c.SpawnEntities(m)
	if len(m.calls) != 3 {
		t.Fatalf("materialize calls: %v != %v", len(m.calls), 3)
	}
	for i, s := range d.SpawnList {
		if m.calls[i] != s {
			t.Errorf("call %d: %v != %v", i, m.calls[i], s)
		}
	}
	if err == nil {
		t.Error("expected the failed spawn to be reported")
	}
}

func TestSpawnEntitiesBeforeBuildPanics(t *testing.T) {
	c := NewChain(3, 1, 40, 30).StartWith(CellularAutomata{})
	c.Data().Spawn(41, "goblin")
	m := &recordingMaterializer{}
	expectPanic(t, ErrPrecondition, func() { c.SpawnEntities(m) })
	if len(m.calls) != 0 {
		t.Errorf("materialize calls before build: %v != %v", len(m.calls), 0)
	}
}

func TestRequireHelpers(t *testing.T) {
	d := NewBuildData(1, 1, 20, 20)
	expectPanic(t, ErrPrecondition, func() { d.RequireRooms("test") })
	expectPanic(t, ErrPrecondition, func() { d.RequireCorridors("test") })
	expectPanic(t, ErrPrecondition, func() { d.RequireStart("test") })

	d.Rooms = []world.Rect{}
	if rooms := d.RequireRooms("test"); len(rooms) != 0 {
		t.Errorf("expected an empty room list, got %v", rooms)
	}
	d.SetStart(3, 4)
	if p := d.RequireStart("test"); p != (world.Point{X: 3, Y: 4}) {
		t.Errorf("start: %v != %v", p, world.Point{X: 3, Y: 4})
	}
	if d.StartIdx() != d.Map.Idx(3, 4) {
		t.Errorf("start index: %v != %v", d.StartIdx(), d.Map.Idx(3, 4))
	}
}
