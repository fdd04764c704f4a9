package level

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/samdwyer/mapforge/internal/builders"
	"github.com/samdwyer/mapforge/internal/world"
)

func caveParams(seed int64) Params {
	return Params{Depth: 3, Difficulty: 4, Width: 64, Height: 40, Seed: seed, Recipe: "cave"}
}

func TestGenerateDeterministic(t *testing.T) {
	g := &Generator{}
	a, err := g.Generate(context.Background(), caveParams(7))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := g.Generate(context.Background(), caveParams(7))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a.Map.Fingerprint() != b.Map.Fingerprint() {
		t.Error("same seed produced different maps")
	}
	if !slices.Equal(a.Spawns, b.Spawns) {
		t.Error("same seed produced different spawns")
	}
	if a.RunID != b.RunID {
		t.Errorf("run ids: %v != %v", a.RunID, b.RunID)
	}
}

func TestGenerateResult(t *testing.T) {
	res, err := (&Generator{Snapshots: true}).Generate(context.Background(), caveParams(3))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Recipe != "cave" || res.Seed != 3 {
		t.Errorf("identity: recipe=%q seed=%d", res.Recipe, res.Seed)
	}
	if len(res.History) == 0 {
		t.Error("snapshots enabled but history is empty")
	}
	x, y := res.Start()
	if !res.Map.GetTile(x, y).IsWalkable() {
		t.Errorf("start (%d,%d) is not walkable", x, y)
	}
	if res.Map.Count(world.TileStairsDown) != 1 {
		t.Errorf("stairs: %d != 1", res.Map.Count(world.TileStairsDown))
	}
	if res.Roster == nil || res.Roster.Len() != len(res.Spawns) {
		t.Errorf("roster does not hold every spawn")
	}
	if len(res.Stages) == 0 || res.Stages[0] != "cellular_automata" {
		t.Errorf("stages: %v", res.Stages)
	}
}

func TestGenerateTimeSeed(t *testing.T) {
	p := caveParams(0)
	res, err := (&Generator{}).Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Seed == 0 {
		t.Error("seed 0 was not replaced")
	}
}

func TestGenerateByDepth(t *testing.T) {
	p := Params{Depth: 1, Difficulty: 4, Width: 80, Height: 50, Seed: 12345}
	res, err := (&Generator{}).Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Recipe != "town" {
		t.Errorf("depth 1 recipe: %q != town", res.Recipe)
	}
}

func TestGenerateUnknownRecipe(t *testing.T) {
	p := caveParams(1)
	p.Recipe = "labyrinth_of_doom"
	if _, err := (&Generator{}).Generate(context.Background(), p); err == nil {
		t.Error("expected error for unknown recipe")
	}
}

func TestGenerateBuildFailureIsError(t *testing.T) {
	// The town needs at least 60x30.
	p := Params{Depth: 1, Difficulty: 4, Width: 40, Height: 20, Seed: 1, Recipe: "town"}
	_, err := (&Generator{}).Generate(context.Background(), p)
	if !errors.Is(err, builders.ErrPrecondition) {
		t.Errorf("error: %v, want ErrPrecondition", err)
	}
}

type failingMaterializer struct{ calls int }

func (f *failingMaterializer) Materialize(int, string) error {
	f.calls++
	return errors.New("no room in the world")
}

func TestGenerateMaterializerError(t *testing.T) {
	m := &failingMaterializer{}
	res, err := (&Generator{Materializer: m}).Generate(context.Background(), caveParams(5))
	if res == nil {
		t.Fatalf("no result: %v", err)
	}
	if len(res.Spawns) == 0 {
		t.Skip("seed produced no spawns")
	}
	if err == nil {
		t.Fatal("expected materializer error")
	}
	if res.Roster != nil {
		t.Error("result should be returned without a default roster")
	}
	if m.calls != len(res.Spawns) {
		t.Errorf("calls: %d != %d", m.calls, len(res.Spawns))
	}
}

func TestResultGallery(t *testing.T) {
	res, err := (&Generator{}).Generate(context.Background(), caveParams(9))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	pages := res.Gallery(8)
	if len(pages) == 0 {
		t.Fatal("no gallery pages")
	}
	for _, p := range pages {
		if p.Width != res.Map.Width || p.Height != res.Map.Height {
			t.Errorf("page size %dx%d != %dx%d", p.Width, p.Height, res.Map.Width, res.Map.Height)
		}
	}
}
