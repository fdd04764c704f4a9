package builders

import (
	"context"
	"math/rand"
	"slices"
	"testing"

	"github.com/samdwyer/mapforge/internal/pathing"
	"github.com/samdwyer/mapforge/internal/world"
)

// exitLast lists recipes whose stairs come from DistantExit with no later
// stage changing tiles.
var exitLast = map[string]bool{
	"cave": true, "drunkard": true, "dla": true, "voronoi": true, "maze": true,
	"accretion": true, "wfc": true, "bsp": true, "bsp-interior": true, "rooms": true,
}

func buildRecipe(t *testing.T, name string, seed int64, w, h int) *BuildData {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	c, err := Recipe(name, 3, 2, w, h, rng, WithRoller(fixedRoller("goblin")), WithSeed(seed))
	if err != nil {
		t.Fatalf("Recipe(%s) failed: %v", name, err)
	}
	return c.Build(context.Background(), rng)
}

func TestRecipesProducePlayableLevels(t *testing.T) {
	for _, name := range RecipeNames() {
		t.Run(name, func(t *testing.T) {
			for _, seed := range []int64{1, 2, 3} {
				d := buildRecipe(t, name, seed, 80, 50)
				start := d.StartIdx()
				if !d.Map.Tiles[start].IsWalkable() {
					t.Errorf("seed %d: start on %v", seed, d.Map.Tiles[start])
				}
				if n := d.Map.Count(world.TileStairsDown); n != 1 {
					t.Errorf("seed %d: stairs: %v != %v", seed, n, 1)
				}

				r := pathing.Analyze(d.Map, start)
				if lost := r.Unreachable(); len(lost) != 0 {
					t.Errorf("seed %d: %d walkable tiles unreachable", seed, len(lost))
				}
				for _, s := range d.SpawnList {
					if !d.Map.Tiles[s.Idx].IsWalkable() {
						t.Errorf("seed %d: spawn %v on %v", seed, s, d.Map.Tiles[s.Idx])
					}
				}

				if exitLast[name] {
					stairs := slices.Index(d.Map.Tiles, world.TileStairsDown)
					if far := r.Farthest(); far != stairs {
						t.Errorf("seed %d: stairs at %d, farthest tile is %d", seed, stairs, far)
					}
				}
			}
		})
	}
}

func TestRecipesAreDeterministic(t *testing.T) {
	for _, name := range RecipeNames() {
		a := buildRecipe(t, name, 777, 80, 50)
		b := buildRecipe(t, name, 777, 80, 50)
		if a.Map.Fingerprint() != b.Map.Fingerprint() {
			t.Errorf("%s: fingerprints differ", name)
		}
		if !slices.Equal(a.SpawnList, b.SpawnList) {
			t.Errorf("%s: spawn lists differ", name)
		}
		if a.RunID != b.RunID {
			t.Errorf("%s: run ids differ", name)
		}
	}
}

func TestRandomRecipeVariety(t *testing.T) {
	seen := map[uint64]bool{}
	for seed := int64(1); seed <= 8; seed++ {
		d := buildRecipe(t, "random", seed, 80, 50)
		seen[d.Map.Fingerprint()] = true
	}
	if len(seen) < 2 {
		t.Error("random recipe produced the same map for every seed")
	}
}

func TestCaveScenario(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c, err := Recipe("cave", 3, 2, 64, 64, rng, WithRoller(fixedRoller("goblin")))
	if err != nil {
		t.Fatal(err)
	}
	d := c.Build(context.Background(), rng)

	if tile := d.Map.Tiles[d.StartIdx()]; tile != world.TileFloor {
		t.Errorf("start tile: %v != %v", tile, world.TileFloor)
	}
	if n := d.Map.Count(world.TileStairsDown); n != 1 {
		t.Errorf("stairs: %v != %v", n, 1)
	}
	if lost := pathing.Analyze(d.Map, d.StartIdx()).Unreachable(); len(lost) != 0 {
		t.Errorf("unreachable tiles: %v != %v", len(lost), 0)
	}
	if len(d.SpawnList) == 0 {
		t.Fatal("expected spawns")
	}
	for _, s := range d.SpawnList {
		switch d.Map.Tiles[s.Idx] {
		case world.TileFloor, world.TileFoliage:
		default:
			t.Errorf("spawn %v on %v", s, d.Map.Tiles[s.Idx])
		}
	}
}

func TestLevelBuilderPicksByDepth(t *testing.T) {
	cases := []struct {
		depth int
		want  string
	}{
		{1, "town"},
		{2, "forest"},
		{3, "random"},
		{9, "random"},
	}
	for _, tc := range cases {
		c := LevelBuilder(tc.depth, 1, 80, 50, rand.New(rand.NewSource(1)))
		if c.Name() != tc.want {
			t.Errorf("depth %d: %v != %v", tc.depth, c.Name(), tc.want)
		}
	}
}

func TestUnknownRecipe(t *testing.T) {
	if _, err := Recipe("nope", 1, 1, 80, 50, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected an error for an unknown recipe")
	}
}
