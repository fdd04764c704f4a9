package builders

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/samdwyer/mapforge/internal/world"
)

// recipe assembles a chain from stages chosen with rng.
type recipe func(c *BuilderChain, rng *rand.Rand)

var recipes = map[string]recipe{
	"town": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(Town{}).With(CullUnreachable{})
	},
	"forest": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(CellularAutomata{}).
			With(AreaStartingPosition{X: XCenter, Y: YCenter}).
			With(CullUnreachable{}).
			With(AreaStartingPosition{X: XLeft, Y: YCenter}).
			With(VoronoiSpawning{}).
			With(Foliage{From: world.TileFloor, Percent: 60}).
			With(Foliage{From: world.TileGrass, Percent: 30}).
			With(Foliage{From: world.TileWall, Percent: 20}).
			With(YellowBrickRoad{})
	},
	"cave": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(CellularAutomata{})
		shapeTail(c)
	},
	"rooms": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(SimpleMap{}).
			With(RoomSorter{Sort: SortLeftmost}).
			With(RoomDrawer{}).
			With(DoglegCorridors{}).
			With(RoomBasedStartingPosition{}).
			With(CullUnreachable{}).
			With(DistantExit{}).
			With(RoomBasedSpawner{}).
			With(DoorPlacement{})
	},
	"bsp": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(BSPDungeon{}).
			With(RoomSorter{Sort: SortLeftmost}).
			With(RoomDrawer{CircleChance: 25}).
			With(BSPCorridors{}).
			With(RoomBasedStartingPosition{}).
			With(CullUnreachable{}).
			With(DistantExit{}).
			With(RoomBasedSpawner{}).
			With(CorridorSpawner{}).
			With(DoorPlacement{})
	},
	"bsp-interior": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(BSPInterior{}).
			With(RoomBasedStartingPosition{}).
			With(CullUnreachable{}).
			With(RoomThemer{Theme: ThemeBarracks, Chance: 30}).
			With(RoomThemer{Theme: ThemeGrassy, Chance: 20}).
			With(DistantExit{}).
			With(RoomBasedSpawner{}).
			With(DoorPlacement{})
	},
	"drunkard": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(OpenHalls())
		shapeTail(c)
	},
	"dla": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(DLAInsectoid())
		shapeTail(c)
	},
	"voronoi": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(VoronoiPythagoras())
		shapeTail(c)
	},
	"maze": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(Maze{})
		shapeTail(c)
	},
	"accretion": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(RoomAccretion{})
		shapeTail(c)
	},
	"prefab": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(PrefabConstant{Level: "wfc_populated"}).
			With(RoomVaults{}).
			With(CullUnreachable{})
	},
	"wfc": func(c *BuilderChain, _ *rand.Rand) {
		c.StartWith(CellularAutomata{}).With(WaveformCollapse{ChunkSize: 8})
		shapeTail(c)
	},
	"random": randomBuilder,
}

// shapeTail finishes a chain whose generator records no rooms.
func shapeTail(c *BuilderChain) {
	c.With(AreaStartingPosition{X: XCenter, Y: YCenter}).
		With(CullUnreachable{}).
		With(DistantExit{}).
		With(VoronoiSpawning{})
}

// RecipeNames lists the named recipes in sorted order.
func RecipeNames() []string {
	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recipe returns the named chain for a level. Choices made by the recipe
// itself draw from rng, so the same seed yields the same chain.
func Recipe(name string, depth, difficulty, width, height int, rng *rand.Rand, opts ...Option) (*BuilderChain, error) {
	build, ok := recipes[name]
	if !ok {
		return nil, fmt.Errorf("unknown recipe %q", name)
	}
	c := NewChain(depth, difficulty, width, height, append([]Option{WithName(name)}, opts...)...)
	build(c, rng)
	return c, nil
}

// LevelBuilder picks the chain for a level: the town on depth 1, the forest
// on depth 2 and a random dungeon below.
func LevelBuilder(depth, difficulty, width, height int, rng *rand.Rand, opts ...Option) *BuilderChain {
	name := "random"
	switch depth {
	case 1:
		name = "town"
	case 2:
		name = "forest"
	}
	c, _ := Recipe(name, depth, difficulty, width, height, rng, opts...)
	return c
}

// shapeBuilders are generators that carve their own floor without rooms.
func shapeBuilders() []InitialBuilder {
	return []InitialBuilder{
		CellularAutomata{},
		OpenArea(), OpenHalls(), WindingPassages(), FatPassages(), FearfulSymmetry(),
		DLAWalkInwards(), DLAWalkOutwards(), DLACentralAttractor(), DLAInsectoid(),
		VoronoiPythagoras(), VoronoiManhattan(), VoronoiChebyshev(),
		Maze{},
	}
}

// randomBuilder builds a room-based or shape-based dungeon. One time in
// three the result is fed through waveform collapse instead.
func randomBuilder(c *BuilderChain, rng *rand.Rand) {
	if rng.Intn(3) == 0 {
		carving := append(shapeBuilders(), BSPInterior{})
		c.StartWith(carving[rng.Intn(len(carving))])
		c.With(WaveformCollapse{ChunkSize: 8})
		randomTail(c, rng, false)
		return
	}

	if rng.Intn(2) == 0 {
		randomRoomBuilder(c, rng)
		return
	}
	shapes := shapeBuilders()
	c.StartWith(shapes[rng.Intn(len(shapes))])
	randomTail(c, rng, false)
}

func randomRoomBuilder(c *BuilderChain, rng *rand.Rand) {
	switch rng.Intn(3) {
	case 0:
		c.StartWith(BSPInterior{})
	default:
		if rng.Intn(2) == 0 {
			c.StartWith(SimpleMap{})
		} else {
			c.StartWith(BSPDungeon{})
		}
		c.With(RoomSorter{Sort: RoomSort(rng.Intn(5))})
		c.With(RoomDrawer{CircleChance: []int{0, 25}[rng.Intn(2)]})
		if rng.Intn(3) == 0 {
			c.With(RoomCornerRounder{})
		}
		switch rng.Intn(4) {
		case 0:
			c.With(DoglegCorridors{})
		case 1:
			c.With(BSPCorridors{})
		case 2:
			c.With(NearestCorridors{})
		default:
			c.With(StraightLineCorridors{})
		}
		if rng.Intn(2) == 0 {
			c.With(CorridorSpawner{})
		}
	}
	if rng.Intn(4) == 0 {
		c.With(RoomThemer{Theme: RoomTheme(rng.Intn(2)), Chance: 25})
	}
	randomTail(c, rng, true)
}

// randomTail adds the shared finishing stages. The stairs are the last stage
// to change tiles.
func randomTail(c *BuilderChain, rng *rand.Rand, rooms bool) {
	if rng.Intn(20) == 0 {
		c.With(PrefabSectional{Section: "underground_fort"})
	}
	if rooms {
		c.With(RoomBasedStartingPosition{})
	} else {
		c.With(AreaStartingPosition{X: XStart(rng.Intn(3)), Y: YStart(rng.Intn(3))})
	}
	c.With(RoomVaults{})
	c.With(CullUnreachable{})
	c.With(DistantExit{})
	if rooms && rng.Intn(2) == 0 {
		c.With(RoomBasedSpawner{})
	} else {
		c.With(VoronoiSpawning{})
	}
	c.With(DoorPlacement{})
}
