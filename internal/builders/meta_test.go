package builders

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/samdwyer/mapforge/internal/world"
)

func dataFor(rows ...string) *BuildData {
	m := world.MustParseMap(rows...)
	d := NewBuildData(3, 1, m.Width, m.Height)
	d.Map = m
	return d
}

func TestDoorPossible(t *testing.T) {
	d := dataFor(
		"#########",
		"#.......#",
		"####.####",
		"#.......#",
		"#########",
	)
	if !doorPossible(d, d.Map.Idx(4, 2)) {
		t.Error("gap in a horizontal wall should take a door")
	}
	if doorPossible(d, d.Map.Idx(3, 1)) {
		t.Error("open floor should not take a door")
	}
	d.Spawn(d.Map.Idx(4, 2), "goblin")
	if doorPossible(d, d.Map.Idx(4, 2)) {
		t.Error("occupied cell should not take a door")
	}
}

func TestDoorPlacementUsesCorridorHeads(t *testing.T) {
	d := dataFor(
		"#########",
		"#########",
		"#.......#",
		"#########",
		"#########",
	)
	d.Corridors = [][]int{
		{d.Map.Idx(3, 2), d.Map.Idx(4, 2), d.Map.Idx(5, 2)},
		{d.Map.Idx(6, 2), d.Map.Idx(7, 2)},
	}
	DoorPlacement{}.BuildMeta(rand.New(rand.NewSource(1)), d)
	if len(d.SpawnList) != 1 {
		t.Fatalf("doors: %v != %v", len(d.SpawnList), 1)
	}
	if d.SpawnList[0] != (Spawn{Idx: d.Map.Idx(3, 2), Key: DoorKey}) {
		t.Errorf("door: %v", d.SpawnList[0])
	}
}

func TestDoorPlacementNeverDoublesUp(t *testing.T) {
	d := NewBuildData(3, 1, 80, 50)
	rng := rand.New(rand.NewSource(12345))
	BSPInterior{}.BuildInitial(rng, d)
	d.Corridors = nil
	DoorPlacement{}.BuildMeta(rng, d)
	DoorPlacement{}.BuildMeta(rng, d)

	seen := map[int]bool{}
	for _, s := range d.SpawnList {
		if seen[s.Idx] {
			t.Fatalf("two spawns at index %d", s.Idx)
		}
		seen[s.Idx] = true
	}
}

func TestAreaStartingPosition(t *testing.T) {
	d := dataFor(
		"########",
		"#..#...#",
		"#..#.>.#",
		"########",
	)
	AreaStartingPosition{X: XRight, Y: YTop}.BuildMeta(nil, d)
	if got := *d.StartingPosition; got != (world.Point{X: 6, Y: 1}) {
		t.Errorf("right/top start: %v != %v", got, world.Point{X: 6, Y: 1})
	}
	AreaStartingPosition{X: XLeft, Y: YBottom}.BuildMeta(nil, d)
	if got := *d.StartingPosition; got != (world.Point{X: 1, Y: 2}) {
		t.Errorf("left/bottom start: %v != %v", got, world.Point{X: 1, Y: 2})
	}

	solid := NewBuildData(3, 1, 10, 10)
	expectPanic(t, ErrPrecondition, func() {
		AreaStartingPosition{X: XCenter, Y: YCenter}.BuildMeta(nil, solid)
	})
}

func TestCenterWalkStartingPosition(t *testing.T) {
	d := dataFor(
		"#########",
		"#.......#",
		"#..######",
		"#.......#",
		"#########",
	)
	CenterWalkStartingPosition{}.BuildMeta(nil, d)
	if got := *d.StartingPosition; got != (world.Point{X: 2, Y: 2}) {
		t.Errorf("start: %v != %v", got, world.Point{X: 2, Y: 2})
	}
}

func TestRoomBasedStartingPositionSkipsBuiltOverRooms(t *testing.T) {
	d := NewBuildData(3, 1, 30, 20)
	first, second := world.NewRect(2, 2, 5, 5), world.NewRect(12, 2, 5, 5)
	d.Rooms = []world.Rect{first, second}
	carveRoom(d.Map, first)
	carveRoom(d.Map, second)
	d.Map.SetTile(4, 4, world.TileWall)

	RoomBasedStartingPosition{}.BuildMeta(nil, d)
	if got := *d.StartingPosition; got != (world.Point{X: 14, Y: 4}) {
		t.Errorf("start: %v != %v", got, world.Point{X: 14, Y: 4})
	}
}

func TestDistantExitIsFarthest(t *testing.T) {
	d := dataFor(
		"##########",
		"#........#",
		"#.######.#",
		"#......#.#",
		"##########",
	)
	d.SetStart(1, 3)
	DistantExit{}.BuildMeta(nil, d)
	if d.Map.GetTile(8, 3) != world.TileStairsDown {
		t.Errorf("stairs should be at the far end of the loop:\n%s", d.Map)
	}
	if n := d.Map.Count(world.TileStairsDown); n != 1 {
		t.Errorf("stairs count: %v != %v", n, 1)
	}
}

func TestCullUnreachableDropsSpawns(t *testing.T) {
	d := dataFor(
		"#########",
		"#...#...#",
		"#########",
	)
	d.SetStart(1, 1)
	d.Spawn(d.Map.Idx(2, 1), "rat")
	d.Spawn(d.Map.Idx(6, 1), "rat")
	CullUnreachable{}.BuildMeta(nil, d)

	if n := d.Map.Count(world.TileFloor); n != 3 {
		t.Errorf("floor left: %v != %v", n, 3)
	}
	if len(d.SpawnList) != 1 || d.SpawnList[0].Idx != d.Map.Idx(2, 1) {
		t.Errorf("spawns: %v", d.SpawnList)
	}
	before := d.Map.Fingerprint()
	CullUnreachable{}.BuildMeta(nil, d)
	if d.Map.Fingerprint() != before {
		t.Error("second cull changed the map")
	}
}

func TestSpawnRegionCount(t *testing.T) {
	d := NewBuildData(3, 10, 20, 20)
	d.Roller = fixedRoller("goblin")
	area := []int{21, 22, 23}
	spawnRegion(rand.New(rand.NewSource(1)), d, area, monsterTable)
	// At difficulty 10 the roll always exceeds the area.
	if len(d.SpawnList) != len(area) {
		t.Fatalf("spawns: %v != %v", len(d.SpawnList), len(area))
	}
	seen := map[int]bool{}
	for _, s := range d.SpawnList {
		if seen[s.Idx] {
			t.Errorf("duplicate spawn at %d", s.Idx)
		}
		seen[s.Idx] = true
	}

	spawnRegion(rand.New(rand.NewSource(1)), d, area, monsterTable)
	if len(d.SpawnList) != len(area) {
		t.Errorf("full region should take no more spawns: %v != %v", len(d.SpawnList), len(area))
	}
}

func TestSpawnRegionSkipsEmptyRolls(t *testing.T) {
	d := NewBuildData(3, 10, 20, 20)
	d.Roller = fixedRoller("")
	spawnRegion(rand.New(rand.NewSource(1)), d, []int{21, 22, 23}, monsterTable)
	if len(d.SpawnList) != 0 {
		t.Errorf("empty rolls produced %d spawns", len(d.SpawnList))
	}
}

func TestPartitionRegions(t *testing.T) {
	d := NewBuildData(3, 1, 64, 64)
	CellularAutomata{}.BuildInitial(rand.New(rand.NewSource(42)), d)
	regions := PartitionRegions(d.Map, rand.New(rand.NewSource(42)))

	if len(regions) < 2 {
		t.Fatalf("expected several regions, got %d", len(regions))
	}
	total := 0
	for _, cells := range regions {
		if !sort.IntsAreSorted(cells) {
			t.Error("region cells should be ascending")
		}
		for _, idx := range cells {
			if d.Map.Tiles[idx] != world.TileFloor {
				t.Errorf("region cell %d is %v", idx, d.Map.Tiles[idx])
			}
		}
		total += len(cells)
	}
	if want := d.Map.Count(world.TileFloor); total != want {
		t.Errorf("partitioned cells: %v != %v", total, want)
	}
}

func TestRoomThemerGrassy(t *testing.T) {
	d := NewBuildData(3, 1, 30, 20)
	room := world.NewRect(2, 2, 10, 10)
	d.Rooms = []world.Rect{room}
	carveRoom(d.Map, room)
	RoomThemer{Theme: ThemeGrassy, Chance: 100}.BuildMeta(rand.New(rand.NewSource(12345)), d)

	grown := d.Map.Count(world.TileGrass) + d.Map.Count(world.TileFoliage)
	if grown == 0 {
		t.Fatal("no grass grown")
	}
	if walkable := d.Map.CountTiles(world.Tile.IsWalkable); walkable != room.Area() {
		t.Errorf("theming changed walkability: %v != %v", walkable, room.Area())
	}
}

func TestRoomThemerBarracks(t *testing.T) {
	d := NewBuildData(3, 1, 30, 20)
	d.Roller = fixedRoller("guard")
	small, big := world.NewRect(2, 2, 3, 3), world.NewRect(10, 2, 8, 8)
	d.Rooms = []world.Rect{small, big}
	carveRoom(d.Map, small)
	carveRoom(d.Map, big)
	RoomThemer{Theme: ThemeBarracks, Chance: 100}.BuildMeta(rand.New(rand.NewSource(1)), d)

	keys := map[string]int{}
	for _, s := range d.SpawnList {
		x, y := d.Map.XY(s.Idx)
		if !big.Contains(x, y) {
			t.Errorf("spawn %v outside the barracks", s)
		}
		keys[s.Key]++
	}
	if keys["bed"] == 0 || keys["weapon_rack"] != 1 || keys["guard"] != 1 {
		t.Errorf("barracks contents: %v", keys)
	}
}

func TestFoliageOnlyTouchesAdjacentWalls(t *testing.T) {
	d := NewBuildData(3, 1, 30, 20)
	carveRoom(d.Map, world.NewRect(5, 5, 10, 6))
	Foliage{From: world.TileWall, Percent: 100}.BuildMeta(rand.New(rand.NewSource(12345)), d)

	for i, tile := range d.Map.Tiles {
		if tile != world.TileHeavyFoliage {
			continue
		}
		x, y := d.Map.XY(i)
		if x == 0 || y == 0 || x == d.Width-1 || y == d.Height-1 {
			t.Errorf("border tile (%d,%d) became foliage", x, y)
		}
		if x < 3 || x > 16 || y < 3 || y > 12 {
			t.Errorf("foliage at (%d,%d) is far from any floor", x, y)
		}
	}
	if d.Map.Count(world.TileHeavyFoliage) == 0 {
		t.Error("no walls became foliage")
	}
}
