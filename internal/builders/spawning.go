package builders

import (
	"math/rand"
	"slices"

	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/noise"
	"github.com/samdwyer/mapforge/internal/world"
)

// monsterTable is the spawn table rolled for ordinary level population.
const monsterTable = "monsters"

// spawnRegion requests a handful of spawns on distinct free cells of area.
// The start and the stairs are never used. The count grows with difficulty.
func spawnRegion(rng *rand.Rand, d *BuildData, area []int, table string) {
	start := d.StartIdx()
	candidates := make([]int, 0, len(area))
	for _, idx := range area {
		if idx != start && d.Map.Tiles[idx] != world.TileStairsDown && !d.HasSpawnAt(idx) {
			candidates = append(candidates, idx)
		}
	}
	n := min(len(candidates), rng.Intn(7)+1+d.Difficulty-4)
	if n <= 0 {
		return
	}

	roller := d.roller()
	for range n {
		pick := rng.Intn(len(candidates))
		idx := candidates[pick]
		candidates = slices.Delete(candidates, pick, pick+1)

		key := roller.Roll(rng, table, d.Difficulty)
		if key == "" {
			d.Logger().Debug("empty spawn roll", zap.String("table", table), zap.Int("idx", idx))
			continue
		}
		d.Spawn(idx, key)
	}
}

// PartitionRegions groups interior floor cells into irregular regions using
// cellular noise. Each region lists its cells in ascending order.
func PartitionRegions(m *world.Map, rng *rand.Rand) map[int][]int {
	cells := noise.NewCellular(int64(rng.Intn(65536) + 1))
	regions := make(map[int][]int)
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if m.GetTile(x, y) != world.TileFloor {
				continue
			}
			key := int(cells.Value(float64(x), float64(y)) * 10240)
			regions[key] = append(regions[key], m.Idx(x, y))
		}
	}
	return regions
}

// RoomBasedSpawner populates every room except the first, which holds the
// player.
type RoomBasedSpawner struct{}

// Name implements Stage.
func (RoomBasedSpawner) Name() string { return "room_based_spawner" }

// BuildMeta implements MetaBuilder.
func (s RoomBasedSpawner) BuildMeta(rng *rand.Rand, d *BuildData) {
	rooms := d.RequireRooms(s.Name())
	for _, room := range rooms[min(1, len(rooms)):] {
		var area []int
		for y := room.Y1; y < room.Y2; y++ {
			for x := room.X1; x < room.X2; x++ {
				if d.Map.InBounds(x, y) && d.Map.GetTile(x, y).IsWalkable() {
					area = append(area, d.Map.Idx(x, y))
				}
			}
		}
		spawnRegion(rng, d, area, monsterTable)
	}
}

// VoronoiSpawning populates noise regions, skipping the one holding the
// starting position when there is one.
type VoronoiSpawning struct{}

// Name implements Stage.
func (VoronoiSpawning) Name() string { return "voronoi_spawning" }

// BuildMeta implements MetaBuilder.
func (VoronoiSpawning) BuildMeta(rng *rand.Rand, d *BuildData) {
	regions := PartitionRegions(d.Map, rng)
	keys := make([]int, 0, len(regions))
	for k := range regions {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	start := d.StartIdx()
	for _, k := range keys {
		area := regions[k]
		if start >= 0 {
			if _, found := slices.BinarySearch(area, start); found {
				continue
			}
		}
		spawnRegion(rng, d, area, monsterTable)
	}
	d.Logger().Debug("regions populated", zap.Int("regions", len(keys)), zap.Int("spawns", len(d.SpawnList)))
}
