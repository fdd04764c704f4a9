// Package world provides the tile grid, rectangles and geometry shared by map generation.
package world

import "fmt"

// Tile represents a single map tile. The value doubles as its display glyph.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a passable floor tile.
	TileFloor Tile = '.'
	// TileWoodFloor is a planked floor used for buildings and piers.
	TileWoodFloor Tile = '_'
	// TileGravel is loose stone inside town walls.
	TileGravel Tile = ':'
	// TileRoad is a paved road.
	TileRoad Tile = '='
	// TileGrass is open ground.
	TileGrass Tile = ','
	// TileFoliage is light undergrowth.
	TileFoliage Tile = '"'
	// TileHeavyFoliage is thick undergrowth that blocks sight.
	TileHeavyFoliage Tile = '♠'
	// TileShallowWater can be waded through.
	TileShallowWater Tile = '~'
	// TileDeepWater cannot be crossed on foot.
	TileDeepWater Tile = '≈'
	// TileBars is an iron grate.
	TileBars Tile = '|'
	// TileFence is a wooden fence.
	TileFence Tile = '%'
	// TileStairsDown leads to the next level.
	TileStairsDown Tile = '>'
	// TileStairsUp leads to the previous level.
	TileStairsUp Tile = '<'
)

// AllTiles lists every tile type in declaration order.
var AllTiles = []Tile{
	TileWall, TileFloor, TileWoodFloor, TileGravel, TileRoad, TileGrass,
	TileFoliage, TileHeavyFoliage, TileShallowWater, TileDeepWater,
	TileBars, TileFence, TileStairsDown, TileStairsUp,
}

// ParseTile returns the tile for a glyph.
func ParseTile(r rune) (Tile, error) {
	for _, t := range AllTiles {
		if rune(t) == r {
			return t, nil
		}
	}
	return TileWall, fmt.Errorf("unknown tile glyph %q", r)
}

// IsWalkable returns true if the tile can be walked on.
func (t Tile) IsWalkable() bool {
	switch t {
	case TileFloor, TileWoodFloor, TileGravel, TileRoad, TileGrass,
		TileFoliage, TileHeavyFoliage, TileShallowWater,
		TileStairsDown, TileStairsUp:
		return true
	default:
		return false
	}
}

// IsPassable is an alias of IsWalkable.
func (t Tile) IsPassable() bool {
	return t.IsWalkable()
}

// IsOpaque returns true if the tile blocks line of sight.
func (t Tile) IsOpaque() bool {
	return t == TileWall || t == TileHeavyFoliage
}

// Cost returns the relative movement cost of entering the tile.
func (t Tile) Cost() float64 {
	switch t {
	case TileRoad:
		return 0.8
	case TileGrass:
		return 1.1
	case TileFoliage, TileShallowWater:
		return 1.2
	case TileHeavyFoliage:
		return 1.5
	default:
		return 1.0
	}
}

// Name returns a human-readable tile name.
func (t Tile) Name() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileWoodFloor:
		return "wood floor"
	case TileGravel:
		return "gravel"
	case TileRoad:
		return "road"
	case TileGrass:
		return "grass"
	case TileFoliage:
		return "foliage"
	case TileHeavyFoliage:
		return "heavy foliage"
	case TileShallowWater:
		return "shallow water"
	case TileDeepWater:
		return "deep water"
	case TileBars:
		return "bars"
	case TileFence:
		return "fence"
	case TileStairsDown:
		return "stairs down"
	case TileStairsUp:
		return "stairs up"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer.
func (t Tile) String() string {
	return t.Name()
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
