package wfc

import (
	"github.com/cespare/xxhash/v2"

	"github.com/samdwyer/mapforge/internal/world"
)

// BuildPatterns cuts the map into chunkSize squares in row-major chunk order.
// With flip, each chunk is followed by its horizontal, vertical and double
// mirror. With dedupe, only the first occurrence of identical patterns is kept.
func BuildPatterns(m *world.Map, chunkSize int, flip, dedupe bool) [][]world.Tile {
	chunksX := m.Width / chunkSize
	chunksY := m.Height / chunkSize

	var patterns [][]world.Tile
	extract := func(startX, startY int, mirrorX, mirrorY bool) []world.Tile {
		p := make([]world.Tile, 0, chunkSize*chunkSize)
		for y := 0; y < chunkSize; y++ {
			for x := 0; x < chunkSize; x++ {
				sx, sy := x, y
				if mirrorX {
					sx = chunkSize - 1 - x
				}
				if mirrorY {
					sy = chunkSize - 1 - y
				}
				p = append(p, m.GetTile(startX+sx, startY+sy))
			}
		}
		return p
	}

	for cy := 0; cy < chunksY; cy++ {
		for cx := 0; cx < chunksX; cx++ {
			startX, startY := cx*chunkSize, cy*chunkSize
			patterns = append(patterns, extract(startX, startY, false, false))
			if flip {
				patterns = append(patterns,
					extract(startX, startY, true, false),
					extract(startX, startY, false, true),
					extract(startX, startY, true, true),
				)
			}
		}
	}

	if dedupe {
		patterns = dedupePatterns(patterns)
	}
	return patterns
}

func dedupePatterns(patterns [][]world.Tile) [][]world.Tile {
	seen := make(map[uint64][]int)
	out := patterns[:0:0]
	for _, p := range patterns {
		key := patternKey(p)
		dup := false
		for _, idx := range seen[key] {
			if equalPattern(out[idx], p) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[key] = append(seen[key], len(out))
		out = append(out, p)
	}
	return out
}

func patternKey(p []world.Tile) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, len(p)*4)
	for _, t := range p {
		buf = append(buf, string(t.Rune())...)
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}

func equalPattern(a, b []world.Tile) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Stamp writes a pattern onto the map with its top-left corner at (x, y).
func Stamp(m *world.Map, pattern []world.Tile, chunkSize, x, y int) {
	for py := 0; py < chunkSize; py++ {
		for px := 0; px < chunkSize; px++ {
			m.SetTile(x+px, y+py, pattern[py*chunkSize+px])
		}
	}
}

// Gallery lays every pattern out on pages of width x height, one tile apart,
// on a bars background. A new page starts when the current one is full.
func Gallery(patterns [][]world.Tile, chunkSize, width, height int) []*world.Map {
	newPage := func() *world.Map {
		p := world.NewMap(width, height)
		p.Fill(world.TileBars)
		return p
	}

	var pages []*world.Map
	page := newPage()
	x, y := 1, 1
	placed := 0
	for _, p := range patterns {
		Stamp(page, p, chunkSize, x, y)
		placed++
		x += chunkSize + 1
		if x+chunkSize > width {
			x = 1
			y += chunkSize + 1
			if y+chunkSize > height {
				pages = append(pages, page)
				page = newPage()
				placed = 0
				y = 1
			}
		}
	}
	if placed > 0 || len(pages) == 0 {
		pages = append(pages, page)
	}
	return pages
}
