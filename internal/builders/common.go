package builders

import (
	"github.com/samdwyer/mapforge/internal/world"
)

// Symmetry mirrors painted cells around the map center.
type Symmetry int

const (
	SymmetryNone Symmetry = iota
	SymmetryHorizontal
	SymmetryVertical
	SymmetryBoth
)

// paint opens the brush at (x, y) and its mirror images.
func paint(m *world.Map, mode Symmetry, brushSize, x, y int) {
	cx, cy := m.Width/2, m.Height/2
	switch mode {
	case SymmetryHorizontal:
		if x == cx {
			applyPaint(m, brushSize, x, y)
		} else {
			dx := absInt(cx - x)
			applyPaint(m, brushSize, cx+dx, y)
			applyPaint(m, brushSize, cx-dx, y)
		}
	case SymmetryVertical:
		if y == cy {
			applyPaint(m, brushSize, x, y)
		} else {
			dy := absInt(cy - y)
			applyPaint(m, brushSize, x, cy+dy)
			applyPaint(m, brushSize, x, cy-dy)
		}
	case SymmetryBoth:
		if x == cx && y == cy {
			applyPaint(m, brushSize, x, y)
		} else {
			dx := absInt(cx - x)
			dy := absInt(cy - y)
			applyPaint(m, brushSize, cx+dx, y)
			applyPaint(m, brushSize, cx-dx, y)
			applyPaint(m, brushSize, x, cy+dy)
			applyPaint(m, brushSize, x, cy-dy)
		}
	default:
		applyPaint(m, brushSize, x, y)
	}
}

// applyPaint opens a square brush, never touching the outer two rings.
func applyPaint(m *world.Map, brushSize, x, y int) {
	if brushSize <= 1 {
		if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
			m.SetTile(x, y, world.TileFloor)
		}
		return
	}
	half := brushSize / 2
	for by := y - half; by < y+half; by++ {
		for bx := x - half; bx < x+half; bx++ {
			if bx > 1 && bx < m.Width-1 && by > 1 && by < m.Height-1 {
				m.SetTile(bx, by, world.TileFloor)
			}
		}
	}
}

// drawCorridor walks from (x1, y1) to (x2, y2) one axis step at a time,
// carving floor, and returns the newly opened cells.
func drawCorridor(m *world.Map, x1, y1, x2, y2 int) []int {
	var corridor []int
	x, y := x1, y1
	for x != x2 || y != y2 {
		switch {
		case x < x2:
			x++
		case x > x2:
			x--
		case y < y2:
			y++
		default:
			y--
		}
		idx := m.Idx(x, y)
		if m.Tiles[idx] != world.TileFloor {
			corridor = append(corridor, idx)
			m.Tiles[idx] = world.TileFloor
		}
	}
	return corridor
}

// carveHorizontalTunnel carves a horizontal tunnel and returns the opened cells.
func carveHorizontalTunnel(m *world.Map, x1, x2, y int) []int {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	var opened []int
	for x := x1; x <= x2; x++ {
		if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
			idx := m.Idx(x, y)
			if m.Tiles[idx] != world.TileFloor {
				m.Tiles[idx] = world.TileFloor
				opened = append(opened, idx)
			}
		}
	}
	return opened
}

// carveVerticalTunnel carves a vertical tunnel and returns the opened cells.
func carveVerticalTunnel(m *world.Map, y1, y2, x int) []int {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	var opened []int
	for y := y1; y <= y2; y++ {
		if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
			idx := m.Idx(x, y)
			if m.Tiles[idx] != world.TileFloor {
				m.Tiles[idx] = world.TileFloor
				opened = append(opened, idx)
			}
		}
	}
	return opened
}

// carveRoom sets all tiles within the room to floor.
func carveRoom(m *world.Map, room world.Rect) {
	for y := room.Y1; y < room.Y2; y++ {
		for x := room.X1; x < room.X2; x++ {
			if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 {
				m.SetTile(x, y, world.TileFloor)
			}
		}
	}
}

// jitter returns a random coordinate in [lo, hi), or lo when the span is empty.
func jitter(rngIntn func(int) int, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rngIntn(hi-lo)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
