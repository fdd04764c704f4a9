package builders

import (
	"math/rand"

	"github.com/samdwyer/mapforge/internal/world"
)

const (
	wallTop = iota
	wallRight
	wallBottom
	wallLeft
)

// Maze carves a perfect maze with a randomized depth-first search. The maze
// grid is half the map size; each maze cell becomes a floor tile at even
// coordinates and removed walls open the tile between two cells.
type Maze struct{}

// Name implements Stage.
func (Maze) Name() string { return "maze" }

type mazeCell struct {
	row, column int
	walls       [4]bool
	visited     bool
}

type mazeGrid struct {
	width, height int
	cells         []mazeCell
	backtrace     []int
	current       int
}

func newMazeGrid(width, height int) *mazeGrid {
	g := &mazeGrid{width: width, height: height}
	for row := 0; row < height; row++ {
		for column := 0; column < width; column++ {
			g.cells = append(g.cells, mazeCell{row: row, column: column, walls: [4]bool{true, true, true, true}})
		}
	}
	return g
}

func (g *mazeGrid) index(row, column int) int {
	if row < 0 || column < 0 || row >= g.height || column >= g.width {
		return -1
	}
	return column + row*g.width
}

func (g *mazeGrid) unvisitedNeighbors() []int {
	c := g.cells[g.current]
	var out []int
	for _, n := range []int{
		g.index(c.row-1, c.column),
		g.index(c.row, c.column+1),
		g.index(c.row+1, c.column),
		g.index(c.row, c.column-1),
	} {
		if n != -1 && !g.cells[n].visited {
			out = append(out, n)
		}
	}
	return out
}

func (g *mazeGrid) removeWalls(a, b int) {
	ca, cb := &g.cells[a], &g.cells[b]
	dx := ca.column - cb.column
	dy := ca.row - cb.row
	switch {
	case dx == 1:
		ca.walls[wallLeft], cb.walls[wallRight] = false, false
	case dx == -1:
		ca.walls[wallRight], cb.walls[wallLeft] = false, false
	case dy == 1:
		ca.walls[wallTop], cb.walls[wallBottom] = false, false
	case dy == -1:
		ca.walls[wallBottom], cb.walls[wallTop] = false, false
	}
}

func (g *mazeGrid) copyTo(m *world.Map) {
	m.Fill(world.TileWall)
	for _, c := range g.cells {
		x, y := (c.column+1)*2, (c.row+1)*2
		m.SetTile(x, y, world.TileFloor)
		if !c.walls[wallTop] {
			m.SetTile(x, y-1, world.TileFloor)
		}
		if !c.walls[wallRight] {
			m.SetTile(x+1, y, world.TileFloor)
		}
		if !c.walls[wallBottom] {
			m.SetTile(x, y+1, world.TileFloor)
		}
		if !c.walls[wallLeft] {
			m.SetTile(x-1, y, world.TileFloor)
		}
	}
}

// BuildInitial implements InitialBuilder.
func (Maze) BuildInitial(rng *rand.Rand, d *BuildData) {
	g := newMazeGrid(d.Width/2-2, d.Height/2-2)
	if len(g.cells) == 0 {
		return
	}

	for i := 0; ; i++ {
		g.cells[g.current].visited = true
		options := g.unvisitedNeighbors()
		if len(options) > 0 {
			next := options[rng.Intn(len(options))]
			g.cells[next].visited = true
			g.backtrace = append(g.backtrace, g.current)
			g.removeWalls(g.current, next)
			g.current = next
		} else if len(g.backtrace) > 0 {
			g.current = g.backtrace[len(g.backtrace)-1]
			g.backtrace = g.backtrace[:len(g.backtrace)-1]
		} else {
			break
		}

		if i%50 == 0 {
			g.copyTo(d.Map)
			d.TakeSnapshot()
		}
	}
	g.copyTo(d.Map)
	d.TakeSnapshot()
}
