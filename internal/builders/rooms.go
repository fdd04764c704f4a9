package builders

import (
	"math/rand"
	"sort"

	"github.com/samdwyer/mapforge/internal/world"
)

// RoomSort orders the room list.
type RoomSort int

const (
	SortLeftmost RoomSort = iota
	SortRightmost
	SortTopmost
	SortBottommost
	SortCentral
)

// String returns the sort name.
func (s RoomSort) String() string {
	switch s {
	case SortLeftmost:
		return "leftmost"
	case SortRightmost:
		return "rightmost"
	case SortTopmost:
		return "topmost"
	case SortBottommost:
		return "bottommost"
	case SortCentral:
		return "central"
	default:
		return "unknown"
	}
}

// RoomSorter reorders rooms so later stages connect them in a useful order.
type RoomSorter struct {
	Sort RoomSort
}

// Name implements Stage.
func (s RoomSorter) Name() string { return "room_sorter/" + s.Sort.String() }

// BuildMeta implements MetaBuilder.
func (s RoomSorter) BuildMeta(_ *rand.Rand, d *BuildData) {
	rooms := d.RequireRooms(s.Name())
	cx, cy := d.Width/2, d.Height/2
	center := world.Point{X: cx, Y: cy}
	centerDist := func(r world.Rect) int {
		x, y := r.Center()
		return world.DistanceSquared(world.Point{X: x, Y: y}, center)
	}

	sort.SliceStable(rooms, func(i, j int) bool {
		a, b := rooms[i], rooms[j]
		switch s.Sort {
		case SortRightmost:
			return a.X2 > b.X2
		case SortTopmost:
			return a.Y1 < b.Y1
		case SortBottommost:
			return a.Y2 > b.Y2
		case SortCentral:
			return centerDist(a) < centerDist(b)
		default:
			return a.X1 < b.X1
		}
	})
}

// RoomDrawer carves recorded rooms, some of them as circles.
type RoomDrawer struct {
	// CircleChance is the percentage of rooms drawn as circles.
	CircleChance int
}

// Name implements Stage.
func (RoomDrawer) Name() string { return "room_drawer" }

// BuildMeta implements MetaBuilder.
func (r RoomDrawer) BuildMeta(rng *rand.Rand, d *BuildData) {
	for _, room := range d.RequireRooms(r.Name()) {
		if r.CircleChance > 0 && rng.Intn(100) < r.CircleChance {
			carveCircle(d.Map, room)
		} else {
			carveRoom(d.Map, room)
		}
		d.TakeSnapshot()
	}
}

func carveCircle(m *world.Map, room world.Rect) {
	radius := float64(min(room.Width(), room.Height())) / 2
	cx, cy := room.Center()
	center := world.Point{X: cx, Y: cy}
	for y := room.Y1; y < room.Y2; y++ {
		for x := room.X1; x < room.X2; x++ {
			if x > 0 && x < m.Width-1 && y > 0 && y < m.Height-1 &&
				world.Pythagoras.Distance(center, world.Point{X: x, Y: y}) <= radius {
				m.SetTile(x, y, world.TileFloor)
			}
		}
	}
}

// RoomCornerRounder knocks the corners off rectangular rooms.
type RoomCornerRounder struct{}

// Name implements Stage.
func (RoomCornerRounder) Name() string { return "room_corner_rounder" }

// BuildMeta implements MetaBuilder.
func (r RoomCornerRounder) BuildMeta(_ *rand.Rand, d *BuildData) {
	for _, room := range d.RequireRooms(r.Name()) {
		fillIfCorner(d.Map, room.X1, room.Y1)
		fillIfCorner(d.Map, room.X2-1, room.Y1)
		fillIfCorner(d.Map, room.X1, room.Y2-1)
		fillIfCorner(d.Map, room.X2-1, room.Y2-1)
		d.TakeSnapshot()
	}
}

// fillIfCorner walls a cell that has exactly two orthogonal wall neighbours.
func fillIfCorner(m *world.Map, x, y int) {
	walls := 0
	for _, n := range [][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
		if m.GetTile(n[0], n[1]) == world.TileWall {
			walls++
		}
	}
	if walls == 2 {
		m.SetTile(x, y, world.TileWall)
	}
}
