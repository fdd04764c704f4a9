package builders

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/world"
)

const (
	accretionRoomSize  = 12
	accretionPadding   = 9
	accretionClearance = 3
	accretionCAPasses  = 4
)

// Side is one of the four sides of an accreted room.
type Side int

const (
	SideNorth Side = iota
	SideSouth
	SideWest
	SideEast
)

var sides = [4]Side{SideNorth, SideSouth, SideWest, SideEast}

func (s Side) delta() (int, int) {
	switch s {
	case SideNorth:
		return 0, -1
	case SideSouth:
		return 0, 1
	case SideWest:
		return -1, 0
	default:
		return 1, 0
	}
}

// AccretedRoom is a single irregular room in its own buffer.
type AccretedRoom struct {
	Width  int
	Height int
	// Cells marks room tiles, row-major.
	Cells []bool
	// DoorSites holds one door site per side, nil when the side has none.
	DoorSites [4]*world.Point
	// Corridor lists the buffer indices added by a corridor, if any.
	Corridor []int
}

// Has reports whether (x, y) is part of the room. Cells outside the buffer
// are not.
func (r *AccretedRoom) Has(x, y int) bool {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return false
	}
	return r.Cells[y*r.Width+x]
}

// DesignRoom grows a room with a small cave pass, keeps its largest blob,
// finds its door sites and, half of the time, extends one site into a short
// corridor.
func DesignRoom(rng *rand.Rand) *AccretedRoom {
	cave := world.NewMap(accretionRoomSize, accretionRoomSize)
	for y := 1; y < cave.Height-1; y++ {
		for x := 1; x < cave.Width-1; x++ {
			if rng.Intn(100) < caFloorPercent {
				cave.SetTile(x, y, world.TileFloor)
			}
		}
	}
	for range accretionCAPasses {
		smoothCaves(cave)
	}

	size := accretionRoomSize + 2*accretionPadding
	r := &AccretedRoom{Width: size, Height: size, Cells: make([]bool, size*size)}
	blob := largestBlob(cave)
	if len(blob) == 0 {
		blob = []int{cave.Idx(cave.Width/2, cave.Height/2)}
	}
	for _, idx := range blob {
		x, y := cave.XY(idx)
		r.Cells[(y+accretionPadding)*size+x+accretionPadding] = true
	}
	r.findDoorSites(rng)

	if rng.Intn(2) == 0 {
		r.extendCorridor(rng)
	}
	return r
}

// largestBlob returns the indices of the biggest 4-connected floor region,
// ascending from its first cell. Ties go to the region found first.
func largestBlob(m *world.Map) []int {
	seen := make([]bool, len(m.Tiles))
	var best []int
	for i, t := range m.Tiles {
		if seen[i] || t != world.TileFloor {
			continue
		}
		var blob []int
		stack := []int{i}
		seen[i] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			blob = append(blob, cur)
			x, y := m.XY(cur)
			for _, s := range sides {
				dx, dy := s.delta()
				nx, ny := x+dx, y+dy
				if !m.InBounds(nx, ny) {
					continue
				}
				n := m.Idx(nx, ny)
				if !seen[n] && m.Tiles[n] == world.TileFloor {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
		if len(blob) > len(best) {
			best = blob
		}
	}
	return best
}

// findDoorSites picks a random valid site on each side. A site is outside
// the room, the tile behind it is room, and the first cells in front of it
// are clear of room.
func (r *AccretedRoom) findDoorSites(rng *rand.Rand) {
	for _, s := range sides {
		var candidates []world.Point
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				if r.isDoorSite(x, y, s) {
					candidates = append(candidates, world.Point{X: x, Y: y})
				}
			}
		}
		r.DoorSites[s] = nil
		if len(candidates) > 0 {
			p := candidates[rng.Intn(len(candidates))]
			r.DoorSites[s] = &p
		}
	}
}

func (r *AccretedRoom) isDoorSite(x, y int, s Side) bool {
	dx, dy := s.delta()
	if r.Has(x, y) || !r.Has(x-dx, y-dy) {
		return false
	}
	for i := 1; i <= accretionClearance; i++ {
		if r.Has(x+dx*i, y+dy*i) {
			return false
		}
	}
	return true
}

// extendCorridor carves 3 to 7 cells outward from one door site and moves
// that site to the corridor end.
func (r *AccretedRoom) extendCorridor(rng *rand.Rand) {
	var open []Side
	for _, s := range sides {
		if r.DoorSites[s] != nil {
			open = append(open, s)
		}
	}
	if len(open) == 0 {
		return
	}
	s := open[rng.Intn(len(open))]
	dx, dy := s.delta()
	length := 3 + rng.Intn(5)
	p := *r.DoorSites[s]
	for range length {
		if p.X < 0 || p.Y < 0 || p.X >= r.Width || p.Y >= r.Height {
			break
		}
		idx := p.Y*r.Width + p.X
		r.Cells[idx] = true
		r.Corridor = append(r.Corridor, idx)
		p.X += dx
		p.Y += dy
	}
	r.DoorSites[s] = &p
}

// Hyperspace is a toroidal buffer rooms are accreted into. Coordinates wrap
// on both axes.
type Hyperspace struct {
	Width  int
	Height int
	cells  []bool
}

// NewHyperspace creates an empty buffer.
func NewHyperspace(width, height int) *Hyperspace {
	return &Hyperspace{Width: width, Height: height, cells: make([]bool, width*height)}
}

func (h *Hyperspace) wrap(x, y int) int {
	x = ((x % h.Width) + h.Width) % h.Width
	y = ((y % h.Height) + h.Height) % h.Height
	return y*h.Width + x
}

// Has reports whether the wrapped cell is occupied.
func (h *Hyperspace) Has(x, y int) bool {
	return h.cells[h.wrap(x, y)]
}

// Stamp copies a room into the buffer with its top-left at (ox, oy).
func (h *Hyperspace) Stamp(r *AccretedRoom, ox, oy int) {
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if r.Has(x, y) {
				h.cells[h.wrap(ox+x, oy+y)] = true
			}
		}
	}
}

// RoomAccretion places a single accreted room at a random offset of a
// hyperspace the size of the map, then copies it inside the map border.
type RoomAccretion struct{}

// Name implements Stage.
func (RoomAccretion) Name() string { return "room_accretion" }

// BuildInitial implements InitialBuilder.
func (RoomAccretion) BuildInitial(rng *rand.Rand, d *BuildData) {
	room := DesignRoom(rng)
	space := NewHyperspace(d.Width, d.Height)
	ox, oy := rng.Intn(d.Width), rng.Intn(d.Height)
	space.Stamp(room, ox, oy)

	opened := 0
	for y := 1; y < d.Height-1; y++ {
		for x := 1; x < d.Width-1; x++ {
			if space.Has(x, y) {
				d.Map.SetTile(x, y, world.TileFloor)
				opened++
			}
		}
	}
	d.TakeSnapshot()
	d.Logger().Debug("room accreted",
		zap.Int("tiles", opened),
		zap.Int("corridor", len(room.Corridor)),
		zap.Int("offset_x", ox),
		zap.Int("offset_y", oy),
	)
}
