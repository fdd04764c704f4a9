package builders

import (
	"math/rand"

	"github.com/samdwyer/mapforge/internal/world"
)

const interiorMinRoomSize = 8

// BSPInterior divides the whole map into rooms separated by single walls,
// like the floor plan of a building, and joins consecutive rooms.
type BSPInterior struct{}

// Name implements Stage.
func (BSPInterior) Name() string { return "bsp_interior" }

// BuildInitial implements InitialBuilder.
func (BSPInterior) BuildInitial(rng *rand.Rand, d *BuildData) {
	var rooms []world.Rect
	splitInterior(rng, world.NewRect(1, 1, d.Width-2, d.Height-2), &rooms)

	for _, r := range rooms {
		carveRoom(d.Map, r)
		d.TakeSnapshot()
	}

	var corridors [][]int
	for i := 0; i+1 < len(rooms); i++ {
		room, next := rooms[i], rooms[i+1]
		startX := jitter(rng.Intn, room.X1, room.X2)
		startY := jitter(rng.Intn, room.Y1, room.Y2)
		endX := jitter(rng.Intn, next.X1, next.X2)
		endY := jitter(rng.Intn, next.Y1, next.Y2)
		corridors = append(corridors, drawCorridor(d.Map, startX, startY, endX, endY))
		d.TakeSnapshot()
	}

	d.Rooms = rooms
	d.Corridors = corridors
}

// splitInterior cuts r in half along a random axis, leaving a one tile wall
// between the halves, and recurses while the halves are large enough.
func splitInterior(rng *rand.Rand, r world.Rect, leaves *[]world.Rect) {
	width, height := r.Width(), r.Height()
	halfWidth, halfHeight := max(width/2, 1), max(height/2, 1)

	var a, b world.Rect
	var half int
	if rng.Intn(4) < 2 {
		a = world.NewRect(r.X1, r.Y1, halfWidth-1, height)
		b = world.NewRect(r.X1+halfWidth, r.Y1, width-halfWidth, height)
		half = halfWidth
	} else {
		a = world.NewRect(r.X1, r.Y1, width, halfHeight-1)
		b = world.NewRect(r.X1, r.Y1+halfHeight, width, height-halfHeight)
		half = halfHeight
	}

	for _, child := range []world.Rect{a, b} {
		if half > interiorMinRoomSize {
			splitInterior(rng, child, leaves)
		} else if child.Width() > 0 && child.Height() > 0 {
			*leaves = append(*leaves, child)
		}
	}
}
