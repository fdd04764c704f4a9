package builders

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/samdwyer/mapforge/internal/world"
)

const (
	simpleMaxRooms = 30
	simpleMinSize  = 6
	simpleMaxSize  = 10
)

// SimpleMap scatters non-overlapping rectangular rooms. It only records the
// rooms; a RoomDrawer carves them.
type SimpleMap struct{}

// Name implements Stage.
func (SimpleMap) Name() string { return "simple_map" }

// BuildInitial implements InitialBuilder.
func (SimpleMap) BuildInitial(rng *rand.Rand, d *BuildData) {
	rooms := []world.Rect{}
	rejected := 0
	for i := 0; i < simpleMaxRooms; i++ {
		w := simpleMinSize + rng.Intn(simpleMaxSize-simpleMinSize+1)
		h := simpleMinSize + rng.Intn(simpleMaxSize-simpleMinSize+1)
		x := 1 + rng.Intn(max(d.Width-w-2, 1))
		y := 1 + rng.Intn(max(d.Height-h-2, 1))
		candidate := world.NewRect(x, y, w, h)
		if candidate.X2 > d.Width-1 || candidate.Y2 > d.Height-1 {
			rejected++
			continue
		}

		ok := true
		for _, other := range rooms {
			if candidate.Intersects(other) {
				ok = false
				break
			}
		}
		if !ok {
			rejected++
			continue
		}
		rooms = append(rooms, candidate)
	}

	d.Logger().Debug("rooms placed",
		zap.Int("rooms", len(rooms)),
		zap.Int("rejected", rejected),
	)
	d.Rooms = rooms
}
