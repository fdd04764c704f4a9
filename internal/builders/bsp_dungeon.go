package builders

import (
	"math/rand"

	"github.com/samdwyer/mapforge/internal/world"
)

const (
	// BSP parameters
	minRoomSize = 4  // Minimum room dimension
	maxRoomSize = 12 // Maximum room dimension
	minLeafSize = 10 // Minimum BSP leaf size before stopping split
	maxBSPDepth = 6  // Deepest split; the root is depth 0
)

// BSPDungeon splits the map recursively and places one room in each leaf.
// Rooms are carved and recorded in leaf order, so siblings are adjacent in
// the room list. Corridors come from a later corridor stage.
type BSPDungeon struct{}

// Name implements Stage.
func (BSPDungeon) Name() string { return "bsp_dungeon" }

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// BuildInitial implements InitialBuilder.
func (b BSPDungeon) BuildInitial(rng *rand.Rand, d *BuildData) {
	// Start BSP with the entire map as root
	root := &bspNode{
		x:      1,
		y:      1,
		width:  d.Width - 2,
		height: d.Height - 2,
	}

	splitNode(rng, root, 0)

	rooms := []world.Rect{}
	createRooms(rng, d, root, &rooms)
	d.Rooms = rooms
	d.TakeSnapshot()
}

// splitNode recursively splits a BSP node. A node noticeably longer on one
// axis is cut across that axis; otherwise the direction is random.
func splitNode(rng *rand.Rand, node *bspNode, depth int) {
	if depth >= maxBSPDepth {
		return
	}
	canSplitH := node.height >= minLeafSize*2
	canSplitV := node.width >= minLeafSize*2
	if !canSplitH && !canSplitV {
		return
	}

	var splitHorizontally bool
	switch {
	case float64(node.width) >= float64(node.height)*1.25:
		splitHorizontally = false
	case float64(node.height) >= float64(node.width)*1.25:
		splitHorizontally = true
	default:
		splitHorizontally = rng.Intn(2) == 0
	}
	if splitHorizontally && !canSplitH {
		splitHorizontally = false
	} else if !splitHorizontally && !canSplitV {
		splitHorizontally = true
	}

	span := node.width
	if splitHorizontally {
		span = node.height
	}
	lo, hi := minLeafSize, span-minLeafSize
	if hi < lo {
		return
	}
	splitPos := lo + rng.Intn(hi-lo+1)

	// Create child nodes
	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	// Recursively split children
	splitNode(rng, node.left, depth+1)
	splitNode(rng, node.right, depth+1)
}

// createRooms creates rooms in leaf nodes of the BSP tree.
func createRooms(rng *rand.Rand, d *BuildData, node *bspNode, rooms *[]world.Rect) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		createRooms(rng, d, node.left, rooms)
		createRooms(rng, d, node.right, rooms)
		return
	}

	roomWidth := minRoomSize + rng.Intn(max(min(maxRoomSize-minRoomSize+1, node.width-minRoomSize+1), 1))
	roomHeight := minRoomSize + rng.Intn(max(min(maxRoomSize-minRoomSize+1, node.height-minRoomSize+1), 1))

	// Ensure room fits within leaf
	roomWidth = min(roomWidth, node.width-2)
	roomHeight = min(roomHeight, node.height-2)
	if roomWidth < minRoomSize || roomHeight < minRoomSize {
		return // Skip if too small
	}

	// Random position within leaf
	roomX := node.x + 1 + rng.Intn(max(node.width-roomWidth-1, 1))
	roomY := node.y + 1 + rng.Intn(max(node.height-roomHeight-1, 1))

	room := world.NewRect(roomX, roomY, roomWidth, roomHeight)
	*rooms = append(*rooms, room)
	carveRoom(d.Map, room)
}

// depth returns the number of levels below n.
func (n *bspNode) depth() int {
	if n == nil || n.isLeaf() {
		return 0
	}
	return 1 + max(n.left.depth(), n.right.depth())
}
