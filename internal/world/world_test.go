package world

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", NewRect(0, 0, 5, 5), NewRect(3, 3, 5, 5), true},
		{"touching edge", NewRect(0, 0, 5, 5), NewRect(5, 0, 5, 5), true},
		{"apart", NewRect(0, 0, 5, 5), NewRect(7, 0, 5, 5), false},
		{"below", NewRect(0, 0, 5, 5), NewRect(0, 6, 5, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects() is not symmetric")
			}
		})
	}
}

func TestRectCenter(t *testing.T) {
	r := NewRect(2, 4, 6, 10)
	x, y := r.Center()
	if x != 5 || y != 9 {
		t.Errorf("Center() = (%d,%d), want (5,9)", x, y)
	}
	if r.Width() != 6 || r.Height() != 10 || r.Area() != 60 {
		t.Errorf("size = %dx%d area %d", r.Width(), r.Height(), r.Area())
	}
}

func TestTileProperties(t *testing.T) {
	for _, tile := range AllTiles {
		parsed, err := ParseTile(tile.Rune())
		if err != nil {
			t.Fatalf("ParseTile(%q): %v", tile.Rune(), err)
		}
		if parsed != tile {
			t.Errorf("ParseTile(%q) = %v", tile.Rune(), parsed)
		}
		if tile.Name() == "unknown" {
			t.Errorf("tile %q has no name", tile.Rune())
		}
	}

	if TileWall.IsWalkable() || TileDeepWater.IsWalkable() {
		t.Error("wall and deep water must not be walkable")
	}
	if !TileStairsDown.IsWalkable() || !TileHeavyFoliage.IsWalkable() {
		t.Error("stairs and heavy foliage must be walkable")
	}
	if !TileHeavyFoliage.IsOpaque() || TileFoliage.IsOpaque() {
		t.Error("only heavy foliage of the plants blocks sight")
	}
	if TileRoad.Cost() >= TileFloor.Cost() {
		t.Error("roads should be cheaper than floor")
	}
	if _, err := ParseTile('Q'); err == nil {
		t.Error("expected error for unknown glyph")
	}
}

func TestParseMapRoundTrip(t *testing.T) {
	rows := []string{
		"#####",
		"#.,~#",
		"#>≈<#",
		"#####",
	}
	m := MustParseMap(rows...)
	if m.Width != 5 || m.Height != 4 {
		t.Fatalf("size = %dx%d", m.Width, m.Height)
	}
	if m.GetTile(2, 2) != TileDeepWater {
		t.Errorf("GetTile(2,2) = %v", m.GetTile(2, 2))
	}
	if m.GetTile(-1, 0) != TileWall || m.GetTile(5, 0) != TileWall {
		t.Error("out of bounds should read as wall")
	}
	want := "#####\n#.,~#\n#>≈<#\n#####\n"
	if m.String() != want {
		t.Errorf("String() = %q, want %q", m.String(), want)
	}

	if _, err := ParseMap([]string{"###", "##"}); err == nil {
		t.Error("expected error for ragged rows")
	}
}

func TestMapCloneAndFingerprint(t *testing.T) {
	m := NewMap(10, 8)
	m.SetTile(3, 3, TileFloor)
	m.Rooms = []Rect{NewRect(1, 1, 3, 3)}

	c := m.Clone()
	if c.Fingerprint() != m.Fingerprint() {
		t.Fatal("clone fingerprint differs")
	}

	c.SetTile(4, 4, TileFloor)
	c.Rooms[0] = NewRect(0, 0, 1, 1)
	if m.GetTile(4, 4) != TileWall {
		t.Error("clone shares tile buffer with original")
	}
	if m.Rooms[0] != NewRect(1, 1, 3, 3) {
		t.Error("clone shares rooms with original")
	}
	if c.Fingerprint() == m.Fingerprint() {
		t.Error("different grids should not share a fingerprint")
	}
}

func TestMapIndexing(t *testing.T) {
	m := NewMap(7, 5)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			gx, gy := m.XY(m.Idx(x, y))
			if gx != x || gy != y {
				t.Fatalf("XY(Idx(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
	if m.Count(TileWall) != 35 {
		t.Errorf("Count(wall) = %d, want 35", m.Count(TileWall))
	}
}

func TestRoomIndexAt(t *testing.T) {
	m := NewMap(20, 20)
	m.Rooms = []Rect{NewRect(5, 5, 4, 4), NewRect(12, 2, 3, 3)}
	tests := []struct {
		x, y, want int
	}{
		{6, 6, 0},
		{12, 2, 1},
		{9, 9, -1},
		{0, 0, -1},
	}
	for _, tt := range tests {
		if got := m.RoomIndexAt(tt.x, tt.y); got != tt.want {
			t.Errorf("RoomIndexAt(%d,%d): %d != %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		n    int
	}{
		{"horizontal", Point{0, 0}, Point{5, 0}, 5},
		{"vertical", Point{2, 7}, Point{2, 1}, 6},
		{"diagonal", Point{0, 0}, Point{4, 4}, 4},
		{"shallow", Point{0, 0}, Point{7, 2}, 7},
		{"same point", Point{3, 3}, Point{3, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := Line(tt.a, tt.b)
			if len(line) != tt.n {
				t.Fatalf("len = %d, want %d (%v)", len(line), tt.n, line)
			}
			if tt.n > 0 && line[len(line)-1] != tt.b {
				t.Errorf("line ends at %v, want %v", line[len(line)-1], tt.b)
			}
			prev := tt.a
			for _, p := range line {
				if abs(p.X-prev.X) > 1 || abs(p.Y-prev.Y) > 1 {
					t.Errorf("gap between %v and %v", prev, p)
				}
				prev = p
			}
		})
	}
}

func TestDistanceMetrics(t *testing.T) {
	a, b := Point{0, 0}, Point{3, 4}
	if got := Pythagoras.Distance(a, b); got != 5 {
		t.Errorf("Pythagoras = %v", got)
	}
	if got := Manhattan.Distance(a, b); got != 7 {
		t.Errorf("Manhattan = %v", got)
	}
	if got := Chebyshev.Distance(a, b); got != 4 {
		t.Errorf("Chebyshev = %v", got)
	}
	if DistanceSquared(a, b) != 25 {
		t.Errorf("DistanceSquared = %d", DistanceSquared(a, b))
	}
}
