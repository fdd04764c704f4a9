package entity

import (
	"testing"

	"github.com/samdwyer/mapforge/internal/gamedata"
)

func TestRosterMaterialize(t *testing.T) {
	r := NewRoster(gamedata.MustLoadEntityRegistry(), 10)

	if err := r.Materialize(23, "goblin"); err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if err := r.Materialize(23, "rations"); err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len: %d != 2", r.Len())
	}

	g := r.Entities()[0]
	if x, y := g.Position(); x != 3 || y != 2 {
		t.Errorf("goblin position: (%d,%d) != (3,2)", x, y)
	}
	if g.Symbol() != 'g' {
		t.Errorf("goblin symbol: %q != 'g'", g.Symbol())
	}
	if g.Kind() != "monster" {
		t.Errorf("goblin kind: %q != monster", g.Kind())
	}
	if got := len(r.At(3, 2)); got != 2 {
		t.Errorf("entities at (3,2): %d != 2", got)
	}
	if got := len(r.At(0, 0)); got != 0 {
		t.Errorf("entities at (0,0): %d != 0", got)
	}
}

func TestRosterUnknownKey(t *testing.T) {
	r := NewRoster(gamedata.MustLoadEntityRegistry(), 10)
	if err := r.Materialize(5, "dragon_emperor"); err == nil {
		t.Error("expected error for unknown key")
	}
	if r.Len() != 0 {
		t.Errorf("Len after failure: %d != 0", r.Len())
	}
}

func TestRosterSummary(t *testing.T) {
	r := NewRoster(gamedata.MustLoadEntityRegistry(), 10)
	for i, key := range []string{"goblin", "door", "orc", "door"} {
		if err := r.Materialize(i, key); err != nil {
			t.Fatalf("Materialize %s: %v", key, err)
		}
	}
	if got := r.Summary(); got != "door:2 monster:2" {
		t.Errorf("Summary: %q != %q", got, "door:2 monster:2")
	}
}

func TestMarker(t *testing.T) {
	m := NewMarker(4, 7)
	if m.X != 4 || m.Y != 7 || m.Symbol != '&' {
		t.Errorf("marker: %+v", m)
	}
}
