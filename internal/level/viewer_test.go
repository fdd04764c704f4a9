package level

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mapforge/internal/ui"
)

func newTestViewer(t *testing.T, mode ViewMode) (tcell.SimulationScreen, *Viewer) {
	t.Helper()
	res, err := (&Generator{Snapshots: true}).Generate(context.Background(), caveParams(11))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	sim := tcell.NewSimulationScreen("")
	s, err := ui.NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(res.Map.Width, res.Map.Height+1)
	v := NewViewer(s, res, mode)
	t.Cleanup(v.Close)
	return sim, v
}

func TestViewerQuits(t *testing.T) {
	sim, v := newTestViewer(t, ViewLevel)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if v.running {
		t.Error("viewer still running after q")
	}
	x, y := v.result.Start()
	if r, _, _, _ := sim.GetContent(x, y); r != '&' {
		t.Errorf("marker not drawn at start: %q", r)
	}
}

func TestViewerHistoryStepping(t *testing.T) {
	_, v := newTestViewer(t, ViewHistory)
	if !v.playing {
		t.Error("history should start playing")
	}

	v.handleKeyEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if v.frame != 0 || v.playing {
		t.Errorf("left at first frame: frame=%d playing=%v", v.frame, v.playing)
	}
	v.handleKeyEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if v.frame != 1 {
		t.Errorf("frame after right: %d != 1", v.frame)
	}
	v.handleKeyEvent(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	if v.frame != len(v.result.History)-1 {
		t.Errorf("frame after end: %d != %d", v.frame, len(v.result.History)-1)
	}
	v.step(1)
	if v.frame != len(v.result.History)-1 {
		t.Errorf("step past the end moved to %d", v.frame)
	}
}

func TestViewerModeCycle(t *testing.T) {
	_, v := newTestViewer(t, ViewLevel)
	for _, want := range []ViewMode{ViewHistory, ViewGallery, ViewLevel} {
		v.handleKeyEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
		if v.mode != want {
			t.Errorf("mode: %v != %v", v.mode, want)
		}
	}
	if v.frames != nil {
		t.Error("level mode should have no frames")
	}
}

func TestViewModeString(t *testing.T) {
	tests := []struct {
		mode ViewMode
		want string
	}{
		{ViewLevel, "level"},
		{ViewHistory, "history"},
		{ViewGallery, "gallery"},
		{ViewMode(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d: %q != %q", tt.mode, got, tt.want)
		}
	}
}
