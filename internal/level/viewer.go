package level

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mapforge/internal/entity"
	"github.com/samdwyer/mapforge/internal/telemetry"
	"github.com/samdwyer/mapforge/internal/ui"
	"github.com/samdwyer/mapforge/internal/world"
)

const galleryChunkSize = 8

// Viewer is the debug visualizer: it shows a generated level, steps through
// its build history and pages through its pattern gallery.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	result   *Result
	marker   *entity.Marker
	mode     ViewMode
	frames   []*world.Map
	frame    int
	playing  bool
	running  bool
	// Delay between frames during playback.
	Delay time.Duration
}

// NewViewer creates a viewer for a result on an initialized screen.
func NewViewer(screen *ui.Screen, res *Result, mode ViewMode) *Viewer {
	x, y := res.Start()
	v := &Viewer{
		screen:   screen,
		renderer: ui.NewRenderer(screen, nil),
		result:   res,
		marker:   entity.NewMarker(x, y),
		running:  true,
		Delay:    60 * time.Millisecond,
	}
	v.setMode(mode)
	return v
}

// Run executes the viewer loop until the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	_, span := telemetry.Tracer("level").Start(ctx, "level.view")
	span.SetAttributes(
		attribute.String("view.recipe", v.result.Recipe),
		attribute.Int("view.snapshots", len(v.result.History)),
	)
	defer span.End()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go v.tick(ctx)

	for v.running {
		v.render()
		v.handleInput()
	}
	return nil
}

// tick wakes the loop for playback.
func (v *Viewer) tick(ctx context.Context) {
	t := time.NewTicker(v.Delay)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}
}

func (v *Viewer) setMode(mode ViewMode) {
	v.mode = mode
	v.frame = 0
	v.playing = false
	switch mode {
	case ViewHistory:
		v.frames = v.result.History
		v.playing = len(v.frames) > 1
	case ViewGallery:
		v.frames = v.result.Gallery(galleryChunkSize)
	default:
		v.frames = nil
	}
}

func (v *Viewer) render() {
	if len(v.frames) == 0 {
		v.renderer.Render(v.result.Map, v.result.Roster, v.marker)
	} else {
		v.renderer.RenderMap(v.frames[v.frame])
	}
	v.renderer.RenderMessage(v.status(), v.result.Map.Height)
}

func (v *Viewer) status() string {
	s := fmt.Sprintf("%s seed=%d mode=%s", v.result.Recipe, v.result.Seed, v.mode)
	if len(v.frames) > 0 {
		s += fmt.Sprintf(" frame %d/%d", v.frame+1, len(v.frames))
	}
	if v.playing {
		s += " [playing]"
	}
	return s + "  (tab: mode, arrows: step, space: play, q: quit)"
}

// handleInput processes a single input event.
func (v *Viewer) handleInput() {
	ev := v.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ev)
	case *tcell.EventInterrupt:
		if v.playing {
			v.step(1)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	case nil:
		v.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false
	case tcell.KeyTab:
		v.setMode(v.mode.next())
	case tcell.KeyRight:
		v.playing = false
		v.step(1)
	case tcell.KeyLeft:
		v.playing = false
		v.step(-1)
	case tcell.KeyHome:
		v.frame = 0
	case tcell.KeyEnd:
		if len(v.frames) > 0 {
			v.frame = len(v.frames) - 1
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case ' ':
			v.playing = !v.playing && len(v.frames) > 1
		}
	}
}

// step moves through the frames, stopping playback at the last one.
func (v *Viewer) step(delta int) {
	if len(v.frames) == 0 {
		return
	}
	v.frame = max(0, min(len(v.frames)-1, v.frame+delta))
	if v.frame == len(v.frames)-1 {
		v.playing = false
	}
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	if v.screen != nil {
		v.screen.Close()
	}
}
