package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mapforge/internal/entity"
	"github.com/samdwyer/mapforge/internal/gamedata"
	"github.com/samdwyer/mapforge/internal/world"
)

// Renderer handles drawing levels to the screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen. A nil palette
// uses the embedded tile colours.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	if palette == nil {
		palette = gamedata.MustLoadPalette()
	}
	return &Renderer{screen: screen, palette: palette}
}

// Render draws a finished level: tiles, then entities, then the party marker
// on top. Either overlay may be nil.
func (r *Renderer) Render(m *world.Map, roster *entity.Roster, marker *entity.Marker) {
	r.screen.Clear()
	r.drawTiles(m)

	if roster != nil {
		for _, e := range roster.Entities() {
			style := r.tileBackground(m, e.X, e.Y).Foreground(e.Color())
			r.screen.SetContent(e.X, e.Y, e.Symbol(), style)
		}
	}

	if marker != nil {
		partyStyle := tcell.StyleDefault.
			Foreground(tcell.ColorYellow).
			Bold(true)
		r.screen.SetContent(marker.X, marker.Y, marker.Symbol, partyStyle)
	}

	r.screen.Show()
}

// RenderMap draws only the tiles of m, as used for snapshot playback and the
// pattern gallery.
func (r *Renderer) RenderMap(m *world.Map) {
	r.screen.Clear()
	r.drawTiles(m)
	r.screen.Show()
}

func (r *Renderer) drawTiles(m *world.Map) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			tile := m.GetTile(x, y)
			r.screen.SetContent(x, y, tile.Rune(), r.palette.Style(tile.Name()))
		}
	}
}

// tileBackground keeps the tile's background under an entity glyph.
func (r *Renderer) tileBackground(m *world.Map, x, y int) tcell.Style {
	_, bg, _ := r.palette.Style(m.GetTile(x, y).Name()).Decompose()
	return tcell.StyleDefault.Background(bg)
}

// RenderMessage displays a message on row y, padded to the screen width.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	width, _ := r.screen.Size()
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	for ; x < width; x++ {
		r.screen.SetContent(x, y, ' ', style)
	}
	r.screen.Show()
}
