package gamedata

import "github.com/gdamore/tcell/v2"

// TileColors are the display colours of one tile type.
type TileColors struct {
	Fg string `yaml:"fg"`
	Bg string `yaml:"bg"`
}

// Palette maps tile names to colours.
type Palette struct {
	Tiles map[string]TileColors `yaml:"tiles"`
}

// LoadPalette loads the embedded tiles.yaml.
func LoadPalette() (*Palette, error) {
	p, err := Load[Palette]("tiles.yaml")
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MustLoadPalette loads the palette, panicking on error.
func MustLoadPalette() *Palette {
	p, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return p
}

// Style returns the tcell style for a tile name. Unknown tiles render white
// on black.
func (p *Palette) Style(name string) tcell.Style {
	c := p.Tiles[name]
	return tcell.StyleDefault.
		Foreground(colorOr(c.Fg, tcell.ColorWhite)).
		Background(colorOr(c.Bg, tcell.ColorBlack))
}
