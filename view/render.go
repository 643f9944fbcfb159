package view

import (
	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/hillclimb/heightmap"
)

// Canvas is the part of tcell.Screen that Render draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// headerRows is the number of lines above the map.
const headerRows = 1

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)

// Render draws the status line and the map, clipped to the canvas.
func Render(c Canvas, m *Model) {
	w, h := c.Size()
	for x, r := range []rune(m.Status()) {
		if x >= w {
			break
		}
		c.SetContent(x, 0, r, nil, statusStyle)
	}

	g := m.Terrain.Grid
	for y := 0; y < g.Height && y+headerRows < h; y++ {
		for x := 0; x < g.Width && x < w; x++ {
			p := heightmap.Position{X: x, Y: y}
			r, style := cell(m, p)
			c.SetContent(x, y+headerRows, r, nil, style)
		}
	}
}

// cell picks the glyph and style for p.
func cell(m *Model, p heightmap.Position) (rune, tcell.Style) {
	e, _ := m.Terrain.Grid.ElevationAt(p)
	bg := tcell.StyleDefault.Background(Shade(e, m.Terrain.Grid.Peak))

	switch {
	case p == m.Terrain.Goal:
		return 'E', bg.Foreground(tcell.ColorYellow).Bold(true)
	case p == m.Terrain.Start:
		return 'S', bg.Foreground(tcell.ColorYellow).Bold(true)
	}
	if q, ok := m.next(p); ok {
		return arrow(p, q), bg.Foreground(tcell.ColorRed).Bold(true)
	}
	return rune(m.Terrain.Symbol(p)), bg.Foreground(tcell.ColorBlack)
}

// arrow points from p toward its orthogonal neighbor q.
func arrow(p, q heightmap.Position) rune {
	switch {
	case q.Y < p.Y:
		return '^'
	case q.Y > p.Y:
		return 'v'
	case q.X < p.X:
		return '<'
	default:
		return '>'
	}
}

// Shade maps an elevation onto a green-to-white ramp.
func Shade(e, peak int) tcell.Color {
	if peak <= 0 {
		return tcell.NewRGBColor(255, 255, 255)
	}
	e = max(0, min(e, peak))
	mix := func(lo, hi int32) int32 {
		return lo + (hi-lo)*int32(e)/int32(peak)
	}
	return tcell.NewRGBColor(mix(20, 255), mix(90, 255), mix(30, 255))
}
