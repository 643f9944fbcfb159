package view

import (
	"errors"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// ErrBadScale is returned for a non-positive pixels-per-cell factor.
var ErrBadScale = errors.New("view: scale must be positive")

// Image renders the map at scale pixels per cell with the active route
// stroked from start to goal. The start is marked green and the goal blue.
func Image(m *Model, scale int) (image.Image, error) {
	dc, err := draw(m, scale)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// SavePNG writes Image to path.
func SavePNG(m *Model, scale int, path string) error {
	dc, err := draw(m, scale)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func draw(m *Model, scale int) (*gg.Context, error) {
	if scale < 1 {
		return nil, ErrBadScale
	}
	g := m.Terrain.Grid
	dc := gg.NewContext(g.Width*scale, g.Height*scale)
	s := float64(scale)

	for p := range g.CellsMatching(func(int) bool { return true }) {
		e, _ := g.ElevationAt(p)
		r, gr, b := Shade(e, g.Peak).RGB()
		dc.SetColor(color.RGBA{uint8(r), uint8(gr), uint8(b), 255})
		dc.DrawRectangle(float64(p.X)*s, float64(p.Y)*s, s, s)
		dc.Fill()
	}

	center := func(x, y int) (float64, float64) {
		return float64(x)*s + s/2, float64(y)*s + s/2
	}
	if path := m.Path(); len(path) > 1 {
		dc.SetColor(color.RGBA{200, 0, 0, 255})
		dc.SetLineWidth(max(1, s/3))
		dc.MoveTo(center(path[0].X, path[0].Y))
		for _, p := range path[1:] {
			dc.LineTo(center(p.X, p.Y))
		}
		dc.Stroke()
	}

	start := m.Terrain.Start
	if path := m.Path(); len(path) > 0 {
		start = path[0]
	}
	dc.SetColor(color.RGBA{0, 255, 0, 255})
	x, y := center(start.X, start.Y)
	dc.DrawCircle(x, y, s/2)
	dc.Fill()

	dc.SetColor(color.RGBA{0, 0, 255, 255})
	x, y = center(m.Terrain.Goal.X, m.Terrain.Goal.Y)
	dc.DrawCircle(x, y, s/2)
	dc.Fill()

	return dc, nil
}
