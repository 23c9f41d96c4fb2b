package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/katalvlaran/sketchpath/canvas"
	"github.com/katalvlaran/sketchpath/gridpath"
)

var (
	background    = color.White
	obstacleColor = color.Black
	startColor    = color.RGBA{0x34, 0xd3, 0x99, 0xff}
	goalColor     = color.RGBA{0x60, 0xa5, 0xfa, 0xff}
	routeColors   = []color.Color{
		color.RGBA{0xf4, 0x72, 0xb6, 0xff},
		color.RGBA{0xa7, 0x8b, 0xfa, 0xff},
		color.RGBA{0xfb, 0x92, 0x3c, 0xff},
		color.RGBA{0x22, 0xc5, 0x5e, 0xff},
	}
)

// Image draws the canvas with scale×scale pixels per cell: rasterized
// obstacle cells filled black, each accepted route stroked through its cell
// centers, start and goal as dots.
func Image(c *canvas.Canvas, scale int) (image.Image, error) {
	dc, err := draw(c, scale)
	if err != nil {
		return nil, err
	}

	return dc.Image(), nil
}

// PNG encodes Image(c, scale) to w.
func PNG(w io.Writer, c *canvas.Canvas, scale int) error {
	dc, err := draw(c, scale)
	if err != nil {
		return err
	}

	return dc.EncodePNG(w)
}

func draw(c *canvas.Canvas, scale int) (*gg.Context, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadScale, scale)
	}
	w, h := c.Size()
	s := float64(scale)
	center := func(p gridpath.Coord) (float64, float64) {
		return float64(p.X)*s + s/2, float64(p.Y)*s + s/2
	}

	dc := gg.NewContext(w*scale, h*scale)
	dc.SetColor(background)
	dc.Clear()

	dc.SetColor(obstacleColor)
	for _, seg := range c.Obstacles() {
		for _, p := range canvas.Line(seg.From, seg.To) {
			dc.DrawRectangle(float64(p.X)*s, float64(p.Y)*s, s, s)
		}
	}
	dc.Fill()

	for i, r := range c.Routes() {
		pts := r.Polyline()
		dc.SetColor(routeColors[i%len(routeColors)])
		dc.SetLineWidth(s / 2)
		dc.SetLineCapRound()
		dc.SetLineJoinRound()
		dc.MoveTo(center(pts[0]))
		for _, p := range pts[1:] {
			dc.LineTo(center(p))
		}
		dc.Stroke()

		for _, end := range []struct {
			p   gridpath.Coord
			col color.Color
		}{{r.Start, startColor}, {r.Goal, goalColor}} {
			x, y := center(end.p)
			dc.SetColor(end.col)
			dc.DrawCircle(x, y, s/3)
			dc.Fill()
		}
	}

	return dc, nil
}
