// Package raster implements an off-screen pixel surface for the grid mapper.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas is an RGBA image that satisfies grid.Target, grid.Clearer and
// grid.Flusher.
type Canvas struct {
	Img  *image.RGBA
	face font.Face

	// OnFlush, when set, receives the image every time the mapper flushes
	// a partial or complete frame.
	OnFlush func(*image.RGBA) error
}

// New allocates a w x h canvas filled with bg.
func New(w, h int, bg color.Color) *Canvas {
	c := &Canvas{
		Img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		face: basicfont.Face7x13,
	}
	c.Clear(bg)
	return c
}

func (c *Canvas) Width() int  { return c.Img.Bounds().Dx() }
func (c *Canvas) Height() int { return c.Img.Bounds().Dy() }

// DrawRect fills [x, x+w) x [y, y+h), snapping both edges down to whole
// pixels so neighbouring cells never leave gaps. Anything outside the
// canvas is clipped.
func (c *Canvas) DrawRect(x, y, w, h float64, col color.Color) {
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Floor(x+w)), int(math.Floor(y+h)),
	).Intersect(c.Img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.Img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// DrawText draws s centered on (x, y) in a 7x13 bitmap face.
func (c *Canvas) DrawText(x, y float64, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  c.Img,
		Src:  image.NewUniform(col),
		Face: c.face,
	}
	width := d.MeasureString(s)
	m := c.face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(x*64) - width/2,
		Y: fixed.Int26_6(y*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(s)
}

func (c *Canvas) Clear(bg color.Color) {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

func (c *Canvas) Flush() error {
	if c.OnFlush != nil {
		return c.OnFlush(c.Img)
	}
	return nil
}

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.Img.Bounds())
	copy(out.Pix, c.Img.Pix)
	return out
}
