package grid

import "image/color"

// Target is a 2D surface the mapper draws onto.
type Target interface {
	DrawRect(x, y, w, h float64, c color.Color)
	// DrawText draws s centered on (x, y).
	DrawText(x, y float64, s string, c color.Color)
}

// Flusher is implemented by targets that present partial frames.
type Flusher interface {
	Flush() error
}

// Clearer is implemented by targets that can be wiped between frames.
type Clearer interface {
	Clear(c color.Color)
}

// Recorder is a Target that keeps every draw command. Useful for tests and
// for replaying a render onto another surface.
type Recorder struct {
	Rects   []RectCmd
	Texts   []TextCmd
	Flushes int
	Clears  int
}

type RectCmd struct {
	Rect  Rect
	Color color.Color
}

type TextCmd struct {
	X, Y  float64
	Text  string
	Color color.Color
}

func (r *Recorder) DrawRect(x, y, w, h float64, c color.Color) {
	r.Rects = append(r.Rects, RectCmd{Rect: Rect{x, y, w, h}, Color: c})
}

func (r *Recorder) DrawText(x, y float64, s string, c color.Color) {
	r.Texts = append(r.Texts, TextCmd{X: x, Y: y, Text: s, Color: c})
}

func (r *Recorder) Flush() error {
	r.Flushes++
	return nil
}

func (r *Recorder) Clear(color.Color) {
	r.Clears++
	r.Rects = r.Rects[:0]
	r.Texts = r.Texts[:0]
}

// Replay issues every recorded command onto t.
func (r *Recorder) Replay(t Target) {
	for _, c := range r.Rects {
		t.DrawRect(c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, c.Color)
	}
	for _, c := range r.Texts {
		t.DrawText(c.X, c.Y, c.Text, c.Color)
	}
}
