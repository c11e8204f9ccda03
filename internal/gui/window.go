//go:build !nogui

package gui

import (
	"errors"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/modpascal/internal/grid"
)

// ErrWindowClosed is returned by Flush once the user has closed the window.
var ErrWindowClosed = errors.New("gui: window closed")

const textSize = 20

// Window is a grid.Target drawing into an off-screen texture. Flush
// presents the texture, so partial flushes of a long render show up as
// they happen.
type Window struct {
	layout    grid.Layout
	tex       rl.RenderTexture2D
	inTexture bool

	// Overlay, when set, draws on top of the texture at every present.
	Overlay func()
}

// OpenWindow creates a window of the layout size filled with its
// background.
func OpenWindow(l grid.Layout, title string) *Window {
	rl.InitWindow(int32(l.Width), int32(l.Height), title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
	w := &Window{layout: l, tex: rl.LoadRenderTexture(int32(l.Width), int32(l.Height))}
	w.Clear(l.Background)
	return w
}

func (w *Window) begin() {
	if !w.inTexture {
		rl.BeginTextureMode(w.tex)
		w.inTexture = true
	}
}

func (w *Window) end() {
	if w.inTexture {
		rl.EndTextureMode()
		w.inTexture = false
	}
}

func (w *Window) DrawRect(x, y, width, height float64, c color.Color) {
	x0, y0, x1, y1 := snap(x, y, width, height)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	w.begin()
	rl.DrawRectangle(x0, y0, x1-x0, y1-y0, rgba(c))
}

// DrawText centers s on (x, y) in raylib's default font.
func (w *Window) DrawText(x, y float64, s string, c color.Color) {
	w.begin()
	width := rl.MeasureText(s, textSize)
	rl.DrawText(s, int32(x)-width/2, int32(y)-textSize/2, textSize, rgba(c))
}

func (w *Window) Clear(c color.Color) {
	w.begin()
	rl.ClearBackground(rgba(c))
}

func (w *Window) Flush() error {
	w.Present()
	if rl.WindowShouldClose() {
		return ErrWindowClosed
	}
	return nil
}

// Present draws the texture and the overlay to the screen.
func (w *Window) Present() {
	w.end()
	rl.BeginDrawing()
	rl.ClearBackground(rgba(w.layout.Background))
	// render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(w.layout.Width), -float32(w.layout.Height))
	rl.DrawTextureRec(w.tex.Texture, src, rl.NewVector2(0, 0), rl.White)
	if w.Overlay != nil {
		w.Overlay()
	}
	rl.EndDrawing()
}

func (w *Window) Close() {
	w.end()
	rl.UnloadRenderTexture(w.tex)
	rl.CloseWindow()
}

// snap floors both edges the way raster.Canvas does, so the window and an
// exported PNG cover the same pixels.
func snap(x, y, w, h float64) (x0, y0, x1, y1 int32) {
	return int32(math.Floor(x)), int32(math.Floor(y)), int32(math.Floor(x + w)), int32(math.Floor(y + h))
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
