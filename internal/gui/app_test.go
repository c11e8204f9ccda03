//go:build !nogui

package gui

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/modpascal/internal/export"
	"github.com/san-kum/modpascal/internal/grid"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		x, y, w, h     float64
		x0, y0, x1, y1 int32
	}{
		{10, 20, 5, 5, 10, 20, 15, 25},
		{10.5, 20.5, 1, 1, 10, 20, 11, 21},
		{-3.5, 0, 2, 1, -4, 0, -2, 1},
	}
	for _, tt := range tests {
		x0, y0, x1, y1 := snap(tt.x, tt.y, tt.w, tt.h)
		if x0 != tt.x0 || y0 != tt.y0 || x1 != tt.x1 || y1 != tt.y1 {
			t.Errorf("snap(%v,%v,%v,%v) = %d,%d,%d,%d", tt.x, tt.y, tt.w, tt.h, x0, y0, x1, y1)
		}
	}
}

func TestRGBA(t *testing.T) {
	if got := rgba(color.Gray{128}); got != (color.RGBA{128, 128, 128, 255}) {
		t.Errorf("rgba(gray) = %v", got)
	}
}

func TestHandleKey(t *testing.T) {
	app := NewApp(grid.Config{Divisor: 2, CellSize: 10, Rows: 20}, grid.NewLayout(300), nil)
	if !app.NeedsRender() {
		t.Fatal("a new app must render")
	}
	app.dirty = false

	app.HandleKey(rl.KeyUp)
	if app.Config.Divisor != 3 || !app.NeedsRender() {
		t.Errorf("up: divisor %d dirty %v", app.Config.Divisor, app.dirty)
	}

	app.Config.Divisor, app.dirty = 1, false
	app.HandleKey(rl.KeyDown)
	if app.Config.Divisor != 1 || app.NeedsRender() {
		t.Errorf("down below 1: divisor %d dirty %v", app.Config.Divisor, app.dirty)
	}

	if app.HandleKey(rl.KeyR); !app.NeedsRender() {
		t.Error("r should request a redraw")
	}
	if !app.HandleKey(rl.KeyQ) || !app.HandleKey(rl.KeyEscape) {
		t.Error("q and esc should quit")
	}
}

func TestHandleKeySave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "win.png")
	app := NewApp(grid.Config{Divisor: 5, CellSize: 5, Rows: 40}, grid.NewLayout(300), export.FixedPath(path))
	app.HandleKey(rl.KeyS)
	if app.Status != "saved "+path {
		t.Errorf("status %q", app.Status)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}

	app.Chooser = export.ChooserFunc(func(string) (string, error) { return "", nil })
	app.HandleKey(rl.KeyS)
	if app.Status != "save cancelled" {
		t.Errorf("status %q", app.Status)
	}

	app.Chooser = export.FixedPath(filepath.Join(t.TempDir(), "missing", "x.png"))
	app.HandleKey(rl.KeyS)
	if !strings.HasPrefix(app.Status, "save failed") {
		t.Errorf("status %q", app.Status)
	}
}
