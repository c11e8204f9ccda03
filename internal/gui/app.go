//go:build !nogui

// Package gui is the raylib window front end.
package gui

import (
	"context"
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/modpascal/internal/config"
	"github.com/san-kum/modpascal/internal/export"
	"github.com/san-kum/modpascal/internal/grid"
)

var keys = []int32{rl.KeyUp, rl.KeyDown, rl.KeyR, rl.KeyS, rl.KeyQ, rl.KeyEscape}

// App holds what the window shows. Up/Down change the divisor, R redraws,
// S saves a PNG, Q or Esc quits.
type App struct {
	Config  grid.Config
	Layout  grid.Layout
	Chooser export.PathChooser
	Status  string

	dirty bool
}

func NewApp(cfg grid.Config, l grid.Layout, chooser export.PathChooser) *App {
	if chooser == nil {
		chooser = export.FixedPath("")
	}
	return &App{Config: cfg, Layout: l, Chooser: chooser, dirty: true}
}

// NeedsRender reports whether the triangle must be redrawn.
func (a *App) NeedsRender() bool { return a.dirty }

// HandleKey applies one key press and reports whether the app should quit.
func (a *App) HandleKey(key int32) bool {
	switch key {
	case rl.KeyQ, rl.KeyEscape:
		return true
	case rl.KeyUp:
		if a.Config.Divisor < config.MaxRenderDivisor {
			a.Config.Divisor++
			a.dirty, a.Status = true, ""
		}
	case rl.KeyDown:
		if a.Config.Divisor > 1 {
			a.Config.Divisor--
			a.dirty, a.Status = true, ""
		}
	case rl.KeyR:
		a.dirty = true
	case rl.KeyS:
		path, err := export.Save(context.Background(), a.Chooser, a.Config, a.Layout)
		switch {
		case errors.Is(err, export.ErrExportCancelled):
			a.Status = "save cancelled"
		case err != nil:
			a.Status = "save failed: " + err.Error()
		default:
			a.Status = "saved " + path
		}
	}
	return false
}

func (a *App) render(w *Window) error {
	a.dirty = false
	w.Clear(a.Layout.Background)
	return grid.NewRenderer(w, a.Layout).Render(context.Background(), a.Config)
}

func (a *App) drawHUD() {
	h := int32(a.Layout.Height)
	col := rgba(grid.TextColor)
	rl.DrawText("up/down divisor  r redraw  s save  q quit", 10, h-28, 16, col)
	if a.Status != "" {
		rl.DrawText(a.Status, 10, h-52, 16, col)
	}
}

// Run opens the window, renders cfg and handles keys until the window is
// closed.
func Run(cfg grid.Config, l grid.Layout, chooser export.PathChooser) error {
	win := OpenWindow(l, "modpascal")
	defer win.Close()

	app := NewApp(cfg, l, chooser)
	win.Overlay = app.drawHUD

	for !rl.WindowShouldClose() {
		if app.NeedsRender() {
			err := app.render(win)
			if errors.Is(err, ErrWindowClosed) {
				return nil
			}
			if err != nil {
				app.Status = err.Error()
			}
		}
		for _, k := range keys {
			if rl.IsKeyPressed(k) && app.HandleKey(k) {
				return nil
			}
		}
		win.Present()
	}
	return nil
}
