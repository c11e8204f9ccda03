//go:build nogui

// Package gui is the raylib window front end. This build has no raylib.
package gui

import (
	"errors"

	"github.com/san-kum/modpascal/internal/export"
	"github.com/san-kum/modpascal/internal/grid"
)

var ErrUnavailable = errors.New("gui: built with the nogui tag")

func Run(grid.Config, grid.Layout, export.PathChooser) error {
	return ErrUnavailable
}
