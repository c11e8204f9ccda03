package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/modpascal/internal/grid"
	"github.com/san-kum/modpascal/internal/palette"
	"github.com/san-kum/modpascal/internal/pascal"
)

// SVG writes the current triangle of cfg as one <rect> per cell, plus a
// centered <text> per cell when cfg.Labels is set.
func SVG(w io.Writer, cfg grid.Config, l grid.Layout) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cache, err := pascal.NewCache(cfg.Divisor)
	if err != nil {
		return err
	}
	pal := palette.MustNew(cfg.Divisor)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="%s"/>
`, l.Width, l.Height, l.Width, l.Height, palette.Hex(l.Background)))

	rect := func(c grid.Cell) {
		sb.WriteString(fmt.Sprintf(`<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>
`, c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, pal.Hex(c.Remainder)))
		if cfg.Labels {
			sb.WriteString(fmt.Sprintf(`<text x="%g" y="%g" fill="%s" font-family="monospace" font-size="13" text-anchor="middle" dominant-baseline="central">%d</text>
`, c.Rect.X+c.Rect.W/2, c.Rect.Y+c.Rect.H/2, palette.Hex(grid.TextColor), c.Remainder))
		}
	}
	if cfg.Mode == grid.ModeSimulated {
		err = grid.WalkSimulated(cache, l, cfg.VirtualRows, cfg.Rows, cfg.CellSize, func(_ int, c grid.Cell) { rect(c) })
	} else {
		err = grid.Walk(cache, l, cfg.Rows, cfg.CellSize, rect)
	}
	if err != nil {
		return err
	}

	sb.WriteString("</svg>\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// SaveSVG writes SVG output to path.
func SaveSVG(path string, cfg grid.Config, l grid.Layout) error {
	return writeFile(path, func(w io.Writer) error { return SVG(w, cfg, l) })
}
