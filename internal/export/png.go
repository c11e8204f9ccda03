// Package export turns a rendered triangle into image files.
package export

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/san-kum/modpascal/internal/grid"
	"github.com/san-kum/modpascal/internal/raster"
)

// DefaultFilename is the name suggested to the save prompt.
func DefaultFilename(divisor int) string {
	return fmt.Sprintf("pascal_mod_%d.png", divisor)
}

// PathChooser supplies the destination of an export. An empty path means
// the user cancelled.
type PathChooser interface {
	ChoosePath(suggested string) (string, error)
}

// FixedPath always chooses itself; an empty FixedPath falls back to the
// suggested name.
type FixedPath string

func (p FixedPath) ChoosePath(suggested string) (string, error) {
	if p == "" {
		return suggested, nil
	}
	return string(p), nil
}

// ChooserFunc adapts a function to PathChooser.
type ChooserFunc func(suggested string) (string, error)

func (f ChooserFunc) ChoosePath(suggested string) (string, error) { return f(suggested) }

// Image redraws the current triangle of cfg onto a fresh off-screen canvas
// of the layout size. Sequence modes export the triangle of cfg.Divisor.
// Remainder digits follow cfg.Labels as on screen; captions are not drawn.
func Image(cfg grid.Config, l grid.Layout) (*image.RGBA, error) {
	canvas := raster.New(l.Width, l.Height, l.Background)
	r := grid.NewRenderer(canvas, l)
	var err error
	if cfg.Mode == grid.ModeSimulated {
		err = r.Simulated(cfg)
	} else {
		err = r.Triangle(cfg)
	}
	if err != nil {
		return nil, err
	}
	return canvas.Img, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// Save asks chooser for a path, renders cfg off-screen and writes a PNG
// there. It returns the written path. A cancelled prompt yields
// ErrExportCancelled and writes nothing.
func Save(ctx context.Context, chooser PathChooser, cfg grid.Config, l grid.Layout) (string, error) {
	path, err := chooser.ChoosePath(DefaultFilename(cfg.Divisor))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	if path == "" {
		return "", ErrExportCancelled
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, err := Image(cfg, l)
	if err != nil {
		return "", err
	}
	return path, writeFile(path, func(w io.Writer) error { return EncodePNG(w, img) })
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
