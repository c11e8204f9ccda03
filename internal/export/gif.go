package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	stdpalette "image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/san-kum/modpascal/internal/grid"
	"github.com/san-kum/modpascal/internal/raster"
)

// Frames renders a sequence (primes or increasing) and returns a snapshot of
// the canvas after every frame, followed by the final triangle of
// cfg.Divisor.
func Frames(ctx context.Context, cfg grid.Config, l grid.Layout) ([]*image.RGBA, error) {
	canvas := raster.New(l.Width, l.Height, l.Background)
	r := grid.NewRenderer(canvas, l)
	var frames []*image.RGBA
	r.OnFrame = func(int) error {
		frames = append(frames, canvas.Snapshot())
		return nil
	}
	cfg.Delay = 0
	if err := r.Render(ctx, cfg); err != nil {
		return nil, err
	}
	frames = append(frames, canvas.Snapshot())
	return frames, nil
}

// EncodeGIF writes frames as a looping animation with delay between frames.
func EncodeGIF(w io.Writer, frames []*image.RGBA, delay time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrExportFailed)
	}
	anim := gif.GIF{LoopCount: 0}
	centis := int(delay / (10 * time.Millisecond))
	for _, f := range frames {
		anim.Image = append(anim.Image, toPaletted(f))
		anim.Delay = append(anim.Delay, centis)
	}
	if err := gif.EncodeAll(w, &anim); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// SaveGIF renders the sequence of cfg and writes it to path.
func SaveGIF(ctx context.Context, path string, cfg grid.Config, l grid.Layout, delay time.Duration) (int, error) {
	frames, err := Frames(ctx, cfg, l)
	if err != nil {
		return 0, err
	}
	return len(frames), writeFile(path, func(w io.Writer) error { return EncodeGIF(w, frames, delay) })
}

// toPaletted keeps colors exact when a frame uses at most 256 of them,
// which holds for every divisor below 254; otherwise it dithers onto the
// Plan 9 palette.
func toPaletted(img *image.RGBA) *image.Paletted {
	b := img.Bounds()
	if pal := exactPalette(img, 256); pal != nil {
		out := image.NewPaletted(b, pal)
		draw.Draw(out, b, img, b.Min, draw.Src)
		return out
	}
	out := image.NewPaletted(b, stdpalette.Plan9)
	draw.FloydSteinberg.Draw(out, b, img, b.Min)
	return out
}

func exactPalette(img *image.RGBA, limit int) color.Palette {
	seen := make(map[color.RGBA]struct{})
	var pal color.Palette
	for i := 0; i+3 < len(img.Pix); i += 4 {
		c := color.RGBA{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
		if _, ok := seen[c]; ok {
			continue
		}
		if len(pal) == limit {
			return nil
		}
		seen[c] = struct{}{}
		pal = append(pal, c)
	}
	return pal
}
