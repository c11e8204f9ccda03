package grid

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/san-kum/modpascal/internal/palette"
	"github.com/san-kum/modpascal/internal/pascal"
)

// simulatedFlushEvery is how many displayed rows a simulated render draws
// between partial flushes.
const simulatedFlushEvery = 100

// Renderer draws triangles onto a Target. Each render pass builds and owns
// its own cache.
type Renderer struct {
	target Target
	layout Layout

	// OnFrame, when set, is called after every flushed sequence frame with
	// the divisor that frame used.
	OnFrame func(divisor int) error
}

func NewRenderer(t Target, l Layout) *Renderer {
	return &Renderer{target: t, layout: l}
}

func (r *Renderer) Layout() Layout { return r.layout }

// Render dispatches on cfg.Mode. Sequence modes finish by drawing the
// triangle of cfg.Divisor itself.
func (r *Renderer) Render(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	switch cfg.Mode {
	case ModeSimulated:
		p, err := r.NewPass(cfg)
		if err != nil {
			return err
		}
		for !p.Done() {
			if err := p.Step(); err != nil {
				return err
			}
		}
		return p.Finish()
	case ModePrimes, ModeIncreasing:
		if err := r.Sequence(ctx, cfg); err != nil {
			return err
		}
		return r.Frame(cfg, cfg.Divisor)
	default:
		if err := r.Triangle(cfg); err != nil {
			return err
		}
		r.caption(cfg.Divisor, cfg.Rows)
		if cfg.Divisor == 2 {
			x, y := r.layout.SubLabelPos()
			r.target.DrawText(x, y, "~Sierpinski Triangle!", TextColor)
		}
		return r.flush()
	}
}

// Triangle draws the cfg.Rows-row triangle for cfg.Divisor.
func (r *Renderer) Triangle(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return r.triangle(cfg, cfg.Divisor)
}

func (r *Renderer) triangle(cfg Config, divisor int) error {
	cache, err := pascal.NewCache(divisor)
	if err != nil {
		return err
	}
	pal := palette.MustNew(divisor)
	return Walk(cache, r.layout, cfg.Rows, cfg.CellSize, func(c Cell) {
		r.cell(c, pal, cfg.Labels)
	})
}

// Simulated samples cfg.Rows displayed rows out of cfg.VirtualRows, flushing
// every simulatedFlushEvery rows.
func (r *Renderer) Simulated(cfg Config) error {
	p, err := r.NewPass(cfg)
	if err != nil {
		return err
	}
	for !p.Done() {
		if err := p.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Pass is a simulated render drawn in chunks of simulatedFlushEvery display
// rows, so a caller driving an event loop can present each chunk. The
// cache lives for the whole pass.
type Pass struct {
	r     *Renderer
	cfg   Config
	cache *pascal.Cache
	pal   palette.Palette
	next  int
}

func (r *Renderer) NewPass(cfg Config) (*Pass, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cache, err := pascal.NewCache(cfg.Divisor)
	if err != nil {
		return nil, err
	}
	return &Pass{r: r, cfg: cfg, cache: cache, pal: palette.MustNew(cfg.Divisor)}, nil
}

func (p *Pass) Done() bool { return p.next >= p.cfg.Rows }

// Drawn is the number of display rows drawn so far.
func (p *Pass) Drawn() int { return min(p.next, p.cfg.Rows) }

// Step draws the next chunk. Every chunk but the last is followed by a
// partial flush; the final flush is left to the caller.
func (p *Pass) Step() error {
	if p.Done() {
		return nil
	}
	to := p.next + simulatedFlushEvery
	err := WalkSimulatedRange(p.cache, p.r.layout, p.cfg.VirtualRows, p.cfg.Rows, p.next, to, p.cfg.CellSize, func(_ int, c Cell) {
		p.r.cell(c, p.pal, p.cfg.Labels)
	})
	if err != nil {
		return err
	}
	p.next = to
	if p.Done() {
		return nil
	}
	return p.r.flush()
}

// Finish draws the "mod: d , rows: V" caption and flushes the complete frame.
func (p *Pass) Finish() error {
	p.r.caption(p.cfg.Divisor, p.cfg.VirtualRows)
	return p.r.flush()
}

// SequenceDivisors lists the divisors a sequence render walks through.
func SequenceDivisors(mode Mode, limit int) []int {
	var out []int
	for m := 2; m <= limit; m++ {
		if mode == ModePrimes && !pascal.IsPrime(m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Sequence renders one full triangle per divisor of SequenceDivisors. Each
// frame is drawn, flushed and then cleared for the next. The context is
// only checked between frames.
func (r *Renderer) Sequence(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, m := range SequenceDivisors(cfg.Mode, cfg.Divisor) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Frame(cfg, m); err != nil {
			return err
		}
		if r.OnFrame != nil {
			if err := r.OnFrame(m); err != nil {
				return err
			}
		}
		if cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.Delay):
			}
		}
	}
	return nil
}

// Frame clears the target, draws the captioned triangle of divisor with the
// geometry of cfg and flushes it.
func (r *Renderer) Frame(cfg Config, divisor int) error {
	r.clear()
	if err := r.triangle(cfg, divisor); err != nil {
		return fmt.Errorf("frame mod %d: %w", divisor, err)
	}
	r.caption(divisor, cfg.Rows)
	return r.flush()
}

func (r *Renderer) cell(c Cell, pal palette.Palette, labels bool) {
	r.target.DrawRect(c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, pal.Color(c.Remainder))
	if labels {
		r.target.DrawText(c.Rect.X+c.Rect.W/2, c.Rect.Y+c.Rect.H/2, strconv.Itoa(c.Remainder), TextColor)
	}
}

func (r *Renderer) caption(divisor, rows int) {
	x, y := r.layout.LabelPos()
	r.target.DrawText(x, y, fmt.Sprintf("mod: %d , rows: %d", divisor, rows), TextColor)
}

func (r *Renderer) clear() {
	if c, ok := r.target.(Clearer); ok {
		c.Clear(r.layout.Background)
	}
}

func (r *Renderer) flush() error {
	if f, ok := r.target.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
