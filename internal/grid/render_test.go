package grid

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/san-kum/modpascal/internal/pascal"
)

func TestRenderDirect(t *testing.T) {
	rec := &Recorder{}
	r := NewRenderer(rec, NewLayout(1000))
	cfg := Config{Divisor: 3, CellSize: 10, Rows: 97}
	if err := r.Render(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	if len(rec.Rects) != 97*98/2 {
		t.Errorf("expected %d rects, got %d", 97*98/2, len(rec.Rects))
	}
	if len(rec.Texts) != 1 || rec.Texts[0].Text != "mod: 3 , rows: 97" {
		t.Errorf("unexpected captions: %+v", rec.Texts)
	}
	if rec.Flushes != 1 {
		t.Errorf("expected one flush, got %d", rec.Flushes)
	}
}

func TestRenderDivisorOne(t *testing.T) {
	rec := &Recorder{}
	r := NewRenderer(rec, NewLayout(500))
	if err := r.Triangle(Config{Divisor: 1, CellSize: 2, Rows: 30}); err != nil {
		t.Fatal(err)
	}
	first := rec.Rects[0].Color
	for _, c := range rec.Rects {
		if c.Color != first {
			t.Fatalf("divisor 1 produced two colors: %v and %v", first, c.Color)
		}
	}
	if first != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("divisor 1 color = %v, want black", first)
	}
}

func TestRenderSierpinskiCaption(t *testing.T) {
	rec := &Recorder{}
	r := NewRenderer(rec, NewLayout(1000))
	if err := r.Render(context.Background(), Config{Divisor: 2, CellSize: 5, Rows: 8}); err != nil {
		t.Fatal(err)
	}
	if len(rec.Texts) != 2 || rec.Texts[1].Text != "~Sierpinski Triangle!" {
		t.Errorf("expected Sierpinski caption, got %+v", rec.Texts)
	}
}

func TestRenderLabels(t *testing.T) {
	rec := &Recorder{}
	r := NewRenderer(rec, NewLayout(1000))
	if err := r.Triangle(Config{Divisor: 2, CellSize: 20, Rows: 5, Labels: true}); err != nil {
		t.Fatal(err)
	}
	if len(rec.Texts) != 15 {
		t.Fatalf("expected 15 remainder labels, got %d", len(rec.Texts))
	}
	// row 4 sits at indices 10..14
	want := []string{"1", "0", "0", "0", "1"}
	for i, w := range want {
		if got := rec.Texts[10+i].Text; got != w {
			t.Errorf("label (4,%d) = %s, want %s", i, got, w)
		}
	}
}

func TestRenderSimulatedFlushes(t *testing.T) {
	rec := &Recorder{}
	r := NewRenderer(rec, NewLayout(1000))
	cfg := Config{Divisor: 2, CellSize: 1, Rows: 500, VirtualRows: 5000, Mode: ModeSimulated}
	if err := r.Render(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	// partial flushes at rows 100..400, one final
	if rec.Flushes != 5 {
		t.Errorf("expected 5 flushes, got %d", rec.Flushes)
	}
}

func TestSequenceDivisors(t *testing.T) {
	primes := SequenceDivisors(ModePrimes, 12)
	if len(primes) != 5 || primes[4] != 11 {
		t.Errorf("primes up to 12 = %v", primes)
	}
	inc := SequenceDivisors(ModeIncreasing, 6)
	if len(inc) != 5 || inc[0] != 2 || inc[4] != 6 {
		t.Errorf("increasing up to 6 = %v", inc)
	}
	if got := SequenceDivisors(ModePrimes, 1); len(got) != 0 {
		t.Errorf("expected no frames for limit 1, got %v", got)
	}
}

func TestRenderSequenceFrames(t *testing.T) {
	rec := &Recorder{}
	r := NewRenderer(rec, NewLayout(400))
	var frames []int
	r.OnFrame = func(d int) error {
		frames = append(frames, d)
		if len(rec.Rects) != 10*11/2 {
			t.Errorf("frame %d has %d rects", d, len(rec.Rects))
		}
		return nil
	}
	cfg := Config{Divisor: 7, CellSize: 1, Rows: 10, Mode: ModePrimes}
	if err := r.Render(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	want := []int{2, 3, 5, 7}
	if len(frames) != len(want) {
		t.Fatalf("frames = %v, want %v", frames, want)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frames = %v, want %v", frames, want)
		}
	}
	// one clear per frame plus the final redraw
	if rec.Clears != len(want)+1 {
		t.Errorf("expected %d clears, got %d", len(want)+1, rec.Clears)
	}
	if rec.Texts[len(rec.Texts)-1].Text != "mod: 7 , rows: 10" {
		t.Errorf("final caption = %q", rec.Texts[len(rec.Texts)-1].Text)
	}
}

func TestRenderSequenceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &Recorder{}
	r := NewRenderer(rec, NewLayout(400))
	r.OnFrame = func(int) error {
		cancel()
		return nil
	}
	cfg := Config{Divisor: 9, CellSize: 1, Rows: 5, Mode: ModeIncreasing, Delay: time.Hour}
	err := r.Render(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRenderValidation(t *testing.T) {
	r := NewRenderer(&Recorder{}, NewLayout(100))
	tests := []struct {
		cfg  Config
		want error
	}{
		{Config{Divisor: 0, CellSize: 1, Rows: 3}, pascal.ErrInvalidDivisor},
		{Config{Divisor: -2, CellSize: 1, Rows: 3}, pascal.ErrInvalidDivisor},
		{Config{Divisor: 2, CellSize: 0, Rows: 3}, pascal.ErrInvalidCellSize},
		{Config{Divisor: 2, CellSize: -4, Rows: 3}, pascal.ErrInvalidCellSize},
		{Config{Divisor: 2, CellSize: 1, Rows: -1}, pascal.ErrInvalidIndex},
	}
	for _, tt := range tests {
		if err := r.Render(context.Background(), tt.cfg); !errors.Is(err, tt.want) {
			t.Errorf("Render(%+v) = %v, want %v", tt.cfg, err, tt.want)
		}
	}
}

func TestRecorderReplay(t *testing.T) {
	src := &Recorder{}
	NewRenderer(src, NewLayout(200)).Triangle(Config{Divisor: 4, CellSize: 3, Rows: 6, Labels: true})
	dst := &Recorder{}
	src.Replay(dst)
	if len(dst.Rects) != len(src.Rects) || len(dst.Texts) != len(src.Texts) {
		t.Errorf("replay lost commands: %d/%d rects, %d/%d texts",
			len(dst.Rects), len(src.Rects), len(dst.Texts), len(src.Texts))
	}
}

func TestPassChunks(t *testing.T) {
	rec := &Recorder{}
	r := NewRenderer(rec, NewLayout(1000))
	cfg := Config{Divisor: 3, CellSize: 1, Rows: 250, VirtualRows: 1000, Mode: ModeSimulated}
	p, err := r.NewPass(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var drawn []int
	for !p.Done() {
		if err := p.Step(); err != nil {
			t.Fatal(err)
		}
		drawn = append(drawn, p.Drawn())
	}
	if len(drawn) != 3 || drawn[0] != 100 || drawn[1] != 200 || drawn[2] != 250 {
		t.Errorf("unexpected chunk boundaries %v", drawn)
	}
	if rec.Flushes != 2 || len(rec.Texts) != 0 {
		t.Errorf("before Finish: %d flushes, texts %+v", rec.Flushes, rec.Texts)
	}
	if err := p.Finish(); err != nil {
		t.Fatal(err)
	}
	if rec.Flushes != 3 || len(rec.Texts) != 1 || rec.Texts[0].Text != "mod: 3 , rows: 1000" {
		t.Errorf("after Finish: %d flushes, texts %+v", rec.Flushes, rec.Texts)
	}

	// the chunked pass draws exactly what a one-shot render draws
	whole := &Recorder{}
	if err := NewRenderer(whole, NewLayout(1000)).Render(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	if len(whole.Rects) != len(rec.Rects) {
		t.Fatalf("chunked %d rects, whole %d", len(rec.Rects), len(whole.Rects))
	}
	for i := range whole.Rects {
		if whole.Rects[i] != rec.Rects[i] {
			t.Fatalf("rect %d differs: %+v vs %+v", i, rec.Rects[i], whole.Rects[i])
		}
	}
}
