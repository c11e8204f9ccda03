package grid

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/san-kum/modpascal/internal/pascal"
)

// Background is the dark blue-gray behind every triangle.
var Background = color.RGBA{20, 20, 40, 255}

// TextColor is used for every label.
var TextColor = color.RGBA{255, 255, 255, 255}

const defaultTopY = 20

// Layout fixes the pixel geometry of a render.
type Layout struct {
	Width, Height int
	CenterX       float64
	TopY          float64
	Background    color.Color
}

// NewLayout centers the apex horizontally in a square window.
func NewLayout(window int) Layout {
	return Layout{
		Width:      window,
		Height:     window,
		CenterX:    float64(window / 2),
		TopY:       defaultTopY,
		Background: Background,
	}
}

// LabelPos is where the "mod: d , rows: R" caption is centered.
func (l Layout) LabelPos() (float64, float64) {
	return float64(l.Width) * 0.72, float64(l.Width) * 0.065
}

// SubLabelPos is one line below LabelPos.
func (l Layout) SubLabelPos() (float64, float64) {
	return float64(l.Width) * 0.72, float64(l.Width) * 0.1
}

type Mode int

const (
	ModeDirect Mode = iota
	ModePrimes
	ModeIncreasing
	ModeSimulated
)

var modeNames = []string{"direct", "primes", "increasing", "simulated"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return ModeDirect, fmt.Errorf("unknown mode: %s (available: %v)", s, modeNames)
}

// ModeNames lists the accepted mode names.
func ModeNames() []string {
	out := make([]string, len(modeNames))
	copy(out, modeNames)
	return out
}

// Config describes one render.
type Config struct {
	Divisor  int
	CellSize float64
	Rows     int
	Mode     Mode

	// VirtualRows is the size of the triangle a simulated render samples
	// Rows displayed rows from.
	VirtualRows int

	// Delay is the pause after each sequence frame.
	Delay time.Duration

	// Labels draws each remainder inside its cell.
	Labels bool
}

func (c Config) Validate() error {
	if err := pascal.ValidateDivisor(c.Divisor); err != nil {
		return err
	}
	if !(c.CellSize > 0) {
		return fmt.Errorf("%w: %v", pascal.ErrInvalidCellSize, c.CellSize)
	}
	if c.Rows < 0 {
		return fmt.Errorf("%w: %d rows", pascal.ErrInvalidIndex, c.Rows)
	}
	if c.Mode == ModeSimulated && c.VirtualRows < 0 {
		return fmt.Errorf("%w: %d virtual rows", pascal.ErrInvalidIndex, c.VirtualRows)
	}
	return nil
}

type Rect struct {
	X, Y, W, H float64
}

// Cell is one colored square of the triangle.
type Cell struct {
	N, K      int
	Remainder int
	Rect      Rect
}

// CellRect places cell (n, k) of a row drawn at display row.
func CellRect(l Layout, display, n, k int, size float64) Rect {
	return Rect{
		X: l.CenterX + (float64(k)-float64(n)/2)*size,
		Y: l.TopY + float64(display)*size,
		W: size,
		H: size,
	}
}
