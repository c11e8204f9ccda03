package tui

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/modpascal/internal/grid"
	"github.com/san-kum/modpascal/internal/palette"
)

// TermCanvas is a grid.Target backed by terminal cells. Each cell shows two
// stacked sub-pixels through an upper half block, so the sub-pixel grid is
// Cols x 2*Rows. Pixel coordinates of the layout are scaled down uniformly
// to fit.
type TermCanvas struct {
	Cols, Rows int
	Texts      []string
	Flushes    int

	scale float64
	px    [][]color.Color
}

func NewTermCanvas(cols, rows int, l grid.Layout) *TermCanvas {
	cols, rows = max(cols, 1), max(rows, 1)
	c := &TermCanvas{
		Cols:  cols,
		Rows:  rows,
		scale: math.Max(float64(l.Width)/float64(cols), float64(l.Height)/float64(2*rows)),
		px:    make([][]color.Color, 2*rows),
	}
	if c.scale <= 0 {
		c.scale = 1
	}
	for i := range c.px {
		c.px[i] = make([]color.Color, cols)
	}
	return c
}

// DrawRect marks every sub-pixel the rectangle touches; rectangles smaller
// than a sub-pixel still mark the one holding their top-left corner.
func (c *TermCanvas) DrawRect(x, y, w, h float64, col color.Color) {
	x0, y0 := int(math.Floor(x/c.scale)), int(math.Floor(y/c.scale))
	x1, y1 := int(math.Ceil((x+w)/c.scale)), int(math.Ceil((y+h)/c.scale))
	x1, y1 = max(x1, x0+1), max(y1, y0+1)
	for sy := max(y0, 0); sy < min(y1, len(c.px)); sy++ {
		for sx := max(x0, 0); sx < min(x1, c.Cols); sx++ {
			c.px[sy][sx] = col
		}
	}
}

// DrawText collects captions; they are printed under the picture.
func (c *TermCanvas) DrawText(_, _ float64, s string, _ color.Color) {
	c.Texts = append(c.Texts, s)
}

func (c *TermCanvas) Clear(color.Color) {
	for _, row := range c.px {
		for i := range row {
			row[i] = nil
		}
	}
	c.Texts = c.Texts[:0]
}

func (c *TermCanvas) Flush() error {
	c.Flushes++
	return nil
}

// At returns the color of sub-pixel (sx, sy), or nil when nothing was drawn.
func (c *TermCanvas) At(sx, sy int) color.Color {
	if sy < 0 || sy >= len(c.px) || sx < 0 || sx >= c.Cols {
		return nil
	}
	return c.px[sy][sx]
}

func (c *TermCanvas) String() string {
	var b strings.Builder
	for r := 0; r < c.Rows; r++ {
		for col := 0; col < c.Cols; col++ {
			top, bot := c.px[2*r][col], c.px[2*r+1][col]
			switch {
			case top == nil && bot == nil:
				b.WriteByte(' ')
			case top == nil:
				b.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(palette.Hex(bot))).
					Render("▄"))
			case bot == nil:
				b.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(palette.Hex(top))).
					Render("▀"))
			default:
				b.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(palette.Hex(top))).
					Background(lipgloss.Color(palette.Hex(bot))).
					Render("▀"))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
