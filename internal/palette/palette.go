// Package palette maps remainder classes to colors.
package palette

import (
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/modpascal/internal/pascal"
)

// Zero is the color of remainder 0.
var Zero = color.RGBA{0, 0, 0, 255}

// Palette holds one color per remainder class; index i colors remainder i.
type Palette []color.RGBA

// New returns d colors: black for remainder 0, then d-1 hues evenly spaced
// around the circle at full saturation and value.
func New(d int) (Palette, error) {
	if err := pascal.ValidateDivisor(d); err != nil {
		return nil, err
	}
	p := make(Palette, d)
	p[0] = Zero
	for i := 1; i < d; i++ {
		hue := math.Mod(360*float64(i)/float64(d-1), 360)
		r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
		p[i] = color.RGBA{r, g, b, 255}
	}
	return p, nil
}

// MustNew is New for divisors already validated by the caller.
func MustNew(d int) Palette {
	p, err := New(d)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Palette) Color(remainder int) color.RGBA {
	return p[remainder%len(p)]
}

// Hex returns the color of remainder as "#rrggbb".
func (p Palette) Hex(remainder int) string {
	c := p.Color(remainder)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lipgloss returns the color of remainder for terminal styles.
func (p Palette) Lipgloss(remainder int) lipgloss.Color {
	return lipgloss.Color(p.Hex(remainder))
}

// Hex formats any color as "#rrggbb".
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
