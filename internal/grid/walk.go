package grid

import (
	"fmt"

	"github.com/san-kum/modpascal/internal/pascal"
)

// Walk visits every cell of a rows-row triangle in row-major order.
func Walk(cache *pascal.Cache, l Layout, rows int, size float64, fn func(Cell)) error {
	if !(size > 0) {
		return fmt.Errorf("%w: %v", pascal.ErrInvalidCellSize, size)
	}
	var row []int
	for n := 0; n < rows; n++ {
		var err error
		row, err = cache.Row(row[:0], n)
		if err != nil {
			return err
		}
		for k, r := range row {
			fn(Cell{N: n, K: k, Remainder: r, Rect: CellRect(l, n, n, k, size)})
		}
	}
	return nil
}

// VirtualRow maps displayed row i to floor(i * virtual / displayed).
func VirtualRow(i, virtual, displayed int) int {
	if displayed <= 0 {
		return 0
	}
	return int(int64(i) * int64(virtual) / int64(displayed))
}

// WalkSimulated visits displayed rows 0..displayed-1, each showing the full
// cell set of its sampled virtual row. fn receives the display row index and
// the cell; cells of one display row share a y coordinate. Geometry is an
// approximation: wide virtual rows spill past the target edges.
func WalkSimulated(cache *pascal.Cache, l Layout, virtual, displayed int, size float64, fn func(int, Cell)) error {
	return WalkSimulatedRange(cache, l, virtual, displayed, 0, displayed, size, fn)
}

// WalkSimulatedRange is WalkSimulated restricted to display rows [from, to).
func WalkSimulatedRange(cache *pascal.Cache, l Layout, virtual, displayed, from, to int, size float64, fn func(int, Cell)) error {
	if !(size > 0) {
		return fmt.Errorf("%w: %v", pascal.ErrInvalidCellSize, size)
	}
	var row []int
	for i := max(from, 0); i < min(to, displayed); i++ {
		vrow := VirtualRow(i, virtual, displayed)
		var err error
		row, err = cache.Row(row[:0], vrow)
		if err != nil {
			return err
		}
		for k, r := range row {
			fn(i, Cell{N: vrow, K: k, Remainder: r, Rect: CellRect(l, i, vrow, k, size)})
		}
	}
	return nil
}
