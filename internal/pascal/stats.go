package pascal

// RowStat counts the cells of one row that the divisor divides.
type RowStat struct {
	Row   int
	Cells int
	Zeros int
}

// ZeroFraction is the share of the row divisible by the divisor.
func (s RowStat) ZeroFraction() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.Zeros) / float64(s.Cells)
}

// Stat tallies row n.
func (c *Cache) Stat(n int) (RowStat, error) {
	if n < 0 {
		return RowStat{}, &IndexError{N: n, K: 0}
	}
	c.grow(n)
	s := RowStat{Row: n, Cells: n + 1}
	for k := 0; k <= n; k++ {
		if c.at(n, k) == 0 {
			s.Zeros++
		}
	}
	return s, nil
}
