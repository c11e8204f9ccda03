package grid

import "github.com/san-kum/modpascal/internal/pascal"

// Stats tallies every row cfg renders: rows 0..Rows-1, or the sampled
// virtual rows of a simulated render. Sequence modes report cfg.Divisor.
func Stats(cfg Config) ([]pascal.RowStat, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cache, err := pascal.NewCache(cfg.Divisor)
	if err != nil {
		return nil, err
	}
	out := make([]pascal.RowStat, 0, cfg.Rows)
	for i := 0; i < cfg.Rows; i++ {
		n := i
		if cfg.Mode == ModeSimulated {
			n = VirtualRow(i, cfg.VirtualRows, cfg.Rows)
		}
		s, err := cache.Stat(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
