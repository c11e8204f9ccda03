package pascal

import "fmt"

// MaxDivisor is the largest divisor a Cache accepts; remainders are stored as
// uint32.
const MaxDivisor = 1 << 32

// Cache memoizes C(n,k) mod d for one divisor. Row n is stored only for
// k <= n/2 since C(n,k) = C(n,n-k).
type Cache struct {
	divisor uint64
	rows    [][]uint32
}

func NewCache(divisor int) (*Cache, error) {
	if err := ValidateDivisor(divisor); err != nil {
		return nil, err
	}
	return &Cache{divisor: uint64(divisor)}, nil
}

// ValidateDivisor reports ErrInvalidDivisor for d <= 0 or d > MaxDivisor.
func ValidateDivisor(d int) error {
	if d <= 0 || uint64(d) > MaxDivisor {
		return fmt.Errorf("%w: %d", ErrInvalidDivisor, d)
	}
	return nil
}

func (c *Cache) Divisor() int { return int(c.divisor) }

// Rows returns how many rows have been memoized so far.
func (c *Cache) Rows() int { return len(c.rows) }

// Remainder returns C(n,k) mod d.
func (c *Cache) Remainder(n, k int) (int, error) {
	if n < 0 || k < 0 || k > n {
		return 0, &IndexError{N: n, K: k}
	}
	c.grow(n)
	return int(c.at(n, k)), nil
}

// Row appends the remainders of row n to dst and returns it.
func (c *Cache) Row(dst []int, n int) ([]int, error) {
	if n < 0 {
		return dst, &IndexError{N: n, K: 0}
	}
	c.grow(n)
	for k := 0; k <= n; k++ {
		dst = append(dst, int(c.at(n, k)))
	}
	return dst, nil
}

func (c *Cache) at(n, k int) uint32 {
	if k > n-k {
		k = n - k
	}
	return c.rows[n][k]
}

// grow fills every row up to and including n using the modular Pascal
// identity (a + b) mod d.
func (c *Cache) grow(n int) {
	one := uint32(1 % c.divisor)
	for r := len(c.rows); r <= n; r++ {
		row := make([]uint32, r/2+1)
		row[0] = one
		for k := 1; k < len(row); k++ {
			sum := uint64(c.at(r-1, k-1)) + uint64(c.at(r-1, k))
			row[k] = uint32(sum % c.divisor)
		}
		c.rows = append(c.rows, row)
	}
}
