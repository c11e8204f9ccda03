package pascal

import (
	"errors"
	"fmt"
)

// Domain errors for remainder and layout operations.
var (
	// ErrInvalidDivisor indicates a divisor that is not positive or does not
	// fit the cache's value width.
	ErrInvalidDivisor = errors.New("pascal: invalid divisor")

	// ErrInvalidCellSize indicates a non-positive cell size.
	ErrInvalidCellSize = errors.New("pascal: invalid cell size")

	// ErrInvalidIndex indicates a malformed (n, k) pair.
	ErrInvalidIndex = errors.New("pascal: invalid index")
)

// IndexError wraps ErrInvalidIndex with the offending pair.
type IndexError struct {
	N, K int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: C(%d,%d)", ErrInvalidIndex, e.N, e.K)
}

func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}
