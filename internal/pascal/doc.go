// Package pascal computes remainders of binomial coefficients.
//
// The package is built around a divisor-scoped memo:
//
//   - [Cache]: C(n,k) mod d for a single divisor d, filled with Pascal's
//     identity and reduced at every step so values never exceed d
//   - [IsPrime]: trial-division primality used by the sequence renders
//
// # Example
//
//	c, err := pascal.NewCache(7)
//	if err != nil {
//	    return err
//	}
//	r, _ := c.Remainder(12, 5) // C(12,5) mod 7
//
// # Thread Safety
//
// A Cache is owned by one render pass and is NOT safe for concurrent use.
// Build a new Cache whenever the divisor changes.
package pascal
