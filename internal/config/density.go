package config

import (
	"fmt"
	"strings"
)

const (
	DensityBig        = "Big"
	DensityMedium     = "Medium"
	DensitySmall      = "Small"
	DensitySuperSmall = "Super Small"
	DensitySmallest   = "Smallest"
	DensityPrimes     = "Primes"
	DensityIncreasing = "Increasing"

	BigCellSize = 20
)

// Density is a named (cell size, row count) pair.
type Density struct {
	Name     string
	CellSize float64
	Rows     int
}

// Densities returns the preset table in menu order. The last three fill the
// window less a 200px margin with single-pixel cells.
func Densities(window int) []Density {
	full := window - 200
	return []Density{
		{DensityBig, BigCellSize, 48},
		{DensityMedium, 10, 97},
		{DensitySmall, 5, 194},
		{DensitySuperSmall, 2, 485},
		{DensitySmallest, 1, full},
		{DensityPrimes, 1, full},
		{DensityIncreasing, 1, full},
	}
}

func DensityNames() []string {
	ds := Densities(DefaultWindowSize)
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.Name
	}
	return names
}

// LookupDensity matches name case-insensitively; "super-small" and
// "supersmall" also match "Super Small".
func LookupDensity(name string, window int) (Density, error) {
	norm := func(s string) string {
		s = strings.ToLower(s)
		return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	}
	for _, d := range Densities(window) {
		if norm(d.Name) == norm(name) {
			return d, nil
		}
	}
	return Density{}, fmt.Errorf("unknown density: %s (available: %v)", name, DensityNames())
}

// RowsForCellSize returns the row count of the first density with the given
// cell size, or 10 when none matches.
func RowsForCellSize(cell float64, window int) int {
	for _, d := range Densities(window) {
		if d.CellSize == cell {
			return d.Rows
		}
	}
	return 10
}

// WindowSize picks the square window edge for a screen of the given height:
// 1000 on tall screens, otherwise the height less 40px for the title bar.
func WindowSize(screenHeight int) int {
	if screenHeight > 1000 {
		return 1000
	}
	return min(1000, screenHeight-40)
}
