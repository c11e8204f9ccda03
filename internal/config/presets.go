package config

import "sort"

func intPtr(v int) *int { return &v }

var Presets = map[string]*Config{
	"sierpinski": {
		Divisor: 2, Density: DensitySmallest, Mode: "direct",
		WindowSize: DefaultWindowSize, VirtualRows: DefaultVirtualRows, DisplayedRows: DefaultDisplayedRows,
	},
	"digits": {
		Divisor: 3, Density: DensityBig, Mode: "direct", ShowRemainders: true,
		WindowSize: DefaultWindowSize, VirtualRows: DefaultVirtualRows, DisplayedRows: DefaultDisplayedRows,
	},
	"primes": {
		Divisor: 23, Density: DensityPrimes,
		WindowSize: DefaultWindowSize, VirtualRows: DefaultVirtualRows, DisplayedRows: DefaultDisplayedRows,
		DelayMs: intPtr(DefaultPrimeDelayMs),
	},
	"increasing": {
		Divisor: 12, Density: DensityIncreasing,
		WindowSize: DefaultWindowSize, VirtualRows: DefaultVirtualRows, DisplayedRows: DefaultDisplayedRows,
	},
	"large": {
		Divisor: 5, Density: DensitySmallest, Mode: "simulated",
		WindowSize: DefaultWindowSize, VirtualRows: DefaultVirtualRows, DisplayedRows: DefaultDisplayedRows,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
