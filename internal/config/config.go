package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/modpascal/internal/grid"
	"github.com/san-kum/modpascal/internal/pascal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDivisor       = 2
	DefaultDensity       = "Smallest"
	DefaultMode          = "direct"
	DefaultWindowSize    = 1000
	DefaultVirtualRows   = 5000
	DefaultDisplayedRows = 800
	DefaultPrimeDelayMs  = 700
	DefaultDataDir       = ".modpascal"

	// MaxRenderDivisor bounds the palette a render allocates.
	MaxRenderDivisor = 1 << 20

	// MaxVirtualRows bounds the cache of a simulated render, which grows
	// with the square of the row count (about 100MB at this limit).
	MaxVirtualRows = 10000
)

type Config struct {
	Divisor        int    `yaml:"divisor"`
	Density        string `yaml:"density"`
	Mode           string `yaml:"mode"`
	WindowSize     int    `yaml:"window_size"`
	VirtualRows    int    `yaml:"virtual_rows"`
	DisplayedRows  int    `yaml:"displayed_rows"`
	DelayMs        *int   `yaml:"delay_ms,omitempty"`
	ShowRemainders bool   `yaml:"show_remainders"`
	Output         string `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		Divisor:       DefaultDivisor,
		Density:       DefaultDensity,
		Mode:          DefaultMode,
		WindowSize:    DefaultWindowSize,
		VirtualRows:   DefaultVirtualRows,
		DisplayedRows: DefaultDisplayedRows,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := pascal.ValidateDivisor(c.Divisor); err != nil {
		return err
	}
	if c.Divisor > MaxRenderDivisor {
		return fmt.Errorf("%w: %d exceeds %d", pascal.ErrInvalidDivisor, c.Divisor, MaxRenderDivisor)
	}
	if c.WindowSize <= 200 {
		return fmt.Errorf("window size must exceed 200, got %d", c.WindowSize)
	}
	if _, err := LookupDensity(c.Density, c.WindowSize); err != nil {
		return err
	}
	if _, err := c.ParsedMode(); err != nil {
		return err
	}
	if c.VirtualRows <= 0 || c.DisplayedRows <= 0 {
		return fmt.Errorf("virtual and displayed rows must be positive, got %d/%d", c.VirtualRows, c.DisplayedRows)
	}
	if c.VirtualRows > MaxVirtualRows {
		return fmt.Errorf("virtual rows %d exceed %d", c.VirtualRows, MaxVirtualRows)
	}
	return nil
}

// ParsedMode resolves the render mode. The Primes and Increasing densities
// imply their sequence mode regardless of Mode.
func (c *Config) ParsedMode() (grid.Mode, error) {
	switch c.Density {
	case DensityPrimes:
		return grid.ModePrimes, nil
	case DensityIncreasing:
		return grid.ModeIncreasing, nil
	}
	if c.Mode == "" {
		return grid.ModeDirect, nil
	}
	return grid.ParseMode(c.Mode)
}

// Delay is the pause between sequence frames: the configured delay_ms when
// set, 700ms for primes, none otherwise.
func (c *Config) Delay(mode grid.Mode) time.Duration {
	if c.DelayMs != nil {
		return time.Duration(*c.DelayMs) * time.Millisecond
	}
	if mode == grid.ModePrimes {
		return DefaultPrimeDelayMs * time.Millisecond
	}
	return 0
}

// Layout returns the render geometry for the configured window.
func (c *Config) Layout() grid.Layout {
	return grid.NewLayout(c.WindowSize)
}

// Grid converts the file-level settings into a render configuration.
func (c *Config) Grid() (grid.Config, error) {
	if err := c.Validate(); err != nil {
		return grid.Config{}, err
	}
	d, _ := LookupDensity(c.Density, c.WindowSize)
	mode, _ := c.ParsedMode()
	g := grid.Config{
		Divisor:  c.Divisor,
		CellSize: d.CellSize,
		Rows:     d.Rows,
		Mode:     mode,
		Delay:    c.Delay(mode),
		Labels:   c.ShowRemainders || d.CellSize == BigCellSize,
	}
	if mode == grid.ModeSimulated {
		g.Rows = c.DisplayedRows
		g.VirtualRows = c.VirtualRows
	}
	return g, nil
}
