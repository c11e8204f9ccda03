package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/modpascal/internal/config"
	"github.com/san-kum/modpascal/internal/export"
	"github.com/san-kum/modpascal/internal/grid"
	"github.com/san-kum/modpascal/internal/gui"
	"github.com/san-kum/modpascal/internal/storage"
	"github.com/san-kum/modpascal/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	dataDir string
	divisor int
	density string
	mode    string
	delayMs int
	labels  bool
	output  string
	// simulated mode
	virtualRows   int
	displayedRows int
	screenHeight  int
	configFile    string
	preset        string
	noHistory     bool
	exportOut     string
)

var heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

func main() {
	rootCmd := &cobra.Command{
		Use:   "modpascal",
		Short: "Pascal's triangle colored by remainder",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			// bubbletea reports the size too, but only after the first frame
			cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				cols, rows = 0, 0
			}
			return tui.Run(tui.Options{
				Config:  cfg,
				Chooser: export.FixedPath(cfg.Output),
				Cols:    cols,
				Rows:    rows,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the triangle to a PNG",
		RunE:  renderPNG,
	}
	renderCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the render")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "render a primes or increasing sequence to a GIF",
		RunE:  renderGIF,
	}

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render the triangle to an SVG",
		RunE:  renderSVG,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "show the triangle in a raylib window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			g, err := cfg.Grid()
			if err != nil {
				return err
			}
			return gui.Run(g, cfg.Layout(), export.FixedPath(cfg.Output))
		},
	}

	for _, c := range []*cobra.Command{rootCmd, renderCmd, animateCmd, svgCmd, guiCmd} {
		addRenderFlags(c)
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded renders",
		RunE:  listRuns,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "plot the zero fraction per row of a render",
		Args:  cobra.ExactArgs(1),
		RunE:  plotStats,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded render as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			if exportOut == "" {
				return st.Export(cmd.OutOrStdout(), args[0])
			}
			return st.ExportFile(exportOut, args[0])
		},
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, heading.Render("presets"))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDIVISOR\tDENSITY\tMODE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				m, _ := p.ParsedMode()
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, p.Divisor, p.Density, m)
			}
			return w.Flush()
		},
	}

	densitiesCmd := &cobra.Command{
		Use:   "densities",
		Short: "list densities for the window",
		RunE: func(cmd *cobra.Command, args []string) error {
			window := config.DefaultWindowSize
			if cmd.Flags().Changed("screen-height") {
				window = config.WindowSize(screenHeight)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, heading.Render(fmt.Sprintf("densities (window %dpx)", window)))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCELL\tROWS")
			for _, d := range config.Densities(window) {
				fmt.Fprintf(w, "%s\t%gpx\t%d\n", d.Name, d.CellSize, d.Rows)
			}
			return w.Flush()
		},
	}
	densitiesCmd.Flags().IntVar(&screenHeight, "screen-height", 0, "screen height in pixels")

	rootCmd.AddCommand(renderCmd, animateCmd, svgCmd, guiCmd, listCmd, statsCmd, exportCmd, presetsCmd, densitiesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&divisor, "divisor", "d", config.DefaultDivisor, "divisor")
	cmd.Flags().StringVar(&density, "density", config.DefaultDensity, "density: "+strings.Join(config.DensityNames(), ", "))
	cmd.Flags().StringVar(&mode, "mode", config.DefaultMode, "mode: "+strings.Join(grid.ModeNames(), ", "))
	cmd.Flags().IntVar(&delayMs, "delay", 0, "delay between sequence frames in ms")
	cmd.Flags().BoolVar(&labels, "labels", false, "draw remainders inside cells")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file")
	cmd.Flags().IntVar(&virtualRows, "virtual-rows", config.DefaultVirtualRows, "virtual rows (simulated)")
	cmd.Flags().IntVar(&displayedRows, "displayed-rows", config.DefaultDisplayedRows, "displayed rows (simulated)")
	cmd.Flags().IntVar(&screenHeight, "screen-height", 0, "screen height in pixels; sizes the window")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers the preset, then the config file, then every flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("divisor") {
		cfg.Divisor = divisor
	}
	if flags.Changed("density") {
		cfg.Density = density
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("delay") {
		cfg.DelayMs = &delayMs
	}
	if flags.Changed("labels") {
		cfg.ShowRemainders = labels
	}
	if flags.Changed("out") {
		cfg.Output = output
	}
	if flags.Changed("virtual-rows") {
		cfg.VirtualRows = virtualRows
	}
	if flags.Changed("displayed-rows") {
		cfg.DisplayedRows = displayedRows
	}
	if flags.Changed("screen-height") {
		cfg.WindowSize = config.WindowSize(screenHeight)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func outputPath(cfg *config.Config, ext string) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	return strings.TrimSuffix(export.DefaultFilename(cfg.Divisor), ".png") + ext
}

func renderPNG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	g, err := cfg.Grid()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "rendering mod %d (%s, %s)...\n", g.Divisor, cfg.Density, g.Mode)
	start := time.Now()

	path, err := export.Save(context.Background(), export.FixedPath(cfg.Output), g, cfg.Layout())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	fmt.Fprintf(out, "saved %s in %v\n", path, elapsed)

	if noHistory {
		return nil
	}

	rows, err := grid.Stats(g)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Divisor:     g.Divisor,
		Density:     cfg.Density,
		Mode:        g.Mode.String(),
		CellSize:    g.CellSize,
		Rows:        g.Rows,
		VirtualRows: g.VirtualRows,
		Output:      path,
		Timestamp:   start,
		ElapsedMs:   float64(elapsed.Microseconds()) / 1000,
	}, rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "run id: %s\n", runID)
	return nil
}

func renderGIF(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	g, err := cfg.Grid()
	if err != nil {
		return err
	}
	if g.Mode != grid.ModePrimes && g.Mode != grid.ModeIncreasing {
		g.Mode = grid.ModeIncreasing
	}
	delay := cfg.Delay(g.Mode)
	if delay == 0 {
		delay = config.DefaultPrimeDelayMs * time.Millisecond
	}

	path := outputPath(cfg, ".gif")
	fmt.Fprintf(cmd.OutOrStdout(), "animating %s sequence up to %d...\n", g.Mode, g.Divisor)
	n, err := export.SaveGIF(context.Background(), path, g, cfg.Layout(), delay)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d frames)\n", path, n)
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	g, err := cfg.Grid()
	if err != nil {
		return err
	}

	path := outputPath(cfg, ".svg")
	if err := export.SaveSVG(path, g, cfg.Layout()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDIVISOR\tDENSITY\tMODE\tROWS\tZEROS\tTIME\tOUTPUT")

	for _, run := range runs {
		zeros := 0.0
		if run.Cells > 0 {
			zeros = float64(run.Zeros) / float64(run.Cells) * 100
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%.1f%%\t%s\t%s\n",
			run.ID,
			run.Divisor,
			run.Density,
			run.Mode,
			run.Rows,
			zeros,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Output,
		)
	}

	return w.Flush()
}

func plotStats(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadRows(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, heading.Render("run: "+meta.ID))
	fmt.Fprintf(out, "divisor: %d\n", meta.Divisor)
	fmt.Fprintf(out, "rows: %d\n", len(rows))
	fmt.Fprintf(out, "cells: %d (%d zero)\n\n", meta.Cells, meta.Zeros)

	data := make([]float64, len(rows))
	for i, r := range rows {
		data[i] = r.ZeroFraction()
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("zero fraction per row (mod %d)", meta.Divisor)),
	)
	fmt.Fprintln(out, graph)
	return nil
}
