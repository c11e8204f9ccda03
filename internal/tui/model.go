// Package tui is the interactive terminal front end: a bubbletea state
// machine that collects a divisor and a density, renders onto a TermCanvas
// and offers to save the result as PNG.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/modpascal/internal/config"
	"github.com/san-kum/modpascal/internal/export"
	"github.com/san-kum/modpascal/internal/grid"
)

type State int

const (
	AwaitingDivisor State = iota
	AwaitingModeSelection
	Rendering
	AwaitingSaveOrReset
)

func (s State) String() string {
	switch s {
	case AwaitingDivisor:
		return "awaiting-divisor"
	case AwaitingModeSelection:
		return "awaiting-mode"
	case Rendering:
		return "rendering"
	case AwaitingSaveOrReset:
		return "awaiting-save-or-reset"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type menuItem struct {
	label   string
	density string
	mode    string
}

func menuItems() []menuItem {
	var items []menuItem
	for _, name := range config.DensityNames() {
		items = append(items, menuItem{label: name, density: name, mode: "direct"})
	}
	return append(items, menuItem{label: "Large (simulated)", density: config.DensitySmallest, mode: "simulated"})
}

// Options configures a Model. Zero values pick defaults.
type Options struct {
	Config     *config.Config
	Chooser    export.PathChooser
	Cols, Rows int
}

type Model struct {
	state   State
	base    config.Config
	chooser export.PathChooser
	items   []menuItem

	input   string
	divisor int
	cursor  int

	render   grid.Config
	layout   grid.Layout
	canvas   *TermCanvas
	renderer *grid.Renderer
	frames   []int
	pass     *grid.Pass

	status     string
	err        error
	cols, rows int
}

type frameMsg struct{}

type savedMsg struct {
	path string
	err  error
}

func NewModel(opts Options) Model {
	base := config.DefaultConfig()
	if opts.Config != nil {
		base = opts.Config
	}
	chooser := opts.Chooser
	if chooser == nil {
		chooser = export.FixedPath("")
	}
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	return Model{
		state:   AwaitingDivisor,
		base:    *base,
		chooser: chooser,
		items:   menuItems(),
		cols:    cols,
		rows:    rows,
	}
}

func (m Model) State() State              { return m.state }
func (m Model) Divisor() int              { return m.divisor }
func (m Model) Status() string            { return m.status }
func (m Model) Err() error                { return m.err }
func (m Model) Canvas() *TermCanvas       { return m.canvas }
func (m Model) RenderConfig() grid.Config { return m.render }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		return m, nil
	case frameMsg:
		if m.state == Rendering {
			return m.step()
		}
	case savedMsg:
		m.err = nil
		switch {
		case errors.Is(msg.err, export.ErrExportCancelled):
			m.status = "save cancelled"
		case msg.err != nil:
			m.err = msg.err
		default:
			m.status = "saved " + msg.path
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state {
	case AwaitingDivisor:
		return m.divisorKey(msg)
	case AwaitingModeSelection:
		return m.menuKey(msg)
	case AwaitingSaveOrReset:
		return m.doneKey(msg)
	}
	return m, nil
}

func (m Model) divisorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		d, err := strconv.Atoi(strings.TrimSpace(m.input))
		switch {
		case err != nil:
			m.err = fmt.Errorf("please enter a valid integer")
		case d <= 0 || d > config.MaxRenderDivisor:
			m.err = fmt.Errorf("please enter a positive number up to %d", config.MaxRenderDivisor)
		default:
			m.divisor, m.err = d, nil
			m.state, m.cursor = AwaitingModeSelection, 0
		}
		m.input = ""
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m Model) menuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.state = AwaitingDivisor
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start(m.items[m.cursor])
	}
	return m, nil
}

func (m Model) doneKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "esc":
		m.state, m.input, m.status, m.err = AwaitingDivisor, "", "", nil
	case "s":
		m.status = "saving..."
		return m, m.save()
	}
	return m, nil
}

// start builds the render configuration for item and enters Rendering. The
// first frame is drawn on the next message so the view can show progress.
func (m Model) start(item menuItem) (Model, tea.Cmd) {
	cfg := m.base
	cfg.Divisor, cfg.Density, cfg.Mode = m.divisor, item.density, item.mode
	g, err := cfg.Grid()
	if err != nil {
		m.err = err
		return m, nil
	}
	g.Labels = false

	m.render, m.layout = g, cfg.Layout()
	m.canvas = NewTermCanvas(m.cols, max(m.rows-8, 4), m.layout)
	m.renderer = grid.NewRenderer(m.canvas, m.layout)
	m.frames, m.pass = nil, nil
	switch g.Mode {
	case grid.ModePrimes, grid.ModeIncreasing:
		m.frames = append(grid.SequenceDivisors(g.Mode, g.Divisor), g.Divisor)
	case grid.ModeSimulated:
		if m.pass, err = m.renderer.NewPass(g); err != nil {
			m.err = err
			return m, nil
		}
	}
	m.state, m.status, m.err = Rendering, "", nil
	return m, nextFrame(0)
}

// step draws one frame synchronously. Sequence renders schedule the next
// frame after the configured delay; simulated renders draw one chunk of rows
// per step so the view repaints between partial flushes.
func (m Model) step() (Model, tea.Cmd) {
	if m.pass != nil {
		if err := m.pass.Step(); err != nil {
			return m.fail(err), nil
		}
		if !m.pass.Done() {
			return m, nextFrame(0)
		}
		if err := m.pass.Finish(); err != nil {
			return m.fail(err), nil
		}
	} else if len(m.frames) > 0 {
		d := m.frames[0]
		m.frames = m.frames[1:]
		if err := m.renderer.Frame(m.render, d); err != nil {
			return m.fail(err), nil
		}
		if len(m.frames) > 0 {
			return m, nextFrame(m.render.Delay)
		}
	} else if err := m.renderer.Render(context.Background(), m.render); err != nil {
		return m.fail(err), nil
	}
	m.state = AwaitingSaveOrReset
	return m, nil
}

func (m Model) fail(err error) Model {
	m.err = err
	m.state = AwaitingSaveOrReset
	return m
}

func (m Model) save() tea.Cmd {
	chooser, cfg, l := m.chooser, m.render, m.layout
	return func() tea.Msg {
		path, err := export.Save(context.Background(), chooser, cfg, l)
		return savedMsg{path: path, err: err}
	}
}

func nextFrame(delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return frameMsg{} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pascal's Triangle mod d"))
	b.WriteString("\n\n")

	switch m.state {
	case AwaitingDivisor:
		b.WriteString(promptStyle.Render("Divisor: " + m.input + "▏"))
		b.WriteString("\n")
		b.WriteString(keyHint.Render("enter confirm · esc quit"))
	case AwaitingModeSelection:
		b.WriteString(fmt.Sprintf("mod %d, choose a density:\n\n", m.divisor))
		for i, it := range m.items {
			if i == m.cursor {
				b.WriteString(selected.Render("> " + it.label))
			} else {
				b.WriteString(dim.Render("  " + it.label))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(keyHint.Render("↑/↓ move · enter render · esc back · q quit"))
	case Rendering, AwaitingSaveOrReset:
		if m.canvas != nil {
			b.WriteString(m.canvas.String())
			b.WriteString(strings.Join(m.canvas.Texts, "   "))
			b.WriteString("\n")
		}
		if m.state == Rendering && m.pass != nil {
			b.WriteString(dim.Render(fmt.Sprintf("rendering... %d/%d rows", m.pass.Drawn(), m.render.Rows)))
		} else if m.state == Rendering {
			b.WriteString(dim.Render("rendering..."))
		} else {
			b.WriteString(keyHint.Render("s save · enter/esc reset · q quit"))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + okStyle.Render(m.status))
	}
	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	return b.String()
}

// Run starts the interactive program on the terminal.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
