package tui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/modpascal/internal/config"
	"github.com/san-kum/modpascal/internal/export"
	"github.com/san-kum/modpascal/internal/grid"
)

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

// send feeds msg to m and then drains every command it produces, the way
// the bubbletea runtime would.
func send(m Model, msg tea.Msg) Model {
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		if _, ok := out.(tea.QuitMsg); ok {
			break
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func pickDensity(m Model, name string) Model {
	for i, it := range m.items {
		if it.label == name {
			for j := 0; j < i; j++ {
				m = send(m, down)
			}
			return send(m, enter)
		}
	}
	Fail("no menu item " + name)
	return m
}

var _ = Describe("Model", func() {
	var m Model

	BeforeEach(func() {
		m = NewModel(Options{Cols: 60, Rows: 30})
	})

	It("starts by asking for a divisor", func() {
		Expect(m.State()).To(Equal(AwaitingDivisor))
		Expect(m.View()).To(ContainSubstring("Divisor:"))
	})

	Context("when the divisor is invalid", func() {
		It("re-prompts on non-integers", func() {
			m = send(m, keys("abc"))
			m = send(m, enter)
			Expect(m.State()).To(Equal(AwaitingDivisor))
			Expect(m.Err()).To(MatchError(ContainSubstring("valid integer")))
		})

		It("re-prompts on non-positive numbers", func() {
			m = send(m, keys("0"))
			m = send(m, enter)
			Expect(m.State()).To(Equal(AwaitingDivisor))
			Expect(m.Err()).To(MatchError(ContainSubstring("positive")))
		})

		It("supports backspace", func() {
			m = send(m, keys("59"))
			m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
			m = send(m, enter)
			Expect(m.Divisor()).To(Equal(5))
		})
	})

	Context("with a valid divisor", func() {
		BeforeEach(func() {
			m = send(m, keys("7"))
			m = send(m, enter)
		})

		It("moves to density selection", func() {
			Expect(m.State()).To(Equal(AwaitingModeSelection))
			Expect(m.Divisor()).To(Equal(7))
			Expect(m.View()).To(ContainSubstring("Super Small"))
		})

		It("goes back on esc", func() {
			m = send(m, esc)
			Expect(m.State()).To(Equal(AwaitingDivisor))
		})

		It("renders a direct triangle and waits for save or reset", func() {
			m = pickDensity(m, config.DensityMedium)
			Expect(m.State()).To(Equal(AwaitingSaveOrReset))
			Expect(m.Err()).NotTo(HaveOccurred())
			Expect(m.RenderConfig().Rows).To(Equal(97))
			Expect(m.RenderConfig().Labels).To(BeFalse())
			Expect(m.Canvas().Texts).To(ContainElement("mod: 7 , rows: 97"))
			Expect(m.View()).To(ContainSubstring("s save"))
		})

		It("plays every frame of an increasing sequence", func() {
			m = pickDensity(m, config.DensityIncreasing)
			Expect(m.State()).To(Equal(AwaitingSaveOrReset))
			Expect(m.RenderConfig().Mode).To(Equal(grid.ModeIncreasing))
			// 2..7 plus the closing frame for 7
			Expect(m.Canvas().Flushes).To(Equal(7))
			Expect(m.Canvas().Texts).To(Equal([]string{"mod: 7 , rows: 800"}))
		})

		It("renders the simulated large triangle", func() {
			m = pickDensity(m, "Large (simulated)")
			Expect(m.State()).To(Equal(AwaitingSaveOrReset))
			Expect(m.RenderConfig().VirtualRows).To(Equal(5000))
			Expect(m.Canvas().Texts).To(ContainElement("mod: 7 , rows: 5000"))
		})

		It("repaints the simulated triangle between partial flushes", func() {
			for i := 0; i < len(m.items)-1; i++ {
				m = send(m, down)
			}
			m, cmd := update(m, enter)
			Expect(m.State()).To(Equal(Rendering))
			Expect(cmd).NotTo(BeNil())

			m, cmd = update(m, cmd())
			Expect(m.State()).To(Equal(Rendering))
			Expect(m.Canvas().Flushes).To(Equal(1))
			first := m.View()
			Expect(first).To(ContainSubstring("100/800 rows"))

			m, cmd = update(m, cmd())
			Expect(m.Canvas().Flushes).To(Equal(2))
			second := m.View()
			Expect(second).To(ContainSubstring("200/800 rows"))
			Expect(second).NotTo(Equal(first))

			for cmd != nil {
				m, cmd = update(m, cmd())
			}
			Expect(m.State()).To(Equal(AwaitingSaveOrReset))
			// seven partial flushes and the final one
			Expect(m.Canvas().Flushes).To(Equal(8))
		})

		It("resets after a render", func() {
			m = pickDensity(m, config.DensityBig)
			m = send(m, enter)
			Expect(m.State()).To(Equal(AwaitingDivisor))
			Expect(m.Status()).To(BeEmpty())
		})
	})

	Describe("saving", func() {
		It("writes the PNG chosen by the path collaborator", func() {
			path := filepath.Join(GinkgoT().TempDir(), "out.png")
			var suggested string
			m = NewModel(Options{Chooser: export.ChooserFunc(func(s string) (string, error) {
				suggested = s
				return path, nil
			})})
			m = send(m, keys("3"))
			m = send(m, enter)
			m = pickDensity(m, config.DensitySmall)
			m = send(m, keys("s"))

			Expect(suggested).To(Equal("pascal_mod_3.png"))
			Expect(m.Status()).To(Equal("saved " + path))
			Expect(m.State()).To(Equal(AwaitingSaveOrReset))
			info, err := os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Size()).To(BeNumerically(">", 0))
		})

		It("treats a dismissed prompt as a no-op", func() {
			m = NewModel(Options{Chooser: export.ChooserFunc(func(string) (string, error) { return "", nil })})
			m = send(m, keys("2"))
			m = send(m, enter)
			m = pickDensity(m, config.DensityBig)
			m = send(m, keys("s"))
			Expect(m.Status()).To(Equal("save cancelled"))
			Expect(m.Err()).NotTo(HaveOccurred())
		})
	})
})
