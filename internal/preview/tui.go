package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/slatebar/slatebar/internal/cache"
	"github.com/slatebar/slatebar/internal/compose"
	"github.com/slatebar/slatebar/internal/config"
	"github.com/slatebar/slatebar/internal/registry"
	"github.com/slatebar/slatebar/internal/theme"
	"github.com/slatebar/slatebar/internal/widget"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// view mode
type viewMode int

const (
	modeBar viewMode = iota
	modeValueInput
)

// TUI runs the interactive status-line preview.
type TUI struct {
	Config *config.Config
	Store  *cache.Store
}

// model implements tea.Model
type tuiModel struct {
	ctx   context.Context
	cfg   *config.Config
	store *cache.Store

	themes   []string
	themeIdx int

	separator compose.SeparatorStyle
	spacing   compose.Spacing
	transp    bool

	mode  viewMode
	input textinput.Model

	// simValue drives a synthetic threshold widget so severity
	// coloring can be explored without a real data source.
	simValue string

	notices []string
	width   int
}

func (t *TUI) Run(ctx context.Context) error {
	ti := textinput.New()
	ti.Placeholder = "numeric value, e.g. 85"
	ti.CharLimit = 16
	ti.Width = 24

	names := theme.Names()
	idx := 0
	for i, n := range names {
		if n == t.Config.Theme {
			idx = i
		}
	}

	m := &tuiModel{
		ctx:       ctx,
		cfg:       t.Config,
		store:     t.Store,
		themes:    names,
		themeIdx:  idx,
		separator: compose.ParseSeparator(t.Config.Separator),
		spacing:   compose.ParseSpacing(t.Config.Spacing),
		transp:    t.Config.Transparent,
		input:     ti,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *tuiModel) Init() tea.Cmd { return nil }

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeValueInput {
			switch msg.String() {
			case "enter":
				m.simValue = strings.TrimSpace(m.input.Value())
				m.mode = modeBar
				return m, nil
			case "esc":
				m.mode = modeBar
				return m, nil
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t":
			m.themeIdx = (m.themeIdx + 1) % len(m.themes)
		case "s":
			if m.separator == compose.SeparatorRounded {
				m.separator = compose.SeparatorNormal
			} else {
				m.separator = compose.SeparatorRounded
			}
		case "g":
			m.spacing = (m.spacing + 1) % 3
		case "b":
			m.transp = !m.transp
		case "v":
			m.mode = modeValueInput
			m.input.SetValue(m.simValue)
			m.input.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

// simWidget shows severity coloring for a user-typed value.
type simWidget struct {
	value string
}

func (s *simWidget) Name() string      { return "sim" }
func (s *simWidget) Kind() widget.Kind { return widget.Conditional }
func (s *simWidget) Produce(ctx context.Context) (string, error) {
	return s.value, nil
}

// buildSegments assembles the configured widgets plus the optional
// simulated widget under the currently selected theme. The registry is
// rebuilt per call: memoization pins values for a whole process, and a
// preview that cannot change its mind would be useless.
func (m *tuiModel) buildSegments(th theme.Theme) []compose.Segment {
	reg := registry.New(nil)
	m.notices = nil

	adapter := widget.NewAdapter(reg, th)
	adapter.Notify = func(name, msg string) {
		m.notices = append(m.notices, fmt.Sprintf("%s: %s", name, msg))
	}

	var ws []widget.Widget
	for _, e := range widget.ParseLine(m.cfg.Widgets) {
		w, err := widget.Instantiate(e, reg, m.store)
		if err != nil {
			m.notices = append(m.notices, err.Error())
			continue
		}
		ws = append(ws, w)
	}

	if m.simValue != "" {
		reg.Declare("sim", widget.OptIcon, registry.Icon, "%", "")
		reg.Declare("sim", widget.OptThresholdMode, registry.String, "normal", "")
		reg.Declare("sim", widget.OptWarningThreshold, registry.Number, "70", "")
		reg.Declare("sim", widget.OptCriticalThreshold, registry.Number, "90", "")
		ws = append(ws, &simWidget{value: m.simValue})
	}

	return adapter.BuildAll(m.ctx, ws)
}

func (m *tuiModel) View() string {
	th := theme.ByName(m.themes[m.themeIdx])
	if m.cfg.ThemeFile != "" {
		if custom, err := theme.LoadFile(m.cfg.ThemeFile); err == nil {
			th = custom
		}
	}

	opts := compose.Options{
		Background:  th.Background(),
		Transparent: m.transp,
		Separator:   m.separator,
		Spacing:     m.spacing,
		Surface:     th.Surface(),
		Text:        th.Text(),
	}
	bar := ANSI(m.buildSegments(th), opts)

	var b strings.Builder
	b.WriteString(titleStyle.Render("slatebar preview"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  theme=%s separator=%s spacing=%s transparent=%v",
		m.themes[m.themeIdx], m.separator, m.spacing, m.transp)))
	b.WriteString("\n\n")
	b.WriteString(bar)
	b.WriteString("\n\n")

	for _, n := range m.notices {
		b.WriteString(errStyle.Render("! " + n))
		b.WriteString("\n")
	}

	if m.mode == modeValueInput {
		b.WriteString("simulated value: " + m.input.View() + "\n")
		b.WriteString(dimStyle.Render("enter apply · esc cancel"))
	} else {
		b.WriteString(dimStyle.Render("t theme · s separator · g spacing · b transparent · v value · q quit"))
	}
	b.WriteString("\n")
	return b.String()
}
