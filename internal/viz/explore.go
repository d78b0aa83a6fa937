package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icrf-tools/icrlab/internal/plasma"
	"github.com/icrf-tools/icrlab/internal/scan"
)

const (
	graphWidth  = 70
	graphHeight = 12
)

// tunable parameter indices
const (
	paramCurrent = iota
	paramFrequency
	paramHarmonic
	numParams
)

// Model is the interactive resonance explorer: arrow keys nudge the
// coil current, antenna frequency and harmonic, and the layer diagram
// recomputes on every change.
type Model struct {
	current  float64
	freq     float64
	harmonic int
	ions     []plasma.Ion
	ionIdx   int
	rmin     float64
	rmax     float64
	selected int
	showHelp bool
}

// NewModel seeds the explorer from an operating point.
func NewModel(current, freq float64, ion plasma.Ion, harmonic int, rmin, rmax float64) Model {
	ions := plasma.ListSpecies()
	idx := -1
	for i, s := range ions {
		if s.Z == ion.Z && s.A == ion.A {
			idx = i
			break
		}
	}
	if idx < 0 {
		// explicit Z/A outside the species table stays selectable
		ions = append(ions, ion)
		idx = len(ions) - 1
	}
	return Model{
		current:  current,
		freq:     freq,
		harmonic: harmonic,
		ions:     ions,
		ionIdx:   idx,
		rmin:     rmin,
		rmax:     rmax,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right":
			m.selected = (m.selected + 1) % numParams
		case "shift+tab", "left":
			m.selected = (m.selected + numParams - 1) % numParams
		case "up", "k":
			m.adjust(1)
		case "down", "j":
			m.adjust(-1)
		case "i":
			m.ionIdx = (m.ionIdx + 1) % len(m.ions)
		case "I":
			m.ionIdx = (m.ionIdx + len(m.ions) - 1) % len(m.ions)
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m *Model) adjust(dir int) {
	switch m.selected {
	case paramCurrent:
		m.current += float64(dir) * 50
	case paramFrequency:
		m.freq += float64(dir) * 1e6
		if m.freq < 1e6 {
			m.freq = 1e6
		}
	case paramHarmonic:
		m.harmonic += dir
		if m.harmonic < 1 {
			m.harmonic = 1
		}
	}
}

func (m Model) ion() plasma.Ion {
	return m.ions[m.ionIdx]
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("icrlab explorer"))
	sb.WriteString("\n")

	sb.WriteString(m.paramPanel())
	sb.WriteString("\n")

	prof, err := scan.RadialProfile(scan.Params{
		Current:     m.current,
		Frequency:   m.freq,
		Ion:         m.ion(),
		MaxHarmonic: 5,
		RMin:        m.rmin,
		RMax:        m.rmax,
		Points:      graphWidth,
	})
	if err != nil {
		sb.WriteString(errStyle.Render(fmt.Sprintf("  %v", err)))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.resultPanel(prof))
		sb.WriteString("\n")
		sb.WriteString(panelStyle.Render(ProfileGraph(prof, graphWidth, graphHeight)))
		sb.WriteString("\n")
	}

	if m.showHelp {
		sb.WriteString(helpStyle.Render("tab/arrows select param - up/down adjust - i cycle ion - q quit"))
	} else {
		sb.WriteString(helpStyle.Render("? help - q quit"))
	}
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) paramPanel() string {
	line := func(idx int, label, value string) string {
		l := labelStyle.Render(label)
		v := valueStyle.Render(value)
		if idx == m.selected {
			v = activeStyle.Render("> " + value)
		}
		return l + v
	}

	rows := []string{
		line(paramCurrent, "coil current", fmt.Sprintf("%.0f A", m.current)),
		line(paramFrequency, "frequency", fmt.Sprintf("%.2f MHz", m.freq/1e6)),
		line(paramHarmonic, "harmonic", fmt.Sprintf("n = %d", m.harmonic)),
		labelStyle.Render("ion") + valueStyle.Render(fmt.Sprintf("%s (Z=%d, A=%d)", m.ion(), m.ion().Z, m.ion().A)),
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) resultPanel(prof *scan.Profile) string {
	r, err := plasma.ResonanceRadius(m.current, m.freq, m.ion(), m.harmonic)
	if err != nil {
		return errStyle.Render(fmt.Sprintf("  %v", err))
	}

	var sb strings.Builder
	sb.WriteString(resultStyle.Render(fmt.Sprintf("R_c(n=%d) = %.6f m", m.harmonic, r)))
	if r < m.rmin || r > m.rmax {
		sb.WriteString(errStyle.Render("  (outside plotted window)"))
	}
	sb.WriteString("\n")
	sb.WriteString(LayerTable(prof))
	return sb.String()
}

// RunExplorer starts the interactive terminal explorer.
func RunExplorer(current, freq float64, ion plasma.Ion, harmonic int, rmin, rmax float64) error {
	p := tea.NewProgram(NewModel(current, freq, ion, harmonic, rmin, rmax))
	_, err := p.Run()
	return err
}
