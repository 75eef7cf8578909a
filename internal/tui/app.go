// Package tui is the interactive front panel: spinbox-style parameter
// editing, a switch toggle, the live schematic, and a charge history
// plot. A bubbletea tick at the simulator's nominal interval is the
// periodic driver; the simulation core never owns a clock.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"rcsim/internal/circuit"
	"rcsim/internal/config"
	"rcsim/internal/diagram"
	"rcsim/internal/display"
	"rcsim/internal/sim"
)

const historyCapacity = 600

// Advisory input ranges. Enforced here at the control boundary, not in
// the circuit itself.
const (
	minEMF, maxEMF                 = 0.0, 100.0
	minResistance, maxResistance   = 1.0, 10000.0
	minCapacitance, maxCapacitance = 1.0, 10000.0
)

var paramNames = []string{"emf", "resistance", "capacitance"}

type TickMsg time.Time

// Model holds the circuit, its simulator, and the UI editing state.
type Model struct {
	state *circuit.State
	sim   *sim.Simulator

	history []float64

	paramCursor int
	editing     bool
	editBuf     string
	paused      bool
	status      string
	err         error

	width, height int
}

func NewModel(state *circuit.State, simulator *sim.Simulator) Model {
	return Model{
		state:   state,
		sim:     simulator,
		history: make([]float64, 0, historyCapacity),
		width:   100,
		height:  30,
	}
}

// Err returns the fatal error that ended the session, if any.
func (m Model) Err() error { return m.err }

func tickCmd() tea.Cmd {
	return tea.Tick(sim.TickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		// Pausing suspends the host cadence only; simulator state is
		// untouched and resumes from where it stopped.
		if !m.paused {
			if err := m.sim.Tick(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.history = append(m.history, m.state.ChargeLevel())
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, tickCmd()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg), nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(paramNames)-1 {
			m.paramCursor++
		}
	case "enter":
		m.editing = true
		m.editBuf = ""
		m.status = ""
	case "s", " ":
		m.applyParameters(m.state.EMF, m.state.Resistance, m.state.Capacitance, !m.state.SwitchClosed)
	case "r":
		// Reset parameters only; the charge level persists across
		// parameter edits.
		m.applyParameters(circuit.DefaultEMF, circuit.DefaultResistance, circuit.DefaultCapacitance, false)
	case "p":
		m.paused = !m.paused
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		if idx < len(config.PresetOrder) {
			m.applyPreset(config.PresetOrder[idx])
		}
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		m.editing, m.editBuf = false, ""
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' {
				m.editBuf += string(c)
			}
		}
	}
	return m
}

func (m *Model) commitEdit() {
	var val float64
	if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err != nil {
		m.status = "not a number: " + m.editBuf
		return
	}

	emf, res, capc := m.state.EMF, m.state.Resistance, m.state.Capacitance
	switch paramNames[m.paramCursor] {
	case "emf":
		emf = clamp(val, minEMF, maxEMF)
	case "resistance":
		res = clamp(val, minResistance, maxResistance)
	case "capacitance":
		capc = clamp(val, minCapacitance, maxCapacitance)
	}
	m.applyParameters(emf, res, capc, m.state.SwitchClosed)
}

func (m *Model) applyParameters(emf, res, capc float64, closed bool) {
	if err := m.state.SetParameters(emf, res, capc, closed); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.sim.SwitchChanged()
}

func (m *Model) applyPreset(name string) {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return
	}
	m.applyParameters(cfg.EMF, cfg.Resistance, cfg.Capacitance, cfg.SwitchClosed)
	m.status = "preset: " + name
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m Model) View() string {
	snap := m.state.Snapshot()

	header := headerStyle.Render("RC Circuit Simulator")
	schematic := diagramStyle.Render(diagram.Render(snap, 62, 15))
	side := lipgloss.JoinVertical(lipgloss.Left, m.paramPanel(snap), "", m.infoPanel(snap))
	main := lipgloss.JoinHorizontal(lipgloss.Top, schematic, side)

	parts := []string{header, main}
	if graph := m.chargeGraph(); graph != "" {
		parts = append(parts, graphStyle.Render(graph))
	}
	if m.status != "" {
		parts = append(parts, errorStyle.Render(m.status))
	}
	parts = append(parts, helpStyle.Render(
		"↑/↓ select  enter edit  s toggle switch  1-4 presets  r reset  p pause  q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) paramPanel(snap circuit.Snapshot) string {
	values := []string{
		display.EMF(snap.EMF),
		display.Resistance(snap.Resistance),
		display.Capacitance(snap.Capacitance),
	}
	labels := []string{"EMF (voltage)", "Resistance", "Capacitance"}

	var b strings.Builder
	b.WriteString(valueStyle.Render("Circuit Parameters") + "\n")
	for i := range labels {
		cursor := "  "
		value := valueStyle.Render(values[i])
		if i == m.paramCursor {
			cursor = selectedStyle.Render("> ")
			if m.editing {
				value = editStyle.Render(m.editBuf + "█")
			} else {
				value = selectedStyle.Render(values[i])
			}
		}
		b.WriteString(cursor + labelStyle.Render(labels[i]) + value + "\n")
	}

	switchText := openStyle.Render("OPEN")
	if snap.SwitchClosed {
		switchText = closedStyle.Render("CLOSED")
	}
	b.WriteString("  " + labelStyle.Render("Switch") + switchText)
	if m.paused {
		b.WriteString("\n  " + dimStyle.Render("(paused)"))
	}
	return panelStyle.Render(b.String())
}

func (m Model) infoPanel(snap circuit.Snapshot) string {
	var b strings.Builder
	b.WriteString(valueStyle.Render("Circuit Information") + "\n")
	b.WriteString(labelStyle.Render("  τ = R × C") + valueStyle.Render(display.TimeConstant(snap.TimeConstant)) + "\n")
	b.WriteString(labelStyle.Render("  Charge") + valueStyle.Render(display.Charge(snap.ChargeLevel)) + "\n\n")
	b.WriteString(dimStyle.Render("At τ the capacitor is ~63.2% charged;\nat 5τ it is ~99.3% charged."))
	return panelStyle.Render(b.String())
}

func (m Model) chargeGraph() string {
	if len(m.history) < 2 {
		return ""
	}
	width := m.width - 12
	if width > 90 {
		width = 90
	}
	if width < 20 {
		width = 20
	}
	return asciigraph.Plot(m.history,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Caption("charge level (%)"),
	)
}

// Run starts the interactive session and blocks until quit.
func Run(state *circuit.State, simulator *sim.Simulator) error {
	m := NewModel(state, simulator)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
