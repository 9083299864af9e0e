// Package viz renders a running simulation in the terminal: a side-view
// canvas of the vehicle, a styled telemetry panel, and an altitude
// strip chart. It also maps keyboard input to setpoint changes, playing
// the role of the operator-input collaborator around the core loop.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/quadsim/internal/quad"
	"github.com/san-kum/quadsim/internal/sim"
)

const (
	canvasWidth  = 64
	canvasHeight = 20
	stripSamples = 120

	// Setpoint shaping for keyboard input, deliberately tighter than
	// the physical saturation limits so the loops stay out of their
	// clamps during manual flight.
	angleStep   = 0.08
	altStep     = 0.25
	maxRefAngle = 0.6
	minRefZ     = 0.5
	maxRefZ     = 10.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(38)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	refStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0, 0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// TickMsg drives the fixed-step simulation clock.
type TickMsg time.Time

// Model is the bubbletea model wrapping one simulator.
type Model struct {
	sim *sim.Simulator
	dt  float64
	fps int

	ref      sim.Setpoint
	running  bool
	altStrip []float64
}

// NewModel wraps an existing simulator. The simulator's current
// references seed the keyboard-controlled setpoint.
func NewModel(s *sim.Simulator, dt float64, fps int) Model {
	if fps <= 0 {
		fps = 20
	}
	return Model{
		sim:      s,
		dt:       dt,
		fps:      fps,
		ref:      s.References(),
		running:  true,
		altStrip: make([]float64, 0, stripSamples),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.running {
			m.sim.SetReferences(m.ref.Roll, m.ref.Pitch, m.ref.Yaw, m.ref.Z)
			if st, err := m.sim.Step(m.dt); err == nil {
				m.altStrip = append(m.altStrip, st.Z)
				if len(m.altStrip) > stripSamples {
					m.altStrip = m.altStrip[1:]
				}
			}
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			m.running = !m.running
		case "r":
			m.sim.Reset()
			m.ref = sim.DefaultSetpoint()
			m.altStrip = m.altStrip[:0]
		case "up":
			m.ref.Z = math.Min(m.ref.Z+altStep, maxRefZ)
		case "down":
			m.ref.Z = math.Max(m.ref.Z-altStep, minRefZ)
		case "w":
			m.ref.Pitch = math.Min(m.ref.Pitch+angleStep, maxRefAngle)
		case "s":
			m.ref.Pitch = math.Max(m.ref.Pitch-angleStep, -maxRefAngle)
		case "a":
			m.ref.Roll = math.Min(m.ref.Roll+angleStep, maxRefAngle)
		case "d":
			m.ref.Roll = math.Max(m.ref.Roll-angleStep, -maxRefAngle)
		case "q":
			m.ref.Yaw = quad.WrapAngle(m.ref.Yaw + angleStep)
		case "e":
			m.ref.Yaw = quad.WrapAngle(m.ref.Yaw - angleStep)
		case "x":
			m.ref.Roll, m.ref.Pitch, m.ref.Yaw = 0, 0, 0
		}
	}
	return m, nil
}

func (m Model) View() string {
	es := m.sim.ExtendedState()
	st := es.State

	left := canvasStyle.Render(m.drawSideView(st.X, st.Z, st.Pitch))
	right := statsStyle.Render(m.statsPanel(es))
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	strip := ""
	if len(m.altStrip) > 1 {
		strip = graphStyle.Render(asciigraph.Plot(m.altStrip,
			asciigraph.Height(6),
			asciigraph.Width(canvasWidth+30),
			asciigraph.Caption("altitude (m)"),
		))
	}

	help := helpStyle.Render("up/down alt  w/s pitch  a/d roll  q/e yaw  x level  p pause  r reset  esc quit")
	return main + "\n" + strip + "\n" + help
}

// drawSideView renders the x/z plane with the vehicle as a tilted bar.
func (m Model) drawSideView(x, z, pitch float64) string {
	grid := make([][]rune, canvasHeight)
	for i := range grid {
		grid[i] = make([]rune, canvasWidth)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	set := func(cx, cy int, c rune) {
		if cx >= 0 && cx < canvasWidth && cy >= 0 && cy < canvasHeight {
			grid[cy][cx] = c
		}
	}

	// Ground on the bottom row; 12 m of world height above it.
	for j := 0; j < canvasWidth; j++ {
		grid[canvasHeight-1][j] = '─'
	}

	scaleY := float64(canvasHeight-2) / 12.0
	cy := canvasHeight - 2 - int(z*scaleY)
	cx := canvasWidth/2 + int(x*2)

	// Tilted body: arm endpoints offset by the pitch angle.
	arm := 4.0
	dx := int(arm * math.Cos(pitch))
	dy := int(arm * math.Sin(pitch))
	set(cx-dx, cy+dy, 'o')
	set(cx+dx, cy-dy, 'o')
	set(cx, cy, '█')

	rows := make([]string, canvasHeight)
	for i, row := range grid {
		rows[i] = string(row)
	}
	return strings.Join(rows, "\n")
}

func (m Model) statsPanel(es sim.ExtendedState) string {
	st := es.State

	status := headerStyle.Render("quadsim")
	if !m.running {
		status += "  " + pausedStyle.Render("PAUSED")
	}

	line := func(label string, val string) string {
		return labelStyle.Render(label) + valueStyle.Render(val)
	}
	refLine := func(label string, val string) string {
		return labelStyle.Render(label) + refStyle.Render(val)
	}

	rows := []string{
		status,
		"",
		line("t", fmt.Sprintf("%8.2f s   tick %d", es.SimTime, es.StepCount)),
		line("pos", fmt.Sprintf("%6.2f %6.2f %6.2f", st.X, st.Y, st.Z)),
		line("vel", fmt.Sprintf("%6.2f %6.2f %6.2f", st.VX, st.VY, st.VZ)),
		line("att", fmt.Sprintf("%6.3f %6.3f %6.3f", st.Roll, st.Pitch, st.Yaw)),
		line("rates", fmt.Sprintf("%6.3f %6.3f %6.3f", st.P, st.Q, st.R)),
		line("thrust", fmt.Sprintf("%6.2f N", st.Thrust)),
		line("torque", fmt.Sprintf("%6.3f %6.3f %6.3f", st.TorqueRoll, st.TorquePitch, st.TorqueYaw)),
		"",
		refLine("ref z", fmt.Sprintf("%6.2f m  (err %+.3f)", es.Ref.Z, es.ZErr)),
		refLine("ref att", fmt.Sprintf("%6.3f %6.3f %6.3f", es.Ref.Roll, es.Ref.Pitch, es.Ref.Yaw)),
	}
	return strings.Join(rows, "\n")
}

// Run starts the live view and blocks until the user quits.
func Run(s *sim.Simulator, dt float64, fps int) error {
	p := tea.NewProgram(NewModel(s, dt, fps))
	_, err := p.Run()
	return err
}
