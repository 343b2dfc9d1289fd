package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/duncanam/particle-interactions-puzzle/internal/vicsek"
)

const (
	canvasWidth     = 64
	canvasHeight    = 24
	historyCapacity = 240
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

type TickMsg time.Time

// Model is the bubbletea model for the live flock view.
type Model struct {
	sim           *vicsek.Simulation
	seed          int64
	fps           int
	stepsPerFrame int
	running       bool
	canvas        *Canvas
	psiHistory    []float64
}

func NewModel(sim *vicsek.Simulation, seed int64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		sim:           sim,
		seed:          seed,
		fps:           fps,
		stepsPerFrame: 1,
		running:       true,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		psiHistory:    make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			// Fresh ensemble, new stream.
			m.seed++
			sim, err := vicsek.New(m.sim.Params(), m.seed)
			if err == nil {
				m.sim = sim
				m.psiHistory = m.psiHistory[:0]
			}
		case "+", "=":
			if m.stepsPerFrame < 64 {
				m.stepsPerFrame *= 2
			}
		case "-":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		}
		return m, nil

	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.sim.Step()
			}
			m.psiHistory = append(m.psiHistory, m.sim.OrderParameter())
			if len(m.psiHistory) > historyCapacity {
				m.psiHistory = m.psiHistory[1:]
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.Quiver(m.sim)

	// Mean-heading compass in the top-right corner.
	_, _, u, v := m.sim.Data()
	var sumU, sumV float64
	for i := range u {
		sumU += u[i]
		sumV += v[i]
	}
	if sumU != 0 || sumV != 0 {
		m.canvas.DrawArrow((canvasWidth-5)*2, 10, math.Atan2(sumV, sumU), 8)
	}

	var sb strings.Builder
	p := m.sim.Params()

	sb.WriteString(headerStyle.Render("vicsek flock"))
	if !m.running {
		sb.WriteString("  " + pausedStyle.Render("paused"))
	}
	sb.WriteByte('\n')

	sb.WriteString(m.canvas.String())

	stat := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteByte('\n')
	}
	stat("t", fmt.Sprintf("%.2f", m.sim.CurrentTime()))
	stat("psi", fmt.Sprintf("%.4f", m.sim.OrderParameter()))
	stat("noise", fmt.Sprintf("%.3f", p.Noise))
	stat("particles", fmt.Sprintf("%d", p.NumParticles))
	stat("x-speed", fmt.Sprintf("%dx", m.stepsPerFrame))

	if len(m.psiHistory) >= 2 {
		graph := asciigraph.Plot(m.psiHistory,
			asciigraph.Height(6),
			asciigraph.Width(canvasWidth),
			asciigraph.Caption("order parameter"),
		)
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteByte('\n')
	}

	sb.WriteString(helpStyle.Render("space pause · r reset · +/- speed · q quit"))
	return sb.String()
}
