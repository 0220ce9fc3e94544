package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bouncebox/internal/physics"
)

const (
	width           = 60
	height          = 24
	historyCapacity = 120
	frameInterval   = time.Second / 60

	CountStep    = 10
	MaxParticles = 2000
	orbitStep    = 0.1
)

type TickMsg time.Time

type LiveConfig struct {
	Particles     int
	ResetInterval time.Duration // 0 disables automatic repeats
	Params        physics.Params
	Seed          int64
	Theme         string
}

// Model drives a simulation from wall-clock ticks. Timestamps passed to the
// simulation are seconds since the model started, excluding paused time.
type Model struct {
	sim        *physics.Simulation
	camera     *Camera
	canvas     *Canvas
	theme      Theme
	styles     styles
	count      int
	resetEvery time.Duration
	now        func() time.Time
	start      time.Time
	lastReset  time.Time
	pausedAt   time.Time
	paused     bool
	repeats    int
	energy     []float64
	collisions []float64
}

func NewModel(cfg LiveConfig) Model {
	return newModel(cfg, time.Now)
}

func newModel(cfg LiveConfig, now func() time.Time) Model {
	s := physics.New(rand.New(rand.NewSource(cfg.Seed)), physics.WithParams(cfg.Params))
	count := clampCount(cfg.Particles)
	s.Reset(count)

	theme := GetTheme(cfg.Theme)
	started := now()
	return Model{
		sim:        s,
		camera:     BoxCamera(cfg.Params.BoxSize),
		canvas:     NewCanvas(width, height),
		theme:      theme,
		styles:     newStyles(theme),
		count:      count,
		resetEvery: cfg.ResetInterval,
		now:        now,
		start:      started,
		lastReset:  started,
		energy:     make([]float64, 0, historyCapacity),
		collisions: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the simulation on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.togglePause(m.now())
		case "r":
			m.reset(m.count, m.now())
		case "+", "=":
			m.reset(m.count+CountStep, m.now())
		case "-", "_":
			m.reset(m.count-CountStep, m.now())
		case "left", "h":
			m.camera.Orbit(-orbitStep)
		case "right", "l":
			m.camera.Orbit(orbitStep)
		case "up", "k":
			m.camera.ZoomIn()
		case "down", "j":
			m.camera.ZoomOut()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		}
	case TickMsg:
		if !m.paused {
			m.step(time.Time(msg))
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step(now time.Time) {
	if m.resetEvery > 0 && now.Sub(m.lastReset) >= m.resetEvery {
		m.sim.Repeat()
		m.lastReset = now
		m.repeats++
	}

	m.sim.Advance(float32(now.Sub(m.start).Seconds()))

	m.energy = appendHistory(m.energy, m.sim.KineticEnergy()+m.sim.PotentialEnergy())
	m.collisions = appendHistory(m.collisions, float64(m.sim.Stats().Collisions))
}

// reset rebuilds the scene with n particles and restarts the repeat timer.
func (m *Model) reset(n int, now time.Time) {
	m.count = clampCount(n)
	m.sim.Reset(m.count)
	m.lastReset = now
	m.energy = m.energy[:0]
	m.collisions = m.collisions[:0]
}

// togglePause shifts the time origin on resume so the paused span never
// shows up as a frame delta.
func (m *Model) togglePause(now time.Time) {
	if !m.paused {
		m.paused = true
		m.pausedAt = now
		return
	}
	idle := now.Sub(m.pausedAt)
	m.start = m.start.Add(idle)
	m.lastReset = m.lastReset.Add(idle)
	m.paused = false
}

func clampCount(n int) int {
	return min(max(n, 0), MaxParticles)
}

func appendHistory(h []float64, v float64) []float64 {
	if len(h) >= historyCapacity {
		h = append(h[:0], h[1:]...)
	}
	return append(h, v)
}

// View renders the scene next to the stats panel.
func (m Model) View() string {
	m.canvas.Clear()
	RenderScene(m.canvas, m.camera, m.sim.Params().BoxSize, m.sim.Particles(), m.theme)
	canvasView := m.styles.canvas.Render(m.canvas.Render())

	st := m.styles
	var s strings.Builder
	s.WriteString(st.header.Render("BOUNCEBOX") + "\n")
	if m.paused {
		s.WriteString(st.warn.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(st.good.Render("RUNNING") + "\n\n")
	}

	s.WriteString(st.value.Render(fmt.Sprintf("FPS: %.2f", m.sim.FPS())) + "\n\n")
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Particles", fmt.Sprintf("%d", m.sim.ParticleCount()))
	row("Radius", fmt.Sprintf("%.3f-%.3f", m.sim.MinRadius(), m.sim.MaxRadius()))
	row("Time", fmt.Sprintf("%.2fs", m.sim.Elapsed()))
	if m.resetEvery > 0 {
		left := m.resetEvery - m.now().Sub(m.lastReset)
		if m.paused {
			left = m.resetEvery - m.pausedAt.Sub(m.lastReset)
		}
		row("Repeat in", fmt.Sprintf("%.1fs", max(left.Seconds(), 0)))
	}
	row("Repeats", fmt.Sprintf("%d", m.repeats))
	stats := m.sim.Stats()
	row("Collisions", fmt.Sprintf("%d", stats.Collisions))
	row("Wall hits", fmt.Sprintf("%d", stats.WallBounces))
	row("Theme", m.theme.Name)

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	if len(m.collisions) > 0 {
		s.WriteString(st.label.Render("Hits/frame") + SparklineChart(m.collisions, 24) + "\n")
	}

	s.WriteString(st.help.Render("SP:Pause R:Reset Q:Quit\n+/-:Count ←→:Orbit ↑↓:Zoom T:Theme"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
}

// Run starts the live view and blocks until the user quits.
func Run(cfg LiveConfig) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
