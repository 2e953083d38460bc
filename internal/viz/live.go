package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/palette"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/session"
)

const (
	defaultCols     = 80
	defaultRows     = 30
	historyCapacity = 120
	maxEvents       = 5
	aimStep         = 10.0
	frameInterval   = time.Second / 30
)

type TickMsg time.Time

// Model is the Bubble Tea model of the live view. The canvas shows the
// session's frame scaled uniformly to fit.
type Model struct {
	ctx   context.Context
	sess  *session.Session
	log   zerolog.Logger
	theme Theme
	st    styles

	canvas   *Canvas
	frame    render.Frame
	aim      dynamo.Vec2
	running  bool
	showHelp bool
	err      error
	speed    []float64
	events   []string
}

func NewModel(ctx context.Context, sess *session.Session, log zerolog.Logger) Model {
	m := Model{
		ctx:     ctx,
		sess:    sess,
		log:     log.With().Str("component", "viz").Logger(),
		theme:   ThemeNight,
		st:      newStyles(ThemeNight),
		canvas:  NewCanvas(defaultCols, defaultRows),
		running: true,
		speed:   make([]float64, 0, historyCapacity),
	}
	m.frame = sess.Frame(ctx)
	return m
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.err != nil {
			return m, nil
		}
		m.advance()
		if m.err != nil {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	if !m.running {
		m.frame = m.sess.Frame(m.ctx)
		return
	}
	f, err := m.sess.Tick(m.ctx)
	if err != nil {
		m.err = err
		m.log.Error().Err(err).Msg("live view stopped")
		return
	}
	m.frame = f
	if f.Hit != "" {
		m.pushEvent(fmt.Sprintf("step %d: rocket hit %s", f.Step, f.Hit))
	}
	if r := m.sess.Rocket(); r.Active() {
		m.speed = append(m.speed, r.Vel.Norm()/1000)
		if len(m.speed) > historyCapacity {
			m.speed = m.speed[1:]
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		m.theme = NextTheme(m.theme)
		m.st = newStyles(m.theme)
	case "c":
		m.sess.ClearCursor()
	case "up", "k":
		m.nudge(0, -aimStep)
	case "down", "j":
		m.nudge(0, aimStep)
	case "left", "h":
		m.nudge(-aimStep, 0)
	case "right", "l":
		m.nudge(aimStep, 0)
	case "enter", "f":
		m.launch(m.aim)
	}
	return m, nil
}

func (m *Model) nudge(dx, dy float64) {
	m.aim = m.aim.Add(dynamo.Vec2{X: dx, Y: dy})
	m.sess.MoveCursor(m.aim.X, m.aim.Y)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	off, ok := m.offsetAt(msg.X-canvasPadLeft, msg.Y-canvasPadTop)
	if !ok {
		m.sess.ClearCursor()
		return
	}
	m.aim = off
	m.sess.MoveCursor(off.X, off.Y)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.launch(off)
	}
}

func (m *Model) launch(off dynamo.Vec2) {
	if err := m.sess.Launch(off.X, off.Y); err != nil {
		m.pushEvent("launch failed: " + err.Error())
		return
	}
	m.speed = m.speed[:0]
	angle := math.Atan2(off.Y, off.X) * 180 / math.Pi
	m.pushEvent(fmt.Sprintf("step %d: launched at %.0f°", m.sess.Step(), angle))
}

func (m *Model) pushEvent(s string) {
	m.events = append(m.events, s)
	if len(m.events) > maxEvents {
		m.events = m.events[1:]
	}
}

func (m *Model) resize(w, h int) {
	cols := w - sidebarWidth - 2*canvasPadLeft - 4
	rows := h - 2*canvasPadTop
	if cols < 20 {
		cols = 20
	}
	if rows < 10 {
		rows = 10
	}
	m.canvas = NewCanvas(cols, rows)
}

// dotScale is the number of frame pixels per canvas dot; the frame is
// fitted uniformly and centered.
func (m *Model) dotScale() float64 {
	rs := m.sess.Scale()
	dw, dh := m.canvas.Dots()
	return math.Max(rs.Width/float64(dw), rs.Height/float64(dh))
}

func (m *Model) toDots(p dynamo.Vec2) (int, int) {
	rs := m.sess.Scale()
	k := m.dotScale()
	dw, dh := m.canvas.Dots()
	x := (p.X-rs.Width/2)/k + float64(dw)/2
	y := (p.Y-rs.Height/2)/k + float64(dh)/2
	return int(math.Round(x)), int(math.Round(y))
}

// offsetAt converts a canvas cell to a frame offset from the canvas
// center. ok is false outside the canvas.
func (m *Model) offsetAt(col, row int) (dynamo.Vec2, bool) {
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return dynamo.Vec2{}, false
	}
	k := m.dotScale()
	dw, dh := m.canvas.Dots()
	return dynamo.Vec2{
		X: (float64(col*2+1) - float64(dw)/2) * k,
		Y: (float64(row*4+2) - float64(dh)/2) * k,
	}, true
}

func (m *Model) draw() {
	m.canvas.Clear()
	f := m.frame
	preview := palette.Hex("green")
	for i := 1; i < len(f.Trajectory); i++ {
		x0, y0 := m.toDots(f.Trajectory[i-1])
		x1, y1 := m.toDots(f.Trajectory[i])
		m.canvas.DrawLine(x0, y0, x1, y1, preview)
	}
	k := m.dotScale()
	for _, b := range f.Bodies {
		x, y := m.toDots(b.Center)
		m.canvas.Disc(x, y, b.Radius/k, palette.Hex(b.Color))
	}
	if r := f.Rocket; r != nil {
		color := palette.Hex(r.Color)
		tx, ty := m.toDots(r.Tip)
		lx, ly := m.toDots(r.Left)
		rx, ry := m.toDots(r.Right)
		m.canvas.DrawLine(tx, ty, lx, ly, color)
		m.canvas.DrawLine(lx, ly, rx, ry, color)
		m.canvas.DrawLine(rx, ry, tx, ty, color)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := m.st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.st.header.Render("ORRERY") + "\n")
	switch {
	case m.err != nil:
		s.WriteString(m.st.failed.Render("HALTED") + "\n")
		s.WriteString(m.st.value.Render(wrap(m.err.Error(), sidebarWidth-4)) + "\n\n")
	case m.running:
		s.WriteString(m.st.running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(m.st.paused.Render("PAUSED") + "\n\n")
	}

	cfg := m.sess.Config()
	days := float64(m.sess.Step()) * cfg.Dt / 86400
	rocket := m.sess.Rocket()
	bary := m.sess.Barycenter()
	row := func(label, value string) {
		s.WriteString(m.st.label.Render(label) + m.st.value.Render(value) + "\n")
	}
	row("Step", fmt.Sprintf("%d", m.sess.Step()))
	row("Elapsed", fmt.Sprintf("%.1f days", days))
	row("Bodies", fmt.Sprintf("%d", len(m.sess.Bodies())))
	row("Rocket", rocket.State.String())
	if rocket.Active() {
		row("Speed", fmt.Sprintf("%.2f km/s", rocket.Vel.Norm()/1000))
	}
	row("Barycenter", fmt.Sprintf("%.4f, %.4f AU", bary.X/dynamo.AU, bary.Y/dynamo.AU))
	if c, ok := m.sess.Cursor(); ok {
		row("Aim", fmt.Sprintf("%.0f°", math.Atan2(c.Y, c.X)*180/math.Pi))
	}

	if len(m.speed) > 1 {
		chart := asciigraph.Plot(m.speed, asciigraph.Height(5), asciigraph.Width(sidebarWidth-12), asciigraph.Caption("Rocket speed (km/s)"))
		s.WriteString(m.st.graph.Render(chart) + "\n")
	}

	if len(m.events) > 0 {
		s.WriteString("\n")
		for _, e := range m.events {
			s.WriteString(m.st.label.UnsetWidth().Render(e) + "\n")
		}
	}
	s.WriteString(m.st.help.Render("click:Launch ←↑↓→:Aim ⏎:Fire\nSP:Pause T:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.st.sidebar.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Aim, left click launches ║
║  Arrows   - Aim from the keyboard    ║
║  Enter/F  - Launch toward the aim    ║
║  C        - Clear the aim            ║
║  Space    - Pause/Resume             ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// wrap breaks s every width runes; body names may be multi-byte.
func wrap(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	var b strings.Builder
	for len(r) > width {
		b.WriteString(string(r[:width]) + "\n")
		r = r[width:]
	}
	b.WriteString(string(r))
	return b.String()
}

// Run shows the live view until the user quits or ctx is cancelled.
func Run(ctx context.Context, sess *session.Session, log zerolog.Logger) error {
	p := tea.NewProgram(NewModel(ctx, sess, log),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
