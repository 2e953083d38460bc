package viz

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/bodies"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvas(t *testing.T) {
	c := NewCanvas(4, 2)
	w, h := c.Dots()
	assert.Equal(t, 8, w)
	assert.Equal(t, 8, h)

	c.Set(3, 5, "#ff0000")
	assert.True(t, c.Lit(3, 5))
	assert.False(t, c.Lit(2, 5))
	assert.Equal(t, "#ff0000", c.Colors[1][1])

	c.Set(-1, 0, "")
	c.Set(100, 100, "")

	c.DrawLine(0, 0, 7, 7, "")
	assert.True(t, c.Lit(0, 0))
	assert.True(t, c.Lit(7, 7))

	c.Clear()
	assert.False(t, c.Lit(3, 5))
	c.Disc(4, 4, 0.2, "")
	assert.True(t, c.Lit(4, 4))
	assert.False(t, c.Lit(5, 4))
	c.Disc(4, 4, 1, "")
	assert.True(t, c.Lit(5, 4))

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func newModel(t *testing.T, specs []bodies.Spec) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.PreviewHorizon = 20 * cfg.Dt
	sess, err := session.New(cfg, bodies.Resolve(specs), zerolog.Nop())
	require.NoError(t, err)
	return NewModel(context.Background(), sess, zerolog.Nop())
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestMouseAimAndLaunch(t *testing.T) {
	m := newModel(t, bodies.Inner())
	center := tea.MouseMsg{X: canvasPadLeft + defaultCols/2, Y: canvasPadTop + defaultRows/2, Action: tea.MouseActionMotion}

	m, _ = update(m, center)
	c, ok := m.sess.Cursor()
	require.True(t, ok)
	assert.Greater(t, c.X, 0.0)
	assert.Greater(t, c.Y, 0.0)
	assert.Equal(t, dynamo.Idle, m.sess.Rocket().State)

	press := center
	press.Action = tea.MouseActionPress
	press.Button = tea.MouseButtonLeft
	m, _ = update(m, press)
	assert.Equal(t, dynamo.Active, m.sess.Rocket().State)
	require.NotEmpty(t, m.events)
	assert.Contains(t, m.events[len(m.events)-1], "launched")

	m, _ = update(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	_, ok = m.sess.Cursor()
	assert.False(t, ok)
}

func TestKeyboardAim(t *testing.T) {
	m := newModel(t, bodies.Inner())
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyUp})
	c, ok := m.sess.Cursor()
	require.True(t, ok)
	assert.Equal(t, dynamo.Vec2{X: aimStep, Y: -aimStep}, c)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, dynamo.Active, m.sess.Rocket().State)
}

func TestTickAndPause(t *testing.T) {
	m := newModel(t, bodies.Inner())

	m, cmd := update(m, TickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.sess.Step())
	assert.Equal(t, 1, m.frame.Step)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, m.running)
	m, _ = update(m, TickMsg(time.Now()))
	assert.Equal(t, 1, m.sess.Step())
	assert.Contains(t, m.View(), "PAUSED")
}

func TestCollisionStopsTicking(t *testing.T) {
	m := newModel(t, []bodies.Spec{
		{Name: "Sun", Mass: 2e30},
		{Name: "A", Mass: 1e24, Distance: bodies.F(1)},
		{Name: "B", Mass: 1e24, Distance: bodies.F(1)},
	})
	m, cmd := update(m, TickMsg(time.Now()))
	assert.Nil(t, cmd)
	require.Error(t, m.err)
	assert.ErrorIs(t, m.err, dynamo.ErrCollision)
	assert.Contains(t, m.View(), "HALTED")
}

func TestResize(t *testing.T) {
	m := newModel(t, bodies.Inner())
	m, _ = update(m, tea.WindowSizeMsg{Width: 160, Height: 50})
	assert.Equal(t, 160-sidebarWidth-2*canvasPadLeft-4, m.canvas.Width)
	assert.Equal(t, 50-2*canvasPadTop, m.canvas.Height)
}

func TestPicker(t *testing.T) {
	p := newPicker()
	require.NotEmpty(t, p.presets)

	next, _ := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(picker).Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, config.ListPresets()[1], next.(picker).chosen)
	assert.Contains(t, p.View(), "choose a system")
}

func TestThemes(t *testing.T) {
	assert.Equal(t, ThemeNight, GetTheme("nope"))
	assert.Equal(t, ThemeRetroGreen, NextTheme(ThemeNight))
	assert.Equal(t, ThemeNight, NextTheme(ThemeMinimal))
}

func TestWrapKeepsRunesWhole(t *testing.T) {
	msg := `collision: "Sol" and "Cérès ☄ Ébène" overlap`
	out := wrap(msg, 7)

	assert.Equal(t, msg, strings.ReplaceAll(out, "\n", ""))
	for _, line := range strings.Split(out, "\n") {
		assert.True(t, utf8.ValidString(line), "line %q", line)
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 7)
	}
	assert.Equal(t, "ab", wrap("ab", 7))
}
