package gui

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/session"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
)

const (
	telemetryCapacity = 200
	messageFrames     = 180
)

// App is the desktop window. It owns no simulation state of its own
// beyond what it needs to draw.
type App struct {
	ctx  context.Context
	sess *session.Session
	log  zerolog.Logger

	frame     render.Frame
	running   bool
	quit      bool
	err       error
	telemetry []float64
	message   string
	msgTTL    int
}

func initWindow(width, height float64) {
	rl.InitWindow(int32(width), int32(height), "orrery")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(ctx context.Context, sess *session.Session, log zerolog.Logger) *App {
	return &App{
		ctx:       ctx,
		sess:      sess,
		log:       log.With().Str("component", "gui").Logger(),
		frame:     sess.Frame(ctx),
		running:   true,
		telemetry: make([]float64, 0, telemetryCapacity),
	}
}

// Run opens a window the size of the configured canvas and blocks until
// it is closed or ctx is cancelled. A simulation error is returned once
// the window closes.
func Run(ctx context.Context, sess *session.Session, log zerolog.Logger) error {
	cfg := sess.Config()
	initWindow(cfg.Canvas.Width, cfg.Canvas.Height)
	defer rl.CloseWindow()
	return NewApp(ctx, sess, log).RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() && !a.quit && a.ctx.Err() == nil {
		a.Update()
		a.Draw()
	}
	return a.err
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}

	rs := a.sess.Scale()
	if rl.IsCursorOnScreen() {
		pos := rl.GetMousePosition()
		dx, dy := float64(pos.X)-rs.Width/2, float64(pos.Y)-rs.Height/2
		a.sess.MoveCursor(dx, dy)
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			a.launch(dx, dy)
		}
	} else {
		a.sess.ClearCursor()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.sess.ClearCursor()
	}

	if a.err != nil {
		return
	}
	if !a.running {
		a.frame = a.sess.Frame(a.ctx)
		return
	}
	f, err := a.sess.Tick(a.ctx)
	if err != nil {
		a.err = err
		a.log.Error().Err(err).Msg("window stopped")
		a.say(err.Error())
		return
	}
	a.frame = f
	if f.Hit != "" {
		a.say("Rocket hit " + f.Hit)
	}
	if r := a.sess.Rocket(); r.Active() {
		a.telemetry = append(a.telemetry, r.Vel.Norm()/1000)
		if len(a.telemetry) > telemetryCapacity {
			a.telemetry = a.telemetry[1:]
		}
	}
	if a.msgTTL > 0 {
		a.msgTTL--
	}
}

func (a *App) launch(dx, dy float64) {
	if err := a.sess.Launch(dx, dy); err != nil {
		a.say(err.Error())
		return
	}
	a.telemetry = a.telemetry[:0]
}

func (a *App) say(msg string) {
	a.message, a.msgTTL = msg, messageFrames
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	drawFrame(a.frame)
	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rs := a.sess.Scale()
	rl.DrawText("orrery", 20, 20, 20, ColSelect)

	status, col := "RUNNING", ColSelect
	switch {
	case a.err != nil:
		status, col = "HALTED", rl.Red
	case !a.running:
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, int32(rs.Width)-110, 20, 16, col)

	cfg := a.sess.Config()
	days := float64(a.sess.Step()) * cfg.Dt / 86400
	rl.DrawText(fmt.Sprintf("day %.1f  rocket %s", days, a.sess.Rocket().State), 20, 48, 14, ColText)

	a.DrawTelemetry()

	if a.msgTTL > 0 || a.err != nil {
		rl.DrawText(a.message, 20, int32(rs.Height)-60, 16, ColAccent)
	}
	rl.DrawText("[CLICK] LAUNCH  [SPACE] PAUSE  [C] CLEAR AIM  [Q] QUIT", 20, int32(rs.Height)-28, 12, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(rs.Width)-70, int32(rs.Height)-28, 12, ColTextDim)
}

// DrawTelemetry plots the rocket's speed since launch.
func (a *App) DrawTelemetry() {
	if len(a.telemetry) < 2 {
		return
	}
	rs := a.sess.Scale()
	x, y := float32(20), float32(rs.Height)-140
	w, h := float32(240), float32(50)
	rl.DrawLineStrip(strip(a.telemetry, x, y, w, h), ColAccent)
	rl.DrawText(fmt.Sprintf("%.2f km/s", a.telemetry[len(a.telemetry)-1]), int32(x+w)+10, int32(y+h)-10, 14, ColText)
}
