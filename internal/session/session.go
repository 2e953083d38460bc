// Package session drives one interactive simulation: a fixed-timestep
// frame loop over a body set, a rocket launched by pointer click and a
// trajectory preview computed on a scratch copy.
//
// A Session is not safe for concurrent use. Each front end calls Tick
// from its own frame loop.
package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/physics"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/telemetry"
)

// launchOffset is the fraction of the reference body's coordinates the
// rocket starts away from it.
const launchOffset = 0.2

type Option func(*Session)

func WithMeters(m *telemetry.Meters) Option {
	return func(s *Session) { s.meters = m }
}

type Session struct {
	cfg    config.Config
	log    zerolog.Logger
	meters *telemetry.Meters

	bodies  dynamo.Bodies
	primary int
	ref     int
	scale   render.RenderScale
	integ   *physics.Integrator

	rocket     dynamo.Projectile
	cursor     dynamo.Vec2
	hasCursor  bool
	barycenter dynamo.Vec2
	step       int
	err        error

	scratch      dynamo.Bodies
	scratchInteg *physics.Integrator
}

// New takes ownership of bodies. The render scale is fixed here from the
// farthest body and the configured canvas.
func New(cfg *config.Config, bodies dynamo.Bodies, log zerolog.Logger, opts ...Option) (*Session, error) {
	if len(bodies) == 0 {
		return nil, dynamo.ErrNoBodies
	}
	s := &Session{
		cfg:     *cfg,
		log:     log.With().Str("component", "session").Logger(),
		bodies:  bodies,
		primary: bodies.Primary(),
		ref:     bodies.Index(cfg.ReferenceBody),
		scale:   render.NewRenderScale(farthestAU(bodies), cfg.Canvas.Width, cfg.Canvas.Height),
		integ:   physics.New(cfg.PhysicsTuning()),
		rocket: dynamo.Projectile{
			Mass:  cfg.Rocket.Mass,
			Color: cfg.Rocket.Color,
			State: dynamo.Idle,
		},
		barycenter: bodies.Barycenter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ref < 0 {
		s.log.Warn().Str("reference", cfg.ReferenceBody).Msg("reference body not found, launching disabled")
	}
	s.log.Debug().
		Int("bodies", len(bodies)).
		Str("primary", bodies[s.primary].Name).
		Float64("scale_factor", s.scale.ScaleFactor).
		Float64("orbit_exaggeration", s.scale.OrbitExaggeration).
		Msg("session created")
	return s, nil
}

func farthestAU(bs dynamo.Bodies) float64 {
	far := 0.0
	for i := range bs {
		far = math.Max(far, bs[i].Pos.Norm()/dynamo.AU)
	}
	return far
}

// Tick advances the simulation by one step and describes the result. After
// a collision the session is halted and every later call returns the same
// error.
func (s *Session) Tick(ctx context.Context) (render.Frame, error) {
	if s.err != nil {
		return render.Frame{}, s.err
	}
	if err := ctx.Err(); err != nil {
		return render.Frame{}, err
	}

	probe := physics.Probe{Live: true}
	if s.rocket.Active() {
		probe.Projectile = &s.rocket
	}
	res, err := s.integ.Step(s.bodies, s.primary, probe, s.cfg.Dt)
	if err != nil {
		s.err = err
		s.log.Error().Err(err).Int("step", s.step).Msg("simulation halted")
		return render.Frame{}, err
	}
	s.step++
	s.barycenter = res.Barycenter
	s.meters.Step(ctx)

	var hit string
	if res.HitBody >= 0 {
		hit = s.bodies[res.HitBody].Name
		s.log.Info().Str("body", hit).Int("step", s.step).Msgf("Rocket hit %s", hit)
		s.meters.Hit(ctx, hit)
	}

	render.Exaggerate(s.bodies, s.primary, s.scale.OrbitExaggeration)
	f := s.Frame(ctx)
	f.Hit = hit
	return f, nil
}

// Frame describes the current state without stepping.
func (s *Session) Frame(ctx context.Context) render.Frame {
	f := render.Frame{
		Step:       s.step,
		Bodies:     s.scale.Sprites(s.bodies),
		Barycenter: s.scale.ToScreen(s.barycenter),
		Projectile: s.rocket.State,
	}
	if s.rocket.Active() {
		f.Rocket = s.scale.RocketMarker(&s.rocket)
	}
	if s.hasCursor && s.ref >= 0 {
		start := time.Now()
		f.Trajectory = s.scale.Polyline(s.Preview())
		s.meters.Preview(ctx, time.Since(start))
	}
	return f
}

// MoveCursor sets the pointer offset from the canvas center in pixels.
func (s *Session) MoveCursor(dx, dy float64) {
	s.cursor = dynamo.Vec2{X: dx, Y: dy}
	s.hasCursor = true
}

func (s *Session) ClearCursor() {
	s.hasCursor = false
}

// Cursor returns the pointer offset and whether one is set.
func (s *Session) Cursor() (dynamo.Vec2, bool) { return s.cursor, s.hasCursor }

// Launch fires the rocket toward the angle of (dx, dy) from the reference
// body. It may be called in any rocket state.
func (s *Session) Launch(dx, dy float64) error {
	if s.err != nil {
		return s.err
	}
	if s.ref < 0 {
		return fmt.Errorf("launch from %q: %w", s.cfg.ReferenceBody, dynamo.ErrUnknownBody)
	}
	angle := math.Atan2(dy, dx)
	s.rocket.Pos, s.rocket.Vel = s.launchState(angle)
	s.rocket.State = dynamo.Active

	s.log.Info().
		Str("from", s.bodies[s.ref].Name).
		Float64("angle", angle).
		Float64("speed", s.rocket.Vel.Norm()).
		Int("step", s.step).
		Msg("launched")
	s.meters.Launch(context.Background())
	return nil
}

func (s *Session) launchState(angle float64) (pos, vel dynamo.Vec2) {
	ref := &s.bodies[s.ref]
	cos, sin := math.Cos(angle), math.Sin(angle)
	pos = dynamo.Vec2{
		X: ref.Pos.X + cos*ref.Pos.X*launchOffset,
		Y: ref.Pos.Y + sin*ref.Pos.Y*launchOffset,
	}
	dv := s.cfg.Rocket.Impulse * s.cfg.Dt * s.cfg.Dt / s.cfg.Rocket.Mass
	vel = ref.Vel.Add(dynamo.Polar(angle, dv))
	return pos, vel
}

// Preview simulates a hypothetical launch at the current cursor angle on a
// scratch copy of the bodies and returns the rocket's world-space path:
// the launch point followed by one point per step. It returns nil without
// a cursor or reference body. A collision in the scratch copy ends the
// path early.
func (s *Session) Preview() []dynamo.Vec2 {
	if !s.hasCursor || s.ref < 0 {
		return nil
	}
	return s.preview(math.Atan2(s.cursor.Y, s.cursor.X))
}

func (s *Session) preview(angle float64) []dynamo.Vec2 {
	if len(s.scratch) != len(s.bodies) {
		s.scratch = make(dynamo.Bodies, len(s.bodies))
	}
	copy(s.scratch, s.bodies)
	if s.scratchInteg == nil {
		s.scratchInteg = physics.New(s.integ.Tuning())
	}

	probe := dynamo.Projectile{Mass: s.rocket.Mass, State: dynamo.Active}
	probe.Pos, probe.Vel = s.launchState(angle)

	n := s.cfg.PreviewSteps()
	path := make([]dynamo.Vec2, 0, n+1)
	path = append(path, probe.Pos)
	for i := 0; i < n; i++ {
		if _, err := s.scratchInteg.Step(s.scratch, s.primary, physics.Probe{Projectile: &probe}, s.cfg.Dt); err != nil {
			s.log.Debug().Err(err).Int("preview_step", i).Msg("preview cut short")
			break
		}
		path = append(path, probe.Pos)
	}
	return path
}

func (s *Session) Bodies() dynamo.Bodies     { return s.bodies }
func (s *Session) Rocket() dynamo.Projectile { return s.rocket }
func (s *Session) Scale() render.RenderScale { return s.scale }
func (s *Session) Step() int                 { return s.step }
func (s *Session) Primary() int              { return s.primary }
func (s *Session) Reference() int            { return s.ref }
func (s *Session) Barycenter() dynamo.Vec2   { return s.barycenter }
func (s *Session) Config() config.Config     { return s.cfg }
func (s *Session) Err() error                { return s.err }
