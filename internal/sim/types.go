package sim

import (
	"context"
	"time"

	"github.com/san-kum/orrery/internal/dynamo"
)

// Launch schedules a rocket launch before the given step. Angle is in
// radians from the reference body.
type Launch struct {
	Step  int
	Angle float64
}

type Config struct {
	Steps int
	// SampleEvery writes every n-th step to the sinks. The final step is
	// always written.
	SampleEvery int
	Launches    []Launch
}

// Event is something noteworthy that happened during a run.
type Event struct {
	Step   int
	Kind   string
	Detail string
}

const (
	EventLaunch    = "launch"
	EventHit       = "hit"
	EventCollision = "collision"
)

// Observer is told about every event as it happens.
type Observer interface {
	OnEvent(ctx context.Context, ev Event)
}

type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) OnEvent(ctx context.Context, ev Event) { f(ctx, ev) }

type Result struct {
	StepsTaken int
	Metrics    map[string]float64
	Events     []Event
	// Halt is the error that stopped the simulation early, if any.
	Halt     error
	Rocket   dynamo.Projectile
	Duration time.Duration
}

// Hits returns the bodies the rocket hit, in order.
func (r *Result) Hits() []string {
	var out []string
	for _, ev := range r.Events {
		if ev.Kind == EventHit {
			out = append(out, ev.Detail)
		}
	}
	return out
}
