package sim

import (
	"context"
	"math"
	"sync"

	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/session"
)

// Factory builds a fresh session for one member of a sweep.
type Factory func() (*session.Session, error)

// Outcome is one launch angle of a sweep.
type Outcome struct {
	Angle  float64
	Result *Result
	Err    error
}

// Sweep launches the rocket at n evenly spaced angles, each in its own
// session and goroutine, and runs every session for steps steps. Sessions
// are never shared between goroutines.
type Sweep struct {
	factory Factory
	log     zerolog.Logger
	n       int
}

func NewSweep(factory Factory, n int, log zerolog.Logger) *Sweep {
	return &Sweep{factory: factory, n: n, log: log}
}

func (s *Sweep) Run(ctx context.Context, steps int) []Outcome {
	out := make([]Outcome, s.n)

	var wg sync.WaitGroup
	for i := 0; i < s.n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			angle := 2 * math.Pi * float64(idx) / float64(s.n)
			out[idx].Angle = angle
			sess, err := s.factory()
			if err != nil {
				out[idx].Err = err
				return
			}
			r := New(sess, s.log)
			out[idx].Result, out[idx].Err = r.Run(ctx, Config{
				Steps:    steps,
				Launches: []Launch{{Step: 0, Angle: angle}},
			})
		}(i)
	}

	wg.Wait()
	return out
}
