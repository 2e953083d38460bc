package metrics

import (
	"math"

	"github.com/san-kum/orrery/internal/dynamo"
)

// Metric observes the body set after each step.
type Metric interface {
	Name() string
	Observe(bs dynamo.Bodies, step int)
	Value() float64
	Reset()
}

// TotalEnergy returns kinetic plus pairwise potential energy. Coincident
// pairs are skipped.
func TotalEnergy(bs dynamo.Bodies) float64 {
	var ke, pe float64
	for i := range bs {
		v := bs[i].Vel.Norm()
		ke += 0.5 * bs[i].Mass * v * v
		for j := i + 1; j < len(bs); j++ {
			d := bs[j].Pos.Sub(bs[i].Pos).Norm()
			if d == 0 {
				continue
			}
			pe -= dynamo.G * bs[i].Mass * bs[j].Mass / d
		}
	}
	return ke + pe
}

// Momentum returns the total linear momentum.
func Momentum(bs dynamo.Bodies) dynamo.Vec2 {
	var p dynamo.Vec2
	for i := range bs {
		p = p.Add(bs[i].Vel.Scale(bs[i].Mass))
	}
	return p
}

type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bs dynamo.Bodies, step int) {
	energy := TotalEnergy(bs)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

// Value is the largest relative drift seen so far.
func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks how far total momentum wanders from its first
// observed value, relative to the total momentum magnitude scale
// sum(m*|v|).
type MomentumDrift struct {
	initial  dynamo.Vec2
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(bs dynamo.Bodies, step int) {
	p := Momentum(bs)
	if m.samples == 0 {
		m.initial = p
		for i := range bs {
			m.scale += bs[i].Mass * bs[i].Vel.Norm()
		}
	}
	m.samples++
	if m.scale > 0 {
		m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Norm()/m.scale)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() { *m = MomentumDrift{} }
