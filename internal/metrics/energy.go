package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/gravity"
)

// KineticEnergy sums ½·m·v² over the bodies of f. Projectiles are left out
// since they exert no force and would only add noise.
func KineticEnergy(f gravity.Frame) float64 {
	ke := 0.0
	for _, b := range f.Bodies {
		ke += 0.5 * b.Mass * (b.Vel.X*b.Vel.X + b.Vel.Y*b.Vel.Y)
	}
	return ke
}

// PotentialEnergy is the potential matching the 1/d force law:
// U = Σ G·mi·mj·ln(d) over body pairs, with d floored like the force.
func PotentialEnergy(f gravity.Frame) float64 {
	minDist := f.MinDistance
	if minDist <= 0 {
		minDist = gravity.DefaultMinDistance
	}
	pe := 0.0
	for i := 0; i < len(f.Bodies); i++ {
		for j := i + 1; j < len(f.Bodies); j++ {
			a, b := f.Bodies[i], f.Bodies[j]
			d := math.Max(a.Pos.Dist(b.Pos), minDist)
			pe += f.G * a.Mass * b.Mass * math.Log(d)
		}
	}
	return pe
}

func TotalEnergy(f gravity.Frame) float64 {
	return KineticEnergy(f) + PotentialEnergy(f)
}

// Energy reports the mean total energy over the observed frames.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
	last        float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f gravity.Frame) {
	e.last = TotalEnergy(f)
	e.totalEnergy += e.last
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

// Last is the energy of the most recent frame.
func (e *Energy) Last() float64 { return e.last }

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
	e.last = 0
}

// EnergyDrift tracks the largest relative departure from the first observed
// energy. The integrator is not symplectic, so some drift is expected; a
// spawn or a kill changes the set of bodies and shows up as a jump.
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

func (e *EnergyDrift) Observe(f gravity.Frame) {
	energy := TotalEnergy(f)

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

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
