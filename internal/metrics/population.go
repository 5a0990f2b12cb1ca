package metrics

import "github.com/san-kum/gravsim/internal/gravity"

// Population reports the mean number of live projectiles per frame, a
// measure of how much the cannons are firing.
type Population struct {
	name    string
	sum     float64
	samples int
	bodies  int
}

func NewPopulation() *Population {
	return &Population{name: "projectiles"}
}

func (p *Population) Name() string {
	return p.name
}

func (p *Population) Observe(f gravity.Frame) {
	p.sum += float64(len(f.Projectiles))
	p.bodies = len(f.Bodies)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

// Bodies is the body count of the last frame.
func (p *Population) Bodies() int { return p.bodies }

func (p *Population) Reset() {
	p.sum = 0
	p.samples = 0
	p.bodies = 0
}
