package loop

import (
	"context"
	"time"

	"github.com/san-kum/gravsim/internal/gravity"
	"go.uber.org/zap"
)

// Input is what a frontend hands the session between ticks.
type Input struct {
	Intent       gravity.Intent
	Spawns       []gravity.SpawnRequest
	GravityDelta float64
	TogglePause  bool
}

// merge folds in into p. Fire and the one-shot fields accumulate; the
// steering state follows the latest input.
func (p *Input) merge(in Input) {
	p.Intent.Fire = p.Intent.Fire || in.Intent.Fire
	p.Intent.Steer = in.Intent.Steer
	p.Intent.Cursor = in.Intent.Cursor
	p.Spawns = append(p.Spawns, in.Spawns...)
	p.GravityDelta += in.GravityDelta
	p.TogglePause = p.TogglePause != in.TogglePause
}

// Status is published after every batch of ticks.
type Status struct {
	Frame   gravity.Frame
	Last    gravity.TickReport
	Ticks   int
	Paused  bool
	Dropped time.Duration
}

// Session owns a world on the goroutine that calls Run. Frontends never
// touch the world; they Submit input and read Status from Frames.
type Session struct {
	world    *gravity.World
	log      *zap.Logger
	acc      *Accumulator
	interval time.Duration
	paused   bool

	inputs chan Input
	frames chan Status
}

// NewSession ticks w in real time at its Params().Dt, waking every
// interval to run the ticks that are due.
func NewSession(w *gravity.World, interval time.Duration, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	step := time.Duration(w.Params().Dt * float64(time.Second))
	return &Session{
		world:    w,
		log:      log,
		acc:      NewAccumulator(step),
		interval: interval,
		inputs:   make(chan Input, 64),
		frames:   make(chan Status, 1),
	}
}

// Submit queues in for the next batch. It never blocks; input arriving
// while the queue is full is dropped and reported as false.
func (s *Session) Submit(in Input) bool {
	select {
	case s.inputs <- in:
		return true
	default:
		s.log.Warn("session input dropped", zap.Int("spawns", len(in.Spawns)))
		return false
	}
}

// Frames delivers the latest status. Stale statuses are replaced, not
// queued.
func (s *Session) Frames() <-chan Status { return s.frames }

// Run ticks the world until ctx is done. Ticks never overlap since they
// all run on this goroutine.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var pending Input
	last := time.Now()
	s.publish(Status{Frame: s.world.Frame()})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-s.inputs:
			pending.merge(in)
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			s.publish(s.batch(&pending, s.acc.Advance(elapsed)))
		}
	}
}

func (s *Session) batch(p *Input, due int) Status {
	for _, req := range p.Spawns {
		if err := s.world.Enqueue(req); err != nil {
			s.log.Debug("spawn not queued", zap.String("label", req.Label), zap.Error(err))
		}
	}
	p.Spawns = p.Spawns[:0]

	if p.GravityDelta != 0 {
		g := s.world.Params().G + p.GravityDelta
		if err := s.world.SetGravity(g); err != nil {
			s.log.Debug("gravity change rejected", zap.Float64("g", g), zap.Error(err))
		}
		p.GravityDelta = 0
	}
	if p.TogglePause {
		s.paused = !s.paused
		p.TogglePause = false
	}

	st := Status{Paused: s.paused, Dropped: s.acc.Dropped()}
	if s.paused {
		// presses while paused are discarded
		p.Intent.Fire = false
	} else {
		// with no tick due, a fire press waits for the next one
		for i := 0; i < due; i++ {
			st.Last = s.world.Tick(p.Intent)
			st.Ticks++
			// fire is an edge: one volley per press
			p.Intent.Fire = false
		}
	}
	st.Frame = s.world.Frame()
	return st
}

func (s *Session) publish(st Status) {
	select {
	case s.frames <- st:
		return
	default:
	}
	select {
	case <-s.frames:
	default:
	}
	s.frames <- st
}
