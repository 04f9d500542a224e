// Package confetti renders a short firework of particles after a win.
package confetti

import (
	"math"
	"math/rand"
	"time"

	"github.com/verte-zerg/quicktime/internal/frame"
)

const (
	defaultDuration       = 2 * time.Second
	defaultBurstInterval  = 250 * time.Millisecond
	defaultMotionInterval = 33 * time.Millisecond
	defaultBurstSize      = 6
	defaultLifetime       = 2 * time.Second

	startSpeed = 30.0 // cells per second
	gravity    = 25.0 // rows per second squared
	// Terminal cells are about twice as tall as they are wide.
	cellAspect = 0.5
)

var glyphs = []string{"🦄", "😸"}

// Options configures an Effect. Zero values select the defaults.
type Options struct {
	Duration       time.Duration
	BurstInterval  time.Duration
	MotionInterval time.Duration
	BurstSize      int
	Clock          frame.Clock
	Rand           *rand.Rand
}

// Particle is a single piece of confetti in cell coordinates.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Glyph  string
	Color  int
	TTL    time.Duration
}

// Effect spawns bursts of particles from both sides of the screen for
// Duration, then lets the remaining particles fall out.
type Effect struct {
	sched frame.Scheduler
	opts  Options

	width  int
	height int

	particles []Particle
	bursts    *frame.Loop
	motion    *frame.Loop
	endAt     time.Time
}

// New returns an idle Effect.
func New(sched frame.Scheduler, opts Options) *Effect {
	if opts.Duration <= 0 {
		opts.Duration = defaultDuration
	}
	if opts.BurstInterval <= 0 {
		opts.BurstInterval = defaultBurstInterval
	}
	if opts.MotionInterval <= 0 {
		opts.MotionInterval = defaultMotionInterval
	}
	if opts.BurstSize <= 0 {
		opts.BurstSize = defaultBurstSize
	}
	if opts.Clock == nil {
		opts.Clock = frame.SystemClock
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Effect{sched: sched, opts: opts}
}

// Resize sets the area particles are spawned into.
func (e *Effect) Resize(width, height int) {
	e.width = width
	e.height = height
}

// Fire starts a new firework. Firing while active extends it.
func (e *Effect) Fire() {
	e.endAt = e.opts.Clock.Now().Add(e.opts.Duration)
	if e.bursts == nil {
		e.bursts = frame.NewLoop(e.sched, e.opts.BurstInterval, e.burst, frame.WithClock(e.opts.Clock))
		e.motion = frame.NewLoop(e.sched, e.opts.MotionInterval, e.move, frame.WithClock(e.opts.Clock))
		return
	}
	e.bursts.StartLoop()
	e.motion.StartLoop()
}

// Active reports whether the effect still has work to draw.
func (e *Effect) Active() bool {
	if e.bursts == nil {
		return false
	}
	return e.bursts.IsPlayingLoop() || e.motion.IsPlayingLoop()
}

// Particles returns the live particles.
func (e *Effect) Particles() []Particle {
	return e.particles
}

// Close stops both loops and drops all particles.
func (e *Effect) Close() {
	if e.bursts != nil {
		e.bursts.Close()
		e.motion.Close()
	}
	e.particles = nil
}

func (e *Effect) burst() {
	left := e.endAt.Sub(e.opts.Clock.Now())
	if left <= 0 {
		e.bursts.StopLoop()
		return
	}
	count := int(math.Ceil(float64(e.opts.BurstSize) * float64(left) / float64(e.opts.Duration)))
	e.spawn(count, 0.1, 0.3)
	e.spawn(count, 0.7, 0.9)
}

func (e *Effect) spawn(count int, minX, maxX float64) {
	if e.width <= 0 || e.height <= 0 {
		return
	}
	rnd := e.opts.Rand
	for i := 0; i < count; i++ {
		angle := rnd.Float64() * 2 * math.Pi
		speed := startSpeed * (0.5 + rnd.Float64()/2)
		e.particles = append(e.particles, Particle{
			X:     randomInRange(rnd, minX, maxX) * float64(e.width),
			Y:     (rnd.Float64() - 0.2) * float64(e.height),
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed * cellAspect,
			Glyph: glyphs[rnd.Intn(len(glyphs))],
			Color: rnd.Intn(len(palette)),
			TTL:   defaultLifetime,
		})
	}
}

func (e *Effect) move() {
	dt := e.opts.MotionInterval.Seconds()
	alive := e.particles[:0]
	for _, p := range e.particles {
		p.VY += gravity * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.TTL -= e.opts.MotionInterval
		if p.TTL <= 0 || p.Y >= float64(e.height) {
			continue
		}
		alive = append(alive, p)
	}
	e.particles = alive
	if len(e.particles) == 0 && !e.bursts.IsPlayingLoop() {
		e.motion.StopLoop()
	}
}

func randomInRange(rnd *rand.Rand, min, max float64) float64 {
	return rnd.Float64()*(max-min) + min
}
