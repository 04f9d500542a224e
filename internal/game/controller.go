// Package game wires keyboard input, the sequence reducer and the countdown
// timer into one playable round.
package game

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/quicktime/internal/countdown"
	"github.com/verte-zerg/quicktime/internal/frame"
	"github.com/verte-zerg/quicktime/internal/generator"
	"github.com/verte-zerg/quicktime/internal/input"
	"github.com/verte-zerg/quicktime/internal/sequence"
)

// DefaultDuration is the time allowed to enter a sequence.
const DefaultDuration = 3 * time.Second

// SeedSource draws shuffle seeds.
type SeedSource interface {
	Seed() int
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Duration time.Duration
	Sequence []sequence.Symbol
	Seeds    SeedSource
	// OnWin is called once per transition into PASS.
	OnWin  func()
	Logger *zerolog.Logger
}

// Snapshot is a read-only view of the round for rendering.
type Snapshot struct {
	State    sequence.State
	TimeLeft time.Duration
	Duration time.Duration
	Finished bool
	Running  bool
}

// Controller owns the round state and its timer. It is driven from a single
// goroutine: key events and scheduler frames must not run concurrently.
type Controller struct {
	state       sequence.State
	timer       *countdown.Timer
	seeds       SeedSource
	onWin       func()
	log         zerolog.Logger
	unsubscribe func()
}

// New creates a controller with its timer already running.
func New(sched frame.Scheduler, opts Options) *Controller {
	if opts.Duration == 0 {
		opts.Duration = DefaultDuration
	}
	if len(opts.Sequence) == 0 {
		opts.Sequence = sequence.DefaultSequence()
	}
	if opts.Seeds == nil {
		opts.Seeds = generator.New()
	}
	c := &Controller{
		state: sequence.NewState(opts.Sequence),
		seeds: opts.Seeds,
		onWin: opts.OnWin,
		log:   zerolog.Nop(),
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	c.timer = countdown.New(sched, countdown.Options{
		Duration: opts.Duration,
		OnFinish: c.handleTimeout,
	})
	c.timer.SetRunning(true)
	return c
}

// Start subscribes the controller to src. Close undoes it.
func (c *Controller) Start(src input.Source) {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.unsubscribe = src.Subscribe(c.HandleKey)
}

// Close unsubscribes from the key source and stops the timer.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.timer.Close()
}

// HandleKey applies one key press. Enter starts a new round; any other key is
// matched against the sequence while the round is playing.
func (c *Controller) HandleKey(key string) {
	if key == input.KeyEnter {
		c.restart()
		return
	}
	if c.state.Status != sequence.Playing {
		return
	}
	c.dispatch(sequence.Input(sequence.Symbol(key)))
}

// Snapshot returns the current round and timer state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:    c.state,
		TimeLeft: c.timer.TimeLeft(),
		Duration: c.timer.Duration(),
		Finished: c.timer.Finished(),
		Running:  c.timer.Running(),
	}
}

func (c *Controller) restart() {
	seed := c.seeds.Seed()
	c.dispatch(sequence.Reset())
	c.dispatch(sequence.Shuffle(seed))
	c.timer.Reset()
	c.timer.SetRunning(true)
	c.log.Debug().
		Int("seed", seed).
		Strs("sequence", symbolStrings(c.state.SequenceToMatch)).
		Msg("round restarted")
}

func (c *Controller) handleTimeout() {
	c.log.Debug().Msg("timer expired")
	c.dispatch(sequence.FailNow())
}

func (c *Controller) dispatch(action sequence.Action) {
	prev := c.state.Status
	c.state = sequence.Reduce(c.state, action)
	if c.state.Status == prev {
		return
	}
	c.log.Debug().
		Str("from", string(prev)).
		Str("status", string(c.state.Status)).
		Int64("time_left_ms", c.timer.TimeLeft().Milliseconds()).
		Msg("status changed")
	if c.state.Status == sequence.Pass {
		c.timer.SetRunning(false)
		if c.onWin != nil {
			c.onWin()
		}
	}
}

func symbolStrings(symbols []sequence.Symbol) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = string(s)
	}
	return out
}
