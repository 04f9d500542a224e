package frame

import (
	"math"
	"time"
)

// Loop calls a function at most once per interval while playing, using a
// Scheduler as its frame source. It starts playing on construction.
type Loop struct {
	sched    Scheduler
	clock    Clock
	interval time.Duration
	fn       func()

	playing bool
	handle  Handle
	closed  bool
	start   time.Time
	lastRun time.Duration
	hasRun  bool
	seconds int
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock sets the wall clock used for SecondsPassed.
func WithClock(c Clock) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// NewLoop starts a loop that runs fn at most once per interval.
func NewLoop(sched Scheduler, interval time.Duration, fn func(), opts ...LoopOption) *Loop {
	l := &Loop{
		sched:    sched,
		clock:    SystemClock,
		interval: interval,
		fn:       fn,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.StartLoop()
	return l
}

// StartLoop resumes a stopped loop. The first frame after a start always
// runs fn. Calling it while playing has no effect.
func (l *Loop) StartLoop() {
	if l.closed || l.playing {
		return
	}
	l.playing = true
	l.start = l.clock.Now()
	l.hasRun = false
	l.handle = l.sched.Request(l.tick)
}

// StopLoop cancels the pending frame and stops scheduling.
func (l *Loop) StopLoop() {
	l.cancel()
	l.playing = false
}

// Close stops the loop for good; StartLoop is ignored afterwards.
func (l *Loop) Close() {
	l.StopLoop()
	l.closed = true
}

// IsPlayingLoop reports whether the loop keeps requesting frames.
func (l *Loop) IsPlayingLoop() bool {
	return l.playing
}

// SecondsPassed returns whole wall-clock seconds since the loop last started,
// as of the latest frame.
func (l *Loop) SecondsPassed() int {
	return l.seconds
}

func (l *Loop) cancel() {
	if l.handle != 0 {
		l.sched.Cancel(l.handle)
		l.handle = 0
	}
}

func (l *Loop) tick(now time.Duration) {
	l.handle = 0
	elapsed := l.clock.Now().Sub(l.start)
	l.seconds = int(math.Round(math.Abs(elapsed.Seconds())))

	if !l.hasRun || now-l.lastRun >= l.interval {
		l.hasRun = true
		l.lastRun = now
		l.fn()
	}

	// fn may have stopped the loop.
	if l.playing && l.handle == 0 {
		l.handle = l.sched.Request(l.tick)
	}
}
