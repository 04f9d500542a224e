// Package countdown implements a pausable countdown driven by a frame scheduler.
package countdown

import (
	"time"

	"github.com/verte-zerg/quicktime/internal/frame"
)

// CommitInterval is the minimum running time between two updates of the
// reported time left.
const CommitInterval = 500 * time.Millisecond

// Options configures a Timer.
type Options struct {
	Duration time.Duration
	Running  bool
	// OnFinish is called once each time the timer latches finished.
	OnFinish func()
}

// Timer counts down Duration of running time. Paused intervals are not
// counted. Time left changes in CommitInterval steps.
type Timer struct {
	sched    frame.Scheduler
	duration time.Duration
	running  bool
	onFinish func()

	timeLeft   time.Duration
	finished   bool
	elapsed    time.Duration
	lastCommit time.Duration
	handle     frame.Handle
}

// New returns a Timer. When opts.Running is set it starts polling immediately.
func New(sched frame.Scheduler, opts Options) *Timer {
	d := opts.Duration
	if d < 0 {
		d = 0
	}
	t := &Timer{
		sched:    sched,
		duration: d,
		onFinish: opts.OnFinish,
		timeLeft: d,
	}
	t.SetRunning(opts.Running)
	return t
}

// TimeLeft returns the committed time left, never negative.
func (t *Timer) TimeLeft() time.Duration {
	return t.timeLeft
}

// Finished reports whether the full duration has elapsed since the last reset.
func (t *Timer) Finished() bool {
	return t.finished
}

// Elapsed returns the committed running time since the last reset.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Duration returns the configured duration.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Running reports whether the timer accrues time.
func (t *Timer) Running() bool {
	return t.running
}

// SetRunning starts or pauses the timer. Resuming takes a fresh reference
// sample so the paused interval is not counted; elapsed time is kept.
func (t *Timer) SetRunning(running bool) {
	if running == t.running {
		return
	}
	t.running = running
	t.cancel()
	if running {
		t.poll(t.sched.Now(), true)
	}
}

// SetDuration changes the configured duration. Elapsed time is cleared and
// time left is recomputed from d. A running timer restarts polling from a
// fresh reference sample.
func (t *Timer) SetDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	if d == t.duration {
		return
	}
	t.duration = d
	t.elapsed = 0
	t.timeLeft = d
	t.cancel()
	if t.running {
		t.poll(t.sched.Now(), true)
	}
}

// Reset restores the full duration and clears finished. A running timer
// restarts polling from a fresh reference sample.
func (t *Timer) Reset() {
	t.timeLeft = t.duration
	t.finished = false
	t.elapsed = 0
	t.cancel()
	if t.running {
		t.poll(t.sched.Now(), true)
	}
}

// Close cancels any pending poll. The timer stops accruing time.
func (t *Timer) Close() {
	t.cancel()
	t.running = false
}

func (t *Timer) cancel() {
	if t.handle != 0 {
		t.sched.Cancel(t.handle)
		t.handle = 0
	}
}

func (t *Timer) poll(now time.Duration, first bool) {
	t.handle = 0
	if first {
		t.lastCommit = t.sched.Now()
	}

	if delta := now - t.lastCommit; delta >= CommitInterval {
		t.elapsed += delta
		t.lastCommit = now
		t.timeLeft = max(0, (t.duration - t.elapsed).Round(time.Millisecond))
	}

	if !t.finished && t.elapsed >= t.duration {
		t.finished = true
		if t.onFinish != nil {
			t.onFinish()
		}
	}

	// onFinish may have reset or paused the timer.
	if t.running && t.handle == 0 && t.elapsed < t.duration {
		t.handle = t.sched.Request(func(now time.Duration) {
			t.poll(now, false)
		})
	}
}
