// Package frame provides a per-frame callback scheduler and a throttled frame loop.
package frame

import "time"

// Callback runs on a frame. now is the frame timestamp measured from the
// scheduler origin.
type Callback func(now time.Duration)

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Scheduler requests and cancels next-frame callbacks.
type Scheduler interface {
	Now() time.Duration
	Request(cb Callback) Handle
	Cancel(h Handle)
}

type pending struct {
	handle Handle
	cb     Callback
}

// Queue is a Scheduler whose clock only moves when it is told to. The TUI
// advances it from frame messages; tests step it directly.
//
// Queue is not safe for concurrent use.
type Queue struct {
	now     time.Duration
	last    Handle
	queued  []pending
	live    map[Handle]struct{}
	running bool
}

// NewQueue returns an empty Queue at time zero.
func NewQueue() *Queue {
	return &Queue{live: map[Handle]struct{}{}}
}

// Now implements Scheduler.
func (q *Queue) Now() time.Duration {
	return q.now
}

// Request implements Scheduler.
func (q *Queue) Request(cb Callback) Handle {
	q.last++
	h := q.last
	q.queued = append(q.queued, pending{handle: h, cb: cb})
	q.live[h] = struct{}{}
	return h
}

// Cancel implements Scheduler. Cancelling an unknown or already-run handle
// is a no-op.
func (q *Queue) Cancel(h Handle) {
	delete(q.live, h)
}

// Pending reports how many callbacks are waiting for the next frame.
func (q *Queue) Pending() int {
	return len(q.live)
}

// Sync moves the clock to now without running callbacks. Earlier times are ignored.
func (q *Queue) Sync(now time.Duration) {
	if now > q.now {
		q.now = now
	}
}

// Advance moves the clock to now and runs one frame: every callback that was
// requested before the frame started and has not been cancelled, in request
// order. Callbacks requested during the frame wait for the next one.
func (q *Queue) Advance(now time.Duration) {
	if q.running {
		return
	}
	q.Sync(now)
	frame := q.queued
	q.queued = nil
	q.running = true
	defer func() { q.running = false }()
	for _, p := range frame {
		if _, ok := q.live[p.handle]; !ok {
			continue
		}
		delete(q.live, p.handle)
		p.cb(q.now)
	}
}

// Step runs count frames, moving the clock forward by dt before each one.
func (q *Queue) Step(count int, dt time.Duration) {
	for i := 0; i < count; i++ {
		q.Advance(q.now + dt)
	}
}
