// Package eventloop runs timer callbacks one at a time on a single logical
// thread.
//
// Every delayed action in the client (simulated round trips, notification
// lifetimes, redirects) is a one-shot callback registered with AfterFunc.
// Callbacks never run concurrently with each other, so the components they
// touch need no locking as long as user actions are delivered through Post
// or Call as well.
//
// Two drivers exist:
//   - Run executes callbacks as the clock reaches their due time. It is used
//     by the interactive client with a real clock.
//   - Advance moves a fake clock forward and executes due callbacks on the
//     calling goroutine, in due order. Tests use it to get deterministic
//     virtual time.
package eventloop

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type task struct {
	due time.Time
	seq uint64
	fn  func()
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}
func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *taskQueue) Push(x any)   { *q = append(*q, x.(*task)) }
func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// advancer is implemented by clockwork's fake clock.
type advancer interface {
	Advance(d time.Duration)
}

// Loop is a single-threaded scheduler of one-shot callbacks.
type Loop struct {
	clock clockwork.Clock

	mu    sync.Mutex
	queue taskQueue
	seq   uint64
	wake  chan struct{}
}

// New creates a loop reading time from clock.
func New(clock clockwork.Clock) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Loop{clock: clock, wake: make(chan struct{}, 1)}
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// AfterFunc schedules fn to run once, d after now. Callbacks with the same
// due time run in scheduling order. Scheduled callbacks cannot be cancelled;
// callbacks must check whether their effect still applies.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	l.seq++
	heap.Push(&l.queue, &task{due: l.clock.Now().Add(d), seq: l.seq, fn: fn})
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Post schedules fn to run as soon as possible, after callbacks already due.
func (l *Loop) Post(fn func()) {
	l.AfterFunc(0, fn)
}

// Call runs fn on the loop and waits until it has returned. The loop must be
// driven by Run on another goroutine.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of scheduled callbacks that have not run yet.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.Len()
}

// popDue removes and returns the earliest task due at or before limit.
func (l *Loop) popDue(limit time.Time) *task {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.queue.Len() == 0 || l.queue[0].due.After(limit) {
		return nil
	}
	return heap.Pop(&l.queue).(*task)
}

// next returns the due time of the earliest task.
func (l *Loop) next() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.queue.Len() == 0 {
		return time.Time{}, false
	}
	return l.queue[0].due, true
}

// RunDue executes every callback due at the current time, including ones
// scheduled with zero delay by the callbacks themselves, and returns how
// many ran.
func (l *Loop) RunDue() int {
	n := 0
	for {
		t := l.popDue(l.clock.Now())
		if t == nil {
			return n
		}
		t.fn()
		n++
	}
}

// Run executes callbacks as they come due until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunDue()

		var (
			timer clockwork.Timer
			fired <-chan time.Time
		)
		if due, ok := l.next(); ok {
			timer = l.clock.NewTimer(due.Sub(l.clock.Now()))
			fired = timer.Chan()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case <-l.wake:
		case <-fired:
		}

		if timer != nil {
			timer.Stop()
		}
	}
}

// Advance moves the fake clock forward by d, executing every callback that
// comes due on the way in due order. The clock is set to each callback's
// due time before it runs. Advance panics if the loop was not built on a
// fake clock.
func (l *Loop) Advance(d time.Duration) {
	fake, ok := l.clock.(advancer)
	if !ok {
		panic("eventloop: Advance requires a fake clock")
	}

	target := l.clock.Now().Add(d)
	for {
		t := l.popDue(target)
		if t == nil {
			break
		}
		if delta := t.due.Sub(l.clock.Now()); delta > 0 {
			fake.Advance(delta)
		}
		t.fn()
	}

	if delta := target.Sub(l.clock.Now()); delta > 0 {
		fake.Advance(delta)
	}
}
