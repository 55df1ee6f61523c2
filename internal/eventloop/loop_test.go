package eventloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newFakeLoop() (*Loop, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	return New(clock), clock
}

func TestAdvance_RunsInDueOrder(t *testing.T) {
	l, _ := newFakeLoop()
	var got []string

	l.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	l.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	l.AfterFunc(200*time.Millisecond, func() { got = append(got, "b") })

	l.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 2, l.Pending())

	l.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, l.Pending())
}

func TestAdvance_SameDueTimeKeepsSchedulingOrder(t *testing.T) {
	l, _ := newFakeLoop()
	var got []int
	for i := range 5 {
		l.AfterFunc(10*time.Millisecond, func() { got = append(got, i) })
	}

	l.Advance(10 * time.Millisecond)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestAdvance_ClockAtDueTimeDuringCallback(t *testing.T) {
	l, clock := newFakeLoop()
	start := clock.Now()
	var seen time.Duration

	l.AfterFunc(1500*time.Millisecond, func() { seen = l.Now().Sub(start) })
	l.Advance(4 * time.Second)

	assert.Equal(t, 1500*time.Millisecond, seen)
	assert.Equal(t, 4*time.Second, clock.Now().Sub(start))
}

func TestAdvance_CallbacksScheduledDuringAdvance(t *testing.T) {
	l, clock := newFakeLoop()
	start := clock.Now()
	var at []time.Duration

	l.AfterFunc(100*time.Millisecond, func() {
		at = append(at, l.Now().Sub(start))
		l.AfterFunc(100*time.Millisecond, func() {
			at = append(at, l.Now().Sub(start))
		})
		l.Post(func() { at = append(at, l.Now().Sub(start)) })
	})

	l.Advance(time.Second)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}, at)
}

func TestRunDue_OnlyDueCallbacks(t *testing.T) {
	l, _ := newFakeLoop()
	ran := 0
	l.Post(func() { ran++ })
	l.AfterFunc(time.Minute, func() { ran++ })

	assert.Equal(t, 1, l.RunDue())
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, l.Pending())
}

func TestAdvance_PanicsOnRealClock(t *testing.T) {
	l := New(clockwork.NewRealClock())
	require.Panics(t, func() { l.Advance(time.Millisecond) })
}

func TestNew_NilClockIsReal(t *testing.T) {
	l := New(nil)
	assert.WithinDuration(t, time.Now(), l.Now(), time.Second)
}

func TestRun_ExecutesAndStops(t *testing.T) {
	l := New(clockwork.NewRealClock())
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	var runErr error
	go func() {
		defer wg.Done()
		runErr = l.Run(ctx)
	}()

	fired := make(chan string, 2)
	l.AfterFunc(5*time.Millisecond, func() { fired <- "later" })
	l.Post(func() { fired <- "now" })

	for _, want := range []string{"now", "later"} {
		select {
		case got := <-fired:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("callback %q did not run", want)
		}
	}

	cancel()
	wg.Wait()
	assert.ErrorIs(t, runErr, context.Canceled)
}

func TestCall_WaitsForCompletion(t *testing.T) {
	l := New(clockwork.NewRealClock())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Run(ctx)
	}()

	value := 0
	require.NoError(t, l.Call(ctx, func() { value = 42 }))
	assert.Equal(t, 42, value)

	cancel()
	<-done
}

func TestCall_ContextCancelledWithoutDriver(t *testing.T) {
	l, _ := newFakeLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Call(ctx, func() {})
	assert.ErrorIs(t, err, context.Canceled)
}
