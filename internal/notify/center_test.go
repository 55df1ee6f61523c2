package notify

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lostfound/internal/eventloop"
)

type event struct {
	op    string
	id    uuid.UUID
	state State
}

// recordingSurface tracks mounted instances and the event log.
type recordingSurface struct {
	events  []event
	mounted map[uuid.UUID]Notification
	maxLive int
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{mounted: map[uuid.UUID]Notification{}}
}

func (s *recordingSurface) Mount(n Notification) {
	s.events = append(s.events, event{"mount", n.ID, n.State})
	s.mounted[n.ID] = n
	if len(s.mounted) > s.maxLive {
		s.maxLive = len(s.mounted)
	}
}

func (s *recordingSurface) Update(n Notification) {
	s.events = append(s.events, event{"update", n.ID, n.State})
	s.mounted[n.ID] = n
}

func (s *recordingSurface) Unmount(id uuid.UUID) {
	s.events = append(s.events, event{"unmount", id, StateAbsent})
	delete(s.mounted, id)
}

func setup(t *testing.T) (*Center, *eventloop.Loop, *recordingSurface) {
	t.Helper()
	loop := eventloop.New(clockwork.NewFakeClock())
	surface := newRecordingSurface()
	return NewCenter(loop, surface), loop, surface
}

func TestShow_Lifecycle(t *testing.T) {
	c, loop, surface := setup(t)

	n := c.Success("Saved")
	assert.Equal(t, StateAppearing, n.State)
	assert.Equal(t, DefaultDuration, n.Duration)
	assert.Equal(t, KindSuccess, n.Kind)

	loop.Advance(DefaultAppearDelay)
	cur, ok := c.Current()
	require.True(t, ok)
	assert.True(t, cur.Visible())

	loop.Advance(DefaultDuration - DefaultAppearDelay - time.Millisecond)
	cur, _ = c.Current()
	assert.Equal(t, StateVisible, cur.State)

	loop.Advance(time.Millisecond)
	cur, _ = c.Current()
	assert.Equal(t, StateDismissing, cur.State)

	loop.Advance(DefaultFade)
	_, ok = c.Current()
	assert.False(t, ok)

	assert.Equal(t, []event{
		{"mount", n.ID, StateAppearing},
		{"update", n.ID, StateVisible},
		{"update", n.ID, StateDismissing},
		{"unmount", n.ID, StateAbsent},
	}, surface.events)
	assert.Zero(t, loop.Pending())
}

func TestDismiss_ManualThenLateAutoDismissIsNoop(t *testing.T) {
	c, loop, surface := setup(t)

	n := c.Show(KindSuccess, "Hi", time.Second)
	loop.Advance(100 * time.Millisecond)

	c.Dismiss()
	cur, _ := c.Current()
	assert.Equal(t, StateDismissing, cur.State)

	loop.Advance(DefaultFade)
	_, ok := c.Current()
	require.False(t, ok)

	// the auto-dismiss timer still fires at 1s and must do nothing
	before := len(surface.events)
	loop.Advance(2 * time.Second)
	assert.Len(t, surface.events, before)
	assert.Empty(t, surface.mounted)

	assert.Equal(t, event{"unmount", n.ID, StateAbsent}, surface.events[len(surface.events)-1])
}

func TestDismiss_NoopWhenAbsentOrDismissing(t *testing.T) {
	c, loop, surface := setup(t)

	c.Dismiss()
	assert.Empty(t, surface.events)

	c.Success("Hi")
	loop.Advance(DefaultAppearDelay)
	c.Dismiss()
	c.Dismiss()
	loop.Advance(DefaultFade)

	var dismissing, unmounts int
	for _, e := range surface.events {
		if e.state == StateDismissing {
			dismissing++
		}
		if e.op == "unmount" {
			unmounts++
		}
	}
	assert.Equal(t, 1, dismissing)
	assert.Equal(t, 1, unmounts)

	c.Dismiss()
	assert.Equal(t, 1, unmounts)
}

func TestShow_EvictsPreviousImmediately(t *testing.T) {
	c, loop, surface := setup(t)

	first := c.Success("first")
	loop.Advance(100 * time.Millisecond)

	second := c.Success("second")

	_, firstMounted := surface.mounted[first.ID]
	assert.False(t, firstMounted, "first must be gone before the second becomes visible")
	for _, e := range surface.events {
		if e.id == first.ID {
			assert.NotEqual(t, StateDismissing, e.state, "evicted instance must not fade out")
		}
	}

	loop.Advance(DefaultAppearDelay)
	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, cur.ID)
	assert.True(t, cur.Visible())
	assert.Equal(t, 1, surface.maxLive)

	// the first instance's timers expire without touching the second
	loop.Advance(DefaultDuration - 100*time.Millisecond - DefaultAppearDelay)
	cur, _ = c.Current()
	assert.Equal(t, second.ID, cur.ID)
	assert.Equal(t, StateVisible, cur.State)
}

func TestShow_EvictDuringDismissing(t *testing.T) {
	c, loop, surface := setup(t)

	first := c.Success("first")
	loop.Advance(DefaultAppearDelay)
	c.Dismiss()

	second := c.Error("second")
	loop.Advance(DefaultFade)

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, cur.ID)
	assert.Equal(t, KindError, cur.Kind)
	_, firstMounted := surface.mounted[first.ID]
	assert.False(t, firstMounted)
}

func TestOptions(t *testing.T) {
	loop := eventloop.New(clockwork.NewFakeClock())
	c := NewCenter(loop, nil,
		WithDefaultDuration(time.Second),
		WithFade(50*time.Millisecond),
		WithAppearDelay(0),
	)

	n := c.Success("quick")
	assert.Equal(t, time.Second, n.Duration)

	loop.Advance(0)
	cur, _ := c.Current()
	assert.True(t, cur.Visible())

	loop.Advance(time.Second + 50*time.Millisecond)
	_, ok := c.Current()
	assert.False(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "visible", StateVisible.String())
	assert.Equal(t, "unknown", State(9).String())
}
