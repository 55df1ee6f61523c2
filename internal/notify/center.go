// Package notify manages the single transient notification shown to the
// user.
//
// At most one notification exists at a time. Showing a new one removes the
// previous instance immediately, without its fade-out. A notification goes
// through Appearing → Visible → Dismissing → Absent; the Dismissing step is
// entered either when its duration elapses or on a manual Dismiss.
//
// Center is not safe for concurrent use. All calls and all scheduler
// callbacks must run on the same logical thread (see package eventloop).
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// Default timings.
const (
	DefaultDuration    = 3000 * time.Millisecond
	DefaultFade        = 300 * time.Millisecond
	DefaultAppearDelay = 10 * time.Millisecond
)

// Kind tags a notification for styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// State is the lifecycle position of a notification instance.
type State int

const (
	StateAbsent State = iota
	StateAppearing
	StateVisible
	StateDismissing
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateAppearing:
		return "appearing"
	case StateVisible:
		return "visible"
	case StateDismissing:
		return "dismissing"
	default:
		return "unknown"
	}
}

// Notification is a snapshot of one notification instance.
type Notification struct {
	ID       uuid.UUID
	Message  string
	Kind     Kind
	Duration time.Duration
	State    State
}

// Visible reports whether the notification is fully shown.
func (n Notification) Visible() bool {
	return n.State == StateVisible
}

// Surface renders notifications.
type Surface interface {
	// Mount adds a new instance in the Appearing state.
	Mount(n Notification)
	// Update reports a state change of a mounted instance.
	Update(n Notification)
	// Unmount removes an instance.
	Unmount(id uuid.UUID)
}

// Scheduler runs one-shot delayed callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Option configures a Center.
type Option func(*Center)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Center) { c.logger = l }
}

// WithDefaultDuration sets the lifetime used when Show gets no duration.
func WithDefaultDuration(d time.Duration) Option {
	return func(c *Center) { c.defaultDuration = d }
}

// WithFade sets the grace period between Dismissing and removal.
func WithFade(d time.Duration) Option {
	return func(c *Center) { c.fade = d }
}

// WithAppearDelay sets the delay between Appearing and Visible.
func WithAppearDelay(d time.Duration) Option {
	return func(c *Center) { c.appear = d }
}

// Center owns the active notification.
type Center struct {
	sched   Scheduler
	surface Surface
	logger  logging.Logger

	defaultDuration time.Duration
	fade            time.Duration
	appear          time.Duration

	current *Notification
}

// NewCenter creates a Center rendering to surface. A nil surface discards
// output.
func NewCenter(sched Scheduler, surface Surface, opts ...Option) *Center {
	c := &Center{
		sched:           sched,
		surface:         surface,
		logger:          logging.Nop(),
		defaultDuration: DefaultDuration,
		fade:            DefaultFade,
		appear:          DefaultAppearDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.surface == nil {
		c.surface = discardSurface{}
	}
	return c
}

// Current returns the active notification, if any.
func (c *Center) Current() (Notification, bool) {
	if c.current == nil {
		return Notification{State: StateAbsent}, false
	}
	return *c.current, true
}

// Success shows a success notification with the default duration.
func (c *Center) Success(message string) Notification {
	return c.Show(KindSuccess, message, 0)
}

// Error shows an error notification with the default duration.
func (c *Center) Error(message string) Notification {
	return c.Show(KindError, message, 0)
}

// Show replaces any active notification with a new one. A non-positive
// duration selects the default.
func (c *Center) Show(kind Kind, message string, duration time.Duration) Notification {
	if duration <= 0 {
		duration = c.defaultDuration
	}

	if old := c.current; old != nil {
		c.current = nil
		old.State = StateAbsent
		c.surface.Unmount(old.ID)
		c.logger.Debug(context.Background(), "notification evicted", "id", old.ID)
	}

	n := &Notification{
		ID:       uuid.New(),
		Message:  message,
		Kind:     kind,
		Duration: duration,
		State:    StateAppearing,
	}
	c.current = n
	c.surface.Mount(*n)
	c.logger.Debug(context.Background(), "notification shown", "id", n.ID, "kind", kind, "duration", duration)

	c.sched.AfterFunc(c.appear, func() {
		if c.current != n || n.State != StateAppearing {
			return
		}
		n.State = StateVisible
		c.surface.Update(*n)
	})

	// The auto-dismiss timer is never cancelled; a manual dismiss or an
	// eviction makes it a no-op through the current-instance check.
	c.sched.AfterFunc(duration, func() {
		if c.current != n {
			return
		}
		c.beginDismiss(n)
	})

	return *n
}

// Dismiss starts the fade-out of the active notification. It is a no-op when
// nothing is shown or the notification is already dismissing.
func (c *Center) Dismiss() {
	if c.current == nil {
		return
	}
	c.beginDismiss(c.current)
}

func (c *Center) beginDismiss(n *Notification) {
	if n.State == StateDismissing {
		return
	}
	n.State = StateDismissing
	c.surface.Update(*n)

	c.sched.AfterFunc(c.fade, func() {
		if c.current != n {
			return
		}
		c.current = nil
		n.State = StateAbsent
		c.surface.Unmount(n.ID)
		c.logger.Debug(context.Background(), "notification removed", "id", n.ID)
	})
}

type discardSurface struct{}

func (discardSurface) Mount(Notification)  {}
func (discardSurface) Update(Notification) {}
func (discardSurface) Unmount(uuid.UUID)   {}
