// Package form drives authentication form submissions.
//
// A Controller validates a submission synchronously, and when every rule
// passes hands the credentials to an Authenticator. While the round trip is
// pending the submit affordance is disabled, so at most one submission per
// form is in flight. The outcome is passed to a Continuation, which decides
// what the user sees next.
//
// Controller is not safe for concurrent use; drive it from a single logical
// thread (see package eventloop) together with the Authenticator callbacks.
package form

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/dmitrijs2005/lostfound/internal/auth/validation"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/common"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// State is the submission state of a form.
type State int

const (
	StateIdle State = iota
	StateValidating
	StatePending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request is one accepted submission handed to the Authenticator.
type Request struct {
	ID          ulid.ULID
	Kind        Kind
	Credentials Credentials
}

// Outcome is what a successful authentication exchange returns.
type Outcome struct {
	User  models.UserSummary
	Token string
}

// Authenticator performs the remote authentication exchange. It must call
// done exactly once, on the same logical thread as the Controller.
type Authenticator interface {
	Authenticate(ctx context.Context, req Request, done func(Outcome, error))
}

// Continuation receives the terminal outcome of a submission.
type Continuation interface {
	Succeeded(ctx context.Context, req Request, out Outcome)
	Failed(ctx context.Context, req Request, err error)
}

// View is a snapshot of everything a form renders.
type View struct {
	Kind          Kind
	State         State
	Errors        map[validation.Field]string
	SubmitEnabled bool
	SubmitLabel   string
}

// Listener is notified with the new View after every change.
type Listener func(View)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

func newAttemptID(now time.Time) ulid.ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), entropy)
}

// Controller owns the submission state of one form.
type Controller struct {
	layout Layout
	auth   Authenticator
	cont   Continuation
	logger logging.Logger
	now    func() time.Time

	state     State
	errors    map[validation.Field]string
	attempt   ulid.ULID
	listeners []Listener
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// WithClock sets the time source used for attempt ids.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// NewController creates a Controller for layout.
// Returns an error if the authenticator or the continuation is nil.
func NewController(layout Layout, auth Authenticator, cont Continuation, opts ...ControllerOption) (*Controller, error) {
	if auth == nil {
		return nil, oops.Code("FORM_DEPENDENCY").Errorf("authenticator is required")
	}
	if cont == nil {
		return nil, oops.Code("FORM_DEPENDENCY").Errorf("continuation is required")
	}
	c := &Controller{
		layout: layout,
		auth:   auth,
		cont:   cont,
		logger: logging.Nop(),
		now:    time.Now,
		state:  StateIdle,
		errors: map[validation.Field]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("form", layout.Kind.String())
	return c, nil
}

// Layout returns the form layout.
func (c *Controller) Layout() Layout {
	return c.layout
}

// State returns the current submission state.
func (c *Controller) State() State {
	return c.state
}

// OnChange registers a listener for view changes.
func (c *Controller) OnChange(l Listener) {
	c.listeners = append(c.listeners, l)
}

// View returns the current view.
func (c *Controller) View() View {
	errs := make(map[validation.Field]string, len(c.errors))
	for f, m := range c.errors {
		errs[f] = m
	}
	v := View{
		Kind:          c.layout.Kind,
		State:         c.state,
		Errors:        errs,
		SubmitEnabled: c.state != StatePending,
		SubmitLabel:   c.layout.Kind.SubmitLabel(),
	}
	if c.state == StatePending {
		v.SubmitLabel = LoadingLabel
	}
	return v
}

// ClearErrors removes every displayed field error. Clearing an empty error
// surface is a no-op.
func (c *Controller) ClearErrors() {
	if len(c.errors) == 0 {
		return
	}
	c.errors = map[validation.Field]string{}
	c.emit()
}

// Submit validates creds and, when every rule passes, starts the
// authentication exchange. It returns a *validation.Error for the first
// failing rule, common.ErrSubmissionInProgress while a previous submission
// is pending, and nil once the submission is pending.
func (c *Controller) Submit(ctx context.Context, creds Credentials) error {
	if c.state == StatePending {
		return common.ErrSubmissionInProgress
	}

	c.ClearErrors()
	c.setState(ctx, StateValidating)

	if r := Validate(c.layout, creds); !r.OK() {
		c.errors[r.Field] = r.Message()
		c.logger.Info(ctx, "submission rejected", "field", r.Field, "reason", r.Reason.String())
		c.setState(ctx, StateIdle)
		return r.Err()
	}

	req := Request{ID: newAttemptID(c.now()), Kind: c.layout.Kind, Credentials: creds}
	c.attempt = req.ID
	c.setState(ctx, StatePending)
	c.logger.Info(ctx, "submission accepted", "attempt", req.ID.String())

	c.auth.Authenticate(ctx, req, func(out Outcome, err error) {
		c.resolve(ctx, req, out, err)
	})
	return nil
}

func (c *Controller) resolve(ctx context.Context, req Request, out Outcome, err error) {
	if c.state != StatePending || c.attempt != req.ID {
		c.logger.Warn(ctx, "stale authentication result ignored", "attempt", req.ID.String())
		return
	}

	if err != nil {
		c.setState(ctx, StateFailed)
		logging.LogError(ctx, c.logger, "authentication failed", err)
		c.cont.Failed(ctx, req, err)
		return
	}

	c.setState(ctx, StateSucceeded)
	c.cont.Succeeded(ctx, req, out)
}

func (c *Controller) setState(ctx context.Context, s State) {
	if c.state == s {
		return
	}
	c.logger.Debug(ctx, "submission state changed", "from", c.state.String(), "to", s.String())
	c.state = s
	c.emit()
}

func (c *Controller) emit() {
	if len(c.listeners) == 0 {
		return
	}
	v := c.View()
	for _, l := range c.listeners {
		l(v)
	}
}
