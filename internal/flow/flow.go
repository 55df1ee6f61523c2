// Package flow is the composition root of the authentication surface.
//
// A Flow connects the password input to the strength display, the forms to
// their controllers, and the controllers' outcomes to the notification
// center, the session store and the navigator. It also owns the password
// visibility toggles and the social sign-in buttons, which never go through
// a form controller.
//
// Collaborators that are not configured are treated as absent: a Flow
// without a strength display skips rendering, a Flow without a navigator
// skips navigation.
package flow

import (
	"context"
	"time"

	"github.com/samber/oops"

	"github.com/dmitrijs2005/lostfound/internal/auth/form"
	"github.com/dmitrijs2005/lostfound/internal/auth/strength"
	"github.com/dmitrijs2005/lostfound/internal/auth/validation"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/logging"
	"github.com/dmitrijs2005/lostfound/internal/notify"
)

// User-facing messages.
const (
	LoginSuccessMessage    = "Login successful! Redirecting to your dashboard..."
	RegisterSuccessMessage = "Registration successful! Please check your email to verify your account."
	FailureMessage         = "Authentication failed. Please try again."
)

// Destination identifies a navigation target.
type Destination string

const (
	DestinationListing Destination = "index"
	DestinationLogin   Destination = "login"
)

// StrengthDisplay renders the password strength bar.
type StrengthDisplay interface {
	RenderStrength(b strength.Bucket, fillPercent int)
}

// Navigator moves the user to another destination.
type Navigator interface {
	Navigate(d Destination)
}

// SessionStore persists the signed-in user.
type SessionStore interface {
	SaveLogin(ctx context.Context, user models.UserSummary, token string) error
}

// Notifier shows transient notifications.
type Notifier interface {
	Success(message string) notify.Notification
	Error(message string) notify.Notification
}

// Scheduler runs one-shot delayed callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Timing holds the delays of the flow.
type Timing struct {
	LoginRedirect    time.Duration
	RegisterRedirect time.Duration
	SocialConnect    time.Duration
	SocialRedirect   time.Duration
}

// DefaultTiming returns the stock delays.
func DefaultTiming() Timing {
	return Timing{
		LoginRedirect:    1500 * time.Millisecond,
		RegisterRedirect: 2000 * time.Millisecond,
		SocialConnect:    1500 * time.Millisecond,
		SocialRedirect:   1000 * time.Millisecond,
	}
}

// Option configures a Flow.
type Option func(*Flow)

func WithStrengthDisplay(d StrengthDisplay) Option { return func(f *Flow) { f.display = d } }
func WithNavigator(n Navigator) Option           { return func(f *Flow) { f.nav = n } }
func WithSessionStore(s SessionStore) Option     { return func(f *Flow) { f.store = s } }
func WithTiming(t Timing) Option                 { return func(f *Flow) { f.timing = t } }
func WithLogger(l logging.Logger) Option         { return func(f *Flow) { f.logger = l } }

// WithClock sets the time source handed to the form controllers.
func WithClock(now func() time.Time) Option { return func(f *Flow) { f.now = now } }

// Flow wires the authentication surface together.
type Flow struct {
	sched    Scheduler
	notifier Notifier
	auth     form.Authenticator

	display StrengthDisplay
	nav     Navigator
	store   SessionStore
	timing  Timing
	logger  logging.Logger
	now     func() time.Time

	toggles map[validation.Field]*PasswordToggle
	social  map[Provider]*SocialButton
}

// New creates a Flow. The scheduler, the notifier and the authenticator are
// required.
func New(sched Scheduler, notifier Notifier, auth form.Authenticator, opts ...Option) (*Flow, error) {
	switch {
	case sched == nil:
		return nil, oops.Code("FLOW_DEPENDENCY").Errorf("scheduler is required")
	case notifier == nil:
		return nil, oops.Code("FLOW_DEPENDENCY").Errorf("notifier is required")
	case auth == nil:
		return nil, oops.Code("FLOW_DEPENDENCY").Errorf("authenticator is required")
	}

	f := &Flow{
		sched:    sched,
		notifier: notifier,
		auth:     auth,
		timing:   DefaultTiming(),
		logger:   logging.Nop(),
		now:      time.Now,
		toggles:  map[validation.Field]*PasswordToggle{},
		social:   map[Provider]*SocialButton{},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With("component", "flow")
	for _, p := range Providers {
		f.social[p] = &SocialButton{provider: p, enabled: true}
	}
	return f, nil
}

// PasswordChanged scores password and updates the strength display. An
// empty password resets the bar.
func (f *Flow) PasswordChanged(password string) strength.Score {
	s := strength.Evaluate(password)
	if f.display != nil {
		f.display.RenderStrength(s.Bucket, s.Bucket.FillPercent())
	}
	return s
}

// Form creates the controller of a form whose outcomes are handled by f.
func (f *Flow) Form(layout form.Layout) (*form.Controller, error) {
	return form.NewController(layout, f.auth, f,
		form.WithLogger(f.logger),
		form.WithClock(f.now),
	)
}

// Succeeded handles a successful authentication: a login is persisted, the
// success notification is shown, and navigation follows after a delay.
func (f *Flow) Succeeded(ctx context.Context, req form.Request, out form.Outcome) {
	switch req.Kind {
	case form.KindLogin:
		if f.store != nil {
			if err := f.store.SaveLogin(ctx, out.User, out.Token); err != nil {
				logging.LogError(ctx, f.logger, "persist session", err)
			}
		}
		f.notifier.Success(LoginSuccessMessage)
		f.navigateAfter(ctx, f.timing.LoginRedirect, DestinationListing)
	case form.KindRegister:
		f.notifier.Success(RegisterSuccessMessage)
		f.navigateAfter(ctx, f.timing.RegisterRedirect, DestinationLogin)
	}
}

// Failed shows an error notification and stays on the form.
func (f *Flow) Failed(ctx context.Context, req form.Request, err error) {
	f.logger.Warn(ctx, "authentication failed", "attempt", req.ID.String(), "err", err)
	f.notifier.Error(FailureMessage)
}

func (f *Flow) navigateAfter(ctx context.Context, d time.Duration, dest Destination) {
	if f.nav == nil {
		return
	}
	f.sched.AfterFunc(d, func() {
		f.logger.Info(ctx, "navigating", "destination", string(dest))
		f.nav.Navigate(dest)
	})
}

// Toggle flips the visibility of a password field and returns whether it
// is now shown.
func (f *Flow) Toggle(field validation.Field) bool {
	return f.toggle(field).Toggle()
}

// PasswordVisibility returns the toggle of a password field.
func (f *Flow) PasswordVisibility(field validation.Field) PasswordToggle {
	return *f.toggle(field)
}

func (f *Flow) toggle(field validation.Field) *PasswordToggle {
	t, ok := f.toggles[field]
	if !ok {
		t = &PasswordToggle{}
		f.toggles[field] = t
	}
	return t
}

// PasswordToggle is the show/hide affordance of one password field.
type PasswordToggle struct {
	shown bool
}

// Shown reports whether the password is displayed in clear text.
func (t PasswordToggle) Shown() bool { return t.shown }

// Label is the text of the toggle button.
func (t PasswordToggle) Label() string {
	if t.shown {
		return "Hide"
	}
	return "Show"
}

// Toggle flips the visibility.
func (t *PasswordToggle) Toggle() bool {
	t.shown = !t.shown
	return t.shown
}
