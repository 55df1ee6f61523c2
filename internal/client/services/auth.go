// Package services contains the client-side stand-ins for remote services.
//
// SimulatedAuthenticator plays the role of the authentication backend: it
// resolves every request after a fixed delay and always succeeds. It never
// talks to the network.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/lostfound/internal/auth/form"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// DefaultAuthDelay is the simulated round trip time.
const DefaultAuthDelay = 1500 * time.Millisecond

// Scheduler runs one-shot delayed callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Profile is the demo identity returned when the credentials carry no name.
type Profile struct {
	Name   string
	Avatar string
}

// SimulatedAuthenticator implements form.Authenticator without a backend.
type SimulatedAuthenticator struct {
	sched   Scheduler
	delay   time.Duration
	tokens  *TokenIssuer
	profile Profile
	logger  logging.Logger
}

// NewSimulatedAuthenticator creates an authenticator resolving after delay.
// A nil logger discards output.
func NewSimulatedAuthenticator(sched Scheduler, delay time.Duration, tokens *TokenIssuer, profile Profile, logger logging.Logger) *SimulatedAuthenticator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &SimulatedAuthenticator{
		sched:   sched,
		delay:   delay,
		tokens:  tokens,
		profile: profile,
		logger:  logger.With("component", "authenticator"),
	}
}

// Authenticate schedules the simulated exchange. The only possible failure
// is a token signing error.
func (a *SimulatedAuthenticator) Authenticate(ctx context.Context, req form.Request, done func(form.Outcome, error)) {
	a.logger.Debug(ctx, "authentication requested", "attempt", req.ID.String(), "kind", req.Kind.String())

	a.sched.AfterFunc(a.delay, func() {
		user := a.summary(req.Credentials)
		token, err := a.tokens.Issue(user.Email, user.Name)
		if err != nil {
			done(form.Outcome{}, err)
			return
		}
		a.logger.Debug(ctx, "authentication resolved", "attempt", req.ID.String())
		done(form.Outcome{User: user, Token: token}, nil)
	})
}

func (a *SimulatedAuthenticator) summary(c form.Credentials) models.UserSummary {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name == "" {
		name = a.profile.Name
	}
	return models.UserSummary{
		Name:   name,
		Email:  c.Email,
		Avatar: a.profile.Avatar,
	}
}
