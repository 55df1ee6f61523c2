package flow

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/lostfound/internal/common"
)

// Provider is a social sign-in provider.
type Provider string

const (
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
)

// Providers lists the supported providers in button order.
var Providers = []Provider{ProviderGoogle, ProviderFacebook}

// ParseProvider converts s into a known Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Providers {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownProvider, s)
}

// DisplayName is the provider name as shown to the user.
func (p Provider) DisplayName() string {
	return cases.Title(language.English).String(string(p))
}

// SocialButton is the state of one provider button.
type SocialButton struct {
	provider Provider
	enabled  bool
}

// Enabled reports whether the button accepts clicks.
func (b SocialButton) Enabled() bool { return b.enabled }

// Label is the text on the button.
func (b SocialButton) Label() string {
	if !b.enabled {
		return "Connecting to " + b.provider.DisplayName() + "..."
	}
	return "Continue with " + b.provider.DisplayName()
}

// SocialButton returns the state of the button of p.
func (f *Flow) SocialButton(p Provider) (SocialButton, bool) {
	b, ok := f.social[p]
	if !ok {
		return SocialButton{}, false
	}
	return *b, true
}

// SignInWith runs the social sign-in of p: the button is disabled, a success
// notification follows the connect delay, and navigation to the listing
// follows the redirect delay. The button is enabled again once navigation
// has happened.
func (f *Flow) SignInWith(ctx context.Context, p Provider) error {
	b, ok := f.social[p]
	if !ok {
		return fmt.Errorf("%w: %q", common.ErrUnknownProvider, string(p))
	}
	if !b.enabled {
		return common.ErrSubmissionInProgress
	}

	b.enabled = false
	f.logger.Info(ctx, "social authentication requested", "provider", string(p))

	f.sched.AfterFunc(f.timing.SocialConnect, func() {
		f.notifier.Success(p.DisplayName() + " authentication successful!")
		f.sched.AfterFunc(f.timing.SocialRedirect, func() {
			if f.nav != nil {
				f.logger.Info(ctx, "navigating", "destination", string(DestinationListing))
				f.nav.Navigate(DestinationListing)
			}
			b.enabled = true
		})
	})
	return nil
}
