package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/lostfound/internal/auth/form"
	"github.com/dmitrijs2005/lostfound/internal/auth/validation"
	"github.com/dmitrijs2005/lostfound/internal/catalog"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/common"
	"github.com/dmitrijs2005/lostfound/internal/flow"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirmation = GetConfirmation

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	sess, err := a.store.Load(ctx)
	return err == nil && sess.LoggedIn
}

func (a *App) getStatus() string {
	ctx := context.Background()
	s := string(a.page)
	if user, err := a.store.Current(ctx); err == nil {
		s = user.Name + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// secret reads a password, echoing it when the field's toggle is on.
func (a *App) secret(ctx context.Context, field validation.Field, prompt string) (string, error) {
	var shown bool
	if err := a.loop.Call(ctx, func() { shown = a.flow.PasswordVisibility(field).Shown() }); err != nil {
		return "", err
	}
	if shown {
		return getSimpleText(a.reader, prompt, a.out)
	}
	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (a *App) drain() {
	for {
		select {
		case <-a.nav:
		case <-a.failures:
		default:
			return
		}
	}
}

// await blocks until the pending flow navigates or fails.
func (a *App) await(ctx context.Context) error {
	select {
	case d := <-a.nav:
		a.arrive(ctx, d)
		return nil
	case err := <-a.failures:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) arrive(ctx context.Context, d flow.Destination) {
	a.page = d
	switch d {
	case flow.DestinationListing:
		_, _ = a.listing.Select(ctx, catalog.FilterAll)
	case flow.DestinationLogin:
		a.println("Please sign in with your new account.")
	}
}

// submit hands creds to c on the loop and waits for the outcome. Field
// errors are printed by the form view and are not returned.
func (a *App) submit(ctx context.Context, c *form.Controller, creds form.Credentials) error {
	a.drain()

	var err error
	if callErr := a.loop.Call(ctx, func() { err = c.Submit(ctx, creds) }); callErr != nil {
		return callErr
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return nil
	}
	if err != nil {
		return err
	}
	return a.await(ctx)
}

// Login prompts for credentials and submits the sign-in form.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.secret(ctx, validation.FieldPassword, "Enter password")
	if err != nil {
		return err
	}
	remember, err := getConfirmation(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	return a.submit(ctx, a.login, form.Credentials{Email: email, Password: password, RememberMe: remember})
}

// Register prompts for every registration field, shows the password
// strength and submits the registration form.
func (a *App) Register(ctx context.Context) error {
	var creds form.Credentials
	var err error

	if creds.FirstName, err = getSimpleText(a.reader, "Enter first name", a.out); err != nil {
		return err
	}
	if creds.LastName, err = getSimpleText(a.reader, "Enter last name", a.out); err != nil {
		return err
	}
	if creds.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if creds.Password, err = a.secret(ctx, validation.FieldPassword, "Enter password"); err != nil {
		return err
	}
	if err := a.loop.Call(ctx, func() { a.flow.PasswordChanged(creds.Password) }); err != nil {
		return err
	}
	if creds.ConfirmPassword, err = a.secret(ctx, validation.FieldConfirmPassword, "Confirm password"); err != nil {
		return err
	}
	if creds.AcceptedTerms, err = getConfirmation(a.reader, "Do you accept the terms and conditions?", a.out); err != nil {
		return err
	}

	return a.submit(ctx, a.register, creds)
}

// Social signs in with the named provider.
func (a *App) Social(ctx context.Context, name string) error {
	p, err := flow.ParseProvider(name)
	if err != nil {
		return err
	}
	a.drain()

	var label string
	if callErr := a.loop.Call(ctx, func() {
		if err = a.flow.SignInWith(ctx, p); err == nil {
			b, _ := a.flow.SocialButton(p)
			label = b.Label()
		}
	}); callErr != nil {
		return callErr
	}
	if err != nil {
		return err
	}
	a.println(label)
	return a.await(ctx)
}

// TogglePassword flips password visibility for both password fields.
func (a *App) TogglePassword(ctx context.Context) error {
	var label string
	err := a.loop.Call(ctx, func() {
		a.flow.Toggle(validation.FieldPassword)
		a.flow.Toggle(validation.FieldConfirmPassword)
		label = a.flow.PasswordVisibility(validation.FieldPassword).Label()
	})
	if err != nil {
		return err
	}
	if label == "Hide" {
		a.println("Passwords are now shown while typing")
	} else {
		a.println("Passwords are now hidden while typing")
	}
	return nil
}

// Catalog prints the listing filtered by name.
func (a *App) Catalog(ctx context.Context, name string) error {
	f, err := catalog.ParseFilter(name)
	if err != nil {
		return err
	}
	_, err = a.listing.Select(ctx, f)
	return err
}

// Session prints the stored session.
func (a *App) Session(ctx context.Context) error {
	return PrintSession(ctx, a.store, a.out)
}

// Logout forgets the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	a.page = flow.DestinationLogin
	a.println("Logged out")
	return nil
}

// SessionReader returns the signed-in user.
type SessionReader interface {
	Current(ctx context.Context) (models.UserSummary, error)
}

// PrintSession writes the signed-in user to w.
func PrintSession(ctx context.Context, store SessionReader, w io.Writer) error {
	user, err := store.Current(ctx)
	if errors.Is(err, common.ErrNotLoggedIn) {
		fmt.Fprintln(w, "Not logged in")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Logged in as %s <%s>\n", user.Name, user.Email)
	if user.Avatar != "" {
		fmt.Fprintf(w, "Avatar: %s\n", user.Avatar)
	}
	return nil
}
