package form

import (
	"github.com/dmitrijs2005/lostfound/internal/auth/validation"
)

// Kind is the variant of an authentication form.
type Kind int

const (
	KindLogin Kind = iota
	KindRegister
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindRegister:
		return "register"
	default:
		return "unknown"
	}
}

// SubmitLabel is the idle label of the form's submit button.
func (k Kind) SubmitLabel() string {
	if k == KindRegister {
		return "Create Account"
	}
	return "Sign In"
}

// LoadingLabel is shown on the submit button while a submission is pending.
const LoadingLabel = "Please wait..."

// Credentials is what the user typed for one submission attempt.
type Credentials struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ConfirmPassword string
	RememberMe      bool
	AcceptedTerms   bool
}

// Layout describes a form: its kind and the optional fields it declares.
// Email and password are always part of a form; fields that are not
// declared are never validated and never reported.
type Layout struct {
	Kind   Kind
	Fields validation.FieldSet
}

// LoginLayout is the sign-in form with a remember-me checkbox.
func LoginLayout() Layout {
	return Layout{
		Kind:   KindLogin,
		Fields: validation.NewFieldSet(validation.FieldEmail, validation.FieldPassword, validation.FieldRememberMe),
	}
}

// RegisterLayout is the registration form declaring the given optional
// fields on top of email and password.
func RegisterLayout(optional ...validation.Field) Layout {
	fields := append([]validation.Field{validation.FieldEmail, validation.FieldPassword}, optional...)
	return Layout{Kind: KindRegister, Fields: validation.NewFieldSet(fields...)}
}

// FullRegisterLayout declares every registration field.
func FullRegisterLayout() Layout {
	return RegisterLayout(
		validation.FieldFirstName,
		validation.FieldLastName,
		validation.FieldConfirmPassword,
		validation.FieldTerms,
	)
}

// Validate runs the rules relevant to the layout in their fixed order and
// stops at the first failure: first name, last name, email, password
// (length, then strength when registering), confirmation, terms.
func Validate(layout Layout, c Credentials) validation.Result {
	var checks []func() validation.Result

	if layout.Kind == KindRegister {
		if layout.Fields.Has(validation.FieldFirstName) {
			checks = append(checks, func() validation.Result {
				return validation.Name(validation.FieldFirstName, c.FirstName)
			})
		}
		if layout.Fields.Has(validation.FieldLastName) {
			checks = append(checks, func() validation.Result {
				return validation.Name(validation.FieldLastName, c.LastName)
			})
		}
	}

	checks = append(checks, func() validation.Result { return validation.Email(c.Email) })

	if layout.Kind == KindRegister {
		checks = append(checks, func() validation.Result { return validation.RegisterPassword(c.Password) })
		if layout.Fields.Has(validation.FieldConfirmPassword) {
			checks = append(checks, func() validation.Result {
				return validation.ConfirmPassword(c.Password, c.ConfirmPassword)
			})
		}
		if layout.Fields.Has(validation.FieldTerms) {
			checks = append(checks, func() validation.Result { return validation.Terms(c.AcceptedTerms) })
		}
	} else {
		checks = append(checks, func() validation.Result { return validation.LoginPassword(c.Password) })
	}

	for _, check := range checks {
		if r := check(); !r.OK() {
			return r
		}
	}
	return validation.Result{}
}
