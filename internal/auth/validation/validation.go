// Package validation holds the per-field rules of the sign-in and
// registration forms.
//
// Every rule is pure and returns a Result for exactly one field. Rules never
// look at other fields except where the rule is defined over two values
// (password confirmation).
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/lostfound/internal/auth/strength"
)

// Rule thresholds.
const (
	MinLoginPasswordLength    = 6
	MinRegisterPasswordLength = 8
	MinRegisterStrength       = 50
	MinNameLength             = 2
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field identifies a logical form field.
type Field string

const (
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldTerms           Field = "terms"
	FieldRememberMe      Field = "rememberMe"
)

// Label is the human-readable name of the field.
func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First name"
	case FieldLastName:
		return "Last name"
	case FieldEmail:
		return "Email"
	case FieldPassword:
		return "Password"
	case FieldConfirmPassword:
		return "Confirm password"
	case FieldTerms:
		return "Terms"
	case FieldRememberMe:
		return "Remember me"
	default:
		return string(f)
	}
}

// FieldSet is the set of fields a form declares.
type FieldSet map[Field]struct{}

// NewFieldSet builds a set from fields.
func NewFieldSet(fields ...Field) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

// Has reports whether f is declared.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Reason enumerates why a field was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonInvalidEmail
	ReasonPasswordTooShort
	ReasonPasswordTooWeak
	ReasonNameTooShort
	ReasonPasswordMismatch
	ReasonTermsNotAccepted
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonInvalidEmail:
		return "invalid_email"
	case ReasonPasswordTooShort:
		return "password_too_short"
	case ReasonPasswordTooWeak:
		return "password_too_weak"
	case ReasonNameTooShort:
		return "name_too_short"
	case ReasonPasswordMismatch:
		return "password_mismatch"
	case ReasonTermsNotAccepted:
		return "terms_not_accepted"
	default:
		return "unknown"
	}
}

// Result is the outcome of one rule for one field: either valid or invalid
// with a reason, never both.
type Result struct {
	Field  Field
	Reason Reason
	// Min is the threshold a length rule was evaluated against.
	Min int
}

// Valid returns a passing result for f.
func Valid(f Field) Result {
	return Result{Field: f}
}

// Invalid returns a failing result for f.
func Invalid(f Field, r Reason) Result {
	return Result{Field: f, Reason: r}
}

// OK reports whether the field passed.
func (r Result) OK() bool {
	return r.Reason == ReasonNone
}

// Message is the user-facing text of a failing result, empty when valid.
func (r Result) Message() string {
	switch r.Reason {
	case ReasonInvalidEmail:
		return "Please enter a valid email address"
	case ReasonPasswordTooShort:
		return fmt.Sprintf("Password must be at least %d characters", r.Min)
	case ReasonPasswordTooWeak:
		return "Please create a stronger password"
	case ReasonNameTooShort:
		return fmt.Sprintf("%s must be at least %d characters", r.Field.Label(), r.Min)
	case ReasonPasswordMismatch:
		return "Passwords do not match"
	case ReasonTermsNotAccepted:
		return "You must accept the terms and conditions"
	default:
		return ""
	}
}

// Err converts a failing result into an *Error, and a passing one into nil.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Field: r.Field, Reason: r.Reason, Message: r.Message()}
}

// Error is a field validation failure. It is always recoverable: the form
// shows Message next to Field and does not proceed.
type Error struct {
	Field   Field
	Reason  Reason
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Email checks a local@domain.tld shaped address.
func Email(v string) Result {
	if !emailRegex.MatchString(v) {
		return Invalid(FieldEmail, ReasonInvalidEmail)
	}
	return Valid(FieldEmail)
}

// LoginPassword checks the sign-in password length.
func LoginPassword(v string) Result {
	if utf8.RuneCountInString(v) < MinLoginPasswordLength {
		return Result{Field: FieldPassword, Reason: ReasonPasswordTooShort, Min: MinLoginPasswordLength}
	}
	return Valid(FieldPassword)
}

// RegisterPassword checks length first and strength second; only the first
// failure is reported.
func RegisterPassword(v string) Result {
	if utf8.RuneCountInString(v) < MinRegisterPasswordLength {
		return Result{Field: FieldPassword, Reason: ReasonPasswordTooShort, Min: MinRegisterPasswordLength}
	}
	if strength.Evaluate(v).Value < MinRegisterStrength {
		return Result{Field: FieldPassword, Reason: ReasonPasswordTooWeak, Min: MinRegisterStrength}
	}
	return Valid(FieldPassword)
}

// Name checks a first or last name after trimming surrounding whitespace.
func Name(f Field, v string) Result {
	if utf8.RuneCountInString(strings.TrimSpace(v)) < MinNameLength {
		return Result{Field: f, Reason: ReasonNameTooShort, Min: MinNameLength}
	}
	return Valid(f)
}

// ConfirmPassword checks that confirm equals password exactly.
func ConfirmPassword(password, confirm string) Result {
	if password != confirm {
		return Invalid(FieldConfirmPassword, ReasonPasswordMismatch)
	}
	return Valid(FieldConfirmPassword)
}

// Terms checks that the terms were accepted.
func Terms(accepted bool) Result {
	if !accepted {
		return Invalid(FieldTerms, ReasonTermsNotAccepted)
	}
	return Valid(FieldTerms)
}
