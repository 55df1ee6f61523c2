// Package common defines sentinel errors and small helpers shared by the
// client packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Submission flow errors.
	ErrSubmissionInProgress = errors.New("submission in progress")
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")

	// Collaborator errors.
	ErrUnknownProvider = errors.New("unknown provider")
	ErrUnknownFilter   = errors.New("unknown filter")
)
