// Package models contains client-side data types shared between the flow,
// the simulated authenticator and the session store.
package models

// UserSummary is the user shown in the header once signed in. It is
// persisted as JSON by the session store.
type UserSummary struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Session is the persisted sign-in state.
type Session struct {
	LoggedIn bool
	User     UserSummary
	Token    string
}
