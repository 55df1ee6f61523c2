// Package cli provides the interactive lostfound terminal client.
//
// It wires configuration, the session database, the authentication flow and
// the catalog listing into a REPL. The flow runs on an event loop goroutine;
// the REPL hands work to it with Loop.Call and waits for the navigation or
// failure that ends each command.
//
// Commands:
//   - login / register: fill in and submit the forms
//   - social <google|facebook>: social sign-in
//   - toggle: show or hide passwords while typing
//   - catalog [all|lost|found]: list items
//   - session / logout: inspect or forget the stored session
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
