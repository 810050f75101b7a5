// Package cli provides the interactive Soulara command-line client.
//
// It wires configuration, the local session storage (SQLite durable storage
// and cookie store), the Auth API client and the session services behind a
// small REPL. On start the stored session is restored; afterwards the member
// can sign up, sign in and out, edit the profile and visit pages of the web
// front-end with the session cookies attached.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
