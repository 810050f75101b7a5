// Package client talks to the Soulara Auth API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the
//     /users endpoints: Login, Register, profile read and update, password
//     change, location update and account deactivation.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that attaches the
//     bearer token from a TokenSource to authenticated calls and reports a
//     401 on those calls to an UnauthorizedHandler.
//
// # Error Handling
//
// A non-2xx response becomes *APIError whose message is the body's
// "message", else its "error", else "An error occurred". A body that is not
// JSON yields the HTTP status text instead. Transport failures wrap
// ErrUnavailable, undecodable success bodies wrap ErrMalformedResponse and a
// 401 also matches ErrUnauthorized via errors.Is.
package client
