// Package common contains constants and sentinel errors shared by the
// Soulara client, web front-end and Auth API. Callers should use errors.Is
// to match the error values.
package common

import "time"

// Keys of the persisted session record. The same names are used in durable
// storage and as cookie names, the web front-end reads the cookies.
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
	KeyUserID    = "userId"
)

// SessionKeys lists every persisted session key.
var SessionKeys = []string{KeyAuthToken, KeyUser, KeyUserID}

// SessionCookieTTL is the lifetime of the session cookies.
const SessionCookieTTL = 7 * 24 * time.Hour

// AuthorizationHeader carries "Bearer <token>" on authenticated API calls.
const AuthorizationHeader = "Authorization"

const BearerPrefix = "Bearer "

// LoginPath and HomePath are the redirect targets of the route guard and
// the 401 handler.
const (
	LoginPath = "/login"
	HomePath  = "/"
)
