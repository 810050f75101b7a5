// Package cookies is the client's cookie store for the web front-end origin.
// It plays the part of the browser cookie jar: the session adapter writes the
// session cookies here and Jar presents them to net/http.
package cookies

import (
	"context"
	"net/http"
	"time"
)

// Store keeps cookies keyed by (name, path). Expired cookies are never
// returned. A cookie written with MaxAge < 0 or an Expires in the past is
// deleted instead of stored.
type Store interface {
	Set(ctx context.Context, c *http.Cookie) error
	// Get returns the live cookie with the given name and path, or (nil, nil).
	Get(ctx context.Context, name, path string) (*http.Cookie, error)
	Delete(ctx context.Context, name, path string) error
	List(ctx context.Context) ([]*http.Cookie, error)
}

// normalize fills the store defaults and resolves MaxAge into Expires.
// It reports false when the cookie is already expired.
func normalize(c *http.Cookie, now time.Time) (*http.Cookie, bool) {
	n := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Expires:  c.Expires,
		SameSite: c.SameSite,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
	if n.Path == "" {
		n.Path = "/"
	}
	switch {
	case c.MaxAge < 0:
		return n, false
	case c.MaxAge > 0:
		n.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	}
	if !n.Expires.IsZero() && !n.Expires.After(now) {
		return n, false
	}
	return n, true
}

func expired(c *http.Cookie, now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}
