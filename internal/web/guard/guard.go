package guard

import (
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/soulara/internal/common"
)

type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectHome
)

func (o Outcome) String() string {
	switch o {
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	}
	return "allow"
}

// Decision is the verdict for one request. Location is set for redirects.
type Decision struct {
	Outcome  Outcome
	Location string
	Class    Class
}

type Guard struct {
	Table Table
	// RequireUserID makes a session count only when the userId cookie is
	// present next to authToken.
	RequireUserID bool
	LoginPath     string
	HomePath      string
}

func New() *Guard {
	return &Guard{
		Table:         DefaultTable(),
		RequireUserID: true,
		LoginPath:     common.LoginPath,
		HomePath:      common.HomePath,
	}
}

// Authenticated reports whether the cookies carry a session.
func (g *Guard) Authenticated(cookies []*http.Cookie) bool {
	var token, userID string
	for _, c := range cookies {
		switch c.Name {
		case common.KeyAuthToken:
			if token == "" {
				token = c.Value
			}
		case common.KeyUserID:
			if userID == "" {
				userID = c.Value
			}
		}
	}
	if token == "" {
		return false
	}
	return !g.RequireUserID || userID != ""
}

// Evaluate classifies path and applies the session check. It has no side
// effects.
func (g *Guard) Evaluate(path string, cookies []*http.Cookie) Decision {
	authenticated := g.Authenticated(cookies)
	class := g.Table.Classify(path)

	switch class {
	case AuthOnly:
		if authenticated {
			return Decision{Outcome: RedirectHome, Location: g.HomePath, Class: class}
		}
	case Private:
		if !authenticated {
			return Decision{Outcome: RedirectLogin, Location: g.LoginURL(path), Class: class}
		}
	}
	return Decision{Outcome: Allow, Class: class}
}

// LoginURL is the login page carrying path as the return destination.
func (g *Guard) LoginURL(path string) string {
	return g.LoginPath + "?" + url.Values{"redirect": {path}}.Encode()
}
