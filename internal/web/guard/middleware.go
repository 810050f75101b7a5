package guard

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/soulara/internal/common"
	"github.com/dmitrijs2005/soulara/internal/logging"
)

type contextKey string

const sessionKey contextKey = "session"

// Session is what the guard learned about the visitor.
type Session struct {
	Authenticated bool
	UserID        string
}

func SessionFromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey).(Session)
	return s
}

// Skip reports whether p is served outside the page routes: API calls,
// files under /static/ and the favicon bypass the guard. A page path with a
// file extension is still a page.
func Skip(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/") ||
		strings.HasPrefix(p, "/static/") || p == "/favicon.ico"
}

// Middleware enforces g on page requests with 307 redirects and records the
// Session in the request context.
func Middleware(g *Guard, logger logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Nop{}
	}
	logger = logger.With("module", "guard")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Skip(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			cookies := r.Cookies()
			d := g.Evaluate(r.URL.Path, cookies)
			logger.Debug(r.Context(), "route decision",
				"path", r.URL.Path, "class", d.Class.String(), "outcome", d.Outcome.String())

			if d.Outcome != Allow {
				w.Header().Set("Cache-Control", "no-store")
				http.Redirect(w, r, d.Location, http.StatusTemporaryRedirect)
				return
			}

			s := Session{Authenticated: g.Authenticated(cookies)}
			if c, err := r.Cookie(common.KeyUserID); err == nil && s.Authenticated {
				s.UserID = c.Value
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, s)))
		})
	}
}
