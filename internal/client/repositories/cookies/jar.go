package cookies

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrijs2005/soulara/internal/logging"
)

// Jar exposes a Store as an http.CookieJar scoped to a single origin.
// Cookies for any other host are neither stored nor sent.
type Jar struct {
	store  Store
	host   string
	logger logging.Logger
}

var _ http.CookieJar = (*Jar)(nil)

func NewJar(store Store, origin *url.URL, logger logging.Logger) *Jar {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Jar{
		store:  store,
		host:   strings.ToLower(origin.Hostname()),
		logger: logger.With("module", "cookies.jar"),
	}
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if !j.sameHost(u) {
		return
	}
	ctx := context.Background()
	for _, c := range cookies {
		cp := *c
		if cp.Path == "" || !strings.HasPrefix(cp.Path, "/") {
			cp.Path = defaultPath(u.Path)
		}
		if err := j.store.Set(ctx, &cp); err != nil {
			j.logger.Warn(ctx, "failed to store cookie", "name", c.Name, "error", err)
		}
	}
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	if !j.sameHost(u) {
		return nil
	}
	ctx := context.Background()
	all, err := j.store.List(ctx)
	if err != nil {
		j.logger.Warn(ctx, "failed to list cookies", "error", err)
		return nil
	}

	reqPath := u.Path
	if reqPath == "" {
		reqPath = "/"
	}
	secure := u.Scheme == "https"

	var matched []*http.Cookie
	for _, c := range all {
		if c.Secure && !secure {
			continue
		}
		if pathMatch(reqPath, c.Path) {
			matched = append(matched, c)
		}
	}

	// longer paths first
	sort.SliceStable(matched, func(a, b int) bool {
		return len(matched[a].Path) > len(matched[b].Path)
	})

	out := make([]*http.Cookie, 0, len(matched))
	for _, c := range matched {
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return out
}

func (j *Jar) sameHost(u *url.URL) bool {
	return u != nil && strings.ToLower(u.Hostname()) == j.host
}

// pathMatch implements the path-match rule of RFC 6265 section 5.1.4.
func pathMatch(reqPath, cookiePath string) bool {
	if reqPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(reqPath, cookiePath) {
		return false
	}
	return strings.HasSuffix(cookiePath, "/") || reqPath[len(cookiePath)] == '/'
}

// defaultPath implements RFC 6265 section 5.1.4 default-path.
func defaultPath(p string) string {
	if p == "" || p[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(p, "/")
	if i == 0 {
		return "/"
	}
	return p[:i]
}
