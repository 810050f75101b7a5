// Package web serves the Soulara pages. Every page request passes the
// route guard before a handler sees it.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/soulara/internal/logging"
	"github.com/dmitrijs2005/soulara/internal/netx"
	"github.com/dmitrijs2005/soulara/internal/web/config"
	"github.com/dmitrijs2005/soulara/internal/web/guard"
)

type Server struct {
	config *config.Config
	guard  *guard.Guard
	pages  pages
	logger logging.Logger
}

func New(cfg *config.Config, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Nop{}
	}
	p, err := loadPages()
	if err != nil {
		return nil, err
	}

	g := guard.New()
	g.RequireUserID = cfg.RequireUserID

	return &Server{
		config: cfg,
		guard:  g,
		pages:  p,
		logger: logger.With("module", "web"),
	}, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(netx.RequestLogger(s.logger))
	r.Use(guard.Middleware(s.guard, s.logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	r.Get("/", s.page("home", "Find your soulmate"))
	r.Get("/about", s.page("about", "About"))
	r.Get("/contact", s.page("contact", "Contact"))
	r.Get("/login", s.page("login", "Log in"))
	r.Get("/signup", s.page("signup", "Sign up"))

	r.Get("/profile", s.page("profile", "Profile"))
	r.Get("/profile/{id}", s.page("profile", "Profile"))
	r.Get("/find-match", s.page("find-match", "Find a match"))
	r.Get("/chat", s.page("chat", "Messages"))
	r.Get("/chat/{id}", s.page("chat", "Messages"))
	r.Get("/admin", s.page("admin", "Administration"))
	r.Get("/admin/*", s.page("admin", "Administration"))
	r.Get("/dashboard/*", s.page("dashboard", "Dashboard"))

	r.NotFound(s.page("not-found", "Page not found"))

	return r
}

func (s *Server) page(name, title string) http.HandlerFunc {
	status := http.StatusOK
	if name == "not-found" {
		status = http.StatusNotFound
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{
			Title:    title,
			Path:     r.URL.Path,
			Redirect: localPath(r.URL.Query().Get("redirect")),
			MemberID: chi.URLParam(r, "id"),
			Session:  guard.SessionFromContext(r.Context()),
		}
		if err := s.pages.render(w, status, name, data); err != nil {
			s.logger.Error(r.Context(), "failed to render page", "page", name, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return netx.ListenAndServe(ctx, srv, s.config.ShutdownTimeout, s.logger)
}
