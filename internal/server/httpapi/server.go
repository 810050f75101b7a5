// Package httpapi exposes the member operations as the JSON Auth API used by
// the Soulara client and web front-end.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/dmitrijs2005/soulara/internal/logging"
	"github.com/dmitrijs2005/soulara/internal/netx"
	"github.com/dmitrijs2005/soulara/internal/server/services"
)

type Handler struct {
	users  *services.UserService
	logger logging.Logger
}

// NewRouter mounts the API under /api. Browsers from origins may call it
// with credentials.
func NewRouter(users *services.UserService, origins []string, logger logging.Logger) http.Handler {
	h := &Handler{users: users, logger: logger.With("module", "httpapi")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(netx.RequestLogger(h.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, envelope{Success: true, Message: "ok"})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)
			r.Get("/profile", h.getProfile)
			r.Put("/profile", h.updateProfile)
			r.Put("/location", h.updateLocation)
			r.Put("/change-password", h.changePassword)
			r.Put("/deactivate", h.deactivate)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	return r
}
