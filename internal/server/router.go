// Package server provides the HTTP surface of the actifly beta API: the chi
// router, middleware, and the signup/stats/admin/contact handlers.
package server

import (
	"log/slog"
	"net/http"

	"github.com/actifly/api/internal/config"
	"github.com/actifly/api/internal/mail"
	"github.com/actifly/api/internal/signup"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router wires the HTTP routes to the signup registry and mail sender.
type Router struct {
	router   *chi.Mux
	cfg      *config.Config
	registry *signup.Registry
	mailer   mail.Sender
	logger   *slog.Logger
}

// NewRouter creates a new chi router with routes and middleware configured.
// mailer may be nil when no mail API key is configured; the contact endpoint
// then reports a misconfiguration.
func NewRouter(cfg *config.Config, registry *signup.Registry, mailer mail.Sender, log *slog.Logger) *Router {
	r := chi.NewRouter()
	router := &Router{
		router:   r,
		cfg:      cfg,
		registry: registry,
		mailer:   mailer,
		logger:   log,
	}

	r.Use(middleware.Recoverer)
	r.Use(router.requestIDMiddleware)
	r.Use(router.requestLoggingMiddleware)
	r.Use(corsMiddleware)
	if cfg.RequestTimeout > 0 {
		r.Use(router.requestTimeoutMiddleware(cfg.RequestTimeout))
	}

	r.Get("/health", router.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/beta-signup", router.handleBetaSignup)
		r.Get("/beta-stats", router.handleBetaStats)
		r.Get("/beta-admin", router.handleBetaAdmin)
		r.Post("/contact", router.handleContact)
	})

	return router
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Handler returns an http.Handler for the router.
func (r *Router) Handler() http.Handler {
	return r.router
}
