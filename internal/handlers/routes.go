package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)

	// Feed and monitoring stay outside the request timeout
	if h.Feed != nil {
		r.Get("/ws", h.Feed)
	}
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}
	if h.Health != nil {
		r.Get("/healthz", h.Health)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Betting API (public)
		r.Get("/api/race", h.handleGetRace)
		r.Post("/api/bets", h.handlePlaceBet)
		r.Get("/api/bets/{id}", h.handleGetBet)
		r.Get("/api/bets/{id}/ticket", h.handleBetTicket)
		r.Get("/api/dividends", h.handleGetDividends)

		// Auth routes (public)
		r.Post("/api/admin/login", h.handleLogin)
		r.Post("/api/admin/logout", h.handleLogout)

		// Steward API (protected)
		r.Group(func(r chi.Router) {
			r.Use(h.Auth.RequireAuthAPI)
			r.Post("/api/admin/result", h.handleDeclareResult)
			r.Get("/api/admin/bets", h.handleListBets)
		})
	})

	return r
}
