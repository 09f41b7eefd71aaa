package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/authgate/authgate/internal/auth"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Service banner
	r.Get("/", s.handleRoot)

	r.Route("/api", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authenticateMiddleware)

			r.Get("/users/current", s.handleCurrentUser)

			r.With(s.requireRole(auth.RoleAdmin)).
				Get("/admin", s.handleAdminOnly)

			r.With(s.requireRole(auth.RoleAdmin, auth.RoleModerator)).
				Get("/moderator", s.handleModeratorOnly)

			r.With(s.requireRole(auth.RoleAdmin)).
				Get("/audit", s.handleListAuditLogs)
		})
	})

	return r
}

// handleRoot returns the service banner.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	//nolint:errcheck // Best-effort write to response
	w.Write([]byte("REST API Authentication and Authorization"))
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "Service healthy", map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
