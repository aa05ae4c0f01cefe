// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

The access gate runs after the ambient middleware and in front of every
application route. Health probes are mounted outside the gate so the
orchestrator can reach them without cookies.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/omar46/sultans-admin/internal/activation"
	"github.com/omar46/sultans-admin/internal/admins"
	"github.com/omar46/sultans-admin/internal/auth"
	"github.com/omar46/sultans-admin/internal/castle"
	"github.com/omar46/sultans-admin/internal/gate"
	"github.com/omar46/sultans-admin/internal/members"
	"github.com/omar46/sultans-admin/internal/platform/config"
	"github.com/omar46/sultans-admin/internal/platform/constants"
	"github.com/omar46/sultans-admin/internal/platform/middleware"
	"github.com/omar46/sultans-admin/internal/war"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the login flows: directory sessions plus the two
	// fixed-credential realms.
	Auth *auth.Handler

	// Activation handles the activation wall and the codes-admin console.
	Activation *activation.Handler

	// Members handles the admin's subordinate account management.
	Members *members.Handler

	// Admins handles the super-admin realm.
	Admins *admins.Handler

	// Castle handles the castle roster.
	Castle *castle.Handler

	// War handles the war calendar, schedules, and attendance.
	War *war.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups behind the access gate.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, accessGate *gate.Gate, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application Routes
	// Everything below passes through the gate: activation wall first,
	// then the per-area role checks.
	r.Group(func(app chi.Router) {
		app.Use(accessGate.Middleware())

		// Login, logout, and the realm credential endpoints.
		h.Auth.RegisterRoutes(app)

		// Shareable attendance signup link, open to any activated visitor.
		h.War.RegisterSignupRoutes(app)

		// The activation wall itself.
		app.Route(constants.PathActivation, h.Activation.RegisterRoutes)

		// License management console, guarded by the codes-admin realm.
		app.Route(constants.PathCodesAdminRoot, func(codes chi.Router) {
			h.Auth.RegisterCodesAdminRoutes(codes)
			h.Activation.RegisterAdminRoutes(codes)
		})

		// Admin area: member management plus the server roster snapshot.
		app.Route(constants.PathAdminRoot, func(admin chi.Router) {
			h.Members.RegisterRoutes(admin)
			h.Castle.RegisterRoutes(admin)
		})

		// Coordinator area: castle roster and war management.
		app.Route(constants.PathCoordinatorRoot, func(coordinator chi.Router) {
			h.Castle.RegisterRoutes(coordinator)
			h.War.RegisterRoutes(coordinator)
		})

		// Member portal.
		app.Route(constants.PathMemberRoot, func(member chi.Router) {
			h.Auth.RegisterMemberRoutes(member)
		})

		// Super-admin realm.
		app.Route(constants.PathSuperAdminRoot, func(super chi.Router) {
			h.Auth.RegisterSuperAdminRoutes(super)
			h.Admins.RegisterRoutes(super)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
