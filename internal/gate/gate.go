// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package gate implements the request-level authorization gate.

Every request passes through one state machine before any handler runs:

 1. Static assets pass through untouched.
 2. Outside the activation flow, a missing or expired activation cookie
    pair redirects to the activation page. This includes the home page:
    an unactivated site shows nothing but the activation flow.
 3. Role-prefixed areas require the matching role cookie; the login page
    bounces already-authenticated users to their role home; the codes
    admin area requires its own realm session.

Every refusal is a redirect. The gate never renders an error page and
never serves partial protected content.
*/
package gate

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/omar46/sultans-admin/internal/license"
	"github.com/omar46/sultans-admin/internal/platform/constants"
	"github.com/omar46/sultans-admin/internal/platform/ctxutil"
	"github.com/omar46/sultans-admin/internal/platform/respond"
	"github.com/omar46/sultans-admin/internal/platform/sec"
)

// CookieReader decodes the request's auth cookies. Implemented by the
// session cookie manager.
type CookieReader interface {
	Read(request *http.Request) *sec.RequestAuth
}

// CodeChecker re-validates an activation code against the license store.
// Implemented by the activation evaluator.
type CodeChecker interface {
	Evaluate(ctx context.Context, code string) (*license.Code, error)
}

// Gate is the configured authorization gate.
type Gate struct {
	cookies CookieReader
	checker CodeChecker
	now     func() time.Time
}

// New creates a gate. checker may be nil to skip the per-request license
// store re-check on admin pages. now may be nil for the wall clock.
func New(cookies CookieReader, checker CodeChecker, now func() time.Time) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{cookies: cookies, checker: checker, now: now}
}

// isStaticAsset reports whether the path serves static content.
func isStaticAsset(path string) bool {
	return strings.HasPrefix(path, "/static") ||
		strings.HasPrefix(path, "/assets") ||
		path == "/favicon.ico"
}

// isActivationFlow reports whether the path belongs to the activation
// flow itself. Both the activation wall and the codes-admin area must
// stay reachable when the site is unactivated — otherwise nobody could
// ever activate it.
func isActivationFlow(path string) bool {
	return strings.HasPrefix(path, constants.PathActivation)
}

// Middleware returns the gate as chi middleware.
func (gate *Gate) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			path := request.URL.Path

			// ── 1. Static Assets ──
			if isStaticAsset(path) {
				next.ServeHTTP(writer, request)
				return
			}

			// Decode cookies once; everything downstream reads the
			// typed auth state from context.
			auth := gate.cookies.Read(request)
			request = request.WithContext(ctxutil.WithAuth(request.Context(), auth))
			now := gate.now()

			// ── 2. Activation Wall ──
			if !isActivationFlow(path) && !auth.Activated(now) {
				respond.Redirect(writer, request, constants.PathActivation)
				return
			}

			// ── 3. Role Areas ──
			switch {
			case strings.HasPrefix(path, constants.PathAdminRoot):
				if !auth.HasRole(sec.RoleAdmin) {
					respond.Redirect(writer, request, constants.PathLogin)
					return
				}
				// Admin pages re-check the code against the store, so a
				// code revoked after activation locks the site again.
				if gate.checker != nil && auth.Activation != nil {
					if _, err := gate.checker.Evaluate(request.Context(), auth.Activation.Code); err != nil {
						respond.Redirect(writer, request, constants.PathActivation)
						return
					}
				}

			case strings.HasPrefix(path, constants.PathCoordinatorRoot):
				if !auth.HasRole(sec.RoleCoordinator) {
					respond.Redirect(writer, request, constants.PathLogin)
					return
				}

			case strings.HasPrefix(path, constants.PathMemberRoot):
				if !auth.HasRole(sec.RolePlayer) {
					respond.Redirect(writer, request, constants.PathLogin)
					return
				}

			case path == constants.PathLogin:
				if auth.Session != nil && auth.Session.Role.Valid() {
					respond.Redirect(writer, request, auth.Session.Role.HomePath())
					return
				}

			case strings.HasPrefix(path, constants.PathCodesAdminRoot):
				if !auth.CodesAdmin && path != constants.PathCodesAdminLogin {
					respond.Redirect(writer, request, constants.PathCodesAdminLogin)
					return
				}
			}

			next.ServeHTTP(writer, request)
		})
	}
}
