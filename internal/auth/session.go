// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package auth implements the dashboard's cookie-based authentication.

It covers three independent credential realms:

  - The directory-backed login session (session_token JWT plus the
    user_role and user_email convenience cookies).
  - The super-admin realm, a fixed-credential session for the page that
    manages admin accounts.
  - The codes-admin realm, a fixed-credential session for the activation
    code management page.

Architecture:

  - CookieManager: the only code that reads or writes auth cookies.
  - Service: orchestrates login (directory lookup, ownership checks,
    password verification, throttling) and logout.
  - RealmService: the two fixed-credential realms.

Sessions are stateless: the server stores nothing per login, so logout is
purely cookie deletion.
*/
package auth

import (
	"net/http"
	"time"

	"github.com/omar46/sultans-admin/internal/platform/constants"
	"github.com/omar46/sultans-admin/internal/platform/sec"
)

// CookieManager reads and writes every auth cookie. It is the only place
// in the codebase that knows cookie names, encodings, and lifetimes.
type CookieManager struct {
	tokens *sec.TokenService
	secure bool
	now    func() time.Time
}

// NewCookieManager creates a cookie manager. secure controls the Secure
// attribute and must be true in production. now may be nil for the wall
// clock.
func NewCookieManager(tokens *sec.TokenService, secure bool, now func() time.Time) *CookieManager {
	if now == nil {
		now = time.Now
	}
	return &CookieManager{tokens: tokens, secure: secure, now: now}
}

// set writes one cookie with the shared attributes: HttpOnly, root path,
// and an explicit max age in seconds.
func (manager *CookieManager) set(writer http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clear expires one cookie immediately.
func (manager *CookieManager) clear(writer http.ResponseWriter, name string) {
	manager.set(writer, name, "", -1)
}

// ── Reading ──

// Read decodes the full request auth state from the cookie jar. It never
// fails: missing or malformed cookies simply leave the corresponding
// field empty. Called once per request by the authorization gate.
func (manager *CookieManager) Read(request *http.Request) *sec.RequestAuth {
	auth := &sec.RequestAuth{}

	if cookie, err := request.Cookie(constants.CookieSessionToken); err == nil && cookie.Value != "" {
		if claims, err := manager.tokens.VerifySessionToken(cookie.Value); err == nil {
			auth.Session = &sec.Session{
				Credential: cookie.Value,
				Role:       sec.Role(claims.Role),
				Email:      sec.NormalizeEmail(claims.Email),
			}
		}
	}

	if codeCookie, err := request.Cookie(constants.CookieActivationCode); err == nil && codeCookie.Value != "" {
		if endCookie, err := request.Cookie(constants.CookieActivationEnd); err == nil {
			if end, err := time.Parse(time.RFC3339, endCookie.Value); err == nil {
				auth.Activation = &sec.Activation{Code: codeCookie.Value, End: end}
			}
		}
	}

	if cookie, err := request.Cookie(constants.CookieSuperAdmin); err == nil {
		auth.SuperAdmin = cookie.Value == constants.SuperAdminCookieValue
	}
	if cookie, err := request.Cookie(constants.CookieCodesAdmin); err == nil {
		auth.CodesAdmin = cookie.Value == constants.CodesAdminCookieValue
	}

	return auth
}

// ── Login session ──

// SetLogin issues a signed session token and writes the login cookie
// trio. The role and email cookies carry the same lifetime as the token.
func (manager *CookieManager) SetLogin(writer http.ResponseWriter, uid, email string, role sec.Role) error {
	token, err := manager.tokens.IssueSessionToken(uid, email, role, constants.SessionTokenTTL)
	if err != nil {
		return err
	}

	maxAge := int(constants.SessionTokenTTL.Seconds())
	manager.set(writer, constants.CookieSessionToken, token, maxAge)
	manager.set(writer, constants.CookieUserRole, string(role), maxAge)
	manager.set(writer, constants.CookieUserEmail, sec.NormalizeEmail(email), maxAge)
	return nil
}

// ClearLogin deletes the login cookie trio plus the legacy admin_session
// cookie some browsers still carry from the old dashboard.
func (manager *CookieManager) ClearLogin(writer http.ResponseWriter) {
	manager.clear(writer, constants.CookieSessionToken)
	manager.clear(writer, constants.CookieUserRole)
	manager.clear(writer, constants.CookieUserEmail)
	manager.clear(writer, constants.CookieLegacyAdmin)
}

// ── Activation ──

// SetActivation writes the activation cookie pair. Both cookies live
// exactly as long as the license has left, so an expired license means
// expired cookies without any server-side bookkeeping.
func (manager *CookieManager) SetActivation(writer http.ResponseWriter, code string, end time.Time) {
	remaining := int(end.Sub(manager.now()).Seconds())
	if remaining <= 0 {
		manager.ClearActivation(writer)
		return
	}
	manager.set(writer, constants.CookieActivationCode, code, remaining)
	manager.set(writer, constants.CookieActivationEnd, end.UTC().Format(time.RFC3339), remaining)
}

// ClearActivation deletes the activation cookie pair.
func (manager *CookieManager) ClearActivation(writer http.ResponseWriter) {
	manager.clear(writer, constants.CookieActivationCode)
	manager.clear(writer, constants.CookieActivationEnd)
}

// ── Fixed-credential realms ──

// SetSuperAdmin writes the super-admin realm session.
func (manager *CookieManager) SetSuperAdmin(writer http.ResponseWriter, username string) {
	maxAge := int(constants.RealmSessionTTL.Seconds())
	manager.set(writer, constants.CookieSuperAdmin, constants.SuperAdminCookieValue, maxAge)
	manager.set(writer, constants.CookieSuperAdminUser, username, maxAge)
}

// ClearSuperAdmin deletes the super-admin realm session.
func (manager *CookieManager) ClearSuperAdmin(writer http.ResponseWriter) {
	manager.clear(writer, constants.CookieSuperAdmin)
	manager.clear(writer, constants.CookieSuperAdminUser)
}

// SetCodesAdmin writes the codes-admin realm session.
func (manager *CookieManager) SetCodesAdmin(writer http.ResponseWriter) {
	manager.set(writer, constants.CookieCodesAdmin, constants.CodesAdminCookieValue, int(constants.RealmSessionTTL.Seconds()))
}

// ClearCodesAdmin deletes the codes-admin realm session.
func (manager *CookieManager) ClearCodesAdmin(writer http.ResponseWriter) {
	manager.clear(writer, constants.CookieCodesAdmin)
}
