// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, cookie names, route prefixes, and cross-cutting
keys that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session Cookies: The full client-held cookie contract.
  - Routing: Role-scoped path prefixes enforced by the authorization gate.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "sultans-admin"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	//
	// Bulk propagation sweeps page through the whole identity set inside a
	// single request, so this is deliberately generous.
	GlobalRequestTimeout = 60 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// DirectoryRequestTimeout bounds a single call to the identity provider.
	DirectoryRequestTimeout = 10 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// LoginThrottleMaxAttempts is the number of failed logins allowed per window.
	LoginThrottleMaxAttempts = 10

	// LoginThrottleWindow is the sliding window for the login throttle counter.
	LoginThrottleWindow = 15 * time.Minute
)

// # Session Cookies

// The client-held cookie contract. The gate reads these on every request;
// the session manager is the only writer.
const (
	// CookieSessionToken holds the signed login credential.
	CookieSessionToken = "session_token"

	// CookieUserRole mirrors the role resolved at login ("admin", "coordinator", "player").
	CookieUserRole = "user_role"

	// CookieUserEmail mirrors the login email, lower-cased.
	CookieUserEmail = "user_email"

	// CookieActivationCode holds the active license code.
	CookieActivationCode = "activation_code"

	// CookieActivationEnd holds the license end timestamp (RFC 3339).
	CookieActivationEnd = "activation_end"

	// CookieSuperAdmin is the super-admin realm flag ("1").
	CookieSuperAdmin = "super_admin_session"

	// CookieSuperAdminUser records the super-admin username for audit logs.
	CookieSuperAdminUser = "super_admin_username"

	// CookieCodesAdmin is the license-admin realm flag ("ok").
	CookieCodesAdmin = "codes_admin_session"

	// CookieLegacyAdmin is an obsolete cookie name still cleared on logout.
	CookieLegacyAdmin = "admin_session"
)

// Cookie flag values checked by the gate.
const (
	SuperAdminCookieValue = "1"
	CodesAdminCookieValue = "ok"
)

// Session lifetimes.
const (
	// SessionTokenTTL is the lifetime of the login session cookies.
	SessionTokenTTL = 5 * 24 * time.Hour

	// RealmSessionTTL is the lifetime of the super-admin and codes-admin flags.
	RealmSessionTTL = 4 * time.Hour
)

// # Routing

// Role-scoped path prefixes enforced by the authorization gate.
const (
	PathAdminRoot       = "/admin"
	PathCoordinatorRoot = "/coordinator"
	PathMemberRoot      = "/member"
	PathSuperAdminRoot  = "/super-admin"
	PathCodesAdminRoot  = "/activation-admin"
	PathActivation      = "/activation"
	PathLogin           = "/login"
	PathCodesAdminLogin = "/activation-admin/login"
	PathHome            = "/"
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in session token JWTs.
	AuthIssuer = "sultans-admin"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAcceptLang    = "Accept-Language"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Redis Prefixes

const (
	RedisPrefixLoginThrottle = "auth:login_throttle:"
)
