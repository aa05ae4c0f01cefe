// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package sec

import (
	"strings"
	"time"
)

// # Typed Session Values

// Session is the decoded login session carried by the session_token,
// user_role, and user_email cookies.
//
// # Why a value object?
//
// The raw cookies are parsed exactly once per request (by the session
// manager, invoked from the authorization gate) into this struct, which is
// then passed down the call chain via context. Handlers and services never
// touch cookie strings.
type Session struct {
	// Credential is the raw signed session token.
	Credential string
	// Role is the role cookie value. The gate trusts this for routing;
	// services re-check it before mutations.
	Role Role
	// Email is the login email, lower-cased.
	Email string
}

// Activation is the decoded license activation state carried by the
// activation_code and activation_end cookies.
type Activation struct {
	// Code is the license code entered on the activation form.
	Code string
	// End is the license end timestamp encoded at activation time.
	End time.Time
}

// Expired reports whether the cookie-encoded license window has passed.
func (a *Activation) Expired(now time.Time) bool {
	return !a.End.After(now)
}

// RequestAuth bundles everything the cookie jar says about a request.
//
// Session and Activation are nil when the corresponding cookies are missing
// or malformed. SuperAdmin and CodesAdmin reflect the two fixed-credential
// realm flags, which are independent of the directory-backed session.
type RequestAuth struct {
	Session    *Session
	Activation *Activation
	SuperAdmin bool
	CodesAdmin bool
}

// Activated reports whether a syntactically valid, unexpired activation
// cookie pair is present. This is the gate-level check only; the license
// store is consulted separately by the activation status endpoint.
func (ra *RequestAuth) Activated(now time.Time) bool {
	return ra.Activation != nil && !ra.Activation.Expired(now)
}

// HasRole reports whether a login session with the given role is present.
func (ra *RequestAuth) HasRole(role Role) bool {
	return ra.Session != nil && ra.Session.Role == role
}

// NormalizeEmail lower-cases and trims an email for case-insensitive compare.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
