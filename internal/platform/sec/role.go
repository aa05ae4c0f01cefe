// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to a directory identity.
//
// The super-admin and codes-admin realms are NOT roles: they are separate
// fixed-credential trust roots with their own cookie flags and never appear
// on a directory identity.
type Role string

const (
	// Manages coordinator/player accounts and the castle registry
	RoleAdmin Role = "admin"

	// Runs war scheduling and attendance tracking
	RoleCoordinator Role = "coordinator"

	// Registers attendance for their own castle
	RolePlayer Role = "player"
)

// Valid reports whether the role is one of the three known directory roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RolePlayer:
		return true
	}
	return false
}

// Subordinate reports whether the role is owned by an admin account
// (coordinator or player).
func (r Role) Subordinate() bool {
	return r == RoleCoordinator || r == RolePlayer
}

// HomePath returns the portal root for the role, used for post-login
// redirects and the login-page bounce.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleCoordinator:
		return "/coordinator"
	case RolePlayer:
		return "/member"
	default:
		return "/"
	}
}
