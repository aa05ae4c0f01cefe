// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

// Package directory abstracts the user identity provider behind a small
// capability interface.
//
// # Architecture
//
// Every account in the clan (admins, coordinators, players) lives in an
// external user directory. The rest of the application never talks to that
// provider directly — services depend on the [Directory] interface, which
// ships with two implementations:
//
//   - [Client]: HTTP client for the hosted directory service (production).
//   - [Memory]: in-process implementation for development and tests.
//
// # Claims
//
// Role and ownership metadata ride on each account as custom claims. The
// wire keys ("role", "ownerAdminUid", "ownerAdminEmail") are an encoding
// detail confined to this package; callers only ever see the typed
// [Claims] struct.
package directory

import (
	"context"
	"strings"
	"time"

	"github.com/omar46/sultans-admin/internal/platform/sec"
)

// Wire keys for custom claims. Nothing outside this package may depend on
// these strings.
const (
	claimKeyRole       = "role"
	claimKeyOwnerUID   = "ownerAdminUid"
	claimKeyOwnerEmail = "ownerAdminEmail"
)

// Claims carries the role and ownership metadata attached to an account.
//
// OwnerAdminUID and OwnerAdminEmail are empty for admin accounts; for
// coordinator and player accounts they identify the admin who created the
// account.
type Claims struct {
	Role            sec.Role `json:"role"`
	OwnerAdminUID   string   `json:"ownerAdminUid,omitempty"`
	OwnerAdminEmail string   `json:"ownerAdminEmail,omitempty"`
}

// OwnedBy reports whether the claims name the given admin as owner, matching
// by UID or by email. Matching errs toward inclusion: either identifier is
// enough, so accounts with a stale owner email are still caught by UID.
func (c Claims) OwnedBy(adminUID, adminEmail string) bool {
	if adminUID != "" && c.OwnerAdminUID == adminUID {
		return true
	}
	if adminEmail != "" && strings.EqualFold(c.OwnerAdminEmail, adminEmail) {
		return true
	}
	return false
}

// encode converts typed claims to the provider's wire map. Empty ownership
// fields are omitted so admin accounts carry only the role key.
func (c Claims) encode() map[string]any {
	m := map[string]any{claimKeyRole: string(c.Role)}
	if c.OwnerAdminUID != "" {
		m[claimKeyOwnerUID] = c.OwnerAdminUID
	}
	if c.OwnerAdminEmail != "" {
		m[claimKeyOwnerEmail] = c.OwnerAdminEmail
	}
	return m
}

// decodeClaims converts a provider wire map into typed claims. Unknown keys
// are ignored; a missing or malformed role yields an empty Role, which
// callers treat as "no role assigned".
func decodeClaims(m map[string]any) Claims {
	var c Claims
	if s, ok := m[claimKeyRole].(string); ok {
		c.Role = sec.Role(s)
	}
	if s, ok := m[claimKeyOwnerUID].(string); ok {
		c.OwnerAdminUID = s
	}
	if s, ok := m[claimKeyOwnerEmail].(string); ok {
		c.OwnerAdminEmail = s
	}
	return c
}

// User is a directory account as seen by the application.
type User struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Disabled    bool      `json:"disabled"`
	Claims      Claims    `json:"claims"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateUserInput holds the fields required to provision a new account.
type CreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
	Disabled    bool
}

// UpdateUserInput holds the mutable account fields. Nil pointers mean
// "leave unchanged".
type UpdateUserInput struct {
	Email       *string
	Password    *string
	DisplayName *string
	Disabled    *bool
}

// Page is one page of a directory listing. NextPageToken is empty on the
// last page.
type Page struct {
	Users         []User
	NextPageToken string
}

// Directory is the capability surface the application needs from the user
// identity provider.
//
// # Error Contract
//
// Implementations return [apperr.AppError] values: NOT_FOUND for unknown
// accounts, ALREADY_EXISTS for duplicate emails, WEAK_PASSWORD for
// passwords the provider rejects, and UPSTREAM_UNAVAILABLE when the
// provider cannot be reached.
type Directory interface {
	// GetUserByEmail looks up an account by email (case-insensitive).
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUser looks up an account by UID.
	GetUser(ctx context.Context, uid string) (*User, error)

	// CreateUser provisions a new account and returns it. The caller must
	// follow up with SetClaims to attach role and ownership metadata.
	CreateUser(ctx context.Context, input CreateUserInput) (*User, error)

	// UpdateUser applies the non-nil fields of input to the account.
	UpdateUser(ctx context.Context, uid string, input UpdateUserInput) (*User, error)

	// DeleteUser removes the account permanently.
	DeleteUser(ctx context.Context, uid string) error

	// SetClaims replaces the account's custom claims.
	SetClaims(ctx context.Context, uid string, claims Claims) error

	// ListUsers returns one page of accounts. An empty pageToken starts
	// from the beginning; pageSize caps the page length.
	ListUsers(ctx context.Context, pageSize int, pageToken string) (*Page, error)
}

// PasswordVerifier checks a plaintext password against an account.
//
// The hosted directory only exposes verification when an API key is
// configured; without one, implementations must fail closed with
// UPSTREAM_UNAVAILABLE rather than letting a login through.
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) (*User, error)
}
