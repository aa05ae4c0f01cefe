// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package auth

import (
	"context"
	"log/slog"

	"github.com/omar46/sultans-admin/internal/directory"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/sec"
	"github.com/omar46/sultans-admin/internal/platform/validate"
)

// Service implements the directory-backed login use case.
//
// # Review Process
//
// This service is critical for security. Any changes to the ownership
// checks or the fail-closed password path must be reviewed carefully.
type Service struct {
	dir      directory.Directory
	verifier directory.PasswordVerifier
	throttle Throttle
	logger   *slog.Logger
}

// NewService constructs the login service.
func NewService(dir directory.Directory, verifier directory.PasswordVerifier, throttle Throttle, logger *slog.Logger) *Service {
	return &Service{
		dir:      dir,
		verifier: verifier,
		throttle: throttle,
		logger:   logger,
	}
}

// LoginInput holds the login form fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Login authenticates a directory account and returns it on success.

Description: The checks run in a fixed order — throttle, account lookup,
disabled flag, role, owner-admin liveness, then password. The password is
verified last so the cheaper checks cannot be used to probe credentials,
and it fails closed: if the verifier is unreachable the login is refused.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *directory.User: The authenticated account
  - error: INVALID_CREDENTIALS, UNAUTHORIZED, RATE_LIMITED, or
    UPSTREAM_UNAVAILABLE
*/
func (service *Service) Login(context context.Context, input LoginInput) (*directory.User, error) {

	// ── 1. Validate Form ──
	v := &validate.Validator{}
	err := v.
		Required("email", input.Email).
		Required("password", input.Password).
		Err()
	if err != nil {
		return nil, err
	}
	email := sec.NormalizeEmail(input.Email)

	// ── 2. Throttle ──
	if err := service.throttle.Check(context, email); err != nil {
		return nil, err
	}

	// ── 3. Account Lookup ──
	user, err := service.dir.GetUserByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.recordFailure(context, email)
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	// ── 4. Account State ──
	if user.Disabled {
		return nil, apperr.Unauthorized("This account is disabled and cannot sign in")
	}
	if !user.Claims.Role.Valid() {
		return nil, apperr.Unauthorized("This account is not allowed to sign in")
	}

	// ── 5. Owner-Admin Liveness ──
	if user.Claims.Role.Subordinate() {
		if err := service.checkOwner(context, user); err != nil {
			return nil, err
		}
	}

	// ── 6. Password ──
	verified, err := service.verifier.VerifyPassword(context, email, input.Password)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeInvalidCredentials) {
			service.recordFailure(context, email)
		}
		// Verifier unreachable propagates as UPSTREAM_UNAVAILABLE: the
		// login fails closed rather than skipping the password check.
		return nil, err
	}

	if err := service.throttle.Reset(context, email); err != nil {
		service.logger.Warn("throttle reset failed", slog.String("error", err.Error()))
	}

	service.logger.Info("login succeeded",
		slog.String("uid", verified.UID),
		slog.String("role", string(user.Claims.Role)),
	)
	return user, nil
}

// checkOwner refuses subordinate logins whose owner admin is missing from
// the claims or disabled. Lookup failures are tolerated: a transient
// directory error must not lock every coordinator out.
func (service *Service) checkOwner(context context.Context, user *directory.User) error {
	claims := user.Claims
	if claims.OwnerAdminUID == "" && claims.OwnerAdminEmail == "" {
		return apperr.Unauthorized("This account is not linked to an admin")
	}

	var owner *directory.User
	var err error
	if claims.OwnerAdminUID != "" {
		owner, err = service.dir.GetUser(context, claims.OwnerAdminUID)
	} else {
		owner, err = service.dir.GetUserByEmail(context, claims.OwnerAdminEmail)
	}
	if err != nil {
		service.logger.Warn("owner lookup failed during login",
			slog.String("uid", user.UID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if owner.Disabled {
		return apperr.Unauthorized("The linked admin account is disabled")
	}
	return nil
}

// Profile returns the directory account behind a session, for the member
// portal's account card.
func (service *Service) Profile(context context.Context, session *sec.Session) (*directory.User, error) {
	if session == nil || session.Email == "" {
		return nil, apperr.Unauthorized("Login required")
	}
	return service.dir.GetUserByEmail(context, session.Email)
}

func (service *Service) recordFailure(context context.Context, email string) {
	if err := service.throttle.RecordFailure(context, email); err != nil {
		service.logger.Warn("throttle record failed", slog.String("error", err.Error()))
	}
}
