// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package members implements the admin's account management surface:
creating, updating, disabling, and deleting the coordinator and player
accounts the admin owns.

Every mutation checks the actor's admin role before reading any input.
An unauthorized request short-circuits with no side effects — not even
validation errors leak out.
*/
package members

import (
	"context"
	"log/slog"

	"github.com/omar46/sultans-admin/internal/directory"
	"github.com/omar46/sultans-admin/internal/ownership"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/sec"
	"github.com/omar46/sultans-admin/internal/platform/validate"
	"github.com/omar46/sultans-admin/pkg/pointer"
)

// Reconciler runs the ownership maintenance sweep. Implemented by the
// ownership propagator.
type Reconciler interface {
	Reconcile(ctx context.Context) (ownership.Report, error)
}

type Service struct {
	dir        directory.Directory
	reconciler Reconciler
	logger     *slog.Logger
}

func NewService(dir directory.Directory, reconciler Reconciler, logger *slog.Logger) *Service {
	return &Service{dir: dir, reconciler: reconciler, logger: logger}
}

// requireAdmin refuses any actor without an admin session. Runs before
// validation on every operation in this package.
func requireAdmin(actor *sec.Session) error {
	if actor == nil || actor.Role != sec.RoleAdmin || actor.Email == "" {
		return apperr.Unauthorized("This operation is restricted to admins")
	}
	return nil
}

// CreateInput is the new-member form.
type CreateInput struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// List returns every directory account visible to the admin, one page at
// a time, mirroring the provider's paging.
func (service *Service) List(ctx context.Context, actor *sec.Session, pageSize int, pageToken string) (*directory.Page, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return service.dir.ListUsers(ctx, pageSize, pageToken)
}

/*
Create provisions a subordinate account and attaches the acting admin as
its owner.

Description: The owner claim pair is captured at creation time from the
actor's session — UID resolved through the directory, email lower-cased.
A member account never exists without an owner.

Parameters:
  - context: context.Context
  - actor: the admin session performing the operation
  - input: CreateInput

Returns:
  - *directory.User: The created account with claims attached
  - error: UNAUTHORIZED, VALIDATION_ERROR, ALREADY_EXISTS, WEAK_PASSWORD
*/
func (service *Service) Create(context context.Context, actor *sec.Session, input CreateInput) (*directory.User, error) {

	// ── 1. Authorization (before validation, no side effects) ──
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	// ── 2. Validation ──
	v := &validate.Validator{}
	err := v.
		Required("displayName", input.DisplayName).
		Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password).
		OneOf("role", input.Role, string(sec.RoleCoordinator), string(sec.RolePlayer)).
		Err()
	if err != nil {
		return nil, err
	}

	// ── 3. Resolve the owning admin ──
	admin, err := service.dir.GetUserByEmail(context, actor.Email)
	if err != nil {
		return nil, err
	}

	// ── 4. Provision ──
	user, err := service.dir.CreateUser(context, directory.CreateUserInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	claims := directory.Claims{
		Role:            sec.Role(input.Role),
		OwnerAdminUID:   admin.UID,
		OwnerAdminEmail: admin.Email,
	}
	if err := service.dir.SetClaims(context, user.UID, claims); err != nil {
		return nil, err
	}
	user.Claims = claims

	service.logger.Info("member created",
		slog.String("uid", user.UID),
		slog.String("role", input.Role),
		slog.String("owner_uid", admin.UID),
	)
	return user, nil
}

// UpdateInput is the member edit form. Empty fields are left unchanged.
type UpdateInput struct {
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// Update changes a member's display name and/or role. The owner claims
// are preserved untouched.
func (service *Service) Update(ctx context.Context, actor *sec.Session, uid string, input UpdateInput) (*directory.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if input.Role != "" {
		v := &validate.Validator{}
		if err := v.OneOf("role", input.Role, string(sec.RoleCoordinator), string(sec.RolePlayer)).Err(); err != nil {
			return nil, err
		}
	}

	user, err := service.dir.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != "" {
		user, err = service.dir.UpdateUser(ctx, uid, directory.UpdateUserInput{DisplayName: pointer.To(input.DisplayName)})
		if err != nil {
			return nil, err
		}
	}

	if input.Role != "" {
		claims := user.Claims
		claims.Role = sec.Role(input.Role)
		if err := service.dir.SetClaims(ctx, uid, claims); err != nil {
			return nil, err
		}
		user.Claims = claims
	}
	return user, nil
}

// requireSubordinateTarget loads the target and refuses admin accounts.
// Admin accounts are managed from the super-admin realm only.
func (service *Service) requireSubordinateTarget(ctx context.Context, uid string) (*directory.User, error) {
	user, err := service.dir.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user.Claims.Role == sec.RoleAdmin {
		return nil, apperr.Unauthorized("Admin accounts cannot be managed here")
	}
	return user, nil
}

// SetDisabled flips a member account's disabled flag.
func (service *Service) SetDisabled(ctx context.Context, actor *sec.Session, uid string, disabled bool) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := service.requireSubordinateTarget(ctx, uid); err != nil {
		return err
	}

	_, err := service.dir.UpdateUser(ctx, uid, directory.UpdateUserInput{Disabled: pointer.To(disabled)})
	return err
}

// Delete removes a member account permanently.
func (service *Service) Delete(ctx context.Context, actor *sec.Session, uid string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := service.requireSubordinateTarget(ctx, uid); err != nil {
		return err
	}
	return service.dir.DeleteUser(ctx, uid)
}

// ResetPassword sets a random temporary password on a member account and
// returns it for the admin to hand over out of band.
func (service *Service) ResetPassword(ctx context.Context, actor *sec.Session, uid string) (string, error) {
	if err := requireAdmin(actor); err != nil {
		return "", err
	}
	if _, err := service.requireSubordinateTarget(ctx, uid); err != nil {
		return "", err
	}

	temp, err := sec.GenerateTempPassword(12)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if _, err := service.dir.UpdateUser(ctx, uid, directory.UpdateUserInput{Password: pointer.To(temp)}); err != nil {
		return "", err
	}
	return temp, nil
}

// AutoFix runs the ownership reconciliation sweep on the admin's behalf
// and returns its write report.
func (service *Service) AutoFix(ctx context.Context, actor *sec.Session) (ownership.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return ownership.Report{}, err
	}

	report, err := service.reconciler.Reconcile(ctx)
	if err != nil {
		return report, err
	}

	service.logger.Info("auto-fix sweep completed",
		slog.Int("scanned", report.Scanned),
		slog.Int("writes", report.Writes()),
	)
	return report, nil
}
