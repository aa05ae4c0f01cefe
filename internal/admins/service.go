// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package admins implements the super-admin realm: managing the admin
accounts themselves and cascading every lifecycle change down to the
accounts each admin owns.

The realm is held by a fixed-credential cookie, not a directory session.
Every operation verifies the realm flag before reading any input, and the
cascades run through the ownership propagator so the linkage invariants
live in one place.
*/
package admins

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

// Cascader is the slice of the ownership propagator the admin lifecycle
// needs.
type Cascader interface {
	CascadeDisable(ctx context.Context, adminUID, adminEmail string) (ownership.Report, error)
	CascadeEnable(ctx context.Context, adminUID, adminEmail string) (ownership.Report, error)
	RewriteOwnerEmail(ctx context.Context, adminUID, oldEmail, newEmail string) (ownership.Report, error)
}

type Service struct {
	dir      directory.Directory
	cascader Cascader
	logger   *slog.Logger
}

func NewService(dir directory.Directory, cascader Cascader, logger *slog.Logger) *Service {
	return &Service{dir: dir, cascader: cascader, logger: logger}
}

// requireSuperAdmin refuses any request outside the super-admin realm.
// Runs before validation on every operation in this package.
func requireSuperAdmin(auth *sec.RequestAuth) error {
	if auth == nil || !auth.SuperAdmin {
		return apperr.Unauthorized("This operation is restricted to the super admin")
	}
	return nil
}

// List walks the full directory and returns the admin accounts.
func (service *Service) List(ctx context.Context, auth *sec.RequestAuth) ([]directory.User, error) {
	if err := requireSuperAdmin(auth); err != nil {
		return nil, err
	}

	var admins []directory.User
	pager := directory.NewPager(service.dir, directory.DefaultPageSize)
	for pager.Next(ctx) {
		for _, user := range pager.Users() {
			if user.Claims.Role == sec.RoleAdmin {
				admins = append(admins, user)
			}
		}
	}
	if err := pager.Err(); err != nil {
		return nil, err
	}
	return admins, nil
}

// CreateInput is the new-admin form.
type CreateInput struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// Create provisions an admin account. Admins carry only the role claim;
// they own accounts, they are not owned.
func (service *Service) Create(ctx context.Context, auth *sec.RequestAuth, input CreateInput) (*directory.User, error) {
	if err := requireSuperAdmin(auth); err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	err := v.
		Required("displayName", input.DisplayName).
		Required("email", input.Email).
		Email("email", input.Email).
		MinLen("password", input.Password, 6).
		Err()
	if err != nil {
		return nil, err
	}

	user, err := service.dir.CreateUser(ctx, directory.CreateUserInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	claims := directory.Claims{Role: sec.RoleAdmin}
	if err := service.dir.SetClaims(ctx, user.UID, claims); err != nil {
		return nil, err
	}
	user.Claims = claims

	service.logger.Info("admin created", slog.String("uid", user.UID))
	return user, nil
}

// UpdateInput is the admin edit form. Empty fields are left unchanged;
// OldEmail must carry the address on record when Email changes.
type UpdateInput struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	OldEmail    string `json:"oldEmail"`
	Password    string `json:"password"`
}

/*
Update edits an admin account and, when the email changes, rewrites the
owner-email claim on every account linked to this admin.

Description: Subordinates may be linked by UID, by email, or both. The
rewrite targets accounts matching either identifier so an email change
never strands an email-linked subordinate on a dead address.

Parameters:
  - context: context.Context
  - auth: the realm flags decoded from the request
  - uid: the admin account to edit
  - input: UpdateInput

Returns:
  - *directory.User: The updated account
  - error: UNAUTHORIZED, VALIDATION_ERROR, ALREADY_EXISTS, NOT_FOUND
*/
func (service *Service) Update(context context.Context, auth *sec.RequestAuth, uid string, input UpdateInput) (*directory.User, error) {

	// ── 1. Authorization ──
	if err := requireSuperAdmin(auth); err != nil {
		return nil, err
	}

	// ── 2. Validation ──
	v := &validate.Validator{}
	v.Required("uid", uid)
	if input.Password != "" {
		v.MinLen("password", input.Password, 6)
	}
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	// ── 3. Apply the account edits ──
	updates := directory.UpdateUserInput{}
	if input.DisplayName != "" {
		updates.DisplayName = pointer.To(input.DisplayName)
	}
	if input.Email != "" {
		updates.Email = pointer.To(input.Email)
	}
	if input.Password != "" {
		updates.Password = pointer.To(input.Password)
	}

	user, err := service.dir.UpdateUser(context, uid, updates)
	if err != nil {
		return nil, err
	}

	// ── 4. Cascade the email change to owned accounts ──
	if input.Email != "" {
		report, err := service.cascader.RewriteOwnerEmail(context, uid, input.OldEmail, input.Email)
		if err != nil {
			return nil, err
		}
		service.logger.Info("owner email rewritten",
			slog.String("admin_uid", uid),
			slog.Int("rewrites", report.ClaimRewrites),
		)
	}
	return user, nil
}

// Disable switches an admin off and disables every account it owns.
func (service *Service) Disable(ctx context.Context, auth *sec.RequestAuth, uid string) (ownership.Report, error) {
	if err := requireSuperAdmin(auth); err != nil {
		return ownership.Report{}, err
	}

	admin, err := service.dir.GetUser(ctx, uid)
	if err != nil {
		return ownership.Report{}, err
	}

	if _, err := service.dir.UpdateUser(ctx, uid, directory.UpdateUserInput{Disabled: pointer.To(true)}); err != nil {
		return ownership.Report{}, err
	}

	// A sweep failure leaves the admin disabled; Reconcile catches the
	// stragglers on the next maintenance run.
	report, err := service.cascader.CascadeDisable(ctx, uid, admin.Email)
	if err != nil {
		service.logger.Error("cascade disable incomplete", slog.String("admin_uid", uid), slog.Any("error", err))
	}
	return report, nil
}

// Enable switches an admin back on, re-enables the accounts it owns, and
// adopts any orphaned subordinates it finds along the way.
func (service *Service) Enable(ctx context.Context, auth *sec.RequestAuth, uid string) (ownership.Report, error) {
	if err := requireSuperAdmin(auth); err != nil {
		return ownership.Report{}, err
	}

	admin, err := service.dir.GetUser(ctx, uid)
	if err != nil {
		return ownership.Report{}, err
	}

	if _, err := service.dir.UpdateUser(ctx, uid, directory.UpdateUserInput{Disabled: pointer.To(false)}); err != nil {
		return ownership.Report{}, err
	}

	report, err := service.cascader.CascadeEnable(ctx, uid, admin.Email)
	if err != nil {
		service.logger.Error("cascade enable incomplete", slog.String("admin_uid", uid), slog.Any("error", err))
	}
	return report, nil
}

// Delete removes an admin account. Its subordinates keep their claims and
// are picked up by the next reconcile sweep or an adopting admin.
func (service *Service) Delete(ctx context.Context, auth *sec.RequestAuth, uid string) error {
	if err := requireSuperAdmin(auth); err != nil {
		return err
	}
	return service.dir.DeleteUser(ctx, uid)
}

// ResetPassword sets a random temporary password on an admin account and
// returns it.
func (service *Service) ResetPassword(ctx context.Context, auth *sec.RequestAuth, uid string) (string, error) {
	if err := requireSuperAdmin(auth); err != nil {
		return "", err
	}
	if _, err := service.dir.GetUser(ctx, uid); err != nil {
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
