// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package admins_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar46/sultans-admin/internal/admins"
	"github.com/omar46/sultans-admin/internal/directory"
	"github.com/omar46/sultans-admin/internal/ownership"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/sec"
)

func newService(dir *directory.Memory) *admins.Service {
	return admins.NewService(dir, ownership.New(dir, slog.Default()), slog.Default())
}

func realm() *sec.RequestAuth {
	return &sec.RequestAuth{SuperAdmin: true}
}

// seedAccount provisions one directory entry with the given claims.
func seedAccount(t *testing.T, dir *directory.Memory, email, displayName string, claims directory.Claims) *directory.User {
	t.Helper()
	ctx := context.Background()

	user, err := dir.CreateUser(ctx, directory.CreateUserInput{
		Email:       email,
		Password:    "secret123",
		DisplayName: displayName,
	})
	require.NoError(t, err)
	require.NoError(t, dir.SetClaims(ctx, user.UID, claims))

	user.Claims = claims
	return user
}

/*
TestRealmCheckComesFirst verifies that every operation refuses a request
outside the super-admin realm before touching its input or the directory.
*/
func TestRealmCheckComesFirst(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()
	service := newService(dir)
	writesBefore := dir.Writes()

	for name, auth := range map[string]*sec.RequestAuth{
		"no_auth":          nil,
		"flag_unset":       {},
		"admin_session":    {Session: &sec.Session{Role: sec.RoleAdmin, Email: "admin@sultans.com"}},
		"codes_realm_only": {CodesAdmin: true},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := service.List(ctx, auth)
			assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

			_, err = service.Create(ctx, auth, admins.CreateInput{})
			assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

			_, err = service.Disable(ctx, auth, "some-uid")
			assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

			err = service.Delete(ctx, auth, "some-uid")
			assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
		})
	}
	assert.Equal(t, writesBefore, dir.Writes())
}

/*
TestCreateAndList verifies that a created admin carries only the role
claim and that List filters out everything else.
*/
func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()
	service := newService(dir)

	admin, err := service.Create(ctx, realm(), admins.CreateInput{
		DisplayName: "Omar",
		Email:       "omar@sultans.com",
		Password:    "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, admin.Claims.Role)
	assert.Empty(t, admin.Claims.OwnerAdminUID, "an admin is never owned")
	assert.Empty(t, admin.Claims.OwnerAdminEmail)

	seedAccount(t, dir, "player@sultans.com", "Player", directory.Claims{
		Role:          sec.RolePlayer,
		OwnerAdminUID: admin.UID,
	})

	listed, err := service.List(ctx, realm())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, admin.UID, listed[0].UID)

	_, err = service.Create(ctx, realm(), admins.CreateInput{
		DisplayName: "Dup", Email: "omar@sultans.com", Password: "secret123",
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyExists))

	_, err = service.Create(ctx, realm(), admins.CreateInput{
		DisplayName: "Weak", Email: "weak@sultans.com", Password: "short",
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestUpdate_EmailChangeRewritesOwnerClaims verifies that editing an admin
email rewrites the owner-email claim on accounts linked by UID or by the
old address.
*/
func TestUpdate_EmailChangeRewritesOwnerClaims(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()
	service := newService(dir)

	admin := seedAccount(t, dir, "old@sultans.com", "Omar", directory.Claims{Role: sec.RoleAdmin})
	byUID := seedAccount(t, dir, "p1@sultans.com", "P1", directory.Claims{
		Role:          sec.RolePlayer,
		OwnerAdminUID: admin.UID,
	})
	byEmail := seedAccount(t, dir, "p2@sultans.com", "P2", directory.Claims{
		Role:            sec.RoleCoordinator,
		OwnerAdminEmail: "old@sultans.com",
	})
	other := seedAccount(t, dir, "p3@sultans.com", "P3", directory.Claims{
		Role:            sec.RolePlayer,
		OwnerAdminEmail: "someoneelse@sultans.com",
	})

	updated, err := service.Update(ctx, realm(), admin.UID, admins.UpdateInput{
		Email:    "New@Sultans.com",
		OldEmail: "old@sultans.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@sultans.com", updated.Email)

	for _, uid := range []string{byUID.UID, byEmail.UID} {
		user, err := dir.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, admin.UID, user.Claims.OwnerAdminUID)
		assert.Equal(t, "new@sultans.com", user.Claims.OwnerAdminEmail)
	}

	untouched, err := dir.GetUser(ctx, other.UID)
	require.NoError(t, err)
	assert.Equal(t, "someoneelse@sultans.com", untouched.Claims.OwnerAdminEmail)
}

/*
TestDisableEnable_Cascades verifies that an admin's disabled state flows
down to owned accounts and that enabling adopts orphans without enabling
them.
*/
func TestDisableEnable_Cascades(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()
	service := newService(dir)

	admin := seedAccount(t, dir, "omar@sultans.com", "Omar", directory.Claims{Role: sec.RoleAdmin})
	owned := seedAccount(t, dir, "p1@sultans.com", "P1", directory.Claims{
		Role:          sec.RolePlayer,
		OwnerAdminUID: admin.UID,
	})
	orphan := seedAccount(t, dir, "p2@sultans.com", "P2", directory.Claims{Role: sec.RolePlayer})

	report, err := service.Disable(ctx, realm(), admin.UID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Disabled)

	adminAfter, err := dir.GetUser(ctx, admin.UID)
	require.NoError(t, err)
	assert.True(t, adminAfter.Disabled)

	ownedAfter, err := dir.GetUser(ctx, owned.UID)
	require.NoError(t, err)
	assert.True(t, ownedAfter.Disabled)

	report, err = service.Enable(ctx, realm(), admin.UID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Enabled)

	ownedAfter, err = dir.GetUser(ctx, owned.UID)
	require.NoError(t, err)
	assert.False(t, ownedAfter.Disabled)

	// The orphan gains owner claims but keeps its current enabled state.
	orphanAfter, err := dir.GetUser(ctx, orphan.UID)
	require.NoError(t, err)
	assert.Equal(t, admin.UID, orphanAfter.Claims.OwnerAdminUID)
	assert.Equal(t, "omar@sultans.com", orphanAfter.Claims.OwnerAdminEmail)
	assert.False(t, orphanAfter.Disabled)
}

/*
TestDeleteAndResetPassword verifies the remaining lifecycle operations.
*/
func TestDeleteAndResetPassword(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()
	service := newService(dir)

	admin := seedAccount(t, dir, "omar@sultans.com", "Omar", directory.Claims{Role: sec.RoleAdmin})

	temp, err := service.ResetPassword(ctx, realm(), admin.UID)
	require.NoError(t, err)
	assert.Len(t, temp, 12)

	_, err = dir.VerifyPassword(ctx, "omar@sultans.com", temp)
	assert.NoError(t, err)

	require.NoError(t, service.Delete(ctx, realm(), admin.UID))
	_, err = dir.GetUser(ctx, admin.UID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.ResetPassword(ctx, realm(), admin.UID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
