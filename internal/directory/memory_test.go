// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package directory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar46/sultans-admin/internal/directory"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/sec"
	"github.com/omar46/sultans-admin/pkg/pointer"
)

/*
TestMemory_CreateAndLookup verifies the basic provisioning flow: create an
account, then look it up by UID and by email (case-insensitive).
*/
func TestMemory_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	created, err := dir.CreateUser(ctx, directory.CreateUserInput{
		Email:       "Faisal@Sultans.com",
		Password:    "secret123",
		DisplayName: "Faisal",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.UID)
	assert.Equal(t, "faisal@sultans.com", created.Email) // Normalized

	byUID, err := dir.GetUser(ctx, created.UID)
	require.NoError(t, err)
	assert.Equal(t, created.UID, byUID.UID)

	byEmail, err := dir.GetUserByEmail(ctx, "FAISAL@sultans.com")
	require.NoError(t, err)
	assert.Equal(t, created.UID, byEmail.UID)
}

/*
TestMemory_DuplicateEmail verifies the ALREADY_EXISTS contract.
*/
func TestMemory_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	_, err := dir.CreateUser(ctx, directory.CreateUserInput{
		Email:    "dup@sultans.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = dir.CreateUser(ctx, directory.CreateUserInput{
		Email:    "DUP@sultans.com",
		Password: "secret456",
	})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyExists))
}

/*
TestMemory_WeakPassword verifies the WEAK_PASSWORD contract on both the
create and update paths.
*/
func TestMemory_WeakPassword(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	_, err := dir.CreateUser(ctx, directory.CreateUserInput{
		Email:    "weak@sultans.com",
		Password: "12345",
	})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeWeakPassword))

	created, err := dir.CreateUser(ctx, directory.CreateUserInput{
		Email:    "weak@sultans.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = dir.UpdateUser(ctx, created.UID, directory.UpdateUserInput{
		Password: pointer.To("short"),
	})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeWeakPassword))
}

/*
TestMemory_VerifyPassword checks login verification against the stored
bcrypt hash.
*/
func TestMemory_VerifyPassword(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	created, err := dir.CreateUser(ctx, directory.CreateUserInput{
		Email:    "login@sultans.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, err := dir.VerifyPassword(ctx, "login@sultans.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.UID, user.UID)

	_, err = dir.VerifyPassword(ctx, "login@sultans.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))

	_, err = dir.VerifyPassword(ctx, "nobody@sultans.com", "secret123")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))
}

/*
TestMemory_SetClaims verifies claims round-trip through the directory.
*/
func TestMemory_SetClaims(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	created, err := dir.CreateUser(ctx, directory.CreateUserInput{
		Email:    "player@sultans.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	claims := directory.Claims{
		Role:            sec.RolePlayer,
		OwnerAdminUID:   "admin-1",
		OwnerAdminEmail: "admin@sultans.com",
	}
	require.NoError(t, dir.SetClaims(ctx, created.UID, claims))

	fetched, err := dir.GetUser(ctx, created.UID)
	require.NoError(t, err)
	assert.Equal(t, claims, fetched.Claims)
}

/*
TestClaims_OwnedBy verifies ownership matching by UID or email. A stale
owner email must still match when the UID agrees, and vice versa.
*/
func TestClaims_OwnedBy(t *testing.T) {
	claims := directory.Claims{
		Role:            sec.RolePlayer,
		OwnerAdminUID:   "admin-1",
		OwnerAdminEmail: "old@sultans.com",
	}

	tests := []struct {
		name       string
		adminUID   string
		adminEmail string
		want       bool
	}{
		{"uid_match_stale_email", "admin-1", "new@sultans.com", true},
		{"email_match_only", "admin-2", "old@sultans.com", true},
		{"email_case_insensitive", "admin-2", "OLD@sultans.com", true},
		{"no_match", "admin-2", "new@sultans.com", false},
		{"empty_identifiers", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, claims.OwnedBy(tt.adminUID, tt.adminEmail))
		})
	}
}
