// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package ownership_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar46/sultans-admin/internal/directory"
	"github.com/omar46/sultans-admin/internal/ownership"
	"github.com/omar46/sultans-admin/internal/platform/sec"
)

func seed(t *testing.T, dir *directory.Memory, email string, claims directory.Claims, disabled bool) *directory.User {
	t.Helper()
	ctx := context.Background()

	user, err := dir.CreateUser(ctx, directory.CreateUserInput{
		Email:    email,
		Password: "secret123",
		Disabled: disabled,
	})
	require.NoError(t, err)
	require.NoError(t, dir.SetClaims(ctx, user.UID, claims))

	user.Claims = claims
	return user
}

func get(t *testing.T, dir *directory.Memory, uid string) *directory.User {
	t.Helper()
	user, err := dir.GetUser(context.Background(), uid)
	require.NoError(t, err)
	return user
}

/*
TestPropagator_BulkSweeps verifies the clan-wide enable and disable
sweeps: only subordinates flip, admins are untouched, and a repeat run
performs zero directory writes.
*/
func TestPropagator_BulkSweeps(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	admin := seed(t, dir, "admin@sultans.com", directory.Claims{Role: sec.RoleAdmin}, false)
	coord := seed(t, dir, "coord@sultans.com", directory.Claims{Role: sec.RoleCoordinator, OwnerAdminUID: admin.UID}, false)
	player := seed(t, dir, "player@sultans.com", directory.Claims{Role: sec.RolePlayer, OwnerAdminUID: admin.UID}, false)

	propagator := ownership.New(dir, slog.Default())

	require.NoError(t, propagator.DisableAllNonAdmin(ctx))
	assert.False(t, get(t, dir, admin.UID).Disabled)
	assert.True(t, get(t, dir, coord.UID).Disabled)
	assert.True(t, get(t, dir, player.UID).Disabled)

	// Idempotence: the second sweep finds nothing to write.
	before := dir.Writes()
	require.NoError(t, propagator.DisableAllNonAdmin(ctx))
	assert.Equal(t, before, dir.Writes())

	require.NoError(t, propagator.EnableAllNonAdmin(ctx))
	assert.False(t, get(t, dir, coord.UID).Disabled)
	assert.False(t, get(t, dir, player.UID).Disabled)

	before = dir.Writes()
	require.NoError(t, propagator.EnableAllNonAdmin(ctx))
	assert.Equal(t, before, dir.Writes())
}

/*
TestPropagator_CascadeDisable verifies that disabling an admin cascades
to accounts matched by UID or by email, and only those.
*/
func TestPropagator_CascadeDisable(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	adminA := seed(t, dir, "a@sultans.com", directory.Claims{Role: sec.RoleAdmin}, false)
	adminB := seed(t, dir, "b@sultans.com", directory.Claims{Role: sec.RoleAdmin}, false)

	byUID := seed(t, dir, "p1@sultans.com", directory.Claims{Role: sec.RolePlayer, OwnerAdminUID: adminA.UID}, false)
	byEmail := seed(t, dir, "p2@sultans.com", directory.Claims{Role: sec.RolePlayer, OwnerAdminEmail: "a@sultans.com"}, false)
	other := seed(t, dir, "p3@sultans.com", directory.Claims{Role: sec.RolePlayer, OwnerAdminUID: adminB.UID}, false)

	propagator := ownership.New(dir, slog.Default())

	report, err := propagator.CascadeDisable(ctx, adminA.UID, "a@sultans.com")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Disabled)

	assert.True(t, get(t, dir, byUID.UID).Disabled)
	assert.True(t, get(t, dir, byEmail.UID).Disabled)
	assert.False(t, get(t, dir, other.UID).Disabled, "another admin's account must not be touched")

	// Repeat run: zero writes
	report, err = propagator.CascadeDisable(ctx, adminA.UID, "a@sultans.com")
	require.NoError(t, err)
	assert.Zero(t, report.Writes())
}

/*
TestPropagator_Cascades_CoverRolelessAccounts verifies that an account
carrying owner claims but a missing role still follows its admin: a
broken role claim must not exempt it from the disable cascade or the
email rewrite.
*/
func TestPropagator_Cascades_CoverRolelessAccounts(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	admin := seed(t, dir, "admin@sultans.com", directory.Claims{Role: sec.RoleAdmin}, false)
	roleless := seed(t, dir, "lost@sultans.com", directory.Claims{OwnerAdminUID: admin.UID}, false)

	propagator := ownership.New(dir, slog.Default())

	report, err := propagator.CascadeDisable(ctx, admin.UID, "admin@sultans.com")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Disabled)
	assert.True(t, get(t, dir, roleless.UID).Disabled)

	report, err = propagator.CascadeEnable(ctx, admin.UID, "admin@sultans.com")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Enabled)
	assert.False(t, get(t, dir, roleless.UID).Disabled)

	report, err = propagator.RewriteOwnerEmail(ctx, admin.UID, "admin@sultans.com", "new@sultans.com")
	require.NoError(t, err)
	assert.Equal(t, 1, report.ClaimRewrites)
	assert.Equal(t, "new@sultans.com", get(t, dir, roleless.UID).Claims.OwnerAdminEmail)
}

/*
TestPropagator_CascadeEnable verifies re-enable plus orphan adoption: an
ownerless subordinate gets this admin's claim pair backfilled but keeps
its disabled flag.
*/
func TestPropagator_CascadeEnable(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	admin := seed(t, dir, "admin@sultans.com", directory.Claims{Role: sec.RoleAdmin}, false)
	owned := seed(t, dir, "p1@sultans.com", directory.Claims{Role: sec.RolePlayer, OwnerAdminUID: admin.UID}, true)
	orphan := seed(t, dir, "p2@sultans.com", directory.Claims{Role: sec.RolePlayer}, true)

	propagator := ownership.New(dir, slog.Default())

	report, err := propagator.CascadeEnable(ctx, admin.UID, "admin@sultans.com")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Enabled)
	assert.Equal(t, 1, report.ClaimRewrites)

	assert.False(t, get(t, dir, owned.UID).Disabled)

	adopted := get(t, dir, orphan.UID)
	assert.Equal(t, admin.UID, adopted.Claims.OwnerAdminUID)
	assert.Equal(t, "admin@sultans.com", adopted.Claims.OwnerAdminEmail)
	assert.True(t, adopted.Disabled, "adoption must not silently enable the account")
}

/*
TestPropagator_RewriteOwnerEmail verifies the cascade after an admin
email change: subordinates matched by UID or by the old email get the
new claim pair.
*/
func TestPropagator_RewriteOwnerEmail(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	admin := seed(t, dir, "old@sultans.com", directory.Claims{Role: sec.RoleAdmin}, false)
	byUID := seed(t, dir, "p1@sultans.com", directory.Claims{Role: sec.RolePlayer, OwnerAdminUID: admin.UID, OwnerAdminEmail: "old@sultans.com"}, false)
	byEmailOnly := seed(t, dir, "p2@sultans.com", directory.Claims{Role: sec.RolePlayer, OwnerAdminEmail: "old@sultans.com"}, false)

	propagator := ownership.New(dir, slog.Default())

	report, err := propagator.RewriteOwnerEmail(ctx, admin.UID, "old@sultans.com", "New@Sultans.com")
	require.NoError(t, err)
	assert.Equal(t, 2, report.ClaimRewrites)

	for _, uid := range []string{byUID.UID, byEmailOnly.UID} {
		claims := get(t, dir, uid).Claims
		assert.Equal(t, admin.UID, claims.OwnerAdminUID)
		assert.Equal(t, "new@sultans.com", claims.OwnerAdminEmail)
	}

	// Repeat run: zero writes
	report, err = propagator.RewriteOwnerEmail(ctx, admin.UID, "old@sultans.com", "new@sultans.com")
	require.NoError(t, err)
	assert.Zero(t, report.Writes())
}

/*
TestPropagator_Reconcile_StaleEmailCollision is the drift scenario the
UID-first resolution exists for: admin A is disabled, admin B is active,
and B's account still carries A's old email in its owner claim. The
sweep must trust B's UID and leave the account enabled.
*/
func TestPropagator_Reconcile_StaleEmailCollision(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	adminA := seed(t, dir, "shared@sultans.com", directory.Claims{Role: sec.RoleAdmin}, true)
	adminB := seed(t, dir, "b@sultans.com", directory.Claims{Role: sec.RoleAdmin}, false)

	aAccount := seed(t, dir, "pa@sultans.com", directory.Claims{
		Role: sec.RolePlayer, OwnerAdminUID: adminA.UID,
	}, false)
	bAccount := seed(t, dir, "pb@sultans.com", directory.Claims{
		Role:            sec.RolePlayer,
		OwnerAdminUID:   adminB.UID,
		OwnerAdminEmail: "shared@sultans.com", // Stale: points at A's email
	}, false)

	propagator := ownership.New(dir, slog.Default())

	_, err := propagator.Reconcile(ctx)
	require.NoError(t, err)

	assert.True(t, get(t, dir, aAccount.UID).Disabled, "A's account follows A")
	assert.False(t, get(t, dir, bAccount.UID).Disabled, "B's account must not follow A's stale email")
}

/*
TestPropagator_Reconcile_BackfillAndSync verifies claim backfill (UID
resolved from an email-only claim) and disabled-flag sync, and that the
sweep is idempotent.
*/
func TestPropagator_Reconcile_BackfillAndSync(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewMemory()

	admin := seed(t, dir, "admin@sultans.com", directory.Claims{Role: sec.RoleAdmin}, false)
	emailOnly := seed(t, dir, "p1@sultans.com", directory.Claims{Role: sec.RolePlayer, OwnerAdminEmail: "Admin@Sultans.com"}, true)

	propagator := ownership.New(dir, slog.Default())

	report, err := propagator.Reconcile(ctx)
	require.NoError(t, err)
	assert.Positive(t, report.Writes())

	fixed := get(t, dir, emailOnly.UID)
	assert.Equal(t, admin.UID, fixed.Claims.OwnerAdminUID, "UID backfilled from email lookup")
	assert.Equal(t, "admin@sultans.com", fixed.Claims.OwnerAdminEmail, "email normalized")
	assert.False(t, fixed.Disabled, "enablement synced to the active owner")

	// Second run heals nothing because nothing drifted.
	report, err = propagator.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Writes())
}

func TestReportWrites(t *testing.T) {
	report := ownership.Report{Enabled: 2, Disabled: 1, ClaimRewrites: 3}
	assert.Equal(t, 6, report.Writes())
}
