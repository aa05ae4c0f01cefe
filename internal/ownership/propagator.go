// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package ownership keeps subordinate accounts consistent with their owning
admin.

Every coordinator and player account carries owner claims naming the
admin who created it. This package maintains two invariants over the
whole directory:

  - Linkage: every subordinate account carries a non-empty owner claim
    pair, backfilled when missing.
  - Enablement: a subordinate's disabled flag mirrors its owner admin's
    disabled flag.

The invariants are eventual, not instantaneous: cascades run after admin
mutations, and the reconciliation sweep heals whatever drifted in
between. Every sweep is a full directory walk via [directory.Pager] —
the directory is clan-sized, so a linear scan per operation is the
deliberate cost model.

Ownership matching errs toward inclusion: an account counts as owned
when either the UID or the email claim matches, so accounts with one
stale identifier are still caught by the other.
*/
package ownership

import (
	"context"
	"log/slog"

	"github.com/omar46/sultans-admin/internal/directory"
	"github.com/omar46/sultans-admin/internal/platform/sec"
)

// Report counts the writes one sweep performed. A second run of the same
// sweep over unchanged state reports zero writes.
type Report struct {
	Scanned       int `json:"scanned"`
	Enabled       int `json:"enabled"`
	Disabled      int `json:"disabled"`
	ClaimRewrites int `json:"claimRewrites"`
}

// Writes returns the total number of mutations in the report.
func (r Report) Writes() int {
	return r.Enabled + r.Disabled + r.ClaimRewrites
}

// Propagator walks the directory and applies ownership rules.
type Propagator struct {
	dir    directory.Directory
	logger *slog.Logger
}

// New creates a propagator over dir.
func New(dir directory.Directory, logger *slog.Logger) *Propagator {
	return &Propagator{dir: dir, logger: logger}
}

// setDisabled flips one account's disabled flag.
func (propagator *Propagator) setDisabled(ctx context.Context, uid string, disabled bool) error {
	_, err := propagator.dir.UpdateUser(ctx, uid, directory.UpdateUserInput{Disabled: &disabled})
	return err
}

// sweepAllNonAdmin flips every subordinate account to the target state.
// Accounts already in the target state are skipped, which makes the
// sweep idempotent. Per-account failures are logged and skipped so one
// bad record cannot strand the rest of the clan.
func (propagator *Propagator) sweepAllNonAdmin(ctx context.Context, disabled bool) error {
	pager := directory.NewPager(propagator.dir, 0)
	for pager.Next(ctx) {
		for _, user := range pager.Users() {
			if !user.Claims.Role.Subordinate() {
				continue
			}
			if user.Disabled == disabled {
				continue
			}
			if err := propagator.setDisabled(ctx, user.UID, disabled); err != nil {
				propagator.logger.Error("bulk sweep update failed",
					slog.String("uid", user.UID),
					slog.Bool("disabled", disabled),
					slog.String("error", err.Error()),
				)
			}
		}
	}
	return pager.Err()
}

// EnableAllNonAdmin re-enables every coordinator and player account.
// Runs after a successful activation.
func (propagator *Propagator) EnableAllNonAdmin(ctx context.Context) error {
	return propagator.sweepAllNonAdmin(ctx, false)
}

// DisableAllNonAdmin disables every coordinator and player account. Runs
// when the clan's license stops being valid.
func (propagator *Propagator) DisableAllNonAdmin(ctx context.Context) error {
	return propagator.sweepAllNonAdmin(ctx, true)
}

// CascadeDisable disables every subordinate owned by the given admin,
// matching by UID or email.
func (propagator *Propagator) CascadeDisable(ctx context.Context, adminUID, adminEmail string) (Report, error) {
	report := Report{}
	email := sec.NormalizeEmail(adminEmail)

	pager := directory.NewPager(propagator.dir, 0)
	for pager.Next(ctx) {
		for _, user := range pager.Users() {
			report.Scanned++
			// Anything that is not an admin cascades, including accounts
			// with a missing or unknown role. A broken role claim must
			// not exempt an account from its owner's disable.
			if user.Claims.Role == sec.RoleAdmin || !user.Claims.OwnedBy(adminUID, email) {
				continue
			}
			if user.Disabled {
				continue
			}
			if err := propagator.setDisabled(ctx, user.UID, true); err != nil {
				return report, err
			}
			report.Disabled++
		}
	}
	return report, pager.Err()
}

// CascadeEnable re-enables every subordinate owned by the given admin.
// Subordinates with no owner claims at all are adopted: the claim pair
// is backfilled with this admin, matching the recovery behavior an
// enable is expected to have after messy manual edits.
func (propagator *Propagator) CascadeEnable(ctx context.Context, adminUID, adminEmail string) (Report, error) {
	report := Report{}
	email := sec.NormalizeEmail(adminEmail)

	pager := directory.NewPager(propagator.dir, 0)
	for pager.Next(ctx) {
		for _, user := range pager.Users() {
			report.Scanned++
			if user.Claims.Role == sec.RoleAdmin {
				continue
			}

			orphaned := user.Claims.OwnerAdminUID == "" && user.Claims.OwnerAdminEmail == ""
			if !orphaned && !user.Claims.OwnedBy(adminUID, email) {
				continue
			}

			if user.Disabled && !orphaned {
				if err := propagator.setDisabled(ctx, user.UID, false); err != nil {
					return report, err
				}
				report.Enabled++
			}

			if orphaned {
				claims := user.Claims
				claims.OwnerAdminUID = adminUID
				claims.OwnerAdminEmail = email
				if err := propagator.dir.SetClaims(ctx, user.UID, claims); err != nil {
					return report, err
				}
				report.ClaimRewrites++
			}
		}
	}
	return report, pager.Err()
}

// RewriteOwnerEmail points every subordinate of the given admin at the
// admin's new email. Matching uses the UID or the old email, so accounts
// that only carried the email claim are migrated too.
func (propagator *Propagator) RewriteOwnerEmail(ctx context.Context, adminUID, oldEmail, newEmail string) (Report, error) {
	report := Report{}
	oldNorm := sec.NormalizeEmail(oldEmail)
	newNorm := sec.NormalizeEmail(newEmail)

	pager := directory.NewPager(propagator.dir, 0)
	for pager.Next(ctx) {
		for _, user := range pager.Users() {
			report.Scanned++
			if user.Claims.Role == sec.RoleAdmin || !user.Claims.OwnedBy(adminUID, oldNorm) {
				continue
			}
			if user.Claims.OwnerAdminUID == adminUID && user.Claims.OwnerAdminEmail == newNorm {
				continue
			}

			claims := user.Claims
			claims.OwnerAdminUID = adminUID
			claims.OwnerAdminEmail = newNorm
			if err := propagator.dir.SetClaims(ctx, user.UID, claims); err != nil {
				return report, err
			}
			report.ClaimRewrites++
		}
	}
	return report, pager.Err()
}

// Reconcile is the maintenance sweep: for every subordinate it resolves
// the owner admin (UID first, then email), backfills missing claim
// fields, and syncs the disabled flag to the owner's.
//
// # Resolution Order
//
// The UID claim wins over the email claim. An admin's email can change
// and later be reused by a different admin; resolving by UID first means
// a stale email claim cannot hand the account to the wrong owner.
func (propagator *Propagator) Reconcile(ctx context.Context) (Report, error) {
	report := Report{}

	pager := directory.NewPager(propagator.dir, 0)
	for pager.Next(ctx) {
		for _, user := range pager.Users() {
			report.Scanned++
			if !user.Claims.Role.Subordinate() {
				continue
			}
			if err := propagator.reconcileOne(ctx, user, &report); err != nil {
				propagator.logger.Error("reconcile failed for account",
					slog.String("uid", user.UID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
	return report, pager.Err()
}

func (propagator *Propagator) reconcileOne(ctx context.Context, user directory.User, report *Report) error {
	claims := user.Claims
	ownerEmail := sec.NormalizeEmail(claims.OwnerAdminEmail)

	// Resolve the owner, UID first. Lookup failures leave owner nil; the
	// claim backfill below still runs on what we have.
	var owner *directory.User
	if claims.OwnerAdminUID != "" {
		owner, _ = propagator.dir.GetUser(ctx, claims.OwnerAdminUID)
	} else if ownerEmail != "" {
		owner, _ = propagator.dir.GetUserByEmail(ctx, ownerEmail)
	}

	fixed := claims
	if owner != nil && fixed.OwnerAdminUID == "" {
		fixed.OwnerAdminUID = owner.UID
	}
	if ownerEmail != "" && fixed.OwnerAdminEmail != ownerEmail {
		fixed.OwnerAdminEmail = ownerEmail
	}
	if fixed != claims {
		if err := propagator.dir.SetClaims(ctx, user.UID, fixed); err != nil {
			return err
		}
		report.ClaimRewrites++
	}

	if owner == nil {
		return nil
	}

	if owner.Disabled && !user.Disabled {
		if err := propagator.setDisabled(ctx, user.UID, true); err != nil {
			return err
		}
		report.Disabled++
	} else if !owner.Disabled && user.Disabled {
		if err := propagator.setDisabled(ctx, user.UID, false); err != nil {
			return err
		}
		report.Enabled++
	}
	return nil
}
