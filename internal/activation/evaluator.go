// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

// Package activation implements clan-wide license activation: verifying
// codes at the activation wall, re-checking them for admins, and the
// codes-admin management surface.
//
// # Clan-Wide Switch
//
// Activation is not per-user. One valid code unlocks the dashboard for
// the whole clan, and losing validity (block, suspend, expiry) locks all
// non-admin accounts again through the ownership propagator.
package activation

import (
	"context"
	"time"

	"github.com/omar46/sultans-admin/internal/license"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
)

// Evaluator classifies an activation code against the license store.
//
// # Classification Order
//
// Unknown code, then blocked, then suspended, then expired. The first
// failing check wins, so a blocked code reports blocked even when it has
// also expired.
type Evaluator struct {
	repo license.Repository
	now  func() time.Time
}

// NewEvaluator creates an evaluator. now may be nil for the wall clock.
func NewEvaluator(repo license.Repository, now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{repo: repo, now: now}
}

// Evaluate normalizes rawCode, looks it up, and returns the record when
// the code is currently valid. Invalid codes return a typed error:
// INVALID_CODE, BLOCKED, SUSPENDED, or EXPIRED.
func (evaluator *Evaluator) Evaluate(ctx context.Context, rawCode string) (*license.Code, error) {
	normalized := license.NormalizeCode(rawCode)
	if normalized == "" {
		return nil, apperr.InvalidCode()
	}

	code, err := evaluator.repo.GetByCode(ctx, normalized)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.InvalidCode()
		}
		return nil, err
	}

	switch code.Status {
	case license.StatusBlocked:
		return nil, apperr.Blocked()
	case license.StatusSuspended:
		return nil, apperr.Suspended()
	}

	if code.Expired(evaluator.now()) {
		return nil, apperr.Expired()
	}
	return code, nil
}
