// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package license_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar46/sultans-admin/internal/license"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
)

/*
TestGenerateCode verifies code length and alphabet. Ambiguous characters
(I, O, 0, 1) must never appear.
*/
func TestGenerateCode(t *testing.T) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	for i := 0; i < 50; i++ {
		code, err := license.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, license.CodeLength)

		for _, character := range code {
			assert.Contains(t, alphabet, string(character))
		}
	}
}

/*
TestNormalizeCode verifies lookup normalization.
*/
func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABCD2345EFGH6789", license.NormalizeCode("  abcd2345efgh6789 "))
}

/*
TestAddMonths checks calendar-month arithmetic, including the month-end
overflow behavior of the underlying calendar.
*/
func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		months int
		want   string
	}{
		{"one_month", "2024-01-15", 1, "2024-02-15"},
		{"cross_year", "2024-11-15", 3, "2025-02-15"},
		{"twelve_months", "2024-01-15", 12, "2025-01-15"},
		{"jan31_overflow", "2024-01-31", 1, "2024-03-02"}, // Feb 2024 has 29 days
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := time.Parse("2006-01-02", tt.start)
			require.NoError(t, err)

			got := license.AddMonths(start, tt.months)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

/*
TestCode_Expired verifies the derived expiry check at the boundary: a code
is expired at exactly EndAt, not a moment before.
*/
func TestCode_Expired(t *testing.T) {
	end := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	code := &license.Code{EndAt: end}

	assert.False(t, code.Expired(end.Add(-time.Second)))
	assert.True(t, code.Expired(end))
	assert.True(t, code.Expired(end.Add(time.Second)))

	assert.Equal(t, time.Second, code.Remaining(end.Add(-time.Second)))
	assert.Equal(t, time.Duration(0), code.Remaining(end.Add(time.Hour)))
}

/*
TestMemoryRepository_Extend verifies the atomic extend contract: duration
and end date move together by whole calendar months.
*/
func TestMemoryRepository_Extend(t *testing.T) {
	ctx := context.Background()
	repo := license.NewMemoryRepository()

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	code := &license.Code{
		Code:           "TESTCODE2345ABCD",
		Status:         license.StatusActive,
		BuyerName:      "Abu Faisal",
		StartAt:        start,
		DurationMonths: 1,
		EndAt:          license.AddMonths(start, 1),
	}
	require.NoError(t, repo.Create(ctx, code))

	extended, err := repo.Extend(ctx, code.Code, 2, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 3, extended.DurationMonths)
	assert.Equal(t, "2024-04-15", extended.EndAt.Format("2006-01-02"))

	// Persisted, not just returned
	fetched, err := repo.GetByCode(ctx, code.Code)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.DurationMonths)
	assert.Equal(t, extended.EndAt, fetched.EndAt)
}

/*
TestMemoryRepository_Lifecycle covers create, duplicate rejection, status
change, and delete.
*/
func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := license.NewMemoryRepository()

	start := time.Now().UTC()
	code := &license.Code{
		Code:           "LIFE2345CYCLE678",
		Status:         license.StatusActive,
		BuyerName:      "Saif",
		StartAt:        start,
		DurationMonths: 6,
		EndAt:          license.AddMonths(start, 6),
	}
	require.NoError(t, repo.Create(ctx, code))
	assert.NotZero(t, code.ID)

	dup := *code
	err := repo.Create(ctx, &dup)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyExists))

	require.NoError(t, repo.SetStatus(ctx, code.Code, license.StatusBlocked))
	fetched, err := repo.GetByCode(ctx, code.Code)
	require.NoError(t, err)
	assert.Equal(t, license.StatusBlocked, fetched.Status)

	require.NoError(t, repo.Delete(ctx, code.Code))
	_, err = repo.GetByCode(ctx, code.Code)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
