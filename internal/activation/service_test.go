// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package activation_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar46/sultans-admin/internal/activation"
	"github.com/omar46/sultans-admin/internal/license"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/sec"
	"github.com/omar46/sultans-admin/pkg/pointer"
)

// stubPropagator records bulk sweep calls.
type stubPropagator struct {
	enableCalls  int
	disableCalls int
}

func (s *stubPropagator) EnableAllNonAdmin(context.Context) error {
	s.enableCalls++
	return nil
}

func (s *stubPropagator) DisableAllNonAdmin(context.Context) error {
	s.disableCalls++
	return nil
}

// fixture seeds a repo with one code per state and returns the service
// frozen at `now`.
func fixture(t *testing.T, now time.Time) (*activation.Service, *license.MemoryRepository, *stubPropagator) {
	t.Helper()

	repo := license.NewMemoryRepository()
	ctx := context.Background()

	seed := func(value string, status license.Status, start time.Time, months int) {
		code := &license.Code{
			Code:           value,
			Status:         status,
			BuyerName:      "Abu Faisal",
			StartAt:        start,
			DurationMonths: months,
			EndAt:          license.AddMonths(start, months),
		}
		require.NoError(t, repo.Create(ctx, code))
	}

	seed("VALIDCODE2345678", license.StatusActive, now.AddDate(0, -1, 0), 6)
	seed("BLOCKEDCODE23456", license.StatusBlocked, now.AddDate(0, -1, 0), 6)
	seed("SUSPENDEDCODE234", license.StatusSuspended, now.AddDate(0, -1, 0), 6)
	seed("EXPIREDCODE23456", license.StatusActive, now.AddDate(0, -3, 0), 2)

	clock := func() time.Time { return now }
	propagator := &stubPropagator{}
	evaluator := activation.NewEvaluator(repo, clock)
	service := activation.NewService(repo, evaluator, propagator, slog.Default(), clock)
	return service, repo, propagator
}

/*
TestService_Verify_Classification checks the verdict for each code state.
Only a valid code triggers the enable sweep.
*/
func TestService_Verify_Classification(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		code     string
		wantCode string // Expected apperr code; empty means success
	}{
		{"valid", "VALIDCODE2345678", ""},
		{"valid_lowercase", "  validcode2345678 ", ""},
		{"unknown", "UNKNOWNCODE23456", apperr.CodeInvalidCode},
		{"empty", "", apperr.CodeInvalidCode},
		{"blocked", "BLOCKEDCODE23456", apperr.CodeBlocked},
		{"suspended", "SUSPENDEDCODE234", apperr.CodeSuspended},
		{"expired", "EXPIREDCODE23456", apperr.CodeExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, propagator := fixture(t, now)

			code, err := service.Verify(context.Background(), tt.code)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "VALIDCODE2345678", code.Code)
				assert.Equal(t, 1, propagator.enableCalls)
			} else {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, tt.wantCode))
				assert.Zero(t, propagator.enableCalls, "invalid code must not enable accounts")
			}
		})
	}
}

/*
TestService_Verify_BlockedBeatsExpired verifies classification order: a
code that is both blocked and expired reports blocked.
*/
func TestService_Verify_BlockedBeatsExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := license.NewMemoryRepository()

	start := now.AddDate(0, -6, 0)
	require.NoError(t, repo.Create(context.Background(), &license.Code{
		Code:           "BLOCKEDEXPIRED23",
		Status:         license.StatusBlocked,
		StartAt:        start,
		DurationMonths: 1,
		EndAt:          license.AddMonths(start, 1),
	}))

	clock := func() time.Time { return now }
	service := activation.NewService(repo, activation.NewEvaluator(repo, clock), &stubPropagator{}, slog.Default(), clock)

	_, err := service.Verify(context.Background(), "BLOCKEDEXPIRED23")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeBlocked))
}

/*
TestService_StatusForAdmin covers the re-check an admin triggers: a valid
cookie reports active, a missing or invalidated one disables all
non-admin accounts.
*/
func TestService_StatusForAdmin(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("active", func(t *testing.T) {
		service, _, propagator := fixture(t, now)

		status := service.StatusForAdmin(context.Background(), &sec.Activation{Code: "VALIDCODE2345678"})
		assert.True(t, status.Active)
		assert.Equal(t, license.StatusActive, status.Status)
		assert.Zero(t, propagator.disableCalls)
	})

	t.Run("missing_cookie", func(t *testing.T) {
		service, _, propagator := fixture(t, now)

		status := service.StatusForAdmin(context.Background(), nil)
		assert.False(t, status.Active)
		assert.Equal(t, 1, propagator.disableCalls)
	})

	t.Run("code_blocked_since_activation", func(t *testing.T) {
		service, repo, propagator := fixture(t, now)
		require.NoError(t, repo.SetStatus(context.Background(), "VALIDCODE2345678", license.StatusBlocked))

		status := service.StatusForAdmin(context.Background(), &sec.Activation{Code: "VALIDCODE2345678"})
		assert.False(t, status.Active)
		assert.Equal(t, license.StatusBlocked, status.Status)
		assert.Equal(t, 1, propagator.disableCalls)
	})

	t.Run("code_expired_since_activation", func(t *testing.T) {
		service, _, propagator := fixture(t, now)

		status := service.StatusForAdmin(context.Background(), &sec.Activation{Code: "EXPIREDCODE23456"})
		assert.False(t, status.Active)
		assert.Equal(t, 1, propagator.disableCalls)
	})
}

/*
TestService_CreateCode verifies minting: generated value, active status,
and an end date a whole number of calendar months after the start.
*/
func TestService_CreateCode(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	service, _, _ := fixture(t, now)

	code, err := service.CreateCode(context.Background(), activation.CreateInput{
		BuyerName: "Saif",
		Contact:   "0501234567",
		Months:    3,
	})
	require.NoError(t, err)

	assert.Len(t, code.Code, license.CodeLength)
	assert.Equal(t, license.StatusActive, code.Status)
	assert.Equal(t, "2024-04-15", code.EndAt.Format("2006-01-02"))
}

/*
TestService_CreateCode_Bounds verifies the month bounds on minting.
*/
func TestService_CreateCode_Bounds(t *testing.T) {
	service, _, _ := fixture(t, time.Now())

	for _, months := range []int{0, -1, 25} {
		_, err := service.CreateCode(context.Background(), activation.CreateInput{
			BuyerName: "Saif",
			Months:    months,
		})
		require.Error(t, err, "months=%d", months)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	}
}

/*
TestService_ExtendCode verifies extension through the service path.
*/
func TestService_ExtendCode(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	service, _, _ := fixture(t, now)

	before, err := service.Verify(context.Background(), "VALIDCODE2345678")
	require.NoError(t, err)

	extended, err := service.ExtendCode(context.Background(), "validcode2345678", 2)
	require.NoError(t, err)

	assert.Equal(t, before.DurationMonths+2, extended.DurationMonths)
	assert.Equal(t, license.AddMonths(before.EndAt, 2), extended.EndAt)

	_, err = service.ExtendCode(context.Background(), "VALIDCODE2345678", 0)
	require.Error(t, err)
}

/*
TestService_UpdateCode_Duration verifies that a duration change rewrites
the end date from the start date, and that the 1-24 month bound holds.
*/
func TestService_UpdateCode_Duration(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	service, _, _ := fixture(t, now)

	before, err := service.Verify(context.Background(), "VALIDCODE2345678")
	require.NoError(t, err)

	updated, err := service.UpdateCode(context.Background(), "validcode2345678", license.UpdateInput{
		DurationMonths: pointer.To(before.DurationMonths + 3),
	})
	require.NoError(t, err)

	assert.Equal(t, before.DurationMonths+3, updated.DurationMonths)
	assert.Equal(t, license.AddMonths(updated.StartAt, updated.DurationMonths), updated.EndAt)

	// shrinking works the same way
	updated, err = service.UpdateCode(context.Background(), "VALIDCODE2345678", license.UpdateInput{
		DurationMonths: pointer.To(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.DurationMonths)
	assert.Equal(t, license.AddMonths(updated.StartAt, 1), updated.EndAt)

	for _, months := range []int{0, -2, 25} {
		_, err = service.UpdateCode(context.Background(), "VALIDCODE2345678", license.UpdateInput{
			DurationMonths: pointer.To(months),
		})
		require.Error(t, err, "months=%d", months)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	}
}
