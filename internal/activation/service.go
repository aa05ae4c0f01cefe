// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package activation

import (
	"context"
	"log/slog"
	"time"

	"github.com/omar46/sultans-admin/internal/license"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/sec"
	"github.com/omar46/sultans-admin/internal/platform/validate"
)

// Propagator is the slice of the ownership propagator the activation flow
// needs: flipping every non-admin account at once.
type Propagator interface {
	EnableAllNonAdmin(ctx context.Context) error
	DisableAllNonAdmin(ctx context.Context) error
}

// AdminStatus is the activation state reported to a logged-in admin.
type AdminStatus struct {
	Active bool           `json:"active"`
	Status license.Status `json:"status,omitempty"`
	EndAt  *time.Time     `json:"endAt,omitempty"`
}

type Service struct {
	repo       license.Repository
	evaluator  *Evaluator
	propagator Propagator
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates the activation service. now may be nil for the wall
// clock.
func NewService(repo license.Repository, evaluator *Evaluator, propagator Propagator, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:       repo,
		evaluator:  evaluator,
		propagator: propagator,
		logger:     logger,
		now:        now,
	}
}

// Verify checks the submitted code and, when valid, re-enables every
// non-admin account in the clan. The returned record carries the end date
// the caller needs for the activation cookies.
func (service *Service) Verify(ctx context.Context, rawCode string) (*license.Code, error) {
	code, err := service.evaluator.Evaluate(ctx, rawCode)
	if err != nil {
		return nil, err
	}

	if err := service.propagator.EnableAllNonAdmin(ctx); err != nil {
		// The code itself is valid; surface the sweep failure so the
		// admin retries rather than leaving half the clan locked out.
		return nil, err
	}

	service.logger.Info("activation code verified",
		slog.String("code", code.Code),
		slog.Time("end_at", code.EndAt),
	)
	return code, nil
}

// StatusForAdmin re-evaluates the activation cookie carried by a logged-in
// admin. When the license is no longer valid every non-admin account is
// disabled before the inactive status is reported.
func (service *Service) StatusForAdmin(ctx context.Context, activation *sec.Activation) AdminStatus {
	if activation == nil || activation.Code == "" {
		service.disableAll(ctx, "missing activation cookie")
		return AdminStatus{Active: false}
	}

	code, err := service.evaluator.Evaluate(ctx, activation.Code)
	if err != nil {
		service.disableAll(ctx, "activation no longer valid")

		status := AdminStatus{Active: false}
		if stored, getErr := service.repo.GetByCode(ctx, license.NormalizeCode(activation.Code)); getErr == nil {
			status.Status = stored.Status
			status.EndAt = &stored.EndAt
		}
		return status
	}

	return AdminStatus{Active: true, Status: code.Status, EndAt: &code.EndAt}
}

func (service *Service) disableAll(ctx context.Context, reason string) {
	if err := service.propagator.DisableAllNonAdmin(ctx); err != nil {
		service.logger.Error("disable sweep failed",
			slog.String("reason", reason),
			slog.String("error", err.Error()),
		)
	}
}

// ── Codes admin management ──

// CreateInput is the codes-admin mint form.
type CreateInput struct {
	BuyerName string `json:"buyerName"`
	Contact   string `json:"contact"`
	Months    int    `json:"months"`
}

// ListCodes returns a page of codes, newest first, plus the total count.
func (service *Service) ListCodes(ctx context.Context, limit, offset int) ([]*license.Code, int, error) {
	return service.repo.List(ctx, limit, offset)
}

// CreateCode mints a new code valid from now for the requested months.
func (service *Service) CreateCode(ctx context.Context, input CreateInput) (*license.Code, error) {
	v := &validate.Validator{}
	err := v.
		Required("buyerName", input.BuyerName).
		Range("months", input.Months, license.MinDurationMonths, license.MaxDurationMonths).
		Err()
	if err != nil {
		return nil, err
	}

	value, err := license.GenerateCode()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := service.now().UTC()
	code := &license.Code{
		Code:           value,
		Status:         license.StatusActive,
		BuyerName:      input.BuyerName,
		Contact:        input.Contact,
		StartAt:        now,
		DurationMonths: input.Months,
		EndAt:          license.AddMonths(now, input.Months),
	}
	if err := service.repo.Create(ctx, code); err != nil {
		return nil, err
	}

	service.logger.Info("activation code minted",
		slog.String("code", code.Code),
		slog.Int("months", input.Months),
	)
	return code, nil
}

// UpdateCode applies the non-nil fields of input to the code. A duration
// change recomputes the end date from the start date.
func (service *Service) UpdateCode(ctx context.Context, rawCode string, input license.UpdateInput) (*license.Code, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, validate.RequiredError("status", "Must be one of: active, blocked, suspended")
	}
	if input.DurationMonths != nil {
		v := &validate.Validator{}
		err := v.Range("durationMonths", *input.DurationMonths,
			license.MinDurationMonths, license.MaxDurationMonths).Err()
		if err != nil {
			return nil, err
		}
	}
	return service.repo.Update(ctx, license.NormalizeCode(rawCode), input)
}

// SetStatus changes only the administrative status of the code.
func (service *Service) SetStatus(ctx context.Context, rawCode string, status license.Status) error {
	if !status.Valid() {
		return validate.RequiredError("status", "Must be one of: active, blocked, suspended")
	}
	return service.repo.SetStatus(ctx, license.NormalizeCode(rawCode), status)
}

// DeleteCode removes the code permanently.
func (service *Service) DeleteCode(ctx context.Context, rawCode string) error {
	return service.repo.Delete(ctx, license.NormalizeCode(rawCode))
}

// ExtendCode atomically adds months to the code's validity.
func (service *Service) ExtendCode(ctx context.Context, rawCode string, months int) (*license.Code, error) {
	v := &validate.Validator{}
	if err := v.Range("months", months, license.MinDurationMonths, license.MaxDurationMonths).Err(); err != nil {
		return nil, err
	}
	return service.repo.Extend(ctx, license.NormalizeCode(rawCode), months, service.now())
}
