// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package license

import (
	"context"
	"time"
)

// UpdateInput holds the mutable code fields. Nil pointers mean "leave
// unchanged". A DurationMonths change recomputes EndAt from StartAt, so
// the end date always equals StartAt advanced by the stored duration.
type UpdateInput struct {
	BuyerName      *string
	Contact        *string
	Status         *Status
	DurationMonths *int
}

// Repository is the persistence surface for activation codes.
type Repository interface {
	// GetByCode returns the record for a normalized code string.
	GetByCode(ctx context.Context, code string) (*Code, error)

	// List returns codes ordered by creation time (newest first) plus
	// the total count.
	List(ctx context.Context, limit, offset int) ([]*Code, int, error)

	// Create persists a freshly minted code and fills its ID.
	Create(ctx context.Context, code *Code) error

	// Update applies the non-nil fields of input.
	Update(ctx context.Context, code string, input UpdateInput) (*Code, error)

	// SetStatus changes only the administrative status.
	SetStatus(ctx context.Context, code string, status Status) error

	// Delete removes the code permanently.
	Delete(ctx context.Context, code string) error

	// Extend atomically adds months to the code's duration and pushes
	// EndAt forward by the same calendar months, returning the updated
	// record. now is only used for the UpdatedAt stamp.
	Extend(ctx context.Context, code string, months int, now time.Time) (*Code, error)
}
