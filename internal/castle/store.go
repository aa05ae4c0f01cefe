// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package castle

import "context"

// Repository is the castle roster storage contract.
//
// List orders by rank ascending (row1 before row2 before row3) and pages
// by offset; GetAll returns the full roster in the same order. Both also
// serve the attendance picker, which needs every castle id.
type Repository interface {
	Get(ctx context.Context, id string) (*Castle, error)
	List(ctx context.Context, limit, offset int) ([]*Castle, int, error)
	GetAll(ctx context.Context) ([]*Castle, error)
	Totals(ctx context.Context) (Totals, error)
	Create(ctx context.Context, castle *Castle) error
	Update(ctx context.Context, castle *Castle) error
	Delete(ctx context.Context, id string) error
}
