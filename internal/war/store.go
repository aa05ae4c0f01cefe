// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package war

import "context"

// Repository is the war calendar storage contract.
//
// List orders by war date descending, newest first. Register fails with
// an already-exists error when the castle holds a registration for the
// war; deleting a war removes its schedule and attendance with it.
type Repository interface {
	Get(ctx context.Context, id string) (*War, error)
	List(ctx context.Context) ([]*War, error)
	Create(ctx context.Context, war *War) error
	Update(ctx context.Context, war *War) error
	Delete(ctx context.Context, id string) error

	GetSchedule(ctx context.Context, warID string) (*Schedule, error)
	SaveSchedule(ctx context.Context, schedule *Schedule) error

	ListAttendance(ctx context.Context, warID string) ([]*AttendanceRecord, error)
	Register(ctx context.Context, record *AttendanceRecord) error
	RegisteredCastleIDs(ctx context.Context, warID string) (map[string]bool, error)
}
