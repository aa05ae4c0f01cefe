// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package war

import (
	"context"
	"log/slog"
	"time"

	"github.com/omar46/sultans-admin/internal/castle"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/validate"
	"github.com/omar46/sultans-admin/pkg/slice"
	"github.com/omar46/sultans-admin/pkg/uuid"
)

// Roster is the slice of the castle service the attendance picker needs.
type Roster interface {
	GetAll(ctx context.Context) ([]*castle.Castle, error)
}

type Service struct {
	repo   Repository
	roster Roster
	logger *slog.Logger
}

func NewService(repo Repository, roster Roster, logger *slog.Logger) *Service {
	return &Service{repo: repo, roster: roster, logger: logger}
}

// Input is the war create/update form. Date is RFC 3339.
type Input struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Date string `json:"date"`
}

func (input Input) validate() (*War, error) {
	types := make([]string, 0, len(Types()))
	for _, t := range Types() {
		types = append(types, string(t))
	}

	v := &validate.Validator{}
	err := v.
		Required("name", input.Name).
		OneOf("type", input.Type, types...).
		Required("date", input.Date).
		Err()
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(time.RFC3339, input.Date)
	if err != nil {
		return nil, apperr.ValidationError("Invalid date", apperr.FieldError{
			Field: "date", Message: "must be an RFC 3339 timestamp",
		})
	}

	return &War{Name: input.Name, Type: Type(input.Type), Date: date}, nil
}

func (service *Service) List(ctx context.Context) ([]*War, error) {
	return service.repo.List(ctx)
}

func (service *Service) Get(ctx context.Context, id string) (*War, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, input Input) (*War, error) {
	war, err := input.validate()
	if err != nil {
		return nil, err
	}
	war.ID = uuid.New()

	if err := service.repo.Create(ctx, war); err != nil {
		return nil, err
	}

	service.logger.Info("war created",
		slog.String("id", war.ID),
		slog.String("type", string(war.Type)),
	)
	return war, nil
}

func (service *Service) Update(ctx context.Context, id string, input Input) (*War, error) {
	war, err := input.validate()
	if err != nil {
		return nil, err
	}
	war.ID = id

	if err := service.repo.Update(ctx, war); err != nil {
		return nil, err
	}
	return war, nil
}

func (service *Service) Delete(ctx context.Context, id string) error {
	return service.repo.Delete(ctx, id)
}

// GetSchedule returns the war's battle plan. A war that has never been
// planned gets an empty schedule, not an error.
func (service *Service) GetSchedule(ctx context.Context, warID string) (*Schedule, error) {
	if _, err := service.repo.Get(ctx, warID); err != nil {
		return nil, err
	}

	schedule, err := service.repo.GetSchedule(ctx, warID)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return &Schedule{
			WarID:          warID,
			EnemyPlatforms: []EnemyPlatform{},
			EnemyTiles:     []EnemyTile{},
			Supers:         []Super{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// ScheduleInput carries the sections to save. A nil section keeps
// whatever is stored; an empty one clears it.
type ScheduleInput struct {
	EnemyPlatforms *[]EnemyPlatform `json:"enemyPlatforms"`
	EnemyTiles     *[]EnemyTile     `json:"enemyTiles"`
	Supers         *[]Super         `json:"supers"`
}

// SaveSchedule merges the submitted sections over the stored plan and
// writes the result back, so two coordinators editing different sections
// do not overwrite each other.
func (service *Service) SaveSchedule(ctx context.Context, warID string, input ScheduleInput) (*Schedule, error) {
	schedule, err := service.GetSchedule(ctx, warID)
	if err != nil {
		return nil, err
	}

	if input.EnemyPlatforms != nil {
		schedule.EnemyPlatforms = *input.EnemyPlatforms
	}
	if input.EnemyTiles != nil {
		schedule.EnemyTiles = *input.EnemyTiles
	}
	if input.Supers != nil {
		schedule.Supers = *input.Supers
	}

	if err := service.repo.SaveSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (service *Service) ListAttendance(ctx context.Context, warID string) ([]*AttendanceRecord, error) {
	if _, err := service.repo.Get(ctx, warID); err != nil {
		return nil, err
	}
	return service.repo.ListAttendance(ctx, warID)
}

// RegisterInput is the attendance form.
type RegisterInput struct {
	CastleID     string `json:"castleId"`
	CastleName   string `json:"castleName"`
	RegisteredBy string `json:"registeredBy"`
}

// Register records one castle for a war. A castle registers at most once
// per war.
func (service *Service) Register(ctx context.Context, warID string, input RegisterInput) (*AttendanceRecord, error) {
	v := &validate.Validator{}
	err := v.
		Required("castleId", input.CastleID).
		Required("castleName", input.CastleName).
		Err()
	if err != nil {
		return nil, err
	}

	if _, err := service.repo.Get(ctx, warID); err != nil {
		return nil, err
	}

	record := &AttendanceRecord{
		WarID:        warID,
		CastleID:     input.CastleID,
		CastleName:   input.CastleName,
		RegisteredBy: input.RegisteredBy,
	}
	if err := service.repo.Register(ctx, record); err != nil {
		if apperr.HasCode(err, apperr.CodeAlreadyExists) {
			return nil, apperr.AlreadyExists("This castle is already registered")
		}
		return nil, err
	}
	return record, nil
}

// AvailableCastles returns the roster minus the castles already
// registered for the war, keeping the roster's rank ordering.
func (service *Service) AvailableCastles(ctx context.Context, warID string) ([]*castle.Castle, error) {
	if _, err := service.repo.Get(ctx, warID); err != nil {
		return nil, err
	}

	all, err := service.roster.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	registered, err := service.repo.RegisteredCastleIDs(ctx, warID)
	if err != nil {
		return nil, err
	}

	available := slice.Filter(all, func(c *castle.Castle) bool {
		return !registered[c.ID]
	})
	if available == nil {
		// a fully registered roster still serializes as an empty list
		available = []*castle.Castle{}
	}
	return available, nil
}

// SignupSheet is the payload of the shareable registration page: the war
// itself plus the castles still free to register.
type SignupSheet struct {
	War     *War             `json:"war"`
	Castles []*castle.Castle `json:"castles"`
}

func (service *Service) Signup(ctx context.Context, warID string) (*SignupSheet, error) {
	war, err := service.repo.Get(ctx, warID)
	if err != nil {
		return nil, err
	}

	castles, err := service.AvailableCastles(ctx, warID)
	if err != nil {
		return nil, err
	}
	return &SignupSheet{War: war, Castles: castles}, nil
}
