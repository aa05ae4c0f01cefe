// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package castle

import (
	"context"
	"log/slog"

	"github.com/omar46/sultans-admin/internal/platform/validate"
	"github.com/omar46/sultans-admin/pkg/pagination"
	"github.com/omar46/sultans-admin/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Input carries every editable castle field. Create and update share the
// same form.
type Input struct {
	Name             string    `json:"name"`
	Rank             string    `json:"rank"`
	Type             string    `json:"type"`
	Giant            int       `json:"giant"`
	BarracksArmor    int       `json:"barracksArmor"`
	ArchersArmor     int       `json:"archersArmor"`
	BarracksPiercing int       `json:"barracksPiercing"`
	ArchersPiercing  int       `json:"archersPiercing"`
	NormalRally      int       `json:"normalRally"`
	SuperRally       int       `json:"superRally"`
	Drops            int       `json:"drops"`
	AccountEmail     string    `json:"accountEmail"`
	AccountPassword  string    `json:"accountPassword"`
	Readiness        Readiness `json:"readiness"`
}

func (input Input) validate() error {
	v := &validate.Validator{}
	return v.
		Required("name", input.Name).
		OneOf("rank", input.Rank, string(RankRow1), string(RankRow2), string(RankRow3)).
		OneOf("type", input.Type, string(TypeArchers), string(TypeBarracks), string(TypeMixed)).
		Err()
}

// apply copies the form onto a castle record.
func (input Input) apply(castle *Castle) {
	castle.Name = input.Name
	castle.Rank = Rank(input.Rank)
	castle.Type = Type(input.Type)
	castle.Giant = input.Giant
	castle.BarracksArmor = input.BarracksArmor
	castle.ArchersArmor = input.ArchersArmor
	castle.BarracksPiercing = input.BarracksPiercing
	castle.ArchersPiercing = input.ArchersPiercing
	castle.NormalRally = input.NormalRally
	castle.SuperRally = input.SuperRally
	castle.Drops = input.Drops
	castle.AccountEmail = input.AccountEmail
	castle.AccountPassword = input.AccountPassword
	castle.Readiness = input.Readiness
}

// RosterPage is one page of the castle listing plus the whole-roster
// aggregates shown above the table.
type RosterPage struct {
	Castles []*Castle       `json:"castles"`
	Meta    pagination.Meta `json:"meta"`
	Totals  Totals          `json:"totals"`
}

// List returns one roster page. The totals always cover the full roster,
// not just the returned page.
func (service *Service) List(ctx context.Context, params pagination.Params) (*RosterPage, error) {
	castles, total, err := service.repo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	totals, err := service.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	return &RosterPage{
		Castles: castles,
		Meta:    pagination.NewMeta(params.Page, params.Limit, total),
		Totals:  totals,
	}, nil
}

// GetAll returns the complete roster ordered by rank. Used by the war
// attendance picker.
func (service *Service) GetAll(ctx context.Context) ([]*Castle, error) {
	return service.repo.GetAll(ctx)
}

func (service *Service) Get(ctx context.Context, id string) (*Castle, error) {
	return service.repo.Get(ctx, id)
}

func (service *Service) Create(ctx context.Context, input Input) (*Castle, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	castle := &Castle{ID: uuid.New()}
	input.apply(castle)

	if err := service.repo.Create(ctx, castle); err != nil {
		return nil, err
	}

	service.logger.Info("castle created",
		slog.String("id", castle.ID),
		slog.String("rank", string(castle.Rank)),
	)
	return castle, nil
}

func (service *Service) Update(ctx context.Context, id string, input Input) (*Castle, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	castle, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(castle)

	if err := service.repo.Update(ctx, castle); err != nil {
		return nil, err
	}
	return castle, nil
}

func (service *Service) Delete(ctx context.Context, id string) error {
	return service.repo.Delete(ctx, id)
}
