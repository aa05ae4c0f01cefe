// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package castle_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar46/sultans-admin/internal/castle"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/pkg/pagination"
)

func newService() *castle.Service {
	return castle.NewService(castle.NewMemoryRepository(), slog.Default())
}

// baseInput returns a valid new-castle form.
func baseInput(name, rank string, drops int) castle.Input {
	return castle.Input{
		Name:          name,
		Rank:          rank,
		Type:          "mixed",
		Giant:         10,
		BarracksArmor: 100,
		ArchersArmor:  80,
		Drops:         drops,
		Readiness: castle.Readiness{
			Speedups50: 5,
			FreeHours:  48,
		},
	}
}

/*
TestCreate verifies a castle is stored with a generated id and that the
basic field validations hold.
*/
func TestCreate(t *testing.T) {
	ctx := context.Background()
	service := newService()

	created, err := service.Create(ctx, baseInput("Qalat Omar", "row1", 200))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, castle.RankRow1, created.Rank)
	assert.Equal(t, 48, created.Readiness.FreeHours)
	assert.False(t, created.CreatedAt.IsZero())

	for name, input := range map[string]castle.Input{
		"missing_name": {Rank: "row1", Type: "mixed"},
		"bad_rank":     {Name: "X", Rank: "row4", Type: "mixed"},
		"bad_type":     {Name: "X", Rank: "row1", Type: "cavalry"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := service.Create(ctx, input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

/*
TestList_TotalsCoverWholeRoster verifies the aggregates are computed over
every castle even when the page shows a subset, and that the war-ready
count uses the drops threshold.
*/
func TestList_TotalsCoverWholeRoster(t *testing.T) {
	ctx := context.Background()
	service := newService()

	_, err := service.Create(ctx, baseInput("A", "row1", 200))
	require.NoError(t, err)
	_, err = service.Create(ctx, baseInput("B", "row2", 193))
	require.NoError(t, err)
	_, err = service.Create(ctx, baseInput("C", "row3", 192))
	require.NoError(t, err)

	page, err := service.List(ctx, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.Len(t, page.Castles, 2)
	assert.Equal(t, 3, page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)

	assert.Equal(t, 3, page.Totals.CastlesCount)
	assert.Equal(t, 300, page.Totals.BarracksArmorSum)
	assert.Equal(t, 240, page.Totals.ArchersArmorSum)
	assert.Equal(t, 2, page.Totals.WarReadyCount, "drops 193 is ready, 192 is not")
}

/*
TestGetAll_OrderedByRank verifies the full roster comes back row1 first.
*/
func TestGetAll_OrderedByRank(t *testing.T) {
	ctx := context.Background()
	service := newService()

	_, err := service.Create(ctx, baseInput("Third", "row3", 0))
	require.NoError(t, err)
	_, err = service.Create(ctx, baseInput("First", "row1", 0))
	require.NoError(t, err)
	_, err = service.Create(ctx, baseInput("Second", "row2", 0))
	require.NoError(t, err)

	all, err := service.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, castle.RankRow1, all[0].Rank)
	assert.Equal(t, castle.RankRow2, all[1].Rank)
	assert.Equal(t, castle.RankRow3, all[2].Rank)
}

/*
TestUpdateAndDelete verifies the remaining lifecycle against the store.
*/
func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	service := newService()

	created, err := service.Create(ctx, baseInput("Qalat Omar", "row1", 100))
	require.NoError(t, err)

	input := baseInput("Qalat Omar", "row2", 195)
	input.Readiness.HealingHours = 12
	updated, err := service.Update(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, castle.RankRow2, updated.Rank)
	assert.True(t, updated.WarReady())
	assert.Equal(t, 12, updated.Readiness.HealingHours)

	_, err = service.Update(ctx, "missing-id", input)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	require.NoError(t, service.Delete(ctx, created.ID))
	err = service.Delete(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestLabels verifies the roster display names for ranks and types.
*/
func TestLabels(t *testing.T) {
	assert.Equal(t, "صف أول", castle.RankRow1.Label())
	assert.Equal(t, "صف ثالث", castle.RankRow3.Label())
	assert.Equal(t, "رماة", castle.TypeArchers.Label())
	assert.Equal(t, "خطين", castle.TypeMixed.Label())
}
