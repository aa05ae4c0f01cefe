// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package war_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar46/sultans-admin/internal/castle"
	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/war"
)

func newFixture(t *testing.T) (*war.Service, *castle.Service) {
	t.Helper()
	castles := castle.NewService(castle.NewMemoryRepository(), slog.Default())
	wars := war.NewService(war.NewMemoryRepository(), castles, slog.Default())
	return wars, castles
}

func seedWar(t *testing.T, service *war.Service, name, warType, date string) *war.War {
	t.Helper()
	created, err := service.Create(context.Background(), war.Input{
		Name: name, Type: warType, Date: date,
	})
	require.NoError(t, err)
	return created
}

func seedCastle(t *testing.T, service *castle.Service, name, rank string) *castle.Castle {
	t.Helper()
	created, err := service.Create(context.Background(), castle.Input{
		Name: name, Rank: rank, Type: "mixed",
	})
	require.NoError(t, err)
	return created
}

/*
TestCreateAndList verifies war creation and the newest-first calendar
ordering.
*/
func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	service, _ := newFixture(t)

	seedWar(t, service, "First Strike", "mamalik", "2026-01-10T18:00:00Z")
	seedWar(t, service, "Desert Storm", "sahara", "2026-03-05T18:00:00Z")
	seedWar(t, service, "Night Raid", "majd", "2026-02-01T18:00:00Z")

	wars, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, wars, 3)
	assert.Equal(t, "Desert Storm", wars[0].Name)
	assert.Equal(t, "Night Raid", wars[1].Name)
	assert.Equal(t, "First Strike", wars[2].Name)

	for name, input := range map[string]war.Input{
		"missing_name": {Type: "mamalik", Date: "2026-01-10T18:00:00Z"},
		"bad_type":     {Name: "X", Type: "crusade", Date: "2026-01-10T18:00:00Z"},
		"bad_date":     {Name: "X", Type: "mamalik", Date: "next tuesday"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := service.Create(ctx, input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

/*
TestUpdateAndDelete verifies the war lifecycle and that deleting a war
drops its schedule and attendance with it.
*/
func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	service, castles := newFixture(t)

	created := seedWar(t, service, "First Strike", "mamalik", "2026-01-10T18:00:00Z")
	c := seedCastle(t, castles, "Qalat Omar", "row1")

	_, err := service.Register(ctx, created.ID, war.RegisterInput{
		CastleID: c.ID, CastleName: c.Name,
	})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, war.Input{
		Name: "First Strike II", Type: "legendary", Date: "2026-01-12T18:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, war.TypeLegendary, updated.Type)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.Get(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	_, err = service.ListAttendance(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestSchedule_SectionsMergeIndependently verifies that saving one section
leaves the other sections untouched, and that an unplanned war reads as
an empty schedule.
*/
func TestSchedule_SectionsMergeIndependently(t *testing.T) {
	ctx := context.Background()
	service, _ := newFixture(t)

	created := seedWar(t, service, "First Strike", "mamalik", "2026-01-10T18:00:00Z")

	empty, err := service.GetSchedule(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.EnemyPlatforms)
	assert.Empty(t, empty.Supers)

	platforms := []war.EnemyPlatform{{ID: "p1", Name: "East Platform", Type: "Archer", ArenaCorpsPower: 900}}
	_, err = service.SaveSchedule(ctx, created.ID, war.ScheduleInput{EnemyPlatforms: &platforms})
	require.NoError(t, err)

	supers := []war.Super{{ID: "s1", PlatformName: "East Platform", Time: "3", Location: "Defense"}}
	saved, err := service.SaveSchedule(ctx, created.ID, war.ScheduleInput{Supers: &supers})
	require.NoError(t, err)

	assert.Len(t, saved.EnemyPlatforms, 1, "platform section must survive a supers-only save")
	assert.Len(t, saved.Supers, 1)
	assert.Empty(t, saved.EnemyTiles)

	// An empty (non-nil) section clears what was stored.
	cleared, err := service.SaveSchedule(ctx, created.ID, war.ScheduleInput{EnemyPlatforms: &[]war.EnemyPlatform{}})
	require.NoError(t, err)
	assert.Empty(t, cleared.EnemyPlatforms)
	assert.Len(t, cleared.Supers, 1)

	_, err = service.GetSchedule(ctx, "missing-war")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestAttendance verifies one-registration-per-castle and the available
castles picker.
*/
func TestAttendance(t *testing.T) {
	ctx := context.Background()
	service, castles := newFixture(t)

	created := seedWar(t, service, "First Strike", "mamalik", "2026-01-10T18:00:00Z")
	first := seedCastle(t, castles, "Qalat Omar", "row1")
	second := seedCastle(t, castles, "Qalat Faisal", "row2")

	record, err := service.Register(ctx, created.ID, war.RegisterInput{
		CastleID: first.ID, CastleName: first.Name, RegisteredBy: "coord@sultans.com",
	})
	require.NoError(t, err)
	assert.False(t, record.RegisteredAt.IsZero())

	_, err = service.Register(ctx, created.ID, war.RegisterInput{
		CastleID: first.ID, CastleName: first.Name,
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyExists), "a castle registers once per war")

	_, err = service.Register(ctx, "missing-war", war.RegisterInput{
		CastleID: second.ID, CastleName: second.Name,
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	records, err := service.ListAttendance(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "coord@sultans.com", records[0].RegisteredBy)

	available, err := service.AvailableCastles(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, second.ID, available[0].ID)
}

/*
TestSignup verifies the shareable registration payload: the war plus the
free castles, empty once the whole roster is registered.
*/
func TestSignup(t *testing.T) {
	ctx := context.Background()
	service, castles := newFixture(t)

	created := seedWar(t, service, "Open Gates", "sahab", "2026-02-01T18:00:00Z")
	only := seedCastle(t, castles, "Qalat Hamza", "row1")

	sheet, err := service.Signup(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, sheet.War.ID)
	require.Len(t, sheet.Castles, 1)

	_, err = service.Register(ctx, created.ID, war.RegisterInput{
		CastleID: only.ID, CastleName: only.Name, RegisteredBy: "player@sultans.com",
	})
	require.NoError(t, err)

	sheet, err = service.Signup(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, sheet.Castles)
	assert.Empty(t, sheet.Castles)

	_, err = service.Signup(ctx, "missing-war")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestTypeLabels verifies the calendar display names.
*/
func TestTypeLabels(t *testing.T) {
	assert.Equal(t, "مماليك", war.TypeMamalik.Label())
	assert.Equal(t, "أسطوري", war.TypeLegendary.Label())
	assert.Equal(t, "هرم", war.TypeHaram.Label())
	assert.Len(t, war.Types(), 7)
	assert.False(t, war.Type("crusade").Valid())
}
