// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package war

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omar46/sultans-admin/internal/platform/database/schema"
	"github.com/omar46/sultans-admin/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func selectColumns() string {
	s := schema.WarWar
	return fmt.Sprintf("%s, %s, %s, %s, %s", s.ID, s.Name, s.Type, s.Date, s.CreatedAt)
}

func scanWar(row pgx.Row) (*War, error) {
	w := &War{}
	if err := row.Scan(&w.ID, &w.Name, &w.Type, &w.Date, &w.CreatedAt); err != nil {
		return nil, err
	}
	return w, nil
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*War, error) {
	s := schema.WarWar
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns(), s.Table, s.ID)

	result, err := scanWar(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_war")
	}
	return result, nil
}

func (repository *PostgresRepository) List(context context.Context) ([]*War, error) {
	s := schema.WarWar
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`, selectColumns(), s.Table, s.Date)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_wars")
	}
	defer rows.Close()

	wars := make([]*War, 0)
	for rows.Next() {
		w, err := scanWar(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_war")
		}
		wars = append(wars, w)
	}
	return wars, nil
}

func (repository *PostgresRepository) Create(context context.Context, war *War) error {
	s := schema.WarWar
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, s.Table, s.ID, s.Name, s.Type, s.Date, s.CreatedAt)

	err := repository.db.QueryRow(context, query, war.ID, war.Name, war.Type, war.Date).
		Scan(&war.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_war")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, war *War) error {
	s := schema.WarWar
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1`,
		s.Table, s.Name, s.Type, s.Date, s.ID)

	tag, err := repository.db.Exec(context, query, war.ID, war.Name, war.Type, war.Date)
	if err != nil {
		return dberr.Wrap(err, "update_war")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_war")
	}
	return nil
}

// Delete removes the war row; schedule and attendance rows follow through
// the foreign keys' ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	s := schema.WarWar
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, s.Table, s.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_war")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_war")
	}
	return nil
}

func (repository *PostgresRepository) GetSchedule(context context.Context, warID string) (*Schedule, error) {
	s := schema.WarSchedule
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		s.WarID, s.EnemyPlatforms, s.EnemyTiles, s.Supers, s.UpdatedAt, s.Table, s.WarID)

	schedule := &Schedule{}
	err := repository.db.QueryRow(context, query, warID).Scan(
		&schedule.WarID, &schedule.EnemyPlatforms, &schedule.EnemyTiles,
		&schedule.Supers, &schedule.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_war_schedule")
	}
	return schedule, nil
}

func (repository *PostgresRepository) SaveSchedule(context context.Context, schedule *Schedule) error {
	s := schema.WarSchedule
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s
	`,
		s.Table, s.WarID, s.EnemyPlatforms, s.EnemyTiles, s.Supers, s.UpdatedAt,
		s.WarID,
		s.EnemyPlatforms, s.EnemyPlatforms,
		s.EnemyTiles, s.EnemyTiles,
		s.Supers, s.Supers,
		s.UpdatedAt, s.UpdatedAt,
	)

	schedule.UpdatedAt = time.Now().UTC()
	_, err := repository.db.Exec(context, query,
		schedule.WarID, schedule.EnemyPlatforms, schedule.EnemyTiles,
		schedule.Supers, schedule.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "save_war_schedule")
	}
	return nil
}

func (repository *PostgresRepository) ListAttendance(context context.Context, warID string) ([]*AttendanceRecord, error) {
	s := schema.WarAttendance
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		s.WarID, s.CastleID, s.CastleName, s.RegisteredBy, s.RegisteredAt,
		s.Table, s.WarID, s.RegisteredAt)

	rows, err := repository.db.Query(context, query, warID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_war_attendance")
	}
	defer rows.Close()

	records := make([]*AttendanceRecord, 0)
	for rows.Next() {
		record := &AttendanceRecord{}
		err := rows.Scan(&record.WarID, &record.CastleID, &record.CastleName,
			&record.RegisteredBy, &record.RegisteredAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_war_attendance")
		}
		records = append(records, record)
	}
	return records, nil
}

// Register inserts one registration; the (war, castle) primary key turns
// a duplicate into an already-exists error.
func (repository *PostgresRepository) Register(context context.Context, record *AttendanceRecord) error {
	s := schema.WarAttendance
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`, s.Table, s.WarID, s.CastleID, s.CastleName, s.RegisteredBy, s.RegisteredAt)

	record.RegisteredAt = time.Now().UTC()
	_, err := repository.db.Exec(context, query,
		record.WarID, record.CastleID, record.CastleName,
		record.RegisteredBy, record.RegisteredAt,
	)
	if err != nil {
		return dberr.Wrap(err, "register_war_attendance")
	}
	return nil
}

func (repository *PostgresRepository) RegisteredCastleIDs(context context.Context, warID string) (map[string]bool, error) {
	s := schema.WarAttendance
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, s.CastleID, s.Table, s.WarID)

	rows, err := repository.db.Query(context, query, warID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_registered_castles")
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_registered_castle")
		}
		ids[id] = true
	}
	return ids, nil
}
