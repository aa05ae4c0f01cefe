// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package castle

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

// selectColumns is the shared projection for scanning a full Castle row.
func selectColumns() string {
	s := schema.WarCastle
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		s.ID, s.Name, s.Rank, s.Type, s.Giant,
		s.BarracksArmor, s.ArchersArmor, s.BarracksPiercing, s.ArchersPiercing,
		s.NormalRally, s.SuperRally, s.Drops,
		s.AccountEmail, s.AccountPassword, s.Readiness,
		s.CreatedAt, s.UpdatedAt)
}

func scanCastle(row pgx.Row) (*Castle, error) {
	c := &Castle{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Rank, &c.Type, &c.Giant,
		&c.BarracksArmor, &c.ArchersArmor, &c.BarracksPiercing, &c.ArchersPiercing,
		&c.NormalRally, &c.SuperRally, &c.Drops,
		&c.AccountEmail, &c.AccountPassword, &c.Readiness,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Castle, error) {
	s := schema.WarCastle
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns(), s.Table, s.ID)

	result, err := scanCastle(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_castle")
	}
	return result, nil
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Castle, int, error) {
	s := schema.WarCastle

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_castles")
	}

	// rank sorts lexicographically: row1 < row2 < row3.
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC LIMIT $1 OFFSET $2`,
		selectColumns(), s.Table, s.Rank, s.Name)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_castles")
	}
	defer rows.Close()

	castles := make([]*Castle, 0)
	for rows.Next() {
		c, err := scanCastle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_castle")
		}
		castles = append(castles, c)
	}
	return castles, total, nil
}

func (repository *PostgresRepository) GetAll(context context.Context) ([]*Castle, error) {
	s := schema.WarCastle
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		selectColumns(), s.Table, s.Rank, s.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "get_all_castles")
	}
	defer rows.Close()

	castles := make([]*Castle, 0)
	for rows.Next() {
		c, err := scanCastle(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_castle")
		}
		castles = append(castles, c)
	}
	return castles, nil
}

// Totals aggregates in the database rather than pulling every row over
// the wire.
func (repository *PostgresRepository) Totals(context context.Context) (Totals, error) {
	s := schema.WarCastle
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(%s), 0),
			COALESCE(SUM(%s), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE %s >= $1)
		FROM %s
	`, s.BarracksArmor, s.ArchersArmor, s.Drops, s.Table)

	var totals Totals
	err := repository.db.QueryRow(context, query, WarReadyDrops).Scan(
		&totals.BarracksArmorSum, &totals.ArchersArmorSum,
		&totals.CastlesCount, &totals.WarReadyCount,
	)
	if err != nil {
		return Totals{}, dberr.Wrap(err, "castle_totals")
	}
	return totals, nil
}

func (repository *PostgresRepository) Create(context context.Context, castle *Castle) error {
	s := schema.WarCastle
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING %s, %s
	`,
		s.Table, s.ID, s.Name, s.Rank, s.Type, s.Giant,
		s.BarracksArmor, s.ArchersArmor, s.BarracksPiercing, s.ArchersPiercing,
		s.NormalRally, s.SuperRally, s.Drops, s.AccountEmail, s.AccountPassword, s.Readiness,
		s.CreatedAt, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		castle.ID, castle.Name, castle.Rank, castle.Type, castle.Giant,
		castle.BarracksArmor, castle.ArchersArmor, castle.BarracksPiercing, castle.ArchersPiercing,
		castle.NormalRally, castle.SuperRally, castle.Drops,
		castle.AccountEmail, castle.AccountPassword, castle.Readiness,
	).Scan(&castle.CreatedAt, &castle.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_castle")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, castle *Castle) error {
	s := schema.WarCastle
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5,
			%s = $6, %s = $7, %s = $8, %s = $9,
			%s = $10, %s = $11, %s = $12,
			%s = $13, %s = $14, %s = $15, %s = $16
		WHERE %s = $1
		RETURNING %s
	`,
		s.Table,
		s.Name, s.Rank, s.Type, s.Giant,
		s.BarracksArmor, s.ArchersArmor, s.BarracksPiercing, s.ArchersPiercing,
		s.NormalRally, s.SuperRally, s.Drops,
		s.AccountEmail, s.AccountPassword, s.Readiness, s.UpdatedAt,
		s.ID, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		castle.ID, castle.Name, castle.Rank, castle.Type, castle.Giant,
		castle.BarracksArmor, castle.ArchersArmor, castle.BarracksPiercing, castle.ArchersPiercing,
		castle.NormalRally, castle.SuperRally, castle.Drops,
		castle.AccountEmail, castle.AccountPassword, castle.Readiness, time.Now().UTC(),
	).Scan(&castle.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_castle")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	s := schema.WarCastle
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, s.Table, s.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_castle")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_castle")
	}
	return nil
}
