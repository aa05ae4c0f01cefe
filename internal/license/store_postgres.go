// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package license

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

// selectColumns is the shared projection for scanning a full Code row.
func selectColumns() string {
	s := schema.CodesLicenseCode
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		s.ID, s.Code, s.Status, s.BuyerName, s.Contact,
		s.StartAt, s.DurationMonths, s.EndAt, s.CreatedAt, s.UpdatedAt)
}

func scanCode(row pgx.Row) (*Code, error) {
	c := &Code{}
	err := row.Scan(
		&c.ID, &c.Code, &c.Status, &c.BuyerName, &c.Contact,
		&c.StartAt, &c.DurationMonths, &c.EndAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresRepository) GetByCode(context context.Context, code string) (*Code, error) {
	s := schema.CodesLicenseCode
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns(), s.Table, s.Code)

	result, err := scanCode(repository.db.QueryRow(context, query, code))
	if err != nil {
		return nil, dberr.Wrap(err, "get_license_code")
	}
	return result, nil
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Code, int, error) {
	s := schema.CodesLicenseCode

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_license_codes")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC LIMIT $1 OFFSET $2`,
		selectColumns(), s.Table, s.CreatedAt)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_license_codes")
	}
	defer rows.Close()

	codes := make([]*Code, 0)
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_license_code")
		}
		codes = append(codes, c)
	}
	return codes, total, nil
}

func (repository *PostgresRepository) Create(context context.Context, code *Code) error {
	s := schema.CodesLicenseCode
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s
	`,
		s.Table, s.Code, s.Status, s.BuyerName, s.Contact, s.StartAt, s.DurationMonths, s.EndAt,
		s.ID, s.CreatedAt, s.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		code.Code, code.Status, code.BuyerName, code.Contact,
		code.StartAt, code.DurationMonths, code.EndAt,
	).Scan(&code.ID, &code.CreatedAt, &code.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_license_code")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, code string, input UpdateInput) (*Code, error) {
	s := schema.CodesLicenseCode

	setClauses := ""
	args := []any{code}
	addSet := func(column string, value any) {
		args = append(args, value)
		if setClauses != "" {
			setClauses += ", "
		}
		setClauses += fmt.Sprintf("%s = $%d", column, len(args))
	}

	if input.BuyerName != nil {
		addSet(s.BuyerName, *input.BuyerName)
	}
	if input.Contact != nil {
		addSet(s.Contact, *input.Contact)
	}
	if input.Status != nil {
		addSet(s.Status, *input.Status)
	}
	if input.DurationMonths != nil {
		// EndAt derives from StartAt, which never changes after creation,
		// so the recompute needs no row lock.
		current, err := repository.GetByCode(context, code)
		if err != nil {
			return nil, err
		}
		addSet(s.DurationMonths, *input.DurationMonths)
		addSet(s.EndAt, AddMonths(current.StartAt, *input.DurationMonths))
	}
	if setClauses == "" {
		return repository.GetByCode(context, code)
	}
	addSet(s.UpdatedAt, time.Now().UTC())

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		s.Table, setClauses, s.Code, selectColumns())

	result, err := scanCode(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "update_license_code")
	}
	return result, nil
}

func (repository *PostgresRepository) SetStatus(context context.Context, code string, status Status) error {
	s := schema.CodesLicenseCode
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		s.Table, s.Status, s.UpdatedAt, s.Code)

	tag, err := repository.db.Exec(context, query, code, status, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "set_license_code_status")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "set_license_code_status")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, code string) error {
	s := schema.CodesLicenseCode
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, s.Table, s.Code)

	tag, err := repository.db.Exec(context, query, code)
	if err != nil {
		return dberr.Wrap(err, "delete_license_code")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_license_code")
	}
	return nil
}

// Extend runs in a transaction: the row is locked, the new end date is
// computed from the locked value, and both duration and end date are
// written together. Concurrent extends serialize on the row lock, so
// months are never lost.
func (repository *PostgresRepository) Extend(context context.Context, code string, months int, now time.Time) (*Code, error) {
	s := schema.CodesLicenseCode

	tx, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "extend_license_code_begin")
	}
	defer tx.Rollback(context)

	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		selectColumns(), s.Table, s.Code)

	current, err := scanCode(tx.QueryRow(context, lockQuery, code))
	if err != nil {
		return nil, dberr.Wrap(err, "extend_license_code_lock")
	}

	current.DurationMonths += months
	current.EndAt = AddMonths(current.EndAt, months)
	current.UpdatedAt = now.UTC()

	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1`,
		s.Table, s.DurationMonths, s.EndAt, s.UpdatedAt, s.Code)

	if _, err := tx.Exec(context, updateQuery, code, current.DurationMonths, current.EndAt, current.UpdatedAt); err != nil {
		return nil, dberr.Wrap(err, "extend_license_code_update")
	}

	if err := tx.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "extend_license_code_commit")
	}
	return current, nil
}
