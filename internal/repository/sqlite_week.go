package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KwakOri/Temis-sub000/internal/db"
	"github.com/KwakOri/Temis-sub000/internal/domain"
)

// SQLiteWeekRepo implements WeekRepo using a SQLite database.
type SQLiteWeekRepo struct {
	db db.DBTX
}

func NewSQLiteWeekRepo(conn db.DBTX) *SQLiteWeekRepo {
	return &SQLiteWeekRepo{db: conn}
}

const weekColumns = `id, owner, template_id, payload, created_at, updated_at`

func (r *SQLiteWeekRepo) Get(ctx context.Context, owner, templateID string) (*domain.WeekRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+weekColumns+` FROM weeks WHERE owner = ? AND template_id = ?`,
		owner, templateID)
	rec, err := scanWeek(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("week %s/%s: %w", owner, templateID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning week: %w", err)
	}
	return rec, nil
}

// Upsert inserts rec or replaces the payload of the existing row for the same
// owner and template. rec.ID and the timestamps are filled in.
func (r *SQLiteWeekRepo) Upsert(ctx context.Context, rec *domain.WeekRecord) error {
	ensureID(&rec.ID)
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO weeks (`+weekColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner, template_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Owner, rec.TemplateID, string(rec.Payload), now, now)
	if err != nil {
		return fmt.Errorf("upserting week: %w", err)
	}
	stored, err := r.Get(ctx, rec.Owner, rec.TemplateID)
	if err != nil {
		return err
	}
	*rec = *stored
	return nil
}

func (r *SQLiteWeekRepo) Delete(ctx context.Context, owner, templateID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM weeks WHERE owner = ? AND template_id = ?`, owner, templateID)
	if err != nil {
		return fmt.Errorf("deleting week: %w", err)
	}
	return nil
}

func (r *SQLiteWeekRepo) ListByOwner(ctx context.Context, owner string) ([]*domain.WeekRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+weekColumns+` FROM weeks WHERE owner = ? ORDER BY template_id`, owner)
	if err != nil {
		return nil, fmt.Errorf("listing weeks: %w", err)
	}
	defer rows.Close()

	var out []*domain.WeekRecord
	for rows.Next() {
		rec, err := scanWeek(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning week: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWeek(s scanner) (*domain.WeekRecord, error) {
	var (
		rec                  domain.WeekRecord
		payload              string
		createdAt, updatedAt string
	)
	if err := s.Scan(&rec.ID, &rec.Owner, &rec.TemplateID, &payload, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.Payload = []byte(payload)
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)
	return &rec, nil
}
