package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KwakOri/Temis-sub000/internal/db"
	"github.com/KwakOri/Temis-sub000/internal/domain"
)

// SQLiteTeamWeekRepo implements TeamWeekRepo using a SQLite database.
type SQLiteTeamWeekRepo struct {
	db db.DBTX
}

func NewSQLiteTeamWeekRepo(conn db.DBTX) *SQLiteTeamWeekRepo {
	return &SQLiteTeamWeekRepo{db: conn}
}

const teamWeekColumns = `id, team, owner, template_id, payload, created_at, updated_at`

func (r *SQLiteTeamWeekRepo) Get(ctx context.Context, team, owner string) (*domain.TeamWeekRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+teamWeekColumns+` FROM team_weeks WHERE team = ? AND owner = ?`,
		team, owner)
	rec, err := scanTeamWeek(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("team week %s/%s: %w", team, owner, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning team week: %w", err)
	}
	return rec, nil
}

func (r *SQLiteTeamWeekRepo) Upsert(ctx context.Context, rec *domain.TeamWeekRecord) error {
	ensureID(&rec.ID)
	now := nowUTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO team_weeks (`+teamWeekColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(team, owner) DO UPDATE SET
			template_id = excluded.template_id,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Team, rec.Owner, rec.TemplateID, string(rec.Payload), now, now)
	if err != nil {
		return fmt.Errorf("upserting team week: %w", err)
	}
	stored, err := r.Get(ctx, rec.Team, rec.Owner)
	if err != nil {
		return err
	}
	*rec = *stored
	return nil
}

func (r *SQLiteTeamWeekRepo) Delete(ctx context.Context, team, owner string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM team_weeks WHERE team = ? AND owner = ?`, team, owner)
	if err != nil {
		return fmt.Errorf("deleting team week: %w", err)
	}
	return nil
}

func (r *SQLiteTeamWeekRepo) ListByTeam(ctx context.Context, team string) ([]*domain.TeamWeekRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+teamWeekColumns+` FROM team_weeks WHERE team = ? ORDER BY owner`, team)
	if err != nil {
		return nil, fmt.Errorf("listing team weeks: %w", err)
	}
	defer rows.Close()

	var out []*domain.TeamWeekRecord
	for rows.Next() {
		rec, err := scanTeamWeek(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning team week: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanTeamWeek(s scanner) (*domain.TeamWeekRecord, error) {
	var (
		rec                  domain.TeamWeekRecord
		payload              string
		createdAt, updatedAt string
	)
	if err := s.Scan(&rec.ID, &rec.Team, &rec.Owner, &rec.TemplateID, &payload, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.Payload = []byte(payload)
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)
	return &rec, nil
}
