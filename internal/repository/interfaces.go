package repository

import (
	"context"

	"github.com/KwakOri/Temis-sub000/internal/domain"
)

// WeekRepo stores each owner's rich week, one row per template.
type WeekRepo interface {
	Get(ctx context.Context, owner, templateID string) (*domain.WeekRecord, error)
	Upsert(ctx context.Context, rec *domain.WeekRecord) error
	Delete(ctx context.Context, owner, templateID string) error
	ListByOwner(ctx context.Context, owner string) ([]*domain.WeekRecord, error)
}

// TeamWeekRepo stores the shared weeks of a team board, one row per member.
// Payloads are kept as given; callers validate them.
type TeamWeekRepo interface {
	Get(ctx context.Context, team, owner string) (*domain.TeamWeekRecord, error)
	Upsert(ctx context.Context, rec *domain.TeamWeekRecord) error
	Delete(ctx context.Context, team, owner string) error
	ListByTeam(ctx context.Context, team string) ([]*domain.TeamWeekRecord, error)
}
