package service

import (
	"context"
	"errors"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/schedule"
	"github.com/KwakOri/Temis-sub000/internal/team"
	tmpl "github.com/KwakOri/Temis-sub000/internal/template"
)

var (
	// ErrIndexOutOfRange is returned when a day or entry index does not
	// address an existing slot. The week is left untouched.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownField is returned when a field key is not declared by the template.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidInput is returned when raw input breaks a field constraint.
	ErrInvalidInput = errors.New("invalid input")
)

type TemplateService interface {
	List(ctx context.Context) ([]domain.Template, error)
	// Get resolves a template by ID, name, file stem or list position.
	Get(ctx context.Context, ref string) (*tmpl.Compiled, error)
}

// WeekView is an owner's week as seen through one template.
type WeekView struct {
	Owner    string
	Template *tmpl.Compiled
	Week     schedule.Week
	// Recovered is set when the stored payload could not be decoded and the
	// default week was substituted.
	Recovered bool
}

// WeekService is the editing session for an owner's week. Every mutating call
// loads the stored week, applies one operation and persists the result.
type WeekService interface {
	Load(ctx context.Context, owner, templateRef string) (*WeekView, error)
	// Owned lists the template IDs the owner has stored weeks for.
	Owned(ctx context.Context, owner string) ([]string, error)
	Reset(ctx context.Context, owner, templateRef string) (*WeekView, error)
	Save(ctx context.Context, owner, templateRef string, week schedule.Week) (*WeekView, error)
	SetOffline(ctx context.Context, owner, templateRef string, day int, offline bool) (*WeekView, error)
	SetMemo(ctx context.Context, owner, templateRef string, day int, memo string) (*WeekView, error)
	SetField(ctx context.Context, owner, templateRef string, day, entry int, key, raw string) (*WeekView, error)
	AddEntry(ctx context.Context, owner, templateRef string, day int) (*WeekView, error)
	RemoveEntry(ctx context.Context, owner, templateRef string, day, entry int) (*WeekView, error)
}

// TeamWeekView is one member's shared week.
type TeamWeekView struct {
	Team       string
	Owner      string
	TemplateID string
	Week       team.Week
	// Fallback is set when the stored payload was rejected and Week is the default.
	Fallback bool
	Problems []error
}

type TeamService interface {
	Publish(ctx context.Context, owner, templateRef, teamName string) (*TeamWeekView, error)
	Load(ctx context.Context, teamName, owner string) (*TeamWeekView, error)
	Import(ctx context.Context, teamName, owner string, data []byte) (*TeamWeekView, error)
	Board(ctx context.Context, teamName string) ([]TeamWeekView, error)
	Leave(ctx context.Context, teamName, owner string) error
}
