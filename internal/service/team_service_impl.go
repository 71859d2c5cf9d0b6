package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KwakOri/Temis-sub000/internal/db"
	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/logger"
	"github.com/KwakOri/Temis-sub000/internal/repository"
	"github.com/KwakOri/Temis-sub000/internal/team"
	"github.com/charmbracelet/log"
)

type teamService struct {
	uow       db.UnitOfWork
	templates TemplateService
	logger    *log.Logger
	observer  UseCaseObserver
}

func NewTeamService(
	uow db.UnitOfWork,
	templates TemplateService,
	l *log.Logger,
	observers ...UseCaseObserver,
) TeamService {
	return &teamService{
		uow:       uow,
		templates: templates,
		logger:    logger.OrDiscard(l),
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Publish converts the owner's week to the team shape and stores it on the
// team board. The owner's week is written back in normalised form in the
// same transaction.
func (s *teamService) Publish(ctx context.Context, owner, templateRef, teamName string) (view *TeamWeekView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner": owner, "template": templateRef, "team": teamName}
	defer func() { observe(ctx, s.observer, "team-publish", startedAt, fields, err) }()

	c, err := s.templates.Get(ctx, templateRef)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		weeks := repository.NewSQLiteWeekRepo(tx)
		w, _, err := loadWeek(ctx, weeks, owner, c, s.logger)
		if err != nil {
			return err
		}
		if err := storeWeek(ctx, weeks, owner, c.ID, w); err != nil {
			return fmt.Errorf("storing week: %w", err)
		}

		tw := team.ToTeamWeek(w, c.Schema)
		data, err := json.Marshal(tw)
		if err != nil {
			return fmt.Errorf("encoding team week: %w", err)
		}
		rec := &domain.TeamWeekRecord{Team: teamName, Owner: owner, TemplateID: c.ID, Payload: data}
		if err := repository.NewSQLiteTeamWeekRepo(tx).Upsert(ctx, rec); err != nil {
			return fmt.Errorf("storing team week: %w", err)
		}
		view = &TeamWeekView{Team: teamName, Owner: owner, TemplateID: c.ID, Week: tw}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["entries"] = view.Week.EntryCount()
	return view, nil
}

// Load returns a member's shared week. A stored payload that fails validation
// is logged and replaced by the default team week.
func (s *teamService) Load(ctx context.Context, teamName, owner string) (view *TeamWeekView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"team": teamName, "owner": owner}
	defer func() { observe(ctx, s.observer, "team-load", startedAt, fields, err) }()

	var rec *domain.TeamWeekRecord
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		rec, err = repository.NewSQLiteTeamWeekRepo(tx).Get(ctx, teamName, owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	v := s.decodeRecord(rec)
	fields["fallback"] = v.Fallback
	return &v, nil
}

// Import validates data and stores it as the member's shared week. Anything
// that is not a team week is rejected and nothing is written.
func (s *teamService) Import(ctx context.Context, teamName, owner string, data []byte) (view *TeamWeekView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"team": teamName, "owner": owner, "bytes": len(data)}
	defer func() { observe(ctx, s.observer, "team-import", startedAt, fields, err) }()

	tw, err := team.Decode(data)
	if err != nil {
		return nil, err
	}
	canonical, err := json.Marshal(tw)
	if err != nil {
		return nil, fmt.Errorf("encoding team week: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		rec := &domain.TeamWeekRecord{Team: teamName, Owner: owner, Payload: canonical}
		return repository.NewSQLiteTeamWeekRepo(tx).Upsert(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	fields["entries"] = tw.EntryCount()
	return &TeamWeekView{Team: teamName, Owner: owner, Week: tw}, nil
}

// Board returns every member's week, substituting defaults for rejected payloads.
func (s *teamService) Board(ctx context.Context, teamName string) (views []TeamWeekView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"team": teamName}
	defer func() { observe(ctx, s.observer, "team-board", startedAt, fields, err) }()

	var recs []*domain.TeamWeekRecord
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		recs, err = repository.NewSQLiteTeamWeekRepo(tx).ListByTeam(ctx, teamName)
		return err
	})
	if err != nil {
		return nil, err
	}

	views = make([]TeamWeekView, 0, len(recs))
	fallbacks := 0
	for _, rec := range recs {
		v := s.decodeRecord(rec)
		if v.Fallback {
			fallbacks++
		}
		views = append(views, v)
	}
	fields["members"] = len(views)
	fields["fallbacks"] = fallbacks
	return views, nil
}

func (s *teamService) Leave(ctx context.Context, teamName, owner string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"team": teamName, "owner": owner}
	defer func() { observe(ctx, s.observer, "team-leave", startedAt, fields, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		teamWeeks := repository.NewSQLiteTeamWeekRepo(tx)
		if _, err := teamWeeks.Get(ctx, teamName, owner); err != nil {
			return err
		}
		return teamWeeks.Delete(ctx, teamName, owner)
	})
}

func (s *teamService) decodeRecord(rec *domain.TeamWeekRecord) TeamWeekView {
	v := TeamWeekView{Team: rec.Team, Owner: rec.Owner, TemplateID: rec.TemplateID}
	problems := team.ValidateWeek(json.RawMessage(rec.Payload))
	if len(problems) > 0 {
		s.logger.Warn("team week rejected, using default",
			"team", rec.Team, "owner", rec.Owner, "problems", len(problems), "error", errors.Join(problems...))
		v.Week = team.DefaultWeek()
		v.Fallback = true
		v.Problems = problems
		return v
	}
	tw, err := team.Decode(rec.Payload)
	if err != nil {
		s.logger.Warn("team week rejected, using default", "team", rec.Team, "owner", rec.Owner, "error", err)
		v.Week = team.DefaultWeek()
		v.Fallback = true
		v.Problems = []error{err}
		return v
	}
	v.Week = tw
	return v
}
