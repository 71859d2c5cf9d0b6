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
	"github.com/KwakOri/Temis-sub000/internal/schedule"
	tmpl "github.com/KwakOri/Temis-sub000/internal/template"
	"github.com/charmbracelet/log"
)

type weekService struct {
	uow       db.UnitOfWork
	templates TemplateService
	logger    *log.Logger
	observer  UseCaseObserver
}

func NewWeekService(
	uow db.UnitOfWork,
	templates TemplateService,
	l *log.Logger,
	observers ...UseCaseObserver,
) WeekService {
	return &weekService{
		uow:       uow,
		templates: templates,
		logger:    logger.OrDiscard(l),
		observer:  useCaseObserverOrNoop(observers),
	}
}

// weekOp is one pure operation on a week. It may reject the call before the
// core is touched.
type weekOp func(w schedule.Week, c *tmpl.Compiled) (schedule.Week, error)

func (s *weekService) Load(ctx context.Context, owner, templateRef string) (view *WeekView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner": owner, "template": templateRef}
	defer func() { observe(ctx, s.observer, "week-load", startedAt, fields, err) }()

	c, err := s.templates.Get(ctx, templateRef)
	if err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		w, recovered, err := loadWeek(ctx, repository.NewSQLiteWeekRepo(tx), owner, c, s.logger)
		if err != nil {
			return err
		}
		view = &WeekView{Owner: owner, Template: c, Week: w, Recovered: recovered}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["recovered"] = view.Recovered
	return view, nil
}

func (s *weekService) Owned(ctx context.Context, owner string) (ids []string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner": owner}
	defer func() { observe(ctx, s.observer, "week-owned", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		recs, err := repository.NewSQLiteWeekRepo(tx).ListByOwner(ctx, owner)
		if err != nil {
			return err
		}
		for _, r := range recs {
			ids = append(ids, r.TemplateID)
		}
		return nil
	})
	fields["count"] = len(ids)
	return ids, err
}

// Reset drops the stored week; the next load yields the default week.
func (s *weekService) Reset(ctx context.Context, owner, templateRef string) (view *WeekView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"owner": owner, "template": templateRef}
	defer func() { observe(ctx, s.observer, "week-reset", startedAt, fields, err) }()

	c, err := s.templates.Get(ctx, templateRef)
	if err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteWeekRepo(tx).Delete(ctx, owner, c.ID)
	})
	if err != nil {
		return nil, err
	}
	return &WeekView{Owner: owner, Template: c, Week: schedule.NewWeek(c.Schema)}, nil
}

func (s *weekService) Save(ctx context.Context, owner, templateRef string, week schedule.Week) (*WeekView, error) {
	return s.mutate(ctx, "week-save", owner, templateRef, nil, func(_ schedule.Week, c *tmpl.Compiled) (schedule.Week, error) {
		return week.Normalize(c.Schema), nil
	})
}

func (s *weekService) SetOffline(ctx context.Context, owner, templateRef string, day int, offline bool) (*WeekView, error) {
	fields := map[string]any{"day": day, "offline": offline}
	return s.mutate(ctx, "week-set-offline", owner, templateRef, fields, func(w schedule.Week, _ *tmpl.Compiled) (schedule.Week, error) {
		if err := checkDay(w, day); err != nil {
			return w, err
		}
		return w.SetDayOffline(day, offline), nil
	})
}

func (s *weekService) SetMemo(ctx context.Context, owner, templateRef string, day int, memo string) (*WeekView, error) {
	fields := map[string]any{"day": day}
	return s.mutate(ctx, "week-set-memo", owner, templateRef, fields, func(w schedule.Week, _ *tmpl.Compiled) (schedule.Week, error) {
		if err := checkDay(w, day); err != nil {
			return w, err
		}
		return w.SetOfflineMemo(day, memo), nil
	})
}

// SetField decodes raw through the field's codec (truncating to maxLength)
// and stores the result.
func (s *weekService) SetField(ctx context.Context, owner, templateRef string, day, entry int, key, raw string) (*WeekView, error) {
	fields := map[string]any{"day": day, "entry": entry, "key": key}
	return s.mutate(ctx, "week-set-field", owner, templateRef, fields, func(w schedule.Week, c *tmpl.Compiled) (schedule.Week, error) {
		if err := checkEntry(w, day, entry); err != nil {
			return w, err
		}
		f, ok := c.Schema.Field(key)
		if !ok {
			return w, fmt.Errorf("%q in template %s: %w", key, c.ID, ErrUnknownField)
		}
		if err := schedule.ValidateInput(f, schedule.Truncate(f, raw)); err != nil {
			return w, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		v, _ := c.Schema.DecodeField(key, raw)
		return w.UpdateEntryField(day, entry, key, v), nil
	})
}

func (s *weekService) AddEntry(ctx context.Context, owner, templateRef string, day int) (*WeekView, error) {
	fields := map[string]any{"day": day}
	return s.mutate(ctx, "week-add-entry", owner, templateRef, fields, func(w schedule.Week, c *tmpl.Compiled) (schedule.Week, error) {
		if err := checkDay(w, day); err != nil {
			return w, err
		}
		return w.AddEntry(day, c.Schema, c.MaxPerDay), nil
	})
}

func (s *weekService) RemoveEntry(ctx context.Context, owner, templateRef string, day, entry int) (*WeekView, error) {
	fields := map[string]any{"day": day, "entry": entry}
	return s.mutate(ctx, "week-remove-entry", owner, templateRef, fields, func(w schedule.Week, c *tmpl.Compiled) (schedule.Week, error) {
		if err := checkEntry(w, day, entry); err != nil {
			return w, err
		}
		return w.RemoveEntry(day, entry, c.Schema), nil
	})
}

// mutate loads the stored week, applies op and persists the result in one transaction.
func (s *weekService) mutate(ctx context.Context, name, owner, templateRef string, fields map[string]any, op weekOp) (view *WeekView, err error) {
	startedAt := time.Now().UTC()
	if fields == nil {
		fields = map[string]any{}
	}
	fields["owner"] = owner
	fields["template"] = templateRef
	defer func() { observe(ctx, s.observer, name, startedAt, fields, err) }()

	c, err := s.templates.Get(ctx, templateRef)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		weeks := repository.NewSQLiteWeekRepo(tx)
		w, recovered, err := loadWeek(ctx, weeks, owner, c, s.logger)
		if err != nil {
			return err
		}
		next, err := op(w, c)
		if err != nil {
			return err
		}
		if err := storeWeek(ctx, weeks, owner, c.ID, next); err != nil {
			return err
		}
		view = &WeekView{Owner: owner, Template: c, Week: next, Recovered: recovered}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["entries"] = view.Week.EntryCount()
	return view, nil
}

func checkDay(w schedule.Week, day int) error {
	if !w.ValidDay(day) {
		return fmt.Errorf("day %d: %w", day, ErrIndexOutOfRange)
	}
	return nil
}

func checkEntry(w schedule.Week, day, entry int) error {
	if err := checkDay(w, day); err != nil {
		return err
	}
	if !w.ValidEntry(day, entry) {
		return fmt.Errorf("day %d entry %d: %w", day, entry, ErrIndexOutOfRange)
	}
	return nil
}

// loadWeek reads the owner's week for c. A missing row yields the default
// week; an undecodable payload yields the default week with recovered set.
func loadWeek(ctx context.Context, weeks repository.WeekRepo, owner string, c *tmpl.Compiled, l *log.Logger) (schedule.Week, bool, error) {
	rec, err := weeks.Get(ctx, owner, c.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return schedule.NewWeek(c.Schema), false, nil
	}
	if err != nil {
		return schedule.Week{}, false, err
	}
	w, err := schedule.DecodeWeek(rec.Payload, c.Schema)
	if err != nil {
		l.Warn("stored week unreadable, using default", "owner", owner, "template", c.ID, "error", err)
		return schedule.NewWeek(c.Schema), true, nil
	}
	return w, false, nil
}

func storeWeek(ctx context.Context, weeks repository.WeekRepo, owner, templateID string, w schedule.Week) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encoding week: %w", err)
	}
	return weeks.Upsert(ctx, &domain.WeekRecord{Owner: owner, TemplateID: templateID, Payload: data})
}
