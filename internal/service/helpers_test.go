package service

import (
	"bytes"
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/KwakOri/Temis-sub000/internal/testutil"
	"github.com/charmbracelet/log"
)

type services struct {
	db        *sql.DB
	templates TemplateService
	weeks     WeekService
	teams     TeamService
	events    *recordingObserver
	logs      *bytes.Buffer
}

func setupServices(t *testing.T) *services {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	var logs bytes.Buffer
	l := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})
	events := &recordingObserver{}
	templates := NewTemplateService("", 3, l)

	return &services{
		db:        database,
		templates: templates,
		weeks:     NewWeekService(uow, templates, l, events),
		teams:     NewTeamService(uow, templates, l, events),
		events:    events,
		logs:      &logs,
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
