package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/schedule"
	"github.com/KwakOri/Temis-sub000/internal/team"
)

var testOwnerCounter atomic.Int64

// NewOwner returns a distinct owner name so tests sharing a database do not collide.
func NewOwner(prefix string) string {
	return fmt.Sprintf("%s-%03d", prefix, testOwnerCounter.Add(1))
}

// TopicSchema is a small three-field schema with a time, a topic line and a memo.
func TopicSchema() *schedule.Schema {
	def := schedule.Time(schedule.DefaultTime)
	empty := schedule.Text("")
	return schedule.MustSchema(
		schedule.FieldDescriptor{Key: "time", Kind: schedule.KindTime, Default: &def},
		schedule.FieldDescriptor{Key: "topic", Kind: schedule.KindText, MaxLength: 20},
		schedule.FieldDescriptor{Key: "description", Kind: schedule.KindMultiline, Default: &empty},
	)
}

// WeekRecord options
type WeekOption func(*domain.WeekRecord)

func WithPayload(p []byte) WeekOption {
	return func(r *domain.WeekRecord) {
		r.Payload = p
	}
}

func WithWeek(w schedule.Week) WeekOption {
	return func(r *domain.WeekRecord) {
		data, err := json.Marshal(w)
		if err != nil {
			panic(fmt.Sprintf("marshalling test week: %v", err))
		}
		r.Payload = data
	}
}

// NewTestWeekRecord builds a record holding the default week of TopicSchema.
func NewTestWeekRecord(owner, templateID string, opts ...WeekOption) *domain.WeekRecord {
	r := &domain.WeekRecord{Owner: owner, TemplateID: templateID}
	WithWeek(schedule.NewWeek(TopicSchema()))(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TeamWeekRecord options
type TeamWeekOption func(*domain.TeamWeekRecord)

func WithTeamPayload(p []byte) TeamWeekOption {
	return func(r *domain.TeamWeekRecord) {
		r.Payload = p
	}
}

func WithTeamWeek(w team.Week) TeamWeekOption {
	return func(r *domain.TeamWeekRecord) {
		data, err := json.Marshal(w)
		if err != nil {
			panic(fmt.Sprintf("marshalling test team week: %v", err))
		}
		r.Payload = data
	}
}

func WithTemplateID(id string) TeamWeekOption {
	return func(r *domain.TeamWeekRecord) {
		r.TemplateID = id
	}
}

// NewTestTeamWeekRecord builds a record holding the default team week.
func NewTestTeamWeekRecord(teamName, owner string, opts ...TeamWeekOption) *domain.TeamWeekRecord {
	r := &domain.TeamWeekRecord{Team: teamName, Owner: owner}
	WithTeamWeek(team.DefaultWeek())(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}
