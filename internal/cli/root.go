package cli

import (
	"fmt"
	"strconv"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// DefaultTemplate is used by week and team commands when --template is not given.
const DefaultTemplate = "classic"

// App holds the services and settings the commands run against.
type App struct {
	Templates service.TemplateService
	Weeks     service.WeekService
	Teams     service.TeamService

	// Owner is the default schedule owner; --owner overrides it.
	Owner string
	// IsInteractive reports whether stdin is a terminal. Forms are only
	// offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "temis" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "temis",
		Short:         "Weekly broadcast schedules with configurable fields",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&app.Owner, "owner", "o", app.Owner, "schedule owner")

	root.AddCommand(
		newTemplateCmd(app),
		newWeekCmd(app),
		newTeamCmd(app),
	)

	return root
}

// dayValue is a pflag.Value accepting weekday names or indexes.
type dayValue struct {
	day *int
}

var _ pflag.Value = (*dayValue)(nil)

func newDayValue(p *int) *dayValue {
	*p = -1
	return &dayValue{day: p}
}

func (d *dayValue) String() string {
	if d.day == nil || *d.day < 0 || *d.day >= len(domain.Weekdays) {
		return ""
	}
	return domain.Weekdays[*d.day]
}

func (d *dayValue) Set(s string) error {
	i, err := parseDay(s)
	if err != nil {
		return err
	}
	*d.day = i
	return nil
}

func (d *dayValue) Type() string { return "day" }

func parseDay(s string) (int, error) {
	i, ok := domain.ParseWeekday(s)
	if !ok {
		return 0, fmt.Errorf("unknown day %q (use mon..sun or 0..6)", s)
	}
	return i, nil
}

// parseEntry turns a 1-based entry number into an index.
func parseEntry(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("entry must be a number, got %q", s)
	}
	return n - 1, nil
}
