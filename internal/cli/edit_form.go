package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/KwakOri/Temis-sub000/internal/cli/formatter"
	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/schedule"
	"github.com/KwakOri/Temis-sub000/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	errSingleLine     = errors.New("memo must fit on one line")
	errNotInteractive = errors.New("week edit needs a terminal; use `week set` instead")
)

// temisHuhTheme returns a huh theme using the formatter palette.
func temisHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// editKeyMap lets esc abandon the form as well as ctrl+c.
func editKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}

// entryDraft holds the form's working copy of one entry plus its day flags.
type entryDraft struct {
	schema  *schedule.Schema
	day     int
	entry   int
	text    map[string]*string
	flags   map[string]*bool
	offline bool
	memo    string
}

func newEntryDraft(schema *schedule.Schema, w schedule.Week, day, entry int) (*entryDraft, error) {
	if !w.ValidEntry(day, entry) {
		return nil, fmt.Errorf("day %d entry #%d: %w", day, entry+1, service.ErrIndexOutOfRange)
	}
	d, _ := w.Day(day)
	e := d.Entries[entry]

	draft := &entryDraft{
		schema:  schema,
		day:     day,
		entry:   entry,
		text:    map[string]*string{},
		flags:   map[string]*bool{},
		offline: d.IsOffline,
		memo:    d.OfflineMemo,
	}
	for _, f := range schema.Fields() {
		v, _ := e.Get(f.Key)
		if f.Kind == schedule.KindBool {
			b := v.Bool()
			draft.flags[f.Key] = &b
			continue
		}
		s := schedule.Encode(f, v)
		draft.text[f.Key] = &s
	}
	return draft, nil
}

// form builds one group for the entry fields and one for the day flags.
func (d *entryDraft) form(title string) *huh.Form {
	fields := make([]huh.Field, 0, d.schema.Len())
	for _, f := range d.schema.Fields() {
		fields = append(fields, fieldInput(f, d.text[f.Key], d.flags[f.Key]))
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title(title),
		huh.NewGroup(
			huh.NewConfirm().Title("Offline this day?").Affirmative("Yes").Negative("No").Value(&d.offline),
			memoInput(&d.memo),
		),
	).WithTheme(temisHuhTheme()).WithKeyMap(editKeyMap())
}

// apply writes the draft back through the field codec.
func (d *entryDraft) apply(w schedule.Week) schedule.Week {
	for _, f := range d.schema.Fields() {
		var v schedule.Value
		if f.Kind == schedule.KindBool {
			v = schedule.Bool(*d.flags[f.Key])
		} else {
			v, _ = d.schema.DecodeField(f.Key, *d.text[f.Key])
		}
		w = w.UpdateEntryField(d.day, d.entry, f.Key, v)
	}
	return w.SetDayOffline(d.day, d.offline).SetOfflineMemo(d.day, d.memo)
}

func newWeekEditCmd(app *App, templateRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "edit DAY ENTRY",
		Short: "Edit an entry in an interactive form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			entry, err := parseEntry(args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()
			view, err := app.Weeks.Load(ctx, app.Owner, *templateRef)
			if err != nil {
				return err
			}
			draft, err := newEntryDraft(view.Template.Schema, view.Week, day, entry)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			title := fmt.Sprintf("%s · %s #%d", weekTitle(view), domain.Weekdays[day], entry+1)
			form := draft.form(title).WithProgramOptions(tea.WithInput(cmd.InOrStdin()), tea.WithOutput(out))
			if err := form.RunWithContext(ctx); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(out, formatter.Dim("Edit cancelled."))
					return nil
				}
				return err
			}

			saved, err := app.Weeks.Save(ctx, app.Owner, *templateRef, draft.apply(view.Week))
			if err != nil {
				return err
			}
			printSavedDay(out, saved.Template.Schema, saved.Week, day)
			return nil
		},
	}
}

func printSavedDay(out io.Writer, schema *schedule.Schema, w schedule.Week, day int) {
	d, _ := w.Day(day)
	fmt.Fprintln(out, formatter.FormatDay("Saved", schema, day, d))
}
