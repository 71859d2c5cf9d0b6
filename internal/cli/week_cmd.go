package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KwakOri/Temis-sub000/internal/cli/formatter"
	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/service"
	"github.com/spf13/cobra"
)

func newWeekCmd(app *App) *cobra.Command {
	var templateRef string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show and edit your weekly schedule",
	}
	cmd.PersistentFlags().StringVarP(&templateRef, "template", "t", DefaultTemplate, "template the week is edited with")

	cmd.AddCommand(
		newWeekListCmd(app),
		newWeekShowCmd(app, &templateRef),
		newWeekResetCmd(app, &templateRef),
		newWeekOfflineCmd(app, &templateRef),
		newWeekMemoCmd(app, &templateRef),
		newWeekSetCmd(app, &templateRef),
		newWeekAddCmd(app, &templateRef),
		newWeekRemoveCmd(app, &templateRef),
		newWeekEditCmd(app, &templateRef),
	)

	return cmd
}

func newWeekListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the templates you have stored weeks for",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := app.Weeks.Owned(context.Background(), app.Owner)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintf(out, "No stored weeks for %s.\n", app.Owner)
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}

func newWeekShowCmd(app *App, templateRef *string) *cobra.Command {
	var (
		asJSON bool
		day    int
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the week",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Weeks.Load(context.Background(), app.Owner, *templateRef)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if view.Recovered {
				fmt.Fprintln(out, formatter.StyleYellow.Render("Stored week could not be read; showing the default week."))
			}
			if asJSON {
				return writeJSON(out, view.Week)
			}

			if day >= 0 {
				d, _ := view.Week.Day(day)
				title := weekTitle(view) + " · " + domain.Weekdays[day]
				fmt.Fprintln(out, formatter.FormatDay(title, view.Template.Schema, day, d))
				return nil
			}
			fmt.Fprintln(out, formatter.FormatWeek(weekTitle(view), view.Template.Schema, view.Week))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored week as JSON")
	cmd.Flags().Var(newDayValue(&day), "day", "show a single day (mon..sun or 0..6)")
	return cmd
}

func newWeekResetCmd(app *App, templateRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the stored week and start from defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Weeks.Reset(context.Background(), app.Owner, *templateRef)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s.\n", weekTitle(view))
			return nil
		},
	}
}

func newWeekOfflineCmd(app *App, templateRef *string) *cobra.Command {
	var online bool
	cmd := &cobra.Command{
		Use:   "offline DAY",
		Short: "Mark a day offline (or back online with --online)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			if _, err := app.Weeks.SetOffline(context.Background(), app.Owner, *templateRef, day, !online); err != nil {
				return err
			}
			state := "offline"
			if online {
				state = "online"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s.\n", domain.Weekdays[day], state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&online, "online", false, "mark the day online again")
	return cmd
}

func newWeekMemoCmd(app *App, templateRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "memo DAY [TEXT...]",
		Short: "Set the offline memo for a day (no text clears it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			memo := strings.Join(args[1:], " ")
			if _, err := app.Weeks.SetMemo(context.Background(), app.Owner, *templateRef, day, memo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Memo for %s updated.\n", domain.Weekdays[day])
			return nil
		},
	}
}

func newWeekSetCmd(app *App, templateRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set DAY ENTRY KEY VALUE",
		Short: "Set one field of an entry",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			entry, err := parseEntry(args[1])
			if err != nil {
				return err
			}
			key := args[2]
			view, err := app.Weeks.SetField(context.Background(), app.Owner, *templateRef, day, entry, key, args[3])
			if err != nil {
				return err
			}
			d, _ := view.Week.Day(day)
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s = %q\n", domain.Weekdays[day], entry+1, key, d.Entries[entry].Text(key))
			return nil
		},
	}
}

func newWeekAddCmd(app *App, templateRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add DAY",
		Short: "Add an entry to a day (up to the template's per-day cap)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			before, err := app.Weeks.Load(context.Background(), app.Owner, *templateRef)
			if err != nil {
				return err
			}
			view, err := app.Weeks.AddEntry(context.Background(), app.Owner, *templateRef, day)
			if err != nil {
				return err
			}
			was, _ := before.Week.Day(day)
			now, _ := view.Week.Day(day)
			out := cmd.OutOrStdout()
			if len(now.Entries) == len(was.Entries) {
				fmt.Fprintf(out, "%s already has %s (limit %d).\n",
					domain.Weekdays[day], formatter.Plural(len(now.Entries), "entry", "entries"), view.Template.MaxPerDay)
				return nil
			}
			fmt.Fprintf(out, "Added entry #%d to %s.\n", len(now.Entries), domain.Weekdays[day])
			return nil
		},
	}
}

func newWeekRemoveCmd(app *App, templateRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove DAY ENTRY",
		Short: "Remove an entry; the last entry of a day is reset instead",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			entry, err := parseEntry(args[1])
			if err != nil {
				return err
			}
			if _, err := app.Weeks.RemoveEntry(context.Background(), app.Owner, *templateRef, day, entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s #%d.\n", domain.Weekdays[day], entry+1)
			return nil
		},
	}
}

func weekTitle(view *service.WeekView) string {
	return fmt.Sprintf("%s · %s", view.Owner, view.Template.ID)
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
