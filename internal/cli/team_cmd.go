package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/KwakOri/Temis-sub000/internal/cli/formatter"
	"github.com/KwakOri/Temis-sub000/internal/team"
	"github.com/spf13/cobra"
)

// ErrInvalidTeamWeek is returned by `team validate` when the file is rejected.
var ErrInvalidTeamWeek = errors.New("not a valid team week")

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Share weeks on a team board",
	}

	cmd.AddCommand(
		newTeamPublishCmd(app),
		newTeamShowCmd(app),
		newTeamBoardCmd(app),
		newTeamImportCmd(app),
		newTeamValidateCmd(),
		newTeamLeaveCmd(app),
	)

	return cmd
}

func newTeamPublishCmd(app *App) *cobra.Command {
	var templateRef string
	cmd := &cobra.Command{
		Use:   "publish TEAM",
		Short: "Publish your week to a team board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Teams.Publish(context.Background(), app.Owner, templateRef, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s to %s.\n",
				formatter.Plural(view.Week.EntryCount(), "entry", "entries"), view.Team)
			return nil
		},
	}
	cmd.Flags().StringVarP(&templateRef, "template", "t", DefaultTemplate, "template of the week to publish")
	return cmd
}

func newTeamShowCmd(app *App) *cobra.Command {
	var (
		member string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "show TEAM",
		Short: "Show one member's shared week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if member == "" {
				member = app.Owner
			}
			view, err := app.Teams.Load(context.Background(), args[0], member)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, view.Week)
			}
			if view.Fallback {
				fmt.Fprint(out, formatter.FormatProblems("Stored week rejected:", view.Problems))
			}
			fmt.Fprintln(out, formatter.FormatTeamWeek(view.Team+" · "+view.Owner, view.Week, view.Fallback))
			return nil
		},
	}
	cmd.Flags().StringVarP(&member, "member", "m", "", "member to show (defaults to --owner)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the shared week as JSON")
	return cmd
}

func newTeamBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board TEAM",
		Short: "Show every member's week at a glance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := app.Teams.Board(context.Background(), args[0])
			if err != nil {
				return err
			}
			rows := make([]formatter.BoardRow, 0, len(views))
			for _, v := range views {
				rows = append(rows, formatter.BoardRow{
					Owner:    v.Owner,
					Template: v.TemplateID,
					Week:     v.Week,
					Fallback: v.Fallback,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoard(args[0], rows))
			return nil
		},
	}
}

func newTeamImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import TEAM FILE",
		Short: "Store a team week from a JSON file (- for stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			view, err := app.Teams.Import(context.Background(), args[0], app.Owner, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s for %s on %s.\n",
				formatter.Plural(view.Week.EntryCount(), "entry", "entries"), view.Owner, view.Team)
			return nil
		},
	}
}

func newTeamValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a JSON file against the team week shape (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if problems := team.ValidateWeek(data); len(problems) > 0 {
				fmt.Fprint(out, formatter.FormatProblems(fmt.Sprintf("%s: %s", args[0], formatter.Plural(len(problems), "problem", "problems")), problems))
				return ErrInvalidTeamWeek
			}
			fmt.Fprintf(out, "%s: %s\n", args[0], formatter.StyleGreen.Render("valid team week"))
			return nil
		},
	}
}

func newTeamLeaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "leave TEAM",
		Short: "Remove your week from a team board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Teams.Leave(context.Background(), args[0], app.Owner); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s left %s.\n", app.Owner, args[0])
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
