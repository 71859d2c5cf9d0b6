package cli

import (
	"context"
	"fmt"

	"github.com/KwakOri/Temis-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Browse schedule templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(templates) == 0 {
				fmt.Fprintln(out, "No templates found.")
				return nil
			}
			fmt.Fprintln(out, formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show TEMPLATE",
		Short: "Show a template's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Templates.Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			summary := c.Summary()
			if asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), summary.ConfigJSON)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(summary, c.Schema))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the template definition as JSON")
	return cmd
}
