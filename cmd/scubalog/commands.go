package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/scubalog-terminal/internal/models"
	"github.com/ngmaloney/scubalog-terminal/internal/stats"
	"github.com/ngmaloney/scubalog-terminal/internal/ui"
)

// newListCmd creates the 'list' subcommand
func newListCmd(a *app) *cobra.Command {
	var date string
	var width int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print dive cards",
		Long: `Fetch the sheet and print every dive as a card.

Example:
  scubalog list
  scubalog list --date 2024-01-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dives := stats.FilterByDate(a.client.FetchDives(cmd.Context()), date)
			out := cmd.OutOrStdout()

			if len(dives) == 0 {
				fmt.Fprintln(out, "No dives found")
				return nil
			}
			for _, d := range dives {
				fmt.Fprintln(out, ui.RenderDiveCard(d, width))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", stats.AllDates, "Only show dives on this date")
	cmd.Flags().IntVar(&width, "width", 60, "Card width in columns")
	return cmd
}

// newStatsCmd creates the 'stats' subcommand
func newStatsCmd(a *app) *cobra.Command {
	var date string
	var strict bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dive statistics",
		Long: `Fetch the sheet and print total dives, average max depth, average water
temperature and the deepest dive.

By default a failed download is treated as an empty log. Use --strict to
exit with an error instead.

Example:
  scubalog stats
  scubalog stats --date 2024-01-01 --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dives, err := a.fetch(cmd.Context(), strict)
			if err != nil {
				return err
			}

			filtered := stats.FilterByDate(dives, date)
			out := cmd.OutOrStdout()
			if date != stats.AllDates {
				fmt.Fprintf(out, "Dives for %s\n", date)
			}
			fmt.Fprintln(out, ui.RenderStats(stats.Compute(filtered), 0))

			dates := stats.UniqueDates(dives)
			if len(dates) > 0 {
				fmt.Fprintf(out, "Dates (%d): newest %s, oldest %s\n", len(dates), dates[0], dates[len(dates)-1])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", stats.AllDates, "Only include dives on this date")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail if the sheet cannot be downloaded")
	return cmd
}

// fetch loads dives, surfacing fetch errors only in strict mode
func (a *app) fetch(ctx context.Context, strict bool) ([]models.Dive, error) {
	if !strict {
		return a.client.FetchDives(ctx), nil
	}
	dives, err := a.client.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dive log: %w", err)
	}
	return dives, nil
}
