package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// History prints the most recent searches, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	records, err := r.history.List(ctx, int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		type row struct {
			ID          string `json:"id"`
			Query       string `json:"query"`
			ResultCount int    `json:"result_count"`
			Outcome     string `json:"outcome"`
			CreatedAt   string `json:"created_at"`
		}
		rows := make([]row, 0, len(records))
		for _, rec := range records {
			rows = append(rows, row{
				ID:          rec.ID(),
				Query:       rec.Query(),
				ResultCount: rec.ResultCount(),
				Outcome:     string(rec.Outcome()),
				CreatedAt:   rec.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	if len(records) == 0 {
		return r.writePlain("No searches yet.\n")
	}

	r.writePlainHeader("Recent searches")
	for _, rec := range records {
		r.writePlain("%s  %-10s %3d  %s\n", rec.CreatedAt().Format("2006-01-02 15:04"), rec.Outcome(), rec.ResultCount(), rec.Query())
	}
	return nil
}

// HistoryClear deletes every recorded search.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	n, err := r.history.Clear(ctx)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Cleared %d searches\n", n)
}
