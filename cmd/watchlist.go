package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/mvx/internal/formatter"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// WatchlistList prints the saved movies in the order they were added.
func (r *Runner) WatchlistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	movies := r.watchlist.List()
	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	if len(movies) == 0 {
		return r.writePlain("Your watchlist is empty.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Watchlist (%d)", len(movies)))
	for i, m := range movies {
		r.writePlain("%2d. %s\n", i+1, formatter.SummaryLine(m))
	}
	return nil
}

// WatchlistAdd looks up an IMDb identifier and adds the movie to the watchlist.
func (r *Runner) WatchlistAdd(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	ctrl, err := r.controller(ctx)
	if err != nil {
		return err
	}

	_, added, err := ctrl.Add(ctx, id)
	if err != nil {
		return err
	}

	m, ok := r.watchlist.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s missing after add", shared.ErrStorage, id)
	}
	if !added {
		return r.writePlain("Already in watchlist: %s\n", m.Title)
	}
	return r.writePlain("✓ Added: %s\n", formatter.SummaryLine(m))
}

// WatchlistRemove drops an IMDb identifier from the watchlist.
func (r *Runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}
	if err := r.open(ctx); err != nil {
		return err
	}

	removed, err := r.watchlist.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return r.writePlain("Not in watchlist: %s\n", id)
	}
	return r.writePlain("✓ Removed: %s\n", id)
}

// WatchlistClear empties the watchlist.
func (r *Runner) WatchlistClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	n := r.watchlist.Len()
	if err := r.watchlist.Clear(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Cleared %d movies\n", n)
}

// WatchlistExport writes the watchlist to a file in the requested format.
func (r *Runner) WatchlistExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 1)
	result, err := tasks.WriteExport(r.watchlist.List(), tasks.ExportOpts{
		Format:  cmd.String("format"),
		Output:  cmd.String("output"),
		Posters: cmd.Bool("posters"),
		Logger:  r.logger,
	}, progress)
	close(progress)
	if err != nil {
		return err
	}

	for u := range progress {
		r.logger.Info(u.Message, "phase", u.Phase)
	}

	r.writePlain("✓ Exported %d movies as %s\n", result.Count, result.Format)
	for _, f := range result.Files {
		r.writePlain("  %s\n", f)
	}
	return nil
}
