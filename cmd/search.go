package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mvx/internal/formatter"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search looks up a title on OMDb and prints the detailed results in search order.
//
// Movies already in the watchlist are marked with a star.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	ctrl, err := r.controller(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("searching omdb", "title", title)
	snap, err := ctrl.Search(ctx, title)
	if err != nil {
		return err
	}

	if notice := snap.Results.Notice; notice != "" {
		return r.writePlain("%s\n", notice)
	}

	movies := snap.Results.Movies
	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q (%d)", title, len(movies)))
	for _, m := range movies {
		marker := " "
		if r.watchlist.Contains(m.IMDbID) {
			marker = "★"
		}
		r.writePlain("%s %s\n", marker, formatter.SummaryLine(m))
	}
	return nil
}
