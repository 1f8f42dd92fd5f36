package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mvx/internal/formatter"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string {
	if i.movie.IMDbRating == "" {
		return i.movie.Title
	}
	return fmt.Sprintf("%s ★ %s", i.movie.Title, i.movie.IMDbRating)
}

func (i movieItem) Description() string {
	var parts []string
	for _, s := range []string{i.movie.Runtime, i.movie.Genre} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if plot, cut := shared.Truncate(i.movie.Plot, formatter.PlotLimit); plot != "" {
		if cut {
			plot += "..."
		}
		parts = append(parts, plot)
	}
	return strings.Join(parts, " • ")
}

func movieItems(movies []models.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m}
	}
	return items
}
