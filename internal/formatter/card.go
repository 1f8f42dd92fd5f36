// package formatter renders movie records as HTML cards and exports the watchlist to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// PlotLimit is the number of runes of plot shown on a card before it is cut.
const PlotLimit = 90

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Results describes the content of the results container.
//
// Exactly one of Intro, Notice, or Movies is rendered, checked in that order.
type Results struct {
	Intro     bool           // Show the "Start exploring" placeholder
	Notice    string         // Empty-state or informational message
	Movies    []models.Movie // Cards to render
	Watchlist bool           // Cards get a remove button instead of an add button
}

type cardData struct {
	Movie     models.Movie
	Watchlist bool
	Plot      string
	Truncated bool
}

func newCardData(m models.Movie, watchlist bool) cardData {
	plot, cut := shared.Truncate(m.Plot, PlotLimit)
	return cardData{Movie: m, Watchlist: watchlist, Plot: plot, Truncated: cut}
}

// RenderCard renders one movie card.
//
// Watchlist cards carry a "Remove" button, search cards a "+ Watchlist" button.
// Plots longer than [PlotLimit] runes are cut and followed by "..." and a "Read more" button.
func RenderCard(m models.Movie, watchlist bool) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "card", newCardData(m, watchlist)); err != nil {
		return "", fmt.Errorf("failed to render card %s: %w", m.IMDbID, err)
	}
	return buf.String(), nil
}

// RenderCards renders movies in order and concatenates the cards.
func RenderCards(movies []models.Movie, watchlist bool) (string, error) {
	return RenderResults(Results{Movies: movies, Watchlist: watchlist})
}

// RenderResults renders the content of the results container.
func RenderResults(r Results) (string, error) {
	cards := make([]cardData, len(r.Movies))
	for i, m := range r.Movies {
		cards[i] = newCardData(m, r.Watchlist)
	}

	data := struct {
		Intro  bool
		Notice string
		Cards  []cardData
	}{r.Intro, r.Notice, cards}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "results", data); err != nil {
		return "", fmt.Errorf("failed to render results: %w", err)
	}
	return buf.String(), nil
}
