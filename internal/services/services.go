// package services defines interface MovieService for interacting with movie database HTTP APIs
package services

import (
	"context"

	"github.com/desertthunder/mvx/internal/models"
)

// MovieService defines the read-only calls a remote movie database must support.
type MovieService interface {
	// SearchTitle searches for movies whose title matches title.
	// Returns [shared.ErrNoResults] (wrapped) when the database reports no match.
	SearchTitle(ctx context.Context, title string) ([]OMDbSummary, error)

	// LookupID retrieves the full detail record for one identifier.
	LookupID(ctx context.Context, id string) (*OMDbMovie, error)

	// Name returns the name of the service (e.g., "OMDb")
	Name() string
}

// OMDbSearchResponse is the body of a search-by-title call (?s=).
//
// Response is "True" or "False"; on "False" Error carries the reason (e.g. "Movie not found!").
type OMDbSearchResponse struct {
	Search       []OMDbSummary `json:"Search"`
	TotalResults string        `json:"totalResults"`
	Response     string        `json:"Response"`
	Error        string        `json:"Error"`
}

// OMDbSummary is one entry of a search result.
type OMDbSummary struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// OMDbMovie is the body of a lookup-by-identifier call (?i=).
//
// Fields are pointers so that absent keys survive decoding as nil.
type OMDbMovie struct {
	IMDbID     *string `json:"imdbID"`
	Title      *string `json:"Title"`
	Year       *string `json:"Year"`
	Rated      *string `json:"Rated"`
	Released   *string `json:"Released"`
	Runtime    *string `json:"Runtime"`
	Genre      *string `json:"Genre"`
	Director   *string `json:"Director"`
	Actors     *string `json:"Actors"`
	Plot       *string `json:"Plot"`
	Poster     *string `json:"Poster"`
	IMDbRating *string `json:"imdbRating"`
	Type       *string `json:"Type"`
	Response   string  `json:"Response"`
	Error      string  `json:"Error"`
}

// Raw maps the detail record onto the fields of a [models.RawMovie].
func (m OMDbMovie) Raw() models.RawMovie {
	return models.RawMovie{
		IMDbID:     m.IMDbID,
		Title:      m.Title,
		Poster:     m.Poster,
		IMDbRating: m.IMDbRating,
		Genre:      m.Genre,
		Runtime:    m.Runtime,
		Plot:       m.Plot,
	}
}

// Movie normalizes the detail record into a canonical [models.Movie].
func (m OMDbMovie) Movie() models.Movie {
	return models.Normalize(m.Raw())
}
