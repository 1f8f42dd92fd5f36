package models

import "strings"

// MissingPoster is the placeholder image used when a record has no poster.
const MissingPoster = "/images/missing.gif"

// notAvailable is how OMDb spells an absent value.
const notAvailable = "N/A"

// Movie is a canonical movie record: every field is populated, using the empty string
// (or [MissingPoster]) as the default.
//
// JSON field names match the persisted watchlist format.
type Movie struct {
	IMDbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	Genre      string `json:"Genre"`
	Runtime    string `json:"Runtime"`
	Plot       string `json:"Plot"`
}

// RawMovie is a loosely-shaped movie record as it arrives from the remote API or from storage.
//
// A nil field means the source did not carry it.
type RawMovie struct {
	IMDbID     *string `json:"imdbID"`
	Title      *string `json:"Title"`
	Poster     *string `json:"Poster"`
	IMDbRating *string `json:"imdbRating"`
	Genre      *string `json:"Genre"`
	Runtime    *string `json:"Runtime"`
	Plot       *string `json:"Plot"`
}

// Normalize maps a [RawMovie] into a canonical [Movie].
//
// Absent, blank, and "N/A" values become "" (or [MissingPoster] for the poster).
func Normalize(raw RawMovie) Movie {
	poster := coalesce(raw.Poster)
	if poster == "" {
		poster = MissingPoster
	}

	return Movie{
		IMDbID:     coalesce(raw.IMDbID),
		Title:      coalesce(raw.Title),
		Poster:     poster,
		IMDbRating: coalesce(raw.IMDbRating),
		Genre:      coalesce(raw.Genre),
		Runtime:    coalesce(raw.Runtime),
		Plot:       coalesce(raw.Plot),
	}
}

// Raw converts a canonical record back into a [RawMovie] with every field set.
func (m Movie) Raw() RawMovie {
	return RawMovie{
		IMDbID:     &m.IMDbID,
		Title:      &m.Title,
		Poster:     &m.Poster,
		IMDbRating: &m.IMDbRating,
		Genre:      &m.Genre,
		Runtime:    &m.Runtime,
		Plot:       &m.Plot,
	}
}

// HasPoster reports whether the record carries a real poster rather than the placeholder.
func (m Movie) HasPoster() bool {
	return m.Poster != MissingPoster
}

func coalesce(s *string) string {
	if s == nil {
		return ""
	}
	v := strings.TrimSpace(*s)
	if v == notAvailable {
		return ""
	}
	return v
}

// String returns a pointer to s, for building [RawMovie] values.
func String(s string) *string {
	return &s
}
