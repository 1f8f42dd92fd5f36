package models

import (
	"encoding/json"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Run("Every Field Populated For Any Missing Subset", func(t *testing.T) {
		setters := []func(*RawMovie){
			func(r *RawMovie) { r.IMDbID = String("tt0372784") },
			func(r *RawMovie) { r.Title = String("Batman Begins") },
			func(r *RawMovie) { r.Poster = String("https://example.com/p.jpg") },
			func(r *RawMovie) { r.IMDbRating = String("8.2") },
			func(r *RawMovie) { r.Genre = String("Action, Crime") },
			func(r *RawMovie) { r.Runtime = String("140 min") },
			func(r *RawMovie) { r.Plot = String("A young Bruce Wayne...") },
		}

		for mask := 0; mask < 1<<len(setters); mask++ {
			var raw RawMovie
			for i, set := range setters {
				if mask&(1<<i) != 0 {
					set(&raw)
				}
			}

			m := Normalize(raw)
			if m.Poster == "" {
				t.Fatalf("mask %b: poster must never be empty", mask)
			}
			if mask&(1<<2) == 0 && m.Poster != MissingPoster {
				t.Errorf("mask %b: expected placeholder poster, got %q", mask, m.Poster)
			}
			if mask&(1<<1) != 0 && m.Title != "Batman Begins" {
				t.Errorf("mask %b: expected title to be kept, got %q", mask, m.Title)
			}
			if mask&(1<<1) == 0 && m.Title != "" {
				t.Errorf("mask %b: expected empty title, got %q", mask, m.Title)
			}
		}
	})

	t.Run("Not Available Values Are Treated As Absent", func(t *testing.T) {
		m := Normalize(RawMovie{
			IMDbID:     String("tt1"),
			Poster:     String("N/A"),
			IMDbRating: String("N/A"),
			Plot:       String(" N/A "),
		})

		if m.Poster != MissingPoster {
			t.Errorf("expected placeholder poster, got %q", m.Poster)
		}
		if m.IMDbRating != "" {
			t.Errorf("expected empty rating, got %q", m.IMDbRating)
		}
		if m.Plot != "" {
			t.Errorf("expected empty plot, got %q", m.Plot)
		}
		if m.HasPoster() {
			t.Error("expected HasPoster to be false for the placeholder")
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := Normalize(RawMovie{IMDbID: String("tt1"), Title: String("  X  ")})
		second := Normalize(first.Raw())

		if first != second {
			t.Errorf("expected normalize to be idempotent: %+v vs %+v", first, second)
		}
	})

	t.Run("Decodes Loosely-Shaped JSON", func(t *testing.T) {
		var raw RawMovie
		if err := json.Unmarshal([]byte(`{"imdbID":"tt1","Title":"X"}`), &raw); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}

		m := Normalize(raw)
		want := Movie{IMDbID: "tt1", Title: "X", Poster: MissingPoster}
		if m != want {
			t.Errorf("expected %+v, got %+v", want, m)
		}
	})

	t.Run("Encodes With Storage Field Names", func(t *testing.T) {
		data, err := json.Marshal(Movie{IMDbID: "tt1", Title: "X", IMDbRating: "7.0"})
		if err != nil {
			t.Fatalf("failed to encode: %v", err)
		}

		var fields map[string]string
		if err := json.Unmarshal(data, &fields); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}

		for _, key := range []string{"imdbID", "Title", "Poster", "imdbRating", "Genre", "Runtime", "Plot"} {
			if _, ok := fields[key]; !ok {
				t.Errorf("expected key %s in %s", key, string(data))
			}
		}
	})
}

func TestSearchRecord(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		r := NewSearchRecord("batman", 3, OutcomeFound)
		if err := r.Validate(); err == nil {
			t.Error("expected error without an id")
		}

		r.SetID("abc")
		if err := r.Validate(); err != nil {
			t.Errorf("expected valid record, got %v", err)
		}

		bad := NewSearchRecord("batman", 0, SearchOutcome("exploded"))
		bad.SetID("abc")
		if err := bad.Validate(); err == nil {
			t.Error("expected error for unknown outcome")
		}

		empty := NewSearchRecord("", 0, OutcomeNoResults)
		empty.SetID("abc")
		if err := empty.Validate(); err == nil {
			t.Error("expected error for empty query")
		}
	})
}
