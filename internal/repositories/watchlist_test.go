package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

func movie(id, title string) models.Movie {
	return models.Movie{IMDbID: id, Title: title, Poster: models.MissingPoster}
}

func persisted(t *testing.T, store KeyValueStore) []models.Movie {
	t.Helper()
	raw, ok, err := store.Get(context.Background(), DefaultWatchlistKey)
	if err != nil {
		t.Fatalf("failed to read persisted watchlist: %v", err)
	}
	if !ok {
		t.Fatal("expected watchlist key to be persisted")
	}

	var movies []models.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		t.Fatalf("persisted watchlist is not JSON: %v", err)
	}
	return movies
}

func TestWatchlistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Load", func(t *testing.T) {
		t.Run("Absent Key Is Empty", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewWatchlistRepository(NewSQLiteStore(db), "", nil)
			if err := repo.Load(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if repo.Len() != 0 {
				t.Errorf("expected empty watchlist, got %d", repo.Len())
			}
		})

		t.Run("Corrupt Document Is Empty", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			store := NewSQLiteStore(db)
			store.Set(ctx, DefaultWatchlistKey, "{not json")

			repo := NewWatchlistRepository(store, "", nil)
			if err := repo.Load(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if repo.Len() != 0 {
				t.Errorf("expected empty watchlist, got %d", repo.Len())
			}
		})

		t.Run("Drops Duplicates And Missing Identifiers", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			store := NewSQLiteStore(db)
			store.Set(ctx, DefaultWatchlistKey, `[
				{"imdbID":"tt1","Title":"One"},
				{"Title":"Nameless"},
				{"imdbID":"tt1","Title":"One Again"},
				{"imdbID":"tt2","Title":"Two","Poster":"N/A"}
			]`)

			repo := NewWatchlistRepository(store, "", nil)
			if err := repo.Load(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			list := repo.List()
			if len(list) != 2 {
				t.Fatalf("expected 2 movies, got %d", len(list))
			}
			if list[0].Title != "One" || list[1].IMDbID != "tt2" {
				t.Errorf("unexpected list %+v", list)
			}
			if list[1].Poster != models.MissingPoster {
				t.Errorf("expected placeholder poster, got %q", list[1].Poster)
			}
		})

		t.Run("Store Failure", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			store := &failingStore{err: shared.ErrStorage, failOn: map[string]bool{"get": true}, inner: NewSQLiteStore(db)}
			repo := NewWatchlistRepository(store, "", nil)

			if err := repo.Load(ctx); !errors.Is(err, shared.ErrStorage) {
				t.Errorf("expected ErrStorage, got %v", err)
			}
			if repo.Len() != 0 {
				t.Errorf("expected empty watchlist, got %d", repo.Len())
			}
		})
	})

	t.Run("Add", func(t *testing.T) {
		t.Run("Persists In Insertion Order", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			store := NewSQLiteStore(db)
			repo := NewWatchlistRepository(store, "", nil)

			for _, m := range []models.Movie{movie("tt2", "Two"), movie("tt1", "One")} {
				added, err := repo.Add(ctx, m)
				if err != nil || !added {
					t.Fatalf("expected %s to be added, got added=%v err=%v", m.IMDbID, added, err)
				}
			}

			got := persisted(t, store)
			if len(got) != 2 || got[0].IMDbID != "tt2" || got[1].IMDbID != "tt1" {
				t.Errorf("unexpected persisted list %+v", got)
			}
		})

		t.Run("Is Idempotent", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewWatchlistRepository(NewSQLiteStore(db), "", nil)
			repo.Add(ctx, movie("tt1", "One"))

			added, err := repo.Add(ctx, movie("tt1", "One, Renamed"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if added {
				t.Error("expected second add to be a no-op")
			}
			if repo.Len() != 1 {
				t.Errorf("expected 1 movie, got %d", repo.Len())
			}
			if m, _ := repo.Get("tt1"); m.Title != "One" {
				t.Errorf("expected original record to be kept, got %q", m.Title)
			}
		})

		t.Run("Rejects Missing Identifier", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewWatchlistRepository(NewSQLiteStore(db), "", nil)
			if _, err := repo.Add(ctx, models.Movie{Title: "Nameless"}); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("Persist Failure Rolls Back", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			store := &failingStore{err: errors.New("disk full"), failOn: map[string]bool{}, inner: NewSQLiteStore(db)}
			repo := NewWatchlistRepository(store, "", nil)
			repo.Add(ctx, movie("tt1", "One"))

			store.failOn["set"] = true
			added, err := repo.Add(ctx, movie("tt2", "Two"))
			if err == nil {
				t.Fatal("expected persist error")
			}
			if added {
				t.Error("expected added to be false")
			}
			if repo.Contains("tt2") || repo.Len() != 1 {
				t.Errorf("expected in-memory list to be unchanged, got %+v", repo.List())
			}
		})
	})

	t.Run("Remove", func(t *testing.T) {
		t.Run("Add Then Remove Persists Empty Array", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			store := NewSQLiteStore(db)
			repo := NewWatchlistRepository(store, "", nil)
			repo.Add(ctx, movie("tt1", "One"))

			removed, err := repo.Remove(ctx, "tt1")
			if err != nil || !removed {
				t.Fatalf("expected removal, got removed=%v err=%v", removed, err)
			}

			raw, _, _ := store.Get(ctx, DefaultWatchlistKey)
			if raw != "[]" {
				t.Errorf("expected [] to be persisted, got %q", raw)
			}
		})

		t.Run("Unknown Identifier Still Persists", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			store := NewSQLiteStore(db)
			repo := NewWatchlistRepository(store, "", nil)

			removed, err := repo.Remove(ctx, "tt404")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if removed {
				t.Error("expected nothing to be removed")
			}
			if got := persisted(t, store); len(got) != 0 {
				t.Errorf("expected empty persisted list, got %+v", got)
			}
		})

		t.Run("Is Idempotent", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewWatchlistRepository(NewSQLiteStore(db), "", nil)
			repo.Add(ctx, movie("tt1", "One"))
			repo.Add(ctx, movie("tt2", "Two"))

			repo.Remove(ctx, "tt1")
			removed, err := repo.Remove(ctx, "tt1")
			if err != nil || removed {
				t.Errorf("expected second remove to be a no-op, got removed=%v err=%v", removed, err)
			}
			if list := repo.List(); len(list) != 1 || list[0].IMDbID != "tt2" {
				t.Errorf("unexpected list %+v", list)
			}
		})
	})

	t.Run("Survives Reload", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewSQLiteStore(db)
		first := NewWatchlistRepository(store, "", nil)
		first.Add(ctx, models.Movie{IMDbID: "tt1", Title: "One", Poster: "https://example.com/1.jpg", Plot: "A plot."})

		second := NewWatchlistRepository(store, "", nil)
		if err := second.Load(ctx); err != nil {
			t.Fatalf("failed to reload: %v", err)
		}

		got, ok := second.Get("tt1")
		if !ok {
			t.Fatal("expected tt1 after reload")
		}
		want, _ := first.Get("tt1")
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewSQLiteStore(db)
		repo := NewWatchlistRepository(store, "", nil)
		repo.Add(ctx, movie("tt1", "One"))

		if err := repo.Clear(ctx); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if repo.Len() != 0 {
			t.Errorf("expected empty watchlist, got %d", repo.Len())
		}
		if _, ok, _ := store.Get(ctx, DefaultWatchlistKey); ok {
			t.Error("expected key to be deleted")
		}
	})

	t.Run("List Returns Copy", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewWatchlistRepository(NewSQLiteStore(db), "", nil)
		repo.Add(ctx, movie("tt1", "One"))

		list := repo.List()
		list[0].Title = "Mutated"

		if m, _ := repo.Get("tt1"); m.Title != "One" {
			t.Error("expected List to return a copy")
		}
	})
}
