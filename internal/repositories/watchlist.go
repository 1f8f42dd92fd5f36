package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/metrics"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// DefaultWatchlistKey is the storage key holding the serialized watchlist.
const DefaultWatchlistKey = "watchList"

// WatchlistRepository keeps the watchlist in memory and writes the whole collection to a [KeyValueStore] after every mutation.
//
// Identifiers are unique within the collection. Insertion order is preserved.
// All methods are safe for concurrent use.
type WatchlistRepository struct {
	mu     sync.Mutex
	store  KeyValueStore
	key    string
	logger *log.Logger
	movies []models.Movie
}

// NewWatchlistRepository creates an empty repository; call [WatchlistRepository.Load] to read persisted state.
func NewWatchlistRepository(store KeyValueStore, key string, logger *log.Logger) *WatchlistRepository {
	if key == "" {
		key = DefaultWatchlistKey
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &WatchlistRepository{
		store:  store,
		key:    key,
		logger: shared.WithLogger(logger, "component", "watchlist"),
		movies: []models.Movie{},
	}
}

// Load replaces the in-memory collection with the persisted one.
//
// An absent key or a corrupt document yields an empty collection and a nil error.
// A failing store also yields an empty collection, but the error is returned.
func (r *WatchlistRepository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.movies = []models.Movie{}
	defer func() { metrics.WatchlistSize.Set(float64(len(r.movies))) }()

	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return fmt.Errorf("failed to load watchlist: %w", err)
	}
	if !ok || raw == "" {
		r.logger.Debug("no persisted watchlist, starting empty")
		return nil
	}

	var records []models.RawMovie
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		r.logger.Warn("persisted watchlist is corrupt, starting empty", "error", err)
		return nil
	}

	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		m := models.Normalize(rec)
		if m.IMDbID == "" || seen[m.IMDbID] {
			r.logger.Warn("skipping persisted entry", "id", m.IMDbID, "title", m.Title)
			continue
		}
		seen[m.IMDbID] = true
		r.movies = append(r.movies, m)
	}

	r.logger.Debug("watchlist loaded", "count", len(r.movies))
	return nil
}

// Add appends movie unless a record with the same identifier exists.
//
// Returns true when the collection changed. A movie without an identifier is rejected.
func (r *WatchlistRepository) Add(ctx context.Context, movie models.Movie) (bool, error) {
	if movie.IMDbID == "" {
		return false, fmt.Errorf("%w: movie has no identifier", shared.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(movie.IMDbID) >= 0 {
		r.logger.Info("already in watchlist", "id", movie.IMDbID, "title", movie.Title)
		metrics.WatchlistMutationsTotal.WithLabelValues("add", "noop").Inc()
		return false, nil
	}

	next := append(slices.Clone(r.movies), movie)
	if err := r.persist(ctx, next); err != nil {
		metrics.WatchlistMutationsTotal.WithLabelValues("add", "error").Inc()
		return false, err
	}

	r.movies = next
	metrics.WatchlistMutationsTotal.WithLabelValues("add", "ok").Inc()
	metrics.WatchlistSize.Set(float64(len(r.movies)))
	r.logger.Info("added", "id", movie.IMDbID, "title", movie.Title)
	return true, nil
}

// Remove drops the record with identifier id and persists the result, even when nothing matched.
//
// Returns true when a record was removed.
func (r *WatchlistRepository) Remove(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(r.movies), func(m models.Movie) bool {
		return m.IMDbID == id
	})
	removed := len(next) != len(r.movies)

	if err := r.persist(ctx, next); err != nil {
		metrics.WatchlistMutationsTotal.WithLabelValues("remove", "error").Inc()
		return false, err
	}

	r.movies = next
	result := "noop"
	if removed {
		result = "ok"
	}
	metrics.WatchlistMutationsTotal.WithLabelValues("remove", result).Inc()
	metrics.WatchlistSize.Set(float64(len(r.movies)))
	r.logger.Info("removed", "id", id, "matched", removed)
	return removed, nil
}

// Clear empties the collection and deletes the persisted key.
func (r *WatchlistRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("failed to clear watchlist: %w", err)
	}

	r.movies = []models.Movie{}
	metrics.WatchlistSize.Set(0)
	return nil
}

// List returns a copy of the collection in insertion order.
func (r *WatchlistRepository) List() []models.Movie {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.movies)
}

// Get returns the record with identifier id.
func (r *WatchlistRepository) Get(id string) (models.Movie, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		return r.movies[i], true
	}
	return models.Movie{}, false
}

// Contains reports whether a record with identifier id exists.
func (r *WatchlistRepository) Contains(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Len returns the number of records.
func (r *WatchlistRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.movies)
}

func (r *WatchlistRepository) indexOf(id string) int {
	return slices.IndexFunc(r.movies, func(m models.Movie) bool { return m.IMDbID == id })
}

// persist serializes movies under the repository key. Callers hold r.mu.
func (r *WatchlistRepository) persist(ctx context.Context, movies []models.Movie) error {
	data, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}

	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("failed to persist watchlist: %w", err)
	}
	return nil
}
