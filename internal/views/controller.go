package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/formatter"
	"github.com/desertthunder/mvx/internal/metrics"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/tasks"
)

// Labels, placeholders, and notices shown by the front ends.
const (
	LabelWatchlist       = "My Watchlist"
	LabelSearch          = "Search for Movie"
	PlaceholderSearch    = "Search for a movie"
	PlaceholderNoData    = "No data"
	NoticeNoResults      = "Unable to find what you're looking for. Please try another search."
	NoticeEmptyWatchlist = "Your watchlist is empty."
)

// Mode is which of the two views is displayed.
type Mode int

const (
	SearchMode Mode = iota
	WatchlistMode
)

func (m Mode) String() string {
	switch m {
	case SearchMode:
		return "search"
	case WatchlistMode:
		return "watchlist"
	default:
		return ""
	}
}

// Watchlist is the store the controller mutates; [repositories.WatchlistRepository] implements it.
type Watchlist interface {
	Add(ctx context.Context, movie models.Movie) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	List() []models.Movie
}

// HistoryRecorder receives one call per finished search.
type HistoryRecorder interface {
	Record(ctx context.Context, query string, resultCount int, outcome models.SearchOutcome) error
}

// Snapshot is the renderable state of the controller.
type Snapshot struct {
	Mode        Mode
	ToggleLabel string
	Placeholder string
	Results     formatter.Results
}

// SearchBarHidden reports whether the search input should be hidden.
func (s Snapshot) SearchBarHidden() bool {
	return s.Mode == WatchlistMode
}

// HTML renders the results container.
func (s Snapshot) HTML() (string, error) {
	return formatter.RenderResults(s.Results)
}

// Controller routes search, add, remove, and toggle actions and tracks the view state.
//
// All methods are safe for concurrent use. Network calls are made without holding the lock.
type Controller struct {
	mu       sync.Mutex
	searcher tasks.Searcher
	store    Watchlist
	history  HistoryRecorder
	logger   *log.Logger

	mode        Mode
	placeholder string
	search      formatter.Results
	latest      []models.Movie
	ticket      uint64
}

// Option configures a [Controller].
type Option func(*Controller)

// WithHistory records every finished search in h.
func WithHistory(h HistoryRecorder) Option {
	return func(c *Controller) { c.history = h }
}

// WithLogger sets the controller logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a controller in the initial state: search view, "Start exploring" content.
func NewController(searcher tasks.Searcher, store Watchlist, opts ...Option) *Controller {
	c := &Controller{
		searcher:    searcher,
		store:       store,
		mode:        SearchMode,
		placeholder: PlaceholderSearch,
		search:      formatter.Results{Intro: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = shared.NewLogger(nil)
	}
	c.logger = shared.WithLogger(c.logger, "component", "controller")
	return c
}

// Snapshot returns the current renderable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// snapshot builds the state. Callers hold c.mu.
func (c *Controller) snapshot() Snapshot {
	s := Snapshot{Mode: c.mode, Placeholder: c.placeholder}

	switch c.mode {
	case WatchlistMode:
		s.ToggleLabel = LabelSearch
		movies := c.store.List()
		if len(movies) == 0 {
			s.Results = formatter.Results{Notice: NoticeEmptyWatchlist}
		} else {
			s.Results = formatter.Results{Movies: movies, Watchlist: true}
		}
	default:
		s.ToggleLabel = LabelWatchlist
		s.Results = c.search
	}
	return s
}

// Search looks up title and replaces the search content with the results.
//
// The placeholder is reset on every call. When nothing matches, the placeholder reads "No data"
// and the content is the no-results notice. Any other failure is logged and leaves the content as it was.
// A search overtaken by a newer one returns [shared.ErrSuperseded] and changes nothing.
// A blank title is rejected without a ticket, so it never overtakes a search in flight.
func (c *Controller) Search(ctx context.Context, title string) (Snapshot, error) {
	query := strings.TrimSpace(title)

	c.mu.Lock()
	c.placeholder = PlaceholderSearch
	if query == "" {
		defer c.mu.Unlock()
		return c.snapshot(), fmt.Errorf("%w: search title is empty", shared.ErrInvalidInput)
	}
	c.ticket++
	ticket := c.ticket
	c.mu.Unlock()

	logger := c.logger.With("ticket", ticket, "query", query)

	result, err := c.searcher.Search(ctx, query, nil)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket != c.ticket {
		logger.Debug("discarding superseded search", "current", c.ticket)
		c.record(ctx, query, 0, models.OutcomeSuperseded)
		return c.snapshot(), fmt.Errorf("%w: ticket %d", shared.ErrSuperseded, ticket)
	}

	switch {
	case errors.Is(err, shared.ErrNoResults):
		logger.Info("no results")
		c.placeholder = PlaceholderNoData
		c.search = formatter.Results{Notice: NoticeNoResults}
		c.latest = nil
		c.mode = SearchMode
		c.record(ctx, query, 0, models.OutcomeNoResults)
		return c.snapshot(), nil

	case err != nil:
		logger.Error("search failed", "error", err)
		c.record(ctx, query, 0, models.OutcomeFailed)
		return c.snapshot(), err
	}

	logger.Info("search complete", "count", len(result.Movies))
	c.search = formatter.Results{Movies: result.Movies}
	c.latest = result.Movies
	c.mode = SearchMode
	c.record(ctx, query, len(result.Movies), models.OutcomeFound)
	return c.snapshot(), nil
}

// record counts the search and hands it to the history recorder. Callers hold c.mu.
func (c *Controller) record(ctx context.Context, query string, count int, outcome models.SearchOutcome) {
	metrics.SearchesTotal.WithLabelValues(string(outcome)).Inc()
	if c.history == nil {
		return
	}
	if err := c.history.Record(ctx, query, count, outcome); err != nil {
		c.logger.Warn("failed to record search", "query", query, "error", err)
	}
}

// Add puts the movie with identifier id into the watchlist. The view is unchanged.
//
// The record comes from the latest search results; identifiers not among them are looked up remotely.
// The boolean reports whether the watchlist changed.
func (c *Controller) Add(ctx context.Context, id string) (Snapshot, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return c.Snapshot(), false, fmt.Errorf("%w: identifier is empty", shared.ErrInvalidInput)
	}

	movie, ok := c.fromLatest(id)
	if !ok {
		var err error
		movie, err = c.searcher.Lookup(ctx, id)
		if err != nil {
			c.logger.Error("failed to look up movie", "id", id, "error", err)
			return c.Snapshot(), false, err
		}
	}

	added, err := c.store.Add(ctx, movie)
	if err != nil {
		c.logger.Error("failed to add movie", "id", id, "error", err)
	}
	return c.Snapshot(), added, err
}

func (c *Controller) fromLatest(id string) (models.Movie, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.latest {
		if m.IMDbID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

// Remove drops id from the watchlist. In the watchlist view the content reflects the updated collection.
func (c *Controller) Remove(ctx context.Context, id string) (Snapshot, bool, error) {
	removed, err := c.store.Remove(ctx, strings.TrimSpace(id))
	if err != nil {
		c.logger.Error("failed to remove movie", "id", id, "error", err)
	}
	return c.Snapshot(), removed, err
}

// Toggle switches between the search view and the watchlist view.
//
// Returning to the search view restores the search content as it was before the toggle.
func (c *Controller) Toggle() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == SearchMode {
		c.mode = WatchlistMode
	} else {
		c.mode = SearchMode
	}
	return c.snapshot()
}

// Latest returns a copy of the most recent successful search results.
func (c *Controller) Latest() []models.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Movie, len(c.latest))
	copy(out, c.latest)
	return out
}
