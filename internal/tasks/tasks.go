package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/services"
	"github.com/desertthunder/mvx/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers = 4
	maxWorkers     = 10
)

// SearchResult contains the canonical records for one title search, in search order.
type SearchResult struct {
	Query  string         // Title as searched
	Movies []models.Movie // Normalized detail records
}

// Searcher defines the lookup operations the view layer depends on.
type Searcher interface {
	// Search performs a title search and fetches the detail record of every match.
	Search(ctx context.Context, title string, progress chan<- ProgressUpdate) (*SearchResult, error)

	// Lookup fetches one detail record by identifier.
	Lookup(ctx context.Context, id string) (models.Movie, error)
}

// LookupOpts contains configuration for a [LookupEngine].
type LookupOpts struct {
	Workers   int         // Concurrent detail lookups (default: 4, max: 10)
	RateLimit float64     // Detail requests per second; non-positive disables pacing
	Logger    *log.Logger // Optional logger
}

// LookupEngine implements [Searcher] on top of a [services.MovieService].
//
// The limiter is shared by every search issued through the same engine.
type LookupEngine struct {
	svc     services.MovieService
	workers int
	limiter *rate.Limiter
	logger  *log.Logger
}

var _ Searcher = (*LookupEngine)(nil)

// NewLookupEngine creates a new LookupEngine with the provided service.
func NewLookupEngine(svc services.MovieService, opts LookupOpts) *LookupEngine {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Workers > maxWorkers {
		opts.Workers = maxWorkers
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &LookupEngine{
		svc:     svc,
		workers: opts.Workers,
		limiter: rate.NewLimiter(limit, opts.Workers),
		logger:  shared.WithLogger(logger, "component", "lookup"),
	}
}

// NewLookupEngineFromConfig builds a [LookupEngine] from the [shared.OMDbConfig] section.
func NewLookupEngineFromConfig(svc services.MovieService, cfg shared.OMDbConfig, logger *log.Logger) *LookupEngine {
	return NewLookupEngine(svc, LookupOpts{
		Workers:   cfg.Workers,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Search performs a title search followed by one detail lookup per match.
//
// Detail lookups run concurrently but results keep the order of the search response.
// A failed lookup cancels the rest and fails the whole search.
// When the database reports no match the returned error wraps [shared.ErrNoResults].
func (e *LookupEngine) Search(ctx context.Context, title string, progress chan<- ProgressUpdate) (*SearchResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: movie service not initialized", shared.ErrServiceUnavailable)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: search title is empty", shared.ErrInvalidInput)
	}

	sendProgress(progress, searchingUpdate(title))

	summaries, err := e.svc.SearchTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	total := len(summaries)
	e.logger.Debug("search matched", "title", title, "count", total)
	sendProgress(progress, foundTitlesUpdate(summaries))

	movies := make([]models.Movie, total)
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, summary := range summaries {
		g.Go(func() error {
			if err := e.limiter.Wait(gctx); err != nil {
				return err
			}

			detail, err := e.svc.LookupID(gctx, summary.IMDbID)
			if err != nil {
				return fmt.Errorf("failed to fetch details for %s: %w", summary.IMDbID, err)
			}

			movies[i] = detail.Movie()
			sendProgress(progress, detailUpdate(int(done.Add(1)), total, movies[i]))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &SearchResult{Query: title, Movies: movies}
	sendProgress(progress, completeUpdate(result))
	return result, nil
}

// Lookup fetches and normalizes the detail record for id.
func (e *LookupEngine) Lookup(ctx context.Context, id string) (models.Movie, error) {
	if e.svc == nil {
		return models.Movie{}, fmt.Errorf("%w: movie service not initialized", shared.ErrServiceUnavailable)
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return models.Movie{}, fmt.Errorf("%w: identifier is empty", shared.ErrInvalidInput)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return models.Movie{}, err
	}

	detail, err := e.svc.LookupID(ctx, id)
	if err != nil {
		return models.Movie{}, err
	}
	return detail.Movie(), nil
}
