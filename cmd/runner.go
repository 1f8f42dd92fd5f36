package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/services"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/tasks"
	"github.com/desertthunder/mvx/internal/views"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Storage is opened lazily so commands like setup never touch the database they are about to create.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	service    services.MovieService
	engine     *tasks.LookupEngine

	db        *sql.DB
	store     repositories.KeyValueStore
	watchlist *repositories.WatchlistRepository
	history   *repositories.SearchHistoryRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Service    services.MovieService      // Defaults to an OMDb client built from Config
	DB         *sql.DB                    // Already migrated database; opened from Config when nil
	Store      repositories.KeyValueStore // Watchlist backend; selected by Config when nil
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		service:    opts.Service,
		db:         opts.DB,
		store:      opts.Store,
	}
	r.buildEngine()
	return r
}

// Before loads the configuration named by --config, keeping the defaults when the file does not exist.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	path := cmd.String("config")
	r.configPath = path
	if _, err := os.Stat(path); err != nil {
		r.logger.Debug("config file not found, using defaults", "path", path)
		return ctx, nil
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}
	r.config = config
	r.buildEngine()
	return ctx, nil
}

// SetLogger replaces the runner's logger, e.g. to send logs to a file while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.buildEngine()
}

func (r *Runner) buildEngine() {
	svc := r.service
	if svc == nil && r.config.OMDb.APIKey != "" {
		svc = services.NewOMDbServiceFromConfig(r.config.OMDb)
	}
	if svc == nil {
		r.engine = nil
		return
	}
	r.engine = tasks.NewLookupEngineFromConfig(svc, r.config.OMDb, r.logger)
}

// searcher returns the lookup engine, or [shared.ErrMissingCredentials] when no API key is configured.
func (r *Runner) searcher() (*tasks.LookupEngine, error) {
	if r.engine == nil {
		return nil, fmt.Errorf("%w: set omdb.api_key in %s or %s", shared.ErrMissingCredentials, r.configPath, shared.APIKeyEnv)
	}
	return r.engine, nil
}

// open connects storage and loads the watchlist. Safe to call more than once.
func (r *Runner) open(ctx context.Context) error {
	if r.watchlist != nil {
		return nil
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	if r.db == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		r.db = db
	}

	if r.store == nil {
		store, err := repositories.OpenStore(ctx, r.config, r.db)
		if err != nil {
			return err
		}
		r.store = store
	}

	r.watchlist = repositories.NewWatchlistRepository(r.store, r.config.Storage.Key, r.logger)
	if err := r.watchlist.Load(ctx); err != nil {
		return err
	}
	r.history = repositories.NewSearchHistoryRepository(r.db)
	return nil
}

// controller builds a view controller over the opened watchlist.
func (r *Runner) controller(ctx context.Context) (*views.Controller, error) {
	engine, err := r.searcher()
	if err != nil {
		return nil, err
	}
	if err := r.open(ctx); err != nil {
		return nil, err
	}
	return views.NewController(engine, r.watchlist, views.WithHistory(r.history), views.WithLogger(r.logger)), nil
}

// Close releases the store and database.
func (r *Runner) Close() error {
	var errs []error
	if r.store != nil {
		errs = append(errs, r.store.Close())
	}
	if r.db != nil {
		errs = append(errs, r.db.Close())
	}
	return errors.Join(errs...)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, searchCommand, watchlistCommand, historyCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
