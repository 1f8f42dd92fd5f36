package tasks

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/formatter"
	"github.com/desertthunder/mvx/internal/models"
)

// ExportOpts contains configuration for a watchlist export.
type ExportOpts struct {
	Format  string      // Export format: json, csv, markdown, txt
	Output  string      // File path, or directory for markdown with posters (default: watchlist_{epoch}{ext})
	Posters bool        // Download posters next to a markdown export
	Logger  *log.Logger // Optional logger for poster warnings
}

// ExportResult contains the files written by [WriteExport].
type ExportResult struct {
	Format string
	Count  int
	Files  []string
}

// WriteExport writes movies to disk in the requested format.
func WriteExport(movies []models.Movie, opts ExportOpts, progress chan<- ProgressUpdate) (*ExportResult, error) {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = formatter.FormatJSON
	}

	result := &ExportResult{Format: format, Count: len(movies)}

	if opts.Posters && (format == formatter.FormatMarkdown || format == "md") {
		dir := opts.Output
		if dir == "" {
			dir = fmt.Sprintf("watchlist_%d", time.Now().Unix())
		}

		md, err := formatter.WriteMarkdownExport(movies, dir, true, func(id string, err error) {
			if opts.Logger != nil {
				opts.Logger.Warn("failed to download poster", "id", id, "error", err)
			}
		})
		if err != nil {
			return nil, err
		}

		result.Files = md.Files
		sendProgress(progress, exportedUpdate(format, md.Directory, len(movies)))
		return result, nil
	}

	data, err := formatter.Export(format, movies)
	if err != nil {
		return nil, err
	}

	path := opts.Output
	if path == "" {
		path = fmt.Sprintf("watchlist_%d%s", time.Now().Unix(), formatter.Extension(format))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}

	result.Files = []string{path}
	sendProgress(progress, exportedUpdate(format, path, len(movies)))
	return result, nil
}
