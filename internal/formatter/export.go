package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// Export formats accepted by [Export].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
	FormatJSON     = "json"
)

// Formats lists the supported export formats.
var Formats = []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

// Export renders movies in the named format.
func Export(format string, movies []models.Movie) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ExportToCSV(movies)
	case FormatMarkdown, "md":
		return ExportToMarkdown(movies, nil)
	case FormatText, "text":
		return ExportToText(movies)
	case FormatJSON, "":
		return ExportToJSON(movies)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q (want one of %s)",
			shared.ErrInvalidArgument, format, strings.Join(Formats, ", "))
	}
}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown, "md":
		return ".md"
	case FormatText, "text":
		return ".txt"
	default:
		return ".json"
	}
}

// ExportToCSV converts movies to CSV format with columns: imdbID, Title, Rating, Genre, Runtime, Poster, Plot
func ExportToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"imdbID", "Title", "Rating", "Genre", "Runtime", "Poster", "Plot"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range movies {
		record := []string{m.IMDbID, m.Title, m.IMDbRating, m.Genre, m.Runtime, m.Poster, m.Plot}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts movies to Markdown format.
//
// posters maps an identifier to a local image filename; movies without an entry get no image.
func ExportToMarkdown(movies []models.Movie, posters map[string]string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Watchlist\n\n")
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(movies)))

	for i, m := range movies {
		buf.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, orDash(m.Title)))

		if img, ok := posters[m.IMDbID]; ok {
			buf.WriteString(fmt.Sprintf("![%s](%s)\n\n", m.Title, img))
		}

		buf.WriteString(fmt.Sprintf("- **IMDb**: [%s](https://www.imdb.com/title/%s/)\n", m.IMDbID, m.IMDbID))
		buf.WriteString(fmt.Sprintf("- **Rating**: %s\n", orDash(m.IMDbRating)))
		buf.WriteString(fmt.Sprintf("- **Genre**: %s\n", orDash(m.Genre)))
		buf.WriteString(fmt.Sprintf("- **Runtime**: %s\n", orDash(m.Runtime)))

		if m.Plot != "" {
			buf.WriteString(fmt.Sprintf("\n%s\n", m.Plot))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts movies to plain text format
func ExportToText(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Watchlist: %d movies\n\n", len(movies)))
	for i, m := range movies {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, SummaryLine(m)))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts movies to an indented JSON array in the persisted watchlist format.
func ExportToJSON(movies []models.Movie) ([]byte, error) {
	if movies == nil {
		movies = []models.Movie{}
	}
	return shared.MarshalJSON(movies, true)
}

// SummaryLine formats a movie as "Title [id] (rating) - runtime, genre", leaving out empty parts.
func SummaryLine(m models.Movie) string {
	var b strings.Builder
	b.WriteString(orDash(m.Title))
	b.WriteString(fmt.Sprintf(" [%s]", m.IMDbID))
	if m.IMDbRating != "" {
		b.WriteString(fmt.Sprintf(" (%s)", m.IMDbRating))
	}

	var extra []string
	for _, s := range []string{m.Runtime, m.Genre} {
		if s != "" {
			extra = append(extra, s)
		}
	}
	if len(extra) > 0 {
		b.WriteString(" - " + strings.Join(extra, ", "))
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Posters   int
}

// WriteMarkdownExport exports movies to {dir}/README.md, optionally downloading posters into {dir}/posters.
//
// Poster download failures are reported through warn and skipped.
func WriteMarkdownExport(movies []models.Movie, dir string, withPosters bool, warn func(id string, err error)) (*MarkdownExportResult, error) {
	if dir == "" {
		dir = "watchlist"
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{Directory: dir, Files: []string{}}
	posters := map[string]string{}

	if withPosters {
		posterDir := filepath.Join(dir, "posters")
		if err := os.MkdirAll(posterDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create poster directory: %w", err)
		}

		for _, m := range movies {
			if !m.HasPoster() {
				continue
			}

			data, err := DownloadImage(m.Poster)
			if err != nil {
				if warn != nil {
					warn(m.IMDbID, err)
				}
				continue
			}

			name := m.IMDbID + posterExt(m.Poster)
			p := filepath.Join(posterDir, name)
			if err := os.WriteFile(p, data, 0644); err != nil {
				if warn != nil {
					warn(m.IMDbID, err)
				}
				continue
			}

			posters[m.IMDbID] = path.Join("posters", name)
			result.Files = append(result.Files, p)
			result.Posters++
		}
	}

	mdData, err := ExportToMarkdown(movies, posters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(dir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)
	return result, nil
}

func posterExt(url string) string {
	ext := strings.ToLower(path.Ext(url))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
