package tasks

import (
	"fmt"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SearchTitles Phase = iota
	FetchDetails
	Complete
	ExportWatchlist
)

func (p Phase) String() string {
	switch p {
	case SearchTitles:
		return "search_titles"
	case FetchDetails:
		return "fetch_details"
	case Complete:
		return "complete"
	case ExportWatchlist:
		return "export_watchlist"
	default:
		return ""
	}
}

func searchingUpdate(title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTitles,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching OMDb for %q...", title),
	}
}

func foundTitlesUpdate(summaries []services.OMDbSummary) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetails,
		Step:    0,
		Total:   len(summaries),
		Message: fmt.Sprintf("Found %d titles, fetching details...", len(summaries)),
		Data:    summaries,
	}
}

func detailUpdate(step, total int, m models.Movie) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetails,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, m.Title),
		Data:    m,
	}
}

func completeUpdate(result *SearchResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Search for %q returned %d movies", result.Query, len(result.Movies)),
		Data:    result,
	}
}

func exportedUpdate(format, path string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportWatchlist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Exported %d movies as %s to %s", count, format, path),
	}
}
