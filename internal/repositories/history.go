package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// SearchHistoryRepository persists [models.SearchRecord] rows in the search_history table.
type SearchHistoryRepository struct {
	db *sql.DB
}

// NewSearchHistoryRepository creates a new SearchHistoryRepository with the given database connection
func NewSearchHistoryRepository(db *sql.DB) *SearchHistoryRepository {
	return &SearchHistoryRepository{db: db}
}

// Create inserts a new [models.SearchRecord] with a generated ID
func (r *SearchHistoryRepository) Create(ctx context.Context, record *models.SearchRecord) error {
	if record.ID() == "" {
		record.SetID(shared.GenerateID())
	}

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO search_history (id, query, result_count, outcome, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID(),
		record.Query(),
		record.ResultCount(),
		string(record.Outcome()),
		record.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert search record: %w", err)
	}

	return nil
}

// List returns the most recent searches, newest first. A non-positive limit returns every row.
func (r *SearchHistoryRepository) List(ctx context.Context, limit int) ([]*models.SearchRecord, error) {
	query := `
		SELECT id, query, result_count, outcome, created_at
		FROM search_history
		ORDER BY created_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	var records []*models.SearchRecord
	for rows.Next() {
		record, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Clear deletes every search record and returns how many were removed.
func (r *SearchHistoryRepository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM search_history")
	if err != nil {
		return 0, fmt.Errorf("failed to clear search history: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

// Record implements the view controller's history hook.
func (r *SearchHistoryRepository) Record(ctx context.Context, query string, resultCount int, outcome models.SearchOutcome) error {
	return r.Create(ctx, models.NewSearchRecord(query, resultCount, outcome))
}

// scanRow scans a row from [sql.Rows] into a [models.SearchRecord]
func (r *SearchHistoryRepository) scanRow(rows *sql.Rows) (*models.SearchRecord, error) {
	var (
		id          string
		query       string
		resultCount int
		outcome     string
		createdAt   time.Time
	)

	if err := rows.Scan(&id, &query, &resultCount, &outcome, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to scan search record: %w", err)
	}

	record := models.NewSearchRecord(query, resultCount, models.SearchOutcome(outcome))
	record.SetID(id)
	record.SetCreatedAt(createdAt)
	return record, nil
}
