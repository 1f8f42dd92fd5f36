package models

import (
	"fmt"
	"time"
)

// Model defines the base interface for persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// SearchOutcome classifies how a search ended.
type SearchOutcome string

const (
	OutcomeFound      SearchOutcome = "found"
	OutcomeNoResults  SearchOutcome = "no_results"
	OutcomeFailed     SearchOutcome = "failed"
	OutcomeSuperseded SearchOutcome = "superseded"
)

// SearchRecord is one search issued through the view controller.
type SearchRecord struct {
	id          string
	query       string
	resultCount int
	outcome     SearchOutcome
	createdAt   time.Time
}

var _ Model = (*SearchRecord)(nil)

// NewSearchRecord creates a [SearchRecord] stamped with the current time.
func NewSearchRecord(query string, resultCount int, outcome SearchOutcome) *SearchRecord {
	return &SearchRecord{
		query:       query,
		resultCount: resultCount,
		outcome:     outcome,
		createdAt:   time.Now(),
	}
}

func (s *SearchRecord) ID() string               { return s.id }
func (s *SearchRecord) SetID(id string)          { s.id = id }
func (s *SearchRecord) Query() string            { return s.query }
func (s *SearchRecord) ResultCount() int         { return s.resultCount }
func (s *SearchRecord) Outcome() SearchOutcome   { return s.outcome }
func (s *SearchRecord) CreatedAt() time.Time     { return s.createdAt }
func (s *SearchRecord) SetCreatedAt(t time.Time) { s.createdAt = t }

// Validate checks the record before it is persisted.
func (s *SearchRecord) Validate() error {
	if s.id == "" {
		return fmt.Errorf("search record id is required")
	}
	if s.query == "" {
		return fmt.Errorf("search query is required")
	}
	if s.resultCount < 0 {
		return fmt.Errorf("result count cannot be negative: %d", s.resultCount)
	}
	switch s.outcome {
	case OutcomeFound, OutcomeNoResults, OutcomeFailed, OutcomeSuperseded:
	default:
		return fmt.Errorf("unknown search outcome: %q", s.outcome)
	}
	return nil
}
