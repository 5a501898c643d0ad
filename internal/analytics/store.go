// Package analytics records every query the service answers and summarises
// usage for operators.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/db"
)

// Outcome classifies how a query ended.
type Outcome string

const (
	OutcomeAnswered  Outcome = "answered"
	OutcomeGreeting  Outcome = "greeting"
	OutcomeNoResults Outcome = "no_results"
	OutcomeError     Outcome = "error"
)

// Event is one recorded query.
type Event struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	SessionID        string    `json:"session_id,omitempty"`
	Query            string    `json:"query"`
	MatchedDocuments []string  `json:"matched_documents"`
	TopScore         int       `json:"top_score"`
	Outcome          Outcome   `json:"outcome"`
	Provider         string    `json:"provider,omitempty"`
	Model            string    `json:"model,omitempty"`
	InputTokens      int       `json:"input_tokens,omitempty"`
	OutputTokens     int       `json:"output_tokens,omitempty"`
	DurationMS       int64     `json:"duration_ms"`
}

// Summary aggregates the query log.
type Summary struct {
	TotalQueries int            `json:"total_queries"`
	ByOutcome    map[string]int `json:"by_outcome"`
	TopDocuments []DocumentHits `json:"top_documents"`
}

// DocumentHits counts how often a document grounded an answer.
type DocumentHits struct {
	DocumentID string `json:"document_id"`
	Hits       int    `json:"hits"`
}

// Store provides operations on the query log.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a query event. If e.ID is empty a UUID is generated.
func (s *Store) Record(ctx context.Context, e Event) error {
	if e.Query == "" {
		return fmt.Errorf("query is required")
	}
	if e.Outcome == "" {
		return fmt.Errorf("outcome is required")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.MatchedDocuments == nil {
		e.MatchedDocuments = []string{}
	}

	matched, err := json.Marshal(e.MatchedDocuments)
	if err != nil {
		return fmt.Errorf("marshalling matched documents: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO query_events (
			id, session_id, query, matched_documents, top_score,
			outcome, provider, model, input_tokens, output_tokens, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.Query, string(matched), e.TopScore,
		string(e.Outcome), e.Provider, e.Model, e.InputTokens, e.OutputTokens, e.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("inserting query event: %w", err)
	}
	return nil
}

// Recent returns the latest events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, session_id, query, matched_documents, top_score,
			   outcome, provider, model, input_tokens, output_tokens, duration_ms
		FROM query_events ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var matched, outcome string
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.SessionID, &e.Query, &matched, &e.TopScore,
			&outcome, &e.Provider, &e.Model, &e.InputTokens, &e.OutputTokens, &e.DurationMS); err != nil {
			return nil, fmt.Errorf("scanning query event: %w", err)
		}
		e.Outcome = Outcome(outcome)
		if err := json.Unmarshal([]byte(matched), &e.MatchedDocuments); err != nil {
			e.MatchedDocuments = nil
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Summarize aggregates the whole log.
func (s *Store) Summarize(ctx context.Context) (*Summary, error) {
	summary := &Summary{ByOutcome: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx, `
		SELECT outcome, COUNT(*) FROM query_events GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("aggregating outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, fmt.Errorf("scanning outcome count: %w", err)
		}
		summary.ByOutcome[outcome] = count
		summary.TotalQueries += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hits, err := s.topDocuments(ctx, 10)
	if err != nil {
		return nil, err
	}
	summary.TopDocuments = hits
	return summary, nil
}

// topDocuments counts document appearances across the matched_documents JSON
// arrays. The log is small enough to unpack in Go rather than with SQL JSON
// functions.
func (s *Store) topDocuments(ctx context.Context, limit int) ([]DocumentHits, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT matched_documents FROM query_events`)
	if err != nil {
		return nil, fmt.Errorf("reading matched documents: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var matched string
		if err := rows.Scan(&matched); err != nil {
			return nil, fmt.Errorf("scanning matched documents: %w", err)
		}
		var ids []string
		if err := json.Unmarshal([]byte(matched), &ids); err != nil {
			continue
		}
		for _, id := range ids {
			counts[id]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hits := make([]DocumentHits, 0, len(counts))
	for id, n := range counts {
		hits = append(hits, DocumentHits{DocumentID: id, Hits: n})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Hits != hits[j].Hits {
			return hits[i].Hits > hits[j].Hits
		}
		return hits[i].DocumentID < hits[j].DocumentID
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}
