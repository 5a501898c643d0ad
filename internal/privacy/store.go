// Package privacy records acceptances of the data treatment policy. The
// corpus is about habeas data; the service itself keeps its own acceptance
// log for the same reason.
package privacy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/db"
)

// Acceptance is one recorded policy acceptance.
type Acceptance struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	AcceptedAt    time.Time `json:"accepted_at"`
	PolicyVersion string    `json:"policy_version"`
	UserAgent     string    `json:"user_agent,omitempty"`
	RemoteAddr    string    `json:"remote_addr,omitempty"`
	// ScreenResolution comes from the web client, for accessibility stats.
	ScreenResolution string `json:"screen_resolution,omitempty"`
}

// Store provides operations on the acceptance log.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a new acceptance. If a.ID is empty a UUID is generated.
func (s *Store) Record(ctx context.Context, a Acceptance) (string, error) {
	if a.SessionID == "" {
		return "", fmt.Errorf("session id is required")
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.PolicyVersion == "" {
		a.PolicyVersion = "1"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO privacy_acceptances (id, session_id, policy_version, user_agent, remote_addr, screen_resolution)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.SessionID, a.PolicyVersion, a.UserAgent, a.RemoteAddr, a.ScreenResolution,
	)
	if err != nil {
		return "", fmt.Errorf("inserting acceptance: %w", err)
	}
	return a.ID, nil
}

// HasAccepted reports whether the session accepted the given policy version.
func (s *Store) HasAccepted(ctx context.Context, sessionID, policyVersion string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM privacy_acceptances
		WHERE session_id = ? AND policy_version = ?`,
		sessionID, policyVersion,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking acceptance: %w", err)
	}
	return count > 0, nil
}

// Count returns the total number of recorded acceptances.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM privacy_acceptances`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting acceptances: %w", err)
	}
	return count, nil
}
