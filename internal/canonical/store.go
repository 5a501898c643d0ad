// Package canonical holds curated document metadata that overrides the
// extraction heuristics. Records are maintained by hand for documents whose
// headings extract badly.
package canonical

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/db"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
)

// Record is one curated metadata row.
type Record struct {
	DocumentID  string          `json:"document_id"`
	Title       string          `json:"titulo"`
	Type        library.DocType `json:"tipo_norma,omitempty"`
	Number      string          `json:"numero,omitempty"`
	Year        int             `json:"año,omitempty"`
	Description string          `json:"descripcion,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Store provides CRUD operations for canonical metadata.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Upsert inserts or replaces the record for a document.
func (s *Store) Upsert(ctx context.Context, rec Record) error {
	if rec.DocumentID == "" {
		return fmt.Errorf("document id is required")
	}
	if rec.Title == "" {
		return fmt.Errorf("title is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO canonical_metadata (document_id, titulo, tipo_norma, numero, anio, descripcion, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(document_id) DO UPDATE SET
			titulo = excluded.titulo,
			tipo_norma = excluded.tipo_norma,
			numero = excluded.numero,
			anio = excluded.anio,
			descripcion = excluded.descripcion,
			updated_at = datetime('now')`,
		rec.DocumentID, rec.Title, string(rec.Type), rec.Number, rec.Year, rec.Description,
	)
	if err != nil {
		return fmt.Errorf("upserting canonical metadata: %w", err)
	}
	return nil
}

// Get returns the record for a document, or library.ErrNotFound.
func (s *Store) Get(ctx context.Context, documentID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT document_id, titulo, tipo_norma, numero, anio, descripcion, updated_at
		FROM canonical_metadata WHERE document_id = ?`, documentID)

	var rec Record
	var typ string
	err := row.Scan(&rec.DocumentID, &rec.Title, &typ, &rec.Number, &rec.Year, &rec.Description, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, library.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading canonical metadata: %w", err)
	}
	rec.Type = library.DocType(typ)
	return &rec, nil
}

// List returns all records ordered by document id.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_id, titulo, tipo_norma, numero, anio, descripcion, updated_at
		FROM canonical_metadata ORDER BY document_id`)
	if err != nil {
		return nil, fmt.Errorf("listing canonical metadata: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var typ string
		if err := rows.Scan(&rec.DocumentID, &rec.Title, &typ, &rec.Number, &rec.Year, &rec.Description, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning canonical metadata: %w", err)
		}
		rec.Type = library.DocType(typ)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes the record for a document.
func (s *Store) Delete(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM canonical_metadata WHERE document_id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("deleting canonical metadata: %w", err)
	}
	return nil
}

// Lookup implements library.CanonicalStore: (nil, nil) when no curated
// record exists, so the library keeps its own extraction.
func (s *Store) Lookup(ctx context.Context, id string) (*library.CanonicalRecord, error) {
	rec, err := s.Get(ctx, id)
	if err == library.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &library.CanonicalRecord{Title: rec.Title, Type: rec.Type}, nil
}
