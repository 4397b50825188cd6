package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Use advisory lock to prevent concurrent migrations from multiple services.
	// Note: In production, use dedicated migration tools (e.g., golang-migrate/migrate)
	// that run as a separate deployment step before app services start.
	const lockID = 937201845

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}

	if !acquired {
		// Another service is running migrations; wait briefly and skip
		time.Sleep(2 * time.Second)
		return nil
	}

	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id UUID PRIMARY KEY,
			filename TEXT,
			status TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS summaries (
			document_id UUID PRIMARY KEY REFERENCES documents(id) ON DELETE CASCADE,
			sentences TEXT[],
			indices INT[],
			variant TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) CreateDocument(ctx context.Context, filename string) (Document, error) {
	doc := Document{
		ID:        uuid.New(),
		Filename:  filename,
		Status:    StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, status, created_at) VALUES ($1, $2, $3, $4)`,
		doc.ID, doc.Filename, doc.Status, doc.CreatedAt,
	)
	if err != nil {
		return Document{}, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) GetDocument(ctx context.Context, id uuid.UUID) (Document, error) {
	var doc Document
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, status, created_at FROM documents WHERE id = $1`, id,
	).Scan(&doc.ID, &doc.Filename, &doc.Status, &doc.CreatedAt)
	if err != nil {
		return Document{}, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	return doc, nil
}

func (s *PostgresStore) UpdateDocumentStatus(ctx context.Context, id uuid.UUID, status DocumentStatus) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE documents SET status = $2 WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update status for %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) SaveSummary(ctx context.Context, docID uuid.UUID, summary Summary) error {
	indices := make([]int64, len(summary.Indices))
	for i, idx := range summary.Indices {
		indices[i] = int64(idx)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO summaries (document_id, sentences, indices, variant)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (document_id) DO UPDATE
		 SET sentences = EXCLUDED.sentences, indices = EXCLUDED.indices, variant = EXCLUDED.variant`,
		docID, pq.Array(summary.Sentences), pq.Array(indices), summary.Variant,
	)
	if err != nil {
		return fmt.Errorf("failed to save summary for %s: %w", docID, err)
	}
	return nil
}

func (s *PostgresStore) GetSummary(ctx context.Context, docID uuid.UUID) (Summary, error) {
	summary := Summary{DocumentID: docID}
	var indices []int64
	err := s.db.QueryRowContext(ctx,
		`SELECT sentences, indices, variant FROM summaries WHERE document_id = $1`, docID,
	).Scan(pq.Array(&summary.Sentences), pq.Array(&indices), &summary.Variant)
	if errors.Is(err, sql.ErrNoRows) {
		return Summary{}, ErrSummaryNotFound
	}
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get summary for %s: %w", docID, err)
	}
	summary.Indices = make([]int, len(indices))
	for i, idx := range indices {
		summary.Indices[i] = int(idx)
	}
	return summary, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
