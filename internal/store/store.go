package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

var ErrSummaryNotFound = errors.New("summary not found")

type Document struct {
	ID        uuid.UUID
	Filename  string
	Status    DocumentStatus
	CreatedAt time.Time
}

// Summary is a persisted extractive summary: the selected sentences in
// document order and their positions in the original sentence sequence.
type Summary struct {
	DocumentID uuid.UUID
	Sentences  []string
	Indices    []int
	Variant    string
}

// Store defines persistence contract; an external DB implementation can replace this.
type Store interface {
	CreateDocument(ctx context.Context, filename string) (Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (Document, error)
	UpdateDocumentStatus(ctx context.Context, id uuid.UUID, status DocumentStatus) error
	SaveSummary(ctx context.Context, docID uuid.UUID, summary Summary) error
	GetSummary(ctx context.Context, docID uuid.UUID) (Summary, error)
}
