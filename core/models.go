package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ProcessingStatus tracks the ingestion outcome of a document.
type ProcessingStatus int

const (
	// StatusPending marks a document whose ingestion is still in flight.
	StatusPending ProcessingStatus = iota + 1
	// StatusCompleted marks a document that was ingested successfully.
	StatusCompleted
	// StatusFailed marks a document whose ingestion failed.
	StatusFailed
)

// String returns the status name used in logs and CLI output.
func (s ProcessingStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Document represents an ingested source document. The extracted text is
// immutable once the document is created, so its embedding vector stays
// valid for the lifetime of the row.
type Document struct {
	Id         ID
	ProjectId  ID
	Filename   string
	Contents   string    // extracted text
	Vector     []float32 // whole-document embedding
	Status     ProcessingStatus
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// TransitionStatus moves the document out of the pending status.
// A document transitions pending -> completed|failed exactly once;
// any other transition is an error.
func (d *Document) TransitionStatus(next ProcessingStatus) error {
	if err := ValidateProcessingStatus(next); err != nil {
		return err
	}
	if next == StatusPending {
		return ErrInvalidStatusTransition
	}
	if d.Status != StatusPending {
		return ErrStatusFinal
	}
	d.Status = next
	return nil
}

// QAItem represents a question/answer pair derived from a document, either
// machine-generated during ingestion or manually authored afterwards.
// Manual items may carry no embedding until one is lazily computed at query time.
type QAItem struct {
	Id          ID
	ProjectId   ID
	DocumentId  ID
	Question    string
	Answer      string
	Vector      []float32 // nil until embedded
	IsGenerated bool
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// EmbeddingText returns the single string that is embedded for this item.
func (q *QAItem) EmbeddingText() string {
	return q.Question + " " + q.Answer
}

// HasVector reports whether the item already carries a cached embedding.
func (q *QAItem) HasVector() bool {
	return len(q.Vector) > 0
}
