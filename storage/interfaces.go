package storage

import (
	"context"

	"github.com/GyanFactory/WizardChatUI-sub000/core"
)

// Repository provides common storage operations shared across all
// repositories. Implementations must be thread-safe and support concurrent
// access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing knowledge base
// documents.
type DocumentRepository interface {
	Repository

	// CreateDocumentWithQAItems atomically persists a document together with
	// its Q&A items. IDs are generated from sequences and the items'
	// DocumentId and ProjectId are stamped from the document. On any error
	// nothing is persisted.
	// Returns the document and items with IDs and timestamps populated.
	CreateDocumentWithQAItems(ctx context.Context, doc *core.Document, items []*core.QAItem) error

	// UpdateDocument updates an existing document, refreshing UpdatedAt.
	// Returns ErrNotFound if the document doesn't exist.
	UpdateDocument(ctx context.Context, doc *core.Document) error

	// DeleteDocument removes a document, its project index entry, and all of
	// its Q&A items. Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentsByProject retrieves all documents of a project, ordered by
	// ascending ID.
	GetDocumentsByProject(ctx context.Context, projectID core.ID) ([]*core.Document, error)
}

// QAItemRepository provides operations for managing Q&A pairs.
type QAItemRepository interface {
	Repository

	// CreateQAItems adds Q&A items to an existing document. Used for manual
	// authoring; ingestion goes through CreateDocumentWithQAItems instead.
	// Returns ErrNotFound if the document doesn't exist.
	CreateQAItems(ctx context.Context, items ...*core.QAItem) error

	// GetQAItem retrieves a single Q&A item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetQAItem(ctx context.Context, id core.ID) (*core.QAItem, error)

	// GetQAItemsByDocument retrieves all Q&A items of a document, ordered by
	// ascending ID.
	GetQAItemsByDocument(ctx context.Context, documentID core.ID) ([]*core.QAItem, error)

	// UpdateQAItemEmbedding stores a freshly computed vector on an item,
	// refreshing UpdatedAt. Returns ErrNotFound if the item doesn't exist.
	UpdateQAItemEmbedding(ctx context.Context, id core.ID, vector []float32) error

	// DeleteQAItems removes Q&A items by their IDs.
	// Returns ErrNotFound if any item doesn't exist.
	DeleteQAItems(ctx context.Context, ids ...core.ID) error
}
