package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/GyanFactory/WizardChatUI-sub000/core"
	"github.com/GyanFactory/WizardChatUI-sub000/storage"
)

// QAItemRepository implements storage.QAItemRepository for BadgerDB.
type QAItemRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.QAItemRepository = (*QAItemRepository)(nil)

// NewQAItemRepository creates a new QAItemRepository.
func NewQAItemRepository(backend *Backend) (*QAItemRepository, error) {
	idSeq, err := backend.GetSequence(qaItemIDSeq)
	if err != nil {
		return nil, err
	}

	return &QAItemRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *QAItemRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *QAItemRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// CreateQAItems adds Q&A items to an existing document. Each item must carry
// its DocumentId; the ProjectId is stamped from the document.
func (r *QAItemRepository) CreateQAItems(ctx context.Context, items ...*core.QAItem) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			doc, err := readDocument(tx, makeDocumentKey(item.DocumentId))
			if err != nil {
				return err
			}
			if doc == nil {
				return storage.ErrNotFound
			}
			item.ProjectId = doc.ProjectId

			if err := core.ValidateQAItem(item); err != nil {
				return err
			}

			itemID, err := nextSequenceID(r.idSeq)
			if err != nil {
				return err
			}
			item.Id = itemID
			item.InsertedAt = time.Now().UTC()
			item.UpdatedAt = item.InsertedAt

			if err := tx.Set(makeQAItemKey(item.Id), storage.MarshalQAItem(item)); err != nil {
				return err
			}
			docKey := makeQAItemDocKey(item.DocumentId, item.Id)
			if err := tx.Set(docKey, storage.MarshalID(item.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetQAItem retrieves a single Q&A item by ID.
func (r *QAItemRepository) GetQAItem(ctx context.Context, id core.ID) (*core.QAItem, error) {
	var result *core.QAItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readQAItem(tx, makeQAItemKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetQAItemsByDocument retrieves all Q&A items of a document, ordered by
// ascending ID.
func (r *QAItemRepository) GetQAItemsByDocument(ctx context.Context, documentID core.ID) ([]*core.QAItem, error) {
	var results []*core.QAItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		itemIDs, err := scanIndexIDs(tx, makePartialQAItemDocKey(documentID))
		if err != nil {
			return err
		}
		for _, itemID := range itemIDs {
			item, err := readQAItem(tx, makeQAItemKey(itemID))
			if err != nil {
				return err
			}
			if item != nil {
				results = append(results, item)
			}
		}
		return nil
	}, false)
	return results, err
}

// UpdateQAItemEmbedding stores a freshly computed vector on an item. This is
// the cache write behind lazy retrieval embedding, so it touches nothing but
// the vector and UpdatedAt.
func (r *QAItemRepository) UpdateQAItemEmbedding(ctx context.Context, id core.ID, vector []float32) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := readQAItem(tx, makeQAItemKey(id))
		if err != nil {
			return err
		}
		if item == nil {
			return storage.ErrNotFound
		}

		item.Vector = vector
		item.UpdatedAt = time.Now().UTC()

		if err := tx.Set(makeQAItemKey(id), storage.MarshalQAItem(item)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// DeleteQAItems removes Q&A items by their IDs.
func (r *QAItemRepository) DeleteQAItems(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := readQAItem(tx, makeQAItemKey(id))
			if err != nil {
				return err
			}
			if item == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeQAItemDocKey(item.DocumentId, item.Id)); err != nil {
				return err
			}
			if err := tx.Delete(makeQAItemKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readQAItem reads and deserializes a Q&A item within a transaction.
// Returns nil (no error) if the key doesn't exist.
func readQAItem(tx *badger.Txn, key []byte) (*core.QAItem, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result *core.QAItem
	err = item.Value(func(val []byte) error {
		var err error
		result, err = storage.UnmarshalQAItem(val)
		return err
	})
	return result, err
}
