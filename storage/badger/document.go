package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/GyanFactory/WizardChatUI-sub000/core"
	"github.com/GyanFactory/WizardChatUI-sub000/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
	docSeq  *badger.Sequence
	itemSeq *badger.Sequence
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	docSeq, err := backend.GetSequence(documentIDSeq)
	if err != nil {
		return nil, err
	}
	itemSeq, err := backend.GetSequence(qaItemIDSeq)
	if err != nil {
		docSeq.Release()
		return nil, err
	}

	return &DocumentRepository{
		backend: backend,
		docSeq:  docSeq,
		itemSeq: itemSeq,
	}, nil
}

// Close releases the ID sequences.
func (r *DocumentRepository) Close() error {
	err := r.docSeq.Release()
	if err2 := r.itemSeq.Release(); err == nil {
		err = err2
	}
	return err
}

// WithTransaction delegates to the backend.
func (r *DocumentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// CreateDocumentWithQAItems atomically persists a document together with its
// Q&A items. The single transaction is what makes ingestion all-or-nothing:
// a failure at any point leaves zero rows behind.
func (r *DocumentRepository) CreateDocumentWithQAItems(ctx context.Context, doc *core.Document, items []*core.QAItem) error {
	if err := core.ValidateDocument(doc); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := nextSequenceID(r.docSeq)
		if err != nil {
			return err
		}
		doc.Id = nextID
		doc.InsertedAt = time.Now().UTC()
		doc.UpdatedAt = doc.InsertedAt

		if err := tx.Set(makeDocumentKey(doc.Id), storage.MarshalDocument(doc)); err != nil {
			return err
		}
		projKey := makeDocumentProjectKey(doc.ProjectId, doc.Id)
		if err := tx.Set(projKey, storage.MarshalID(doc.Id)); err != nil {
			return err
		}

		for _, item := range items {
			item.DocumentId = doc.Id
			item.ProjectId = doc.ProjectId
			if err := core.ValidateQAItem(item); err != nil {
				return err
			}

			itemID, err := nextSequenceID(r.itemSeq)
			if err != nil {
				return err
			}
			item.Id = itemID
			item.InsertedAt = doc.InsertedAt
			item.UpdatedAt = doc.InsertedAt

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

// UpdateDocument updates an existing document.
func (r *DocumentRepository) UpdateDocument(ctx context.Context, doc *core.Document) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		old, err := readDocument(tx, makeDocumentKey(doc.Id))
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		doc.UpdatedAt = time.Now().UTC()
		if err := tx.Set(makeDocumentKey(doc.Id), storage.MarshalDocument(doc)); err != nil {
			return err
		}

		// Documents never move across projects, so the index stays put.
		return tx.Commit()
	}, true)
}

// DeleteDocument removes a document, its project index entry, and all of its
// Q&A items.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		doc, err := readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if doc == nil {
			return storage.ErrNotFound
		}

		// Collect the item IDs from the document index, then drop both the
		// items and the index entries.
		itemIDs, err := scanIndexIDs(tx, makePartialQAItemDocKey(id))
		if err != nil {
			return err
		}
		for _, itemID := range itemIDs {
			if err := tx.Delete(makeQAItemKey(itemID)); err != nil {
				return err
			}
			if err := tx.Delete(makeQAItemDocKey(id, itemID)); err != nil {
				return err
			}
		}

		if err := tx.Delete(makeDocumentProjectKey(doc.ProjectId, doc.Id)); err != nil {
			return err
		}
		if err := tx.Delete(makeDocumentKey(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetDocument retrieves a single document by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readDocument(tx, makeDocumentKey(id))
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

// GetDocumentsByProject retrieves all documents of a project, ordered by
// ascending ID. The order comes from the BigEndian project index keys.
func (r *DocumentRepository) GetDocumentsByProject(ctx context.Context, projectID core.ID) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		docIDs, err := scanIndexIDs(tx, makePartialDocumentProjectKey(projectID))
		if err != nil {
			return err
		}
		for _, docID := range docIDs {
			doc, err := readDocument(tx, makeDocumentKey(docID))
			if err != nil {
				return err
			}
			if doc != nil {
				results = append(results, doc)
			}
		}
		return nil
	}, false)
	return results, err
}

// readDocument reads and deserializes a document within a transaction.
// Returns nil (no error) if the key doesn't exist.
func readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalDocument(val)
		return err
	})
	return doc, err
}

// scanIndexIDs walks every index entry under prefix and collects the stored
// IDs in key order.
func scanIndexIDs(tx *badger.Txn, prefix []byte) ([]core.ID, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []core.ID
	for iter.Rewind(); iter.Valid(); iter.Next() {
		var id core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// nextSequenceID draws the next non-zero ID from a sequence.
func nextSequenceID(seq *badger.Sequence) (core.ID, error) {
	next, err := seq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if next == 0 {
		next, err = seq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(next), nil
}
