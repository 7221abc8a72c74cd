package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GyanFactory/WizardChatUI-sub000/core"
	"github.com/GyanFactory/WizardChatUI-sub000/storage"
	"github.com/GyanFactory/WizardChatUI-sub000/storage/badger"
)

func newTestRepos(t *testing.T) (storage.DocumentRepository, storage.QAItemRepository) {
	t.Helper()

	docRepo, qaRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		docRepo.Close()
		qaRepo.Close()
		backend.Close()
	})

	return docRepo, qaRepo
}

func seedDocuments(t *testing.T, docRepo storage.DocumentRepository, projectID core.ID, count, itemsPerDoc int) []*core.Document {
	t.Helper()

	documents := make([]*core.Document, 0, count)
	for i := 0; i < count; i++ {
		doc := &core.Document{
			ProjectId: projectID,
			Filename:  fmt.Sprintf("doc-%d.pdf", i),
			Contents:  fmt.Sprintf("Shipping policy revision %d for all regions.", i),
			Status:    core.StatusCompleted,
		}
		items := make([]*core.QAItem, 0, itemsPerDoc)
		for j := 0; j < itemsPerDoc; j++ {
			items = append(items, &core.QAItem{
				Question:    fmt.Sprintf("What changed in revision %d, part %d?", i, j),
				Answer:      "Shipping windows were shortened.",
				IsGenerated: true,
			})
		}
		require.NoError(t, docRepo.CreateDocumentWithQAItems(context.Background(), doc, items))
		documents = append(documents, doc)
	}
	return documents
}

func TestDocumentIteratorForEach(t *testing.T) {
	docRepo, _ := newTestRepos(t)
	seedDocuments(t, docRepo, 3, 5, 0)

	t.Run("visits all documents in batch order", func(t *testing.T) {
		it := NewDocumentIterator(docRepo, 2)

		var batchSizes []int
		var seen []core.ID
		err := it.ForEach(context.Background(), 3, func(batch []*core.Document) error {
			batchSizes = append(batchSizes, len(batch))
			for _, doc := range batch {
				seen = append(seen, doc.Id)
			}
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, []int{2, 2, 1}, batchSizes)
		require.Len(t, seen, 5)
		assert.IsIncreasing(t, seen)
	})

	t.Run("empty project visits nothing", func(t *testing.T) {
		it := NewDocumentIterator(docRepo, 2)

		calls := 0
		err := it.ForEach(context.Background(), 99, func([]*core.Document) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Zero(t, calls)
	})

	t.Run("stops on first callback error", func(t *testing.T) {
		it := NewDocumentIterator(docRepo, 1)

		boom := errors.New("boom")
		calls := 0
		err := it.ForEach(context.Background(), 3, func([]*core.Document) error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context stops between batches", func(t *testing.T) {
		it := NewDocumentIterator(docRepo, 1)

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := it.ForEach(ctx, 3, func([]*core.Document) error {
			calls++
			cancel()
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("missing project rejected", func(t *testing.T) {
		it := NewDocumentIterator(docRepo, 1)

		err := it.ForEach(context.Background(), 0, func([]*core.Document) error { return nil })
		assert.ErrorIs(t, err, ErrMissingProject)
	})

	t.Run("invalid batch size falls back to default", func(t *testing.T) {
		it := NewDocumentIterator(docRepo, -5)
		assert.Equal(t, DefaultBatchSize, it.batchSize)
	})
}
