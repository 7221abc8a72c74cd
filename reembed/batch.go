package reembed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
	"github.com/GyanFactory/WizardChatUI-sub000/core"
	"github.com/GyanFactory/WizardChatUI-sub000/storage"
)

// BatchProcessor regenerates embeddings for batches of documents and the
// Q&A items derived from them. Embedding calls are retried with
// exponential backoff per the Config.
type BatchProcessor struct {
	documents storage.DocumentRepository
	items     storage.QAItemRepository
	embedder  ai.Embedder
	config    *Config
	logger    *slog.Logger
}

// NewBatchProcessor creates a new batch processor. A nil config falls back
// to DefaultConfig.
func NewBatchProcessor(documents storage.DocumentRepository, items storage.QAItemRepository, embedder ai.Embedder, config *Config) *BatchProcessor {
	if config == nil {
		config = DefaultConfig()
	}
	return &BatchProcessor{
		documents: documents,
		items:     items,
		embedder:  embedder,
		config:    config,
		logger:    slog.Default().With("component", "reembed"),
	}
}

// Process regenerates the embeddings for a batch of documents and all of
// their Q&A items, writing the refreshed vectors back to the database.
// Vectors are normalized after embedding so they stay comparable under
// cosine similarity. Returns the number of embeddings written.
func (bp *BatchProcessor) Process(ctx context.Context, documents []*core.Document) (int, error) {
	if len(documents) == 0 {
		return 0, nil
	}

	texts := make([]string, len(documents))
	for i, doc := range documents {
		texts[i] = doc.Contents
	}

	embeddings, err := bp.embedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed documents: %w", err)
	}

	if len(embeddings) != len(documents) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(documents), len(embeddings))
	}

	written := 0
	for i, doc := range documents {
		doc.Vector = NormalizeVector(embeddings[i])
		if err := bp.documents.UpdateDocument(ctx, doc); err != nil {
			return written, fmt.Errorf("failed to update document %d: %w", doc.Id, err)
		}
		written++
	}

	for _, doc := range documents {
		count, err := bp.processItems(ctx, doc)
		written += count
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

// processItems re-embeds every Q&A item of a single document.
func (bp *BatchProcessor) processItems(ctx context.Context, doc *core.Document) (int, error) {
	items, err := bp.items.GetQAItemsByDocument(ctx, doc.Id)
	if err != nil {
		return 0, fmt.Errorf("failed to load items of document %d: %w", doc.Id, err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.EmbeddingText()
	}

	embeddings, err := bp.embedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed items of document %d: %w", doc.Id, err)
	}

	if len(embeddings) != len(items) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(items), len(embeddings))
	}

	written := 0
	for i, item := range items {
		vector := NormalizeVector(embeddings[i])
		if err := bp.items.UpdateQAItemEmbedding(ctx, item.Id, vector); err != nil {
			return written, fmt.Errorf("failed to update item %d: %w", item.Id, err)
		}
		written++
	}

	return written, nil
}

func (bp *BatchProcessor) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var embeddings [][]float32
	err := bp.retry(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("after %d attempts: %w", bp.config.MaxRetries, err)
	}
	return embeddings, nil
}

// retry runs op up to Config.MaxRetries times, doubling the pause between
// attempts starting from Config.RetryDelay. The error of the final attempt
// is returned when every attempt fails. Context cancellation cuts the wait
// short and wins over the operation's own error.
func (bp *BatchProcessor) retry(ctx context.Context, op func() error) error {
	delay := bp.config.RetryDelay
	var lastErr error
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = op(); lastErr == nil {
			if attempt > 1 {
				bp.logger.Debug("embedding call recovered", "attempt", attempt)
			}
			return nil
		}
		if attempt >= bp.config.MaxRetries {
			return lastErr
		}
		bp.logger.Debug("embedding call failed, backing off", "attempt", attempt, "delay", delay, "err", lastErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
