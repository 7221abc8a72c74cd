// Copyright 2025 GyanFactory
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


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

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of documents to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of embeddings)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per embedding call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Validate reports the first invalid field as a sentinel error.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.ReportInterval <= 0 {
		return ErrInvalidReportInterval
	}
	if c.MaxRetries <= 0 {
		return ErrInvalidMaxRetries
	}
	if c.RetryDelay < 0 {
		return ErrInvalidRetryDelay
	}
	return nil
}

// Option configures a Reembedder.
type Option func(*Reembedder)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reembedder) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// Reembedder orchestrates the reembedding of a project's knowledge base.
type Reembedder struct {
	documents storage.DocumentRepository
	items     storage.QAItemRepository
	embedder  ai.Embedder
	config    *Config
	logger    *slog.Logger
	processor *BatchProcessor
	iterator  *DocumentIterator
}

// NewReembedder creates a new reembedder. A nil config falls back to
// DefaultConfig; an explicit config must pass Validate.
func NewReembedder(documents storage.DocumentRepository, items storage.QAItemRepository, embedder ai.Embedder, config *Config, opts ...Option) (*Reembedder, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := &Reembedder{
		documents: documents,
		items:     items,
		embedder:  embedder,
		config:    config,
		logger:    slog.Default().With("component", "reembed"),
		processor: NewBatchProcessor(documents, items, embedder, config),
		iterator:  NewDocumentIterator(documents, config.BatchSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run reembeds every document of the project and every Q&A item derived
// from those documents. Progress is reported through the logger.
func (r *Reembedder) Run(ctx context.Context, projectID core.ID) error {
	if projectID == 0 {
		return ErrMissingProject
	}

	// Count total embeddings up front so progress percentages are meaningful.
	allDocuments, err := r.documents.GetDocumentsByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to query documents: %w", err)
	}

	total := len(allDocuments)
	for _, doc := range allDocuments {
		items, err := r.items.GetQAItemsByDocument(ctx, doc.Id)
		if err != nil {
			return fmt.Errorf("failed to query items of document %d: %w", doc.Id, err)
		}
		total += len(items)
	}

	if total == 0 {
		r.logger.Info("nothing to reembed", "project", projectID)
		return nil
	}

	r.logger.Info("reembedding started",
		"project", projectID,
		"embeddings", total,
		"documents", len(allDocuments),
		"batch_size", r.config.BatchSize)

	progress := newProgressLogger(r.logger, total, r.config.ReportInterval)

	err = r.iterator.ForEach(ctx, projectID, func(documents []*core.Document) error {
		written, err := r.processor.Process(ctx, documents)
		progress.Add(written)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	progress.Finish()
	return nil
}
