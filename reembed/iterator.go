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

	"github.com/GyanFactory/WizardChatUI-sub000/core"
	"github.com/GyanFactory/WizardChatUI-sub000/storage"
)

const (
	// DefaultBatchSize is the default number of documents to process in each batch
	DefaultBatchSize = 100
)

// DocumentIterator iterates over all documents of a project in batches.
type DocumentIterator struct {
	repo      storage.DocumentRepository
	batchSize int
}

// NewDocumentIterator creates a new document iterator.
// batchSize: number of documents in each batch (must be > 0)
func NewDocumentIterator(repo storage.DocumentRepository, batchSize int) *DocumentIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &DocumentIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all documents of the project, calling fn for each
// batch. Iteration stops on the first error from fn or when all documents
// are processed. Context cancellation is checked between batches.
func (it *DocumentIterator) ForEach(ctx context.Context, projectID core.ID, fn func([]*core.Document) error) error {
	if projectID == 0 {
		return ErrMissingProject
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	documents, err := it.repo.GetDocumentsByProject(ctx, projectID)
	if err != nil {
		return err
	}

	if len(documents) == 0 {
		return nil
	}

	for i := 0; i < len(documents); i += it.batchSize {
		end := i + it.batchSize
		if end > len(documents) {
			end = len(documents)
		}

		if err := fn(documents[i:end]); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
