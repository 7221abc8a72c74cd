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


package core

import (
	"fmt"
	"strings"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Contents must not be empty after trimming
//   - ProjectId must be set
//   - Status must be a valid ProcessingStatus
//
// NOT validated (populated by the pipeline or storage layer):
//   - Vector (set after embedding)
//   - ID (0 is valid from database sequences)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if strings.TrimSpace(doc.Contents) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContents)
	}

	if doc.ProjectId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingProject)
	}

	if err := ValidateProcessingStatus(doc.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ValidateQAItem validates a QAItem according to domain rules.
//
// Validation rules:
//   - Question and Answer must not be empty
//   - ProjectId and DocumentId must be set
//
// NOT validated:
//   - Vector (can be nil until lazily embedded)
//   - ID (0 is valid from database sequences)
func ValidateQAItem(item *QAItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidQAItem)
	}

	if strings.TrimSpace(item.Question) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQAItem, ErrEmptyQuestion)
	}

	if strings.TrimSpace(item.Answer) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQAItem, ErrEmptyAnswer)
	}

	if item.ProjectId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidQAItem, ErrMissingProject)
	}

	if item.DocumentId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidQAItem, ErrMissingDocument)
	}

	return nil
}

// ValidateProcessingStatus validates that a ProcessingStatus has a valid value.
func ValidateProcessingStatus(status ProcessingStatus) error {
	if status != StatusPending && status != StatusCompleted && status != StatusFailed {
		return fmt.Errorf("%w: value %d", ErrInvalidProcessingStatus, status)
	}
	return nil
}
