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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidQAItem indicates a QAItem failed validation.
	ErrInvalidQAItem = errors.New("invalid qa item")

	// ErrEmptyContents indicates the Contents field is empty.
	ErrEmptyContents = errors.New("contents cannot be empty")

	// ErrEmptyQuestion indicates the Question field is empty.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrEmptyAnswer indicates the Answer field is empty.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrMissingProject indicates the owning project reference is missing.
	ErrMissingProject = errors.New("project reference required")

	// ErrMissingDocument indicates the owning document reference is missing.
	ErrMissingDocument = errors.New("document reference required")

	// ErrInvalidProcessingStatus indicates an invalid ProcessingStatus value.
	ErrInvalidProcessingStatus = errors.New("invalid processing status")

	// ErrInvalidStatusTransition indicates a transition back into pending.
	ErrInvalidStatusTransition = errors.New("cannot transition back to pending")

	// ErrStatusFinal indicates the document already reached a terminal status.
	ErrStatusFinal = errors.New("document status is final")
)
