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


package ai

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrMissingContext indicates a blank context hint. It is raised before
	// any network or subprocess call is made.
	ErrMissingContext = errors.New("context hint required")

	// ErrEmptyDocumentText indicates an empty document text in a generation
	// request.
	ErrEmptyDocumentText = errors.New("document text required")

	// ErrEmptyEmbeddingText indicates an empty string passed to an Embedder.
	ErrEmptyEmbeddingText = errors.New("embedding text required")

	// ErrInvalidCredential indicates a vendor rejected the API key during the
	// probe call. Generation is never attempted with an invalid credential.
	ErrInvalidCredential = errors.New("invalid vendor credential")

	// ErrEmptyGeneration indicates a generation run that produced zero pairs.
	// Callers never receive a successful-but-empty result silently.
	ErrEmptyGeneration = errors.New("generation produced no qa pairs")
)

// GenerationError carries the backend name and failure detail of a Q&A
// generation call. For vendor HTTP failures StatusCode holds the HTTP status
// when the client exposes one; zero means the transport did not surface a
// status. For subprocess failures it is zero and Detail carries the exit
// information.
type GenerationError struct {
	Backend    BackendID
	StatusCode int
	Detail     string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation failed (backend %s, status %d): %s", e.Backend, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("generation failed (backend %s): %s", e.Backend, e.Detail)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError builds a GenerationError for the given backend.
func NewGenerationError(backend BackendID, statusCode int, detail string, err error) *GenerationError {
	return &GenerationError{Backend: backend, StatusCode: statusCode, Detail: detail, Err: err}
}

// statusCodePattern matches the status line vendor clients embed in their
// error strings, e.g. "API returned unexpected status code: 429".
var statusCodePattern = regexp.MustCompile(`status(?: code)?:? (\d{3})`)

// StatusCodeFromError recovers an HTTP status from a vendor client error.
// The clients wrap HTTP failures as plain errors without a typed status,
// so this scans the message as a best effort. Returns 0 when no plausible
// status is present.
func StatusCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	match := statusCodePattern.FindStringSubmatch(err.Error())
	if match == nil {
		return 0
	}
	code, convErr := strconv.Atoi(match[1])
	if convErr != nil || code < 100 || code > 599 {
		return 0
	}
	return code
}

// EmbeddingError carries the failure detail of an embedding call
// (non-zero exit, timeout, or malformed output).
type EmbeddingError struct {
	Detail string
	Err    error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %s", e.Detail)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// NewEmbeddingError builds an EmbeddingError.
func NewEmbeddingError(detail string, err error) *EmbeddingError {
	return &EmbeddingError{Detail: detail, Err: err}
}

// ExtractionError carries the failure detail of a text extraction call.
type ExtractionError struct {
	Detail string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("text extraction failed: %s", e.Detail)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
