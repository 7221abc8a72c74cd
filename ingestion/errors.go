package ingestion

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrQAItemRepositoryRequired is returned when a Q&A item repository is not provided.
	ErrQAItemRepositoryRequired = errors.New("qa item repository required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrCipherRequired is returned when a vendor backend is requested but no
	// key cipher was configured.
	ErrCipherRequired = errors.New("key cipher required for vendor backends")

	// ErrEmptyFile indicates an upload with no bytes.
	ErrEmptyFile = errors.New("empty upload")

	// ErrNoExtractableText indicates a document whose extraction produced no
	// usable text.
	ErrNoExtractableText = errors.New("no extractable text in document")

	// ErrDuplicateDocument indicates the project already holds a document
	// with identical extracted text. Raised before generation so a repeat
	// upload never incurs vendor cost.
	ErrDuplicateDocument = errors.New("identical document already ingested")

	// ErrPersistenceFailed wraps storage errors at the end of the chain. By
	// that point generation has already happened; callers must not blindly
	// retry paid vendor calls.
	ErrPersistenceFailed = errors.New("failed to persist document")
)
