package ai

import "context"

// Generator derives question/answer pairs from document text.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Backend identifies the concrete generation backend.
	Backend() BackendID

	// Generate produces Q&A pairs from the request's document text, guided by
	// its context hint. A blank hint fails with ErrMissingContext before any
	// network or subprocess call is made. On success the returned slice has
	// at least one element; a run that yields zero pairs fails with
	// ErrEmptyGeneration, never a silent empty success.
	Generate(ctx context.Context, req GenerationRequest) ([]QAPair, error)
}

// CredentialValidator probes the usability of a vendor credential.
// Vendor-hosted Generator implementations also implement this interface;
// the local backend does not, as it needs no credential.
type CredentialValidator interface {
	// ValidateCredential issues a lightweight probe call (a models list or
	// account endpoint) to check that the credential is usable. It returns
	// ErrInvalidCredential for a rejected key and a GenerationError for an
	// unreachable vendor. It never issues a generation call.
	ValidateCredential(ctx context.Context, credential string) error
}

// Embedder generates vector embeddings from text for semantic similarity
// search. Vectors are only comparable when produced by the same
// provider/model, and no normalization is guaranteed.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates a vector embedding for a chat query. Backends that
	// distinguish query from document embedding use this to flag the call;
	// others treat it as EmbedText.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// TextExtractor extracts plain text from an uploaded document's raw bytes.
type TextExtractor interface {
	// ExtractText returns the document's text content. Malformed input fails
	// with an error carrying the extractor's detail string.
	ExtractText(ctx context.Context, fileBytes []byte) (string, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Extractor returns the document text extraction service.
	Extractor() TextExtractor

	// Generator returns the Q&A generation backend for the given id,
	// constructed with the supplied per-request credential (ignored by the
	// local backend). Credentials are never retained by the provider.
	Generator(backend BackendID, credential string) (Generator, error)

	// Close releases resources held by the provider and its services.
	Close() error
}
