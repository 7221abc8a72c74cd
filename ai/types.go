package ai

import (
	"fmt"
	"strings"
)

// BackendID selects a concrete Q&A generation backend.
type BackendID int

const (
	// BackendLocal generates pairs with an out-of-process model, no credential.
	BackendLocal BackendID = iota + 1
	// BackendOpenAI generates pairs via the OpenAI chat completions API.
	BackendOpenAI
	// BackendHuggingFace generates pairs via Hugging Face hosted inference.
	BackendHuggingFace
	// BackendDeepSeek generates pairs via the DeepSeek API (OpenAI-compatible).
	BackendDeepSeek
)

// String returns the backend name used in configuration, logs, and errors.
func (b BackendID) String() string {
	switch b {
	case BackendLocal:
		return "local"
	case BackendOpenAI:
		return "openai"
	case BackendHuggingFace:
		return "huggingface"
	case BackendDeepSeek:
		return "deepseek"
	default:
		return "unknown"
	}
}

// RequiresCredential reports whether the backend is vendor-hosted and needs
// an API key.
func (b BackendID) RequiresCredential() bool {
	return b == BackendOpenAI || b == BackendHuggingFace || b == BackendDeepSeek
}

// ParseBackendID maps a backend name to its BackendID.
func ParseBackendID(name string) (BackendID, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "local", "opensource":
		return BackendLocal, nil
	case "openai":
		return BackendOpenAI, nil
	case "huggingface":
		return BackendHuggingFace, nil
	case "deepseek":
		return BackendDeepSeek, nil
	default:
		return 0, fmt.Errorf("unknown generation backend %q", name)
	}
}

// QAPair is a single generated question/answer pair.
type QAPair struct {
	Question string
	Answer   string
}

// GenerationRequest is the ephemeral value object consumed by a single
// Generate call. It is never persisted; the credential lives only for the
// duration of the call.
type GenerationRequest struct {
	// DocumentText is the full extracted text of the source document.
	DocumentText string

	// ContextHint tells the backend what aspect of the document to focus on.
	// Mandatory for every backend variant.
	ContextHint string

	// Credential is the decrypted vendor API key. Empty for the local backend.
	Credential string
}

// Validate checks the request before any network or subprocess call.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.ContextHint) == "" {
		return ErrMissingContext
	}
	if strings.TrimSpace(r.DocumentText) == "" {
		return ErrEmptyDocumentText
	}
	return nil
}
