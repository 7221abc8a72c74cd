package mock

import (
	"context"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
)

// MockGenerator is a test double for ai.Generator and ai.CredentialValidator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, uses default deterministic behavior.
	GenerateFunc func(ctx context.Context, req ai.GenerationRequest) ([]ai.QAPair, error)

	// ValidateCredentialFunc is called by ValidateCredential if set.
	// If nil, every credential is accepted.
	ValidateCredentialFunc func(ctx context.Context, credential string) error

	backend           ai.BackendID
	generateCalls     int
	validateCalls     int
	lastRequest       ai.GenerationRequest
	lastCredential    string
	hasLastCredential bool
}

// NewMockGenerator creates a mock generator reporting the given backend.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator(backend ai.BackendID) *MockGenerator {
	return &MockGenerator{backend: backend}
}

// Backend returns the configured backend id.
func (m *MockGenerator) Backend() ai.BackendID {
	return m.backend
}

// Generate validates the request like a real backend and returns one pair
// derived from the context hint unless GenerateFunc is set.
func (m *MockGenerator) Generate(ctx context.Context, req ai.GenerationRequest) ([]ai.QAPair, error) {
	m.generateCalls++
	m.lastRequest = req

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return []ai.QAPair{
		{
			Question: "What does this document cover?",
			Answer:   "It covers " + req.ContextHint + ".",
		},
	}, nil
}

// ValidateCredential records the probe and accepts every credential unless
// ValidateCredentialFunc is set.
func (m *MockGenerator) ValidateCredential(ctx context.Context, credential string) error {
	m.validateCalls++
	m.lastCredential = credential
	m.hasLastCredential = true

	if m.ValidateCredentialFunc != nil {
		return m.ValidateCredentialFunc(ctx, credential)
	}
	return nil
}

// GenerateCallCount returns the number of Generate calls.
func (m *MockGenerator) GenerateCallCount() int {
	return m.generateCalls
}

// ValidateCallCount returns the number of ValidateCredential calls.
func (m *MockGenerator) ValidateCallCount() int {
	return m.validateCalls
}

// LastRequest returns the most recent generation request.
func (m *MockGenerator) LastRequest() ai.GenerationRequest {
	return m.lastRequest
}

// LastCredential returns the most recently probed credential and whether a
// probe happened at all.
func (m *MockGenerator) LastCredential() (string, bool) {
	return m.lastCredential, m.hasLastCredential
}

// Reset clears the call counts and injected behavior.
func (m *MockGenerator) Reset() {
	m.generateCalls = 0
	m.validateCalls = 0
	m.lastRequest = ai.GenerationRequest{}
	m.lastCredential = ""
	m.hasLastCredential = false
	m.GenerateFunc = nil
	m.ValidateCredentialFunc = nil
}
