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


package mock

import (
	"github.com/GyanFactory/WizardChatUI-sub000/ai"
)

// MockProvider is a test double for ai.Provider.
// It aggregates mock embedder, extractor, and generator instances. All
// Generator calls return the same MockGenerator regardless of backend,
// with the requested backend id and credential recorded.
type MockProvider struct {
	embedder  *MockEmbedder
	extractor *MockExtractor
	generator *MockGenerator

	// GeneratorFunc is called by Generator if set, overriding the shared
	// mock generator.
	GeneratorFunc func(backend ai.BackendID, credential string) (ai.Generator, error)

	generatorCalls  int
	lastBackend     ai.BackendID
	lastCredentials []string
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns concrete type so tests can reach the underlying mocks for call
// count assertions and behavior injection.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		extractor: NewMockExtractor(),
		generator: NewMockGenerator(ai.BackendLocal),
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Extractor returns the mock extractor.
func (p *MockProvider) Extractor() ai.TextExtractor {
	return p.extractor
}

// Generator returns the shared mock generator, recording the requested
// backend and credential.
func (p *MockProvider) Generator(backend ai.BackendID, credential string) (ai.Generator, error) {
	p.generatorCalls++
	p.lastBackend = backend
	p.lastCredentials = append(p.lastCredentials, credential)

	if p.GeneratorFunc != nil {
		return p.GeneratorFunc(backend, credential)
	}
	p.generator.backend = backend
	return p.generator, nil
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockExtractor {
	return p.extractor
}

// GetMockGenerator returns the underlying mock generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}

// GeneratorCallCount returns the number of Generator factory calls.
func (p *MockProvider) GeneratorCallCount() int {
	return p.generatorCalls
}

// LastBackend returns the backend id of the most recent Generator call.
func (p *MockProvider) LastBackend() ai.BackendID {
	return p.lastBackend
}

// Credentials returns every credential passed to Generator, in order.
func (p *MockProvider) Credentials() []string {
	return p.lastCredentials
}
