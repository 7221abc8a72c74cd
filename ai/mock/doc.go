// Package mock provides test double implementations of the AI service
// interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Generator,
// ai.TextExtractor, and ai.Provider for use in unit tests. The mocks allow
// tests to run without subprocess or vendor dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockGen := mock.NewMockGenerator(ai.BackendOpenAI)
//	mockGen.GenerateFunc = func(ctx context.Context, req ai.GenerationRequest) ([]ai.QAPair, error) {
//	    return []ai.QAPair{{Question: "q", Answer: "a"}}, nil
//	}
//
//	// Check call counts
//	count := mockGen.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockGenerator: Returns one pair derived from the context hint
//   - MockExtractor: Returns the raw bytes interpreted as UTF-8 text
//   - MockProvider: Aggregates the mock services
package mock
