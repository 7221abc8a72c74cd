package mock

import "context"

// MockExtractor is a test double for ai.TextExtractor.
// It allows custom behavior injection via function fields.
type MockExtractor struct {
	// ExtractTextFunc is called by ExtractText if set.
	// If nil, the raw bytes are returned as UTF-8 text.
	ExtractTextFunc func(ctx context.Context, fileBytes []byte) (string, error)

	callCount int
}

// NewMockExtractor creates a mock extractor with default passthrough behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// ExtractText returns the raw bytes as text.
func (m *MockExtractor) ExtractText(ctx context.Context, fileBytes []byte) (string, error) {
	m.callCount++

	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, fileBytes)
	}
	return string(fileBytes), nil
}

// CallCount returns the number of ExtractText calls.
func (m *MockExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockExtractor) Reset() {
	m.callCount = 0
	m.ExtractTextFunc = nil
}
