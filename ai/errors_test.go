package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"langchaingo status line", errors.New("API returned unexpected status code: 401 Unauthorized"), 401},
		{"bare status", errors.New("unexpected status: 429"), 429},
		{"wrapped", fmt.Errorf("completion: %w", errors.New("status code: 503")), 503},
		{"no status present", errors.New("connection refused"), 0},
		{"out of range", errors.New("status code: 999"), 0},
		{"unrelated digits", errors.New("processed 12345 tokens"), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCodeFromError(tc.err))
		})
	}
}

func TestGenerationErrorMessage(t *testing.T) {
	withStatus := NewGenerationError(BackendOpenAI, 429, "completion call failed", errors.New("rate limited"))
	assert.Contains(t, withStatus.Error(), "status 429")

	withoutStatus := NewGenerationError(BackendLocal, 0, "script exited 1", errors.New("exit status 1"))
	assert.NotContains(t, withoutStatus.Error(), "status")
	assert.Contains(t, withoutStatus.Error(), "script exited 1")
}
