package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
)

// chatServer fakes an OpenAI-compatible vendor. It counts completion calls
// and returns the given content for each one.
func chatServer(t *testing.T, content string, completions *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		completions.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		})
	})
	return httptest.NewServer(mux)
}

func generatorConfig(host string) *ai.Config {
	return ai.NewConfig(
		ai.WithOpenAIHost(host+"/v1"),
		ai.WithChunkPause(0),
		ai.WithCallTimeout(5*time.Second),
	)
}

func TestGeneratorGenerate(t *testing.T) {
	var completions atomic.Int32
	srv := chatServer(t, "Q: What is the return window?\nA: 30 days", &completions)
	defer srv.Close()

	gen, err := NewGenerator(generatorConfig(srv.URL), "sk-valid")
	require.NoError(t, err)
	assert.Equal(t, ai.BackendOpenAI, gen.Backend())

	t.Run("parses marker responses", func(t *testing.T) {
		completions.Store(0)
		pairs, err := gen.Generate(context.Background(), ai.GenerationRequest{
			DocumentText: "Returns are accepted within 30 days of purchase with the original receipt.",
			ContextHint:  "retail customer support",
			Credential:   "sk-valid",
		})
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, "What is the return window?", pairs[0].Question)
		assert.Equal(t, "30 days", pairs[0].Answer)
		assert.Equal(t, int32(1), completions.Load())
	})

	t.Run("one completion call per chunk", func(t *testing.T) {
		completions.Store(0)
		text := "Returns are accepted within 30 days of purchase with the original receipt.\n\n" +
			"Shipping takes 3-5 business days to most destinations in the country."
		pairs, err := gen.Generate(context.Background(), ai.GenerationRequest{
			DocumentText: text,
			ContextHint:  "retail customer support",
		})
		require.NoError(t, err)
		assert.Len(t, pairs, 2)
		assert.Equal(t, int32(2), completions.Load())
	})

	t.Run("blank hint fails before any call", func(t *testing.T) {
		completions.Store(0)
		_, err := gen.Generate(context.Background(), ai.GenerationRequest{
			DocumentText: "some document text that is long enough to be chunked normally here",
		})
		assert.ErrorIs(t, err, ai.ErrMissingContext)
		assert.Equal(t, int32(0), completions.Load())
	})
}

func TestGeneratorEmptyGeneration(t *testing.T) {
	var completions atomic.Int32
	srv := chatServer(t, "I cannot help with that.", &completions)
	defer srv.Close()

	gen, err := NewGenerator(generatorConfig(srv.URL), "sk-valid")
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), ai.GenerationRequest{
		DocumentText: "Returns are accepted within 30 days of purchase with the original receipt.",
		ContextHint:  "retail customer support",
	})
	assert.ErrorIs(t, err, ai.ErrEmptyGeneration)
	assert.Equal(t, int32(1), completions.Load())
}

func TestValidateCredential(t *testing.T) {
	var completions atomic.Int32
	srv := chatServer(t, "Q: q\nA: a", &completions)
	defer srv.Close()

	newValidator := func(t *testing.T, credential string) ai.CredentialValidator {
		gen, err := NewGenerator(generatorConfig(srv.URL), credential)
		require.NoError(t, err)
		validator, ok := gen.(ai.CredentialValidator)
		require.True(t, ok)
		return validator
	}

	t.Run("accepted key", func(t *testing.T) {
		err := newValidator(t, "sk-valid").ValidateCredential(context.Background(), "sk-valid")
		assert.NoError(t, err)
	})

	t.Run("rejected key never reaches completions", func(t *testing.T) {
		completions.Store(0)
		err := newValidator(t, "sk-bogus").ValidateCredential(context.Background(), "sk-bogus")
		assert.ErrorIs(t, err, ai.ErrInvalidCredential)
		assert.Equal(t, int32(0), completions.Load())
	})

	t.Run("server error carries status", func(t *testing.T) {
		down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer down.Close()

		gen, err := NewGenerator(generatorConfig(down.URL), "sk-valid")
		require.NoError(t, err)

		err = gen.(ai.CredentialValidator).ValidateCredential(context.Background(), "sk-valid")
		var genErr *ai.GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, http.StatusInternalServerError, genErr.StatusCode)
		assert.Equal(t, ai.BackendOpenAI, genErr.Backend)
	})

	t.Run("unreachable vendor", func(t *testing.T) {
		gen, err := NewGenerator(generatorConfig("http://127.0.0.1:1"), "sk-valid")
		require.NoError(t, err)

		err = gen.(ai.CredentialValidator).ValidateCredential(context.Background(), "sk-valid")
		var genErr *ai.GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Zero(t, genErr.StatusCode)
	})
}
