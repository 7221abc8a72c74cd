package reembed

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GyanFactory/WizardChatUI-sub000/ai/mock"
)

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
	}
}

// capturedLogger collects slog output so tests can assert on progress lines.
func capturedLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func requireUnitLength(t *testing.T, v []float32) {
	t.Helper()

	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	require.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
		{"zero report interval", func(c *Config) { c.ReportInterval = 0 }, ErrInvalidReportInterval},
		{"zero max retries", func(c *Config) { c.MaxRetries = 0 }, ErrInvalidMaxRetries},
		{"negative retry delay", func(c *Config) { c.RetryDelay = -time.Second }, ErrInvalidRetryDelay},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			assert.ErrorIs(t, config.Validate(), tc.want)

			_, err := NewReembedder(nil, nil, nil, config)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReembedderRun(t *testing.T) {
	t.Run("rewrites all document and item vectors", func(t *testing.T) {
		docRepo, qaRepo := newTestRepos(t)
		documents := seedDocuments(t, docRepo, 5, 3, 2)

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{2, 0, 0, 2}
			}
			return vectors, nil
		}

		logger, out := capturedLogger()
		r, err := NewReembedder(docRepo, qaRepo, embedder, testConfig(), WithLogger(logger))
		require.NoError(t, err)
		require.NoError(t, r.Run(context.Background(), 5))

		for _, seeded := range documents {
			doc, err := docRepo.GetDocument(context.Background(), seeded.Id)
			require.NoError(t, err)
			require.Len(t, doc.Vector, 4)
			requireUnitLength(t, doc.Vector)

			items, err := qaRepo.GetQAItemsByDocument(context.Background(), seeded.Id)
			require.NoError(t, err)
			require.Len(t, items, 2)
			for _, item := range items {
				require.Len(t, item.Vector, 4)
				requireUnitLength(t, item.Vector)
			}
		}

		assert.Contains(t, out.String(), "reembedding started")
		assert.Contains(t, out.String(), "embeddings=9")
		assert.Contains(t, out.String(), "reembedding complete")
		assert.Contains(t, out.String(), "written=9")
	})

	t.Run("retries transient embedding failures", func(t *testing.T) {
		docRepo, qaRepo := newTestRepos(t)
		seedDocuments(t, docRepo, 6, 1, 0)

		attempts := 0
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("rate limited")
			}
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{1, 0}
			}
			return vectors, nil
		}

		r, err := NewReembedder(docRepo, qaRepo, embedder, testConfig())
		require.NoError(t, err)
		require.NoError(t, r.Run(context.Background(), 6))
		assert.Equal(t, 3, attempts)
	})

	t.Run("persistent failure surfaces after retries", func(t *testing.T) {
		docRepo, qaRepo := newTestRepos(t)
		seedDocuments(t, docRepo, 7, 1, 0)

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("model unavailable")
		}

		r, err := NewReembedder(docRepo, qaRepo, embedder, testConfig())
		require.NoError(t, err)
		err = r.Run(context.Background(), 7)
		require.Error(t, err)
		assert.ErrorContains(t, err, "model unavailable")
		assert.ErrorContains(t, err, "after 3 attempts")
	})

	t.Run("empty project is a no-op", func(t *testing.T) {
		docRepo, qaRepo := newTestRepos(t)

		embedder := mock.NewMockEmbedder()
		logger, out := capturedLogger()
		r, err := NewReembedder(docRepo, qaRepo, embedder, testConfig(), WithLogger(logger))
		require.NoError(t, err)
		require.NoError(t, r.Run(context.Background(), 42))

		assert.Zero(t, embedder.CallCount())
		assert.Contains(t, out.String(), "nothing to reembed")
	})

	t.Run("missing project rejected", func(t *testing.T) {
		docRepo, qaRepo := newTestRepos(t)

		r, err := NewReembedder(docRepo, qaRepo, mock.NewMockEmbedder(), nil)
		require.NoError(t, err)
		assert.ErrorIs(t, r.Run(context.Background(), 0), ErrMissingProject)
	})
}

func TestBatchProcessorProcess(t *testing.T) {
	t.Run("counts documents and items", func(t *testing.T) {
		docRepo, qaRepo := newTestRepos(t)
		documents := seedDocuments(t, docRepo, 8, 2, 3)

		bp := NewBatchProcessor(docRepo, qaRepo, mock.NewMockEmbedder(), testConfig())
		written, err := bp.Process(context.Background(), documents)
		require.NoError(t, err)
		assert.Equal(t, 8, written)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		docRepo, qaRepo := newTestRepos(t)

		embedder := mock.NewMockEmbedder()
		bp := NewBatchProcessor(docRepo, qaRepo, embedder, testConfig())
		written, err := bp.Process(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, written)
		assert.Zero(t, embedder.CallCount())
	})

	t.Run("count mismatch rejected", func(t *testing.T) {
		docRepo, qaRepo := newTestRepos(t)
		documents := seedDocuments(t, docRepo, 9, 2, 0)

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 0}}, nil
		}

		bp := NewBatchProcessor(docRepo, qaRepo, embedder, testConfig())
		_, err := bp.Process(context.Background(), documents)
		assert.ErrorContains(t, err, "embedding count mismatch")
	})
}

func TestBatchProcessorRetry(t *testing.T) {
	newProcessor := func(maxRetries int) *BatchProcessor {
		config := testConfig()
		config.MaxRetries = maxRetries
		return NewBatchProcessor(nil, nil, nil, config)
	}

	t.Run("first success skips backoff", func(t *testing.T) {
		calls := 0
		err := newProcessor(3).retry(context.Background(), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers within the attempt budget", func(t *testing.T) {
		calls := 0
		err := newProcessor(3).retry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns final error when exhausted", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := newProcessor(2).retry(context.Background(), func() error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, calls)
	})

	t.Run("cancellation wins over the operation error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := newProcessor(5).retry(ctx, func() error {
			calls++
			cancel()
			return errors.New("transient")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
