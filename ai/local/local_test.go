package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
)

// writeScript drops a shell script into dir under a backend script name.
// The runner invokes scripts through the configured interpreter, so tests
// swap python for /bin/sh.
func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+body), 0o755)
	require.NoError(t, err)
}

func testConfig(t *testing.T, dir string) *ai.Config {
	t.Helper()
	return ai.NewConfig(
		ai.WithPython("/bin/sh", dir),
		ai.WithCallTimeout(5*time.Second),
	)
}

func TestGeneratorGenerate(t *testing.T) {
	dir := t.TempDir()

	t.Run("parses script output", func(t *testing.T) {
		writeScript(t, dir, "qa_generator.py",
			`echo '[{"question":"What is the return window?","answer":"30 days"}]'`)

		gen, err := NewGenerator(testConfig(t, dir))
		require.NoError(t, err)
		assert.Equal(t, ai.BackendLocal, gen.Backend())

		pairs, err := gen.Generate(context.Background(), ai.GenerationRequest{
			DocumentText: "Returns are accepted within 30 days of purchase.",
			ContextHint:  "retail customer support",
		})
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, "What is the return window?", pairs[0].Question)
		assert.Equal(t, "30 days", pairs[0].Answer)
	})

	t.Run("blank hint fails before the script runs", func(t *testing.T) {
		marker := filepath.Join(dir, "ran")
		writeScript(t, dir, "qa_generator.py", "touch "+marker+"; echo '[]'")

		gen, err := NewGenerator(testConfig(t, dir))
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), ai.GenerationRequest{
			DocumentText: "some text",
		})
		assert.ErrorIs(t, err, ai.ErrMissingContext)
		assert.NoFileExists(t, marker)
	})

	t.Run("empty array fails with ErrEmptyGeneration", func(t *testing.T) {
		writeScript(t, dir, "qa_generator.py", "echo '[]'")

		gen, err := NewGenerator(testConfig(t, dir))
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), ai.GenerationRequest{
			DocumentText: "some text",
			ContextHint:  "support",
		})
		assert.ErrorIs(t, err, ai.ErrEmptyGeneration)
	})

	t.Run("non-zero exit surfaces stderr", func(t *testing.T) {
		writeScript(t, dir, "qa_generator.py", "echo 'model not found' >&2; exit 3")

		gen, err := NewGenerator(testConfig(t, dir))
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), ai.GenerationRequest{
			DocumentText: "some text",
			ContextHint:  "support",
		})
		require.Error(t, err)
		var genErr *ai.GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, ai.BackendLocal, genErr.Backend)
		assert.Contains(t, err.Error(), "generator script failed")
	})

	t.Run("unparsable output fails hard", func(t *testing.T) {
		writeScript(t, dir, "qa_generator.py", "echo 'not json'")

		gen, err := NewGenerator(testConfig(t, dir))
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), ai.GenerationRequest{
			DocumentText: "some text",
			ContextHint:  "support",
		})
		var genErr *ai.GenerationError
		require.ErrorAs(t, err, &genErr)
	})

	t.Run("timeout is bounded", func(t *testing.T) {
		writeScript(t, dir, "qa_generator.py", "sleep 10")

		cfg := ai.NewConfig(
			ai.WithPython("/bin/sh", dir),
			ai.WithCallTimeout(100*time.Millisecond),
		)
		gen, err := NewGenerator(cfg)
		require.NoError(t, err)

		start := time.Now()
		_, err = gen.Generate(context.Background(), ai.GenerationRequest{
			DocumentText: "some text",
			ContextHint:  "support",
		})
		require.Error(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}

func TestEmbedder(t *testing.T) {
	dir := t.TempDir()

	t.Run("single text", func(t *testing.T) {
		writeScript(t, dir, "embeddings.py", `echo '[0.1, 0.2, 0.3]'`)

		emb, err := NewEmbedder(testConfig(t, dir))
		require.NoError(t, err)

		vec, err := emb.EmbedText(context.Background(), "what is the return window")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	})

	t.Run("query flag reaches the script", func(t *testing.T) {
		writeScript(t, dir, "embeddings.py",
			`case "$1" in --query) echo '[1]';; *) echo '[0]';; esac`)

		emb, err := NewEmbedder(testConfig(t, dir))
		require.NoError(t, err)

		vec, err := emb.EmbedQuery(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, []float32{1}, vec)

		vec, err = emb.EmbedText(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, []float32{0}, vec)
	})

	t.Run("batch preserves order", func(t *testing.T) {
		writeScript(t, dir, "embeddings.py", `echo '[[1, 0], [0, 1]]'`)

		emb, err := NewEmbedder(testConfig(t, dir))
		require.NoError(t, err)

		vecs, err := emb.EmbedTexts(context.Background(), []string{"first", "second"})
		require.NoError(t, err)
		require.Len(t, vecs, 2)
		assert.Equal(t, []float32{1, 0}, vecs[0])
		assert.Equal(t, []float32{0, 1}, vecs[1])
	})

	t.Run("batch count mismatch", func(t *testing.T) {
		writeScript(t, dir, "embeddings.py", `echo '[[1, 0]]'`)

		emb, err := NewEmbedder(testConfig(t, dir))
		require.NoError(t, err)

		_, err = emb.EmbedTexts(context.Background(), []string{"first", "second"})
		var embErr *ai.EmbeddingError
		require.ErrorAs(t, err, &embErr)
	})

	t.Run("empty text rejected without running the script", func(t *testing.T) {
		marker := filepath.Join(dir, "emb-ran")
		writeScript(t, dir, "embeddings.py", "touch "+marker+"; echo '[]'")

		emb, err := NewEmbedder(testConfig(t, dir))
		require.NoError(t, err)

		_, err = emb.EmbedText(context.Background(), "   ")
		assert.ErrorIs(t, err, ai.ErrEmptyEmbeddingText)

		_, err = emb.EmbedTexts(context.Background(), []string{"ok", ""})
		assert.ErrorIs(t, err, ai.ErrEmptyEmbeddingText)

		assert.NoFileExists(t, marker)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		emb, err := NewEmbedder(testConfig(t, dir))
		require.NoError(t, err)

		vecs, err := emb.EmbedTexts(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, vecs)
	})
}

func TestExtractor(t *testing.T) {
	dir := t.TempDir()

	t.Run("text from stdin bytes", func(t *testing.T) {
		writeScript(t, dir, "pdf_processor.py", "cat -")

		ext, err := NewExtractor(testConfig(t, dir))
		require.NoError(t, err)

		text, err := ext.ExtractText(context.Background(), []byte("Returns are accepted within 30 days."))
		require.NoError(t, err)
		assert.Equal(t, "Returns are accepted within 30 days.", text)
	})

	t.Run("empty input rejected", func(t *testing.T) {
		ext, err := NewExtractor(testConfig(t, dir))
		require.NoError(t, err)

		_, err = ext.ExtractText(context.Background(), nil)
		var exErr *ai.ExtractionError
		require.ErrorAs(t, err, &exErr)
	})

	t.Run("script failure wraps detail", func(t *testing.T) {
		writeScript(t, dir, "pdf_processor.py", "echo 'bad pdf' >&2; exit 1")

		ext, err := NewExtractor(testConfig(t, dir))
		require.NoError(t, err)

		_, err = ext.ExtractText(context.Background(), []byte("%PDF-garbage"))
		var exErr *ai.ExtractionError
		require.ErrorAs(t, err, &exErr)
		assert.Contains(t, err.Error(), "extraction script failed")
	})
}
