package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQAPairs(t *testing.T) {
	t.Run("single pair", func(t *testing.T) {
		pairs := ParseQAPairs("Q: What is the return window?\nA: 30 days")
		require.Len(t, pairs, 1)
		assert.Equal(t, "What is the return window?", pairs[0].Question)
		assert.Equal(t, "30 days", pairs[0].Answer)
	})

	t.Run("multiple pairs", func(t *testing.T) {
		raw := "Q: What is the return window?\nA: 30 days\n\n" +
			"Q: Do refunds need a receipt?\nA: Yes, the original receipt is required."
		pairs := ParseQAPairs(raw)
		require.Len(t, pairs, 2)
		assert.Equal(t, "Do refunds need a receipt?", pairs[1].Question)
		assert.Equal(t, "Yes, the original receipt is required.", pairs[1].Answer)
	})

	t.Run("preamble before first marker is ignored", func(t *testing.T) {
		raw := "Sure, here are some pairs:\n\nQ: How long is shipping?\nA: 3-5 business days"
		pairs := ParseQAPairs(raw)
		require.Len(t, pairs, 1)
		assert.Equal(t, "How long is shipping?", pairs[0].Question)
	})

	t.Run("chunk without answer marker is dropped", func(t *testing.T) {
		raw := "Q: orphan question without an answer\n\nQ: real one\nA: real answer"
		pairs := ParseQAPairs(raw)
		require.Len(t, pairs, 1)
		assert.Equal(t, "real one", pairs[0].Question)
	})

	t.Run("empty question or answer is dropped", func(t *testing.T) {
		assert.Empty(t, ParseQAPairs("Q: \nA: answer with no question"))
		assert.Empty(t, ParseQAPairs("Q: question with no answer\nA: "))
	})

	t.Run("no markers at all", func(t *testing.T) {
		assert.Empty(t, ParseQAPairs("The model refused to answer."))
		assert.Empty(t, ParseQAPairs(""))
	})

	t.Run("answer marker before any question marker", func(t *testing.T) {
		assert.Empty(t, ParseQAPairs("A: dangling answer"))
	})

	t.Run("multiline answers survive", func(t *testing.T) {
		raw := "Q: What payment methods are accepted?\nA: We accept credit cards,\nPayPal, and bank transfer."
		pairs := ParseQAPairs(raw)
		require.Len(t, pairs, 1)
		assert.Equal(t, "We accept credit cards,\nPayPal, and bank transfer.", pairs[0].Answer)
	})
}

func TestSplitChunks(t *testing.T) {
	t.Run("splits on blank lines and filters bounds", func(t *testing.T) {
		text := "tiny\n\n" +
			"This paragraph is comfortably inside the configured size bounds for chunks.\n\n" +
			"Another paragraph of reasonable size that should also be kept by the splitter."
		chunks := SplitChunks(text, 50, 1500)
		require.Len(t, chunks, 2)
		assert.NotContains(t, chunks, "tiny")
	})

	t.Run("oversized paragraph skipped", func(t *testing.T) {
		text := "This one stays within the bounds and is therefore kept by SplitChunks."
		chunks := SplitChunks(text, 10, 40)
		assert.Empty(t, chunks)
	})

	t.Run("control characters scrubbed", func(t *testing.T) {
		text := "Shipping takes 3-5 business days\x00 to most \x07destinations worldwide."
		chunks := SplitChunks(text, 10, 200)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Shipping takes 3-5 business days to most destinations worldwide.", chunks[0])
	})
}
