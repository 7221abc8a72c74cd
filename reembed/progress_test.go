package reembed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressLogger(t *testing.T) {
	t.Run("reports only at the interval", func(t *testing.T) {
		logger, out := capturedLogger()
		p := newProgressLogger(logger, 10, 4)

		p.Add(2)
		assert.Empty(t, out.String())

		p.Add(2)
		assert.Contains(t, out.String(), "done=4")
		assert.Contains(t, out.String(), "total=10")
		assert.Contains(t, out.String(), "40.0%")
	})

	t.Run("finish always logs a summary", func(t *testing.T) {
		logger, out := capturedLogger()
		p := newProgressLogger(logger, 10, 100)

		p.Add(3)
		p.Finish()
		assert.Contains(t, out.String(), "reembedding complete")
		assert.Contains(t, out.String(), "written=3")
	})

	t.Run("caps progress at the total", func(t *testing.T) {
		logger, out := capturedLogger()
		p := newProgressLogger(logger, 5, 1)

		p.Add(9)
		assert.Contains(t, out.String(), "done=5")
		assert.Contains(t, out.String(), "100.0%")
		assert.Equal(t, 1, strings.Count(out.String(), "reembedding progress"))
	})
}
