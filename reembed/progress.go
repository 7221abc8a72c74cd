package reembed

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// progressLogger emits periodic progress lines through slog while a
// reembedding run advances. A line lands every Config.ReportInterval
// embeddings and once more at Finish.
type progressLogger struct {
	logger   *slog.Logger
	total    int
	interval int

	mu           sync.Mutex
	done         int
	lastReported int
	started      time.Time
}

func newProgressLogger(logger *slog.Logger, total, interval int) *progressLogger {
	return &progressLogger{
		logger:   logger,
		total:    total,
		interval: interval,
		started:  time.Now(),
	}
}

// Add records delta freshly written embeddings, logging when at least one
// report interval has passed since the previous line.
func (p *progressLogger) Add(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done += delta
	if p.done > p.total {
		p.done = p.total
	}
	if p.done-p.lastReported < p.interval {
		return
	}
	p.lastReported = p.done
	p.logger.Info("reembedding progress",
		"done", p.done,
		"total", p.total,
		"percent", p.percent(),
		"rate", p.rate())
}

// Finish logs the closing summary and returns the elapsed duration.
func (p *progressLogger) Finish() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.started)
	p.logger.Info("reembedding complete",
		"written", p.done,
		"elapsed", elapsed.Round(time.Millisecond),
		"rate", p.rate())
	return elapsed
}

// percent renders completion as a string so log output reads "42.0%"
// rather than a bare float. Must be called with the lock held.
func (p *progressLogger) percent() string {
	if p.total == 0 {
		return "100.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(p.done)/float64(p.total)*100)
}

// rate is embeddings per second since the run started. Must be called
// with the lock held.
func (p *progressLogger) rate() string {
	elapsed := time.Since(p.started).Seconds()
	if elapsed <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f/s", float64(p.done)/elapsed)
}
