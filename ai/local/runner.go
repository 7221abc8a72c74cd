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


// Package local implements the out-of-process generation, embedding, and
// extraction backends. Each service shells out to a Python script through a
// shared runner; scripts read their input from argv or stdin and write JSON
// to stdout.
package local

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// runner executes the backend scripts with a bounded timeout and captures
// their output streams.
type runner struct {
	pythonBin string
	scriptDir string
	timeout   time.Duration
	logger    *slog.Logger
}

func newRunner(pythonBin, scriptDir string, timeout time.Duration, logger *slog.Logger) *runner {
	return &runner{
		pythonBin: pythonBin,
		scriptDir: scriptDir,
		timeout:   timeout,
		logger:    logger,
	}
}

// run executes script with the given args and optional stdin, returning
// trimmed stdout. A non-zero exit wraps the process error together with the
// script's stderr tail.
func (r *runner) run(ctx context.Context, script string, stdin io.Reader, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	path := filepath.Join(r.scriptDir, script)
	cmd := exec.CommandContext(ctx, r.pythonBin, append([]string{path}, args...)...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			r.logger.Error("script timed out", "script", script, "timeout", r.timeout)
			return nil, fmt.Errorf("%s timed out after %s: %w", script, r.timeout, ctx.Err())
		}
		r.logger.Error("script failed", "script", script, "elapsed", elapsed, "stderr", stderrTail(&stderr), "err", err)
		return nil, fmt.Errorf("%s: %w: %s", script, err, stderrTail(&stderr))
	}

	r.logger.Debug("script completed", "script", script, "elapsed", elapsed, "stdout_bytes", stdout.Len())
	return bytes.TrimSpace(stdout.Bytes()), nil
}

// stderrTail keeps error messages bounded; model scripts can be chatty on
// stderr during warmup.
func stderrTail(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	const max = 512
	if len(s) > max {
		s = "..." + s[len(s)-max:]
	}
	return s
}
