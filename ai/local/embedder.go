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


package local

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
)

const embedderScript = "embeddings.py"

// Embedder implements ai.Embedder with a sentence-transformers script.
// Query embedding is flagged so the script can apply its query prefix.
type Embedder struct {
	runner *runner
	logger *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := slog.Default().With("component", "local-embedder")
	return &Embedder{
		runner: newRunner(config.PythonBin, config.ScriptDir, config.CallTimeout, logger),
		logger: logger,
	}, nil
}

// NewEmbedder creates the local embedder.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return e.embedOne(ctx, text, false)
}

// EmbedQuery generates a vector embedding for a chat query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embedOne(ctx, text, true)
}

func (e *Embedder) embedOne(ctx context.Context, text string, isQuery bool) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ai.ErrEmptyEmbeddingText
	}

	args := []string{text}
	if isQuery {
		args = []string{"--query", text}
	}

	out, err := e.runner.run(ctx, embedderScript, nil, args...)
	if err != nil {
		return nil, ai.NewEmbeddingError("embedding script failed", err)
	}

	var vector []float32
	if err := json.Unmarshal(out, &vector); err != nil {
		e.logger.Error("unparsable embedding output", "err", err)
		return nil, ai.NewEmbeddingError("unparsable embedding output", err)
	}
	return vector, nil
}

// EmbedTexts generates vector embeddings for multiple text strings in one
// script invocation. The script prints an array of arrays in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, ai.ErrEmptyEmbeddingText
		}
	}

	e.logger.Debug("generating embeddings", "count", len(texts))

	out, err := e.runner.run(ctx, embedderScript, nil, append([]string{"--batch"}, texts...)...)
	if err != nil {
		return nil, ai.NewEmbeddingError("embedding script failed", err)
	}

	var vectors [][]float32
	if err := json.Unmarshal(out, &vectors); err != nil {
		e.logger.Error("unparsable embedding output", "err", err)
		return nil, ai.NewEmbeddingError("unparsable embedding output", err)
	}
	if len(vectors) != len(texts) {
		return nil, ai.NewEmbeddingError("embedding count mismatch", nil)
	}
	return vectors, nil
}
