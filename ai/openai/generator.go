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


package openai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
)

// Generator implements ai.Generator and ai.CredentialValidator over the
// OpenAI wire format. The backend id, host, and model are parameters so the
// same implementation serves every OpenAI-compatible vendor.
type Generator struct {
	backend    ai.BackendID
	client     llms.Model
	host       string
	credential string
	chunkMin   int
	chunkMax   int
	chunkPause time.Duration
	timeout    time.Duration
	logger     *slog.Logger
}

// NewGenerator creates the OpenAI Q&A generator with a per-request
// credential. The credential lives only as long as the generator.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config, credential string) (ai.Generator, error) {
	return NewWireGenerator(ai.BackendOpenAI, config.OpenAIHost, config.OpenAIModel, credential, config)
}

// NewWireGenerator creates a generator for any vendor speaking the OpenAI
// wire format, rooted at the given host with the given chat model.
func NewWireGenerator(backend ai.BackendID, host, model, credential string, config *ai.Config) (ai.Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken(credential),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		backend:    backend,
		client:     client,
		host:       host,
		credential: credential,
		chunkMin:   config.ChunkMinChars,
		chunkMax:   config.ChunkMaxChars,
		chunkPause: config.ChunkPause,
		timeout:    config.CallTimeout,
		logger:     slog.Default().With("component", backend.String()+"-generator"),
	}, nil
}

// Backend identifies the vendor this generator talks to.
func (g *Generator) Backend() ai.BackendID {
	return g.backend
}

// Generate splits the document text into paragraph chunks and prompts the
// vendor once per chunk, pausing between calls to stay under rate limits.
// Responses use the Q:/A: marker convention and are parsed lossily; the run
// fails only when every chunk together yields zero pairs.
func (g *Generator) Generate(ctx context.Context, req ai.GenerationRequest) ([]ai.QAPair, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	chunks := ai.SplitChunks(req.DocumentText, g.chunkMin, g.chunkMax)
	if len(chunks) == 0 {
		chunks = []string{strings.TrimSpace(req.DocumentText)}
	}

	g.logger.Info("generating qa pairs", "chunks", len(chunks))

	systemPrompt := ai.BuildGenerationPrompt(req.ContextHint)
	var pairs []ai.QAPair
	for i, chunk := range chunks {
		if i > 0 && g.chunkPause > 0 {
			select {
			case <-time.After(g.chunkPause):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		chunkPairs, err := g.generateChunk(ctx, systemPrompt, chunk)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, chunkPairs...)
	}

	if len(pairs) == 0 {
		return nil, ai.ErrEmptyGeneration
	}

	g.logger.Info("generated qa pairs", "count", len(pairs))
	return pairs, nil
}

func (g *Generator) generateChunk(ctx context.Context, systemPrompt, chunk string) ([]ai.QAPair, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(chunk)},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.7))
	if err != nil {
		g.logger.Error("completion call failed", "err", err)
		return nil, ai.NewGenerationError(g.backend, ai.StatusCodeFromError(err), "completion call failed", err)
	}
	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model")
		return nil, nil
	}

	return ai.ParseQAPairs(response.Choices[0].Content), nil
}
