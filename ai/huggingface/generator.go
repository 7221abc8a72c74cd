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


// Package huggingface implements Q&A generation against Hugging Face hosted
// inference. Credentials are validated with the account endpoint before any
// inference call.
package huggingface

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/huggingface"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
)

// Generator implements ai.Generator and ai.CredentialValidator for Hugging
// Face hosted models.
type Generator struct {
	client     llms.Model
	model      string
	probeHost  string
	chunkMin   int
	chunkMax   int
	chunkPause time.Duration
	timeout    time.Duration
	logger     *slog.Logger
}

// NewGenerator creates the Hugging Face Q&A generator with a per-request
// credential.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config, credential string) (ai.Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := []huggingface.Option{
		huggingface.WithToken(credential),
		huggingface.WithModel(config.HuggingFaceModel),
	}
	if config.HuggingFaceHost != "" {
		opts = append(opts, huggingface.WithURL(config.HuggingFaceHost))
	}
	client, err := huggingface.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client:     client,
		model:      config.HuggingFaceModel,
		probeHost:  config.HuggingFaceProbeHost,
		chunkMin:   config.ChunkMinChars,
		chunkMax:   config.ChunkMaxChars,
		chunkPause: config.ChunkPause,
		timeout:    config.CallTimeout,
		logger:     slog.Default().With("component", "huggingface-generator"),
	}, nil
}

// Backend identifies this generator as the Hugging Face backend.
func (g *Generator) Backend() ai.BackendID {
	return ai.BackendHuggingFace
}

// Generate prompts the hosted model once per paragraph chunk. Instruction
// models on hosted inference take a single flattened prompt, so the system
// prompt and chunk text are concatenated. Responses use the Q:/A: marker
// convention and are parsed lossily.
func (g *Generator) Generate(ctx context.Context, req ai.GenerationRequest) ([]ai.QAPair, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	chunks := ai.SplitChunks(req.DocumentText, g.chunkMin, g.chunkMax)
	if len(chunks) == 0 {
		chunks = []string{strings.TrimSpace(req.DocumentText)}
	}

	g.logger.Info("generating qa pairs", "chunks", len(chunks), "model", g.model)

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

		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		response, err := llms.GenerateFromSinglePrompt(callCtx, g.client,
			systemPrompt+"\n\nText:\n"+chunk,
			llms.WithModel(g.model),
			llms.WithTemperature(0.7),
		)
		cancel()
		if err != nil {
			g.logger.Error("inference call failed", "err", err)
			return nil, ai.NewGenerationError(ai.BackendHuggingFace, ai.StatusCodeFromError(err), "inference call failed", err)
		}
		pairs = append(pairs, ai.ParseQAPairs(response)...)
	}

	if len(pairs) == 0 {
		return nil, ai.ErrEmptyGeneration
	}

	g.logger.Info("generated qa pairs", "count", len(pairs))
	return pairs, nil
}
