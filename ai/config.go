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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the generation, embedding, and extraction
// backends.
type Config struct {
	// OpenAIHost is the base URL for the OpenAI API.
	OpenAIHost string

	// DeepSeekHost is the base URL for the DeepSeek API (OpenAI-compatible).
	DeepSeekHost string

	// HuggingFaceHost is the base URL for Hugging Face hosted inference.
	// Empty selects the library default.
	HuggingFaceHost string

	// HuggingFaceProbeHost is the base URL for the Hugging Face account
	// endpoint used to validate credentials.
	HuggingFaceProbeHost string

	// OpenAIModel is the chat model used for Q&A generation on OpenAI.
	// Example: "gpt-3.5-turbo", "gpt-4o-mini"
	OpenAIModel string

	// DeepSeekModel is the chat model used for Q&A generation on DeepSeek.
	DeepSeekModel string

	// HuggingFaceModel is the hosted model used for Q&A generation on
	// Hugging Face. Example: "mistralai/Mistral-7B-Instruct-v0.2"
	HuggingFaceModel string

	// EmbeddingHost is the base URL for the OpenAI-compatible embedding
	// service used in vendor mode.
	// Example: "http://localhost:11434/v1" for a local server
	EmbeddingHost string

	// EmbeddingModel is the model identifier for text embeddings.
	// Example: "text-embedding-3-small", "all-MiniLM-L6-v2"
	EmbeddingModel string

	// PythonBin is the interpreter used for the local subprocess backends.
	PythonBin string

	// ScriptDir is the directory holding qa_generator.py, embeddings.py, and
	// pdf_processor.py for the local backends.
	ScriptDir string

	// CallTimeout bounds every external call (subprocess or vendor HTTP).
	CallTimeout time.Duration

	// ChunkMinChars and ChunkMaxChars bound the document chunks sent to
	// vendor backends. Chunks outside the bounds are skipped.
	ChunkMinChars int
	ChunkMaxChars int

	// ChunkPause is the rate-limit pause between per-chunk vendor calls.
	ChunkPause time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithOpenAIHost sets the OpenAI API base URL.
func WithOpenAIHost(host string) ConfigOption {
	return func(c *Config) {
		c.OpenAIHost = host
	}
}

// WithDeepSeekHost sets the DeepSeek API base URL.
func WithDeepSeekHost(host string) ConfigOption {
	return func(c *Config) {
		c.DeepSeekHost = host
	}
}

// WithHuggingFaceHost sets the Hugging Face inference base URL.
func WithHuggingFaceHost(host string) ConfigOption {
	return func(c *Config) {
		c.HuggingFaceHost = host
	}
}

// WithHuggingFaceProbeHost sets the Hugging Face account endpoint base URL.
func WithHuggingFaceProbeHost(host string) ConfigOption {
	return func(c *Config) {
		c.HuggingFaceProbeHost = host
	}
}

// WithOpenAIModel sets the OpenAI generation model.
func WithOpenAIModel(model string) ConfigOption {
	return func(c *Config) {
		c.OpenAIModel = model
	}
}

// WithDeepSeekModel sets the DeepSeek generation model.
func WithDeepSeekModel(model string) ConfigOption {
	return func(c *Config) {
		c.DeepSeekModel = model
	}
}

// WithHuggingFaceModel sets the Hugging Face generation model.
func WithHuggingFaceModel(model string) ConfigOption {
	return func(c *Config) {
		c.HuggingFaceModel = model
	}
}

// WithEmbedding sets the embedding service host and model.
func WithEmbedding(host, model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.EmbeddingModel = model
	}
}

// WithPython sets the interpreter and script directory for the local
// subprocess backends.
func WithPython(bin, scriptDir string) ConfigOption {
	return func(c *Config) {
		c.PythonBin = bin
		c.ScriptDir = scriptDir
	}
}

// WithCallTimeout sets the bound on each external call.
func WithCallTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.CallTimeout = d
	}
}

// WithChunkBounds sets the vendor chunk size bounds.
func WithChunkBounds(minChars, maxChars int) ConfigOption {
	return func(c *Config) {
		c.ChunkMinChars = minChars
		c.ChunkMaxChars = maxChars
	}
}

// WithChunkPause sets the rate-limit pause between per-chunk vendor calls.
func WithChunkPause(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.ChunkPause = d
	}
}

// DefaultConfig returns a Config with the production vendor endpoints and
// the original chunking bounds.
func DefaultConfig() *Config {
	return &Config{
		OpenAIHost:           "https://api.openai.com/v1",
		DeepSeekHost:         "https://api.deepseek.com/v1",
		HuggingFaceProbeHost: "https://huggingface.co",
		OpenAIModel:          "gpt-3.5-turbo",
		DeepSeekModel:        "deepseek-chat",
		HuggingFaceModel:     "mistralai/Mistral-7B-Instruct-v0.2",
		EmbeddingHost:        "http://localhost:11434/v1",
		EmbeddingModel:       "all-MiniLM-L6-v2",
		PythonBin:            "python3",
		ScriptDir:            "scripts",
		CallTimeout:          60 * time.Second,
		ChunkMinChars:        50,
		ChunkMaxChars:        1500,
		ChunkPause:           time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. OpenAI-wire
// hosts get the /v1 suffix required by OpenAI-compatible APIs.
func (c *Config) Normalize() {
	c.OpenAIHost = normalizeV1Host(c.OpenAIHost)
	c.DeepSeekHost = normalizeV1Host(c.DeepSeekHost)
	c.EmbeddingHost = normalizeV1Host(c.EmbeddingHost)
	c.HuggingFaceProbeHost = strings.TrimSuffix(c.HuggingFaceProbeHost, "/")
}

func normalizeV1Host(host string) string {
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.OpenAIHost == "" {
		return errors.New("ai config: OpenAIHost is required")
	}
	if c.DeepSeekHost == "" {
		return errors.New("ai config: DeepSeekHost is required")
	}
	if c.OpenAIModel == "" || c.DeepSeekModel == "" || c.HuggingFaceModel == "" {
		return errors.New("ai config: generation models are required")
	}
	if c.EmbeddingHost == "" || c.EmbeddingModel == "" {
		return errors.New("ai config: embedding host and model are required")
	}
	if c.PythonBin == "" || c.ScriptDir == "" {
		return errors.New("ai config: python interpreter and script directory are required")
	}
	if c.CallTimeout <= 0 {
		return errors.New("ai config: CallTimeout must be positive")
	}
	if c.ChunkMinChars <= 0 || c.ChunkMaxChars < c.ChunkMinChars {
		return errors.New("ai config: invalid chunk bounds")
	}
	return nil
}
