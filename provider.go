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


package wizardchat

import (
	"fmt"
	"log/slog"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
	"github.com/GyanFactory/WizardChatUI-sub000/ai/deepseek"
	"github.com/GyanFactory/WizardChatUI-sub000/ai/huggingface"
	"github.com/GyanFactory/WizardChatUI-sub000/ai/local"
	"github.com/GyanFactory/WizardChatUI-sub000/ai/openai"
)

// Provider implements ai.Provider for production use. Text extraction always
// runs through the local Python scripts; embeddings default to the local
// scripts as well but can be switched to an OpenAI-compatible vendor
// endpoint. Generators are constructed per request so that vendor
// credentials are never retained.
type Provider struct {
	config    *ai.Config
	embedder  ai.Embedder
	extractor ai.TextExtractor
	logger    *slog.Logger
}

// ProviderOption configures a Provider.
type ProviderOption func(*providerOptions)

type providerOptions struct {
	vendorEmbeddings    bool
	embeddingCredential string
}

// WithVendorEmbeddings selects the OpenAI-compatible embedding endpoint from
// the config instead of the local subprocess scripts. The credential may be
// empty for unauthenticated local servers.
func WithVendorEmbeddings(credential string) ProviderOption {
	return func(o *providerOptions) {
		o.vendorEmbeddings = true
		o.embeddingCredential = credential
	}
}

// NewProvider creates the production AI provider.
// The config is validated and normalized before use.
//
// Returns ai.Provider (not *Provider) to enforce abstraction and keep
// callers decoupled from backend construction details.
func NewProvider(config *ai.Config, opts ...ProviderOption) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	options := &providerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var embedder ai.Embedder
	var err error
	if options.vendorEmbeddings {
		embedder, err = openai.NewEmbedder(config, options.embeddingCredential)
	} else {
		embedder, err = local.NewEmbedder(config)
	}
	if err != nil {
		return nil, err
	}

	extractor, err := local.NewExtractor(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		embedder:  embedder,
		extractor: extractor,
		logger:    slog.Default().With("component", "provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Extractor returns the document text extraction service.
func (p *Provider) Extractor() ai.TextExtractor {
	return p.extractor
}

// Generator builds the Q&A generation backend for the given id. The
// credential is handed to the backend's client and forgotten; it is ignored
// by the local backend.
func (p *Provider) Generator(backend ai.BackendID, credential string) (ai.Generator, error) {
	switch backend {
	case ai.BackendLocal:
		return local.NewGenerator(p.config)
	case ai.BackendOpenAI:
		return openai.NewGenerator(p.config, credential)
	case ai.BackendDeepSeek:
		return deepseek.NewGenerator(p.config, credential)
	case ai.BackendHuggingFace:
		return huggingface.NewGenerator(p.config, credential)
	default:
		return nil, fmt.Errorf("unknown generation backend %d", backend)
	}
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing provider")
	return nil
}
