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
	"log/slog"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
	"github.com/GyanFactory/WizardChatUI-sub000/ingestion"
	"github.com/GyanFactory/WizardChatUI-sub000/keycipher"
	"github.com/GyanFactory/WizardChatUI-sub000/reembed"
	"github.com/GyanFactory/WizardChatUI-sub000/retrieval"
	"github.com/GyanFactory/WizardChatUI-sub000/storage"
	"github.com/GyanFactory/WizardChatUI-sub000/storage/badger"
)

// Database wires the storage backend, AI provider, and credential cipher
// into one handle the ingestion pipeline and retrieval engine hang off.
type Database struct {
	backend      *badger.Backend
	documentRepo storage.DocumentRepository
	qaItemRepo   storage.QAItemRepository
	provider     ai.Provider
	cipher       *keycipher.Cipher
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig      *ai.Config
	providerOpts  []ProviderOption
	transitSecret string
}

// WithAIConfig overrides the default AI backend configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProviderOptions forwards options to the AI provider construction.
func WithProviderOptions(opts ...ProviderOption) DatabaseOption {
	return func(o *databaseOptions) {
		o.providerOpts = append(o.providerOpts, opts...)
	}
}

// WithTransitSecret sets the shared secret used to decrypt vendor API keys
// arriving in ingestion requests. Without it, only the local backend is
// usable for ingestion.
func WithTransitSecret(secret string) DatabaseOption {
	return func(o *databaseOptions) {
		o.transitSecret = secret
	}
}

// NewDatabase opens the knowledge base at filePath and wires up its
// repositories and AI services.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	documentRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	qaItemRepo, err := badger.NewQAItemRepository(backend)
	if err != nil {
		documentRepo.Close()
		backend.Close()
		return nil, err
	}

	provider, err := NewProvider(options.aiConfig, options.providerOpts...)
	if err != nil {
		qaItemRepo.Close()
		documentRepo.Close()
		backend.Close()
		return nil, err
	}

	var cipher *keycipher.Cipher
	if options.transitSecret != "" {
		cipher, err = keycipher.New(options.transitSecret)
		if err != nil {
			provider.Close()
			qaItemRepo.Close()
			documentRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:      backend,
		documentRepo: documentRepo,
		qaItemRepo:   qaItemRepo,
		provider:     provider,
		cipher:       cipher,
		logger:       slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.qaItemRepo.Close(); err != nil {
		db.logger.Error("error closing qa item repository", "err", err)
		return err
	}
	if err := db.documentRepo.Close(); err != nil {
		db.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.documentRepo
}

func (db *Database) QAItemRepository() storage.QAItemRepository {
	return db.qaItemRepo
}

func (db *Database) Provider() ai.Provider {
	return db.provider
}

// KeyCipher returns the credential transit cipher, or nil when no transit
// secret was configured.
func (db *Database) KeyCipher() *keycipher.Cipher {
	return db.cipher
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	if db.cipher != nil {
		opts = append([]ingestion.Option{ingestion.WithKeyCipher(db.cipher)}, opts...)
	}
	return ingestion.NewPipeline(db.documentRepo, db.qaItemRepo, db.provider, opts...)
}

func (db *Database) NewRetrievalEngine(opts ...retrieval.Option) (*retrieval.Engine, error) {
	return retrieval.NewEngine(db.documentRepo, db.qaItemRepo, db.provider, opts...)
}

// NewReembedder builds a reembedder over this database's knowledge base
// using the provider's current embedder.
func (db *Database) NewReembedder(config *reembed.Config, opts ...reembed.Option) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(db.documentRepo, db.qaItemRepo, db.provider.Embedder(), config, opts...)
}
