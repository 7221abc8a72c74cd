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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
	"github.com/GyanFactory/WizardChatUI-sub000/core"
	"github.com/GyanFactory/WizardChatUI-sub000/keycipher"
	"github.com/GyanFactory/WizardChatUI-sub000/storage"
)

// Pipeline orchestrates document ingestion: extraction, generation,
// embedding, and atomic persistence.
type Pipeline struct {
	docRepository storage.DocumentRepository
	qaRepository  storage.QAItemRepository
	provider      ai.Provider
	cipher        *keycipher.Cipher
	embeddingPool *ants.Pool
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for asynchronous pair embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithKeyCipher sets the cipher used to open transit-encrypted vendor
// credentials. Required for any vendor backend.
func WithKeyCipher(cipher *keycipher.Cipher) Option {
	return func(p *Pipeline) error {
		p.cipher = cipher
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	docRepository storage.DocumentRepository,
	qaRepository storage.QAItemRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if docRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if qaRepository == nil {
		return nil, ErrQAItemRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		docRepository: docRepository,
		qaRepository:  qaRepository,
		provider:      provider,
		embeddingPool: pool,
		logger:        slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Request describes a single document upload.
type Request struct {
	// ProjectID owns the resulting document and its pairs.
	ProjectID core.ID

	// Filename is the upload's original name, kept for display.
	Filename string

	// FileBytes is the raw uploaded file.
	FileBytes []byte

	// ContextHint tells the generation backend what the document is about.
	// Mandatory.
	ContextHint string

	// Backend selects the generation backend.
	Backend ai.BackendID

	// EncryptedCredential is the transit-encrypted vendor API key. Ignored
	// by the local backend. The decrypted key lives only for the duration of
	// the request and is never persisted.
	EncryptedCredential string
}

// Result reports the outcome of an ingestion request.
type Result struct {
	// RequestID correlates log lines of one request.
	RequestID string

	// State is the terminal state: StatePersisted or StateFailed.
	State State

	// Document is the persisted document. Nil on failure.
	Document *core.Document

	// Items are the persisted Q&A items. Nil on failure.
	Items []*core.QAItem
}

// Ingest runs the full chain for one upload. On any failure the returned
// result carries StateFailed and no rows have been written.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (*Result, error) {
	result := &Result{
		RequestID: uuid.NewString(),
		State:     StateReceived,
	}
	logger := p.logger.With("request_id", result.RequestID, "project", req.ProjectID, "backend", req.Backend)
	logger.Info("ingestion started", "filename", req.Filename, "bytes", len(req.FileBytes))

	doc, items, err := p.run(ctx, req, result, logger)
	if err != nil {
		result.State = StateFailed
		logger.Error("ingestion failed", "state", result.State, "err", err)
		return result, err
	}

	result.State = StatePersisted
	result.Document = doc
	result.Items = items
	logger.Info("ingestion complete", "document", doc.Id, "pairs", len(items))

	p.submitPairEmbedding(items, logger)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, req Request, result *Result, logger *slog.Logger) (*core.Document, []*core.QAItem, error) {
	// The hint gate comes first: no collaborator is touched without one.
	if strings.TrimSpace(req.ContextHint) == "" {
		return nil, nil, ai.ErrMissingContext
	}
	if req.ProjectID == 0 {
		return nil, nil, core.ErrMissingProject
	}
	if len(req.FileBytes) == 0 {
		return nil, nil, ErrEmptyFile
	}

	credential, err := p.openCredential(req)
	if err != nil {
		return nil, nil, err
	}

	text, err := p.provider.Extractor().ExtractText(ctx, req.FileBytes)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, ErrNoExtractableText
	}
	p.transition(result, StateTextExtracted, logger)

	if err := p.checkDuplicate(ctx, req.ProjectID, text); err != nil {
		return nil, nil, err
	}

	generator, err := p.provider.Generator(req.Backend, credential)
	if err != nil {
		return nil, nil, err
	}
	// Vendor generators carry a probe; the key is checked before a single
	// generation token is spent.
	if validator, ok := generator.(ai.CredentialValidator); ok {
		if err := validator.ValidateCredential(ctx, credential); err != nil {
			return nil, nil, err
		}
	}
	p.transition(result, StateGenerationRequested, logger)

	pairs, err := generator.Generate(ctx, ai.GenerationRequest{
		DocumentText: text,
		ContextHint:  req.ContextHint,
		Credential:   credential,
	})
	if err != nil {
		return nil, nil, err
	}
	p.transition(result, StateGenerationComplete, logger)

	p.transition(result, StateEmbedding, logger)
	vector, err := p.provider.Embedder().EmbedText(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	doc := &core.Document{
		ProjectId: req.ProjectID,
		Filename:  req.Filename,
		Contents:  text,
		Vector:    vector,
		Status:    core.StatusPending,
	}
	if err := doc.TransitionStatus(core.StatusCompleted); err != nil {
		return nil, nil, err
	}

	items := make([]*core.QAItem, len(pairs))
	for i, pair := range pairs {
		items[i] = &core.QAItem{
			Question:    pair.Question,
			Answer:      pair.Answer,
			IsGenerated: true,
		}
	}

	if err := p.docRepository.CreateDocumentWithQAItems(ctx, doc, items); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return doc, items, nil
}

// checkDuplicate rejects a repeat upload of text the project already holds.
// Content identity uses IDFromContent, so renamed files with identical text
// still collide. Runs before generation, which keeps vendor spend at zero
// for duplicates.
func (p *Pipeline) checkDuplicate(ctx context.Context, projectID core.ID, text string) error {
	contentID := core.IDFromContent(text)

	existing, err := p.docRepository.GetDocumentsByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, doc := range existing {
		if core.IDFromContent(doc.Contents) == contentID {
			return fmt.Errorf("%w: document %d", ErrDuplicateDocument, doc.Id)
		}
	}
	return nil
}

// openCredential decrypts the transit-encrypted vendor key. The local
// backend needs none and any supplied ciphertext is ignored.
func (p *Pipeline) openCredential(req Request) (string, error) {
	if !req.Backend.RequiresCredential() {
		return "", nil
	}
	if p.cipher == nil {
		return "", ErrCipherRequired
	}
	return p.cipher.Decrypt(req.EncryptedCredential)
}

func (p *Pipeline) transition(result *Result, next State, logger *slog.Logger) {
	result.State = next
	logger.Debug("state transition", "state", next)
}

// submitPairEmbedding fans the freshly persisted items out on the worker
// pool. Best effort: a failed item is logged and left unembedded, and
// retrieval will embed it lazily.
func (p *Pipeline) submitPairEmbedding(items []*core.QAItem, logger *slog.Logger) {
	for _, item := range items {
		item := item
		err := p.embeddingPool.Submit(func() {
			ctx := context.Background()
			vector, err := p.provider.Embedder().EmbedText(ctx, item.EmbeddingText())
			if err != nil {
				logger.Error("pair embedding failed", "item", item.Id, "err", err)
				return
			}
			if err := p.qaRepository.UpdateQAItemEmbedding(ctx, item.Id, vector); err != nil {
				logger.Error("pair embedding store failed", "item", item.Id, "err", err)
			}
		})
		if err != nil {
			logger.Error("pair embedding submit failed", "item", item.Id, "err", err)
		}
	}
}

// AddManualQA authors a Q&A pair directly on an existing document, bypassing
// generation. The pair is embedded synchronously so it is searchable at once.
func (p *Pipeline) AddManualQA(ctx context.Context, documentID core.ID, question, answer string) (*core.QAItem, error) {
	if strings.TrimSpace(question) == "" {
		return nil, core.ErrEmptyQuestion
	}
	if strings.TrimSpace(answer) == "" {
		return nil, core.ErrEmptyAnswer
	}

	item := &core.QAItem{
		DocumentId:  documentID,
		Question:    question,
		Answer:      answer,
		IsGenerated: false,
	}

	vector, err := p.provider.Embedder().EmbedText(ctx, item.EmbeddingText())
	if err != nil {
		return nil, err
	}
	item.Vector = vector

	if err := p.qaRepository.CreateQAItems(ctx, item); err != nil {
		return nil, err
	}

	p.logger.Info("manual qa added", "document", documentID, "item", item.Id)
	return item, nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
