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


package retrieval

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
	"github.com/GyanFactory/WizardChatUI-sub000/core"
	"github.com/GyanFactory/WizardChatUI-sub000/storage"
)

// ConfidenceThreshold is the document-level cosine similarity below which
// the engine declines to answer.
const ConfidenceThreshold = 0.70

// DeclineMessage is the fixed reply for queries outside the knowledge base.
const DeclineMessage = "I don't have enough information to answer that. Could you rephrase, or ask about something covered in our documentation?"

// NoKnowledgeBaseMessage is the fixed reply when the project has no
// embedded documents at all.
const NoKnowledgeBaseMessage = "There is no knowledge base configured for this assistant yet."

// Outcome classifies an answer.
type Outcome int

const (
	// OutcomeAnswered means a confident match produced an answer.
	OutcomeAnswered Outcome = iota + 1
	// OutcomeNoKnowledgeBase means the project has no embedded documents.
	OutcomeNoKnowledgeBase
	// OutcomeNoConfidentMatch means every document fell below the threshold.
	OutcomeNoConfidentMatch
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeAnswered:
		return "answered"
	case OutcomeNoKnowledgeBase:
		return "no_knowledge_base"
	case OutcomeNoConfidentMatch:
		return "no_confident_match"
	default:
		return "unknown"
	}
}

// AnswerResult is the engine's reply to a single query.
type AnswerResult struct {
	// Outcome classifies the reply.
	Outcome Outcome

	// Answer is the reply text: a Q&A answer, the document text fallback,
	// or one of the fixed decline messages.
	Answer string

	// DocumentID is the best-matching document. Zero when no document
	// matched at all.
	DocumentID core.ID

	// QAItemID is the answering Q&A item. Zero for the document text
	// fallback and for declines.
	QAItemID core.ID

	// Similarity is the winning cosine similarity: the item's when a pair
	// answered, otherwise the document's.
	Similarity float32
}

// Engine answers queries against a project's ingested documents.
type Engine struct {
	docRepository storage.DocumentRepository
	qaRepository  storage.QAItemRepository
	embedder      ai.Embedder
	embeddingPool *ants.Pool
	threshold     float32
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithThreshold overrides the document confidence threshold.
func WithThreshold(threshold float32) Option {
	return func(e *Engine) error {
		e.threshold = threshold
		return nil
	}
}

// WithPoolSize sets the worker pool size for lazy item embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		if e.embeddingPool != nil {
			e.embeddingPool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.embeddingPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new retrieval engine.
func NewEngine(
	docRepository storage.DocumentRepository,
	qaRepository storage.QAItemRepository,
	provider ai.Provider,
	opts ...Option,
) (*Engine, error) {
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

	e := &Engine{
		docRepository: docRepository,
		qaRepository:  qaRepository,
		embedder:      provider.Embedder(),
		embeddingPool: pool,
		threshold:     ConfidenceThreshold,
		logger:        slog.Default().With("component", "retrieval"),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Answer resolves a chat query against the project's knowledge base.
func (e *Engine) Answer(ctx context.Context, projectID core.ID, query string) (*AnswerResult, error) {
	return e.AnswerWithMonitor(ctx, projectID, query, nil)
}

// AnswerWithMonitor resolves a query with observation callbacks at each
// stage of the process.
func (e *Engine) AnswerWithMonitor(ctx context.Context, projectID core.ID, query string, monitor Monitor) (*AnswerResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	monitor.Start(query)

	docs, err := e.docRepository.GetDocumentsByProject(ctx, projectID)
	if err != nil {
		return nil, &RetrievalError{Stage: "document scan", Err: err}
	}

	embedded := docs[:0]
	for _, doc := range docs {
		if len(doc.Vector) > 0 {
			embedded = append(embedded, doc)
		}
	}
	if len(embedded) == 0 {
		result := &AnswerResult{
			Outcome: OutcomeNoKnowledgeBase,
			Answer:  NoKnowledgeBaseMessage,
		}
		monitor.Finish(result)
		return result, nil
	}

	queryVector, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, &RetrievalError{Stage: "query embedding", Err: err}
	}
	monitor.AfterQueryEmbedding(len(queryVector))

	topDoc, topSim := e.scanDocuments(embedded, queryVector, monitor)
	if topDoc == nil {
		result := &AnswerResult{
			Outcome: OutcomeNoConfidentMatch,
			Answer:  DeclineMessage,
		}
		monitor.Declined(-1)
		monitor.Finish(result)
		return result, nil
	}
	monitor.TopDocument(topDoc, topSim)

	if topSim < e.threshold {
		e.logger.Debug("declining below threshold", "document", topDoc.Id, "similarity", topSim)
		result := &AnswerResult{
			Outcome:    OutcomeNoConfidentMatch,
			Answer:     DeclineMessage,
			DocumentID: topDoc.Id,
			Similarity: topSim,
		}
		monitor.Declined(topSim)
		monitor.Finish(result)
		return result, nil
	}

	result := e.answerFromItems(ctx, topDoc, topSim, queryVector, monitor)
	monitor.Finish(result)
	return result, nil
}

// scanDocuments finds the most similar document. Ties go to the lowest ID,
// which the ascending project index already guarantees with a strict
// greater-than comparison. Documents whose vectors no longer match the query
// dimensions are skipped with a warning; reembedding fixes them.
func (e *Engine) scanDocuments(docs []*core.Document, queryVector []float32, monitor Monitor) (*core.Document, float32) {
	var topDoc *core.Document
	topSim := float32(-2)

	for _, doc := range docs {
		sim, err := CosineSimilarity(queryVector, doc.Vector)
		if err != nil {
			e.logger.Warn("skipping document with mismatched vector", "document", doc.Id, "err", err)
			continue
		}
		monitor.DocumentScored(doc.Id, sim)
		if sim > topSim {
			topDoc = doc
			topSim = sim
		}
	}
	return topDoc, topSim
}

// answerFromItems lets the top document's Q&A items compete for the answer.
// Items without a cached vector are embedded concurrently first; an item
// whose embedding fails is excluded from this answer and logged.
func (e *Engine) answerFromItems(ctx context.Context, doc *core.Document, docSim float32, queryVector []float32, monitor Monitor) *AnswerResult {
	fallback := &AnswerResult{
		Outcome:    OutcomeAnswered,
		Answer:     doc.Contents,
		DocumentID: doc.Id,
		Similarity: docSim,
	}

	items, err := e.qaRepository.GetQAItemsByDocument(ctx, doc.Id)
	if err != nil {
		e.logger.Error("item lookup failed, answering with document text", "document", doc.Id, "err", err)
		return fallback
	}
	if len(items) == 0 {
		return fallback
	}

	e.embedMissingItems(ctx, items, monitor)

	var best *core.QAItem
	bestSim := float32(-2)
	for _, item := range items {
		if !item.HasVector() {
			continue
		}
		sim, err := CosineSimilarity(queryVector, item.Vector)
		if err != nil {
			e.logger.Warn("skipping item with mismatched vector", "item", item.Id, "err", err)
			continue
		}
		monitor.ItemScored(item.Id, sim)
		if sim > bestSim {
			best = item
			bestSim = sim
		}
	}
	if best == nil {
		return fallback
	}

	return &AnswerResult{
		Outcome:    OutcomeAnswered,
		Answer:     best.Answer,
		DocumentID: doc.Id,
		QAItemID:   best.Id,
		Similarity: bestSim,
	}
}

// embedMissingItems fans lazy embedding out on the worker pool and waits for
// the batch. Fresh vectors are written back so the next query finds them
// cached.
func (e *Engine) embedMissingItems(ctx context.Context, items []*core.QAItem, monitor Monitor) {
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, item := range items {
		if item.HasVector() {
			continue
		}
		item := item
		wg.Add(1)
		err := e.embeddingPool.Submit(func() {
			defer wg.Done()

			vector, err := e.embedder.EmbedText(ctx, item.EmbeddingText())
			if err != nil {
				e.logger.Warn("lazy item embedding failed", "item", item.Id, "err", err)
				return
			}
			if err := e.qaRepository.UpdateQAItemEmbedding(ctx, item.Id, vector); err != nil {
				e.logger.Warn("lazy item embedding store failed", "item", item.Id, "err", err)
			}

			mu.Lock()
			item.Vector = vector
			mu.Unlock()
			monitor.ItemEmbedded(item.Id)
		})
		if err != nil {
			wg.Done()
			e.logger.Warn("lazy item embedding submit failed", "item", item.Id, "err", err)
		}
	}
	wg.Wait()
}

// Release releases resources including the worker pool.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	if e.embeddingPool != nil {
		e.embeddingPool.Release()
	}
}
