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


// Package ingestion turns uploaded documents into answerable knowledge.
//
// A single Ingest call runs the whole chain: text extraction, credential
// validation, Q&A generation, document embedding, and atomic persistence.
// Each request moves through a typed state machine
// (Received -> TextExtracted -> GenerationRequested -> GenerationComplete ->
// Embedding -> Persisted) and lands in StateFailed with the originating
// error from any point in the chain.
//
// Persistence is all-or-nothing: the document and every generated pair are
// written in one transaction, so a failed request leaves zero rows behind.
// The flip side is that a persistence failure throws away a completed
// generation run, and callers must not blindly retry paid vendor calls.
//
// Per-pair embeddings are filled in asynchronously after persistence, on a
// bounded worker pool. Failures there are logged and the items stay
// unembedded; retrieval embeds them lazily on first use.
package ingestion
