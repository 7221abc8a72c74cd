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


// Package retrieval answers chat queries against a project's knowledge base.
//
// The engine embeds the query, picks the single most similar document by
// cosine similarity (ties go to the lowest document ID), and applies a
// document-level confidence threshold. Below the threshold the engine
// declines with a fixed message rather than guessing. Above it, the
// document's Q&A items compete for the answer; items without a cached
// vector are embedded lazily and concurrently on first use, and the fresh
// vectors are written back so the cost is paid once. When no item is usable
// the document text itself is the answer.
package retrieval
