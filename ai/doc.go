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


// Package ai provides abstractions for the AI services used by the engine.
//
// This package defines interfaces for Q&A generation, text embedding, and
// document text extraction. It follows the dependency inversion principle,
// allowing the ingestion pipeline and retrieval engine to depend on
// abstractions rather than concrete backends.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Generator: derives question/answer pairs from document text
//   - CredentialValidator: probes a vendor credential before generation
//   - Embedder: generates vector embeddings from text
//   - TextExtractor: extracts plain text from an uploaded document
//
// # Backends
//
// Q&A generation is polymorphic over four backends, selected by BackendID:
//
//   - ai/local: out-of-process generation via a Python subprocess
//   - ai/openai: OpenAI chat completions (also hosts the vendor Embedder)
//   - ai/huggingface: Hugging Face hosted inference
//   - ai/deepseek: DeepSeek (OpenAI-compatible wire format)
//
// Vendor backends implement CredentialValidator in addition to Generator.
// The pipeline probes the credential with a cheap endpoint (models list or
// account lookup) before the costly generation call is issued; an unusable
// credential never reaches the completion endpoint.
//
// The ai/mock subpackage provides test doubles for unit testing without
// external services.
//
// # Constructor Return Type Pattern
//
// Public backend constructors return INTERFACE types to enforce abstraction
// and prevent accidental coupling to vendor-specific implementation details.
//
//	gen, err := openai.NewGenerator(config, apiKey) // returns ai.Generator
//
// Test utility constructors (mock.NewMockGenerator, mock.NewMockEmbedder)
// return CONCRETE types to enable test assertions and behavior injection via
// the mock's public fields (CallCount, GenerateFunc, Reset, etc.).
package ai
