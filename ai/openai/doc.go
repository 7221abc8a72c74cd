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


// Package openai implements Q&A generation and text embedding against
// OpenAI-compatible chat APIs. The generator also serves other vendors that
// speak the same wire format; the deepseek package builds on it with a
// different base URL.
//
// Generators are constructed per request with the caller's credential and
// validate that credential with a models-list probe before any completion
// call is made.
package openai
