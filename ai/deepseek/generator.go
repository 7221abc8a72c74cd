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


// Package deepseek implements Q&A generation against the DeepSeek API.
// DeepSeek speaks the OpenAI wire format, so this is a thin binding of the
// openai generator to the DeepSeek host and chat model.
package deepseek

import (
	"github.com/GyanFactory/WizardChatUI-sub000/ai"
	"github.com/GyanFactory/WizardChatUI-sub000/ai/openai"
)

// NewGenerator creates the DeepSeek Q&A generator with a per-request
// credential. The returned generator also implements ai.CredentialValidator,
// probing the DeepSeek models endpoint.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config, credential string) (ai.Generator, error) {
	return openai.NewWireGenerator(ai.BackendDeepSeek, config.DeepSeekHost, config.DeepSeekModel, credential, config)
}
