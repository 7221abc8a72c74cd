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


package huggingface

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
)

// ValidateCredential checks the token against the Hugging Face account
// endpoint. It never issues an inference call.
func (g *Generator) ValidateCredential(ctx context.Context, credential string) error {
	url := strings.TrimSuffix(g.probeHost, "/") + "/api/whoami-v2"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ai.NewGenerationError(ai.BackendHuggingFace, 0, "building credential probe", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ai.NewGenerationError(ai.BackendHuggingFace, 0, "credential probe unreachable", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: huggingface rejected the token", ai.ErrInvalidCredential)
	case resp.StatusCode >= 400:
		return ai.NewGenerationError(ai.BackendHuggingFace, resp.StatusCode, "credential probe failed", nil)
	}
	return nil
}
