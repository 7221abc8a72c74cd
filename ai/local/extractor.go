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


package local

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
)

const extractorScript = "pdf_processor.py"

// Extractor implements ai.TextExtractor by piping the uploaded document's
// raw bytes to the extraction script, which prints plain text.
type Extractor struct {
	runner *runner
	logger *slog.Logger
}

func newExtractor(config *ai.Config) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := slog.Default().With("component", "local-extractor")
	return &Extractor{
		runner: newRunner(config.PythonBin, config.ScriptDir, config.CallTimeout, logger),
		logger: logger,
	}, nil
}

// NewExtractor creates the local document text extractor.
//
// Returns ai.TextExtractor interface to enforce abstraction.
func NewExtractor(config *ai.Config) (ai.TextExtractor, error) {
	return newExtractor(config)
}

// ExtractText returns the document's text content.
func (x *Extractor) ExtractText(ctx context.Context, fileBytes []byte) (string, error) {
	if len(fileBytes) == 0 {
		return "", &ai.ExtractionError{Detail: "empty document"}
	}

	x.logger.Debug("extracting text", "bytes", len(fileBytes))

	out, err := x.runner.run(ctx, extractorScript, bytes.NewReader(fileBytes))
	if err != nil {
		return "", &ai.ExtractionError{Detail: "extraction script failed", Err: err}
	}
	return string(out), nil
}
