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
	"context"
	"encoding/json"
	"log/slog"

	"github.com/GyanFactory/WizardChatUI-sub000/ai"
)

const generatorScript = "qa_generator.py"

// Generator implements ai.Generator by shelling out to the local model
// script. No credential is involved.
type Generator struct {
	runner *runner
	logger *slog.Logger
}

// generatedPair matches the script's output element shape.
type generatedPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := slog.Default().With("component", "local-generator")
	return &Generator{
		runner: newRunner(config.PythonBin, config.ScriptDir, config.CallTimeout, logger),
		logger: logger,
	}, nil
}

// NewGenerator creates the local Q&A generator.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Backend identifies this generator as the local backend.
func (g *Generator) Backend() ai.BackendID {
	return ai.BackendLocal
}

// Generate runs the model script over the document text. The script receives
// the text and the context hint as arguments and prints a JSON array of
// {question, answer} objects. Unlike the vendor backends there is no lossy
// recovery here: unparsable output fails the whole run, since the script's
// output format is under our control.
func (g *Generator) Generate(ctx context.Context, req ai.GenerationRequest) ([]ai.QAPair, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g.logger.Info("generating qa pairs", "text_length", len(req.DocumentText))

	out, err := g.runner.run(ctx, generatorScript, nil, req.DocumentText, req.ContextHint)
	if err != nil {
		return nil, ai.NewGenerationError(ai.BackendLocal, 0, "generator script failed", err)
	}

	var raw []generatedPair
	if err := json.Unmarshal(out, &raw); err != nil {
		g.logger.Error("unparsable generator output", "err", err)
		return nil, ai.NewGenerationError(ai.BackendLocal, 0, "unparsable generator output", err)
	}

	pairs := make([]ai.QAPair, 0, len(raw))
	for _, p := range raw {
		if p.Question == "" || p.Answer == "" {
			continue
		}
		pairs = append(pairs, ai.QAPair{Question: p.Question, Answer: p.Answer})
	}
	if len(pairs) == 0 {
		return nil, ai.ErrEmptyGeneration
	}

	g.logger.Info("generated qa pairs", "count", len(pairs))
	return pairs, nil
}
