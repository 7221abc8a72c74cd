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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	wizardchat "github.com/GyanFactory/WizardChatUI-sub000"
	"github.com/GyanFactory/WizardChatUI-sub000/ai"
	"github.com/GyanFactory/WizardChatUI-sub000/core"
	"github.com/GyanFactory/WizardChatUI-sub000/ingestion"
	"github.com/GyanFactory/WizardChatUI-sub000/keycipher"
	"github.com/GyanFactory/WizardChatUI-sub000/reembed"
	"github.com/GyanFactory/WizardChatUI-sub000/retrieval"
)

func main() {
	// Optional .env next to the binary or in the working directory.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "wizardchat",
		Usage: "Document Q&A knowledge base: ingest documents, ask questions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest a document: extract text, generate Q&A pairs, embed",
				Action: ingestCommand,
				Flags: append(databaseFlags(),
					&cli.Uint64Flag{
						Name:     "project",
						Aliases:  []string{"p"},
						Usage:    "Project ID that owns the document",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the document to ingest",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "context",
						Aliases:  []string{"c"},
						Usage:    "Context hint describing what the document is about",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "backend",
						Usage: "Generation backend (local, openai, deepseek, huggingface)",
						Value: "local",
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "Vendor API key (vendor backends only)",
						EnvVars: []string{"WIZARDCHAT_API_KEY"},
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Ask a question against a project's knowledge base",
				Action:    askCommand,
				ArgsUsage: "<question>",
				Flags: append(databaseFlags(),
					&cli.Uint64Flag{
						Name:     "project",
						Aliases:  []string{"p"},
						Usage:    "Project ID to query",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Confidence threshold for answering",
						Value: float64(retrieval.ConfidenceThreshold),
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print scoring details",
					},
				),
			},
			{
				Name:  "qa",
				Usage: "Manage Q&A pairs",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add a manually authored Q&A pair to a document",
						Action: qaAddCommand,
						Flags: append(databaseFlags(),
							&cli.Uint64Flag{
								Name:     "document",
								Aliases:  []string{"D"},
								Usage:    "Document ID the pair belongs to",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "question",
								Aliases:  []string{"q"},
								Required: true,
							},
							&cli.StringFlag{
								Name:     "answer",
								Aliases:  []string{"a"},
								Required: true,
							},
						),
					},
					{
						Name:   "list",
						Usage:  "List the Q&A pairs of a document",
						Action: qaListCommand,
						Flags: append(databaseFlags(),
							&cli.Uint64Flag{
								Name:     "document",
								Aliases:  []string{"D"},
								Usage:    "Document ID to list",
								Required: true,
							},
						),
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate all embeddings of a project with the current model",
				Action: reembedCommand,
				Flags: append(databaseFlags(),
					&cli.Uint64Flag{
						Name:     "project",
						Aliases:  []string{"p"},
						Usage:    "Project ID to reembed",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N embeddings",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:      "encrypt-key",
				Usage:     "Transit-encrypt a vendor API key for embedding in client config",
				Action:    encryptKeyCommand,
				ArgsUsage: "<api-key>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "transit-secret",
						Usage:    "Shared secret for the credential transit cipher",
						EnvVars:  []string{"WIZARDCHAT_TRANSIT_SECRET"},
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// databaseFlags are shared by every command that opens the knowledge base.
func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to the BadgerDB database directory",
			EnvVars:  []string{"WIZARDCHAT_DB"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "python-bin",
			Usage:   "Python interpreter for the local backend scripts",
			EnvVars: []string{"WIZARDCHAT_PYTHON_BIN"},
			Value:   "python3",
		},
		&cli.StringFlag{
			Name:    "script-dir",
			Usage:   "Directory holding the local backend scripts",
			EnvVars: []string{"WIZARDCHAT_SCRIPT_DIR"},
			Value:   "scripts",
		},
		&cli.StringFlag{
			Name:    "transit-secret",
			Usage:   "Shared secret for the credential transit cipher",
			EnvVars: []string{"WIZARDCHAT_TRANSIT_SECRET"},
		},
	}
}

func openDatabase(c *cli.Context) (*wizardchat.Database, error) {
	config := ai.NewConfig(
		ai.WithPython(c.String("python-bin"), c.String("script-dir")),
	)

	opts := []wizardchat.DatabaseOption{wizardchat.WithAIConfig(config)}
	if secret := c.String("transit-secret"); secret != "" {
		opts = append(opts, wizardchat.WithTransitSecret(secret))
	}

	db, err := wizardchat.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := ai.ParseBackendID(c.String("backend"))
	if err != nil {
		return err
	}

	filePath := c.String("file")
	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	req := ingestion.Request{
		ProjectID:   core.ID(c.Uint64("project")),
		Filename:    filepath.Base(filePath),
		FileBytes:   fileBytes,
		ContextHint: c.String("context"),
		Backend:     backend,
	}

	// Vendor keys ride transit-encrypted; the pipeline decrypts them with
	// the same shared secret.
	if apiKey := c.String("api-key"); apiKey != "" {
		cipher := db.KeyCipher()
		if cipher == nil {
			return fmt.Errorf("transit-secret is required to pass a vendor api key")
		}
		req.EncryptedCredential, err = cipher.EncryptForTransit(apiKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt api key: %w", err)
		}
	}

	result, err := pipeline.Ingest(ctx, req)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Ingested %s as document %d (%d Q&A pairs)\n",
		req.Filename, result.Document.Id, len(result.Items))
	for _, item := range result.Items {
		fmt.Printf("  [%d] Q: %s\n", item.Id, item.Question)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a question is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := db.NewRetrievalEngine(
		retrieval.WithThreshold(float32(c.Float64("threshold"))),
	)
	if err != nil {
		return fmt.Errorf("failed to create retrieval engine: %w", err)
	}
	defer engine.Release()

	projectID := core.ID(c.Uint64("project"))

	var result *retrieval.AnswerResult
	if c.Bool("verbose") {
		result, err = engine.AnswerWithMonitor(ctx, projectID, query, &printMonitor{out: os.Stderr})
	} else {
		result, err = engine.Answer(ctx, projectID, query)
	}
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	fmt.Println(result.Answer)
	if c.Bool("verbose") {
		fmt.Fprintf(os.Stderr, "\noutcome=%s document=%d item=%d similarity=%.3f\n",
			result.Outcome, result.DocumentID, result.QAItemID, result.Similarity)
	}
	return nil
}

func qaAddCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	item, err := pipeline.AddManualQA(ctx,
		core.ID(c.Uint64("document")), c.String("question"), c.String("answer"))
	if err != nil {
		return fmt.Errorf("failed to add pair: %w", err)
	}

	fmt.Printf("Added pair %d to document %d\n", item.Id, item.DocumentId)
	return nil
}

func qaListCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	items, err := db.QAItemRepository().GetQAItemsByDocument(ctx, core.ID(c.Uint64("document")))
	if err != nil {
		return fmt.Errorf("failed to list pairs: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("No Q&A pairs.")
		return nil
	}

	for _, item := range items {
		origin := "generated"
		if !item.IsGenerated {
			origin = "manual"
		}
		embedded := "embedded"
		if !item.HasVector() {
			embedded = "not embedded"
		}
		fmt.Printf("[%d] (%s, %s)\n  Q: %s\n  A: %s\n", item.Id, origin, embedded, item.Question, item.Answer)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	reembedder, err := db.NewReembedder(reembedConfig)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Project: %d\n\n", c.Uint64("project"))

	if err := reembedder.Run(ctx, core.ID(c.Uint64("project"))); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func encryptKeyCommand(c *cli.Context) error {
	apiKey := c.Args().First()
	if apiKey == "" {
		return fmt.Errorf("an api key argument is required")
	}

	cipher, err := keycipher.New(c.String("transit-secret"))
	if err != nil {
		return err
	}

	ciphertext, err := cipher.EncryptForTransit(apiKey)
	if err != nil {
		return err
	}

	fmt.Println(ciphertext)
	return nil
}

// printMonitor writes retrieval scoring details for --verbose mode.
type printMonitor struct {
	out *os.File
}

func (m *printMonitor) Start(query string) {
	fmt.Fprintf(m.out, "answering %q\n", query)
}

func (m *printMonitor) AfterQueryEmbedding(dimensions int) {
	fmt.Fprintf(m.out, "query embedded (%d dimensions)\n", dimensions)
}

func (m *printMonitor) DocumentScored(id core.ID, similarity float32) {
	fmt.Fprintf(m.out, "document %d scored %.3f\n", id, similarity)
}

func (m *printMonitor) TopDocument(doc *core.Document, similarity float32) {
	fmt.Fprintf(m.out, "top document %d %q (%.3f)\n", doc.Id, doc.Filename, similarity)
}

func (m *printMonitor) ItemEmbedded(id core.ID) {
	fmt.Fprintf(m.out, "item %d embedded\n", id)
}

func (m *printMonitor) ItemScored(id core.ID, similarity float32) {
	fmt.Fprintf(m.out, "item %d scored %.3f\n", id, similarity)
}

func (m *printMonitor) Declined(similarity float32) {
	fmt.Fprintf(m.out, "declined (best %.3f below threshold)\n", similarity)
}

func (m *printMonitor) Finish(result *retrieval.AnswerResult) {
	fmt.Fprintf(m.out, "outcome: %s\n", result.Outcome)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
