// Copyright 2025 Calder Systems
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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "fieldcraft",
		Usage: "Offline survival-knowledge card browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the card database directory (empty uses the built-in deck)",
			},
			&cli.StringFlag{
				Name:  "ai-host",
				Usage: "OpenAI-compatible service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "generator-model",
				Usage: "Model used for composed answers",
				Value: "qwen2.5:3b",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Model used for card embeddings",
				Value: "embeddinggemma",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "categories",
				Usage:  "List card categories and their card counts",
				Action: categoriesCommand,
			},
			{
				Name:      "list",
				Usage:     "List cards, optionally filtered by category",
				ArgsUsage: "[category]",
				Action:    listCommand,
			},
			{
				Name:      "show",
				Usage:     "Show a single card in full",
				ArgsUsage: "<card-id>",
				Action:    showCommand,
			},
			{
				Name:      "search",
				Usage:     "Search cards by keyword",
				ArgsUsage: "<query...>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Usage:   "Restrict results to one category",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results (0 = all)",
						Value:   10,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a question and stream a composed answer",
				ArgsUsage: "<question...>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Usage:   "Restrict grounding cards to one category",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of top-ranked cards that ground the answer",
						Value: 3,
					},
					&cli.BoolFlag{
						Name:  "semantic",
						Usage: "Rank cards by embedding similarity instead of keywords",
					},
					&cli.BoolFlag{
						Name:  "no-ai",
						Usage: "Skip the model and show the top card directly",
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Import card JSON files into the database",
				ArgsUsage: "<dir>",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for parsing files",
						Value: 2,
					},
				},
			},
			{
				Name:   "embed",
				Usage:  "Generate embeddings for stored cards",
				Action: embedCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-embed cards that already have a vector",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of cards to process in each batch",
						Value: 16,
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
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
