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


package embedding

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/calder-systems/fieldcraft/ai"
	"github.com/calder-systems/fieldcraft/core"
	"github.com/calder-systems/fieldcraft/storage"
)

// Config holds configuration for the embedding operation.
type Config struct {
	// BatchSize is the number of cards to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of cards)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Force re-embeds cards that already have a vector. By default those
	// cards are skipped, so incremental runs only touch new cards.
	Force bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      16,
		ReportInterval: 16,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder orchestrates the embedding of all cards in a database.
type Reembedder struct {
	repo      storage.CardRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.CardRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay)

	return &Reembedder{
		repo:      repo,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: processor,
	}
}

// Run executes the embedding operation. Cards without a vector (or all
// cards, when Force is set) are embedded with the configured embedder.
// Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) error {
	allCards, err := r.repo.ListCards(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	// Pick the cards that need work
	var pending []*core.Card
	for _, card := range allCards {
		if r.config.Force || len(card.Vector) == 0 {
			pending = append(pending, card)
		}
	}

	if len(pending) == 0 {
		fmt.Fprintf(r.progress, "No cards need embedding (%d cards stored)\n", len(allCards))
		return nil
	}

	fmt.Fprintf(r.progress, "Embedding %d of %d cards (batch size: %d)\n",
		len(pending), len(allCards), r.config.BatchSize)

	// Initialize progress tracker
	tracker := NewProgressTracker(r.progress, len(pending), r.config.ReportInterval)
	tracker.Start()

	processed := 0

	// Process in batches
	for start := 0; start < len(pending); start += r.config.BatchSize {
		end := start + r.config.BatchSize
		if end > len(pending) {
			end = len(pending)
		}

		if err := r.processor.Process(ctx, pending[start:end]); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += end - start
		tracker.Update(processed)
	}

	// Finish progress tracking
	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Embedding complete. Processed %d cards in %v (%.1f cards/sec)\n",
		len(pending), elapsed.Round(time.Second), float64(len(pending))/elapsed.Seconds())

	return nil
}
