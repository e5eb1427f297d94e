package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/calder-systems/fieldcraft/ai"
	"github.com/calder-systems/fieldcraft/core"
	"github.com/calder-systems/fieldcraft/storage"
)

// BatchProcessor handles embedding generation for batches of cards.
type BatchProcessor struct {
	repo           storage.CardRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.CardRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of cards and updates them in the database.
// Vectors are normalized after embedding to ensure compatibility with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, cards []*core.Card) error {
	if len(cards) == 0 {
		return nil
	}

	// Extract embedding text
	texts := make([]string, len(cards))
	for i, card := range cards {
		texts[i] = EmbeddingText(card)
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(cards) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(cards), len(embeddings))
	}

	// Normalize vectors and assign to cards
	for i := range cards {
		cards[i].Vector = NormalizeVector(embeddings[i])
	}

	// Update cards in database
	_, err = bp.repo.UpdateCards(ctx, cards...)
	if err != nil {
		return fmt.Errorf("failed to update cards: %w", err)
	}

	return nil
}
