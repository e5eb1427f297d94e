package storage

import (
	"context"

	"github.com/calder-systems/fieldcraft/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds cards whose embedding is similar to the given vector.
	// Returns cards with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CardRepository provides operations for managing survival cards.
type CardRepository interface {
	Repository

	// AddCards adds one or more cards to storage.
	// Assigns each card a sequence number recording insertion order.
	// Returns ErrDuplicateKey if a card with the same ID already exists.
	AddCards(ctx context.Context, cards ...*core.Card) ([]*core.Card, error)

	// UpdateCards updates existing cards in place. The original sequence
	// number is preserved so catalog order never changes on update.
	// Returns ErrNotFound if any card doesn't exist.
	UpdateCards(ctx context.Context, cards ...*core.Card) ([]*core.Card, error)

	// DeleteCards removes cards by their IDs, along with associated indices.
	// Returns ErrNotFound if any card doesn't exist.
	DeleteCards(ctx context.Context, ids ...string) error

	// GetCard retrieves a single card by ID.
	// Returns ErrNotFound if the card doesn't exist.
	GetCard(ctx context.Context, id string) (*core.Card, error)

	// GetCards retrieves multiple cards by their IDs.
	// Returns only the cards that exist (no error for missing cards).
	GetCards(ctx context.Context, ids ...string) ([]*core.Card, error)

	// ListCards retrieves all cards in insertion order.
	ListCards(ctx context.Context) ([]*core.Card, error)

	// ListByCategory retrieves all cards in a category, in insertion order.
	ListByCategory(ctx context.Context, category core.Category) ([]*core.Card, error)

	// HasChecksum reports whether a card with the given content checksum is
	// already stored. Used by the import pipeline to skip duplicates.
	HasChecksum(ctx context.Context, checksum core.ID) (bool, error)

	// Count returns the number of stored cards.
	Count(ctx context.Context) (int, error)
}
