package ai

import "context"

// StreamFunc receives text fragments as the model produces them.
// Returning an error stops the stream; the context is the stream's context
// and is checked between fragments for cooperative cancellation.
type StreamFunc func(ctx context.Context, chunk []byte) error

// Generator produces text completions from a prompt.
// Implementations must be thread-safe for concurrent use, though callers
// typically serialize generations themselves.
type Generator interface {
	// Generate produces a completion for the prompt. When stream is
	// non-nil it is invoked for each fragment as it arrives; the full
	// completion is returned either way. Generation stops when ctx is
	// cancelled, releasing any held resources; the error then wraps
	// ctx.Err().
	Generate(ctx context.Context, prompt string, stream StreamFunc) (string, error)
}

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch.
	// The returned slice matches the order of the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Generator returns the text generation service.
	Generator() Generator

	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
