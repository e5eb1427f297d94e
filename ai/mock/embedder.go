package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// Dimension of the stand-in card embeddings. Small enough to keep test
// stores cheap, large enough that unrelated texts come out near-orthogonal.
const mockVectorDim = 256

// MockEmbedder stands in for the embedding model in tests.
// Behavior can be overridden via the function fields; by default every card
// or query text maps to a stable pseudo-embedding, so "boil water" always
// lands on the same vector and similarity lookups stay deterministic.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockEmbedder().
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText returns the pseudo-embedding for one text, typically a query.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	return pseudoEmbedding(text), nil
}

// EmbedTexts returns pseudo-embeddings for a batch of card texts.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = pseudoEmbedding(text)
	}
	return vectors, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// pseudoEmbedding hashes the text separately for each dimension, with the
// dimension index mixed into the hash, and maps the result onto [-1, 1).
// The vector is scaled to unit length so a dot product against a stored
// card vector behaves like cosine similarity, matching the real embedder's
// output contract. Identical texts embed identically; distinct texts land
// close to orthogonal.
func pseudoEmbedding(text string) []float32 {
	vector := make([]float32, mockVectorDim)
	var sum float64
	for i := range vector {
		h := fnv.New64a()
		h.Write([]byte(text))
		h.Write([]byte{byte(i), byte(i >> 8)})
		v := float64(int64(h.Sum64())) / float64(math.MaxInt64)
		vector[i] = float32(v)
		sum += v * v
	}

	if sum > 0 {
		norm := float32(math.Sqrt(sum))
		for i := range vector {
			vector[i] /= norm
		}
	}
	return vector
}
