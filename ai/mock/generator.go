package mock

import (
	"context"
	"strings"

	"github.com/calder-systems/fieldcraft/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, uses default canned-answer behavior.
	GenerateFunc func(ctx context.Context, prompt string, stream ai.StreamFunc) (string, error)

	callCount  int
	lastPrompt string
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate produces a short canned completion, streaming it word by word.
// The context is checked between fragments so tests can exercise
// mid-stream cancellation.
func (m *MockGenerator) Generate(ctx context.Context, prompt string, stream ai.StreamFunc) (string, error) {
	m.callCount++
	m.lastPrompt = prompt

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, stream)
	}

	// Default: stream a fixed completion word by word
	words := []string{"Follow", "the", "steps", "shown", "on", "the", "card."}
	var b strings.Builder
	for i, word := range words {
		if err := ctx.Err(); err != nil {
			return b.String(), err
		}

		fragment := word
		if i < len(words)-1 {
			fragment += " "
		}
		b.WriteString(fragment)

		if stream != nil {
			if err := stream(ctx, []byte(fragment)); err != nil {
				return b.String(), err
			}
		}
	}
	return b.String(), nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// LastPrompt returns the prompt passed to the most recent Generate call.
func (m *MockGenerator) LastPrompt() string {
	return m.lastPrompt
}

// Reset clears the call count and custom functions.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.lastPrompt = ""
	m.GenerateFunc = nil
}
