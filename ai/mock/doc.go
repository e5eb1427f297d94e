// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Generator, ai.Embedder,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	answer, err := mockProvider.Generator().Generate(ctx, "how do I purify water", nil)
//
//	// Custom behavior injection
//	mockGenerator := mock.NewMockGenerator()
//	mockGenerator.GenerateFunc = func(ctx context.Context, prompt string, stream ai.StreamFunc) (string, error) {
//	    return "canned answer", nil
//	}
//
//	// Check call counts
//	count := mockGenerator.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockGenerator: Echoes a short canned answer, streaming it word by word
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockProvider: Aggregates mock generator and embedder
package mock
