package fieldcraft

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/calder-systems/fieldcraft/ai/mock"
	"github.com/calder-systems/fieldcraft/core"
	"github.com/calder-systems/fieldcraft/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()

	lib, err := NewLibrary("", WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

func TestLibrary_CatalogFallsBackToSeedDeck(t *testing.T) {
	lib := newTestLibrary(t)

	cat, err := lib.Catalog(context.Background())
	require.NoError(t, err)
	assert.Positive(t, cat.Len())

	// The seed deck covers every category
	for _, category := range core.Categories() {
		assert.NotEmpty(t, cat.ByCategory(category), "category %s", category)
	}
}

func TestLibrary_CatalogPrefersStoredCards(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	dir := t.TempDir()
	cardJSON := `{
	  "id": "custom-card",
	  "title": "Custom Card",
	  "category": "water",
	  "difficulty": "easy",
	  "steps": ["Do it."],
	  "source": "Test"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.json"), []byte(cardJSON), 0644))

	pipeline, err := lib.NewImportPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.ImportDir(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, 1, report.Imported)

	cat, err := lib.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())

	card, ok := cat.Get("custom-card")
	require.True(t, ok)
	assert.Equal(t, "Custom Card", card.Title)
}

func TestLibrary_NewSearcher(t *testing.T) {
	lib := newTestLibrary(t)

	searcher, err := lib.NewSearcher(context.Background())
	require.NoError(t, err)

	results := searcher.Search("water", 0)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestLibrary_NewComposer(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	composer, err := lib.NewComposer()
	require.NoError(t, err)

	searcher, err := lib.NewSearcher(ctx)
	require.NoError(t, err)

	results := searcher.Search("boil water", 0)
	require.NotEmpty(t, results)

	ans, err := composer.Compose(ctx, "how do I make water safe", results, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, ans.Text)
	assert.NotEmpty(t, ans.Sources)
}

func TestLibrary_SemanticSearchEmptyStore(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	provider := mock.NewMockProviderWithServices(mock.NewMockGenerator(), embedder)
	lib, err := NewLibrary("", WithAIProvider(provider))
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })

	results, err := lib.SemanticSearch(context.Background(), "safe drinking water", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	// Nothing to match against, so the embedding service is never consulted
	assert.Equal(t, 0, embedder.CallCount())
}

func TestLibrary_SemanticSearch(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	boil := &core.Card{
		ID:         "water-boil",
		Title:      "Boil Water",
		Category:   core.CategoryWater,
		Brief:      "Heat kills waterborne pathogens.",
		Tags:       []string{"water", "boil"},
		Difficulty: core.DifficultyEasy,
		Steps:      []string{"Bring to a rolling boil."},
		Source:     "Test",
	}
	bow := &core.Card{
		ID:         "fire-bow",
		Title:      "Bow Drill Fire",
		Category:   core.CategoryFire,
		Brief:      "Friction fire from dry wood.",
		Tags:       []string{"fire", "friction"},
		Difficulty: core.DifficultyHard,
		Steps:      []string{"Carve the spindle."},
		Source:     "Test",
	}
	_, err := lib.CardRepository().AddCards(ctx, boil, bow)
	require.NoError(t, err)

	require.NoError(t, lib.NewReembedder(nil, io.Discard).Run(ctx))

	// A question embedding identical to the card's embedding text must rank
	// that card first with a similarity of 1
	results, err := lib.SemanticSearch(ctx, embedding.EmbeddingText(boil), 0)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "water-boil", results[0].Card.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-3)

	limited, err := lib.SemanticSearch(ctx, embedding.EmbeddingText(boil), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestLibrary_NewReembedder(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	_, err := lib.CardRepository().AddCards(ctx, &core.Card{
		ID:         "a",
		Title:      "A",
		Category:   core.CategoryWater,
		Difficulty: core.DifficultyEasy,
		Steps:      []string{"Do it."},
		Source:     "Test",
	})
	require.NoError(t, err)

	require.NoError(t, lib.NewReembedder(nil, io.Discard).Run(ctx))

	card, err := lib.CardRepository().GetCard(ctx, "a")
	require.NoError(t, err)
	assert.NotEmpty(t, card.Vector)
}
