package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/calder-systems/fieldcraft/storage"
	"github.com/calder-systems/fieldcraft/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boilCardJSON = `{
  "id": "water-boil",
  "title": "Purify Water by Boiling",
  "category": "water",
  "brief": "Boiling kills pathogens.",
  "tags": ["water", "boil"],
  "difficulty": "easy",
  "steps": ["Bring to a rolling boil.", "Hold for one minute."],
  "warnings": ["Boiling does not remove chemical contamination"],
  "source": "WHO guidance"
}`

const bowDrillCardJSON = `{
  "id": "fire-bow",
  "title": "Start a Fire with a Bow Drill",
  "category": "fire",
  "difficulty": "hard",
  "steps": ["Carve the spindle.", "Bow steadily until the dust smokes."],
  "source": "Field manual"
}`

const cardArrayJSON = `[
  {
    "id": "shelter-hut",
    "title": "Build a Debris Hut",
    "category": "shelter",
    "difficulty": "medium",
    "steps": ["Pile leaves over the frame."],
    "source": "Field manual"
  },
  {
    "id": "rescue-mirror",
    "title": "Signal with a Mirror",
    "category": "rescue",
    "difficulty": "easy",
    "steps": ["Aim the flash at the aircraft."],
    "source": "Field manual"
  }
]`

func setupTest(t *testing.T) (storage.CardRepository, *Pipeline) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	pipeline, err := NewPipeline(repo, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return repo, pipeline
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewPipeline(t *testing.T) {
	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(nil)
		assert.Equal(t, ErrRepositoryRequired, err)
	})
}

func TestImportDir(t *testing.T) {
	repo, pipeline := setupTest(t)
	ctx := context.Background()

	dir := t.TempDir()
	writeFile(t, dir, "boil.json", boilCardJSON)
	writeFile(t, dir, "bow.json", bowDrillCardJSON)
	writeFile(t, dir, "broken.json", `{"id": "x"`)
	writeFile(t, dir, "notes.txt", "not a card")

	report, err := pipeline.ImportDir(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 0, report.Skipped)
	require.Equal(t, 1, report.Failed())
	assert.Contains(t, report.Failures[0].Path, "broken.json")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestImportDir_Idempotent(t *testing.T) {
	_, pipeline := setupTest(t)
	ctx := context.Background()

	dir := t.TempDir()
	writeFile(t, dir, "boil.json", boilCardJSON)

	first, err := pipeline.ImportDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Imported)

	// Same content again: checksum dedupe skips it
	second, err := pipeline.ImportDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 1, second.Skipped)
}

func TestImportDir_Empty(t *testing.T) {
	_, pipeline := setupTest(t)

	_, err := pipeline.ImportDir(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestImportFiles_ArrayFile(t *testing.T) {
	repo, pipeline := setupTest(t)
	ctx := context.Background()

	path := writeFile(t, t.TempDir(), "cards.json", cardArrayJSON)

	report, err := pipeline.ImportFiles(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)

	cards, err := repo.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "shelter-hut", cards[0].ID)
	assert.Equal(t, "rescue-mirror", cards[1].ID)
}

func TestImportFiles_InvalidCard(t *testing.T) {
	_, pipeline := setupTest(t)

	// Valid JSON, invalid card: no steps
	path := writeFile(t, t.TempDir(), "empty-steps.json", `{
	  "id": "bad",
	  "title": "Bad",
	  "category": "water",
	  "difficulty": "easy",
	  "steps": [],
	  "source": "X"
	}`)

	report, err := pipeline.ImportFiles(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 1, report.Failed())
}

func TestImportFiles_PreservesOrder(t *testing.T) {
	repo, pipeline := setupTest(t)
	ctx := context.Background()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", boilCardJSON)
	b := writeFile(t, dir, "b.json", bowDrillCardJSON)

	_, err := pipeline.ImportFiles(ctx, b, a)
	require.NoError(t, err)

	cards, err := repo.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	// Argument order, not file-name order
	assert.Equal(t, "fire-bow", cards[0].ID)
	assert.Equal(t, "water-boil", cards[1].ID)
}
