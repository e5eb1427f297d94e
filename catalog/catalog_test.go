package catalog

import (
	"testing"

	"github.com/calder-systems/fieldcraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCards() []core.Card {
	return []core.Card{
		{
			ID: "water-boil", Title: "Purify Water", Category: core.CategoryWater,
			Tags: []string{"water", "boil"}, Difficulty: core.DifficultyEasy,
			Steps: []string{"Boil for 1 minute."}, Source: "X",
		},
		{
			ID: "fire-bow", Title: "Bow Drill Fire", Category: core.CategoryFire,
			Tags: []string{"friction"}, Difficulty: core.DifficultyHard,
			Steps: []string{"Bow steadily."}, Source: "X",
		},
		{
			ID: "water-still", Title: "Solar Still", Category: core.CategoryWater,
			Tags: []string{"desert"}, Difficulty: core.DifficultyMedium,
			Steps: []string{"Dig a pit."}, Source: "X",
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		c, err := New(testCards())
		require.NoError(t, err)
		require.Equal(t, 3, c.Len())

		all := c.All()
		assert.Equal(t, "water-boil", all[0].ID)
		assert.Equal(t, "fire-bow", all[1].ID)
		assert.Equal(t, "water-still", all[2].ID)
	})

	t.Run("rejects invalid card", func(t *testing.T) {
		cards := testCards()
		cards[1].Source = ""
		_, err := New(cards)
		assert.ErrorIs(t, err, core.ErrInvalidCard)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		cards := testCards()
		cards[2].ID = "water-boil"
		_, err := New(cards)
		assert.ErrorIs(t, err, core.ErrInvalidCard)
		assert.ErrorContains(t, err, "duplicate")
	})

	t.Run("empty catalog is valid", func(t *testing.T) {
		c, err := New(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.All())
	})
}

func TestAllReturnsCopy(t *testing.T) {
	c, err := New(testCards())
	require.NoError(t, err)

	all := c.All()
	all[0].Title = "mutated"

	again := c.All()
	assert.Equal(t, "Purify Water", again[0].Title)
}

func TestByCategory(t *testing.T) {
	c, err := New(testCards())
	require.NoError(t, err)

	t.Run("subset in original order", func(t *testing.T) {
		water := c.ByCategory(core.CategoryWater)
		require.Len(t, water, 2)
		assert.Equal(t, "water-boil", water[0].ID)
		assert.Equal(t, "water-still", water[1].ID)
		for _, card := range water {
			assert.Equal(t, core.CategoryWater, card.Category)
		}
	})

	t.Run("category with no cards", func(t *testing.T) {
		assert.Empty(t, c.ByCategory(core.CategoryRescue))
	})

	t.Run("invalid category yields empty, not error", func(t *testing.T) {
		assert.Empty(t, c.ByCategory(core.Category(99)))
	})
}

func TestGet(t *testing.T) {
	c, err := New(testCards())
	require.NoError(t, err)

	card, ok := c.Get("fire-bow")
	require.True(t, ok)
	assert.Equal(t, "Bow Drill Fire", card.Title)

	_, ok = c.Get("nope")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	cards := testCards()

	t.Run("strict subset, order preserved", func(t *testing.T) {
		got := Filter(cards, core.CategoryWater)
		require.Len(t, got, 2)
		assert.Equal(t, "water-boil", got[0].ID)
		assert.Equal(t, "water-still", got[1].ID)
	})

	t.Run("input untouched", func(t *testing.T) {
		_ = Filter(cards, core.CategoryFire)
		assert.Len(t, cards, 3)
		assert.Equal(t, "water-boil", cards[0].ID)
	})

	t.Run("invalid category", func(t *testing.T) {
		assert.Empty(t, Filter(cards, 0))
	})
}

func TestFilterResults(t *testing.T) {
	cards := testCards()
	results := []core.MatchResult{
		{Card: cards[1], Score: 5},
		{Card: cards[0], Score: 3},
		{Card: cards[2], Score: 1},
	}

	got := FilterResults(results, core.CategoryWater)
	require.Len(t, got, 2)
	assert.Equal(t, "water-boil", got[0].Card.ID)
	assert.Equal(t, "water-still", got[1].Card.ID)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestEmbedded(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 0)

	t.Run("every card valid with source and category", func(t *testing.T) {
		for _, card := range c.All() {
			require.NoError(t, core.ValidateCard(&card))
			assert.True(t, card.Category.Valid())
			assert.NotEmpty(t, card.Source)
		}
	})

	t.Run("every category represented", func(t *testing.T) {
		for _, cat := range core.Categories() {
			assert.NotEmpty(t, c.ByCategory(cat), "no seed cards for %s", cat)
		}
	})

	t.Run("deterministic order", func(t *testing.T) {
		again, err := Embedded()
		require.NoError(t, err)
		assert.Equal(t, c.All(), again.All())
	})
}
