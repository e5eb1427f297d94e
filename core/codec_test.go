package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCardJSON = `{
  "id": "water-boil-purification",
  "title": "Purify Water by Boiling",
  "icon": "💧",
  "category": "water",
  "brief": "Kill waterborne pathogens with a rolling boil.",
  "tags": ["water", "boil", "purification"],
  "difficulty": "easy",
  "steps": [
    "Filter visible debris through cloth.",
    "Bring the water to a rolling boil for at least 1 minute."
  ],
  "warnings": ["Boiling does not remove chemical contamination."],
  "source": "U.S. Army Survival Manual FM 21-76"
}`

func TestParseCard(t *testing.T) {
	t.Run("valid card file", func(t *testing.T) {
		card, err := ParseCard([]byte(sampleCardJSON))
		require.NoError(t, err)
		assert.Equal(t, "water-boil-purification", card.ID)
		assert.Equal(t, CategoryWater, card.Category)
		assert.Equal(t, DifficultyEasy, card.Difficulty)
		assert.Len(t, card.Steps, 2)
		assert.Equal(t, []string{"Boiling does not remove chemical contamination."}, card.Warnings)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParseCard([]byte(`{"id": "x",`))
		assert.ErrorIs(t, err, ErrInvalidCard)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := ParseCard([]byte(`{"id":"x","title":"X","category":"psychology","difficulty":"easy","steps":["do"],"source":"Y"}`))
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := ParseCard([]byte(`{"id":"x","title":"X","category":"fire","difficulty":"easy","steps":["do"]}`))
		assert.ErrorIs(t, err, ErrEmptySource)
	})
}

func TestParseCards(t *testing.T) {
	t.Run("array of cards", func(t *testing.T) {
		cards, err := ParseCards([]byte("[" + sampleCardJSON + "]"))
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, "Purify Water by Boiling", cards[0].Title)
	})

	t.Run("one invalid card fails the batch", func(t *testing.T) {
		_, err := ParseCards([]byte("[" + sampleCardJSON + `,{"id":"bad","category":"fire"}]`))
		assert.ErrorIs(t, err, ErrInvalidCard)
		assert.ErrorContains(t, err, `card "bad"`)
	})
}

func TestEncodeCardRoundTrip(t *testing.T) {
	card, err := ParseCard([]byte(sampleCardJSON))
	require.NoError(t, err)

	data, err := EncodeCard(card)
	require.NoError(t, err)

	again, err := ParseCard(data)
	require.NoError(t, err)
	assert.Equal(t, card, again)
}
