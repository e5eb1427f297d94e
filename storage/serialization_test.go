package storage

import (
	"testing"

	"github.com/calder-systems/fieldcraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardSerialization(t *testing.T) {
	card := &core.Card{
		ID:         "water-boil-purification",
		Title:      "Purify Water by Boiling",
		Icon:       "droplet",
		Category:   core.CategoryWater,
		Brief:      "Boiling kills pathogens.",
		Tags:       []string{"water", "boil", "purify"},
		Difficulty: core.DifficultyEasy,
		Steps:      []string{"Bring to a rolling boil.", "Hold for one minute."},
		Warnings:   []string{"Boiling does not remove chemical contamination"},
		Source:     "WHO guidance",
		Vector:     []float32{0.25, -0.5, 1.0},
		Seq:        42,
	}

	data := MarshalCard(card)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCard(data)
	require.NoError(t, err)
	assert.Equal(t, card, decoded)
}

func TestCardSerialization_Minimal(t *testing.T) {
	// Nil slices come back as empty ones; everything else must survive.
	card := &core.Card{
		ID:       "x",
		Title:    "X",
		Category: core.CategoryFire,
	}

	decoded, err := UnmarshalCard(MarshalCard(card))
	require.NoError(t, err)
	assert.Equal(t, card.ID, decoded.ID)
	assert.Equal(t, card.Title, decoded.Title)
	assert.Equal(t, card.Category, decoded.Category)
	assert.Empty(t, decoded.Tags)
	assert.Empty(t, decoded.Vector)
}

func TestCardSerialization_Truncated(t *testing.T) {
	card := &core.Card{ID: "water-boil", Title: "Purify Water", Category: core.CategoryWater}
	data := MarshalCard(card)

	_, err := UnmarshalCard(data[:len(data)/2])
	assert.Error(t, err)
}

func TestIDSerialization(t *testing.T) {
	id := core.IDFromContent("water-boil")

	decoded, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}
