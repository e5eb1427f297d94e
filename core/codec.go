package core

import (
	"encoding/json"
	"fmt"
)

// cardJSON mirrors the on-disk card file schema produced by the curation
// pipeline. One file holds one card object, or an array of them.
type cardJSON struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Icon       string     `json:"icon,omitempty"`
	Category   Category   `json:"category"`
	Brief      string     `json:"brief,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Steps      []string   `json:"steps"`
	Warnings   []string   `json:"warnings,omitempty"`
	Source     string     `json:"source"`
}

func (j *cardJSON) toCard() *Card {
	return &Card{
		ID:         j.ID,
		Title:      j.Title,
		Icon:       j.Icon,
		Category:   j.Category,
		Brief:      j.Brief,
		Tags:       j.Tags,
		Difficulty: j.Difficulty,
		Steps:      j.Steps,
		Warnings:   j.Warnings,
		Source:     j.Source,
	}
}

// ParseCard decodes and validates a single card JSON object.
func ParseCard(data []byte) (*Card, error) {
	var j cardJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}
	card := j.toCard()
	if err := ValidateCard(card); err != nil {
		return nil, err
	}
	return card, nil
}

// ParseCards decodes and validates a JSON array of cards.
func ParseCards(data []byte) ([]*Card, error) {
	var js []cardJSON
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}
	cards := make([]*Card, 0, len(js))
	for i := range js {
		card := js[i].toCard()
		if err := ValidateCard(card); err != nil {
			return nil, fmt.Errorf("card %q: %w", js[i].ID, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// EncodeCard serializes a card back to its JSON file form.
// Vector and Seq are storage state and are not part of the file schema.
func EncodeCard(card *Card) ([]byte, error) {
	if err := ValidateCard(card); err != nil {
		return nil, err
	}
	j := cardJSON{
		ID:         card.ID,
		Title:      card.Title,
		Icon:       card.Icon,
		Category:   card.Category,
		Brief:      card.Brief,
		Tags:       card.Tags,
		Difficulty: card.Difficulty,
		Steps:      card.Steps,
		Warnings:   card.Warnings,
		Source:     card.Source,
	}
	return json.MarshalIndent(&j, "", "  ")
}
