// Package catalog holds the immutable in-memory card store.
//
// A Catalog is fixed at construction time: no create, update or delete
// operations exist at runtime, so readers need no locking discipline.
package catalog

import (
	"fmt"

	"github.com/calder-systems/fieldcraft/core"
)

// Catalog is an ordered, immutable collection of cards.
// Order is the load order and is the tie-break order for search ranking.
type Catalog struct {
	cards []core.Card
	byID  map[string]int
}

// New builds a catalog from the given cards, preserving their order.
// Every card is validated; duplicate IDs are rejected.
func New(cards []core.Card) (*Catalog, error) {
	byID := make(map[string]int, len(cards))
	owned := make([]core.Card, len(cards))
	for i := range cards {
		if err := core.ValidateCard(&cards[i]); err != nil {
			return nil, err
		}
		if _, dup := byID[cards[i].ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", core.ErrInvalidCard, cards[i].ID)
		}
		byID[cards[i].ID] = i
		owned[i] = cards[i]
	}
	return &Catalog{cards: owned, byID: byID}, nil
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// All returns every card in load order. The returned slice is a copy; the
// catalog itself cannot be mutated through it.
func (c *Catalog) All() []core.Card {
	out := make([]core.Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// ByCategory returns the cards of the given category in load order.
// An invalid category yields an empty slice rather than an error: callers
// that need to reject bad input should go through core.ParseCategory first.
func (c *Catalog) ByCategory(cat core.Category) []core.Card {
	return Filter(c.cards, cat)
}

// Get looks up a card by its slug.
func (c *Catalog) Get(id string) (core.Card, bool) {
	i, ok := c.byID[id]
	if !ok {
		return core.Card{}, false
	}
	return c.cards[i], true
}

// Filter returns the order-preserving subset of cards with the given
// category. Pure: the input slice is never modified. An invalid category
// selects nothing.
func Filter(cards []core.Card, cat core.Category) []core.Card {
	if !cat.Valid() {
		return []core.Card{}
	}
	out := make([]core.Card, 0, len(cards))
	for _, card := range cards {
		if card.Category == cat {
			out = append(out, card)
		}
	}
	return out
}

// FilterResults returns the order-preserving subset of match results whose
// cards have the given category. Used to post-filter ranked output; the
// ranking order among retained cards is untouched.
func FilterResults(results []core.MatchResult, cat core.Category) []core.MatchResult {
	if !cat.Valid() {
		return []core.MatchResult{}
	}
	out := make([]core.MatchResult, 0, len(results))
	for _, r := range results {
		if r.Card.Category == cat {
			out = append(out, r)
		}
	}
	return out
}
