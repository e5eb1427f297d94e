package search

import (
	"strings"

	"github.com/calder-systems/fieldcraft/core"
)

// Index holds the per-card token sets derived from a catalog. Built once;
// read-only afterwards. Card order in the index is the catalog load order.
type Index struct {
	docs []indexedCard
}

type indexedCard struct {
	card core.Card

	// Token slices keep first-seen order for fuzzy scans; the sets back
	// the exact-match lookups.
	titleTokens []string
	titleSet    map[string]bool
	tagTokens   []string
	tagSet      map[string]bool
	bodySet     map[string]bool
}

// BuildIndex derives the searchable token sets for each card:
// title words, tags (each tag is already an atomic keyword, but multi-word
// tags are also split), and body words from the brief and steps.
// Deterministic given the same cards.
func BuildIndex(cards []core.Card) *Index {
	docs := make([]indexedCard, 0, len(cards))
	for _, card := range cards {
		doc := indexedCard{
			card:     card,
			titleSet: make(map[string]bool),
			tagSet:   make(map[string]bool),
			bodySet:  make(map[string]bool),
		}

		for _, tok := range tokenize(card.Title) {
			if !doc.titleSet[tok] {
				doc.titleSet[tok] = true
				doc.titleTokens = append(doc.titleTokens, tok)
			}
		}

		for _, tag := range card.Tags {
			for _, tok := range tokenize(strings.ReplaceAll(tag, "-", " ")) {
				if !doc.tagSet[tok] {
					doc.tagSet[tok] = true
					doc.tagTokens = append(doc.tagTokens, tok)
				}
			}
		}

		for _, tok := range tokenize(card.Brief) {
			doc.bodySet[tok] = true
		}
		for _, step := range card.Steps {
			for _, tok := range tokenize(step) {
				doc.bodySet[tok] = true
			}
		}

		docs = append(docs, doc)
	}
	return &Index{docs: docs}
}

// Len returns the number of indexed cards.
func (ix *Index) Len() int {
	return len(ix.docs)
}
