package embedding

import (
	"strings"

	"github.com/calder-systems/fieldcraft/core"
)

// EmbeddingText renders the text a card is embedded from: title, brief, and
// tags. Step bodies are deliberately excluded so the vector captures what the
// card is about rather than how its instructions are phrased.
func EmbeddingText(card *core.Card) string {
	var parts []string

	parts = append(parts, card.Title)
	if card.Brief != "" {
		parts = append(parts, card.Brief)
	}
	if len(card.Tags) > 0 {
		parts = append(parts, strings.Join(card.Tags, " "))
	}

	return strings.Join(parts, "\n")
}
