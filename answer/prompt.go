package answer

import (
	"fmt"
	"strings"

	"github.com/calder-systems/fieldcraft/core"
)

const composerPromptTemplate = `You are an offline survival-knowledge assistant. Answer the question using
ONLY the reference cards below. Restate and reorder the card content so it
directly answers the question; do not invent steps, quantities, or safety
advice that the cards do not contain.

Rules:
- Use only information present in the reference cards.
- Keep every safety warning from the cards intact and verbatim.
- Answer in short numbered steps where the cards give steps.
- If the cards do not answer the question, say so plainly.
- Do not mention that you were given reference cards.

Question: %s

Reference cards:
%s`

// buildPrompt renders the constrained generation prompt for a question and
// the top-ranked cards that will ground the answer.
func buildPrompt(question string, cards []core.Card) string {
	var b strings.Builder
	for i, card := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatCard(card))
	}
	return fmt.Sprintf(composerPromptTemplate, question, b.String())
}

// formatCard renders a single card as plain text for the prompt.
func formatCard(card core.Card) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s (%s)\n", card.Title, card.Category)
	if card.Brief != "" {
		b.WriteString(card.Brief)
		b.WriteString("\n")
	}
	for i, step := range card.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	for _, warning := range card.Warnings {
		fmt.Fprintf(&b, "WARNING: %s\n", warning)
	}
	if card.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", card.Source)
	}

	return b.String()
}
