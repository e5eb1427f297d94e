// Copyright 2025 Calder Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package answer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/calder-systems/fieldcraft/ai"
	"github.com/calder-systems/fieldcraft/core"
)

// NoMatchText is returned when a question matches no cards. The generator is
// never consulted in that case; inventing survival advice is worse than
// admitting there is none.
const NoMatchText = "No matching cards. Try different keywords like water, fire, shelter, or first aid."

// defaultTopCards is how many top-ranked cards ground a generated answer.
const defaultTopCards = 3

// Answer is the result of composing a response to a question.
type Answer struct {
	// Text is the generated answer, or the partial text streamed before
	// cancellation.
	Text string

	// Warnings holds the safety warnings of every card that grounded the
	// answer, verbatim. They are carried outside the generated text so the
	// caller can render them even if the model dropped one.
	Warnings []string

	// Sources lists the source attributions of the grounding cards.
	Sources []string

	// Cancelled reports that generation was interrupted and Text is partial.
	Cancelled bool
}

// session tracks one in-flight generation so a newer question can displace it.
type session struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Composer turns ranked search results into a streamed natural-language
// answer. At most one generation is in flight at a time: starting a new
// Compose cancels the previous one and waits for it to unwind.
type Composer struct {
	generator ai.Generator
	topCards  int
	enabled   bool
	logger    *slog.Logger

	mu     sync.Mutex
	active *session
}

// Option is a functional option for configuring a Composer.
type Option func(*Composer)

// WithTopCards sets how many top-ranked cards are included in the prompt.
func WithTopCards(n int) Option {
	return func(c *Composer) {
		if n > 0 {
			c.topCards = n
		}
	}
}

// WithLogger sets a custom logger for the composer.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithGenerationDisabled turns off the model entirely. Compose then returns
// ErrGenerationDisabled and the caller shows raw cards instead.
func WithGenerationDisabled() Option {
	return func(c *Composer) {
		c.enabled = false
	}
}

// NewComposer creates a Composer backed by the given generator.
func NewComposer(generator ai.Generator, opts ...Option) (*Composer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	c := &Composer{
		generator: generator,
		topCards:  defaultTopCards,
		enabled:   true,
		logger:    slog.Default().With("component", "composer"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Compose generates an answer to the question grounded in the top-ranked
// results, streaming fragments to onFragment as they arrive.
//
// Empty results short-circuit to a fixed no-match answer without touching
// the generator. If a previous Compose is still streaming it is cancelled
// and fully unwound before this one starts. A cancelled generation is not
// an error: the answer comes back with Cancelled set and whatever text was
// streamed so far. Transport failures are wrapped in
// ErrGenerationUnavailable so callers can degrade to raw card display.
func (c *Composer) Compose(ctx context.Context, question string, results []core.MatchResult, onFragment ai.StreamFunc) (*Answer, error) {
	if len(results) == 0 {
		c.logger.Debug("no results to compose from", "question", question)
		return &Answer{Text: NoMatchText}, nil
	}

	if !c.enabled {
		return nil, ErrGenerationDisabled
	}

	cards := topCards(results, c.topCards)

	sessCtx, cancel := context.WithCancel(ctx)
	sess := &session{cancel: cancel, done: make(chan struct{})}

	c.mu.Lock()
	prev := c.active
	c.active = sess
	c.mu.Unlock()

	if prev != nil {
		prev.cancel()
		<-prev.done
	}

	defer func() {
		cancel()
		close(sess.done)
		c.mu.Lock()
		if c.active == sess {
			c.active = nil
		}
		c.mu.Unlock()
	}()

	c.logger.Debug("composing answer", "question", question, "cards", len(cards))

	// Accumulate streamed fragments so cancellation can return partial text.
	var streamed strings.Builder
	stream := func(ctx context.Context, chunk []byte) error {
		streamed.Write(chunk)
		if onFragment != nil {
			return onFragment(ctx, chunk)
		}
		return nil
	}

	text, err := c.generator.Generate(sessCtx, buildPrompt(question, cards), stream)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.logger.Debug("generation cancelled", "partial_length", streamed.Len())
			return c.finish(streamed.String(), cards, true), nil
		}
		c.logger.Error("generation failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
	}

	if text == "" {
		text = streamed.String()
	}
	return c.finish(text, cards, false), nil
}

// Cancel aborts any in-flight generation and waits for it to unwind.
// It is safe to call when nothing is streaming.
func (c *Composer) Cancel() {
	c.mu.Lock()
	sess := c.active
	c.mu.Unlock()

	if sess != nil {
		sess.cancel()
		<-sess.done
	}
}

// finish assembles the Answer, carrying card warnings and sources verbatim.
func (c *Composer) finish(text string, cards []core.Card, cancelled bool) *Answer {
	ans := &Answer{
		Text:      text,
		Cancelled: cancelled,
	}

	seenWarning := make(map[string]bool)
	seenSource := make(map[string]bool)
	for _, card := range cards {
		for _, w := range card.Warnings {
			if !seenWarning[w] {
				seenWarning[w] = true
				ans.Warnings = append(ans.Warnings, w)
			}
		}
		if card.Source != "" && !seenSource[card.Source] {
			seenSource[card.Source] = true
			ans.Sources = append(ans.Sources, card.Source)
		}
	}
	return ans
}

// topCards extracts up to n cards from ranked results, preserving rank order.
func topCards(results []core.MatchResult, n int) []core.Card {
	if n > len(results) {
		n = len(results)
	}
	cards := make([]core.Card, 0, n)
	for _, r := range results[:n] {
		cards = append(cards, r.Card)
	}
	return cards
}
