package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/calder-systems/fieldcraft/core"
)

// Match weights, summed per query token. Each query token contributes its
// single strongest signal against a card: a token that hits both the title
// and a tag counts once, at the title weight.
const (
	weightTitle = 3.0 // exact or substring match against a title token
	weightTag   = 2.0 // exact match against a tag token
	weightFuzzy = 1.0 // edit distance <= 1 against a title or tag token
	weightBody  = 1.0 // exact match against a body token

	// A query token must be at least this long to count as a substring of
	// a title token; two-letter fragments match almost anything.
	substringMinTokenLen = 3
)

// Searcher ranks catalog cards by relevance to free-text queries.
type Searcher struct {
	index  *Index
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher over a prebuilt index.
func NewSearcher(index *Index, opts ...Option) (*Searcher, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}

	s := &Searcher{
		index:  index,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search ranks cards against the query and returns up to limit results.
// limit <= 0 returns every scoring card. A query that normalizes to zero
// tokens returns an empty result; there is no implicit match-everything.
func (s *Searcher) Search(query string, limit int) []core.MatchResult {
	return s.SearchWithMonitor(query, limit, nil)
}

// SearchWithMonitor ranks cards with monitoring callbacks at each stage.
func (s *Searcher) SearchWithMonitor(query string, limit int, monitor Monitor) []core.MatchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	tokens := tokenize(query)
	monitor.AfterNormalize(tokens)
	if len(tokens) == 0 {
		s.logger.Debug("query normalized to zero tokens", "query", query)
		monitor.Finish(nil)
		return []core.MatchResult{}
	}

	results := make([]core.MatchResult, 0, len(s.index.docs))
	for i := range s.index.docs {
		doc := &s.index.docs[i]

		var score float64
		for _, token := range tokens {
			score += s.scoreToken(doc, token, monitor)
		}
		if score == 0 {
			continue
		}

		results = append(results, core.MatchResult{Card: doc.card, Score: score})
	}

	// Stable sort keeps catalog order among equal scores, which makes the
	// final ordering fully deterministic.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	monitor.Finish(results)
	return results
}

// scoreToken returns the strongest signal a single query token produces
// against a card.
func (s *Searcher) scoreToken(doc *indexedCard, token string, monitor Monitor) float64 {
	if doc.titleSet[token] {
		monitor.TitleHit(doc.card, token)
		return weightTitle
	}
	if len(token) >= substringMinTokenLen {
		for _, tt := range doc.titleTokens {
			if strings.Contains(tt, token) {
				monitor.TitleHit(doc.card, token)
				return weightTitle
			}
		}
	}

	if doc.tagSet[token] {
		monitor.TagHit(doc.card, token)
		return weightTag
	}

	if len(token) >= fuzzyMinTokenLen {
		for _, tt := range doc.titleTokens {
			if withinEditDistance1(token, tt) {
				monitor.FuzzyHit(doc.card, token)
				return weightFuzzy
			}
		}
		for _, tt := range doc.tagTokens {
			if withinEditDistance1(token, tt) {
				monitor.FuzzyHit(doc.card, token)
				return weightFuzzy
			}
		}
	}

	if doc.bodySet[token] {
		monitor.BodyHit(doc.card, token)
		return weightBody
	}

	return 0
}
