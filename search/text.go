package search

import "strings"

// Tokens shorter than this are dropped during normalization.
const minTokenLen = 2

// Query tokens shorter than this never fuzzy-match; too many accidental
// neighbors exist at distance 1 among short words.
const fuzzyMinTokenLen = 4

// Stop words filtered out on both the index and query side
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenize splits text into words, lowercases, trims punctuation, and
// removes stop words and too-short tokens.
func tokenize(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}—–"))
		if len(cleaned) < minTokenLen || stopWords[cleaned] {
			continue
		}
		filtered = append(filtered, cleaned)
	}

	return filtered
}

// withinEditDistance1 reports whether a and b are at Levenshtein distance
// at most 1 (one insertion, deletion, or substitution).
func withinEditDistance1(a, b string) bool {
	la, lb := len(a), len(b)
	if la > lb {
		a, b = b, a
		la, lb = lb, la
	}
	if lb-la > 1 {
		return false
	}

	if la == lb {
		diff := 0
		for i := 0; i < la; i++ {
			if a[i] != b[i] {
				diff++
				if diff > 1 {
					return false
				}
			}
		}
		return true
	}

	// b is one longer than a: allow a single skipped byte in b.
	i, j, skipped := 0, 0, false
	for i < la {
		if a[i] == b[j] {
			i++
			j++
			continue
		}
		if skipped {
			return false
		}
		skipped = true
		j++
	}
	return true
}
