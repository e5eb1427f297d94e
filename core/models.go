package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a 64-bit content-derived identifier used for storage keys and
// card checksums.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Identical content always produces the identical ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Category classifies a card into the closed set of knowledge areas.
// The set is fixed; filter boundaries must handle it exhaustively.
type Category int

const (
	CategoryWater Category = iota + 1
	CategoryFire
	CategoryShelter
	CategoryFirstAid
	CategoryFood
	CategoryNavigation
	CategoryRescue
)

var categoryNames = map[Category]string{
	CategoryWater:      "water",
	CategoryFire:       "fire",
	CategoryShelter:    "shelter",
	CategoryFirstAid:   "first-aid",
	CategoryFood:       "food",
	CategoryNavigation: "navigation",
	CategoryRescue:     "rescue",
}

// Categories returns all valid categories in their canonical order.
func Categories() []Category {
	return []Category{
		CategoryWater,
		CategoryFire,
		CategoryShelter,
		CategoryFirstAid,
		CategoryFood,
		CategoryNavigation,
		CategoryRescue,
	}
}

// String returns the canonical lowercase name of the category,
// or "" for an invalid value.
func (c Category) String() string {
	return categoryNames[c]
}

// Valid reports whether the category is a member of the fixed set.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory resolves a category name to its enum value.
// Returns ErrInvalidCategory for names outside the fixed set.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for cat, s := range categoryNames {
		if s == name {
			return cat, nil
		}
	}
	return 0, ErrInvalidCategory
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, ErrInvalidCategory
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(data []byte) error {
	cat, err := ParseCategory(string(data))
	if err != nil {
		return err
	}
	*c = cat
	return nil
}

// Difficulty rates how much practice a card's procedure demands.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota + 1
	DifficultyMedium
	DifficultyHard
)

var difficultyNames = map[Difficulty]string{
	DifficultyEasy:   "easy",
	DifficultyMedium: "medium",
	DifficultyHard:   "hard",
}

// String returns the canonical lowercase name of the difficulty,
// or "" for an invalid value.
func (d Difficulty) String() string {
	return difficultyNames[d]
}

// Valid reports whether the difficulty is a known value.
func (d Difficulty) Valid() bool {
	_, ok := difficultyNames[d]
	return ok
}

// ParseDifficulty resolves a difficulty name to its enum value.
func ParseDifficulty(name string) (Difficulty, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d, s := range difficultyNames {
		if s == name {
			return d, nil
		}
	}
	return 0, ErrInvalidDifficulty
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, ErrInvalidDifficulty
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(data []byte) error {
	diff, err := ParseDifficulty(string(data))
	if err != nil {
		return err
	}
	*d = diff
	return nil
}

// Card is one self-contained unit of survival knowledge.
// Cards are immutable at runtime; the catalog never mutates them after load.
type Card struct {
	ID         string // stable slug, e.g. "water-boil-purification"
	Title      string
	Icon       string // emoji marker shown next to the title
	Category   Category
	Brief      string   // one-sentence summary of what the card teaches
	Tags       []string // unordered context keywords
	Difficulty Difficulty
	Steps      []string  // ordered, concrete instructions
	Warnings   []string  // rendered verbatim, never summarized away
	Source     string    // mandatory citation
	Vector     []float32 // embedding, populated by the embedding pipeline
	Seq        uint64    // insertion sequence, populated by storage
}

// ChecksumCard computes a content checksum over every curated field of the
// card. Vector and Seq are excluded: they are derived/storage state, not
// card identity.
func ChecksumCard(c *Card) ID {
	var b strings.Builder
	b.WriteString(c.ID)
	b.WriteByte(0x1f)
	b.WriteString(c.Title)
	b.WriteByte(0x1f)
	b.WriteString(c.Icon)
	b.WriteByte(0x1f)
	b.WriteString(c.Category.String())
	b.WriteByte(0x1f)
	b.WriteString(c.Brief)
	b.WriteByte(0x1f)
	for _, t := range c.Tags {
		b.WriteString(t)
		b.WriteByte(0x1e)
	}
	b.WriteByte(0x1f)
	b.WriteString(c.Difficulty.String())
	b.WriteByte(0x1f)
	for _, s := range c.Steps {
		b.WriteString(s)
		b.WriteByte(0x1e)
	}
	b.WriteByte(0x1f)
	for _, w := range c.Warnings {
		b.WriteString(w)
		b.WriteByte(0x1e)
	}
	b.WriteByte(0x1f)
	b.WriteString(c.Source)
	return IDFromContent(b.String())
}

// MatchResult pairs a card with the relevance score assigned by the
// query matcher.
type MatchResult struct {
	Card  Card
	Score float64
}

// SimilarityMatch is a card match from vector similarity search.
type SimilarityMatch struct {
	Card  *Card
	Score float32
}
