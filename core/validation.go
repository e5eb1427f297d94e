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


package core

import (
	"fmt"
	"strings"
)

// ValidateCard validates a Card according to domain rules.
//
// Validation rules:
//   - ID, Title and Source must not be empty
//   - Category must be a member of the fixed enumeration
//   - Difficulty must be a known value
//   - At least one step is required
//
// NOT validated (populated later):
//   - Vector (can be empty until the embedding pipeline runs)
//   - Seq (0 is valid until storage assigns a sequence)
//   - Warnings (a card may legitimately carry none)
func ValidateCard(card *Card) error {
	if card == nil {
		return fmt.Errorf("%w: card is nil", ErrInvalidCard)
	}

	if strings.TrimSpace(card.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCard, ErrEmptyID)
	}

	if strings.TrimSpace(card.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCard, ErrEmptyTitle)
	}

	if !card.Category.Valid() {
		return fmt.Errorf("%w: %w: value %d", ErrInvalidCard, ErrInvalidCategory, card.Category)
	}

	if !card.Difficulty.Valid() {
		return fmt.Errorf("%w: %w: value %d", ErrInvalidCard, ErrInvalidDifficulty, card.Difficulty)
	}

	if len(card.Steps) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCard, ErrNoSteps)
	}

	if strings.TrimSpace(card.Source) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCard, ErrEmptySource)
	}

	return nil
}
