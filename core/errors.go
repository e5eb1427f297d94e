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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCard indicates a Card failed validation.
	ErrInvalidCard = errors.New("invalid card")

	// ErrInvalidCategory indicates a category outside the fixed enumeration.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidDifficulty indicates an unknown difficulty value.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrEmptyID indicates the card ID field is empty.
	ErrEmptyID = errors.New("card id cannot be empty")

	// ErrEmptyTitle indicates the card Title field is empty.
	ErrEmptyTitle = errors.New("card title cannot be empty")

	// ErrEmptySource indicates the card Source citation is missing.
	ErrEmptySource = errors.New("card source cannot be empty")

	// ErrNoSteps indicates the card has no steps to act on.
	ErrNoSteps = errors.New("card must have at least one step")
)
