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


// Package search provides keyword search and ranking over a card catalog.
//
// An Index precomputes normalized token sets per card once; a Searcher
// scores cards against free-text queries as a weighted sum of per-token
// match signals. Title matches weigh most, then exact tag matches, then
// fuzzy neighbors and body words. Ordering is deterministic: descending
// score, with catalog load order breaking ties.
//
// The index and the catalog behind it are never mutated by a search, so a
// Searcher is safe for concurrent use.
package search
