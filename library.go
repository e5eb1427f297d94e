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


package fieldcraft

import (
	"context"
	"io"
	"log/slog"

	"github.com/calder-systems/fieldcraft/ai"
	"github.com/calder-systems/fieldcraft/ai/openai"
	"github.com/calder-systems/fieldcraft/answer"
	"github.com/calder-systems/fieldcraft/catalog"
	"github.com/calder-systems/fieldcraft/core"
	"github.com/calder-systems/fieldcraft/embedding"
	"github.com/calder-systems/fieldcraft/ingest"
	"github.com/calder-systems/fieldcraft/search"
	"github.com/calder-systems/fieldcraft/storage"
	"github.com/calder-systems/fieldcraft/storage/badger"
)

// Library is the top-level handle to a fieldcraft card store. It owns the
// storage backend and the AI provider, and constructs the searcher, the
// answer composer, and the pipelines on top of them.
type Library struct {
	backend  *badger.Backend
	cardRepo storage.CardRepository
	provider ai.Provider
	logger   *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig overrides the default AI service configuration.
func WithAIConfig(config *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithAIProvider injects a pre-built AI provider instead of constructing the
// OpenAI-compatible one. Used by tests to supply mocks.
func WithAIProvider(provider ai.Provider) LibraryOption {
	return func(o *libraryOptions) {
		o.provider = provider
	}
}

// NewLibrary opens a card library at the given path. An empty path opens an
// in-memory store, which serves tests and the pure browse workflow where
// the embedded seed deck is enough.
func NewLibrary(filePath string, opts ...LibraryOption) (*Library, error) {
	// Apply options
	options := &libraryOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}

	// Create card repository
	cardRepo, err := badger.NewCardRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings unless one was injected
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			cardRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Library{
		backend:  backend,
		cardRepo: cardRepo,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider, the repository, and the backend.
func (l *Library) Close() error {
	// Close AI provider first
	if err := l.provider.Close(); err != nil {
		l.logger.Error("error closing AI provider", "err", err)
	}

	// Close repository
	if err := l.cardRepo.Close(); err != nil {
		l.logger.Error("error closing card repository", "err", err)
		return err
	}

	// Close backend
	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// CardRepository returns the card storage.
func (l *Library) CardRepository() storage.CardRepository {
	return l.cardRepo
}

// Catalog returns the active card catalog: the stored cards when any have
// been imported, otherwise the embedded seed deck.
func (l *Library) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	count, err := l.cardRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return catalog.Embedded()
	}

	stored, err := l.cardRepo.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]core.Card, 0, len(stored))
	for _, card := range stored {
		cards = append(cards, *card)
	}
	return catalog.New(cards)
}

// NewSearcher builds a keyword searcher over the active catalog.
func (l *Library) NewSearcher(ctx context.Context, opts ...search.Option) (*search.Searcher, error) {
	cat, err := l.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return search.NewSearcher(search.BuildIndex(cat.All()), opts...)
}

// Matches below this cosine similarity are noise, not answers.
const semanticMinSimilarity = 0.35

// SemanticSearch ranks stored cards by cosine similarity between the
// question's embedding and the card vectors written by the embed pipeline.
// Cards without a vector never match, and an empty store returns no matches
// without calling the embedding service. limit <= 0 returns every match
// above the similarity floor.
func (l *Library) SemanticSearch(ctx context.Context, question string, limit int) ([]core.MatchResult, error) {
	count, err := l.cardRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []core.MatchResult{}, nil
	}
	if limit <= 0 {
		limit = count
	}

	vector, err := l.provider.Embedder().EmbedText(ctx, question)
	if err != nil {
		return nil, err
	}

	matches, err := l.cardRepo.FindSimilar(ctx, embedding.NormalizeVector(vector), semanticMinSimilarity, limit)
	if err != nil {
		return nil, err
	}

	results := make([]core.MatchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, core.MatchResult{Card: *match.Card, Score: float64(match.Score)})
	}
	return results, nil
}

// NewComposer builds an answer composer backed by the library's generator.
func (l *Library) NewComposer(opts ...answer.Option) (*answer.Composer, error) {
	return answer.NewComposer(l.provider.Generator(), opts...)
}

// NewImportPipeline builds an import pipeline over the card repository.
func (l *Library) NewImportPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(l.cardRepo, opts...)
}

// NewReembedder builds an embedding pipeline over the card repository.
func (l *Library) NewReembedder(config *embedding.Config, progress io.Writer) *embedding.Reembedder {
	return embedding.NewReembedder(l.cardRepo, l.provider.Embedder(), config, progress)
}
