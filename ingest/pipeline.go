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


package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/calder-systems/fieldcraft/core"
	"github.com/calder-systems/fieldcraft/storage"
	"github.com/panjf2000/ants/v2"
)

// Pipeline imports card files into a repository using a worker pool.
type Pipeline struct {
	repository storage.CardRepository
	pool       *ants.Pool
	logger     *slog.Logger
}

// FileError records a single file that failed to import.
type FileError struct {
	Path string
	Err  error
}

func (fe FileError) Error() string {
	return fmt.Sprintf("%s: %v", fe.Path, fe.Err)
}

// Report summarizes an import run.
type Report struct {
	// Imported is the number of cards added to storage.
	Imported int

	// Skipped is the number of cards dropped because their content checksum
	// was already stored.
	Skipped int

	// Failures lists files that could not be read, parsed, or stored.
	Failures []FileError
}

// Failed returns the number of failed files.
func (r *Report) Failed() int {
	return len(r.Failures)
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent file processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new import pipeline.
func NewPipeline(repository storage.CardRepository, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		pool:       pool,
		logger:     slog.Default().With("component", "ingest"),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// ImportDir imports every *.json file in the directory, in sorted name order.
// Returns ErrNoFiles when the directory holds no card files.
func (p *Pipeline) ImportDir(ctx context.Context, dir string) (*Report, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, dir)
	}
	sort.Strings(paths)
	return p.ImportFiles(ctx, paths...)
}

// ImportFiles imports the given card files concurrently. Parsing and the
// checksum check run on the worker pool; adding to storage is serialized so
// catalog order follows the argument order.
func (p *Pipeline) ImportFiles(ctx context.Context, paths ...string) (*Report, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	p.logger.Info("importing card files", "files", len(paths))

	type parsed struct {
		cards []*core.Card
		err   error
	}

	results := make([]parsed, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		// go.mod targets Go 1.21, where range variables are shared across
		// iterations; copy them so each submitted closure sees its own.
		i, path := i, path
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			cards, err := parseFile(path)
			results[i] = parsed{cards: cards, err: err}
		})
		if submitErr != nil {
			// Pool is released or overloaded; run inline
			cards, err := parseFile(path)
			results[i] = parsed{cards: cards, err: err}
			wg.Done()
		}
	}
	wg.Wait()

	report := &Report{}
	for i, res := range results {
		if res.err != nil {
			p.logger.Warn("skipping card file", "path", paths[i], "err", res.err)
			report.Failures = append(report.Failures, FileError{Path: paths[i], Err: res.err})
			continue
		}

		for _, card := range res.cards {
			exists, err := p.repository.HasChecksum(ctx, core.ChecksumCard(card))
			if err != nil {
				return nil, err
			}
			if exists {
				p.logger.Debug("card already stored", "id", card.ID)
				report.Skipped++
				continue
			}

			if _, err := p.repository.AddCards(ctx, card); err != nil {
				report.Failures = append(report.Failures, FileError{Path: paths[i], Err: err})
				continue
			}
			report.Imported++
		}
	}

	p.logger.Info("import finished",
		"imported", report.Imported,
		"skipped", report.Skipped,
		"failed", report.Failed())

	return report, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// parseFile reads one card file holding either a single card object or an
// array of cards.
func parseFile(path string) ([]*core.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return core.ParseCards(trimmed)
	}

	card, err := core.ParseCard(trimmed)
	if err != nil {
		return nil, err
	}
	return []*core.Card{card}, nil
}
