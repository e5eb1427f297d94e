package ingest

import "errors"

var (
	// ErrRepositoryRequired is returned when a card repository is not provided.
	ErrRepositoryRequired = errors.New("card repository required")

	// ErrNoFiles is returned when an import finds nothing to process.
	ErrNoFiles = errors.New("no card files found")
)
