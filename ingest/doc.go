// Package ingest provides the import pipeline for survival card files.
//
// The Pipeline reads card JSON files concurrently using a worker pool,
// validates them, and adds them to a card repository. Cards whose content
// checksum already exists in storage are skipped, so re-running an import
// over the same directory is idempotent. Per-file failures are collected in
// the Report rather than aborting the whole import.
package ingest
