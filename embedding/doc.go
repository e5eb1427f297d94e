// Package embedding provides functionality for embedding survival cards
// with new or updated embedding models.
//
// This package supports batch processing of stored cards, progress tracking,
// retry logic with exponential backoff, and vector normalization to ensure
// compatibility with cosine similarity search.
package embedding
