// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed generates query embeddings for semantic ranking. The corpus
// embeddings are computed offline by an external pipeline; at request time
// the engine only needs a single query vector in the same space.
package embed

import (
	"context"
	"errors"
)

// ErrEmptyText is returned when asked to embed an empty or whitespace-only string.
var ErrEmptyText = errors.New("empty text")

// Embedder produces a dense vector for a text. Implementations must be safe
// for concurrent use.
type Embedder interface {
	// Embed returns the embedding of text in the corpus vector space.
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the embedding model identifier.
	ModelName() string

	// Dimensions returns the vector dimensionality the model produces.
	Dimensions() int
}
