// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank implements the advisor ranking engine: similarity retrieval
// over the corpus, per-professor aggregation of publication-level signals,
// composite scoring, and deterministic top-K selection with supporting
// evidence.
package rank

import (
	"context"
	"errors"
	"strings"

	"github.com/panjf2000/ants/v2"

	"github.com/sanjit30/AdvisorMatch/internal/embed"
	"github.com/sanjit30/AdvisorMatch/internal/index"
	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// Retriever returns the n publications most similar to a query, sorted by
// score descending with paper ID ascending as the tie-break. Each ranking
// mode provides one implementation; the engine selects by request mode.
type Retriever interface {
	Name() string
	Retrieve(ctx context.Context, query string, n int) ([]types.RetrievalHit, error)
}

// VectorRetriever embeds the query and scans the dense embedding index.
// Raw cosine similarities are normalized to [0,1] via (cos+1)/2 so the
// composer can treat them as a bounded sub-score; hits below the configured
// floor are dropped.
type VectorRetriever struct {
	Index    *index.VectorIndex
	Embedder embed.Embedder

	// Pool, when non-nil, shards the index scan across its workers.
	Pool *ants.Pool

	// MinSimilarity is the floor on the normalized score.
	MinSimilarity float64
}

// Name returns the retriever identifier.
func (r *VectorRetriever) Name() string { return "vector" }

// Retrieve implements Retriever. An empty query or n <= 0 yields no hits
// and no error; the engine rejects empty queries before reaching here, this
// is defense for direct callers.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, n int) ([]types.RetrievalHit, error) {
	if n <= 0 || strings.TrimSpace(query) == "" {
		return nil, nil
	}

	vector, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		if errors.Is(err, embed.ErrEmptyText) {
			return nil, nil
		}
		return nil, err
	}
	if len(vector) == 0 {
		return nil, nil
	}

	hits, err := r.Index.Search(ctx, vector, n, r.Pool)
	if err != nil {
		return nil, err
	}

	// Normalize and apply the retrieval floor. Normalization is monotonic,
	// so the index ordering survives unchanged.
	out := hits[:0]
	for _, h := range hits {
		h.Score = (h.Score + 1) / 2
		if h.Score < r.MinSimilarity {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// LexicalRetriever tokenizes the query and scores the BM25 index. Scores
// are unbounded non-negative reals, not comparable with vector scores.
type LexicalRetriever struct {
	Index *index.LexicalIndex
}

// Name returns the retriever identifier.
func (r *LexicalRetriever) Name() string { return "lexical" }

// Retrieve implements Retriever.
func (r *LexicalRetriever) Retrieve(ctx context.Context, query string, n int) ([]types.RetrievalHit, error) {
	tokens := index.Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}
	return r.Index.Search(ctx, tokens, n)
}
