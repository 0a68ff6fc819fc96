// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjit30/AdvisorMatch/internal/index"
	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// fakeEmbedder maps known query strings to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
	dims    int
	queries []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.queries = append(f.queries, text)
	v, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("fake embedder: unknown query %q", text)
	}
	return v, nil
}

func (f *fakeEmbedder) ModelName() string { return "fake-model" }
func (f *fakeEmbedder) Dimensions() int   { return f.dims }

func testVectorIndex(t *testing.T) *index.VectorIndex {
	t.Helper()
	ix := index.NewVectorIndex("fake-model", 3)
	require.NoError(t, ix.Add("p-aligned", []float32{1, 0, 0}))
	require.NoError(t, ix.Add("p-close", []float32{0.9, 0.1, 0}))
	require.NoError(t, ix.Add("p-orthogonal", []float32{0, 1, 0}))
	require.NoError(t, ix.Add("p-opposed", []float32{-1, 0, 0}))
	return ix
}

func TestVectorRetrieverNormalizesAndFilters(t *testing.T) {
	r := &VectorRetriever{
		Index: testVectorIndex(t),
		Embedder: &fakeEmbedder{
			vectors: map[string][]float32{"vector search": {1, 0, 0}},
			dims:    3,
		},
		MinSimilarity: 0.5,
	}

	hits, err := r.Retrieve(context.Background(), "vector search", 10)
	require.NoError(t, err)
	require.Len(t, hits, 3, "the opposed paper falls below the floor")

	assert.Equal(t, "p-aligned", hits[0].PaperID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.Equal(t, "p-close", hits[1].PaperID)
	// Orthogonal normalizes to exactly the floor and survives.
	assert.Equal(t, "p-orthogonal", hits[2].PaperID)
	assert.InDelta(t, 0.5, hits[2].Score, 1e-6)

	for _, h := range hits {
		assert.GreaterOrEqual(t, h.Score, 0.0)
		assert.LessOrEqual(t, h.Score, 1.0)
	}
}

func TestVectorRetrieverHigherFloor(t *testing.T) {
	r := &VectorRetriever{
		Index: testVectorIndex(t),
		Embedder: &fakeEmbedder{
			vectors: map[string][]float32{"vector search": {1, 0, 0}},
			dims:    3,
		},
		MinSimilarity: 0.9,
	}

	hits, err := r.Retrieve(context.Background(), "vector search", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "p-aligned", hits[0].PaperID)
	assert.Equal(t, "p-close", hits[1].PaperID)
}

func TestVectorRetrieverEdgeCases(t *testing.T) {
	r := &VectorRetriever{
		Index:    testVectorIndex(t),
		Embedder: &fakeEmbedder{vectors: map[string][]float32{}, dims: 3},
	}

	t.Run("blank query", func(t *testing.T) {
		hits, err := r.Retrieve(context.Background(), "   ", 10)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("zero n", func(t *testing.T) {
		hits, err := r.Retrieve(context.Background(), "anything", 0)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("embedder failure propagates", func(t *testing.T) {
		_, err := r.Retrieve(context.Background(), "unknown query", 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown query")
	})
}

func TestLexicalRetriever(t *testing.T) {
	ix := index.BuildLexical([]types.Publication{
		{PaperID: "p1", Title: "Vector databases in practice"},
		{PaperID: "p2", Title: "Compiler optimization"},
	})
	r := &LexicalRetriever{Index: ix}

	hits, err := r.Retrieve(context.Background(), "vector databases", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "p1", hits[0].PaperID)
	assert.Greater(t, hits[0].Score, 0.0)
}

func TestLexicalRetrieverNoTokens(t *testing.T) {
	r := &LexicalRetriever{Index: index.BuildLexical(nil)}

	hits, err := r.Retrieve(context.Background(), "!!! ---", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRetrieverNames(t *testing.T) {
	assert.Equal(t, "vector", (&VectorRetriever{}).Name())
	assert.Equal(t, "lexical", (&LexicalRetriever{}).Name())
}
