// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lowercases and splits", "Deep Learning", []string{"deep", "learning"}},
		{"strips punctuation", "graph-based NLP, 2nd ed.", []string{"graph", "based", "nlp", "2nd", "ed"}},
		{"empty", "", nil},
		{"only punctuation", "--- !!!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func lexicalFixture() *LexicalIndex {
	return BuildLexical([]types.Publication{
		{PaperID: "p1", Title: "Deep learning for protein folding", Abstract: "Neural networks predict protein structure."},
		{PaperID: "p2", Title: "Protein structure prediction survey", Abstract: "A survey of protein folding methods. Protein protein protein."},
		{PaperID: "p3", Title: "Quantum error correction", Abstract: "Stabilizer codes for quantum computers."},
		{PaperID: "p4", Title: "", Abstract: "Untitled paper should be skipped."},
	})
}

func TestBuildLexicalSkipsUntitled(t *testing.T) {
	ix := lexicalFixture()
	assert.Equal(t, 3, ix.Len())
}

func TestLexicalSearchRanksMatches(t *testing.T) {
	ix := lexicalFixture()

	hits, err := ix.Search(context.Background(), Tokenize("protein folding"), 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// Both papers match; the quantum paper does not.
	ids := []string{hits[0].PaperID, hits[1].PaperID}
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
	for _, h := range hits {
		assert.Greater(t, h.Score, 0.0)
	}
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
}

func TestLexicalSearchTermFrequencyMatters(t *testing.T) {
	ix := BuildLexical([]types.Publication{
		{PaperID: "p-once", Title: "graph theory basics and some other longer words here"},
		{PaperID: "p-many", Title: "graph graph graph theory basics and other longer words"},
	})

	hits, err := ix.Search(context.Background(), []string{"graph"}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "p-many", hits[0].PaperID)
}

func TestLexicalSearchNoMatches(t *testing.T) {
	ix := lexicalFixture()

	hits, err := ix.Search(context.Background(), Tokenize("astrophysics"), 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestLexicalSearchEdgeCases(t *testing.T) {
	ix := lexicalFixture()

	t.Run("empty tokens", func(t *testing.T) {
		hits, err := ix.Search(context.Background(), nil, 10)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("zero n", func(t *testing.T) {
		hits, err := ix.Search(context.Background(), []string{"protein"}, 0)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("empty index", func(t *testing.T) {
		empty := BuildLexical(nil)
		hits, err := empty.Search(context.Background(), []string{"protein"}, 10)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("truncates to n", func(t *testing.T) {
		hits, err := ix.Search(context.Background(), []string{"protein"}, 1)
		require.NoError(t, err)
		assert.Len(t, hits, 1)
	})
}

func TestBM25IDFNonNegative(t *testing.T) {
	// The +1 shift keeps IDF positive even when a term appears in every document.
	assert.Greater(t, bm25IDF(10, 10), 0.0)
	assert.Greater(t, bm25IDF(10, 1), bm25IDF(10, 5))
}
