// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// testStore opens a fresh corpus in a temp directory and loads the standard
// fixture dump.
func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.Import(context.Background(), fixtureDump(), &bytes.Buffer{})
	require.NoError(t, err)
	return store
}

func fixtureDump() *Dump {
	return &Dump{
		Professors: []types.Professor{
			{Name: "Ada Lovelace", College: "Engineering", Department: "Computer Science",
				Interests: "machine learning, program analysis", ProfileURL: "https://example.edu/ada"},
			{Name: "Grace Hopper", College: "Engineering", Department: "Computer Science",
				Interests: "compilers, systems"},
			{Name: "Rosalind Franklin", College: "Science", Department: "Biophysics"},
		},
		Publications: []types.Publication{
			{PaperID: "p1", Title: "Notes on the analytical engine", Abstract: "Early programs.",
				Venue: "Annals", Year: 2019, CitationCount: 120, URL: "https://example.org/p1"},
			{PaperID: "p2", Title: "Compiling for people", Abstract: "Human-readable compilation.",
				Year: 2022, CitationCount: 40},
			{PaperID: "p3", Title: "X-ray diffraction of DNA"},
		},
		Links: []DumpLink{
			{Professor: "Ada Lovelace", PaperID: "p1", IsPrimaryAuthor: true, AuthorPosition: 1},
			{Professor: "Grace Hopper", PaperID: "p1", AuthorPosition: 2},
			{Professor: "Grace Hopper", PaperID: "p2", IsPrimaryAuthor: true, AuthorPosition: 1},
			{Professor: "Rosalind Franklin", PaperID: "p3", IsPrimaryAuthor: true, AuthorPosition: 1},
		},
	}
}

func TestGetProfessor(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	prof, err := store.GetProfessor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", prof.Name)
	assert.Equal(t, "Computer Science", prof.Department)
	assert.Equal(t, "machine learning, program analysis", prof.Interests)

	_, err = store.GetProfessor(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPublication(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	pub, err := store.GetPublication(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Notes on the analytical engine", pub.Title)
	assert.Equal(t, 2019, pub.Year)
	assert.Equal(t, int64(120), pub.CitationCount)

	_, err = store.GetPublication(ctx, "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPublicationNeutralFields(t *testing.T) {
	store := testStore(t)

	// p3 was imported with only a title; optional columns scan as zero values.
	pub, err := store.GetPublication(context.Background(), "p3")
	require.NoError(t, err)
	assert.Equal(t, 0, pub.Year)
	assert.Equal(t, int64(0), pub.CitationCount)
	assert.Empty(t, pub.Venue)
	assert.Empty(t, pub.Abstract)
}

func TestPublicationsBatch(t *testing.T) {
	store := testStore(t)

	pubs, err := store.Publications(context.Background(), []string{"p1", "p2", "absent"})
	require.NoError(t, err)
	assert.Len(t, pubs, 2)
	assert.Contains(t, pubs, "p1")
	assert.Contains(t, pubs, "p2")
	assert.NotContains(t, pubs, "absent")
}

func TestPublicationsEmptyInput(t *testing.T) {
	store := testStore(t)

	pubs, err := store.Publications(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, pubs)
}

func TestLinksBatch(t *testing.T) {
	store := testStore(t)

	links, err := store.Links(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)

	require.Len(t, links["p1"], 2, "p1 is co-authored")
	assert.True(t, links["p1"][0].IsPrimaryAuthor)
	assert.Equal(t, 1, links["p1"][0].AuthorPosition)
	assert.False(t, links["p1"][1].IsPrimaryAuthor)

	require.Len(t, links["p2"], 1)
	require.Len(t, links["p3"], 1)
}

func TestAllPublicationsOrdered(t *testing.T) {
	store := testStore(t)

	pubs, err := store.AllPublications(context.Background())
	require.NoError(t, err)
	require.Len(t, pubs, 3)
	assert.Equal(t, "p1", pubs[0].PaperID)
	assert.Equal(t, "p2", pubs[1].PaperID)
	assert.Equal(t, "p3", pubs[2].PaperID)
}

func TestInterests(t *testing.T) {
	store := testStore(t)

	interests, err := store.Interests(context.Background())
	require.NoError(t, err)

	// Franklin has no interests recorded, so only two rows come back.
	assert.ElementsMatch(t, []string{
		"machine learning, program analysis",
		"compilers, systems",
	}, interests)
}

func TestCount(t *testing.T) {
	store := testStore(t)

	counts, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{Professors: 3, Publications: 3, Links: 4}, counts)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")

	first, err := Open(path)
	require.NoError(t, err)
	_, err = first.Import(context.Background(), fixtureDump(), &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Reopening runs the schema statements again without clobbering data.
	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	counts, err := second.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Professors)
}
