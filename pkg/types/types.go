// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the AdvisorMatch ranking
// engine: the corpus entities (professors, publications, author links), the
// ephemeral per-request structures, and the request/response surface consumed
// by the CLI and any transport layer built on top.
package types

// Mode selects the ranking semantics for a search request.
type Mode string

const (
	// ModeSemantic ranks by embedding similarity with recency, activity,
	// and citation signals folded into the composite score.
	ModeSemantic Mode = "semantic"

	// ModeLexical ranks by BM25 term overlap alone. Scores are unbounded
	// and not comparable with semantic scores.
	ModeLexical Mode = "lexical"
)

// Valid reports whether m is a recognized ranking mode.
func (m Mode) Valid() bool {
	return m == ModeSemantic || m == ModeLexical
}

// Professor is a faculty member in the corpus. Records are owned by the
// corpus store and treated as immutable during a ranking request.
type Professor struct {
	// ID is the database identity.
	ID int64 `json:"id" yaml:"id"`

	// Name is the display name.
	Name string `json:"name" yaml:"name"`

	// Department and College locate the professor within the institution.
	Department string `json:"department" yaml:"department"`
	College    string `json:"college" yaml:"college"`

	// Interests is free-text research interests, as scraped.
	Interests string `json:"interests,omitempty" yaml:"interests,omitempty"`

	// ImageURL is an optional portrait or avatar URL.
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`

	// ProfileURL is an optional faculty profile page.
	ProfileURL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Publication is a paper in the corpus, keyed by an externally sourced,
// globally unique identifier (e.g. an OpenAlex work ID).
type Publication struct {
	// PaperID is the external identifier.
	PaperID string `json:"paper_id" yaml:"paper_id"`

	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Venue    string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Year is the publication year; zero means unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// CitationCount is the external citation count; missing counts load as zero.
	CitationCount int64 `json:"citation_count" yaml:"citation_count"`

	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// AuthorLink is the many-to-many edge between a professor and a publication.
// (professor_id, paper_id) pairs are unique in the corpus.
type AuthorLink struct {
	ProfessorID int64  `json:"professor_id" yaml:"professor_id"`
	PaperID     string `json:"paper_id" yaml:"paper_id"`

	// IsPrimaryAuthor marks first authorship.
	IsPrimaryAuthor bool `json:"is_primary_author" yaml:"is_primary_author"`

	// AuthorPosition is the 1-based position in the author list.
	AuthorPosition int `json:"author_position" yaml:"author_position"`
}

// RetrievalHit is one publication returned by a similarity retriever.
// Score semantics depend on the mode: a normalized cosine similarity in
// [0,1] for semantic retrieval, an unbounded non-negative BM25 score for
// lexical retrieval.
type RetrievalHit struct {
	PaperID string  `json:"paper_id"`
	Score   float64 `json:"score"`
}
