// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchRequest holds the parameters of one ranking request. It is produced
// by the caller (CLI or transport layer) and consumed by the engine.
type SearchRequest struct {
	// Query is the free-text research-interest query. Must be non-empty
	// after trimming.
	Query string `json:"query"`

	// TopK is the requested number of professors. Values outside [1,20]
	// are clamped, not rejected.
	TopK int `json:"top_k"`

	// Mode selects semantic or lexical ranking.
	Mode Mode `json:"mode"`
}

// PublicationSummary is one evidence publication attached to a surfaced
// professor, ordered by its own similarity score.
type PublicationSummary struct {
	PaperID    string  `json:"paper_id"`
	Title      string  `json:"title"`
	Year       int     `json:"year,omitempty"`
	Similarity float64 `json:"similarity"`
	Citations  int64   `json:"citations"`
	Venue      string  `json:"venue,omitempty"`
	URL        string  `json:"url,omitempty"`
}

// ProfessorResult is one ranked professor with the sub-scores that produced
// the final score and the top matching publications as evidence.
type ProfessorResult struct {
	ProfessorID int64  `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	College     string `json:"college"`
	Interests   string `json:"interests,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	URL         string `json:"url,omitempty"`

	// FinalScore is the composite ranking score. In semantic mode it lies
	// in [0,1]; in lexical mode it equals AvgSimilarity and is unbounded.
	FinalScore float64 `json:"final_score"`

	// AvgSimilarity is the mean raw similarity of the matched publications.
	AvgSimilarity float64 `json:"avg_similarity"`

	// RecencyWeight is the mean exponential-decay weight of the matched
	// publications' ages. Zero in lexical mode.
	RecencyWeight float64 `json:"recency_weight"`

	// ActivityBonus rewards the volume of matched publications, capped.
	// Zero in lexical mode.
	ActivityBonus float64 `json:"activity_bonus"`

	// CitationImpact is the log-scaled, normalized citation signal in [0,1].
	// Zero in lexical mode.
	CitationImpact float64 `json:"citation_impact"`

	NumMatchingPapers int `json:"num_matching_papers"`

	TopPublications []PublicationSummary `json:"top_publications,omitempty"`
}

// SearchResponse is the ordered result of one ranking request.
type SearchResponse struct {
	Query string `json:"query"`

	// CorrectedQuery is set when domain spell correction changed the query
	// before retrieval.
	CorrectedQuery string `json:"corrected_query,omitempty"`

	Mode Mode `json:"mode"`

	// TotalResults equals len(Results). Zero with an empty Results slice is
	// a valid response, not an error.
	TotalResults int `json:"total_results"`

	// SearchTimeMs is the wall-clock duration of the ranking call.
	SearchTimeMs float64 `json:"search_time_ms"`

	Results []ProfessorResult `json:"results"`
}
