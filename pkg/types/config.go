// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ScoreWeights holds the tunable constants of the semantic composite score.
// The defaults keep the weighted base (similarity + recency + citation)
// at or below 0.9 so the activity bonus reads as a genuine bonus and the
// composite stays interpretable as a percentage.
type ScoreWeights struct {
	// Similarity weights avg_similarity (default 0.6).
	Similarity float64 `json:"similarity_weight" yaml:"similarity_weight" mapstructure:"similarity_weight"`

	// Recency weights recency_weight (default 0.2).
	Recency float64 `json:"recency_weight_factor" yaml:"recency_weight_factor" mapstructure:"recency_weight_factor"`

	// Citation weights citation_impact (default 0.1).
	Citation float64 `json:"citation_weight" yaml:"citation_weight" mapstructure:"citation_weight"`

	// ActivityPerPaper is the bonus added per matched publication (default 0.03).
	ActivityPerPaper float64 `json:"activity_per_paper" yaml:"activity_per_paper" mapstructure:"activity_per_paper"`

	// ActivityCap bounds the total activity bonus (default 0.15).
	ActivityCap float64 `json:"activity_cap" yaml:"activity_cap" mapstructure:"activity_cap"`

	// RecencyHalfLifeYears is the half-life of the exponential recency
	// decay (default 5: a five-year-old paper carries weight 0.5).
	RecencyHalfLifeYears float64 `json:"recency_half_life_years" yaml:"recency_half_life_years" mapstructure:"recency_half_life_years"`

	// CitationCap is the corpus-wide reference citation count at which
	// citation_impact saturates at 1.0 (default 1000).
	CitationCap float64 `json:"citation_cap" yaml:"citation_cap" mapstructure:"citation_cap"`
}

// RetrievalConfig holds settings for candidate retrieval and result shaping.
type RetrievalConfig struct {
	// EvidencePerProfessor caps the publications shown per surfaced
	// professor (default 5).
	EvidencePerProfessor int `json:"evidence_per_professor" yaml:"evidence_per_professor" mapstructure:"evidence_per_professor"`

	// FanoutFactor widens the candidate publication pool so enough distinct
	// professors survive grouping: pool = top_k * evidence * fanout
	// (default 5).
	FanoutFactor int `json:"fanout_factor" yaml:"fanout_factor" mapstructure:"fanout_factor"`

	// MinSimilarity drops semantic hits whose normalized similarity falls
	// below this floor (default 0.5, the neutral point of (cos+1)/2).
	MinSimilarity float64 `json:"min_similarity" yaml:"min_similarity" mapstructure:"min_similarity"`

	// SpellCheck enables domain spell correction of semantic queries.
	SpellCheck bool `json:"spell_check" yaml:"spell_check" mapstructure:"spell_check"`

	// Shards is the worker count for the parallel vector scan. Zero means
	// runtime.NumCPU().
	Shards int `json:"shards" yaml:"shards" mapstructure:"shards"`
}

// CorpusConfig locates the read-only corpus artifacts.
type CorpusConfig struct {
	// DBPath is the SQLite corpus database.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// IndexPath is the gob-encoded embedding index.
	IndexPath string `json:"index_path" yaml:"index_path" mapstructure:"index_path"`
}

// EmbedderConfig holds settings for the query embedding service.
type EmbedderConfig struct {
	// BaseURL is the embedding API endpoint (default http://localhost:11434).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Model is the embedding model name; it must match the model that
	// produced the corpus index (default all-minilm:l6-v2).
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// Dimensions is the expected vector dimensionality (default 384).
	Dimensions int `json:"dimensions" yaml:"dimensions" mapstructure:"dimensions"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// RequestsPerSecond throttles embedding calls; zero disables the limiter.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// EngineConfig groups all engine configuration.
type EngineConfig struct {
	Weights   ScoreWeights    `json:"weights" yaml:"weights" mapstructure:"weights"`
	Retrieval RetrievalConfig `json:"retrieval" yaml:"retrieval" mapstructure:"retrieval"`
	Corpus    CorpusConfig    `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
	Embedder  EmbedderConfig  `json:"embedder" yaml:"embedder" mapstructure:"embedder"`
}

// DefaultEngineConfig returns the design-default configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Weights: ScoreWeights{
			Similarity:           0.6,
			Recency:              0.2,
			Citation:             0.1,
			ActivityPerPaper:     0.03,
			ActivityCap:          0.15,
			RecencyHalfLifeYears: 5,
			CitationCap:          1000,
		},
		Retrieval: RetrievalConfig{
			EvidencePerProfessor: 5,
			FanoutFactor:         5,
			MinSimilarity:        0.5,
			SpellCheck:           true,
		},
		Corpus: CorpusConfig{
			DBPath:    "data/advisormatch.db",
			IndexPath: "data/embeddings.gob",
		},
		Embedder: EmbedderConfig{
			BaseURL:           "http://localhost:11434",
			Model:             "all-minilm:l6-v2",
			Dimensions:        384,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 10,
		},
	}
}
