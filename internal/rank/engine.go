// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/sanjit30/AdvisorMatch/internal/corpus"
	"github.com/sanjit30/AdvisorMatch/internal/embed"
	"github.com/sanjit30/AdvisorMatch/internal/index"
	"github.com/sanjit30/AdvisorMatch/internal/spell"
	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// Engine ranks professors against research-interest queries. It holds
// read-only artifacts shared across requests — corpus store, indexes,
// embedder — and is safe for concurrent use: a ranking request reads but
// never writes shared state.
type Engine struct {
	store    *corpus.Store
	vector   *index.VectorIndex
	lexical  *index.LexicalIndex
	embedder embed.Embedder
	checker  *spell.Checker
	pool     *ants.Pool
	cfg      types.EngineConfig
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithSpellChecker enables domain spell correction of semantic queries.
func WithSpellChecker(c *spell.Checker) Option {
	return func(e *Engine) { e.checker = c }
}

// WithClock replaces the engine's time source. Tests use this to pin the
// current year for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an Engine. Artifacts a deployment does not use may be nil;
// requests for a mode whose artifacts are missing fail with ErrNotReady.
// New fails fast on an embedder whose dimensionality cannot match the
// vector index.
func New(
	store *corpus.Store,
	vector *index.VectorIndex,
	lexical *index.LexicalIndex,
	embedder embed.Embedder,
	cfg types.EngineConfig,
	opts ...Option,
) (*Engine, error) {
	if vector != nil && embedder != nil && vector.Dimensions != embedder.Dimensions() {
		return nil, fmt.Errorf("embedder produces %d-dimensional vectors, index expects %d",
			embedder.Dimensions(), vector.Dimensions)
	}

	applyRetrievalDefaults(&cfg)

	e := &Engine{
		store:    store,
		vector:   vector,
		lexical:  lexical,
		embedder: embedder,
		cfg:      cfg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if vector != nil {
		workers := cfg.Retrieval.Shards
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		pool, err := ants.NewPool(workers)
		if err != nil {
			return nil, fmt.Errorf("creating scan pool: %w", err)
		}
		e.pool = pool
	}

	return e, nil
}

// Close releases the engine's worker pool. The store and indexes belong to
// the caller.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Rank executes one ranking request: retrieve candidate publications,
// aggregate them per professor, compose final scores, select the top K,
// and attach evidence publications. Two identical requests against the
// same corpus produce identical responses.
func (e *Engine) Rank(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error) {
	start := e.now()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, req.Mode)
	}

	retriever, err := e.retrieverFor(req.Mode)
	if err != nil {
		return nil, err
	}

	topK := clampTopK(req.TopK)

	resp := &types.SearchResponse{
		Query:   req.Query,
		Mode:    req.Mode,
		Results: []types.ProfessorResult{},
	}

	searchQuery := query
	if req.Mode == types.ModeSemantic && e.checker != nil && e.cfg.Retrieval.SpellCheck {
		corrected := e.checker.CorrectText(query)
		if corrected != strings.ToLower(query) {
			resp.CorrectedQuery = corrected
		}
		searchQuery = corrected
	}

	// The candidate pool must be wider than topK: several hits can collapse
	// onto one professor during grouping.
	poolSize := topK * e.cfg.Retrieval.EvidencePerProfessor * e.cfg.Retrieval.FanoutFactor

	hits, err := retriever.Retrieve(ctx, searchQuery, poolSize)
	if err != nil {
		return nil, fmt.Errorf("%s retrieval: %w", retriever.Name(), err)
	}
	if len(hits) == 0 {
		resp.SearchTimeMs = e.elapsedMs(start)
		return resp, nil
	}

	paperIDs := make([]string, len(hits))
	for i, h := range hits {
		paperIDs[i] = h.PaperID
	}

	pubs, err := e.store.Publications(ctx, paperIDs)
	if err != nil {
		return nil, err
	}
	links, err := e.store.Links(ctx, paperIDs)
	if err != nil {
		return nil, err
	}

	cards := aggregate(hits, links, pubs, req.Mode, e.cfg.Weights, start.Year())
	for _, card := range cards {
		compose(card, req.Mode, e.cfg.Weights)
	}

	for _, card := range selectTopK(cards, topK) {
		prof, err := e.store.GetProfessor(ctx, card.ProfessorID)
		if err != nil {
			if errors.Is(err, corpus.ErrNotFound) {
				// Dangling bridge row; drop the card rather than fail.
				continue
			}
			return nil, err
		}
		resp.Results = append(resp.Results, buildResult(prof, card, pubs, e.cfg.Retrieval.EvidencePerProfessor))
	}

	resp.TotalResults = len(resp.Results)
	resp.SearchTimeMs = e.elapsedMs(start)
	return resp, nil
}

func (e *Engine) retrieverFor(mode types.Mode) (Retriever, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: corpus store not opened", ErrNotReady)
	}

	switch mode {
	case types.ModeSemantic:
		if e.vector == nil || e.embedder == nil {
			return nil, fmt.Errorf("%w: embedding index or embedder not loaded", ErrNotReady)
		}
		return &VectorRetriever{
			Index:         e.vector,
			Embedder:      e.embedder,
			Pool:          e.pool,
			MinSimilarity: e.cfg.Retrieval.MinSimilarity,
		}, nil
	case types.ModeLexical:
		if e.lexical == nil {
			return nil, fmt.Errorf("%w: lexical index not built", ErrNotReady)
		}
		return &LexicalRetriever{Index: e.lexical}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
}

func (e *Engine) elapsedMs(start time.Time) float64 {
	return float64(e.now().Sub(start).Microseconds()) / 1000.0
}

func buildResult(prof *types.Professor, card *ScoreCard, pubs map[string]types.Publication, evidenceCap int) types.ProfessorResult {
	result := types.ProfessorResult{
		ProfessorID:       prof.ID,
		Name:              prof.Name,
		Department:        prof.Department,
		College:           prof.College,
		Interests:         prof.Interests,
		ImageURL:          prof.ImageURL,
		URL:               prof.ProfileURL,
		FinalScore:        card.FinalScore,
		AvgSimilarity:     card.AvgSimilarity,
		RecencyWeight:     card.RecencyWeight,
		ActivityBonus:     card.ActivityBonus,
		CitationImpact:    card.CitationImpact,
		NumMatchingPapers: card.NumMatchingPapers,
	}

	for _, m := range topPublications(card.Matched, evidenceCap) {
		pub := pubs[m.PaperID]
		result.TopPublications = append(result.TopPublications, types.PublicationSummary{
			PaperID:    m.PaperID,
			Title:      pub.Title,
			Year:       pub.Year,
			Similarity: m.Similarity,
			Citations:  m.Citations,
			Venue:      pub.Venue,
			URL:        pub.URL,
		})
	}
	return result
}

func applyRetrievalDefaults(cfg *types.EngineConfig) {
	defaults := types.DefaultEngineConfig()
	if cfg.Retrieval.EvidencePerProfessor <= 0 {
		cfg.Retrieval.EvidencePerProfessor = defaults.Retrieval.EvidencePerProfessor
	}
	if cfg.Retrieval.FanoutFactor <= 0 {
		cfg.Retrieval.FanoutFactor = defaults.Retrieval.FanoutFactor
	}
	if cfg.Weights == (types.ScoreWeights{}) {
		cfg.Weights = defaults.Weights
	}
}
