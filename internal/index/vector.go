// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index holds the read-only retrieval artifacts: the dense
// embedding index used by semantic ranking and the in-memory BM25 index
// used by lexical ranking. Both are built or loaded once at startup and
// never mutated afterwards, so concurrent searches need no locking.
package index

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// Errors returned by vector index operations.
var (
	ErrIndexNotFound      = errors.New("embedding index not found")
	ErrUnsupportedVersion = errors.New("unsupported index version")
)

// CurrentVectorVersion is the index format version. Increment on breaking
// changes to the gob layout.
const CurrentVectorVersion = 1

// scanChunk is the number of embeddings scored between cancellation checks.
const scanChunk = 256

// VectorIndex maps paper IDs to dense embeddings produced by a single
// model. It is persisted as a gob artifact and handed to the engine
// read-only.
type VectorIndex struct {
	Version    int
	ModelName  string
	Dimensions int
	CreatedAt  time.Time
	PaperCount int

	Embeddings map[string][]float32
}

// NewVectorIndex creates an empty index for the given model.
func NewVectorIndex(modelName string, dimensions int) *VectorIndex {
	return &VectorIndex{
		Version:    CurrentVectorVersion,
		ModelName:  modelName,
		Dimensions: dimensions,
		CreatedAt:  time.Now(),
		Embeddings: make(map[string][]float32),
	}
}

// Add stores a paper embedding, rejecting dimension mismatches.
func (ix *VectorIndex) Add(paperID string, embedding []float32) error {
	if len(embedding) != ix.Dimensions {
		return fmt.Errorf("embedding dimension mismatch for %s: got %d, want %d",
			paperID, len(embedding), ix.Dimensions)
	}
	ix.Embeddings[paperID] = embedding
	ix.PaperCount = len(ix.Embeddings)
	return nil
}

// Len returns the number of indexed papers.
func (ix *VectorIndex) Len() int { return len(ix.Embeddings) }

// Has reports whether a paper is indexed.
func (ix *VectorIndex) Has(paperID string) bool {
	_, ok := ix.Embeddings[paperID]
	return ok
}

// Save writes the index to path via a temp file and rename, so readers
// never observe a partial artifact.
func (ix *VectorIndex) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tempPath := path + ".tmp"
	f, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(ix); err != nil {
		f.Close()
		os.Remove(tempPath)
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// LoadVector reads the embedding index from path.
func LoadVector(path string) (*VectorIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrIndexNotFound
		}
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	defer f.Close()

	var ix VectorIndex
	if err := gob.NewDecoder(f).Decode(&ix); err != nil {
		return nil, fmt.Errorf("decoding index: %w", err)
	}
	if ix.Version != CurrentVectorVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, ix.Version, CurrentVectorVersion)
	}
	return &ix, nil
}

// CosineSimilarity computes the cosine similarity of two vectors, in
// [-1,1]. Mismatched or empty vectors score zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// Search returns the n most similar papers to the query embedding, scored
// by raw cosine similarity, sorted by score descending with paper ID
// ascending as the tie-break. A nil pool scans sequentially; otherwise the
// scan is sharded across pool workers. Both paths produce identical
// ordering. A query of the wrong dimensionality returns no hits.
func (ix *VectorIndex) Search(ctx context.Context, query []float32, n int, pool *ants.Pool) ([]types.RetrievalHit, error) {
	if n <= 0 || len(query) != ix.Dimensions || len(ix.Embeddings) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(ix.Embeddings))
	for id := range ix.Embeddings {
		ids = append(ids, id)
	}

	var (
		hits []types.RetrievalHit
		err  error
	)
	if pool == nil {
		hits, err = ix.scan(ctx, query, ids)
	} else {
		hits, err = ix.scanSharded(ctx, query, ids, pool)
	}
	if err != nil {
		return nil, err
	}

	sortHits(hits)
	if len(hits) > n {
		hits = hits[:n]
	}
	return hits, nil
}

func (ix *VectorIndex) scan(ctx context.Context, query []float32, ids []string) ([]types.RetrievalHit, error) {
	hits := make([]types.RetrievalHit, 0, len(ids))
	for i, id := range ids {
		if i%scanChunk == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		hits = append(hits, types.RetrievalHit{
			PaperID: id,
			Score:   CosineSimilarity(query, ix.Embeddings[id]),
		})
	}
	return hits, nil
}

func (ix *VectorIndex) scanSharded(ctx context.Context, query []float32, ids []string, pool *ants.Pool) ([]types.RetrievalHit, error) {
	workers := pool.Cap()
	if workers < 1 {
		workers = 1
	}
	shardSize := (len(ids) + workers - 1) / workers

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		hits    []types.RetrievalHit
		scanErr error
	)

	for start := 0; start < len(ids); start += shardSize {
		end := start + shardSize
		if end > len(ids) {
			end = len(ids)
		}
		shard := ids[start:end]

		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			part, err := ix.scan(ctx, query, shard)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				scanErr = err
				return
			}
			hits = append(hits, part...)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submitting scan shard: %w", err)
		}
	}

	wg.Wait()
	if scanErr != nil {
		return nil, scanErr
	}
	return hits, nil
}

// sortHits orders hits by score descending, paper ID ascending. The
// secondary key makes retrieval ordering total and reproducible.
func sortHits(hits []types.RetrievalHit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].PaperID < hits[j].PaperID
	})
}
