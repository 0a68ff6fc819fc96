// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// Okapi BM25 parameters, standard values.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

type lexicalDoc struct {
	paperID string
	length  int
}

type posting struct {
	doc int // index into docs
	tf  int // term frequency in the document
}

// LexicalIndex is an in-memory inverted index over publication title and
// abstract text, scored with Okapi BM25. Built once at startup from the
// corpus and read-only afterwards.
type LexicalIndex struct {
	docs     map[string][]posting
	docList  []lexicalDoc
	avgLen   float64
	docCount int
}

// BuildLexical indexes the given publications. Publications without a title
// are skipped, matching the corpus ingestion rules.
func BuildLexical(pubs []types.Publication) *LexicalIndex {
	ix := &LexicalIndex{docs: make(map[string][]posting)}

	var totalLen int
	for _, pub := range pubs {
		if pub.Title == "" {
			continue
		}

		tokens := Tokenize(pub.Title + " " + pub.Abstract)
		doc := len(ix.docList)
		ix.docList = append(ix.docList, lexicalDoc{paperID: pub.PaperID, length: len(tokens)})
		totalLen += len(tokens)

		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}
		for term, tf := range counts {
			ix.docs[term] = append(ix.docs[term], posting{doc: doc, tf: tf})
		}
	}

	ix.docCount = len(ix.docList)
	if ix.docCount > 0 {
		ix.avgLen = float64(totalLen) / float64(ix.docCount)
	}
	return ix
}

// Len returns the number of indexed documents.
func (ix *LexicalIndex) Len() int { return ix.docCount }

// Search scores the query tokens against the index and returns up to n
// hits with positive BM25 scores, sorted by score descending with paper ID
// ascending as the tie-break. Empty token lists and n <= 0 return no hits.
func (ix *LexicalIndex) Search(ctx context.Context, tokens []string, n int) ([]types.RetrievalHit, error) {
	if n <= 0 || len(tokens) == 0 || ix.docCount == 0 {
		return nil, nil
	}

	scores := make(map[int]float64)
	for _, term := range tokens {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		postings, ok := ix.docs[term]
		if !ok {
			continue
		}
		idf := bm25IDF(ix.docCount, len(postings))
		for _, p := range postings {
			scores[p.doc] += idf * ix.bm25TF(p)
		}
	}

	hits := make([]types.RetrievalHit, 0, len(scores))
	for doc, score := range scores {
		if score <= 0 {
			continue
		}
		hits = append(hits, types.RetrievalHit{PaperID: ix.docList[doc].paperID, Score: score})
	}

	sortHits(hits)
	if len(hits) > n {
		hits = hits[:n]
	}
	return hits, nil
}

// bm25IDF is the Okapi inverse document frequency with the +1 shift that
// keeps it non-negative for very common terms.
func bm25IDF(totalDocs, docFreq int) float64 {
	return math.Log((float64(totalDocs)-float64(docFreq)+0.5)/(float64(docFreq)+0.5) + 1)
}

func (ix *LexicalIndex) bm25TF(p posting) float64 {
	tf := float64(p.tf)
	lengthNorm := 1 - bm25B + bm25B*float64(ix.docList[p.doc].length)/ix.avgLen
	return tf * (bm25K1 + 1) / (tf + bm25K1*lengthNorm)
}

// Tokenize lower-cases text and splits it into alphanumeric runs, the same
// tokenization applied to indexed documents and to queries.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
