// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import "sort"

// Bounds on the requested professor count. Out-of-range values clamp
// rather than error.
const (
	MinTopK = 1
	MaxTopK = 20
)

// clampTopK bounds k to [MinTopK, MaxTopK].
func clampTopK(k int) int {
	if k < MinTopK {
		return MinTopK
	}
	if k > MaxTopK {
		return MaxTopK
	}
	return k
}

// selectTopK orders score cards by final score descending, matched-paper
// count descending, professor ID ascending, and truncates to topK. The
// three-level key is a total order, so equal inputs always produce the
// same output sequence.
func selectTopK(cards map[int64]*ScoreCard, topK int) []*ScoreCard {
	ordered := make([]*ScoreCard, 0, len(cards))
	for _, card := range cards {
		ordered = append(ordered, card)
	}

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if a.NumMatchingPapers != b.NumMatchingPapers {
			return a.NumMatchingPapers > b.NumMatchingPapers
		}
		return a.ProfessorID < b.ProfessorID
	})

	if len(ordered) > topK {
		ordered = ordered[:topK]
	}
	return ordered
}

// topPublications orders a professor's matched publications by similarity
// descending, citations descending, paper ID ascending, and truncates to
// cap. The input slice is not modified.
func topPublications(matched []MatchedPublication, cap int) []MatchedPublication {
	if cap <= 0 {
		return nil
	}

	ordered := make([]MatchedPublication, len(matched))
	copy(ordered, matched)

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if a.Citations != b.Citations {
			return a.Citations > b.Citations
		}
		return a.PaperID < b.PaperID
	})

	if len(ordered) > cap {
		ordered = ordered[:cap]
	}
	return ordered
}
