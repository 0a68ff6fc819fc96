// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"math"

	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// compose fills in FinalScore from the sub-scores.
//
// Semantic mode combines the weighted base (similarity, recency, citation —
// default weights sum to 0.9) with the activity bonus added on top, then
// clamps to [0,1]: the ceilings of the bonus terms allow a marginal
// overflow past 1.0 that the clamp absorbs.
//
// Lexical mode is the mean BM25 score, untouched — unbounded by design and
// independent of recency, activity, and citations.
func compose(card *ScoreCard, mode types.Mode, w types.ScoreWeights) {
	if mode == types.ModeLexical {
		card.FinalScore = card.AvgSimilarity
		return
	}

	score := w.Similarity*card.AvgSimilarity +
		w.Recency*card.RecencyWeight +
		w.Citation*card.CitationImpact +
		card.ActivityBonus

	card.FinalScore = math.Min(math.Max(score, 0), 1)
}
