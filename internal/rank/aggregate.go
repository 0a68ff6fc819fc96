// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"math"

	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

// unknownYearWeight is the neutral recency weight for publications without
// a year, so missing metadata is not a penalty.
const unknownYearWeight = 0.5

// MatchedPublication is one retrieved publication attributed to a
// professor, carrying what evidence selection needs.
type MatchedPublication struct {
	PaperID    string
	Similarity float64
	Year       int
	Citations  int64
}

// ScoreCard is the ephemeral per-professor bundle of sub-scores for one
// ranking request.
type ScoreCard struct {
	ProfessorID int64

	// AvgSimilarity is the mean similarity across matched publications —
	// the mean, not the max, so breadth of relevant work counts.
	AvgSimilarity float64

	// RecencyWeight, ActivityBonus, and CitationImpact are the semantic
	// sub-scores, each in [0,1] (ActivityBonus capped below its configured
	// ceiling). All zero in lexical mode.
	RecencyWeight  float64
	ActivityBonus  float64
	CitationImpact float64

	FinalScore float64

	NumMatchingPapers int

	Matched []MatchedPublication
}

// aggregate groups retrieval hits by owning professor and computes the
// per-professor sub-scores. Only professors with at least one hit appear.
// Co-authored papers contribute to every linked professor; within one
// professor a paper counts once.
func aggregate(
	hits []types.RetrievalHit,
	links map[string][]types.AuthorLink,
	pubs map[string]types.Publication,
	mode types.Mode,
	w types.ScoreWeights,
	currentYear int,
) map[int64]*ScoreCard {
	cards := make(map[int64]*ScoreCard)

	for _, hit := range hits {
		pub, ok := pubs[hit.PaperID]
		if !ok {
			// Indexed paper missing from the corpus tables; skip rather
			// than fail the whole request.
			continue
		}

		for _, link := range links[hit.PaperID] {
			card := cards[link.ProfessorID]
			if card == nil {
				card = &ScoreCard{ProfessorID: link.ProfessorID}
				cards[link.ProfessorID] = card
			}

			if hasPaper(card.Matched, hit.PaperID) {
				continue
			}
			card.Matched = append(card.Matched, MatchedPublication{
				PaperID:    hit.PaperID,
				Similarity: hit.Score,
				Year:       pub.Year,
				Citations:  pub.CitationCount,
			})
		}
	}

	for _, card := range cards {
		card.NumMatchingPapers = len(card.Matched)
		card.AvgSimilarity = meanSimilarity(card.Matched)

		if mode == types.ModeSemantic {
			card.RecencyWeight = meanRecency(card.Matched, w, currentYear)
			card.ActivityBonus = activityBonus(card.NumMatchingPapers, w)
			card.CitationImpact = citationImpact(card.Matched, w)
		}
	}

	return cards
}

func hasPaper(matched []MatchedPublication, paperID string) bool {
	for _, m := range matched {
		if m.PaperID == paperID {
			return true
		}
	}
	return false
}

func meanSimilarity(matched []MatchedPublication) float64 {
	if len(matched) == 0 {
		return 0
	}
	var sum float64
	for _, m := range matched {
		sum += m.Similarity
	}
	return sum / float64(len(matched))
}

// meanRecency averages the exponential age decay over matched
// publications. The decay rate derives from the configured half-life:
// lambda = ln2 / halfLife, so a paper exactly one half-life old weighs 0.5.
func meanRecency(matched []MatchedPublication, w types.ScoreWeights, currentYear int) float64 {
	if len(matched) == 0 {
		return 0
	}

	lambda := math.Ln2 / w.RecencyHalfLifeYears
	var sum float64
	for _, m := range matched {
		sum += recencyWeight(m.Year, currentYear, lambda)
	}
	return sum / float64(len(matched))
}

func recencyWeight(year, currentYear int, lambda float64) float64 {
	if year <= 0 {
		return unknownYearWeight
	}
	age := currentYear - year
	if age < 0 {
		// In-press entries dated next year count as current.
		age = 0
	}
	return math.Exp(-lambda * float64(age))
}

// activityBonus is a saturating per-paper bonus: min(cap, perPaper * n).
// Monotonic in n, so more matched work never lowers the score.
func activityBonus(numPapers int, w types.ScoreWeights) float64 {
	return math.Min(w.ActivityCap, w.ActivityPerPaper*float64(numPapers))
}

// citationImpact log-compresses the mean citation count and normalizes it
// against the corpus citation cap, clamped to [0,1]. Heavy-tailed citation
// distributions end up comparable instead of dominating.
func citationImpact(matched []MatchedPublication, w types.ScoreWeights) float64 {
	if len(matched) == 0 || w.CitationCap <= 0 {
		return 0
	}

	var sum float64
	for _, m := range matched {
		if m.Citations > 0 {
			sum += float64(m.Citations)
		}
	}
	mean := sum / float64(len(matched))

	impact := math.Log10(1+mean) / math.Log10(1+w.CitationCap)
	return math.Min(impact, 1.0)
}
