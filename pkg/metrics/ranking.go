package metrics

import (
	"context"

	"github.com/agokrani/deepeval/pkg/core"
)

const defaultRankingP = 0.9

// RankingSimilarity compares the ideal ranking carried in context
// against the ranking the system produced in retrieval_context using a
// rank-biased overlap: prefix agreement at every cut-off depth, weighted
// geometrically by P so the top of the lists dominates. Identical
// rankings score 1, disjoint rankings 0. Deterministic, no model calls.
type RankingSimilarity struct {
	P        float64
	MinScore float64
}

func (r RankingSimilarity) Name() string {
	return "ranking-similarity"
}

func (r RankingSimilarity) Threshold() float64 {
	return threshold(r.MinScore)
}

func (r RankingSimilarity) RequiredFields() []core.Field {
	return []core.Field{core.FieldContext, core.FieldRetrievalContext}
}

func (r RankingSimilarity) Score(_ context.Context, tc core.TestCase) (float64, error) {
	return rankBiasedOverlap(tc.Context, tc.RetrievalContext, r.p()), nil
}

func (r RankingSimilarity) p() float64 {
	if r.P <= 0 || r.P >= 1 {
		return defaultRankingP
	}
	return r.P
}

// rankBiasedOverlap sums p-discounted prefix agreements up to the
// deeper list's length and extrapolates the final agreement over the
// residual weight mass, so two identical rankings reach 1 and disjoint
// rankings stay at 0. The result is clamped against float drift before
// it crosses the engine's [0,1] check.
func rankBiasedOverlap(ideal, actual []string, p float64) float64 {
	depth := len(ideal)
	if len(actual) > depth {
		depth = len(actual)
	}
	if depth == 0 {
		return 0
	}

	var sum float64
	var agreement float64
	weight := 1.0
	for d := 1; d <= depth; d++ {
		agreement = float64(intersectionSize(prefix(ideal, d), prefix(actual, d))) / float64(d)
		sum += weight * agreement
		weight *= p
	}
	score := (1-p)*sum + weight*agreement

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func prefix(list []string, d int) []string {
	if d > len(list) {
		d = len(list)
	}
	return list[:d]
}

func intersectionSize(a, b []string) int {
	set := make(map[string]int, len(a))
	for _, item := range a {
		set[item]++
	}
	n := 0
	for _, item := range b {
		if set[item] > 0 {
			set[item]--
			n++
		}
	}
	return n
}

// AssertRankingSimilarity grades a produced ranking against the ideal
// one and returns an error when the similarity is below minScore.
func AssertRankingSimilarity(ctx context.Context, ideal, actual []string, minScore float64) error {
	tc := core.TestCase{Context: ideal, RetrievalContext: actual}
	return core.AssertTest(ctx, tc, []core.Metric{RankingSimilarity{MinScore: minScore}})
}
