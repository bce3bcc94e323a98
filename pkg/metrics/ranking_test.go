package metrics

import (
	"context"
	"testing"

	"github.com/agokrani/deepeval/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestRankingSimilarityBounds(t *testing.T) {
	identical := rankBiasedOverlap([]string{"a", "b", "c"}, []string{"a", "b", "c"}, defaultRankingP)
	require.InDelta(t, 1.0, identical, 1e-12)

	disjoint := rankBiasedOverlap([]string{"a", "b"}, []string{"x", "y"}, defaultRankingP)
	require.Equal(t, 0.0, disjoint)

	require.Equal(t, 0.0, rankBiasedOverlap(nil, nil, defaultRankingP))
}

func TestRankingSimilarityOrderSensitivity(t *testing.T) {
	ideal := []string{"a", "b"}

	// Same members in reversed order beat a list that only shares one
	// member.
	reversed := rankBiasedOverlap(ideal, []string{"b", "a"}, defaultRankingP)
	halfShared := rankBiasedOverlap(ideal, []string{"b", "c"}, defaultRankingP)
	require.Greater(t, reversed, halfShared)
	require.InDelta(t, 0.9, reversed, 1e-9)
	require.InDelta(t, 0.45, halfShared, 1e-9)
}

func TestRankingSimilarityTopWeighting(t *testing.T) {
	ideal := []string{"a", "b", "c"}

	// Swapping the tail hurts less than swapping the head.
	tailSwap := rankBiasedOverlap(ideal, []string{"a", "c", "b"}, defaultRankingP)
	headSwap := rankBiasedOverlap(ideal, []string{"b", "a", "c"}, defaultRankingP)
	require.Greater(t, tailSwap, headSwap)
}

func TestRankingSimilarityEvaluate(t *testing.T) {
	tc := core.TestCase{
		Context:          []string{"a", "b"},
		RetrievalContext: []string{"b", "a"},
	}

	m, err := core.Evaluate(context.Background(), RankingSimilarity{MinScore: 0.5}, tc)
	require.NoError(t, err)
	require.True(t, m.Success)
	require.InDelta(t, 0.9, m.Score, 1e-9)

	missing := core.TestCase{Context: []string{"a", "b"}}
	_, err = core.Evaluate(context.Background(), RankingSimilarity{}, missing)
	var confErr *core.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	require.Equal(t, []core.Field{core.FieldRetrievalContext}, confErr.Missing)
}

func TestAssertRankingSimilarity(t *testing.T) {
	ideal := []string{"a", "b"}

	require.NoError(t, AssertRankingSimilarity(context.Background(), ideal, []string{"b", "c"}, 0.4))

	err := AssertRankingSimilarity(context.Background(), ideal, []string{"b", "c"}, 0.5)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ranking-similarity")
}
