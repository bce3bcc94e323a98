package metrics

import (
	"context"
	"testing"

	"github.com/agokrani/deepeval/pkg/core"
	"github.com/agokrani/deepeval/pkg/model"

	"github.com/stretchr/testify/require"
)

func TestExactMatch(t *testing.T) {
	metric := ExactMatch{NormalizeWhitespace: true}
	tc := core.TestCase{
		Input:          "capital of France?",
		ActualOutput:   "  Paris ",
		ExpectedOutput: "paris",
	}
	score, err := metric.Score(context.Background(), tc)
	require.NoError(t, err)
	require.Equal(t, 1.0, score)

	tc.ActualOutput = "Lyon"
	score, err = metric.Score(context.Background(), tc)
	require.NoError(t, err)
	require.Equal(t, 0.0, score)
}

func TestExactMatchCaseSensitive(t *testing.T) {
	metric := ExactMatch{CaseSensitive: true}
	tc := core.TestCase{ActualOutput: "Paris", ExpectedOutput: "paris"}
	score, err := metric.Score(context.Background(), tc)
	require.NoError(t, err)
	require.Equal(t, 0.0, score)
}

func TestAnswerContains(t *testing.T) {
	metric := AnswerContains{NormalizeWhitespace: true}
	tc := core.TestCase{
		ActualOutput:   "The capital of France is Paris.",
		ExpectedOutput: "paris",
	}
	score, err := metric.Score(context.Background(), tc)
	require.NoError(t, err)
	require.Equal(t, 1.0, score)
}

func TestFactualConsistencyOverlap(t *testing.T) {
	metric := FactualConsistencyOverlap{}
	tc := core.TestCase{
		Input:        "What if these shoes don't fit?",
		ActualOutput: "We offer a 30-day full refund at no extra cost.",
		Context:      []string{"All customers are eligible for a 30 day full refund at no extra cost."},
	}

	score, err := metric.Score(context.Background(), tc)
	require.NoError(t, err)
	// 9 of the 11 output tokens appear in the context ("we" and
	// "offer" do not).
	require.InDelta(t, 9.0/11.0, score, 1e-12)

	m, err := core.Evaluate(context.Background(), metric, tc)
	require.NoError(t, err)
	require.True(t, m.Success, "overlap clears the default threshold")
}

func TestOverlapEmptyOutput(t *testing.T) {
	metric := FaithfulnessOverlap{}
	tc := core.TestCase{
		ActualOutput:     "...",
		RetrievalContext: []string{"anything"},
	}
	score, err := metric.Score(context.Background(), tc)
	require.NoError(t, err)
	require.Equal(t, 0.0, score)
}

func TestContextualRecallOverlap(t *testing.T) {
	metric := ContextualRecallOverlap{}
	tc := core.TestCase{
		ExpectedOutput:   "full refund within 30 days",
		RetrievalContext: []string{"Customers get a full refund within 30 days of purchase."},
	}
	score, err := metric.Score(context.Background(), tc)
	require.NoError(t, err)
	require.Equal(t, 1.0, score)
}

func TestExtractScore(t *testing.T) {
	score, err := extractScore("The answer is well supported.\nSCORE: 9")
	require.NoError(t, err)
	require.Equal(t, 9, score)

	score, err = extractScore("SCORE: 0")
	require.NoError(t, err)
	require.Equal(t, 0, score)

	_, err = extractScore("I cannot grade this.")
	require.Error(t, err)

	_, err = extractScore("SCORE: 11")
	require.Error(t, err)
}

func TestJudgeScoresFromModelVerdict(t *testing.T) {
	judge := NewFactualConsistency(model.Mock{ResponseText: "Supported by the context.\nSCORE: 9"}, 0.7)
	tc := core.TestCase{
		Input:        "What if these shoes don't fit?",
		ActualOutput: "We offer a 30-day full refund at no extra cost.",
		Context:      []string{"All customers are eligible for a 30 day full refund at no extra cost."},
	}

	m, err := core.Evaluate(context.Background(), judge, tc)
	require.NoError(t, err)
	require.Equal(t, 0.9, m.Score)
	require.True(t, m.Success)

	strict := NewFactualConsistency(model.Mock{ResponseText: "SCORE: 9"}, 0.95)
	m, err = core.Evaluate(context.Background(), strict, tc)
	require.NoError(t, err)
	require.False(t, m.Success, "same verdict fails under a stricter threshold")
}

func TestJudgeWithoutVerdict(t *testing.T) {
	judge := NewAnswerRelevancy(model.Mock{ResponseText: "I refuse to answer."}, 0.5)
	tc := core.TestCase{Input: "q", ActualOutput: "a"}

	_, err := core.Evaluate(context.Background(), judge, tc)
	var implErr *core.MetricImplementationError
	require.ErrorAs(t, err, &implErr)
}

func TestJudgeMissingFields(t *testing.T) {
	judge := NewFaithfulness(model.Mock{ResponseText: "SCORE: 10"}, 0.5)
	tc := core.TestCase{Input: "q", ActualOutput: "a"}

	_, err := core.Evaluate(context.Background(), judge, tc)
	var confErr *core.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	require.Equal(t, []core.Field{core.FieldRetrievalContext}, confErr.Missing)
}

func TestRAGASComposite(t *testing.T) {
	ragas := NewRAGAS(model.Mock{ResponseText: "SCORE: 8"}, 0.7)
	tc := core.TestCase{
		Input:            "What if these shoes don't fit?",
		ActualOutput:     "We offer a 30-day full refund at no extra cost.",
		ExpectedOutput:   "You get a full refund within 30 days.",
		RetrievalContext: []string{"All customers are eligible for a 30 day full refund at no extra cost."},
	}

	m, err := core.Evaluate(context.Background(), ragas, tc)
	require.NoError(t, err)
	require.Equal(t, "ragas", m.MetricName)
	require.Equal(t, 0.8, m.Score)
	require.True(t, m.Success)
}

func TestRAGASZeroSubVerdict(t *testing.T) {
	ragas := NewRAGAS(model.Mock{ResponseText: "SCORE: 0"}, 0.5)
	tc := core.TestCase{
		Input:            "q",
		ActualOutput:     "a",
		ExpectedOutput:   "e",
		RetrievalContext: []string{"passage"},
	}

	m, err := core.Evaluate(context.Background(), ragas, tc)
	require.NoError(t, err)
	require.Equal(t, 0.0, m.Score)
	require.False(t, m.Success)
}
