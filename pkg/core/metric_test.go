package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/agokrani/deepeval/pkg/core"

	"github.com/stretchr/testify/require"
)

func fixedMetric(name string, score float64, minScore float64) core.MetricFunc {
	return core.MetricFunc{
		MetricName: name,
		MinScore:   minScore,
		Fields:     []core.Field{core.FieldInput, core.FieldActualOutput},
		Fn: func(_ context.Context, _ core.TestCase) (float64, error) {
			return score, nil
		},
	}
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	tc := core.TestCase{Input: "q", ActualOutput: "a"}

	m, err := core.Evaluate(context.Background(), fixedMetric("boundary", 0.5, 0.5), tc)
	require.NoError(t, err)
	require.True(t, m.Success, "score equal to threshold passes")

	m, err = core.Evaluate(context.Background(), fixedMetric("below", 0.4999, 0.5), tc)
	require.NoError(t, err)
	require.False(t, m.Success)
	require.Equal(t, 0.4999, m.Score)
}

func TestEvaluateValidationPrecedesScoring(t *testing.T) {
	invocations := 0
	metric := core.MetricFunc{
		MetricName: "needs-context",
		Fields:     []core.Field{core.FieldActualOutput, core.FieldContext},
		Fn: func(_ context.Context, _ core.TestCase) (float64, error) {
			invocations++
			return 1, nil
		},
	}

	tc := core.TestCase{Input: "q", ActualOutput: "a"}
	m, err := core.Evaluate(context.Background(), metric, tc)

	var confErr *core.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	require.Equal(t, []core.Field{core.FieldContext}, confErr.Missing)
	require.True(t, m.Errored())
	require.Zero(t, invocations, "scoring function must not run on validation failure")
}

func TestEvaluateOutOfRangeScore(t *testing.T) {
	tc := core.TestCase{Input: "q", ActualOutput: "a"}

	m, err := core.Evaluate(context.Background(), fixedMetric("hot", 1.5, 0.5), tc)
	var implErr *core.MetricImplementationError
	require.ErrorAs(t, err, &implErr)
	require.Equal(t, 1.5, implErr.Score)
	require.True(t, m.Errored())
	require.False(t, m.Success)
}

func TestEvaluateScoringFailure(t *testing.T) {
	boom := errors.New("model unreachable")
	metric := core.MetricFunc{
		MetricName: "judge",
		Fields:     []core.Field{core.FieldInput, core.FieldActualOutput},
		Fn: func(_ context.Context, _ core.TestCase) (float64, error) {
			return 0, boom
		},
	}

	tc := core.TestCase{Input: "q", ActualOutput: "a"}
	m, err := core.Evaluate(context.Background(), metric, tc)

	var implErr *core.MetricImplementationError
	require.ErrorAs(t, err, &implErr)
	require.ErrorIs(t, err, boom)
	require.True(t, m.Errored())
}

func TestRecordedIsSuccessful(t *testing.T) {
	recorded := core.NewRecorded(fixedMetric("fixed", 0.9, 0.7))

	_, err := recorded.IsSuccessful()
	require.ErrorIs(t, err, core.ErrNotMeasured)

	tc := core.TestCase{Input: "q", ActualOutput: "a"}
	m, err := recorded.Measure(context.Background(), tc)
	require.NoError(t, err)
	require.True(t, m.Success)

	ok, err := recorded.IsSuccessful()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMetricFuncDefaults(t *testing.T) {
	metric := core.MetricFunc{MetricName: "plain"}
	require.Equal(t, core.DefaultThreshold, metric.Threshold())
	require.Equal(t, []core.Field{core.FieldInput, core.FieldActualOutput}, metric.RequiredFields())

	negative := core.MetricFunc{MetricName: "unset", MinScore: -1}
	require.Equal(t, core.DefaultThreshold, negative.Threshold(), "non-positive minimums resolve to the default")
}

func TestTestCaseHas(t *testing.T) {
	tc := core.TestCase{
		Input:        "q",
		ActualOutput: "a",
		Context:      []string{"snippet"},
	}
	require.True(t, tc.Has(core.FieldInput))
	require.True(t, tc.Has(core.FieldContext))
	require.False(t, tc.Has(core.FieldExpectedOutput))
	require.False(t, tc.Has(core.FieldRetrievalContext))
	require.Equal(t, []core.Field{core.FieldRetrievalContext},
		tc.Missing([]core.Field{core.FieldInput, core.FieldRetrievalContext}))
}
