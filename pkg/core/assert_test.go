package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/agokrani/deepeval/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestRunTestReturnsMeasurements(t *testing.T) {
	tc := core.TestCase{Input: "q", ActualOutput: "a"}
	metrics := []core.Metric{
		fixedMetric("high", 0.9, 0.5),
		fixedMetric("low", 0.2, 0.5),
	}

	measurements, err := core.RunTest(context.Background(), tc, metrics)
	require.NoError(t, err)
	require.Len(t, measurements, 2)
	require.True(t, measurements[0].Success)
	require.False(t, measurements[1].Success)
}

func TestRunTestCarriesMetricErrors(t *testing.T) {
	tc := core.TestCase{Input: "q", ActualOutput: "a"}
	broken := core.MetricFunc{
		MetricName: "broken",
		Fields:     []core.Field{core.FieldInput, core.FieldActualOutput},
		Fn: func(_ context.Context, _ core.TestCase) (float64, error) {
			return 0, errors.New("no verdict")
		},
	}

	measurements, err := core.RunTest(context.Background(), tc, []core.Metric{broken})
	require.NoError(t, err, "metric errors ride inside the measurements")
	require.Len(t, measurements, 1)
	require.True(t, measurements[0].Errored())
}

func TestAssertTestPass(t *testing.T) {
	tc := core.TestCase{Input: "q", ActualOutput: "a"}
	err := core.AssertTest(context.Background(), tc, []core.Metric{
		fixedMetric("relevance", 0.9, 0.7),
		fixedMetric("consistency", 0.8, 0.5),
	})
	require.NoError(t, err)
}

func TestAssertTestFailureNamesMetrics(t *testing.T) {
	tc := core.TestCase{Input: "q", ActualOutput: "a"}
	err := core.AssertTest(context.Background(), tc, []core.Metric{
		fixedMetric("relevance", 0.9, 0.95),
		fixedMetric("consistency", 0.8, 0.5),
		fixedMetric("recall", 0.1, 0.5),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed 2 of 3 metrics")
	require.Contains(t, err.Error(), "relevance")
	require.Contains(t, err.Error(), "recall")
	require.NotContains(t, err.Error(), "consistency (")
}

// The storefront refund scenario: one answer judged against the same
// rubric at two strictness levels.
func TestAssertTestThresholdSensitivity(t *testing.T) {
	tc := core.TestCase{
		Input:        "What if these shoes don't fit?",
		ActualOutput: "We offer a 30-day full refund at no extra cost.",
		Context:      []string{"All customers are eligible for a 30 day full refund at no extra cost."},
	}

	judged := func(minScore float64) core.MetricFunc {
		return core.MetricFunc{
			MetricName: "factual-consistency",
			MinScore:   minScore,
			Fields:     []core.Field{core.FieldActualOutput, core.FieldContext},
			Fn: func(_ context.Context, _ core.TestCase) (float64, error) {
				return 0.9, nil
			},
		}
	}

	require.NoError(t, core.AssertTest(context.Background(), tc, []core.Metric{judged(0.7)}))

	err := core.AssertTest(context.Background(), tc, []core.Metric{judged(0.95)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "score 0.9000 below threshold 0.9500")
}
