package core

import (
	"context"
	"fmt"
	"strings"
)

// RunTest evaluates every metric against the test case and returns the
// measurements without failing, for direct inspection. Metric errors
// are carried inside the measurements.
func RunTest(ctx context.Context, tc TestCase, metrics []Metric) ([]Measurement, error) {
	runner := Runner{Workers: 1}
	report, err := runner.Run(ctx, []Unit{{Case: tc, Metrics: metrics}})
	if err != nil {
		return nil, err
	}
	return report.Results[0].Measurements, nil
}

// AssertTest evaluates every metric against the test case and returns
// an error naming each metric that did not pass, or nil when all did.
func AssertTest(ctx context.Context, tc TestCase, metrics []Metric) error {
	measurements, err := RunTest(ctx, tc, metrics)
	if err != nil {
		return err
	}

	var failing []string
	for _, m := range measurements {
		switch {
		case m.Errored():
			failing = append(failing, fmt.Sprintf("%s (%s)", m.MetricName, m.Error))
		case !m.Success:
			failing = append(failing, fmt.Sprintf("%s (score %.4f below threshold %.4f)", m.MetricName, m.Score, m.Threshold))
		}
	}
	if len(failing) > 0 {
		return fmt.Errorf("test case failed %d of %d metrics: %s", len(failing), len(measurements), strings.Join(failing, "; "))
	}
	return nil
}
