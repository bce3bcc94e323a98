package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotMeasured is returned when a metric outcome is queried before
// any measurement has been taken.
var ErrNotMeasured = errors.New("metric has not been measured yet")

// ConfigurationError reports test case fields a metric requires that
// are absent. It is raised at validation time, before the scoring
// function is ever invoked, and is never retried.
type ConfigurationError struct {
	Metric  string
	Missing []Field
}

func (e *ConfigurationError) Error() string {
	names := make([]string, len(e.Missing))
	for i, field := range e.Missing {
		names[i] = string(field)
	}
	return fmt.Sprintf("metric %q requires missing test case fields: %s", e.Metric, strings.Join(names, ", "))
}

// MetricImplementationError reports a scoring function that returned a
// value outside [0,1] or failed outright. External scoring failures
// (network, model calls) surface through the wrapped error; the engine
// never retries them.
type MetricImplementationError struct {
	Metric string
	Score  float64
	Err    error
}

func (e *MetricImplementationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("metric %q scoring failed: %v", e.Metric, e.Err)
	}
	return fmt.Sprintf("metric %q returned out-of-range score %g", e.Metric, e.Score)
}

func (e *MetricImplementationError) Unwrap() error {
	return e.Err
}
