package core

import (
	"context"
	"math"
)

// DefaultThreshold is used when a metric does not configure its own
// minimum score.
const DefaultThreshold = 0.5

// Metric scores one aspect of a test case against a pass threshold.
// Implementations declare which test case fields they consume; the
// engine validates presence before Score is invoked. Score must return
// a value in [0,1]. Pass/fail is decided by the engine, not the metric.
//
// A Metric instance must not be shared between units that execute
// concurrently; each worker operates on its own instances.
type Metric interface {
	Name() string
	Threshold() float64
	RequiredFields() []Field
	Score(ctx context.Context, tc TestCase) (float64, error)
}

// MetricFunc adapts a bare scoring function into a Metric. Fields
// defaults to input plus actual_output. Any non-positive MinScore
// means unset and resolves to DefaultThreshold; a literal zero
// threshold would pass every non-errored measurement and is not
// representable.
type MetricFunc struct {
	MetricName string
	MinScore   float64
	Fields     []Field
	Fn         func(ctx context.Context, tc TestCase) (float64, error)
}

func (m MetricFunc) Name() string {
	return m.MetricName
}

func (m MetricFunc) Threshold() float64 {
	if m.MinScore <= 0 {
		return DefaultThreshold
	}
	return m.MinScore
}

func (m MetricFunc) RequiredFields() []Field {
	if len(m.Fields) == 0 {
		return []Field{FieldInput, FieldActualOutput}
	}
	return m.Fields
}

func (m MetricFunc) Score(ctx context.Context, tc TestCase) (float64, error) {
	return m.Fn(ctx, tc)
}

// Evaluate applies one metric to one test case. Required fields are
// checked first, so a missing field never reaches the scoring function
// and never downgrades to a zero score. The result is validated against
// [0,1] and folded into an immutable Measurement with
// success = score >= threshold; the boundary counts as a pass.
//
// On error the returned Measurement carries the error text and the
// error itself is a *ConfigurationError or *MetricImplementationError.
func Evaluate(ctx context.Context, metric Metric, tc TestCase) (Measurement, error) {
	consumed := metric.RequiredFields()
	threshold := metric.Threshold()

	if missing := tc.Missing(consumed); len(missing) > 0 {
		err := &ConfigurationError{Metric: metric.Name(), Missing: missing}
		return Measurement{
			MetricName:     metric.Name(),
			Threshold:      threshold,
			ConsumedFields: consumed,
			Error:          err.Error(),
		}, err
	}

	score, err := metric.Score(ctx, tc)
	if err != nil {
		implErr := &MetricImplementationError{Metric: metric.Name(), Err: err}
		return Measurement{
			MetricName:     metric.Name(),
			Threshold:      threshold,
			ConsumedFields: consumed,
			Error:          implErr.Error(),
		}, implErr
	}
	if score < 0 || score > 1 || math.IsNaN(score) {
		implErr := &MetricImplementationError{Metric: metric.Name(), Score: score}
		return Measurement{
			MetricName:     metric.Name(),
			Threshold:      threshold,
			ConsumedFields: consumed,
			Error:          implErr.Error(),
		}, implErr
	}

	return Measurement{
		MetricName:     metric.Name(),
		Score:          score,
		Threshold:      threshold,
		Success:        score >= threshold,
		ConsumedFields: consumed,
	}, nil
}

// Recorded wraps a metric and remembers its most recent measurement so
// callers can query the outcome after the fact.
type Recorded struct {
	Metric
	last *Measurement
}

func NewRecorded(metric Metric) *Recorded {
	return &Recorded{Metric: metric}
}

// Measure evaluates the wrapped metric and retains the measurement.
func (r *Recorded) Measure(ctx context.Context, tc TestCase) (Measurement, error) {
	measurement, err := Evaluate(ctx, r.Metric, tc)
	r.last = &measurement
	return measurement, err
}

// IsSuccessful reports the outcome of the last measurement. It returns
// ErrNotMeasured when Measure has not been called yet.
func (r *Recorded) IsSuccessful() (bool, error) {
	if r.last == nil {
		return false, ErrNotMeasured
	}
	return r.last.Success, nil
}
