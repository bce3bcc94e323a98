package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/agokrani/deepeval/pkg/core"

// Unit pairs a test case with the metric instances that score it. The
// metrics inside a unit must not be shared with any other unit that can
// run concurrently; the test case itself is read-only and may be.
type Unit struct {
	Case    TestCase
	Metrics []Metric
}

// Runner executes units across a bounded worker pool of Workers
// goroutines (default 1; 1 yields fully sequential execution). Results
// are keyed by input index, so the report order matches the input order
// no matter how many workers run or in which order they finish, and the
// verdict for a given input is identical at any worker count.
type Runner struct {
	Workers  int
	Limiter  RateLimiter
	Progress func(completed, total int)
}

// Run evaluates every unit and returns the finalized report. Errors in
// individual units are isolated: they mark that unit errored and the
// run continues to completion. Run itself fails only when the harness
// cannot finish scheduling, such as context cancellation.
func (r *Runner) Run(ctx context.Context, units []Unit) (Report, error) {
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(units) && len(units) > 0 {
		workers = len(units)
	}

	started := time.Now()
	results := make([]UnitResult, len(units))
	indexCh := make(chan int)
	tracer := otel.Tracer(tracerName)

	var completed atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range indexCh {
				results[idx] = r.evaluateUnit(ctx, tracer, units[idx])
				if r.Progress != nil {
					r.Progress(int(completed.Add(1)), len(units))
				}
			}
		}()
	}

	var runErr error
feed:
	for idx := range units {
		if err := ctx.Err(); err != nil {
			runErr = err
			break feed
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break feed
		case indexCh <- idx:
		}
	}
	close(indexCh)
	wg.Wait()

	if runErr != nil {
		return Report{}, runErr
	}
	return finalizeReport(results, started, time.Now()), nil
}

// RunCases maps ordered test cases into units, constructing a fresh
// metric set per case so no metric instance is shared across workers.
func (r *Runner) RunCases(ctx context.Context, cases []TestCase, metrics func() []Metric) (Report, error) {
	units := make([]Unit, len(cases))
	for i, tc := range cases {
		units[i] = Unit{Case: tc, Metrics: metrics()}
	}
	return r.Run(ctx, units)
}

func (r *Runner) evaluateUnit(ctx context.Context, tracer trace.Tracer, unit Unit) UnitResult {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "evaluate_case")
	defer span.End()

	result := UnitResult{Case: unit.Case, Status: StatusRunning}
	errored := false
	allPassed := true

	for _, metric := range unit.Metrics {
		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx); err != nil {
				implErr := &MetricImplementationError{Metric: metric.Name(), Err: err}
				result.Measurements = append(result.Measurements, Measurement{
					MetricName: metric.Name(),
					Threshold:  metric.Threshold(),
					Error:      implErr.Error(),
				})
				errored = true
				if result.Error == "" {
					result.Error = implErr.Error()
				}
				continue
			}
		}

		mctx, mspan := tracer.Start(ctx, "measure",
			trace.WithAttributes(attribute.String("metric.name", metric.Name())))
		measurement, err := Evaluate(mctx, metric, unit.Case)
		mspan.SetAttributes(
			attribute.Float64("metric.score", measurement.Score),
			attribute.Bool("metric.success", measurement.Success),
		)
		if err != nil {
			mspan.RecordError(err)
		}
		mspan.End()

		result.Measurements = append(result.Measurements, measurement)
		if err != nil {
			errored = true
			if result.Error == "" {
				result.Error = err.Error()
			}
			continue
		}
		if !measurement.Success {
			allPassed = false
		}
	}

	switch {
	case errored:
		result.Status = StatusErrored
	case allPassed:
		result.Status = StatusSucceeded
	default:
		result.Status = StatusFailed
	}
	result.Duration = time.Since(start)
	return result
}
