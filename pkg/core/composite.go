package core

import (
	"context"
	"errors"
	"fmt"
)

// Composite aggregates several sub-metrics into a single measurement
// whose score is the harmonic mean of the sub-scores. The composite
// threshold applies to the aggregate only; sub-metric thresholds play
// no part in the reduction.
type Composite struct {
	CompositeName string
	MinScore      float64
	Members       []Metric
}

func NewComposite(name string, threshold float64, members ...Metric) *Composite {
	return &Composite{
		CompositeName: name,
		MinScore:      threshold,
		Members:       members,
	}
}

func (c *Composite) Name() string {
	return c.CompositeName
}

func (c *Composite) Threshold() float64 {
	if c.MinScore <= 0 {
		return DefaultThreshold
	}
	return c.MinScore
}

// RequiredFields is the union of member requirements, first occurrence
// order.
func (c *Composite) RequiredFields() []Field {
	seen := make(map[Field]bool)
	var fields []Field
	for _, member := range c.Members {
		for _, field := range member.RequiredFields() {
			if !seen[field] {
				seen[field] = true
				fields = append(fields, field)
			}
		}
	}
	return fields
}

// Score runs every member against the test case and reduces the
// sub-scores by harmonic mean. Sub-scores enter the reduction exactly
// as returned, at full precision. A member that fails validation or
// scoring errors the whole composite; it is never silently dropped
// from the reduction.
func (c *Composite) Score(ctx context.Context, tc TestCase) (float64, error) {
	if len(c.Members) == 0 {
		return 0, errors.New("composite metric has no members")
	}

	scores := make([]float64, 0, len(c.Members))
	for _, member := range c.Members {
		measurement, err := Evaluate(ctx, member, tc)
		if err != nil {
			return 0, fmt.Errorf("sub-metric %q: %w", member.Name(), err)
		}
		scores = append(scores, measurement.Score)
	}
	return HarmonicMean(scores), nil
}

// HarmonicMean reduces scores to n / sum(1/s). The reduction is
// undefined when any score is zero, so the aggregate is defined as
// exactly 0 in that case.
func HarmonicMean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var reciprocals float64
	for _, score := range scores {
		if score == 0 {
			return 0
		}
		reciprocals += 1 / score
	}
	return float64(len(scores)) / reciprocals
}
