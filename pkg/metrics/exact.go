package metrics

import (
	"context"

	"github.com/agokrani/deepeval/pkg/core"
)

// ExactMatch passes when the actual output equals the expected output
// after normalization.
type ExactMatch struct {
	CaseSensitive       bool
	NormalizeWhitespace bool
	MinScore            float64
}

func (e ExactMatch) Name() string {
	return "exact-match"
}

func (e ExactMatch) Threshold() float64 {
	return threshold(e.MinScore)
}

func (e ExactMatch) RequiredFields() []core.Field {
	return []core.Field{core.FieldActualOutput, core.FieldExpectedOutput}
}

func (e ExactMatch) Score(_ context.Context, tc core.TestCase) (float64, error) {
	expected := normalizeText(tc.ExpectedOutput, e.CaseSensitive, e.NormalizeWhitespace)
	actual := normalizeText(tc.ActualOutput, e.CaseSensitive, e.NormalizeWhitespace)
	if expected == actual {
		return 1, nil
	}
	return 0, nil
}
