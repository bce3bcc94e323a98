package metrics

import (
	"context"
	"strings"

	"github.com/agokrani/deepeval/pkg/core"
)

// AnswerContains passes when the actual output contains the expected
// output as a substring after normalization.
type AnswerContains struct {
	CaseSensitive       bool
	NormalizeWhitespace bool
	MinScore            float64
}

func (a AnswerContains) Name() string {
	return "answer-contains"
}

func (a AnswerContains) Threshold() float64 {
	return threshold(a.MinScore)
}

func (a AnswerContains) RequiredFields() []core.Field {
	return []core.Field{core.FieldActualOutput, core.FieldExpectedOutput}
}

func (a AnswerContains) Score(_ context.Context, tc core.TestCase) (float64, error) {
	expected := normalizeText(tc.ExpectedOutput, a.CaseSensitive, a.NormalizeWhitespace)
	actual := normalizeText(tc.ActualOutput, a.CaseSensitive, a.NormalizeWhitespace)
	if strings.Contains(actual, expected) {
		return 1, nil
	}
	return 0, nil
}
