package metrics

import (
	"context"

	"github.com/agokrani/deepeval/pkg/core"
)

// FactualConsistencyOverlap measures how much of the actual output's
// vocabulary is grounded in the reference context. Deterministic, no
// model calls.
type FactualConsistencyOverlap struct {
	MinScore float64
}

func (f FactualConsistencyOverlap) Name() string {
	return "factual-consistency-overlap"
}

func (f FactualConsistencyOverlap) Threshold() float64 {
	return threshold(f.MinScore)
}

func (f FactualConsistencyOverlap) RequiredFields() []core.Field {
	return []core.Field{core.FieldActualOutput, core.FieldContext}
}

func (f FactualConsistencyOverlap) Score(_ context.Context, tc core.TestCase) (float64, error) {
	return overlapRatio(tc.ActualOutput, tokenSet(tc.Context...)), nil
}

// FaithfulnessOverlap measures how much of the actual output's
// vocabulary appears in what the retrieval step actually returned.
type FaithfulnessOverlap struct {
	MinScore float64
}

func (f FaithfulnessOverlap) Name() string {
	return "faithfulness-overlap"
}

func (f FaithfulnessOverlap) Threshold() float64 {
	return threshold(f.MinScore)
}

func (f FaithfulnessOverlap) RequiredFields() []core.Field {
	return []core.Field{core.FieldActualOutput, core.FieldRetrievalContext}
}

func (f FaithfulnessOverlap) Score(_ context.Context, tc core.TestCase) (float64, error) {
	return overlapRatio(tc.ActualOutput, tokenSet(tc.RetrievalContext...)), nil
}

// ContextualRecallOverlap measures how much of the expected output's
// vocabulary the retrieval context managed to surface.
type ContextualRecallOverlap struct {
	MinScore float64
}

func (c ContextualRecallOverlap) Name() string {
	return "contextual-recall-overlap"
}

func (c ContextualRecallOverlap) Threshold() float64 {
	return threshold(c.MinScore)
}

func (c ContextualRecallOverlap) RequiredFields() []core.Field {
	return []core.Field{core.FieldExpectedOutput, core.FieldRetrievalContext}
}

func (c ContextualRecallOverlap) Score(_ context.Context, tc core.TestCase) (float64, error) {
	return overlapRatio(tc.ExpectedOutput, tokenSet(tc.RetrievalContext...)), nil
}
