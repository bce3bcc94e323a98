package metrics

import "github.com/agokrani/deepeval/pkg/core"

// NewRAGAS builds the harmonic-mean composite over the four judge
// metrics RAG pipelines are usually graded on. The composite threshold
// applies to the aggregate; each sub-metric keeps the default.
func NewRAGAS(model core.Model, minScore float64) *core.Composite {
	return core.NewComposite("ragas", minScore,
		NewFaithfulness(model, core.DefaultThreshold),
		NewAnswerRelevancy(model, core.DefaultThreshold),
		NewContextualPrecision(model, core.DefaultThreshold),
		NewContextualRecall(model, core.DefaultThreshold),
	)
}
