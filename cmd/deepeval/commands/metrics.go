package commands

import (
	"fmt"

	"github.com/agokrani/deepeval/pkg/core"
	"github.com/agokrani/deepeval/pkg/metrics"
)

var heuristicMetrics = []string{
	"exact-match",
	"answer-contains",
	"factual-consistency-overlap",
	"faithfulness-overlap",
	"contextual-recall-overlap",
	"ranking-similarity",
}

var judgeMetrics = []string{
	"factual-consistency",
	"answer-relevancy",
	"faithfulness",
	"contextual-precision",
	"contextual-recall",
	"ragas",
}

func needsJudge(name string) bool {
	for _, candidate := range judgeMetrics {
		if candidate == name {
			return true
		}
	}
	return false
}

func knownMetric(name string) bool {
	if needsJudge(name) {
		return true
	}
	for _, candidate := range heuristicMetrics {
		if candidate == name {
			return true
		}
	}
	return false
}

// buildMetrics returns a factory producing a fresh metric set per test
// case, so no metric instance crosses worker boundaries.
func buildMetrics(names []string, minScore float64, judge core.Model) (func() []core.Metric, error) {
	for _, name := range names {
		if !knownMetric(name) {
			return nil, fmt.Errorf("unknown metric: %s", name)
		}
		if needsJudge(name) && judge == nil {
			return nil, fmt.Errorf("metric %q needs a model provider (--provider)", name)
		}
	}

	return func() []core.Metric {
		out := make([]core.Metric, 0, len(names))
		for _, name := range names {
			switch name {
			case "exact-match":
				out = append(out, metrics.ExactMatch{NormalizeWhitespace: true, MinScore: minScore})
			case "answer-contains":
				out = append(out, metrics.AnswerContains{NormalizeWhitespace: true, MinScore: minScore})
			case "factual-consistency-overlap":
				out = append(out, metrics.FactualConsistencyOverlap{MinScore: minScore})
			case "faithfulness-overlap":
				out = append(out, metrics.FaithfulnessOverlap{MinScore: minScore})
			case "contextual-recall-overlap":
				out = append(out, metrics.ContextualRecallOverlap{MinScore: minScore})
			case "ranking-similarity":
				out = append(out, metrics.RankingSimilarity{MinScore: minScore})
			case "factual-consistency":
				out = append(out, metrics.NewFactualConsistency(judge, minScore))
			case "answer-relevancy":
				out = append(out, metrics.NewAnswerRelevancy(judge, minScore))
			case "faithfulness":
				out = append(out, metrics.NewFaithfulness(judge, minScore))
			case "contextual-precision":
				out = append(out, metrics.NewContextualPrecision(judge, minScore))
			case "contextual-recall":
				out = append(out, metrics.NewContextualRecall(judge, minScore))
			case "ragas":
				out = append(out, metrics.NewRAGAS(judge, minScore))
			}
		}
		return out
	}, nil
}
