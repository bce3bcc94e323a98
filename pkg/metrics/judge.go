package metrics

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agokrani/deepeval/pkg/core"
)

const judgeSystemPrompt = `You are an impartial judge grading the output of an AI system.
Follow the grading instructions exactly and end your response with "SCORE: X" where X is an integer from 0 to 10.`

// Judge scores a test case by asking a model to grade it and parsing a
// "SCORE: X" verdict (0-10) from the reply, normalized to [0,1].
type Judge struct {
	JudgeName string
	Model     core.Model
	MinScore  float64
	Fields    []core.Field
	Prompt    func(tc core.TestCase) string
	Options   core.GenerateOptions
}

func (j Judge) Name() string {
	return j.JudgeName
}

func (j Judge) Threshold() float64 {
	return threshold(j.MinScore)
}

func (j Judge) RequiredFields() []core.Field {
	return j.Fields
}

func (j Judge) Score(ctx context.Context, tc core.TestCase) (float64, error) {
	if j.Model == nil {
		return 0, errors.New("judge model is required")
	}
	if j.Prompt == nil {
		return 0, errors.New("judge prompt is required")
	}

	opts := j.Options
	opts.SystemPrompt = judgeSystemPrompt
	opts.Temperature = 0
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 512
	}

	resp, err := j.Model.Generate(ctx, j.Prompt(tc), opts)
	if err != nil {
		return 0, fmt.Errorf("judge generation: %w", err)
	}

	raw, err := extractScore(resp.Content)
	if err != nil {
		return 0, err
	}
	return float64(raw) / 10, nil
}

var scorePattern = regexp.MustCompile(`SCORE:\s*(\d+)`)

func extractScore(response string) (int, error) {
	matches := scorePattern.FindStringSubmatch(response)
	if len(matches) < 2 {
		return 0, fmt.Errorf("no SCORE verdict in judge response")
	}
	score, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid SCORE verdict: %w", err)
	}
	if score < 0 || score > 10 {
		return 0, fmt.Errorf("SCORE verdict out of range: %d", score)
	}
	return score, nil
}

func numberedList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return b.String()
}

// NewFactualConsistency grades whether the actual output is factually
// consistent with the reference context.
func NewFactualConsistency(model core.Model, minScore float64) Judge {
	return Judge{
		JudgeName: "factual-consistency",
		Model:     model,
		MinScore:  minScore,
		Fields:    []core.Field{core.FieldActualOutput, core.FieldContext},
		Prompt: func(tc core.TestCase) string {
			return fmt.Sprintf(`Reference context:
%s
Output under evaluation: %s

Grade how factually consistent the output is with the reference context.
0 means contradictory or unsupported, 10 means fully supported.`,
				numberedList(tc.Context), tc.ActualOutput)
		},
	}
}

// NewAnswerRelevancy grades how relevant the actual output is to the
// original input.
func NewAnswerRelevancy(model core.Model, minScore float64) Judge {
	return Judge{
		JudgeName: "answer-relevancy",
		Model:     model,
		MinScore:  minScore,
		Fields:    []core.Field{core.FieldInput, core.FieldActualOutput},
		Prompt: func(tc core.TestCase) string {
			return fmt.Sprintf(`Question: %s
Answer under evaluation: %s

Grade how directly the answer addresses the question.
0 means entirely off-topic, 10 means fully on point.`,
				tc.Input, tc.ActualOutput)
		},
	}
}

// NewFaithfulness grades whether every claim in the actual output is
// supported by the retrieved passages.
func NewFaithfulness(model core.Model, minScore float64) Judge {
	return Judge{
		JudgeName: "faithfulness",
		Model:     model,
		MinScore:  minScore,
		Fields:    []core.Field{core.FieldActualOutput, core.FieldRetrievalContext},
		Prompt: func(tc core.TestCase) string {
			return fmt.Sprintf(`Retrieved passages:
%s
Output under evaluation: %s

Grade how faithful the output is to the retrieved passages: every claim
should be traceable to a passage. 0 means fabricated, 10 means fully grounded.`,
				numberedList(tc.RetrievalContext), tc.ActualOutput)
		},
	}
}

// NewContextualPrecision grades how much of the retrieved material was
// actually useful for answering the input.
func NewContextualPrecision(model core.Model, minScore float64) Judge {
	return Judge{
		JudgeName: "contextual-precision",
		Model:     model,
		MinScore:  minScore,
		Fields:    []core.Field{core.FieldInput, core.FieldRetrievalContext},
		Prompt: func(tc core.TestCase) string {
			return fmt.Sprintf(`Question: %s
Retrieved passages:
%s
Grade how precisely the retrieved passages target the question: irrelevant
passages lower the grade. 0 means nothing relevant, 10 means every passage relevant.`,
				tc.Input, numberedList(tc.RetrievalContext))
		},
	}
}

// NewContextualRecall grades whether the retrieved material covers what
// the expected output needs.
func NewContextualRecall(model core.Model, minScore float64) Judge {
	return Judge{
		JudgeName: "contextual-recall",
		Model:     model,
		MinScore:  minScore,
		Fields:    []core.Field{core.FieldExpectedOutput, core.FieldRetrievalContext},
		Prompt: func(tc core.TestCase) string {
			return fmt.Sprintf(`Expected answer: %s
Retrieved passages:
%s
Grade how completely the retrieved passages cover the facts the expected
answer relies on. 0 means nothing covered, 10 means everything covered.`,
				tc.ExpectedOutput, numberedList(tc.RetrievalContext))
		},
	}
}
