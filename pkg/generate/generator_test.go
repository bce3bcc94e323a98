package generate

import (
	"context"
	"testing"

	"github.com/agokrani/deepeval/pkg/dataset"
	"github.com/agokrani/deepeval/pkg/model"

	"github.com/stretchr/testify/require"
)

func TestFillMissingOutputs(t *testing.T) {
	generator := Generator{Model: model.Mock{ResponseText: "generated answer"}}
	records := []dataset.Record{
		{Input: "q1", ActualOutput: "existing answer"},
		{Input: "q2"},
	}

	filled, err := generator.Fill(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, "existing answer", filled[0].ActualOutput, "present outputs pass through")
	require.Equal(t, "generated answer", filled[1].ActualOutput)
	require.Empty(t, records[1].ActualOutput, "input slice stays untouched")
}

func TestFillWithoutModel(t *testing.T) {
	generator := Generator{}
	_, err := generator.Fill(context.Background(), []dataset.Record{{Input: "q"}})
	require.ErrorContains(t, err, "no model is configured")

	filled, err := generator.Fill(context.Background(), []dataset.Record{{Input: "q", ActualOutput: "a"}})
	require.NoError(t, err, "nothing to generate, no model needed")
	require.Equal(t, "a", filled[0].ActualOutput)
}

func TestFillUsesPromptTemplate(t *testing.T) {
	// The mock echoes its prompt, so the filled output shows the
	// rendered template.
	generator := Generator{
		Model:          model.Mock{},
		PromptTemplate: "Q={{input}}",
	}
	filled, err := generator.Fill(context.Background(), []dataset.Record{{Input: "why?"}})
	require.NoError(t, err)
	require.Equal(t, "Q=why?", filled[0].ActualOutput)
}
