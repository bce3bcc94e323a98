package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/agokrani/deepeval/pkg/core"
	"github.com/agokrani/deepeval/pkg/dataset"
)

const defaultPromptTemplate = "Answer the question directly and concisely.\nQuestion: {{input}}\nAnswer:"

// Generator fills a record's missing actual_output by prompting a
// model with the record's input. Records that already carry an output
// pass through untouched.
type Generator struct {
	Model          core.Model
	Options        core.GenerateOptions
	PromptTemplate string
}

// Fill returns a copy of records with every missing actual_output
// produced by the model, preserving record order.
func (g Generator) Fill(ctx context.Context, records []dataset.Record) ([]dataset.Record, error) {
	out := make([]dataset.Record, len(records))
	copy(out, records)

	for i := range out {
		if out[i].ActualOutput != "" {
			continue
		}
		if g.Model == nil {
			return nil, fmt.Errorf("generate: record %d has no actual_output and no model is configured", i)
		}
		prompt := applyTemplate(g.template(), map[string]string{"input": out[i].Input})
		resp, err := g.Model.Generate(ctx, prompt, g.Options)
		if err != nil {
			return nil, fmt.Errorf("generate: record %d: %w", i, err)
		}
		out[i].ActualOutput = resp.Content
	}
	return out, nil
}

func (g Generator) template() string {
	if g.PromptTemplate != "" {
		return g.PromptTemplate
	}
	return defaultPromptTemplate
}

func applyTemplate(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}
