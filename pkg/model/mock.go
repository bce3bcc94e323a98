package model

import (
	"context"
	"time"

	"github.com/agokrani/deepeval/pkg/core"
)

// Mock returns a fixed response or echoes the prompt. Useful as a judge
// backend in tests and offline runs.
type Mock struct {
	NameValue    string
	ResponseText string
}

func (m Mock) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

func (m Mock) Generate(_ context.Context, prompt string, _ core.GenerateOptions) (core.Response, error) {
	start := time.Now()
	content := prompt
	if m.ResponseText != "" {
		content = m.ResponseText
	}
	return core.Response{
		Content: content,
		Latency: time.Since(start),
	}, nil
}
