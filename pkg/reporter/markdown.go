package reporter

import (
	"fmt"
	"io"

	"github.com/agokrani/deepeval/pkg/core"
)

type MarkdownReporter struct {
	Writer io.Writer
}

func (r MarkdownReporter) Report(report core.Report) error {
	if _, err := fmt.Fprintf(r.Writer, "# Evaluation Report\n\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.Writer, "## Summary\n\n| Metric | Value |\n|---|---|\n"); err != nil {
		return err
	}
	lines := []struct {
		Name  string
		Value string
	}{
		{"Test cases", fmt.Sprintf("%d", report.Summary.TotalUnits)},
		{"Succeeded", fmt.Sprintf("%d", report.Summary.Succeeded)},
		{"Failed", fmt.Sprintf("%d", report.Summary.Failed)},
		{"Errored", fmt.Sprintf("%d", report.Summary.Errored)},
		{"Pass rate", fmt.Sprintf("%.2f", report.Summary.PassRate)},
		{"Average score", fmt.Sprintf("%.2f", report.Summary.AverageScore)},
		{"All passed", fmt.Sprintf("%t", report.AllPassed)},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(r.Writer, "| %s | %s |\n", line.Name, line.Value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.Writer, "\n## Test cases\n\n| # | Input | Metric | Score | Threshold | Result | Error |\n|---|---|---|---|---|---|---|\n"); err != nil {
		return err
	}
	for idx, result := range report.Results {
		for _, m := range result.Measurements {
			outcome := "fail"
			if m.Errored() {
				outcome = "error"
			} else if m.Success {
				outcome = "pass"
			}
			if _, err := fmt.Fprintf(
				r.Writer,
				"| %d | %s | %s | %.4f | %.2f | %s | %s |\n",
				idx+1,
				escapePipe(result.Case.Input),
				m.MetricName,
				m.Score,
				m.Threshold,
				outcome,
				escapePipe(m.Error),
			); err != nil {
				return err
			}
		}
	}
	return nil
}

func escapePipe(input string) string {
	if input == "" {
		return ""
	}
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if r == '|' {
			out = append(out, '\\', r)
		} else if r == '\n' || r == '\r' {
			out = append(out, ' ')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
