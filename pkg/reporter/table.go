package reporter

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/agokrani/deepeval/pkg/core"
)

type TableReporter struct {
	Writer io.Writer
}

func (r TableReporter) Report(report core.Report) error {
	table := tablewriter.NewWriter(r.Writer)
	table.Header([]string{"Metric", "Value"})
	table.Append([]string{"Test cases", fmt.Sprintf("%d", report.Summary.TotalUnits)})
	table.Append([]string{"Succeeded", fmt.Sprintf("%d", report.Summary.Succeeded)})
	table.Append([]string{"Failed", fmt.Sprintf("%d", report.Summary.Failed)})
	table.Append([]string{"Errored", fmt.Sprintf("%d", report.Summary.Errored)})
	table.Append([]string{"Pass rate", fmt.Sprintf("%.2f", report.Summary.PassRate)})
	table.Append([]string{"Average score", fmt.Sprintf("%.2f", report.Summary.AverageScore)})
	table.Append([]string{"All passed", fmt.Sprintf("%t", report.AllPassed)})
	table.Render()

	detail := tablewriter.NewWriter(r.Writer)
	detail.Header([]string{"#", "Input", "Metric", "Score", "Threshold", "Result"})
	for idx, result := range report.Results {
		for _, m := range result.Measurements {
			outcome := "fail"
			if m.Errored() {
				outcome = "error"
			} else if m.Success {
				outcome = "pass"
			}
			detail.Append([]string{
				fmt.Sprintf("%d", idx+1),
				truncate(result.Case.Input, 48),
				m.MetricName,
				fmt.Sprintf("%.4f", m.Score),
				fmt.Sprintf("%.2f", m.Threshold),
				outcome,
			})
		}
	}
	detail.Render()
	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
