package reporter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/agokrani/deepeval/pkg/core"
)

type CSVReporter struct {
	Writer io.Writer
}

func (r CSVReporter) Report(report core.Report) error {
	writer := csv.NewWriter(r.Writer)
	header := []string{"case_index", "input", "actual_output", "metric", "score", "threshold", "success", "status", "error", "duration_seconds"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for idx, result := range report.Results {
		for _, m := range result.Measurements {
			record := []string{
				strconv.Itoa(idx),
				result.Case.Input,
				result.Case.ActualOutput,
				m.MetricName,
				strconv.FormatFloat(m.Score, 'f', 4, 64),
				strconv.FormatFloat(m.Threshold, 'f', 2, 64),
				strconv.FormatBool(m.Success),
				string(result.Status),
				m.Error,
				strconv.FormatFloat(result.Duration.Seconds(), 'f', 6, 64),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
