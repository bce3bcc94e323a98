package reporter

import "github.com/agokrani/deepeval/pkg/core"

// Reporter renders a finalized run report.
type Reporter interface {
	Report(report core.Report) error
}

const (
	FormatJSON     = "json"
	FormatTable    = "table"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)
