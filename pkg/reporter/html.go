package reporter

import (
	"html/template"
	"io"

	"github.com/agokrani/deepeval/pkg/core"
)

type HTMLReporter struct {
	Writer io.Writer
	Title  string
}

func (r HTMLReporter) Report(report core.Report) error {
	title := r.Title
	if title == "" {
		title = "Evaluation Report"
	}

	data := struct {
		Title  string
		Report core.Report
	}{
		Title:  title,
		Report: report,
	}

	tpl := template.Must(template.New("report").Parse(htmlTemplate))
	return tpl.Execute(r.Writer, data)
}

const htmlTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 24px; }
    table { border-collapse: collapse; width: 100%; margin-top: 16px; }
    th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
    th { background: #f2f2f2; }
    .pass { color: #1a7f37; }
    .fail { color: #b42318; }
    .error { color: #9a6700; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <table>
    <tr><th>Test cases</th><td>{{ .Report.Summary.TotalUnits }}</td></tr>
    <tr><th>Succeeded</th><td>{{ .Report.Summary.Succeeded }}</td></tr>
    <tr><th>Failed</th><td>{{ .Report.Summary.Failed }}</td></tr>
    <tr><th>Errored</th><td>{{ .Report.Summary.Errored }}</td></tr>
    <tr><th>Pass rate</th><td>{{ printf "%.2f" .Report.Summary.PassRate }}</td></tr>
    <tr><th>Average score</th><td>{{ printf "%.2f" .Report.Summary.AverageScore }}</td></tr>
    <tr><th>All passed</th><td>{{ .Report.AllPassed }}</td></tr>
  </table>
  <h2>Test cases</h2>
  <table>
    <tr><th>#</th><th>Input</th><th>Metric</th><th>Score</th><th>Threshold</th><th>Result</th><th>Error</th></tr>
    {{ range $idx, $result := .Report.Results }}
    {{ range $result.Measurements }}
    <tr>
      <td>{{ $idx }}</td>
      <td>{{ $result.Case.Input }}</td>
      <td>{{ .MetricName }}</td>
      <td>{{ printf "%.4f" .Score }}</td>
      <td>{{ printf "%.2f" .Threshold }}</td>
      {{ if .Error }}<td class="error">error</td>{{ else if .Success }}<td class="pass">pass</td>{{ else }}<td class="fail">fail</td>{{ end }}
      <td>{{ .Error }}</td>
    </tr>
    {{ end }}
    {{ end }}
  </table>
</body>
</html>
`
