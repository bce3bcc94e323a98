package core

import "time"

// Status is the lifecycle state of one unit of work.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusErrored   Status = "errored"
)

// UnitResult is the outcome for one (test case, metric list) unit.
// Succeeded and Failed both mean every measurement completed; Errored
// means at least one metric raised before scoring finished.
type UnitResult struct {
	Case         TestCase      `json:"case" yaml:"case"`
	Measurements []Measurement `json:"measurements" yaml:"measurements"`
	Status       Status        `json:"status" yaml:"status"`
	Error        string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
}

// Passed reports whether every measurement in the unit succeeded.
func (u UnitResult) Passed() bool {
	return u.Status == StatusSucceeded
}

// Report is the order-stable, run-level aggregation of all
// measurements. Results are ordered identically to the input test
// cases regardless of worker count or completion order. A report is
// read-only once finalized.
type Report struct {
	Results    []UnitResult `json:"results" yaml:"results"`
	AllPassed  bool         `json:"all_passed" yaml:"all_passed"`
	Summary    Summary      `json:"summary" yaml:"summary"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
}

// Summary aggregates run statistics.
type Summary struct {
	TotalUnits   int     `json:"total_units" yaml:"total_units"`
	Succeeded    int     `json:"succeeded" yaml:"succeeded"`
	Failed       int     `json:"failed" yaml:"failed"`
	Errored      int     `json:"errored" yaml:"errored"`
	PassRate     float64 `json:"pass_rate" yaml:"pass_rate"`
	AverageScore float64 `json:"average_score" yaml:"average_score"`
}

// finalizeReport derives the run verdict from per-unit results.
// AllPassed is the AND over every measurement's success; an errored
// unit counts as not-passed.
func finalizeReport(results []UnitResult, started, finished time.Time) Report {
	summary := Summary{TotalUnits: len(results)}
	allPassed := true

	var scoreSum float64
	var scoreCount int
	for _, result := range results {
		switch result.Status {
		case StatusSucceeded:
			summary.Succeeded++
		case StatusFailed:
			summary.Failed++
			allPassed = false
		case StatusErrored:
			summary.Errored++
			allPassed = false
		default:
			allPassed = false
		}
		for _, m := range result.Measurements {
			if m.Errored() {
				continue
			}
			scoreSum += m.Score
			scoreCount++
		}
	}

	if summary.TotalUnits > 0 {
		summary.PassRate = float64(summary.Succeeded) / float64(summary.TotalUnits)
	}
	if scoreCount > 0 {
		summary.AverageScore = scoreSum / float64(scoreCount)
	}

	return Report{
		Results:    results,
		AllPassed:  allPassed,
		Summary:    summary,
		StartedAt:  started,
		FinishedAt: finished,
	}
}
