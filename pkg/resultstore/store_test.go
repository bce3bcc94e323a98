package resultstore

import (
	"testing"
	"time"

	"github.com/agokrani/deepeval/pkg/core"

	"github.com/stretchr/testify/require"
)

func sampleReport() core.Report {
	return core.Report{
		Results: []core.UnitResult{
			{
				Case: core.TestCase{Input: "q", ActualOutput: "a"},
				Measurements: []core.Measurement{
					{MetricName: "exact-match", Score: 1, Threshold: 0.5, Success: true},
				},
				Status: core.StatusSucceeded,
			},
		},
		AllPassed:  true,
		Summary:    core.Summary{TotalUnits: 1, Succeeded: 1, PassRate: 1, AverageScore: 1},
		StartedAt:  time.Now().Add(-time.Second),
		FinishedAt: time.Now(),
	}
}

func TestDirReadsEnvironment(t *testing.T) {
	t.Setenv(EnvResultsFolder, "")
	require.Empty(t, Dir(), "persistence is off by default")

	t.Setenv(EnvResultsFolder, "/tmp/eval-results")
	require.Equal(t, "/tmp/eval-results", Dir())
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, "nightly run #3", sampleReport())
	require.NoError(t, err)
	require.Contains(t, path, "nightlyrun3", "file names keep only safe characters")

	record, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, "nightly run #3", record.Name)
	require.True(t, record.Report.AllPassed)
	require.Len(t, record.Report.Results, 1)
	require.Equal(t, "exact-match", record.Report.Results[0].Measurements[0].MetricName)
	require.False(t, record.SavedAt.IsZero())
}

func TestWriteRequiresDir(t *testing.T) {
	_, err := Write("", "run", sampleReport())
	require.Error(t, err)
}
