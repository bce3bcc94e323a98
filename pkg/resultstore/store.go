package resultstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agokrani/deepeval/pkg/core"
)

// EnvResultsFolder is the one recognized environment setting for run
// persistence: the directory run results are written to. When it is
// unset, nothing is persisted locally.
const EnvResultsFolder = "DEEPEVAL_RESULTS_FOLDER"

// Dir returns the configured results directory, empty when local
// persistence is disabled.
func Dir() string {
	return os.Getenv(EnvResultsFolder)
}

// RunRecord is the on-disk envelope around one finalized report.
type RunRecord struct {
	Name    string      `json:"name"`
	Report  core.Report `json:"report"`
	SavedAt time.Time   `json:"saved_at"`
}

// Write persists a finalized report into dir under a timestamped file
// name and returns the path written.
func Write(dir, name string, report core.Report) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("resultstore: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	record := RunRecord{
		Name:    name,
		Report:  report,
		SavedAt: time.Now(),
	}
	path := filepath.Join(dir, buildFileName(name))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(record); err != nil {
		return "", err
	}
	return path, nil
}

// Read loads a previously persisted run record.
func Read(path string) (RunRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return RunRecord{}, err
	}
	defer file.Close()

	var record RunRecord
	if err := json.NewDecoder(file).Decode(&record); err != nil {
		return RunRecord{}, err
	}
	return record, nil
}

func buildFileName(name string) string {
	timestamp := time.Now().Format("2006-01-02T15-04-05")
	run := sanitizeName(name)
	if run == "" {
		run = "run"
	}
	return fmt.Sprintf("%s_%s.json", timestamp, run)
}

func sanitizeName(input string) string {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			out = append(out, r)
		}
	}
	return string(out)
}
