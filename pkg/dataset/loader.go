package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agokrani/deepeval/pkg/core"
)

// Record is one raw dataset row before mapping into a TestCase.
// ActualOutput may be absent when a generator fills it in later.
type Record struct {
	Input            string   `json:"input" yaml:"input"`
	ActualOutput     string   `json:"actual_output,omitempty" yaml:"actual_output,omitempty"`
	ExpectedOutput   string   `json:"expected_output,omitempty" yaml:"expected_output,omitempty"`
	Context          []string `json:"context,omitempty" yaml:"context,omitempty"`
	RetrievalContext []string `json:"retrieval_context,omitempty" yaml:"retrieval_context,omitempty"`
}

// TestCase maps the record 1:1 onto the engine's record type.
func (r Record) TestCase() core.TestCase {
	return core.TestCase{
		Input:            r.Input,
		ActualOutput:     r.ActualOutput,
		ExpectedOutput:   r.ExpectedOutput,
		Context:          r.Context,
		RetrievalContext: r.RetrievalContext,
	}
}

// Load reads an ordered sequence of records from a JSON array or JSONL
// file. Record order is preserved; the runner's report follows it.
func Load(path string) ([]Record, error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case "json":
		return loadJSON(path)
	case "jsonl":
		return loadJSONL(path)
	default:
		return nil, errors.New("dataset: unsupported format")
	}
}

// ToCases converts records into test cases, enforcing the invariant
// that input and actual_output are present on every case.
func ToCases(records []Record) ([]core.TestCase, error) {
	cases := make([]core.TestCase, len(records))
	for i, record := range records {
		if record.Input == "" {
			return nil, fmt.Errorf("dataset: record %d has no input", i)
		}
		if record.ActualOutput == "" {
			return nil, fmt.Errorf("dataset: record %d has no actual_output", i)
		}
		cases[i] = record.TestCase()
	}
	return cases, nil
}

func detectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		return "jsonl", nil
	case ".json":
		return "json", nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(string(b)) == "" {
			continue
		}
		if b == '[' {
			return "json", nil
		}
		if b == '{' {
			return "jsonl", nil
		}
		return "", errors.New("dataset: unsupported format")
	}
}

func loadJSON(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []Record
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func loadJSONL(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	var records []Record
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record Record
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
