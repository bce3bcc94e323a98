package core

// Field names one of the five test case fields a metric may depend on.
type Field string

const (
	FieldInput            Field = "input"
	FieldActualOutput     Field = "actual_output"
	FieldExpectedOutput   Field = "expected_output"
	FieldContext          Field = "context"
	FieldRetrievalContext Field = "retrieval_context"
)

// TestCase is the record under evaluation. Input and ActualOutput are
// always present; the remaining fields may be absent. A TestCase is
// immutable once constructed and safe to share across workers.
type TestCase struct {
	Input            string   `json:"input" yaml:"input"`
	ActualOutput     string   `json:"actual_output" yaml:"actual_output"`
	ExpectedOutput   string   `json:"expected_output,omitempty" yaml:"expected_output,omitempty"`
	Context          []string `json:"context,omitempty" yaml:"context,omitempty"`
	RetrievalContext []string `json:"retrieval_context,omitempty" yaml:"retrieval_context,omitempty"`
}

// Has reports whether the named field is present on the test case. An
// empty string or empty slice counts as absent.
func (t TestCase) Has(field Field) bool {
	switch field {
	case FieldInput:
		return t.Input != ""
	case FieldActualOutput:
		return t.ActualOutput != ""
	case FieldExpectedOutput:
		return t.ExpectedOutput != ""
	case FieldContext:
		return len(t.Context) > 0
	case FieldRetrievalContext:
		return len(t.RetrievalContext) > 0
	}
	return false
}

// Missing returns the subset of fields absent from the test case, in
// the order given.
func (t TestCase) Missing(fields []Field) []Field {
	var missing []Field
	for _, field := range fields {
		if !t.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}
