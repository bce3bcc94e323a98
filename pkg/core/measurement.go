package core

// Measurement is the result of one metric applied to one test case.
// It is created once per evaluation and never mutated afterwards.
type Measurement struct {
	MetricName     string  `json:"metric_name" yaml:"metric_name"`
	Score          float64 `json:"score" yaml:"score"`
	Threshold      float64 `json:"threshold" yaml:"threshold"`
	Success        bool    `json:"success" yaml:"success"`
	ConsumedFields []Field `json:"consumed_fields,omitempty" yaml:"consumed_fields,omitempty"`
	Error          string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Errored reports whether the evaluation failed before a usable score
// was produced.
func (m Measurement) Errored() bool {
	return m.Error != ""
}
