package entities

// Filter reasons recorded in a MirrorReport.
const (
	FilterEvaluator = "evaluator"
	FilterPrivate   = "private"
	FilterPresent   = "already_exported"
	FilterExcluded  = "excluded"
	FilterBuiltin   = "enumerable"
)

// SkippedBinding describes a global that passed the filters but could not be mirrored.
type SkippedBinding struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// MirrorReport summarizes a single mirroring pass over the script global scope.
type MirrorReport struct {
	// Filtered maps each excluded name to the filter that excluded it.
	Filtered map[string]string `json:"filtered,omitempty"`

	// Mirrored lists the names installed into the host namespace, in enumeration order.
	Mirrored []string `json:"mirrored"`

	// Skipped lists bindings that failed to read or unmarshal.
	Skipped []SkippedBinding `json:"skipped,omitempty"`

	// Enumerated is the number of own property names the engine reported.
	Enumerated int `json:"enumerated"`
}

// NewMirrorReport creates an empty report.
func NewMirrorReport() MirrorReport {
	return MirrorReport{
		Filtered: make(map[string]string),
		Mirrored: []string{},
	}
}

// IsComplete reports whether every enumerated name was either mirrored or filtered.
func (r MirrorReport) IsComplete() bool {
	return len(r.Skipped) == 0
}
