package entities

// EvalOptions configures a single evaluation request against the script engine.
type EvalOptions struct {
	// Filename is reported in script diagnostics and stack traces.
	Filename string `json:"filename"`

	// FromHost marks the evaluation as issued by Go code rather than by script code.
	// Engines use it to attribute errors and stack frames to the host side.
	FromHost bool `json:"from_host"`
}

// WithFilename returns a copy of the options using the given filename.
func (o EvalOptions) WithFilename(name string) EvalOptions {
	o.Filename = name
	return o
}
