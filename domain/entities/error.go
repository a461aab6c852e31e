package entities

import "fmt"

// ErrorKind classifies bridge errors.
type ErrorKind string

// Error kinds, one per error type of the bridge.
const (
	KindMarshal    ErrorKind = "marshal"
	KindEvaluation ErrorKind = "evaluation"
	KindSkip       ErrorKind = "skip"
	KindLookup     ErrorKind = "lookup"
	KindConfig     ErrorKind = "config"
	KindPanic      ErrorKind = "panic"
	KindInternal   ErrorKind = "internal"
)

// ErrorDetail is the serializable form of a bridge error.
type ErrorDetail struct {
	// Cause is the error that made a global unreadable, for skip errors.
	Cause *ErrorDetail `json:"cause,omitempty"`

	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`

	// Subject names what the error concerns: an export, a global, a config
	// field or, for marshal errors, the Go type.
	Subject string `json:"subject,omitempty"`

	// Phase is compile, run or call for evaluation errors and the marshal
	// direction for marshal errors.
	Phase string `json:"phase,omitempty"`

	Filename string `json:"filename,omitempty"`
	Stack    string `json:"stack,omitempty"`
	FromHost bool   `json:"from_host,omitempty"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Kind != "" && e.Kind != KindInternal {
		msg = fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause.Error())
	}
	return msg
}

// NewErrorDetail creates an ErrorDetail of the given kind.
func NewErrorDetail(kind ErrorKind, message string) *ErrorDetail {
	return &ErrorDetail{Kind: kind, Message: message}
}

// About sets the subject and returns the receiver.
func (e *ErrorDetail) About(subject string) *ErrorDetail {
	e.Subject = subject
	return e
}
