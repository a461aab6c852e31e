// Package errors provides the error taxonomy of the bridge.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/symbridge-dev/symbridge-go/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return entities.NewErrorDetail(entities.KindInternal, err.Error())
}

// Marshaling directions.
const (
	ToScript = "to_script"
	ToHost   = "to_host"
)

// MarshalError reports a value that cannot cross the host/script boundary.
type MarshalError struct {
	Err       error
	Direction string // ToScript or ToHost
	GoType    string // Go type of the offending value, if known
}

func (e *MarshalError) Error() string {
	if e.GoType != "" {
		return fmt.Sprintf("cannot marshal %s %s: %v", e.GoType, directionText(e.Direction), e.Err)
	}
	return fmt.Sprintf("cannot marshal value %s: %v", directionText(e.Direction), e.Err)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *MarshalError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Kind: entities.KindMarshal, Message: e.Error(), Subject: e.GoType, Phase: e.Direction}
}

func directionText(direction string) string {
	switch direction {
	case ToScript:
		return "into the script engine"
	case ToHost:
		return "into a host value"
	default:
		return "across the engine boundary"
	}
}

// Evaluation phases.
const (
	PhaseCompile = "compile"
	PhaseRun     = "run"
	PhaseCall    = "call"
)

// EvaluationError reports an error raised by the script engine while compiling
// source, running it, or executing a closure.
type EvaluationError struct {
	Err      error
	Phase    string // PhaseCompile, PhaseRun or PhaseCall
	Filename string
	Stack    string // script stack trace, when the engine provides one
	FromHost bool   // evaluation was issued by host code
}

func (e *EvaluationError) Error() string {
	origin := ""
	if e.FromHost {
		origin = " (host call)"
	}
	if e.Filename != "" {
		return fmt.Sprintf("script %s failed in %s%s: %v", e.Phase, e.Filename, origin, e.Err)
	}
	return fmt.Sprintf("script %s failed%s: %v", e.Phase, origin, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *EvaluationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Kind:     entities.KindEvaluation,
		Message:  e.Error(),
		Phase:    e.Phase,
		Filename: e.Filename,
		Stack:    e.Stack,
		FromHost: e.FromHost,
	}
}

// SkipError reports a global binding omitted during mirroring. It is never
// returned from module construction; it is logged and recorded instead.
type SkipError struct {
	Err  error
	Name string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("skipping global %q: %v", e.Name, e.Err)
}

func (e *SkipError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SkipError) ToErrorDetail() *entities.ErrorDetail {
	detail := entities.NewErrorDetail(entities.KindSkip, e.Error()).About(e.Name)
	if e.Err != nil {
		detail.Cause = ToErrorDetail(e.Err)
	}
	return detail
}

// LookupError reports a failed export lookup or invocation.
type LookupError struct {
	Name        string
	NotCallable bool
}

func (e *LookupError) Error() string {
	if e.NotCallable {
		return fmt.Sprintf("export %q is not a host function", e.Name)
	}
	return fmt.Sprintf("unknown export: %s", e.Name)
}

// ToErrorDetail implements DetailedError.
func (e *LookupError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail(entities.KindLookup, e.Error()).About(e.Name)
}

// PanicError wraps a panic recovered from a host function.
type PanicError struct {
	Value    any
	Function string
}

func (e *PanicError) Error() string {
	var msg string
	switch v := e.Value.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = "panic recovered"
	}
	if e.Function != "" {
		return fmt.Sprintf("panic in %s: %s", e.Function, msg)
	}
	return "panic: " + msg
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ToErrorDetail implements DetailedError.
func (e *PanicError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail(entities.KindPanic, e.Error()).About(e.Function)
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail(entities.KindConfig, e.Error()).About(e.Field)
}
