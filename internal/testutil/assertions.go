// Package testutil provides engine fixtures and assertions shared by the bridge tests.
package testutil

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/require"

	"github.com/symbridge-dev/symbridge-go/domain/entities"
	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
	"github.com/symbridge-dev/symbridge-go/domain/ports"
	gojaengine "github.com/symbridge-dev/symbridge-go/infrastructure/goja"
)

// NewEngine returns a goja-backed engine on a fresh runtime after running each
// preload script in order.
func NewEngine(t *testing.T, scripts ...string) *gojaengine.Engine {
	t.Helper()

	e := gojaengine.NewEngine(goja.New(), gojaengine.WithLogger(DiscardLogger()))
	for i, src := range scripts {
		_, err := e.Evaluate(src, entities.EvalOptions{Filename: "preload.js"})
		require.NoError(t, err, "preload script %d failed", i)
	}
	return e
}

// Eval evaluates src and fails the test on error.
func Eval(t *testing.T, e ports.Engine, src string) ports.Value {
	t.Helper()

	v, err := e.Evaluate(src, entities.EvalOptions{Filename: "test.js"})
	require.NoError(t, err, "evaluating %q", src)
	return v
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// AssertEvaluationError requires err to wrap an *errors.EvaluationError whose
// message contains substr.
func AssertEvaluationError(t *testing.T, err error, substr string) *bridgeerrors.EvaluationError {
	t.Helper()

	require.Error(t, err)
	var evalErr *bridgeerrors.EvaluationError
	require.True(t, errors.As(err, &evalErr), "expected EvaluationError, got %T: %v", err, err)
	require.Contains(t, err.Error(), substr)
	return evalErr
}

// AssertMarshalError requires err to wrap an *errors.MarshalError.
func AssertMarshalError(t *testing.T, err error) *bridgeerrors.MarshalError {
	t.Helper()

	require.Error(t, err)
	var marshalErr *bridgeerrors.MarshalError
	require.True(t, errors.As(err, &marshalErr), "expected MarshalError, got %T: %v", err, err)
	return marshalErr
}
