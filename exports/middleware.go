package exports

import (
	"context"
	"log/slog"
	"time"

	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
)

// HostFunc is the signature of a callable host export.
type HostFunc func(ctx context.Context, args ...any) (any, error)

// Middleware is a function that wraps a HostFunc to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	tracing := func(next HostFunc) HostFunc {
//	    return func(ctx context.Context, args ...any) (any, error) {
//	        slog.InfoContext(ctx, "calling export")
//	        return next(ctx, args...)
//	    }
//	}
type Middleware func(next HostFunc) HostFunc

// RegistryOption is a functional option for configuring a Registry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware returns a middleware that converts panics raised by a
// host function into a *errors.PanicError instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next HostFunc) HostFunc {
		return func(ctx context.Context, args ...any) (result any, err error) {
			defer func() {
				if r := recover(); r != nil {
					result = nil
					err = &bridgeerrors.PanicError{Value: r, Function: exportName(ctx)}
				}
			}()
			return next(ctx, args...)
		}
	}
}

// LoggingMiddleware returns a middleware that logs export invocations at debug
// level and failures at warn level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next HostFunc) HostFunc {
		return func(ctx context.Context, args ...any) (any, error) {
			name := exportName(ctx)
			start := time.Now()
			logger.DebugContext(ctx, "invoking export", "function", name, "args", len(args))
			result, err := next(ctx, args...)
			if err != nil {
				logger.WarnContext(ctx, "export failed", "function", name, "error", err)
			} else {
				logger.DebugContext(ctx, "export completed", "function", name, "duration", time.Since(start))
			}
			return result, err
		}
	}
}

func exportName(ctx context.Context) string {
	if cc, ok := ctx.(CallContext); ok {
		return cc.ExportName()
	}
	return "unknown"
}
