// Package goja provides the ports.Engine implementation backed by the goja
// ECMAScript runtime.
//
// The adapter wraps a caller-owned *goja.Runtime. It never creates or tears down
// process-wide state; whoever constructs the runtime owns its lifecycle. It handles:
//
//   - Compiling and running source with diagnostic filenames
//   - Marshaling host values into script values and back
//   - Converting script exceptions and host panics into domain errors
//
// # Basic Usage
//
//	rt := goja.New()
//	engine := gojaengine.NewEngine(rt,
//	    gojaengine.WithDefaultFilename("app.js"),
//	)
//
//	v, err := engine.Evaluate("1 + 1", entities.EvalOptions{})
//
// A goja runtime is not goroutine-safe, and neither is the Engine. Serialize
// access externally when the host is multi-threaded.
package goja
