// Package bridge builds the host module that exposes a script engine to Go.
//
// New installs the script typeof and new operators as host functions, adds
// any host exports, then mirrors the script global scope once. The resulting
// Module is immutable and lists its exports in registration order, operators
// first.
//
//	mod, err := bridge.New(ctx, gojaengine.NewEngine(nil),
//	    bridge.WithLogger(logger),
//	    bridge.WithHostExport("VERSION", "1.0"),
//	)
//	tag, err := mod.Typeof(42) // "number"
package bridge
