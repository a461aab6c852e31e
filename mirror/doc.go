// Package mirror copies the bindings of the script global scope into the host
// export namespace.
//
// A Mirror enumerates the own property names of globalThis once per Collect
// and drops the evaluator entry point, private names, names the namespace
// already holds and any configured exclusions. Every remaining binding is read
// and converted to a host value. A binding that cannot be read is skipped and
// reported; it never aborts the pass.
package mirror
