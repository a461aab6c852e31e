// Package operators exposes the script engine's typeof and new operators,
// which have no Go syntax equivalent, as plain host-callable functions.
//
// Both operators are compiled once, as script closures, when the Proxy is
// created. Calls never re-parse source except to resolve a constructor given
// as source text.
package operators
