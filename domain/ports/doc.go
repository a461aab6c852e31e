// Package ports defines the interfaces the bridge consumes from the script engine.
// Components depend on these abstractions; infrastructure adapters implement them.
package ports
