// Package exports provides the host export registry: the single lookup and
// registration surface through which host code reaches bridged symbols.
//
// A Registry is immutable once built. Names are unique and keep the order in
// which they were registered, which doubles as the module's public export list.
package exports
