// Package imaging loads and caches the images the matching pipeline
// works on.
//
// This package owns file-to-image decoding for the whole module: base
// scenes, logo queries and background bank inputs all come through
// here. Decoded images are immutable once loaded; every other package
// treats them as read-only.
//
// # Caching
//
// The Cache type keeps decoded images keyed by path, so a scene
// referenced by several tool calls is read and decoded once. It is
// safe for concurrent use. Large images stay resident while cached;
// long-running processes can call Evict or Clear to release them.
//
// # Loading Order
//
// LoadAll preserves input order, which matters downstream: query
// features, cutoffs and match results all line up positionally with
// the paths given to a request.
//
// # Error Handling
//
// Functions return errors for missing files, undecodable data and,
// from LoadAll, the index of the path that failed. A failed batch load
// returns no partial results.
package imaging
