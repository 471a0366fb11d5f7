// Package registry provides a generic, name-keyed registry that rejects
// duplicates and remembers registration order. The dispatcher builds its
// command table with it and the markup parser keeps its components in one.
package registry
