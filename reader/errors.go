// Package reader implements the nested array reconstruction engine:
// given a column chunk's decoded (values, def_levels, rep_levels) triples
// from package file, it reassembles the logical shape a nested schema
// describes (lists of lists, optional structs, maps) by composing the
// three level algorithms in package level.
package reader

import "fmt"

// SchemaMismatch reports that a requested column path does not exist in
// the schema, or that a node's shape does not match what the caller asked
// to read (e.g. requesting a list read on a scalar leaf).
type SchemaMismatch struct {
	Path string
	Msg  string
}

func (e *SchemaMismatch) Error() string {
	return fmt.Sprintf("schema mismatch at %q: %s", e.Path, e.Msg)
}

// InternalError reports an invariant violation discovered while
// reassembling a nested value: a position-alignment failure between
// sibling leaf columns, or a level algorithm contract break the caller
// cannot recover from.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }
