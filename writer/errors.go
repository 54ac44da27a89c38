package writer

import "fmt"

// WriteError reports a logical input that does not match the schema it is
// being flattened against: a null in a required slot, or a Value whose
// Kind does not match what the schema node at that path expects.
type WriteError struct {
	Path string
	Msg  string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error at %q: %s", e.Path, e.Msg)
}

// InternalError reports an invariant violation discovered while encoding
// pages: an offset overflow, an unsupported configuration, or a level
// algorithm contract break the caller cannot recover from.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }
