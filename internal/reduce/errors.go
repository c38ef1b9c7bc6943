package reduce

import "fmt"

// ValidationError is returned before any geometric work when the input
// ring or the requested vertex count cannot be processed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid simplification request: " + e.Reason
}

// NoRemovableVertexError reports that every remaining vertex has an
// infinite removal cost while the ring is still above the target size.
type NoRemovableVertexError struct {
	Length int
	Target int
}

func (e *NoRemovableVertexError) Error() string {
	return fmt.Sprintf("no removable vertex left at %d vertices (target %d)", e.Length, e.Target)
}

// BufferError wraps a failure of the ring repair collaborator.
type BufferError struct {
	Err error
}

func (e *BufferError) Error() string {
	return "ring repair failed: " + e.Err.Error()
}

func (e *BufferError) Unwrap() error {
	return e.Err
}
