package domain

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is wrapped by IndexError.
var ErrIndexOutOfRange = errors.New("child index out of range")

// ErrUnknownTag is returned when a document names a tag the core does not know.
var ErrUnknownTag = errors.New("unknown tag")

// ErrMalformed is wrapped by StructureError.
var ErrMalformed = errors.New("malformed expression")

// ErrNoParent is raised when ReplaceBy is called on a node that has no slot.
var ErrNoParent = errors.New("node has no parent")

// IndexError is the panic value for an out-of-range child access.
// Such an access is a bug in the caller, never a recoverable condition.
type IndexError struct {
	Tag   Tag
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d outside %d children: %v", e.Tag.Short(), e.Index, e.Len, ErrIndexOutOfRange)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// StructureError reports a node violating the arity or leaf invariants of its tag.
type StructureError struct {
	Tag    Tag
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Tag.Short(), e.Reason, ErrMalformed)
}

func (e *StructureError) Unwrap() error { return ErrMalformed }
