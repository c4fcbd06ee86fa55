package bibtex

import (
	"errors"
	"fmt"

	"refman/src/internal/schema"
)

// UnknownKindError is returned by New and collected by Parse for entries whose
// type tag is not supported.
type UnknownKindError = schema.UnknownKindError

var (
	// ErrUnknownKind matches every *UnknownKindError.
	ErrUnknownKind = schema.ErrUnknownKind
	// ErrMalformed matches every *ParseError.
	ErrMalformed = errors.New("malformed entry")
)

// ParseError describes an entry whose text lacks the expected delimiters.
// Entry is the 1-based position of the segment among the non-comment
// segments of the document.
type ParseError struct {
	Entry   int
	Segment string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entry %d: %s: %q", e.Entry, e.Reason, truncate(e.Segment, 40))
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

// entryError ties a per-entry failure to its position without hiding the
// underlying error type from errors.As.
type entryError struct {
	entry int
	err   error
}

func (e *entryError) Error() string { return fmt.Sprintf("entry %d: %v", e.entry, e.err) }

func (e *entryError) Unwrap() error { return e.err }
