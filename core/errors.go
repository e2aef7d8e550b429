package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers are expected to match with
// errors.Is. Wrapped with context at the point of failure.
var (
	// ErrUnsupportedFeature marks PDF constructs the parser deliberately
	// rejects: cross-reference streams, encryption. These abort parsing
	// rather than risk silent mis-reads.
	ErrUnsupportedFeature = errors.New("pdf: unsupported feature")

	// ErrUnsupportedFilter is returned for stream filters outside the
	// supported set. The raw data is never passed through undecoded.
	ErrUnsupportedFilter = errors.New("pdf: unsupported stream filter")

	// ErrObjectNotFound is returned when an indirect reference points at
	// an object the cross-reference table does not record, or records as
	// free. Callers typically degrade the reference to Null.
	ErrObjectNotFound = errors.New("pdf: object not found")
)

// LexError reports a malformed token. Offset is the byte position in the
// input where tokenization failed.
type LexError struct {
	Offset int64
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("pdf: lex error at offset %d: %s", e.Offset, e.Msg)
}

// ParseError reports a violation of the PDF object grammar. Offset is the
// byte position in the input where parsing failed.
type ParseError struct {
	Offset int64
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pdf: parse error at offset %d: %s", e.Offset, e.Msg)
}

// XRefError reports a missing or corrupt cross-reference table or trailer,
// including a /Prev chain that loops or points outside the file.
type XRefError struct {
	Msg string
}

func (e *XRefError) Error() string {
	return "pdf: xref error: " + e.Msg
}

func lexErrorf(offset int64, format string, args ...any) error {
	return &LexError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func parseErrorf(offset int64, format string, args ...any) error {
	return &ParseError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func xrefErrorf(format string, args ...any) error {
	return &XRefError{Msg: fmt.Sprintf(format, args...)}
}
