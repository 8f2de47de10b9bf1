// Package reporter contains the diagnostic sink of the compiler: faults
// raised during analysis are reported here and carry a source position and a
// machine-readable tag. This core only raises faults; it never recovers from
// them.
package reporter

import (
	"errors"
	"fmt"

	"github.com/joeskeen/emojicode/ast"
)

// ErrInvalidSource is a sentinel error returned by compilation entry points
// in the event that faults were encountered but the configured ErrorReporter
// always returns nil.
var ErrInvalidSource = errors.New("compilation failed: invalid Emojicode source")

// Tag is a machine-readable identification of a fault class.
type Tag string

const (
	// TagSemantic marks semantic faults: unresolved identifiers or types,
	// type mismatches, malformed constructs.
	TagSemantic Tag = "semantic"
	// TagUnresolvedMember marks a member lookup that found nothing.
	TagUnresolvedMember Tag = "unresolved-member"
	// TagUnhandledError marks an error-prone call whose possible error
	// nothing accounts for. This is an obligation violation, not a typing
	// one.
	TagUnhandledError Tag = "unhandled-error"
	// TagSuperContext marks a superclass invocation outside a subclassing
	// context.
	TagSuperContext Tag = "super-context"
)

// ErrorWithPos is a fault about an Emojicode source file that includes the
// location in the file that caused it.
//
// The value of Error() contains both the position and the underlying error;
// Unwrap() yields only the underlying error.
type ErrorWithPos interface {
	error
	Position() ast.SourcePos
	Tag() Tag
	Unwrap() error
}

// Error wraps err as a fault at pos.
func Error(tag Tag, pos ast.SourcePos, err error) ErrorWithPos {
	return errorWithPos{tag: tag, pos: pos, underlying: err}
}

// Errorf creates a fault at pos from a format string.
func Errorf(tag Tag, pos ast.SourcePos, format string, args ...any) ErrorWithPos {
	return errorWithPos{tag: tag, pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithPos struct {
	tag        Tag
	pos        ast.SourcePos
	underlying error
}

func (e errorWithPos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

func (e errorWithPos) Position() ast.SourcePos { return e.pos }

func (e errorWithPos) Tag() Tag { return e.tag }

func (e errorWithPos) Unwrap() error { return e.underlying }

var _ ErrorWithPos = errorWithPos{}
