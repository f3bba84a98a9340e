package bf

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrHalted is returned by Step once the last instruction has run.
	ErrHalted = errors.New("program halted")
	ErrSyntax = errors.New("unmatched bracket")
	ErrBounds = errors.New("data pointer out of bounds")
	ErrIO     = errors.New("input error")
)

// SyntaxError describes an unmatched bracket.
type SyntaxError struct {
	Op     Op
	Pos    int // byte offset in the source
	Line   int
	Column int
}

func newSyntaxError(src []byte, in Instruction) *SyntaxError {
	line := bytes.Count(src[:in.Pos], []byte{'\n'}) + 1
	col := in.Pos - bytes.LastIndexByte(src[:in.Pos], '\n')
	return &SyntaxError{
		Op:     in.Op,
		Pos:    in.Pos,
		Line:   line,
		Column: col,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: unmatched '%s' at %d:%d", e.Op, e.Line, e.Column)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// RuntimeError describes a fatal trap raised while executing an
// instruction.
type RuntimeError struct {
	Err     error // ErrBounds or ErrIO
	Cause   error // underlying read error when Err is ErrIO
	Index   int   // instruction index
	Pos     int   // byte offset in the source
	Op      Op
	Pointer int
}

func (e *RuntimeError) Error() string {
	msg := e.Err.Error()
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return fmt.Sprintf("%s: '%s' at offset %d (instruction %d, pointer %d)", msg, e.Op, e.Pos, e.Index, e.Pointer)
}

func (e *RuntimeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}
