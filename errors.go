// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// UnexpectedChar means the lexer found a character that cannot appear at
	// that position: an invalid escape, an invalid token start, a malformed
	// number or keyword.
	UnexpectedChar ErrorKind = iota

	// UnexpectedToken means the parser received a well-formed token that is
	// not permitted in its current state.
	UnexpectedToken

	// WrappedError means reading the input failed. The underlying error is
	// available via errors.Unwrap.
	WrappedError
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedChar:
		return "unexpected character"
	case UnexpectedToken:
		return "unexpected token"
	case WrappedError:
		return "read error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is the concrete type of errors reported by the Lexer and the
// Parser for malformed input.
type ParseError struct {
	Kind     ErrorKind
	Pos      int     // absolute character offset, 0-based
	Location LineCol // line and column corresponding to Pos

	Char  rune  // for UnexpectedChar: the offending character, or -1 at EOF
	Token Token // for UnexpectedToken: the offending token

	err error
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %s", e.Location, e.Pos, e.describe())
}

func (e *ParseError) describe() string {
	switch e.Kind {
	case UnexpectedChar:
		if e.Char < 0 {
			return "unexpected end of input"
		} else if e.err != nil {
			return fmt.Sprintf("unexpected character %q: %v", e.Char, e.err)
		}
		return fmt.Sprintf("unexpected character %q", e.Char)
	case UnexpectedToken:
		return fmt.Sprintf("unexpected %v", e.Token)
	default:
		return e.err.Error()
	}
}

// Unwrap supports error wrapping.
func (e *ParseError) Unwrap() error { return e.err }

// ErrSuspend is returned by a Handler method to stop parsing without error.
// The Parser retains its state, and a later call to Parse with resume set to
// true continues with the next token of the input.
var ErrSuspend = errors.New("parsing suspended")
