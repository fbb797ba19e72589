// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"errors"
	"io"
)

// Status is the state of a Parser.
type Status byte

// Constants defining the valid Status values. The states InObject, InArray,
// PassedPairKey, and InPairValue are stacked, one per level of nesting.
const (
	Init            Status = iota // nothing has been parsed
	InFinishedValue               // a complete top-level value has been parsed
	InObject                      // inside an object
	InArray                       // inside an array
	PassedPairKey                 // after an object key, before its value
	InPairValue                   // after an object member value
	End                           // the input has been consumed
	InError                       // parsing failed
)

var statusStr = [...]string{
	Init:            "Init",
	InFinishedValue: "InFinishedValue",
	InObject:        "InObject",
	InArray:         "InArray",
	PassedPairKey:   "PassedPairKey",
	InPairValue:     "InPairValue",
	End:             "End",
	InError:         "InError",
}

func (s Status) String() string {
	if int(s) >= len(statusStr) {
		return "invalid status"
	}
	return statusStr[s]
}

// Scope identifies the parent of a value reported to a Handler.
type Scope byte

const (
	ScopeTop    Scope = iota // the value is the whole document
	ScopeObject              // the value is an object member
	ScopeArray               // the value is an array element
)

func (s Scope) String() string {
	switch s {
	case ScopeTop:
		return "top"
	case ScopeObject:
		return "object"
	case ScopeArray:
		return "array"
	default:
		return "invalid scope"
	}
}

// A Handler handles events from parsing an input stream. The parser ensures
// objects, arrays, and object entries are correctly balanced.
//
// If a method returns ErrSuspend, Parse returns nil and the parser keeps its
// state, so a later call to Parse with resume set to true continues with the
// next event. If a method reports any other error, parsing stops and that
// error is returned to the caller.
type Handler interface {
	// StartJSON reports the beginning of a document.
	StartJSON() error

	// EndJSON reports the end of a document, after the last value.
	EndJSON() error

	// StartObject begins a new object whose parent is scope.
	StartObject(scope Scope) error

	// EndObject ends the most recently started object.
	EndObject(scope Scope) error

	// StartObjectEntry begins an object member with the given key.
	StartObjectEntry(key string) error

	// EndObjectEntry ends the current object member, after its value.
	EndObjectEntry() error

	// StartArray begins a new array whose parent is scope.
	StartArray(scope Scope) error

	// EndArray ends the most recently started array.
	EndArray(scope Scope) error

	// Primitive reports a primitive value of the given kind. The cooked text
	// has escapes resolved, the raw text is as written in the input without
	// quotation marks.
	Primitive(scope Scope, kind Kind, cooked, raw string) error
}

// step records progress within the innermost container.
type step byte

const (
	afterOpen  step = iota // after "{" or "["
	afterSep               // after ","
	afterValue             // after a complete element or member
	afterKey               // after an object key
	afterColon             // after ":"
)

// A Parser is a push parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input. Parsing may be
// suspended by the handler and resumed later.
//
// A Parser is not safe for concurrent use, and a Handler must not call back
// into the Parser that is driving it.
type Parser struct {
	lex *Lexer
	cfg Config

	status  Status   // when stack is empty
	stack   []Status // nesting: InObject, InArray, PassedPairKey, InPairValue
	step    step
	started bool // Parse has been called since the last reset
	opened  bool // StartJSON has been delivered
	err     error

	key     Token // most recent object key
	tok     Token // lookahead token, if pending
	tokLoc  Location
	pending bool
}

// NewParser constructs a new Parser that consumes input from r using the
// dialect selected by cfg.
func NewParser(r io.Reader, cfg Config) *Parser {
	p := &Parser{lex: new(Lexer), cfg: cfg}
	cfg.configure(p.lex)
	p.Reset(r)
	return p
}

// Reset discards all parser state and begins reading from r.
func (p *Parser) Reset(r io.Reader) {
	p.lex.Reset(r)
	p.restart()
	p.started = false
}

// Config returns the dialect configuration of p.
func (p *Parser) Config() Config { return p.cfg }

// Status returns the current state of p. Inside a container, this is the
// state of the innermost level of nesting.
func (p *Parser) Status() Status {
	if n := len(p.stack); n > 0 {
		return p.stack[n-1]
	}
	return p.status
}

// Depth returns the current nesting depth of p.
func (p *Parser) Depth() int { return len(p.stack) }

// Done reports whether p has consumed a complete document.
func (p *Parser) Done() bool { return p.Status() == End }

// Position returns the offset of the start of the most recent token.
func (p *Parser) Position() int { return p.lex.Position() }

// Location returns the location of the most recent token.
func (p *Parser) Location() Location { return p.lex.Location() }

// Err returns the error that stopped p, or nil.
func (p *Parser) Err() error { return p.err }

func (p *Parser) restart() {
	p.status = Init
	p.stack = p.stack[:0]
	p.step = afterOpen
	p.opened = false
	p.err = nil
	p.pending = false
	p.key = Token{}
	p.started = true
}

// Parse parses the input stream and delivers events to h until the document
// is complete, an error occurs, or h returns ErrSuspend.
//
// If resume is false, or if this is the first call since p was created or
// reset, parsing begins a new document at the current position of the input.
// Otherwise it continues from where the previous call stopped. Once the
// document is complete, resumed calls do nothing; after an error, resumed
// calls report the same error. In case of a syntax error, the returned error
// has type [*ParseError].
func (p *Parser) Parse(h Handler, resume bool) (err error) {
	if !resume || !p.started {
		p.restart()
		p.lex.err = nil
		if p.lex.tok.Kind == EOF {
			p.lex.tok = Token{}
		}
	} else if p.status == End {
		return nil
	} else if p.status == InError {
		return p.err
	}
	defer p.recoverParseError(&err)

	for {
		if p.advance(h) {
			return nil
		}
	}
}

func (p *Parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		switch err := perr.(type) {
		case suspended:
			*errp = nil
		case *ParseError:
			*errp = p.fail(err)
		case handlerError:
			*errp = p.fail(err.error)
		default:
			panic(perr)
		}
	}
}

func (p *Parser) fail(err error) error {
	p.stack = p.stack[:0]
	p.status = InError
	p.err = err
	return err
}

// advance performs a single transition of the state machine, and reports
// whether the end of the input has been reached.
func (p *Parser) advance(h Handler) bool {
	switch p.Status() {
	case Init:
		if !p.opened {
			p.opened = true
			p.checkError(h.StartJSON())
		}
		tok := p.next()
		if tok.Kind.IsPrimitive() {
			if !p.cfg.AllowTopLevelScalars {
				p.unexpected(tok)
			}
			p.status = InFinishedValue
			p.checkError(h.Primitive(ScopeTop, tok.Kind, tok.Cooked, tok.Raw))
			return false
		}
		p.startContainer(h, tok)

	case InFinishedValue:
		if tok := p.next(); tok.Kind != EOF {
			p.unexpected(tok)
		}
		p.status = End
		p.checkError(h.EndJSON())

	case End:
		return true

	case InObject:
		p.advanceObject(h)

	case PassedPairKey:
		p.advancePair(h)

	case InPairValue:
		p.pop()
		p.step = afterValue
		p.checkError(h.EndObjectEntry())

	case InArray:
		p.advanceArray(h)

	default:
		panic("parser in invalid state " + p.Status().String())
	}
	return false
}

func (p *Parser) advanceObject(h Handler) {
	tok := p.peek()
	switch p.step {
	case afterOpen, afterSep:
		if tok.Kind == RBrace {
			if p.step == afterSep && !p.cfg.AllowTrailingSeparator {
				p.unexpected(tok)
			}
			p.consume()
			p.endContainer(h)
			return
		} else if tok.Kind == String || (tok.Kind.IsPrimitive() && p.cfg.AllowPrimitiveKeys) {
			p.consume()
			p.key = tok
			p.push(PassedPairKey)
			p.step = afterKey
			p.checkError(h.StartObjectEntry(tok.Cooked))
			return
		}

	case afterValue:
		switch tok.Kind {
		case Comma:
			p.consume()
			p.step = afterSep
			return
		case RBrace:
			p.consume()
			p.endContainer(h)
			return
		}
	}
	p.unexpected(tok)
}

func (p *Parser) advancePair(h Handler) {
	tok := p.peek()
	if p.step == afterKey {
		switch tok.Kind {
		case Colon:
			p.consume()
			p.step = afterColon
			return
		case Comma, RBrace:
			if p.cfg.AllowMissingPairValues {
				// The key stands for its own value; the separator is left for
				// the enclosing object.
				p.replace(InPairValue)
				p.checkError(h.Primitive(ScopeObject, String, p.key.Cooked, p.key.Raw))
				return
			}
		}
		p.unexpected(tok)
	}

	// afterColon
	if tok.Kind.IsPrimitive() {
		p.consume()
		p.replace(InPairValue)
		p.checkError(h.Primitive(ScopeObject, tok.Kind, tok.Cooked, tok.Raw))
		return
	}
	p.replace(InPairValue)
	p.startContainer(h, p.next())
}

func (p *Parser) advanceArray(h Handler) {
	tok := p.peek()
	switch p.step {
	case afterOpen, afterSep:
		switch {
		case tok.Kind == RSquare:
			if p.step == afterSep {
				if !p.cfg.AllowTrailingSeparator {
					p.unexpected(tok)
				} else if p.cfg.AllowMissingArrayValues {
					// The element after the last separator is missing. The
					// bracket is left to close the array on the next step.
					p.step = afterValue
					p.checkError(h.Primitive(ScopeArray, Null, "null", ""))
					return
				}
			}
			p.consume()
			p.endContainer(h)
			return
		case tok.Kind == Comma:
			if !p.cfg.AllowMissingArrayValues {
				p.unexpected(tok)
			}
			p.consume()
			p.step = afterSep
			p.checkError(h.Primitive(ScopeArray, Null, "null", ""))
			return
		case tok.Kind.IsPrimitive():
			p.consume()
			p.step = afterValue
			p.checkError(h.Primitive(ScopeArray, tok.Kind, tok.Cooked, tok.Raw))
			return
		}
		p.startContainer(h, p.next())
		return

	case afterValue:
		switch tok.Kind {
		case Comma:
			p.consume()
			p.step = afterSep
			return
		case RSquare:
			p.consume()
			p.endContainer(h)
			return
		}
	}
	p.unexpected(tok)
}

// startContainer begins an object or array for tok, which has already been
// consumed, or fails if tok does not begin a container.
func (p *Parser) startContainer(h Handler, tok Token) {
	scope := p.scope()
	switch tok.Kind {
	case LBrace:
		p.push(InObject)
		p.step = afterOpen
		p.checkError(h.StartObject(scope))
	case LSquare:
		p.push(InArray)
		p.step = afterOpen
		p.checkError(h.StartArray(scope))
	default:
		p.unexpected(tok)
	}
}

// endContainer closes the innermost container, whose closing token has
// already been consumed.
func (p *Parser) endContainer(h Handler) {
	top := p.pop()
	p.step = afterValue
	if len(p.stack) == 0 {
		p.status = InFinishedValue
	}
	scope := p.scope()
	if top == InObject {
		p.checkError(h.EndObject(scope))
	} else {
		p.checkError(h.EndArray(scope))
	}
}

// scope reports the scope of a value starting at the current position.
func (p *Parser) scope() Scope {
	switch p.Status() {
	case InArray:
		return ScopeArray
	case PassedPairKey, InPairValue:
		return ScopeObject
	default:
		return ScopeTop
	}
}

func (p *Parser) push(s Status) { p.stack = append(p.stack, s) }

func (p *Parser) pop() Status {
	n := len(p.stack) - 1
	top := p.stack[n]
	p.stack = p.stack[:n]
	return top
}

func (p *Parser) replace(s Status) { p.stack[len(p.stack)-1] = s }

// peek returns the lookahead token without consuming it.
func (p *Parser) peek() Token {
	if !p.pending {
		tok, err := p.lex.Next()
		if err != nil {
			panic(err)
		}
		p.tok, p.tokLoc, p.pending = tok, p.lex.Location(), true
	}
	return p.tok
}

func (p *Parser) consume() { p.pending = false }

// next returns and consumes the lookahead token.
func (p *Parser) next() Token {
	tok := p.peek()
	p.consume()
	return tok
}

func (p *Parser) unexpected(tok Token) {
	panic(&ParseError{
		Kind:     UnexpectedToken,
		Pos:      p.tokLoc.Pos,
		Location: p.tokLoc.First,
		Token:    tok,
	})
}

// checkError unwinds the parse if a handler reported an error.
func (p *Parser) checkError(err error) {
	if errors.Is(err, ErrSuspend) {
		panic(suspended{})
	} else if err != nil {
		panic(handlerError{err})
	}
}

type suspended struct{}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }
