// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/creachadair/jsonc/internal/escape"

	"go4.org/mem"
)

// A Lexer reads lexical tokens from an input stream. Each call to Next
// advances the lexer to the next token, or reports an error.
//
// Offsets reported by a Lexer count characters (runes) from the beginning of
// the input, not bytes.
type Lexer struct {
	r *bufio.Reader

	comments bool // skip comments as whitespace
	squote   bool // allow single-quoted strings
	bare     bool // allow unquoted bare-word strings

	buf bytes.Buffer // raw text of the current token
	tok Token
	err error // sticky; once set, Next reports it forever

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int

	// State before the most recent rune, for unrune.
	uend, uline, ucol int
	canUnread         bool
}

// NewLexer constructs a new lexer that consumes input from r.
func NewLexer(r io.Reader) *Lexer {
	lex := new(Lexer)
	lex.Reset(r)
	return lex
}

// Reset discards all state in lex and begins reading from r. The dialect
// settings are preserved.
func (lex *Lexer) Reset(r io.Reader) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	*lex = Lexer{r: br, comments: lex.comments, squote: lex.squote, bare: lex.bare}
}

// AllowComments configures the lexer to skip (true) or reject (false)
// comments. If enabled, C++ style block comments (/* ... */) and line
// comments (// ...) are discarded as if they were whitespace.
func (lex *Lexer) AllowComments(ok bool) { lex.comments = ok }

// AllowSingleQuotes configures the lexer to accept (true) or reject (false)
// string values enclosed in single quotation marks ('...').
func (lex *Lexer) AllowSingleQuotes(ok bool) { lex.squote = ok }

// AllowBareWords configures the lexer to accept (true) or reject (false)
// unquoted strings. A bare word is a run of characters that are not
// whitespace, punctuation, or quotation marks, and that is not a number or
// one of the constants true, false, and null.
func (lex *Lexer) AllowBareWords(ok bool) { lex.bare = ok }

// Next advances lex to the next token of the input and returns it, or reports
// an error. At the end of the input, Next returns a token of kind EOF, and
// continues to do so on subsequent calls. After an error, Next reports the
// same error on every subsequent call.
func (lex *Lexer) Next() (Token, error) {
	if lex.err != nil {
		return Token{}, lex.err
	} else if lex.tok.Kind == EOF {
		return lex.tok, nil
	}
	lex.buf.Reset()
	lex.tok = Token{}

	for {
		lex.pos, lex.pline, lex.pcol = lex.end, lex.eline, lex.ecol
		ch, err := lex.rune()
		if err == io.EOF {
			return lex.emit(EOF), nil
		} else if err != nil {
			return Token{}, lex.fail(err)
		}

		// Discard whitespace.
		if isSpace(ch) {
			continue
		}

		// Discard comments, if enabled.
		if ch == '/' && lex.comments {
			if err := lex.skipComment(); err != nil {
				return Token{}, err
			}
			continue
		}

		// Handle punctuation.
		if k, ok := selfDelim(ch); ok {
			return lex.emit(k), nil
		}

		switch {
		case ch == '"' || (ch == '\'' && lex.squote):
			return lex.scanString(ch)
		case isNumStart(ch):
			return lex.scanNumber(ch)
		case lex.bare && isWordRune(ch):
			return lex.scanWord(ch)
		case ch == 't' || ch == 'f' || ch == 'n':
			return lex.scanConstant(ch)
		default:
			return Token{}, lex.failChar(lex.end-1, ch)
		}
	}
}

// Token returns the most recent token returned by Next.
func (lex *Lexer) Token() Token { return lex.tok }

// Position returns the offset of the start of the most recent token.
func (lex *Lexer) Position() int { return lex.pos }

// Span returns the location span of the current token.
func (lex *Lexer) Span() Span { return Span{Pos: lex.pos, End: lex.end} }

// Location returns the complete location of the current token.
func (lex *Lexer) Location() Location {
	return Location{
		Span:  lex.Span(),
		First: LineCol{Line: lex.pline + 1, Column: lex.pcol},
		Last:  LineCol{Line: lex.eline + 1, Column: lex.ecol},
	}
}

// emit records a token of kind k whose raw and cooked text are the contents
// of the buffer.
func (lex *Lexer) emit(k Kind) Token {
	lex.tok = Token{Kind: k}
	if k.IsPrimitive() {
		text := lex.buf.String()
		lex.tok.Cooked, lex.tok.Raw = text, text
	}
	return lex.tok
}

// scanString scans a string delimited by quote. The opening quote has already
// been consumed. The raw text of the token excludes the quotes.
func (lex *Lexer) scanString(quote rune) (Token, error) {
	escPos := -1 // offset of a pending backslash, or -1
	for {
		ch, err := lex.rune()
		if err == io.EOF {
			// An unterminated string ends the input.
			lex.pos, lex.pline, lex.pcol = lex.end, lex.eline, lex.ecol
			return lex.emit(EOF), nil
		} else if err != nil {
			return Token{}, lex.fail(err)
		}

		if escPos >= 0 {
			// We are awaiting the completion of a \-escape.
			switch ch {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				lex.buf.WriteRune(ch)
			case '\'':
				if quote != '\'' {
					return Token{}, lex.failChar(escPos, ch)
				}
				lex.buf.WriteRune(ch)
			case 'u':
				lex.buf.WriteRune(ch)
				if err := lex.readHex4(escPos); err == io.EOF {
					lex.pos, lex.pline, lex.pcol = lex.end, lex.eline, lex.ecol
					return lex.emit(EOF), nil
				} else if err != nil {
					return Token{}, err
				}
			default:
				return Token{}, lex.failChar(escPos, ch)
			}
			escPos = -1
			continue
		}

		if ch == quote {
			break
		} else if ch == '\\' {
			escPos = lex.end - 1
		}
		lex.buf.WriteRune(ch)
	}

	raw := lex.buf.Bytes()
	cooked, err := escape.Unquote(mem.B(raw))
	if err != nil {
		return Token{}, lex.fail(err) // not reachable after validation
	}
	lex.tok = Token{Kind: String, Cooked: string(cooked), Raw: string(raw)}
	return lex.tok, nil
}

// readHex4 reads exactly 4 hexadecimal digits from the input. Errors are
// attributed to the backslash at escPos. It returns io.EOF unrecorded if the
// input ends before the digits are complete.
func (lex *Lexer) readHex4(escPos int) error {
	for range 4 {
		ch, err := lex.rune()
		if err == io.EOF {
			return err
		} else if err != nil {
			return lex.fail(err)
		} else if !isHexDigit(ch) {
			return lex.failChar(escPos, ch)
		}
		lex.buf.WriteRune(ch)
	}
	return nil
}

func (lex *Lexer) scanNumber(start rune) (Token, error) {
	lex.buf.WriteRune(start)

	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		ch, err := lex.require(isDigit)
		if err != nil {
			return Token{}, err
		}
		lex.buf.WriteRune(ch)
	}
	lead := lex.buf.Len() - 1 // index of the first digit

	// Consume the remainder of an integer.
	nr, ch, err := lex.readWhile(isDigit)
	if err != nil && err != io.EOF {
		return Token{}, lex.fail(err)
	}

	// Check for extra leading zeroes, which JSON does not allow.
	// That is: 0.12 is OK, 01.2 is not.
	if lex.buf.Bytes()[lead] == '0' && nr > 0 {
		return Token{}, lex.failChar(lex.pos+lead+1, rune(lex.buf.Bytes()[lead+1]))
	} else if err == io.EOF {
		return lex.emit(Integer), nil
	}

	kind := Integer

	// If a decimal point follows, consume a fractional part.
	if ch == '.' {
		lex.buf.WriteRune(ch)
		next, err := lex.require(isDigit)
		if err != nil {
			return Token{}, err
		}
		lex.buf.WriteRune(next)
		kind = Real
		_, ch, err = lex.readWhile(isDigit)
		if err == io.EOF {
			return lex.emit(kind), nil
		} else if err != nil {
			return Token{}, lex.fail(err)
		}
	}

	// If an exponent follows, consume it.
	if ch != 'E' && ch != 'e' {
		lex.unrune()
		return lex.emit(kind), nil
	}
	lex.buf.WriteRune(ch)
	ch, err = lex.require(isExpStart)
	if err != nil {
		return Token{}, err
	}
	lex.buf.WriteRune(ch)
	if ch == '-' || ch == '+' {
		ch, err = lex.require(isDigit)
		if err != nil {
			return Token{}, err
		}
		lex.buf.WriteRune(ch)
	}
	_, _, err = lex.readWhile(isDigit)
	if err == nil {
		lex.unrune()
	} else if err != io.EOF {
		return Token{}, lex.fail(err)
	}
	return lex.emit(Real), nil
}

// scanConstant scans one of the constants true, false, or null.
func (lex *Lexer) scanConstant(first rune) (Token, error) {
	var want mem.RO
	var kind Kind
	switch first {
	case 't':
		want, kind = mem.S("true"), Boolean
	case 'f':
		want, kind = mem.S("false"), Boolean
	default:
		want, kind = mem.S("null"), Null
	}
	lex.buf.WriteRune(first)
	_, _, err := lex.readWhile(isNameRune)
	if err == nil {
		lex.unrune()
	} else if err != io.EOF {
		return Token{}, lex.fail(err)
	}
	got := mem.B(lex.buf.Bytes())
	if got.Equal(want) {
		return lex.emit(kind), nil
	}

	// Report the first character that does not match the constant. If the
	// text is a proper prefix of the constant, that is the character that
	// follows it.
	i := 0
	for i < got.Len() && i < want.Len() && got.At(i) == want.At(i) {
		i++
	}
	if i < got.Len() {
		return Token{}, lex.failChar(lex.pos+i, rune(got.At(i)))
	}
	ch, err := lex.rune()
	if err == io.EOF {
		return Token{}, lex.failChar(lex.end, -1)
	} else if err != nil {
		return Token{}, lex.fail(err)
	}
	return Token{}, lex.failChar(lex.end-1, ch)
}

// scanWord scans a bare word. The constants true, false, and null are
// reported as such; any other word is reported as a string.
func (lex *Lexer) scanWord(first rune) (Token, error) {
	lex.buf.WriteRune(first)
	_, _, err := lex.readWhile(lex.inWord)
	if err == nil {
		lex.unrune()
	} else if err != io.EOF {
		return Token{}, lex.fail(err)
	}
	switch lex.buf.String() {
	case "true", "false":
		return lex.emit(Boolean), nil
	case "null":
		return lex.emit(Null), nil
	}
	return lex.emit(String), nil
}

// inWord reports whether ch may continue a bare word. When comments are
// enabled, a slash ends the word.
func (lex *Lexer) inWord(ch rune) bool {
	return isWordRune(ch) || isNumStart(ch) || (ch == '/' && !lex.comments)
}

// skipComment discards a comment. The leading "/" has been consumed.
func (lex *Lexer) skipComment() error {
	start := lex.end - 1
	ch, err := lex.rune()
	if err == io.EOF {
		return lex.failChar(start, '/')
	} else if err != nil {
		return lex.fail(err)
	}
	switch ch {
	case '/': // line comment to LF
		_, _, err := lex.readWhile(isNotLF)
		if err != nil && err != io.EOF {
			return lex.fail(err)
		}
		return nil

	case '*': // block comment
		star := false
		for {
			ch, err := lex.rune()
			if err == io.EOF {
				return lex.failChar(lex.end, -1)
			} else if err != nil {
				return lex.fail(err)
			} else if star && ch == '/' {
				return nil
			}
			star = ch == '*'
		}

	default:
		return lex.failChar(lex.end-1, ch)
	}
}

func (lex *Lexer) rune() (rune, error) {
	ch, _, err := lex.r.ReadRune()
	if err != nil {
		lex.canUnread = false
		return 0, err
	}
	lex.uend, lex.uline, lex.ucol = lex.end, lex.eline, lex.ecol
	lex.canUnread = true
	lex.end++
	if ch == '\n' {
		lex.eline++
		lex.ecol = 0
	} else {
		lex.ecol++
	}
	return ch, nil
}

func (lex *Lexer) unrune() {
	if lex.canUnread {
		lex.end, lex.eline, lex.ecol = lex.uend, lex.uline, lex.ucol
		lex.canUnread = false
		lex.r.UnreadRune()
	}
}

// require reads a single rune matching f from the input, or reports an
// UnexpectedChar error for whatever was found instead.
func (lex *Lexer) require(f func(rune) bool) (rune, error) {
	ch, err := lex.rune()
	if err == io.EOF {
		return 0, lex.failChar(lex.end, -1)
	} else if err != nil {
		return 0, lex.fail(err)
	} else if !f(ch) {
		return 0, lex.failChar(lex.end-1, ch)
	}
	return ch, nil
}

// readWhile consumes runes matching f from the input until EOF or until a rune
// not matching f is found. The first non-matching rune (if any) is returned.
// It is the caller's responsibility to unread this rune, if desired.
// The int reports the number of runes consumed.
func (lex *Lexer) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := lex.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		lex.buf.WriteRune(ch)
		nr++
	}
}

// fail records a read error from the underlying input.
func (lex *Lexer) fail(err error) error {
	return lex.setErr(&ParseError{
		Kind:     WrappedError,
		Pos:      lex.end,
		Location: LineCol{Line: lex.eline + 1, Column: lex.ecol},
		err:      err,
	})
}

// failChar records an UnexpectedChar error at offset pos. A negative ch
// denotes the end of the input.
func (lex *Lexer) failChar(pos int, ch rune) error {
	// The offending character is always on the current token's line or the
	// line where scanning stopped; compute the column relative to whichever
	// of the two the offset falls on.
	loc := LineCol{Line: lex.eline + 1, Column: lex.ecol - (lex.end - pos)}
	if loc.Column < 0 {
		loc = LineCol{Line: lex.pline + 1, Column: lex.pcol + (pos - lex.pos)}
	}
	return lex.setErr(&ParseError{Kind: UnexpectedChar, Pos: pos, Location: loc, Char: ch})
}

func (lex *Lexer) setErr(err error) error {
	lex.err = err
	return err
}

// IsReadError reports whether err is a ParseError that wraps a failure of the
// underlying reader.
func IsReadError(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr) && perr.Kind == WrappedError
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t' || ch == '\f'
}

func isNotLF(ch rune) bool    { return ch != '\n' }
func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isExpStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isWordRune reports whether ch may begin a bare word.
func isWordRune(ch rune) bool {
	return ch > ' ' && ch != 0x7f && !isDigit(ch) && !strings.ContainsRune(`{}[],:"'/-`, ch)
}

var self = [...]Kind{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Kind, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
