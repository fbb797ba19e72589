// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonc

import "fmt"

// Kind is the type of a lexical token in the JSON grammar. The primitive
// kinds (String through Null) also classify Primitive values.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // invalid token
	LBrace              // left brace "{"
	RBrace              // right brace "}"
	LSquare             // left square bracket "["
	RSquare             // right square bracket "]"
	Comma               // item separator ","
	Colon               // pair separator ":"
	EOF                 // end of input

	String  // string, quoted or bare
	Integer // number: integer with no fraction or exponent
	Real    // number with fraction and/or exponent
	Boolean // constant: true or false
	Null    // constant: null

	// Do not modify the order of these constants without updating the
	// IsPrimitive check below.
)

var kindStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	EOF:     "end of input",
	String:  "string",
	Integer: "integer",
	Real:    "real",
	Boolean: "boolean",
	Null:    "null",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// IsPrimitive reports whether k is one of the primitive kinds String,
// Integer, Real, Boolean, or Null.
func (k Kind) IsPrimitive() bool { return k >= String && k <= Null }

// A Token is a single lexical unit of the input. Structural tokens carry no
// text. Primitive tokens carry both the cooked text, with escape sequences
// resolved, and the raw text exactly as it appeared in the source. For
// strings the raw text excludes the enclosing quotation marks; for all other
// primitives Cooked == Raw.
type Token struct {
	Kind   Kind
	Cooked string
	Raw    string
}

func (t Token) String() string {
	switch t.Kind {
	case String:
		return fmt.Sprintf("string %q", t.Cooked)
	case Integer, Real, Boolean, Null:
		return t.Raw
	default:
		return t.Kind.String()
	}
}
