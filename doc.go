// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonc implements a streaming JSON lexer, a resumable push parser,
// and an encoder, for standard JSON and for several relaxed dialects.
//
// # Lexing
//
// The Lexer type implements a lexical scanner for JSON. Construct a lexer
// from an io.Reader and call its Next method to iterate over the stream. Next
// returns the next token, or reports an error:
//
//	lex := jsonc.NewLexer(input)
//	for {
//	   tok, err := lex.Next()
//	   if err != nil {
//	      log.Fatalf("Lexing failed: %v", err)
//	   } else if tok.Kind == jsonc.EOF {
//	      break
//	   }
//	   log.Printf("Next token: %v", tok)
//	}
//
// Each primitive token carries both its cooked text, with escape sequences
// resolved, and its raw text as written in the input. Offsets count
// characters, not bytes.
//
// # Dialects
//
// A Config selects the grammar accepted by the parser. Strict accepts only
// standard JSON with an object or array at the top level. Default also
// accepts scalar documents. Lenient accepts trailing separators, missing
// array elements, primitive object keys, single-quoted strings, and unquoted
// strings. Any preset can be extended to skip comments:
//
//	cfg := jsonc.Lenient().WithComments()
//
// # Parsing
//
// The Parser type implements an event-driven push parser. The parser reports
// the structure of the input by calling methods on a Handler:
//
//	JSON type  | Methods                          | Description
//	---------- | -------------------------------- | ---------------------------------
//	document   | StartJSON, EndJSON               | the whole input
//	object     | StartObject, EndObject           | { ... }
//	array      | StartArray, EndArray             | [ ... ]
//	member     | StartObjectEntry, EndObjectEntry | "key": value
//	value      | Primitive                        | true, false, null, number, string
//
// The parser ensures that corresponding Start and End methods are correctly
// paired, or that a *ParseError is reported. If a handler method returns
// ErrSuspend, Parse returns nil and keeps its state; calling Parse again with
// resume set to true continues where it stopped:
//
//	p := jsonc.NewParser(input, jsonc.Default())
//	for err := p.Parse(h, false); !p.Done(); err = p.Parse(h, true) {
//	   if err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	   // ... h stopped at something interesting ...
//	}
//
// # Trees
//
// The Parse, ParseString, and ParseWithFactory functions build a tree of
// values using a TreeBuilder. By default objects are *Object, arrays are
// *Array, and scalars are Primitive values. A custom TypeFactory may build
// any other representation.
//
// # Encoding
//
// The Encode, Marshal, and ToJSON functions render values as JSON text. In
// Raw mode numbers and constants are written exactly as they appeared in the
// source, so parsing and re-encoding 1.230 yields 1.230. In Cooked mode all
// values are written from their cooked text.
package jsonc
