// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jsonc

// Config selects the grammar dialect accepted by a Parser. The zero value is
// strict JSON. Config values are plain data and may be copied and shared.
type Config struct {
	// Accept a primitive value (string, number, boolean, null) as the whole
	// document.
	AllowTopLevelScalars bool

	// Accept a separator before the closing "]" or "}", as in [1,2,].
	AllowTrailingSeparator bool

	// Accept an empty array element, as in [1,,2]. The missing element is
	// reported as a null whose raw text is empty. With AllowTrailingSeparator,
	// the element after a final separator, as in [1,2,], is also reported.
	AllowMissingArrayValues bool

	// Accept object keys that are numbers, booleans, or null.
	AllowPrimitiveKeys bool

	// Accept an object key with no ":" and value, as in {"a","b":1}. The key
	// is reported as its own string value.
	AllowMissingPairValues bool

	// Accept strings enclosed in single quotation marks.
	AllowSingleQuotes bool

	// Accept unquoted strings.
	AllowBareWords bool

	// Skip C++ style comments as whitespace.
	AllowComments bool
}

// Strict returns a Config that accepts only standard JSON with an object or
// array at the top level.
func Strict() Config { return Config{} }

// Default returns a Config that accepts standard JSON, including scalar
// documents.
func Default() Config { return Config{AllowTopLevelScalars: true} }

// Lenient returns a Config that enables every relaxation except comments and
// missing object values.
func Lenient() Config {
	return Config{
		AllowTopLevelScalars:    true,
		AllowTrailingSeparator:  true,
		AllowMissingArrayValues: true,
		AllowPrimitiveKeys:      true,
		AllowSingleQuotes:       true,
		AllowBareWords:          true,
	}
}

// WithComments returns a copy of c with comments enabled.
func (c Config) WithComments() Config { c.AllowComments = true; return c }

func (c Config) configure(lex *Lexer) {
	lex.AllowComments(c.AllowComments)
	lex.AllowSingleQuotes(c.AllowSingleQuotes)
	lex.AllowBareWords(c.AllowBareWords)
}
