// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var shortEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	'"':  '"',
	'/':  '/',
	'\\': '\\',
}

var hexDigit = []byte("0123456789ABCDEF")

// Quote encodes a string to escape characters for inclusion in a JSON string.
// The result does not include the enclosing quotation marks.
//
// The characters " \ / and the controls \b \f \n \r \t use their two-character
// escapes. Other code points in U+0000-U+001F, U+007F-U+009F, and
// U+2000-U+20FF are written as \uXXXX with uppercase hex digits.
func Quote(src mem.RO) []byte {
	return AppendQuote(make([]byte, 0, src.Len()), src)
}

// AppendQuote appends the escaped form of src to buf and returns the updated
// slice.
func AppendQuote(buf []byte, src mem.RO) []byte {
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		switch {
		case int(r) < len(shortEsc) && shortEsc[r] != 0:
			buf = append(buf, '\\', shortEsc[r])
		case mustEscape(r):
			buf = append(buf, '\\', 'u',
				hexDigit[(r>>12)&15], hexDigit[(r>>8)&15],
				hexDigit[(r>>4)&15], hexDigit[r&15])
		case r < utf8.RuneSelf:
			buf = append(buf, byte(r))
		default:
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(n)
	}
	return buf
}

func mustEscape(r rune) bool {
	return r <= 0x1f || (r >= 0x7f && r <= 0x9f) || (r >= 0x2000 && r <= 0x20ff)
}
