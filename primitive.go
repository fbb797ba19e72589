// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"fmt"
	"io"
	"strconv"
)

// A Primitive is an immutable JSON scalar: a string, number, Boolean, or null.
// It carries both the cooked text of the value, with escapes resolved, and the
// raw text as it appeared in the source.
//
// Two primitives are equal if they have the same kind and raw text, so 1.0 and
// 1.00 are distinct values.
type Primitive struct {
	kind   Kind
	cooked string
	raw    string
}

// NewPrimitive constructs a primitive of the given kind. It panics if kind is
// not one of the primitive kinds.
func NewPrimitive(kind Kind, cooked, raw string) Primitive {
	if !kind.IsPrimitive() {
		panic(fmt.Sprintf("jsonc: %v is not a primitive kind", kind))
	}
	return Primitive{kind: kind, cooked: cooked, raw: raw}
}

// NewString constructs a string primitive whose raw text is the escaped form
// of s.
func NewString(s string) Primitive { return Primitive{kind: String, cooked: s, raw: escapeText(s)} }

// NewInt constructs an integer primitive.
func NewInt(z int64) Primitive {
	s := strconv.FormatInt(z, 10)
	return Primitive{kind: Integer, cooked: s, raw: s}
}

// NewReal constructs a real primitive. Non-finite values cannot be represented
// in JSON and are converted to null.
func NewReal(f float64) Primitive {
	s, ok := formatFloat(f, 64)
	if !ok {
		return NewNull()
	}
	return Primitive{kind: Real, cooked: s, raw: s}
}

// NewBool constructs a Boolean primitive.
func NewBool(b bool) Primitive {
	s := strconv.FormatBool(b)
	return Primitive{kind: Boolean, cooked: s, raw: s}
}

// NewNull constructs a null primitive.
func NewNull() Primitive { return Primitive{kind: Null, cooked: "null", raw: "null"} }

// Kind reports the kind of p. The zero Primitive has kind Invalid.
func (p Primitive) Kind() Kind { return p.kind }

// Cooked returns the cooked text of p.
func (p Primitive) Cooked() string { return p.cooked }

// Raw returns the raw source text of p.
func (p Primitive) Raw() string { return p.raw }

// IsNull reports whether p is a null.
func (p Primitive) IsNull() bool { return p.kind == Null }

// Equal reports whether p and q have the same kind and raw text.
func (p Primitive) Equal(q Primitive) bool { return p.kind == q.kind && p.raw == q.raw }

// A PrimitiveKey is a comparable identity for a Primitive, suitable for use
// as a map key. Equal primitives have equal keys.
type PrimitiveKey struct {
	Kind Kind
	Raw  string
}

// Key returns the comparable identity of p.
func (p Primitive) Key() PrimitiveKey { return PrimitiveKey{Kind: p.kind, Raw: p.raw} }

// Int64 returns the value of an integer or real p as an int64. It reports an
// error if the cooked text of p is not an integer in range.
func (p Primitive) Int64() (int64, error) {
	switch p.kind {
	case Integer:
		return strconv.ParseInt(p.cooked, 10, 64)
	case Real:
		f, err := strconv.ParseFloat(p.cooked, 64)
		if err != nil {
			return 0, err
		} else if z := int64(f); float64(z) == f {
			return z, nil
		}
		return 0, fmt.Errorf("value %s is not an integer", p.cooked)
	}
	return 0, fmt.Errorf("cannot convert %v to an integer", p.kind)
}

// Float64 returns the value of a numeric p as a float64.
func (p Primitive) Float64() (float64, error) {
	if p.kind != Integer && p.kind != Real {
		return 0, fmt.Errorf("cannot convert %v to a number", p.kind)
	}
	return strconv.ParseFloat(p.cooked, 64)
}

// Bool returns the value of a Boolean p.
func (p Primitive) Bool() (bool, error) {
	if p.kind != Boolean {
		return false, fmt.Errorf("cannot convert %v to a Boolean", p.kind)
	}
	return strconv.ParseBool(p.cooked)
}

// Value returns the value of p converted to a native Go type: string, int64,
// float64, bool, or nil for null. An integer too large for an int64 is
// converted to a float64.
func (p Primitive) Value() (any, error) {
	switch p.kind {
	case String:
		return p.cooked, nil
	case Integer:
		if z, err := strconv.ParseInt(p.cooked, 10, 64); err == nil {
			return z, nil
		}
		return strconv.ParseFloat(p.cooked, 64)
	case Real:
		return strconv.ParseFloat(p.cooked, 64)
	case Boolean:
		return p.Bool()
	case Null:
		return nil, nil
	}
	return nil, fmt.Errorf("invalid primitive kind %v", p.kind)
}

// WriteJSON encodes p to w. A string is written from its cooked text,
// re-escaped and quoted, in either mode. Other kinds are written from their
// raw text in Raw mode, and from their cooked text in Cooked mode. A null
// whose raw text is empty, as synthesized for a missing array value, writes
// nothing in Raw mode.
func (p Primitive) WriteJSON(w io.Writer, mode Mode) error {
	var err error
	switch {
	case p.kind == String:
		_, err = io.WriteString(w, Quote(p.cooked))
	case p.kind == Invalid:
		return fmt.Errorf("invalid primitive")
	case mode == Raw:
		_, err = io.WriteString(w, p.raw)
	default:
		_, err = io.WriteString(w, p.cooked)
	}
	return err
}

// JSON returns the encoding of p in Raw mode.
func (p Primitive) JSON() string { return ToJSON(p, Raw) }

// String returns the encoding of p in Cooked mode.
func (p Primitive) String() string { return ToJSON(p, Cooked) }
