// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/creachadair/jsonc/internal/escape"

	"go4.org/mem"
)

// Mode selects how primitive values are rendered by the encoder.
type Mode byte

const (
	// Cooked renders every primitive from its cooked text.
	Cooked Mode = iota

	// Raw renders numbers, Booleans, and nulls from their source text, so that
	// for example 1.230 is not normalized. Strings are always rendered from
	// their cooked text, re-escaped.
	Raw
)

func (m Mode) String() string {
	if m == Raw {
		return "raw"
	}
	return "cooked"
}

// A Marshaler is a value that can encode itself as JSON.
type Marshaler interface {
	WriteJSON(w io.Writer, mode Mode) error
}

// Encode writes the JSON encoding of v to w.
//
// The encoding of v depends on its type:
//
//   - nil is encoded as null.
//   - A Primitive or Marshaler encodes itself.
//   - Strings are quoted and escaped.
//   - Integers and Booleans are encoded in their usual text form.
//   - Floating-point values are encoded as by encoding/json. NaN and infinite
//     values are encoded as null.
//   - Maps are encoded as objects with keys in sorted order. Non-string keys
//     are formatted with fmt.Sprint.
//   - Slices and arrays are encoded as arrays. A nil slice is encoded as null.
//   - Pointers and interfaces encode their referent, or null if they are nil.
//
// Any other value is encoded as its fmt.Sprint text, quoted and escaped as a
// JSON string, so that the output is always valid JSON. For example the
// struct value struct{ A, B int }{1, 2} encodes as "{1 2}", not {1 2}.
func Encode(w io.Writer, v any, mode Mode) error {
	e := newEncoder(w, mode)
	e.value(v)
	return e.err
}

// Marshal returns the JSON encoding of v.
func Marshal(v any, mode Mode) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v, mode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToJSON returns the JSON encoding of v as a string, or "" if v cannot be
// encoded.
func ToJSON(v any, mode Mode) string {
	data, err := Marshal(v, mode)
	if err != nil {
		return ""
	}
	return string(data)
}

type encoder struct {
	w    io.Writer
	mode Mode
	buf  []byte
	err  error
}

func newEncoder(w io.Writer, mode Mode) *encoder { return &encoder{w: w, mode: mode} }

func (e *encoder) write(data []byte) {
	if e.err == nil {
		_, e.err = e.w.Write(data)
	}
}

func (e *encoder) byte(b byte) {
	e.buf = append(e.buf[:0], b)
	e.write(e.buf)
}

func (e *encoder) text(s string) {
	e.buf = append(e.buf[:0], s...)
	e.write(e.buf)
}

func (e *encoder) quote(s string) {
	e.buf = append(e.buf[:0], '"')
	e.buf = escape.AppendQuote(e.buf, mem.S(s))
	e.buf = append(e.buf, '"')
	e.write(e.buf)
}

func (e *encoder) float(f float64, bits int) {
	if s, ok := formatFloat(f, bits); ok {
		e.text(s)
	} else {
		e.text("null")
	}
}

func (e *encoder) marshal(m Marshaler) {
	if e.err == nil {
		e.err = m.WriteJSON(e.w, e.mode)
	}
}

func (e *encoder) value(v any) {
	if e.err != nil {
		return
	}
	switch t := v.(type) {
	case nil:
		e.text("null")
	case Primitive:
		e.marshal(t)
	case Marshaler:
		if rv := reflect.ValueOf(t); rv.Kind() == reflect.Pointer && rv.IsNil() {
			e.text("null")
		} else {
			e.marshal(t)
		}
	case string:
		e.quote(t)
	case float64:
		e.float(t, 64)
	case float32:
		e.float(float64(t), 32)
	case int:
		e.text(strconv.Itoa(t))
	case int64:
		e.text(strconv.FormatInt(t, 10))
	case int32:
		e.text(strconv.FormatInt(int64(t), 10))
	case uint64:
		e.text(strconv.FormatUint(t, 10))
	case bool:
		e.text(strconv.FormatBool(t))
	case map[string]any:
		e.byte('{')
		for i, k := range slices.Sorted(maps.Keys(t)) {
			if i > 0 {
				e.byte(',')
			}
			e.quote(k)
			e.byte(':')
			e.value(t[k])
		}
		e.byte('}')
	case []any:
		if t == nil {
			e.text("null")
			return
		}
		e.byte('[')
		for i, elt := range t {
			if i > 0 {
				e.byte(',')
			}
			e.value(elt)
		}
		e.byte(']')
	default:
		e.reflectValue(reflect.ValueOf(v))
	}
}

// reflectValue encodes values of types not handled directly by value.
func (e *encoder) reflectValue(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		e.quote(rv.String())
	case reflect.Bool:
		e.text(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.text(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.text(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		e.float(rv.Float(), 32)
	case reflect.Float64:
		e.float(rv.Float(), 64)

	case reflect.Map:
		if rv.IsNil() {
			e.text("null")
			return
		}
		type member struct {
			key string
			val reflect.Value
		}
		var ms []member
		for it := rv.MapRange(); it.Next(); {
			ms = append(ms, member{key: fmt.Sprint(it.Key().Interface()), val: it.Value()})
		}
		slices.SortFunc(ms, func(a, b member) int { return cmp.Compare(a.key, b.key) })
		e.byte('{')
		for i, m := range ms {
			if i > 0 {
				e.byte(',')
			}
			e.quote(m.key)
			e.byte(':')
			e.value(m.val.Interface())
		}
		e.byte('}')

	case reflect.Slice:
		if rv.IsNil() {
			e.text("null")
			return
		}
		fallthrough
	case reflect.Array:
		e.byte('[')
		for i := range rv.Len() {
			if i > 0 {
				e.byte(',')
			}
			e.value(rv.Index(i).Interface())
		}
		e.byte(']')

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			e.text("null")
			return
		}
		e.value(rv.Elem().Interface())

	default:
		e.quote(fmt.Sprint(rv.Interface()))
	}
}

// formatFloat formats f with the given precision in bits, using the same
// conventions as encoding/json. It reports false if f is NaN or infinite.
func formatFloat(f float64, bits int) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	b := strconv.AppendFloat(nil, f, format, -1, bits)
	if format == 'e' {
		// Clean up e-09 to e-9.
		if n := len(b); n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b), true
}
