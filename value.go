// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"io"
	"iter"
	"slices"
)

// An Object is a JSON object whose members are kept in insertion order.
// The zero value is ready for use.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject constructs an empty object.
func NewObject() *Object { return new(Object) }

// Put sets the value of key in o. Replacing an existing key keeps its
// original position.
func (o *Object) Put(key string, value any) {
	if o.vals == nil {
		o.vals = make(map[string]any)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = value
}

// Get returns the value of key in o, and reports whether it was present.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Delete removes key from o, and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if _, ok := o.vals[key]; !ok {
		return false
	}
	delete(o.vals, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
	return true
}

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns a copy of the keys of o in insertion order.
func (o *Object) Keys() []string { return slices.Clone(o.keys) }

// All returns an iterator over the members of o in insertion order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range o.keys {
			if !yield(k, o.vals[k]) {
				return
			}
		}
	}
}

// WriteJSON encodes o to w.
func (o *Object) WriteJSON(w io.Writer, mode Mode) error {
	e := newEncoder(w, mode)
	e.byte('{')
	for i, k := range o.keys {
		if i > 0 {
			e.byte(',')
		}
		e.quote(k)
		e.byte(':')
		e.value(o.vals[k])
	}
	e.byte('}')
	return e.err
}

// JSON returns the encoding of o in Raw mode.
func (o *Object) JSON() string { return ToJSON(o, Raw) }

// String returns the encoding of o in Cooked mode.
func (o *Object) String() string { return ToJSON(o, Cooked) }

// An Array is a JSON array. The zero value is ready for use.
type Array struct {
	vals []any
}

// NewArray constructs an array containing the given values.
func NewArray(vs ...any) *Array { return &Array{vals: slices.Clone(vs)} }

// Add appends value to a.
func (a *Array) Add(value any) { a.vals = append(a.vals, value) }

// At returns the element of a at index i. It panics if i is out of range.
func (a *Array) At(i int) any { return a.vals[i] }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.vals) }

// Values returns a copy of the elements of a.
func (a *Array) Values() []any { return slices.Clone(a.vals) }

// All returns an iterator over the indexes and elements of a.
func (a *Array) All() iter.Seq2[int, any] { return slices.All(a.vals) }

// WriteJSON encodes a to w.
func (a *Array) WriteJSON(w io.Writer, mode Mode) error {
	e := newEncoder(w, mode)
	e.byte('[')
	for i, v := range a.vals {
		if i > 0 {
			e.byte(',')
		}
		e.value(v)
	}
	e.byte(']')
	return e.err
}

// JSON returns the encoding of a in Raw mode.
func (a *Array) JSON() string { return ToJSON(a, Raw) }

// String returns the encoding of a in Cooked mode.
func (a *Array) String() string { return ToJSON(a, Cooked) }
