// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements navigation into a tree of values built by
// jsonc.Parse, consisting of *jsonc.Object, *jsonc.Array, and
// jsonc.Primitive values.
//
// A path is a sequence of elements, each of which selects a value from the
// one before it:
//
//   - A string selects the member of an object with that key.
//   - An int selects an element of an array, or the member of an object at
//     that position in key order. Negative offsets count from the end.
//   - A func(any) (any, error) maps the current value to a new one.
//   - A nil element does nothing.
package cursor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/creachadair/jsonc"
)

// Path follows path from v and returns the value reached, which must have
// type T.
func Path[T any](v any, path ...any) (T, error) {
	var zero T
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("value has type %T, not %T", c.Value(), zero)
	}
	return out, nil
}

// Elems converts text path elements into a path: each element that is a
// decimal integer becomes an int, and every other element is a key. A key
// that looks like an integer can be written with a leading "=", as in "=3".
func Elems(args ...string) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		if len(arg) > 0 && arg[0] == '=' {
			out[i] = arg[1:]
		} else if n, err := strconv.Atoi(arg); err == nil {
			out[i] = n
		} else {
			out[i] = arg
		}
	}
	return out
}

// A Cursor records a position in a tree of values, along with the values
// visited on the way there from its origin.
type Cursor struct {
	origin any
	trail  []any // values below the origin, outermost first
	err    error
}

// New constructs a Cursor positioned at origin.
func New(origin any) *Cursor { return &Cursor{origin: origin} }

// Origin returns the value at which c was constructed.
func (c *Cursor) Origin() any { return c.origin }

// AtOrigin reports whether c is positioned at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.trail) == 0 }

// Value returns the value at the current position of c.
func (c *Cursor) Value() any {
	if n := len(c.trail); n > 0 {
		return c.trail[n-1]
	}
	return c.origin
}

// Path returns the values from the origin to the current position, inclusive.
func (c *Cursor) Path() []any { return append([]any{c.origin}, c.trail...) }

// Err returns the error from the most recent call to Down, or nil.
func (c *Cursor) Err() error { return c.err }

// Up moves c to the parent of its current position. It does nothing if c is
// at its origin. It returns c.
func (c *Cursor) Up() *Cursor {
	if n := len(c.trail); n > 0 {
		c.trail = c.trail[:n-1]
	}
	return c
}

// Reset moves c back to its origin and clears its error.
func (c *Cursor) Reset() {
	c.trail = c.trail[:0]
	c.err = nil
}

// Down follows path from the current position of c. If an element cannot be
// followed, c stays at the last value reached and Err reports why. It returns
// c.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	for i, elt := range path {
		if elt == nil {
			continue
		}
		next, err := step(c.Value(), elt)
		if err != nil {
			c.err = fmt.Errorf("path element %d: %w", i, err)
			break
		}
		c.trail = append(c.trail, next)
	}
	return c
}

// ErrNotFound is reported when a key or offset selects nothing.
var ErrNotFound = errors.New("not found")

// step returns the value selected by elt from cur.
func step(cur, elt any) (any, error) {
	switch t := elt.(type) {
	case string:
		obj, ok := cur.(*jsonc.Object)
		if !ok {
			return nil, fmt.Errorf("key %q applied to %T", t, cur)
		}
		if v, ok := obj.Get(t); ok {
			return v, nil
		}
		return nil, fmt.Errorf("key %q: %w", t, ErrNotFound)

	case int:
		switch c := cur.(type) {
		case *jsonc.Array:
			if i, ok := offset(t, c.Len()); ok {
				return c.At(i), nil
			}
			return nil, fmt.Errorf("index %d of %d elements: %w", t, c.Len(), ErrNotFound)
		case *jsonc.Object:
			if i, ok := offset(t, c.Len()); ok {
				v, _ := c.Get(c.Keys()[i])
				return v, nil
			}
			return nil, fmt.Errorf("index %d of %d members: %w", t, c.Len(), ErrNotFound)
		}
		return nil, fmt.Errorf("index %d applied to %T", t, cur)

	case func(any) (any, error):
		return t(cur)
	}
	return nil, fmt.Errorf("invalid path element %T", elt)
}

// offset resolves a possibly-negative offset into a sequence of length n.
func offset(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
