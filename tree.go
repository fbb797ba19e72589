// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jsonc

import (
	"errors"
	"io"
	"strings"
)

// An ObjectContainer is a mutable collection of keyed values, constructed by
// a TypeFactory to hold the members of a JSON object.
type ObjectContainer interface {
	Put(key string, value any)
}

// An ArrayContainer is a mutable sequence of values, constructed by a
// TypeFactory to hold the elements of a JSON array.
type ArrayContainer interface {
	Add(value any)
}

// A TypeFactory constructs the values of a tree built by a TreeBuilder.
type TypeFactory interface {
	// CreateObjectContainer returns a new empty object.
	CreateObjectContainer() ObjectContainer

	// CreateArrayContainer returns a new empty array.
	CreateArrayContainer() ArrayContainer

	// CreatePrimitive returns a value for the given primitive. If it reports
	// an error, parsing stops and that error is returned to the caller.
	CreatePrimitive(kind Kind, cooked, raw string) (any, error)
}

// DefaultFactory is a TypeFactory that constructs *Object, *Array, and
// Primitive values.
type DefaultFactory struct{}

// CreateObjectContainer implements part of the TypeFactory interface.
func (DefaultFactory) CreateObjectContainer() ObjectContainer { return NewObject() }

// CreateArrayContainer implements part of the TypeFactory interface.
func (DefaultFactory) CreateArrayContainer() ArrayContainer { return NewArray() }

// CreatePrimitive implements part of the TypeFactory interface.
func (DefaultFactory) CreatePrimitive(kind Kind, cooked, raw string) (any, error) {
	return NewPrimitive(kind, cooked, raw), nil
}

// A TreeBuilder is a Handler that constructs a tree of values using a
// TypeFactory. Each container is attached to its parent as soon as it is
// created, so the tree is well-formed even if parsing stops early.
type TreeBuilder struct {
	f      TypeFactory
	stack  []any    // containers in progress, outermost first
	keys   []string // pending object keys
	result any
	done   bool
}

// NewTreeBuilder constructs a TreeBuilder that uses f to create values. If f
// is nil, DefaultFactory is used.
func NewTreeBuilder(f TypeFactory) *TreeBuilder {
	if f == nil {
		f = DefaultFactory{}
	}
	return &TreeBuilder{f: f}
}

// Result returns the value constructed by b, and reports whether the end of
// the document has been reached.
func (b *TreeBuilder) Result() (any, bool) { return b.result, b.done }

// StartJSON implements part of the Handler interface.
func (b *TreeBuilder) StartJSON() error {
	b.stack, b.keys, b.result, b.done = b.stack[:0], b.keys[:0], nil, false
	return nil
}

// EndJSON implements part of the Handler interface.
func (b *TreeBuilder) EndJSON() error {
	if len(b.stack) != 0 {
		b.result = b.stack[0]
	}
	b.stack = b.stack[:0]
	b.done = true
	return nil
}

// StartObject implements part of the Handler interface.
func (b *TreeBuilder) StartObject(scope Scope) error {
	return b.open(scope, b.f.CreateObjectContainer())
}

// EndObject implements part of the Handler interface.
func (b *TreeBuilder) EndObject(Scope) error { b.close(); return nil }

// StartArray implements part of the Handler interface.
func (b *TreeBuilder) StartArray(scope Scope) error {
	return b.open(scope, b.f.CreateArrayContainer())
}

// EndArray implements part of the Handler interface.
func (b *TreeBuilder) EndArray(Scope) error { b.close(); return nil }

// StartObjectEntry implements part of the Handler interface.
func (b *TreeBuilder) StartObjectEntry(key string) error {
	b.keys = append(b.keys, key)
	return nil
}

// EndObjectEntry implements part of the Handler interface.
func (b *TreeBuilder) EndObjectEntry() error {
	b.keys = b.keys[:len(b.keys)-1]
	return nil
}

// Primitive implements part of the Handler interface.
func (b *TreeBuilder) Primitive(scope Scope, kind Kind, cooked, raw string) error {
	v, err := b.f.CreatePrimitive(kind, cooked, raw)
	if err != nil {
		return err
	}
	return b.attach(scope, v)
}

func (b *TreeBuilder) open(scope Scope, c any) error {
	if err := b.attach(scope, c); err != nil {
		return err
	}
	b.stack = append(b.stack, c)
	return nil
}

// close pops the innermost container. The outermost container stays on the
// stack until EndJSON.
func (b *TreeBuilder) close() {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// attach adds v to its parent, or records it as the result at the top level.
func (b *TreeBuilder) attach(scope Scope, v any) error {
	if scope == ScopeTop {
		b.result = v
		return nil
	}
	parent := b.stack[len(b.stack)-1]
	switch scope {
	case ScopeObject:
		if c, ok := parent.(ObjectContainer); ok {
			c.Put(b.keys[len(b.keys)-1], v)
			return nil
		}
	case ScopeArray:
		if c, ok := parent.(ArrayContainer); ok {
			c.Add(v)
			return nil
		}
	}
	return errors.New("container does not match scope " + scope.String())
}

// Parse parses a complete JSON document from r using the dialect selected by
// cfg, and returns a tree of *Object, *Array, and Primitive values.
func Parse(r io.Reader, cfg Config) (any, error) {
	return ParseWithFactory(r, cfg, DefaultFactory{})
}

// ParseString parses a complete JSON document from s. It is shorthand for
// Parse with a strings.Reader.
func ParseString(s string, cfg Config) (any, error) {
	return Parse(strings.NewReader(s), cfg)
}

// ParseWithFactory parses a complete JSON document from r using the dialect
// selected by cfg, and returns a tree of values constructed by f.
func ParseWithFactory(r io.Reader, cfg Config, f TypeFactory) (any, error) {
	b := NewTreeBuilder(f)
	if err := NewParser(r, cfg).Parse(b, false); err != nil {
		return nil, err
	}
	v, _ := b.Result()
	return v, nil
}
