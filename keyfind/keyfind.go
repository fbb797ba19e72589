// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package keyfind implements an incremental search for the values of object
// members with a given key.
//
// A Finder drives a jsonc.Parser and suspends it each time it reaches a
// primitive value whose key matches, so the input is consumed only as far as
// needed to produce the next result:
//
//	f := keyfind.New(jsonc.NewParser(input, jsonc.Default()), "id")
//	for v, err := range f.All() {
//	   if err != nil {
//	      log.Fatalf("Search failed: %v", err)
//	   }
//	   log.Printf("Found id %v", v)
//	}
package keyfind

import (
	"iter"

	"github.com/creachadair/jsonc"
)

// A Finder reports the primitive values of object members with a given key,
// at any depth, in the order they occur in the input.
type Finder struct {
	p       *jsonc.Parser
	h       handler
	started bool
	done    bool
}

// New constructs a Finder that searches the input of p for members named key.
// The Finder takes over p; the caller should not use p directly while the
// search is in progress.
func New(p *jsonc.Parser, key string) *Finder {
	return &Finder{p: p, h: handler{key: key}}
}

// Next advances the search to the next matching value. It reports the value
// and true if one is found, or false when the input is exhausted. If parsing
// fails, Next reports the error, and the search ends.
func (f *Finder) Next() (jsonc.Primitive, bool, error) {
	if f.done {
		return jsonc.Primitive{}, false, f.p.Err()
	}
	f.h.found = false
	err := f.p.Parse(&f.h, f.started)
	f.started = true
	if err != nil {
		f.done = true
		return jsonc.Primitive{}, false, err
	} else if f.h.found {
		return f.h.value, true, nil
	}
	f.done = true
	return jsonc.Primitive{}, false, nil
}

// Done reports whether the search has reached the end of the input.
func (f *Finder) Done() bool { return f.done }

// All returns an iterator over the remaining matching values. If parsing
// fails, the iterator yields the error and stops.
func (f *Finder) All() iter.Seq2[jsonc.Primitive, error] {
	return func(yield func(jsonc.Primitive, error) bool) {
		for {
			v, ok, err := f.Next()
			if err != nil {
				yield(v, err)
				return
			} else if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

// handler tracks the keys of the object entries enclosing the current
// position, and suspends the parser at each matching primitive.
type handler struct {
	key   string
	keys  []string
	value jsonc.Primitive
	found bool
}

func (h *handler) StartJSON() error                  { h.keys = h.keys[:0]; return nil }
func (h *handler) EndJSON() error                    { return nil }
func (h *handler) StartObject(jsonc.Scope) error     { return nil }
func (h *handler) EndObject(jsonc.Scope) error       { return nil }
func (h *handler) StartArray(jsonc.Scope) error      { return nil }
func (h *handler) EndArray(jsonc.Scope) error        { return nil }
func (h *handler) StartObjectEntry(key string) error { h.keys = append(h.keys, key); return nil }
func (h *handler) EndObjectEntry() error             { h.keys = h.keys[:len(h.keys)-1]; return nil }

func (h *handler) Primitive(scope jsonc.Scope, kind jsonc.Kind, cooked, raw string) error {
	if scope != jsonc.ScopeObject || h.keys[len(h.keys)-1] != h.key {
		return nil
	}
	h.value = jsonc.NewPrimitive(kind, cooked, raw)
	h.found = true
	return jsonc.ErrSuspend
}
