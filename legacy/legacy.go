// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package legacy provides a single-call entry point for parsing relaxed JSON
// text into a tree.
//
// Deprecated: Use jsonc.ParseString with an explicit Config, which reports
// errors instead of discarding them.
package legacy

import "github.com/creachadair/jsonc"

// Parse parses s using the lenient dialect with comments enabled, and returns
// the resulting tree of *jsonc.Object, *jsonc.Array, and jsonc.Primitive
// values. It returns nil if s is not valid.
//
// Deprecated: Use jsonc.ParseString.
func Parse(s string) any {
	v, err := jsonc.ParseString(s, jsonc.Lenient().WithComments())
	if err != nil {
		return nil
	}
	return v
}
