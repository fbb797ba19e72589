// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package keyfind_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jsonc"
	"github.com/creachadair/jsonc/keyfind"
	"github.com/google/go-cmp/cmp"
)

const testDoc = `{"first": 123, "second": [{"k1":{"id":"id1"}}, 4, 5, 6, {"id": 123}], "third": 789, "id": null}`

func TestFinder(t *testing.T) {
	p := jsonc.NewParser(strings.NewReader(testDoc), jsonc.Strict())
	f := keyfind.New(p, "id")

	var got []string
	for {
		v, ok, err := f.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		} else if !ok {
			break
		}
		got = append(got, v.Kind().String()+" "+v.Raw())

		// Each result leaves the parser suspended inside the document.
		if p.Done() {
			t.Errorf("Parser done after result %d", len(got))
		}
	}
	if diff := cmp.Diff([]string{"string id1", "integer 123", "null null"}, got); diff != "" {
		t.Errorf("Results: (-want, +got)\n%s", diff)
	}
	if !f.Done() || !p.Done() {
		t.Errorf("After search: finder done %v, parser done %v", f.Done(), p.Done())
	}

	// Further calls report nothing.
	if v, ok, err := f.Next(); ok || err != nil {
		t.Errorf("Next after end: got (%v, %v, %v)", v, ok, err)
	}
}

func TestFinderAll(t *testing.T) {
	tests := []struct {
		input, key string
		want       []string
	}{
		{testDoc, "first", []string{"123"}},
		{testDoc, "k1", nil}, // not a primitive
		{testDoc, "nonesuch", nil},
		{`{"a": {"a": {"a": 1}, "b": 2}, "a": 3}`, "a", []string{"1", "3"}},
		{`[{"x": "one"}, [{"x": "two"}], {"y": {"x": "three"}}]`, "x", []string{"one", "two", "three"}},
	}
	for _, test := range tests {
		f := keyfind.New(jsonc.NewParser(strings.NewReader(test.input), jsonc.Strict()), test.key)
		var got []string
		for v, err := range f.All() {
			if err != nil {
				t.Fatalf("All %q: unexpected error: %v", test.key, err)
			}
			got = append(got, v.Cooked())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("All %q: (-want, +got)\n%s", test.key, diff)
		}
	}
}

func TestFinderError(t *testing.T) {
	f := keyfind.New(jsonc.NewParser(strings.NewReader(`{"id": 1, "id": ]`), jsonc.Strict()), "id")
	var got []string
	var errs []error
	for v, err := range f.All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		got = append(got, v.Raw())
	}
	if diff := cmp.Diff([]string{"1"}, got); diff != "" {
		t.Errorf("Results: (-want, +got)\n%s", diff)
	}
	var perr *jsonc.ParseError
	if len(errs) != 1 || !errors.As(errs[0], &perr) || perr.Pos != 16 {
		t.Errorf("Errors: got %v, want one parse error at offset 16", errs)
	}
}
