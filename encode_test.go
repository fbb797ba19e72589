// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jsonc_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jsonc"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a/b", `"a\/b"`},
		{`"\`, `"\"\\"`},
		{"\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"\x00\x10\x1f", `"\u0000\u0010\u001F"`},
		{"\x7f\u0085\u009f ", `"\u007F\u0085\u009F` + " \""},
		{" €℀", `" \u20AC` + "℀\""},
		{"中文 😀", `"中文 😀"`},
	}
	for _, test := range tests {
		if got := jsonc.Quote(test.input); got != test.want {
			t.Errorf("Quote(%q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`""`, ""},
		{`"abc"`, "abc"},
		{`"\"\\\/\b\f\n\r\t"`, "\"\\/\b\f\n\r\t"},
		{`"\u0000Ǽꪜ"`, "\x00Ǽꪜ"},
		{`"😀!"`, "😀!"},
		{`"\ude00\ud83d"`, "��"},
		{`"\u00x9"`, "�"},
		{`"\q"`, "�"},
	}
	for _, test := range tests {
		got, err := jsonc.Unquote(test.input)
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", test.input, err)
		} else if got != test.want {
			t.Errorf("Unquote(%#q): got %q, want %q", test.input, got, test.want)
		}
	}

	for _, bad := range []string{``, `"`, `abc`, `"abc\"`, `"\u12"`} {
		if got, err := jsonc.Unquote(bad); err == nil {
			t.Errorf("Unquote(%#q): got %q, want error", bad, got)
		}
	}
}

type point struct{ X, Y int }

func (p point) String() string { return "point" }

func TestEncode(t *testing.T) {
	n := 5
	var nilObj *jsonc.Object
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"Nil", nil, `null`},
		{"Mixed", []any{"abc\x10a/", 123, 222.123, true, nil}, `["abc\u0010a\/",123,222.123,true,null]`},
		{"Ints", []int{1, -2, 3}, `[1,-2,3]`},
		{"Uints", [2]uint16{7, 8}, `[7,8]`},
		{"NilSlice", []string(nil), `null`},
		{"EmptySlice", []string{}, `[]`},
		{"Map", map[string]any{"b": 1, "a": []int{1, 2}}, `{"a":[1,2],"b":1}`},
		{"IntKeys", map[int]bool{10: true, 2: false}, `{"10":true,"2":false}`},
		{"Pointer", &n, `5`},
		{"NilPointer", (*int)(nil), `null`},
		{"NilMarshaler", nilObj, `null`},
		{"Float32", float32(0.1), `0.1`},
		{"Large", 1e21, `1e+21`},
		{"Small", 1e-7, `1e-7`},
		{"Whole", 3.0, `3`},
		{"NaN", math.NaN(), `null`},
		{"Inf", []float64{math.Inf(1), math.Inf(-1)}, `[null,null]`},
		{"Named", []jsonc.Mode{jsonc.Raw}, `[1]`},
		{"Fallback", point{1, 2}, `"point"`},
		{"Struct", struct{ A, B int }{1, 2}, `"{1 2}"`},
		{"Array", jsonc.NewArray(jsonc.NewInt(1), "x", nil), `[1,"x",null]`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := jsonc.Marshal(test.input, jsonc.Cooked)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(got) != test.want {
				t.Errorf("Marshal: got %#q, want %#q", got, test.want)
			}
		})
	}
}

func TestEncode_modes(t *testing.T) {
	v, err := jsonc.ParseString(`[1.230, 1E5, "aA", -0.0, null]`, jsonc.Strict())
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if got, want := jsonc.ToJSON(v, jsonc.Raw), `[1.230,1E5,"aA",-0.0,null]`; got != want {
		t.Errorf("Raw: got %#q, want %#q", got, want)
	}
	if got, want := v.(*jsonc.Array).JSON(), `[1.230,1E5,"aA",-0.0,null]`; got != want {
		t.Errorf("JSON: got %#q, want %#q", got, want)
	}

	// A constructed value has no separate raw form.
	p := jsonc.NewReal(1.5)
	if raw, cooked := p.JSON(), p.String(); raw != "1.5" || cooked != "1.5" {
		t.Errorf("NewReal(1.5): got raw %q, cooked %q", raw, cooked)
	}
}

// TestEscapeRewrite checks that the encoder escapes a string by its own
// rules, not as it was written: control characters use their short escapes,
// and a \u escape outside the escaped ranges is written as the character.
func TestEscapeRewrite(t *testing.T) {
	const input = `"hello\bworld\"abc\tdef\\ghi\rjkl\n123\u4e2d"`
	v, err := jsonc.ParseString(input, jsonc.Default())
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	p := v.(jsonc.Primitive)
	if got, want := p.Raw(), input[1:len(input)-1]; got != want {
		t.Errorf("Raw text: got %#q, want %#q", got, want)
	}

	// U+4E2D is not in an escaped range.
	const want = `"hello\bworld\"abc\tdef\\ghi\rjkl\n123中"`
	for _, mode := range []jsonc.Mode{jsonc.Raw, jsonc.Cooked} {
		if got := jsonc.ToJSON(v, mode); got != want {
			t.Errorf("ToJSON(%v): got %#q, want %#q", mode, got, want)
		}
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestEncode_writeError(t *testing.T) {
	errFail := errors.New("write failed")
	err := jsonc.Encode(failWriter{errFail}, map[string]any{"a": []any{1, 2}}, jsonc.Raw)
	if !errors.Is(err, errFail) {
		t.Errorf("Encode: got error %v, want %v", err, errFail)
	}
	if got := jsonc.ToJSON(func() {}, jsonc.Raw); !strings.HasPrefix(got, `"0x`) {
		t.Errorf("ToJSON(func): got %#q, want a quoted pointer", got)
	}
	if got := jsonc.ToJSON(jsonc.Primitive{}, jsonc.Raw); got != "" {
		t.Errorf("ToJSON(Primitive{}): got %#q, want empty", got)
	}
}

func TestPrimitive(t *testing.T) {
	t.Run("Kinds", func(t *testing.T) {
		for _, k := range []jsonc.Kind{jsonc.Invalid, jsonc.LBrace, jsonc.Comma, jsonc.EOF} {
			mtest.MustPanic(t, func() { jsonc.NewPrimitive(k, "", "") })
		}
		p := jsonc.NewPrimitive(jsonc.String, "a\tb", `a\tb`)
		if p.Kind() != jsonc.String || p.Cooked() != "a\tb" || p.Raw() != `a\tb` {
			t.Errorf("NewPrimitive: got %v %q %q", p.Kind(), p.Cooked(), p.Raw())
		}
	})

	t.Run("Equal", func(t *testing.T) {
		a := jsonc.NewPrimitive(jsonc.Real, "1.0", "1.0")
		b := jsonc.NewPrimitive(jsonc.Real, "1.00", "1.00")
		c := jsonc.NewPrimitive(jsonc.Real, "1.0", "1.0")
		if a.Equal(b) {
			t.Errorf("%v == %v, want unequal", a, b)
		}
		if !a.Equal(c) || a.Key() != c.Key() {
			t.Errorf("%v != %v, want equal", a, c)
		}
		if jsonc.NewString("1").Equal(jsonc.NewInt(1)) {
			t.Error("String 1 equals integer 1")
		}

		seen := map[jsonc.PrimitiveKey]bool{a.Key(): true}
		if !seen[c.Key()] || seen[b.Key()] {
			t.Errorf("Key lookup: got %v", seen)
		}
	})

	t.Run("Values", func(t *testing.T) {
		tests := []struct {
			p    jsonc.Primitive
			want any
		}{
			{jsonc.NewString("x"), "x"},
			{jsonc.NewInt(-12), int64(-12)},
			{jsonc.NewPrimitive(jsonc.Integer, "99999999999999999999", "99999999999999999999"), 1e20},
			{jsonc.NewReal(0.25), 0.25},
			{jsonc.NewBool(true), true},
			{jsonc.NewNull(), nil},
		}
		for _, test := range tests {
			got, err := test.p.Value()
			if err != nil {
				t.Errorf("Value %v: unexpected error: %v", test.p, err)
			} else if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Value %v: (-want, +got)\n%s", test.p, diff)
			}
		}
	})

	t.Run("Conversions", func(t *testing.T) {
		if z, err := jsonc.NewPrimitive(jsonc.Real, "2e3", "2e3").Int64(); err != nil || z != 2000 {
			t.Errorf("Int64(2e3): got (%v, %v), want 2000", z, err)
		}
		if _, err := jsonc.NewReal(2.5).Int64(); err == nil {
			t.Error("Int64(2.5): got nil error")
		}
		if _, err := jsonc.NewString("3").Int64(); err == nil {
			t.Error("Int64(string): got nil error")
		}
		if f, err := jsonc.NewInt(3).Float64(); err != nil || f != 3 {
			t.Errorf("Float64(3): got (%v, %v), want 3", f, err)
		}
		if _, err := jsonc.NewNull().Float64(); err == nil {
			t.Error("Float64(null): got nil error")
		}
		if b, err := jsonc.NewBool(false).Bool(); err != nil || b {
			t.Errorf("Bool(false): got (%v, %v), want false", b, err)
		}
		if _, err := jsonc.NewInt(1).Bool(); err == nil {
			t.Error("Bool(1): got nil error")
		}
	})

	t.Run("NonFinite", func(t *testing.T) {
		if p := jsonc.NewReal(math.Inf(1)); !p.IsNull() {
			t.Errorf("NewReal(+Inf): got %v, want null", p)
		}
	})
}

func TestObject(t *testing.T) {
	o := jsonc.NewObject()
	o.Put("b", 1)
	o.Put("a", jsonc.NewString("x"))
	o.Put("b", 2) // keeps its position
	if diff := cmp.Diff([]string{"b", "a"}, o.Keys()); diff != "" {
		t.Errorf("Keys: (-want, +got)\n%s", diff)
	}
	if got, want := o.String(), `{"b":2,"a":"x"}`; got != want {
		t.Errorf("String: got %#q, want %#q", got, want)
	}

	if !o.Delete("b") || o.Delete("b") {
		t.Error("Delete did not report presence correctly")
	}
	if _, ok := o.Get("b"); ok || o.Len() != 1 {
		t.Errorf("After delete: Len = %d, b present = %v", o.Len(), ok)
	}

	var keys []string
	for k := range o.All() {
		keys = append(keys, k)
	}
	if diff := cmp.Diff([]string{"a"}, keys); diff != "" {
		t.Errorf("All: (-want, +got)\n%s", diff)
	}

	var zero jsonc.Object
	if got := zero.JSON(); got != "{}" {
		t.Errorf("Zero object: got %#q, want {}", got)
	}
}

func TestArray(t *testing.T) {
	a := jsonc.NewArray(1, "two")
	a.Add(jsonc.NewObject())
	if a.Len() != 3 || a.At(1) != "two" {
		t.Errorf("Array: Len = %d, At(1) = %v", a.Len(), a.At(1))
	}
	if got, want := a.String(), `[1,"two",{}]`; got != want {
		t.Errorf("String: got %#q, want %#q", got, want)
	}
	var n int
	for i, v := range a.All() {
		if v != a.At(i) {
			t.Errorf("All: element %d is %v, want %v", i, v, a.At(i))
		}
		n++
	}
	if n != 3 {
		t.Errorf("All: visited %d elements, want 3", n)
	}
}
