// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

// run executes the root command with the given arguments and input, and
// returns its standard output.
func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	return runReader(t, strings.NewReader(input), args...)
}

// runReader is as run, but reads standard input from r.
func runReader(t *testing.T, r io.Reader, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(r)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	out, err := run(t, `{"a": [1, {"b": null}], "c": "d"}`, "check")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	const want = "<stdin>: ok (2 objects, 1 arrays, 3 scalars, depth 3)\n"
	if out != want {
		t.Errorf("check: got %q, want %q", out, want)
	}

	if out, err := run(t, `[1,]`, "check", "-q", "--dialect", "lenient"); err != nil || out != "" {
		t.Errorf("check lenient: got (%q, %v), want no output", out, err)
	}
	if _, err := run(t, `[1,]`, "check", "--dialect", "strict"); err == nil {
		t.Error("check strict: got nil, want error")
	}
	if _, err := run(t, `[1]`, "check", "--dialect", "bogus"); err == nil {
		t.Error("check bogus dialect: got nil, want error")
	}

	// Read failures are reported apart from syntax errors.
	errBoom := errors.New("boom")
	_, err = runReader(t, io.MultiReader(strings.NewReader(`[1, 2`), iotest.ErrReader(errBoom)), "check")
	if !errors.Is(err, errBoom) || !strings.HasPrefix(err.Error(), "read <stdin>:") {
		t.Errorf("check read error: got %v, want read error wrapping %v", err, errBoom)
	}
	_, err = run(t, `[1 2]`, "check")
	if err == nil || !strings.HasPrefix(err.Error(), "<stdin>: invalid:") {
		t.Errorf("check syntax error: got %v, want invalid input", err)
	}
}

func TestCat(t *testing.T) {
	const input = `// settings
{ name: 'demo', "size": 1.50, "list": [1,,2,], }`
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"cat", "-d", "lenient", "-c"}, `{"name":"demo","size":1.50,"list":[1,null,2,null]}` + "\n"},
		{[]string{"cat", "-d", "lenient", "-c", "--raw"}, `{"name":"demo","size":1.50,"list":[1,,2,]}` + "\n"},
	}
	for _, test := range tests {
		got, err := run(t, input, test.args...)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.args, err)
		} else if got != test.want {
			t.Errorf("%q: got %#q, want %#q", test.args, got, test.want)
		}
	}

	// Comments are rejected unless enabled.
	if _, err := run(t, input, "cat", "-d", "lenient"); err == nil {
		t.Error("cat without comments: got nil, want error")
	}
}

func TestFind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	const doc = `{"id": 1, "items": [{"id": "x\ty"}, {"id": 2.50}], "id": true}`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("Write input: %v", err)
	}

	got, err := run(t, "", "find", "id", path)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if want := "1\n\"x\\ty\"\n2.50\ntrue\n"; got != want {
		t.Errorf("find: got %q, want %q", got, want)
	}

	got, err = run(t, doc, "find", "id", "-n", "2")
	if err != nil {
		t.Fatalf("find -n 2: %v", err)
	}
	if want := "1\n\"x\\ty\"\n"; got != want {
		t.Errorf("find -n 2: got %q, want %q", got, want)
	}

	if _, err := run(t, "", "find", "id", filepath.Join(t.TempDir(), "nonesuch")); err == nil {
		t.Error("find missing file: got nil, want error")
	}
}

func TestGet(t *testing.T) {
	const doc = `{"name": "demo", "list": [1, 2.50, {"3": "three"}], "3": "key"}`
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"get"}, `{"name":"demo","list":[1,2.50,{"3":"three"}],"3":"key"}`},
		{[]string{"get", "name"}, `"demo"`},
		{[]string{"get", "list", "1"}, `2.50`},
		{[]string{"get", "--", "list", "-1", "=3"}, `"three"`},
		{[]string{"get", "=3"}, `"key"`},
		{[]string{"get", "2"}, `"key"`},
		{[]string{"get", "list"}, `[1,2.50,{"3":"three"}]`},
	}
	for _, test := range tests {
		got, err := run(t, doc, test.args...)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.args, err)
		} else if got != test.want+"\n" {
			t.Errorf("%q: got %#q, want %#q", test.args, got, test.want)
		}
	}

	path := filepath.Join(t.TempDir(), "input.jsonc")
	if err := os.WriteFile(path, []byte("[10, /* x */ 20]"), 0600); err != nil {
		t.Fatalf("Write input: %v", err)
	}
	if got, err := run(t, "", "get", "-f", path, "-c", "1"); err != nil || got != "20\n" {
		t.Errorf("get -f: got (%q, %v), want 20", got, err)
	}

	for _, bad := range [][]string{{"get", "nonesuch"}, {"get", "name", "0"}, {"get", "list", "7"}} {
		if got, err := run(t, doc, bad...); err == nil {
			t.Errorf("%q: got %q, want error", bad, got)
		}
	}
}
