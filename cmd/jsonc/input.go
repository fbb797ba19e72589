// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/jsonc"
	"github.com/spf13/cobra"
)

// dialectFlags are the grammar options shared by all subcommands.
type dialectFlags struct {
	dialect  string
	comments bool
}

func (d *dialectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&d.dialect, "dialect", "d", "default", "grammar to accept (strict, default, lenient)")
	cmd.Flags().BoolVarP(&d.comments, "comments", "c", false, "skip // and /* */ comments")
}

// config returns the parser configuration selected by the flags.
func (d *dialectFlags) config() (jsonc.Config, error) {
	var cfg jsonc.Config
	switch strings.ToLower(d.dialect) {
	case "strict":
		cfg = jsonc.Strict()
	case "default", "":
		cfg = jsonc.Default()
	case "lenient":
		cfg = jsonc.Lenient()
	default:
		return cfg, fmt.Errorf("unknown dialect %q", d.dialect)
	}
	if d.comments {
		cfg = cfg.WithComments()
	}
	return cfg, nil
}

// openInput returns a reader for the file named by args, or for the standard
// input of cmd if args is empty, along with a name for use in messages.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "<stdin>", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("open input: %w", err)
	}
	return f, args[0], nil
}
