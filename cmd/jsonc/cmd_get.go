// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"

	"github.com/creachadair/jsonc"
	"github.com/creachadair/jsonc/cursor"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var flags dialectFlags
	var input string
	var raw bool

	cmd := &cobra.Command{
		Use:   "get [-f file] <elem>...",
		Short: "Print the value at a path in the input",
		Long: `Parse the input and print the value reached by following the path.

Each path element is an object key or an integer offset. An offset selects an
array element, or an object member in key order; negative offsets count from
the end; put "--" before the path if it contains one. Write "=3" to use 3
as an object key instead of an offset.
With no elements, the whole document is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			var files []string
			if input != "" {
				files = []string{input}
			}
			in, name, err := openInput(cmd, files)
			if err != nil {
				return err
			}
			defer in.Close()

			root, err := jsonc.Parse(in, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			path := cursor.Elems(args...)
			c := cursor.New(root).Down(path...)
			if err := c.Err(); err != nil {
				log.Debugf("stopped at depth %d of %d", len(c.Path())-1, len(path))
				return fmt.Errorf("%s: %w", name, err)
			}

			mode := jsonc.Cooked
			if raw {
				mode = jsonc.Raw
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			if err := jsonc.Encode(w, c.Value(), mode); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			w.WriteByte('\n')
			return w.Flush()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&input, "file", "f", "", "read this file instead of stdin")
	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "write values as they appear in the input")
	return cmd
}
