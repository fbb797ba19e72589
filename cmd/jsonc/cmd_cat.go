// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"

	"github.com/creachadair/jsonc"
	"github.com/spf13/cobra"
)

func newCatCmd() *cobra.Command {
	var flags dialectFlags
	var raw bool

	cmd := &cobra.Command{
		Use:   "cat [file]",
		Short: "Rewrite the input as compact JSON",
		Long: `Parse the input and write it to stdout as compact JSON.

By default values are written from their cooked text, so the output is
standard JSON. Use --raw to keep numbers and strings as they were written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			in, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			v, err := jsonc.Parse(in, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			mode := jsonc.Cooked
			if raw {
				mode = jsonc.Raw
			}
			log.Debugf("writing %s in %v mode", name, mode)

			w := bufio.NewWriter(cmd.OutOrStdout())
			if err := jsonc.Encode(w, v, mode); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			w.WriteByte('\n')
			return w.Flush()
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "write values as they appear in the input")
	return cmd
}
