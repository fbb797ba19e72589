// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/creachadair/jsonc"
	"github.com/creachadair/jsonc/keyfind"
	"github.com/spf13/cobra"
)

func newFindCmd() *cobra.Command {
	var flags dialectFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "find <key> [file]",
		Short: "Print the values of object members with a given key",
		Long: `Search the input for object members named key, at any depth, and print
each scalar value on its own line in the order found.

The input is read only as far as needed, so with --limit the search stops
after the requested number of matches.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			in, name, err := openInput(cmd, args[1:])
			if err != nil {
				return err
			}
			defer in.Close()

			p := jsonc.NewParser(in, cfg)
			var nfound int
			for v, err := range keyfind.New(p, args[0]).All() {
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				nfound++
				log.Debugf("match %d for %q at %v", nfound, args[0], p.Location())
				fmt.Fprintln(cmd.OutOrStdout(), v.JSON())
				if limit > 0 && nfound >= limit {
					break
				}
			}
			log.Infof("found %d values for %q in %s", nfound, args[0], name)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many matches (0 means no limit)")
	return cmd
}
