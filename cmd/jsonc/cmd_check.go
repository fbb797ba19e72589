// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/creachadair/jsonc"
	"github.com/spf13/cobra"
)

// countHandler is a jsonc.Handler that counts values without building a tree.
type countHandler struct {
	objects, arrays, scalars, depth, maxDepth int
}

func (h *countHandler) StartJSON() error { return nil }
func (h *countHandler) EndJSON() error   { return nil }

func (h *countHandler) StartObject(jsonc.Scope) error { h.objects++; h.enter(); return nil }
func (h *countHandler) EndObject(jsonc.Scope) error   { h.depth--; return nil }
func (h *countHandler) StartArray(jsonc.Scope) error  { h.arrays++; h.enter(); return nil }
func (h *countHandler) EndArray(jsonc.Scope) error    { h.depth--; return nil }

func (h *countHandler) StartObjectEntry(string) error { return nil }
func (h *countHandler) EndObjectEntry() error         { return nil }

func (h *countHandler) Primitive(jsonc.Scope, jsonc.Kind, string, string) error {
	h.scalars++
	return nil
}

func (h *countHandler) enter() {
	h.depth++
	h.maxDepth = max(h.maxDepth, h.depth)
}

func newCheckCmd() *cobra.Command {
	var flags dialectFlags
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Report whether the input is valid",
		Long: `Parse the input and report whether it is valid in the selected dialect.

On success, print a summary of the values in the document.
On failure, print the location of the first error and exit with status 1.`,
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

			log.Debugf("checking %s with %+v", name, cfg)
			var h countHandler
			if err := jsonc.NewParser(in, cfg).Parse(&h, false); jsonc.IsReadError(err) {
				log.Errorf("reading %s: %v", name, err)
				return fmt.Errorf("read %s: %w", name, err)
			} else if err != nil {
				log.Errorf("%s: %v", name, err)
				return fmt.Errorf("%s: invalid: %w", name, err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d objects, %d arrays, %d scalars, depth %d)\n",
					name, h.objects, h.arrays, h.scalars, h.maxDepth)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing on success")
	return cmd
}
