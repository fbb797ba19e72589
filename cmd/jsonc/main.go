// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jsonc checks, normalizes, and searches JSON documents written in
// standard JSON or one of its relaxed dialects.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("jsonc")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "jsonc",
		Short: "Process JSON with comments and other relaxations",
		Long: `Process JSON documents in strict JSON or a relaxed dialect.

Each subcommand reads the named file, or stdin if no file is given.
Use --dialect to choose the grammar, and --comments to skip comments.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newCatCmd())
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newGetCmd())
	return rootCmd
}
