// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package cmd wires the mgit command tree: one subcommand per engine-level
// operation (init, snapshot, sync, fetch, clean, track, list-files,
// log-repos, new-branch, del-branch, new-tag).
package cmd

import (
	"github.com/spf13/cobra"

	mgit "github.com/archmagece/mgit"
	"github.com/archmagece/mgit/internal/log"
)

var (
	verbose bool
	noColor bool
	logger  log.Logger = log.Nop{}
)

// Execute builds and runs the root command, returning the error cobra
// produced (if any) so main can translate it into an exit code.
func Execute() error {
	root := newRootCmd()
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "mgit",
		Short:        "Synchronize a fleet of git working trees against a declarative manifest",
		Version:      mgit.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.LevelInfo
			if verbose {
				level = log.LevelDebug
			}
			logger = log.New(level, noColor)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")

	root.AddCommand(
		newInitCmd(),
		newSnapshotCmd(),
		newSyncCmd(),
		newFetchCmd(),
		newCleanCmd(),
		newTrackCmd(),
		newListFilesCmd(),
		newLogReposCmd(),
		newNewBranchCmd(),
		newDelBranchCmd(),
		newNewTagCmd(),
	)

	return root
}
