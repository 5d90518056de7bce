// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/mgit/internal/manifest"
	"github.com/archmagece/mgit/internal/snapshot"
)

func newInitCmd() *cobra.Command {
	var (
		configFlag string
		force      bool
		branch     bool
	)

	c := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a manifest from an existing tree of git working trees",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolvePath(args)
			if err != nil {
				return err
			}

			_ = branch // init always records branch; the flag exists for CLI symmetry with snapshot
			entries, err := snapshot.Scan(cmd.Context(), root, snapshot.Options{
				Force:     force,
				UseBranch: true,
			}, newDriver())
			if err != nil {
				return fmt.Errorf("scan tree: %w", err)
			}

			m := &manifest.Manifest{DefaultBranch: "develop", Repos: entries}
			target := manifest.Locate(root, configFlag)
			if err := manifest.Save(target, m); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			logger.Infof("wrote %s with %d repositories", target, len(entries))
			return nil
		},
	}

	addConfigFlag(c, &configFlag)
	c.Flags().BoolVar(&force, "force", false, "include the workspace root itself as an entry")
	c.Flags().BoolVar(&branch, "branch", false, "record the current branch (default for init)")
	return c
}
