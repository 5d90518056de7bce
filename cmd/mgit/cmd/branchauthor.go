// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/mgit/internal/ops"
)

func newNewBranchCmd() *cobra.Command {
	var configFlag string

	c := &cobra.Command{
		Use:   "new-branch <base> <new> [path]",
		Short: "Create a branch on origin in every repository, pointed at an existing base branch",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolvePath(args[2:])
			if err != nil {
				return err
			}
			_, m, err := loadManifest(root, configFlag, "")
			if err != nil {
				return err
			}
			return reportAuthor(ops.NewBranch(cmd.Context(), root, m.Repos, args[0], args[1], newDriver()))
		},
	}

	addConfigFlag(c, &configFlag)
	return c
}

func newDelBranchCmd() *cobra.Command {
	var configFlag string

	c := &cobra.Command{
		Use:   "del-branch <branch> [path]",
		Short: "Delete a branch on origin in every repository",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolvePath(args[1:])
			if err != nil {
				return err
			}
			_, m, err := loadManifest(root, configFlag, "")
			if err != nil {
				return err
			}
			return reportAuthor(ops.DelBranch(cmd.Context(), root, m.Repos, args[0], newDriver()))
		},
	}

	addConfigFlag(c, &configFlag)
	return c
}

func newNewTagCmd() *cobra.Command {
	var configFlag string

	c := &cobra.Command{
		Use:   "new-tag <name> [path]",
		Short: "Create and push a tag at HEAD in every repository",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolvePath(args[1:])
			if err != nil {
				return err
			}
			_, m, err := loadManifest(root, configFlag, "")
			if err != nil {
				return err
			}
			return reportAuthor(ops.NewTag(cmd.Context(), root, m.Repos, args[0], newDriver()))
		},
	}

	addConfigFlag(c, &configFlag)
	return c
}

func reportAuthor(results []ops.AuthorResult) error {
	failures := 0
	for _, r := range results {
		if r.Err != nil {
			failures++
			fmt.Printf("%s: FAILED: %v\n", r.Local, r.Err)
			continue
		}
		fmt.Printf("%s: ok\n", r.Local)
	}
	if failures > 0 {
		return fmt.Errorf("%d repositories failed", failures)
	}
	return nil
}
