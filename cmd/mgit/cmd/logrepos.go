// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/mgit/internal/ops"
)

func newLogReposCmd() *cobra.Command {
	var configFlag string

	c := &cobra.Command{
		Use:   "log-repos [path]",
		Short: "Print a one-line branch/divergence summary for every repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolvePath(args)
			if err != nil {
				return err
			}
			_, m, err := loadManifest(root, configFlag, "")
			if err != nil {
				return err
			}

			for _, s := range ops.LogRepos(cmd.Context(), root, m.Repos, m.DefaultBranch, newDriver()) {
				if s.Err != nil {
					fmt.Printf("%s: FAILED: %v\n", s.Local, s.Err)
					continue
				}
				fmt.Printf("%s [%s] %s\n", s.Local, s.Branch, s.Summary)
			}
			return nil
		},
	}

	addConfigFlag(c, &configFlag)
	return c
}
