// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/mgit/internal/ops"
	"github.com/archmagece/mgit/internal/progressui"
)

func newCleanCmd() *cobra.Command {
	var (
		configFlag string
		assumeYes  bool
	)

	c := &cobra.Command{
		Use:   "clean [path]",
		Short: "Remove working trees under the workspace that are not declared by the manifest",
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

			stray, err := ops.PlanClean(cmd.Context(), root, m.Repos, newDriver())
			if err != nil {
				return fmt.Errorf("plan clean: %w", err)
			}
			if len(stray) == 0 {
				fmt.Println("nothing to clean")
				return nil
			}

			for _, local := range stray {
				fmt.Println(local)
			}
			ok, err := progressui.Confirm(fmt.Sprintf("remove %d working tree(s) not in the manifest?", len(stray)), assumeYes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("aborted")
				return nil
			}
			return ops.Clean(root, stray)
		},
	}

	addConfigFlag(c, &configFlag)
	c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	return c
}
