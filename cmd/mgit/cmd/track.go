// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/mgit/internal/ops"
)

func newTrackCmd() *cobra.Command {
	var configFlag string

	c := &cobra.Command{
		Use:   "track [path]",
		Short: "Set each repository's upstream tracking branch per the manifest, without syncing",
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

			results := ops.Track(cmd.Context(), root, m.Repos, m.DefaultBranch, newDriver())
			failures := 0
			for _, r := range results {
				if r.Err != nil {
					failures++
					fmt.Printf("%s: FAILED: %v\n", r.Local, r.Err)
					continue
				}
				fmt.Printf("%s: %s\n", r.Local, r.Message)
			}
			if failures > 0 {
				return fmt.Errorf("%d repositories failed to track", failures)
			}
			return nil
		},
	}

	addConfigFlag(c, &configFlag)
	return c
}
