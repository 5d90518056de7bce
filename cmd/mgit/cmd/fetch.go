// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/mgit/internal/manifest"
	"github.com/archmagece/mgit/internal/ops"
)

func newFetchCmd() *cobra.Command {
	var (
		configFlag string
		ignore     []string
		threads    int
		depth      int
		silent     bool
	)

	c := &cobra.Command{
		Use:   "fetch [path]",
		Short: "Fetch every repository in the manifest without converging them",
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

			entries := manifest.ExcludeIgnore(m.Repos, ignore)
			results := ops.FetchAll(cmd.Context(), root, entries, ops.FetchOptions{Threads: threads, Depth: depth}, newDriver())

			failures := 0
			for _, r := range results {
				if r.Err != nil {
					failures++
					if !silent {
						fmt.Printf("%s: FAILED: %v\n", r.Local, r.Err)
					}
					continue
				}
				if !silent {
					fmt.Printf("%s: ok\n", r.Local)
				}
			}
			if failures > 0 {
				fmt.Printf("%d error(s)\n", failures)
				return fmt.Errorf("%d repositories failed to fetch", failures)
			}
			return nil
		},
	}

	addConfigFlag(c, &configFlag)
	addIgnoreFlag(c, &ignore)
	c.Flags().IntVar(&threads, "thread", 4, "number of concurrent workers")
	c.Flags().IntVar(&depth, "depth", 0, "shallow-fetch depth hint (0 disables)")
	c.Flags().BoolVar(&silent, "silent", false, "suppress per-repository output")
	return c
}
