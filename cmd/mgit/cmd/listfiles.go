// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/mgit/internal/ops"
)

func newListFilesCmd() *cobra.Command {
	var configFlag string

	c := &cobra.Command{
		Use:   "list-files [path]",
		Short: "List tracked files across every repository in the manifest",
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

			for _, line := range ops.ListFiles(cmd.Context(), root, m.Repos, newDriver()) {
				fmt.Println(line)
			}
			return nil
		},
	}

	addConfigFlag(c, &configFlag)
	return c
}
