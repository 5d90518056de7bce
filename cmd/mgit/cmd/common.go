// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

// resolvePath returns the positional path argument, defaulting to the
// current directory when omitted, per §6's command-line surface.
func resolvePath(args []string) (string, error) {
	if len(args) == 0 {
		return os.Getwd()
	}
	return args[0], nil
}

// loadManifest resolves the effective manifest path from the positional
// path and --config override, then loads and validates it. A config error
// here means the run aborts before touching any repository (§7).
func loadManifest(root, configFlag, defaultBranchFlag string) (string, *manifest.Manifest, error) {
	cfgPath := manifest.Locate(root, configFlag)
	m, err := manifest.Load(cfgPath)
	if err != nil {
		return cfgPath, nil, fmt.Errorf("load manifest: %w", err)
	}
	if defaultBranchFlag != "" {
		m.DefaultBranch = defaultBranchFlag
	}
	for _, e := range m.Repos {
		if err := e.Validate(m.DefaultBranch); err != nil {
			return cfgPath, nil, err
		}
	}
	return cfgPath, m, nil
}

func newDriver() *gitops.Driver {
	return gitops.New()
}

// addConfigFlag attaches the --config flag shared by every manifest-reading
// subcommand.
func addConfigFlag(c *cobra.Command, dest *string) {
	c.Flags().StringVar(dest, "config", "", "manifest file to use (default: <path>/.gitrepos)")
}

// addIgnoreFlag attaches the repeatable --ignore flag.
func addIgnoreFlag(c *cobra.Command, dest *[]string) {
	c.Flags().StringArrayVar(dest, "ignore", nil, "exclude a repo by local path (repeatable)")
}
