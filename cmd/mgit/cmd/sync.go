// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archmagece/mgit/internal/manifest"
	"github.com/archmagece/mgit/internal/progressui"
	"github.com/archmagece/mgit/internal/syncengine"
)

func newSyncCmd() *cobra.Command {
	var (
		configFlag string
		ignore     []string
		threads    int
		stash      bool
		hard       bool
		silent     bool
		noTrack    bool
		noCheckout bool
		depth      int
		assumeYes  bool
	)

	c := &cobra.Command{
		Use:   "sync [path]",
		Short: "Converge every repository in the manifest onto its declared target",
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

			stashMode := manifest.StashNormal
			switch {
			case stash:
				stashMode = manifest.StashBestEffort
			case hard:
				stashMode = manifest.StashHard
				ok, err := progressui.Confirm(fmt.Sprintf("sync --hard will discard local changes in %d repositories. Continue?", len(m.Repos)), assumeYes)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(os.Stdout, "aborted")
					return nil
				}
			}

			var sink syncengine.ProgressSink = syncengine.SilentSink{}
			if !silent {
				if progressui.IsInteractive() {
					sink = progressui.NewBubbleSink()
				} else {
					sink = progressui.NewConsoleSink(os.Stdout, noColor)
				}
			}

			report := syncengine.Run(cmd.Context(), syncengine.RunRequest{
				Root:     root,
				Manifest: m,
				Options: syncengine.Options{
					Stash:         stashMode,
					NoCheckout:    noCheckout,
					NoTrack:       noTrack,
					Depth:         depth,
					DefaultBranch: m.DefaultBranch,
					Ignore:        ignore,
					Silent:        silent,
					Threads:       threads,
				},
				Sink:   sink,
				Driver: newDriver(),
			})

			return renderReport(report)
		},
	}

	addConfigFlag(c, &configFlag)
	addIgnoreFlag(c, &ignore)
	c.Flags().IntVar(&threads, "thread", 4, "number of concurrent workers")
	c.Flags().BoolVar(&stash, "stash", false, "best-effort stash local changes and force the checkout; the stash is popped back only if the sync fails")
	c.Flags().BoolVar(&hard, "hard", false, "discard local changes unconditionally")
	c.Flags().BoolVar(&silent, "silent", false, "suppress progress output")
	c.Flags().BoolVar(&noTrack, "no-track", false, "skip setting the upstream tracking branch after sync")
	c.Flags().BoolVar(&noCheckout, "no-checkout", false, "update refs without touching the working tree")
	c.Flags().IntVar(&depth, "depth", 0, "shallow-fetch depth hint (0 disables)")
	c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the --hard confirmation prompt")
	c.MarkFlagsMutuallyExclusive("stash", "hard")

	return c
}

func renderReport(report syncengine.RunReport) error {
	for _, s := range report.Successes {
		if s.TrackMessage != "" {
			fmt.Printf("%s: ok (%s)\n", s.Entry.Local, s.TrackMessage)
		} else {
			fmt.Printf("%s: ok\n", s.Entry.Local)
		}
	}
	for _, f := range report.Failures {
		fmt.Printf("%s: FAILED: %v\n", f.Entry.Local, f.Err)
	}
	if len(report.Failures) > 0 {
		fmt.Printf("%d error(s)\n", len(report.Failures))
		return fmt.Errorf("%d repositories failed", len(report.Failures))
	}
	return nil
}
