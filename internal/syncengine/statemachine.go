// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package syncengine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mgerrors "github.com/archmagece/mgit/internal/errors"
	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

// RunUnit drives the full per-repository convergence sequence described by
// §4.D: ensure the working tree exists, initialize it if absent, fetch,
// resolve and validate the declared target, then branch on the effective
// stash mode to reach that target. It returns an advisory tracking message
// on success and a classified error on failure.
func RunUnit(ctx context.Context, root string, entry manifest.RepoEntry, opts Options, d *gitops.Driver) (string, error) {
	path := filepath.Join(root, entry.Local)
	stashMode := opts.Stash

	// Step 1: ensure the working directory exists.
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", mgerrors.New(mgerrors.KindSetup, entry.Local, fmt.Errorf("create working directory: %w", err))
	}

	// Step 2: bootstrap a fresh repository when none exists yet.
	if !d.IsRepository(ctx, path) {
		stashMode = manifest.StashHard
		if err := d.Init(ctx, path); err != nil {
			return "", mgerrors.New(mgerrors.KindSetup, entry.Local, fmt.Errorf("git init: %w", err))
		}
		if err := d.AddRemoteURL(ctx, path, "origin", entry.Remote); err != nil {
			return "", mgerrors.New(mgerrors.KindSetup, entry.Local, fmt.Errorf("add remote: %w", err))
		}
	}

	// Step 3: fall back to the default branch when the entry declares none.
	effective := entry
	if effective.Branch == "" && effective.Tag == "" && effective.Commit == "" {
		effective.Branch = opts.DefaultBranch
	}

	// Step 4: fetch before resolving, so newly declared refs are visible.
	remoteName, err := d.FindRemoteNameByURL(ctx, path, effective.Remote)
	if err != nil {
		remoteName = "origin"
	}
	if err := d.Fetch(ctx, path, remoteName, false, opts.Depth); err != nil {
		return "", mgerrors.New(mgerrors.KindFetch, entry.Local, fmt.Errorf("git fetch: %w", err))
	}

	// Step 5: resolve and validate the declared target.
	ref, err := effective.ResolveRemoteRef(ctx, path, d.FindRemoteNameByURL)
	if err != nil {
		return "", mgerrors.New(mgerrors.KindResolution, entry.Local, err)
	}
	if !d.IsRemoteRefValid(ctx, path, ref.String()) {
		return "", mgerrors.New(mgerrors.KindResolution, entry.Local, fmt.Errorf("remote ref %q is not reachable from any remote branch", ref.String()))
	}

	branchDisplay := ref.DisplayName(effective)

	// Step 6: converge according to the effective stash mode.
	var stateErr error
	switch stashMode {
	case manifest.StashNormal:
		stateErr = runNormal(ctx, path, branchDisplay, ref, opts.NoCheckout, d)
	case manifest.StashBestEffort:
		stateErr = runStash(ctx, path, branchDisplay, ref, opts.NoCheckout, d)
	default:
		stateErr = runHard(ctx, path, branchDisplay, ref, opts.NoCheckout, d)
	}
	if stateErr != nil {
		return "", mgerrors.New(mgerrors.KindStateTransition, entry.Local, stateErr)
	}

	// Step 9: advisory tracking update, never fatal.
	trackMessage := ""
	if !opts.NoTrack {
		trackMessage = d.SetTrackingRemoteBranch(ctx, path, branchDisplay, ref.String())
	}
	return trackMessage, nil
}

func runNormal(ctx context.Context, path, branchDisplay string, ref manifest.RemoteRef, noCheckout bool, d *gitops.Driver) error {
	if noCheckout {
		return d.Reset(ctx, path, manifest.ResetSoft.Flag(), ref.String())
	}

	stashMsg, _ := d.Stash(ctx, path)
	err := checkout(ctx, path, branchDisplay, ref.String(), false, d)
	if err == nil {
		err = d.Reset(ctx, path, manifest.ResetHard.Flag(), ref.String())
	}
	if strings.Contains(stashMsg, "WIP") {
		_ = d.StashPop(ctx, path)
	}
	return err
}

func runStash(ctx context.Context, path, branchDisplay string, ref manifest.RemoteRef, noCheckout bool, d *gitops.Driver) error {
	stashMsg, stashErr := d.Stash(ctx, path)
	if stashErr != nil {
		stashMsg = ""
	}

	var err error
	if !noCheckout {
		err = checkout(ctx, path, branchDisplay, ref.String(), true, d)
	}
	if err == nil {
		resetMode := manifest.ResetHard.Flag()
		if noCheckout {
			resetMode = manifest.ResetMixed.Flag()
		}
		err = d.Reset(ctx, path, resetMode, ref.String())
	}
	if err != nil && strings.Contains(stashMsg, "WIP") {
		_ = d.StashPop(ctx, path)
	}
	return err
}

func runHard(ctx context.Context, path, branchDisplay string, ref manifest.RemoteRef, noCheckout bool, d *gitops.Driver) error {
	if err := d.Clean(ctx, path); err != nil {
		return err
	}
	if !noCheckout {
		if err := checkout(ctx, path, branchDisplay, ref.String(), true, d); err != nil {
			return err
		}
	}
	return d.Reset(ctx, path, manifest.ResetHard.Flag(), ref.String())
}

// checkout implements the argv decision table of §4.D step 7, short-
// circuiting when the worktree is already on branchDisplay.
func checkout(ctx context.Context, path, branchDisplay, refStr string, force bool, d *gitops.Driver) error {
	current, err := d.GetCurrentBranch(ctx, path)
	if err == nil && current == branchDisplay {
		return nil
	}

	localExists := d.LocalBranchAlreadyExists(ctx, path, branchDisplay)
	var argv []string
	switch {
	case !localExists && !force:
		argv = []string{"-B", branchDisplay, refStr, "--no-track"}
	case !localExists && force:
		argv = []string{"-B", branchDisplay, refStr, "--no-track", "-f"}
	case localExists && !force:
		argv = []string{branchDisplay}
	default:
		argv = []string{"-B", branchDisplay, "-f"}
	}
	return d.Checkout(ctx, path, argv)
}
