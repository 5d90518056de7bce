// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package compare implements the read-only divergence summary the sync
// engine renders before and after converging a repository.
package compare

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

// AlreadyUpToDate is the exact fragment the runner looks for when deciding
// whether to rewrite an "after" summary into an update-to message (§4.E
// step 4).
const AlreadyUpToDate = "already update to date."

// Summary computes the human-readable divergence summary for one entry.
// When useTracking is true the comparison target is the current branch's
// upstream rather than the manifest-declared target.
func Summary(ctx context.Context, root string, entry manifest.RepoEntry, defaultBranch string, useTracking bool, d *gitops.Driver) (string, error) {
	path := filepath.Join(root, entry.Local)

	refStr, err := resolveCompareTarget(ctx, path, entry, useTracking, d)
	if err != nil {
		return "", err
	}
	if refStr == "" {
		return "not tracking", nil
	}

	changeCount, err := countChanges(ctx, path, d)
	if err != nil {
		return "", err
	}

	currentBranch, err := d.GetCurrentBranch(ctx, path)
	if err != nil {
		return "", err
	}
	if currentBranch == "" {
		return "init commit", nil
	}

	var aheadBehind string
	ahead, behind, err := d.GetRevListCount(ctx, path, currentBranch+"..."+refStr)
	if err != nil {
		aheadBehind = "unknown revision"
	} else if ahead == 0 && behind == 0 {
		aheadBehind = ""
	} else {
		aheadBehind = fmt.Sprintf("ahead %d, behind %d", ahead, behind)
	}

	if aheadBehind == "" && changeCount == 0 {
		log, logErr := d.GetBranchLog(ctx, path)
		if logErr != nil || log == "" {
			return AlreadyUpToDate, nil
		}
		return fmt.Sprintf("%s %s", AlreadyUpToDate, log), nil
	}

	var fragments []string
	if aheadBehind != "" {
		fragments = append(fragments, aheadBehind)
	}
	if changeCount > 0 {
		fragments = append(fragments, fmt.Sprintf("%d changes", changeCount))
	}
	return fmt.Sprintf("%s: %s", refStr, strings.Join(fragments, ", ")), nil
}

func resolveCompareTarget(ctx context.Context, path string, entry manifest.RepoEntry, useTracking bool, d *gitops.Driver) (string, error) {
	if useTracking {
		return d.GetTrackingBranch(ctx, path)
	}
	ref, err := entry.ResolveRemoteRef(ctx, path, d.FindRemoteNameByURL)
	if err != nil {
		return "", err
	}
	return ref.String(), nil
}

func countChanges(ctx context.Context, path string, d *gitops.Driver) (int, error) {
	untracked, err := d.GetUntrackedFiles(ctx, path)
	if err != nil {
		return 0, err
	}
	changed, err := d.GetChangedFiles(ctx, path)
	if err != nil {
		return 0, err
	}
	staged, err := d.GetStagedFiles(ctx, path)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(untracked)+len(changed)+len(staged))
	for _, f := range untracked {
		seen[f] = struct{}{}
	}
	for _, f := range changed {
		seen[f] = struct{}{}
	}
	for _, f := range staged {
		seen[f] = struct{}{}
	}
	return len(seen), nil
}
