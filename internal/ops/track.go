// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package ops

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

// TrackResult is the outcome of re-running the tracking-branch step for one
// repository outside of a full sync.
type TrackResult struct {
	Local   string
	Message string
	Err     error
}

// Track re-resolves each entry's declared target and sets the current
// branch's upstream accordingly (§4.D step 9), without touching the
// working tree otherwise.
func Track(ctx context.Context, root string, entries []manifest.RepoEntry, defaultBranch string, d *gitops.Driver) []TrackResult {
	results := make([]TrackResult, 0, len(entries))
	for _, entry := range entries {
		full := filepath.Join(root, entry.Local)

		effective := entry
		if effective.Branch == "" && effective.Tag == "" && effective.Commit == "" {
			effective.Branch = defaultBranch
		}

		ref, err := effective.ResolveRemoteRef(ctx, full, d.FindRemoteNameByURL)
		if err != nil {
			results = append(results, TrackResult{Local: entry.Local, Err: fmt.Errorf("resolve remote ref: %w", err)})
			continue
		}

		branch, err := d.GetCurrentBranch(ctx, full)
		if err != nil {
			results = append(results, TrackResult{Local: entry.Local, Err: fmt.Errorf("get current branch: %w", err)})
			continue
		}

		msg := d.SetTrackingRemoteBranch(ctx, full, branch, ref.String())
		results = append(results, TrackResult{Local: entry.Local, Message: msg})
	}
	return results
}
