// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package ops

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

// FetchOptions configures a parallel-fetch-only run.
type FetchOptions struct {
	Threads int
	Depth   int
}

// FetchResult is the per-repository outcome of a fetch-only run.
type FetchResult struct {
	Local string
	Err   error
}

// FetchAll runs `git fetch` across every entry, bounded by Threads (default
// 4), sharing the same concurrency shape as the sync runner (§4.E) without
// driving the rest of the per-repo state machine.
func FetchAll(ctx context.Context, root string, entries []manifest.RepoEntry, opts FetchOptions, d *gitops.Driver) []FetchResult {
	threads := opts.Threads
	if threads <= 0 {
		threads = 4
	}

	results := make([]FetchResult, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			full := filepath.Join(root, entry.Local)
			remoteName, err := d.FindRemoteNameByURL(gctx, full, entry.Remote)
			if err != nil {
				remoteName = "origin"
			}
			if err := d.Fetch(gctx, full, remoteName, false, opts.Depth); err != nil {
				results[i] = FetchResult{Local: entry.Local, Err: fmt.Errorf("git fetch: %w", err)}
				return nil
			}
			results[i] = FetchResult{Local: entry.Local}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
