// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package ops

import (
	"context"
	"path/filepath"

	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

// AuthorResult is the per-repository outcome of a bulk remote-authoring
// command (new-branch, del-branch, new-tag).
type AuthorResult struct {
	Local string
	Err   error
}

// NewBranch creates newBranch on origin, pointed at base, for every entry.
func NewBranch(ctx context.Context, root string, entries []manifest.RepoEntry, base, newBranch string, d *gitops.Driver) []AuthorResult {
	return eachEntry(entries, func(full string) error {
		return d.NewRemoteBranch(ctx, full, base, newBranch)
	}, root)
}

// DelBranch deletes branch on origin for every entry.
func DelBranch(ctx context.Context, root string, entries []manifest.RepoEntry, branch string, d *gitops.Driver) []AuthorResult {
	return eachEntry(entries, func(full string) error {
		return d.DelRemoteBranch(ctx, full, branch)
	}, root)
}

// NewTag creates a local tag and pushes it to origin for every entry.
func NewTag(ctx context.Context, root string, entries []manifest.RepoEntry, name string, d *gitops.Driver) []AuthorResult {
	return eachEntry(entries, func(full string) error {
		if err := d.NewLocalTag(ctx, full, name); err != nil {
			return err
		}
		return d.PushTag(ctx, full, name)
	}, root)
}

func eachEntry(entries []manifest.RepoEntry, fn func(full string) error, root string) []AuthorResult {
	results := make([]AuthorResult, 0, len(entries))
	for _, entry := range entries {
		full := filepath.Join(root, entry.Local)
		results = append(results, AuthorResult{Local: entry.Local, Err: fn(full)})
	}
	return results
}
