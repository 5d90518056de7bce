// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package ops

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/archmagece/mgit/internal/compare"
	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

// RepoStatus is one line of the log-repos summary.
type RepoStatus struct {
	Local   string
	Branch  string
	Summary string
	Err     error
}

// LogRepos builds a one-line status summary per entry: current branch plus
// the comparator's ahead/behind/dirty description.
func LogRepos(ctx context.Context, root string, entries []manifest.RepoEntry, defaultBranch string, d *gitops.Driver) []RepoStatus {
	statuses := make([]RepoStatus, 0, len(entries))
	for _, entry := range entries {
		full := filepath.Join(root, entry.Local)
		branch, err := d.GetCurrentBranch(ctx, full)
		if err != nil {
			statuses = append(statuses, RepoStatus{Local: entry.Local, Err: fmt.Errorf("get current branch: %w", err)})
			continue
		}
		summary, err := compare.Summary(ctx, root, entry, defaultBranch, false, d)
		if err != nil {
			statuses = append(statuses, RepoStatus{Local: entry.Local, Branch: branch, Err: err})
			continue
		}
		statuses = append(statuses, RepoStatus{Local: entry.Local, Branch: branch, Summary: summary})
	}
	return statuses
}
