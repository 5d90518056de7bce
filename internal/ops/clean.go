// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package ops

import (
	"context"
	"os"
	"path/filepath"

	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
	"github.com/archmagece/mgit/internal/snapshot"
)

// PlanClean reuses the snapshot walk to find every git working tree under
// root, then returns the subset whose local path is not declared by the
// manifest. It performs no filesystem mutation; callers remove the
// returned paths themselves, typically after a confirmation prompt.
func PlanClean(ctx context.Context, root string, entries []manifest.RepoEntry, d *gitops.Driver) ([]string, error) {
	declared := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		declared[e.Local] = struct{}{}
	}

	discovered, err := snapshot.Scan(ctx, root, snapshot.Options{Force: true}, d)
	if err != nil {
		return nil, err
	}

	var stray []string
	for _, e := range discovered {
		if _, ok := declared[e.Local]; !ok {
			stray = append(stray, e.Local)
		}
	}
	return stray, nil
}

// Clean removes every working tree in stray (relative to root).
func Clean(root string, stray []string) error {
	for _, local := range stray {
		if err := os.RemoveAll(filepath.Join(root, local)); err != nil {
			return err
		}
	}
	return nil
}
