// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package ops implements the sibling commands that share the engine's git
// driver but sit outside the sync state machine: list-files, log-repos,
// track, clean, and the bulk remote-authoring commands.
package ops

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

// ListFiles runs `git ls-files -s` against every entry and returns each
// line re-prefixed with the entry's repo-relative path, so the output reads
// like a single `ls-files -s` over the whole workspace.
func ListFiles(ctx context.Context, root string, entries []manifest.RepoEntry, d *gitops.Driver) []string {
	var out []string
	for _, entry := range entries {
		full := filepath.Join(root, entry.Local)
		raw, err := d.LsFiles(ctx, full)
		if err != nil {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, line := range strings.Split(raw, "\n") {
			idx := strings.LastIndex(line, "\t")
			if idx < 0 {
				continue
			}
			left, right := line[:idx], line[idx+1:]
			out = append(out, left+"\t"+joinRepoPath(entry.Local, right))
		}
	}
	return out
}

// joinRepoPath prefixes a file's path within a repo with the repo's
// workspace-relative location, using forward slashes as git does.
func joinRepoPath(local, file string) string {
	if local == "." {
		return file
	}
	return path.Join(filepath.ToSlash(local), file)
}
