// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package snapshot implements the directory walk that discovers git working
// trees under a root and turns them into manifest entries (the inverse of
// sync: init and snapshot).
package snapshot

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

// Options configures one scan.
type Options struct {
	// Force includes the workspace root itself as an entry (local = ".")
	// when it is a repository.
	Force bool
	// UseBranch records the current branch instead of the current commit.
	UseBranch bool
	// Ignore filters out entries whose local path matches any of these
	// tokens before the scan result is returned.
	Ignore []string
}

// Scan walks root depth-first and returns one RepoEntry per discovered git
// working tree, in deterministic lexicographic order with "." sorting
// first when present (§4.F).
func Scan(ctx context.Context, root string, opts Options, d *gitops.Driver) ([]manifest.RepoEntry, error) {
	var entries []manifest.RepoEntry

	err := filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !de.IsDir() {
			return nil
		}
		if de.Name() == ".git" {
			return filepath.SkipDir
		}

		if !d.IsRepository(ctx, path) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." && !opts.Force {
			return nil
		}

		entry, buildErr := buildEntry(ctx, path, rel, opts.UseBranch, d)
		if buildErr != nil {
			return fmt.Errorf("scan %s: %w", rel, buildErr)
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries = manifest.ExcludeIgnore(entries, opts.Ignore)
	manifest.SortEntries(entries)
	return entries, nil
}

func buildEntry(ctx context.Context, path, rel string, useBranch bool, d *gitops.Driver) (manifest.RepoEntry, error) {
	entry := manifest.RepoEntry{Local: rel}

	remoteURL, err := firstRemoteURL(ctx, path, d)
	if err == nil {
		entry.Remote = remoteURL
	}

	if useBranch {
		branch, err := d.GetCurrentBranch(ctx, path)
		if err != nil {
			return entry, fmt.Errorf("get current branch: %w", err)
		}
		entry.Branch = branch
		return entry, nil
	}

	commit, err := d.GetCurrentCommit(ctx, path)
	if err != nil {
		return entry, fmt.Errorf("get current commit: %w", err)
	}
	entry.Commit = commit
	return entry, nil
}

// firstRemoteURL prefers "origin" and otherwise falls back to whichever
// remote git lists first.
func firstRemoteURL(ctx context.Context, path string, d *gitops.Driver) (string, error) {
	if url, err := d.FindRemoteURLByName(ctx, path, "origin"); err == nil {
		return url, nil
	}
	names, err := d.ListRemotes(ctx, path)
	if err != nil || len(names) == 0 {
		return "", fmt.Errorf("no remotes configured")
	}
	return d.FindRemoteURLByName(ctx, path, names[0])
}
