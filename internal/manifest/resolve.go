// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package manifest

import (
	"context"
	"fmt"
	"path/filepath"
)

// RemoteNameResolver looks up the local name of the remote configured at
// path whose URL matches url (e.g. "origin"). Implemented by internal/gitops.
type RemoteNameResolver func(ctx context.Context, path, url string) (string, error)

// ResolveRemoteRef computes the effective RemoteRef for entry, following the
// commit > tag > branch precedence from §4.B.
func (e RepoEntry) ResolveRemoteRef(ctx context.Context, path string, resolver RemoteNameResolver) (RemoteRef, error) {
	switch {
	case e.Commit != "":
		return RemoteRef{Kind: RefCommit, Value: e.Commit}, nil
	case e.Tag != "":
		return RemoteRef{Kind: RefTag, Value: e.Tag}, nil
	case e.Branch != "":
		name, err := resolver(ctx, path, e.Remote)
		if err != nil {
			return RemoteRef{}, fmt.Errorf("remote ref is invalid: %w", err)
		}
		return RemoteRef{Kind: RefBranch, Value: name + "/" + e.Branch}, nil
	default:
		return RemoteRef{}, fmt.Errorf("remote ref is invalid")
	}
}

// ExcludeIgnore removes any entry whose normalized Local path equals any
// token in ignore.
func ExcludeIgnore(entries []RepoEntry, ignore []string) []RepoEntry {
	if len(ignore) == 0 {
		return entries
	}
	normalized := make(map[string]struct{}, len(ignore))
	for _, tok := range ignore {
		normalized[normalizeLocal(tok)] = struct{}{}
	}
	out := make([]RepoEntry, 0, len(entries))
	for _, e := range entries {
		if _, skip := normalized[normalizeLocal(e.Local)]; skip {
			continue
		}
		out = append(out, e)
	}
	return out
}

func normalizeLocal(p string) string {
	if p == "" {
		return "."
	}
	return filepath.Clean(p)
}
