// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package ops

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

func TestFetchAllSucceedsAcrossRepos(t *testing.T) {
	root := t.TempDir()
	remoteA := filepath.Join(root, "remote-a")
	remoteB := filepath.Join(root, "remote-b")
	initRepo(t, remoteA)
	initRepo(t, remoteB)

	localA := filepath.Join(root, "a")
	localB := filepath.Join(root, "b")
	require.NoError(t, exec.Command("git", "clone", remoteA, localA).Run())
	require.NoError(t, exec.Command("git", "clone", remoteB, localB).Run())

	entries := []manifest.RepoEntry{
		{Local: "a", Remote: remoteA, Branch: "main"},
		{Local: "b", Remote: remoteB, Branch: "main"},
	}

	results := FetchAll(context.Background(), root, entries, FetchOptions{Threads: 2}, gitops.New())
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
}

func TestFetchAllReportsPerRepoFailure(t *testing.T) {
	root := t.TempDir()
	localA := filepath.Join(root, "a")
	require.NoError(t, exec.Command("git", "init", "-b", "main", localA).Run())

	entries := []manifest.RepoEntry{{Local: "a", Remote: "nonexistent-remote"}}
	results := FetchAll(context.Background(), root, entries, FetchOptions{}, gitops.New())

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}
