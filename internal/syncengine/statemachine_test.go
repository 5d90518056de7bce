// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package syncengine

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

func run(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func initFixtureRepo(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	run(t, dir, "init", "-b", "main")
	run(t, dir, "config", "user.name", "Test User")
	run(t, dir, "config", "user.email", "test@example.com")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi\n"), 0o644))
	run(t, dir, "add", "README.md")
	run(t, dir, "commit", "-m", "initial commit")
}

func TestRunUnitBootstrapsMissingWorkingTree(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	remoteDir := filepath.Join(root, "remote")
	initFixtureRepo(t, remoteDir)

	entry := manifest.RepoEntry{Local: "fresh", Remote: remoteDir, Branch: "main"}
	opts := Options{DefaultBranch: "main", Stash: manifest.StashHard}

	_, err := RunUnit(ctx, root, entry, opts, gitops.New())
	require.NoError(t, err)

	localPath := filepath.Join(root, "fresh")
	d := gitops.New()
	assert.True(t, d.IsRepository(ctx, localPath))
	branch, err := d.GetCurrentBranch(ctx, localPath)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestRunUnitHardDiscardsLocalChanges(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	remoteDir := filepath.Join(root, "remote")
	initFixtureRepo(t, remoteDir)

	localDir := filepath.Join(root, "local")
	run(t, root, "clone", remoteDir, localDir)
	run(t, localDir, "config", "user.name", "Test User")
	run(t, localDir, "config", "user.email", "test@example.com")
	require.NoError(t, os.WriteFile(filepath.Join(localDir, "scratch.txt"), []byte("wip\n"), 0o644))

	entry := manifest.RepoEntry{Local: "local", Remote: remoteDir, Branch: "main"}
	opts := Options{DefaultBranch: "main", Stash: manifest.StashHard}

	_, err := RunUnit(ctx, root, entry, opts, gitops.New())
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(localDir, "scratch.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunUnitResolutionFailureForUnknownBranch(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	remoteDir := filepath.Join(root, "remote")
	initFixtureRepo(t, remoteDir)

	entry := manifest.RepoEntry{Local: "fresh", Remote: remoteDir, Branch: "does-not-exist"}
	opts := Options{Stash: manifest.StashHard}

	_, err := RunUnit(ctx, root, entry, opts, gitops.New())
	require.Error(t, err)
}
