// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package snapshot

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archmagece/mgit/internal/gitops"
)

func initRepo(t *testing.T, dir, remote string) {
	t.Helper()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	require.NoError(t, os.MkdirAll(dir, 0o755))
	run("init", "-b", "main")
	run("config", "user.name", "Test User")
	run("config", "user.email", "test@example.com")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi\n"), 0o644))
	run("add", "README.md")
	run("commit", "-m", "initial commit")
	if remote != "" {
		run("remote", "add", "origin", remote)
	}
}

func TestScanFindsNestedRepositories(t *testing.T) {
	root := t.TempDir()
	initRepo(t, filepath.Join(root, "services", "a"), "git@example.com:org/a.git")
	initRepo(t, filepath.Join(root, "services", "b"), "git@example.com:org/b.git")

	entries, err := Scan(context.Background(), root, Options{}, gitops.New())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, filepath.Join("services", "a"), entries[0].Local)
	assert.Equal(t, "git@example.com:org/a.git", entries[0].Remote)
	assert.NotEmpty(t, entries[0].Commit)
	assert.Equal(t, filepath.Join("services", "b"), entries[1].Local)
}

func TestScanUsesBranchWhenRequested(t *testing.T) {
	root := t.TempDir()
	initRepo(t, filepath.Join(root, "a"), "git@example.com:org/a.git")

	entries, err := Scan(context.Background(), root, Options{UseBranch: true}, gitops.New())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "main", entries[0].Branch)
	assert.Empty(t, entries[0].Commit)
}

func TestScanExcludesRootUnlessForced(t *testing.T) {
	root := t.TempDir()
	initRepo(t, root, "git@example.com:org/root.git")
	initRepo(t, filepath.Join(root, "nested"), "git@example.com:org/nested.git")

	entries, err := Scan(context.Background(), root, Options{}, gitops.New())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "nested", entries[0].Local)

	entries, err = Scan(context.Background(), root, Options{Force: true}, gitops.New())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ".", entries[0].Local)
}

func TestScanAppliesIgnore(t *testing.T) {
	root := t.TempDir()
	initRepo(t, filepath.Join(root, "a"), "git@example.com:org/a.git")
	initRepo(t, filepath.Join(root, "b"), "git@example.com:org/b.git")

	entries, err := Scan(context.Background(), root, Options{Ignore: []string{"a"}}, gitops.New())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Local)
}
