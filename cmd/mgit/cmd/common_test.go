// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archmagece/mgit/internal/manifest"
)

func TestResolvePathDefaultsToCwd(t *testing.T) {
	got, err := resolvePath(nil)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, got)
}

func TestResolvePathUsesPositionalArg(t *testing.T) {
	got, err := resolvePath([]string{"/tmp/workspace"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/workspace", got)
}

func TestLoadManifestRejectsInvalidEntryBeforeReturning(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, manifest.DefaultFileName)
	m := &manifest.Manifest{
		Repos: []manifest.RepoEntry{{Local: "services/a"}}, // missing remote
	}
	require.NoError(t, manifest.Save(path, m))

	_, _, err := loadManifest(root, "", "")
	require.Error(t, err)
}

func TestLoadManifestAppliesDefaultBranchOverride(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, manifest.DefaultFileName)
	m := &manifest.Manifest{
		DefaultBranch: "main",
		Repos:         []manifest.RepoEntry{{Local: "services/a", Remote: "git@example.com:org/a.git"}},
	}
	require.NoError(t, manifest.Save(path, m))

	_, loaded, err := loadManifest(root, "", "develop")
	require.NoError(t, err)
	assert.Equal(t, "develop", loaded.DefaultBranch)
}
