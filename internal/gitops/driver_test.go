// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRepository(t *testing.T) {
	ctx := context.Background()
	d := New()
	dir := testRepo(t)

	assert.True(t, d.IsRepository(ctx, dir))
	assert.False(t, d.IsRepository(ctx, t.TempDir()))
}

func TestGetCurrentBranchAndCommit(t *testing.T) {
	ctx := context.Background()
	d := New()
	dir := testRepo(t)

	branch, err := d.GetCurrentBranch(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	commit, err := d.GetCurrentCommit(ctx, dir)
	require.NoError(t, err)
	assert.Len(t, commit, 40)
}

func TestAddRemoteAndFindByURL(t *testing.T) {
	ctx := context.Background()
	d := New()
	dir := testRepo(t)

	require.NoError(t, d.AddRemoteURL(ctx, dir, "origin", "https://example.com/org/repo.git"))

	name, err := d.FindRemoteNameByURL(ctx, dir, "https://example.com/org/repo.git")
	require.NoError(t, err)
	assert.Equal(t, "origin", name)

	url, err := d.FindRemoteURLByName(ctx, dir, "origin")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/org/repo.git", url)

	remotes, err := d.ListRemotes(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"origin"}, remotes)
}

func TestStashRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := New()
	dir := testRepo(t)

	writeFile(t, dir, "README.md", "changed\n")
	writeFile(t, dir, "untracked.txt", "new\n")

	msg, err := d.Stash(ctx, dir)
	require.NoError(t, err)
	assert.Contains(t, msg, "WIP")

	untracked, err := d.GetUntrackedFiles(ctx, dir)
	require.NoError(t, err)
	assert.Empty(t, untracked)

	require.NoError(t, d.StashPop(ctx, dir))

	untracked, err = d.GetUntrackedFiles(ctx, dir)
	require.NoError(t, err)
	assert.Contains(t, untracked, "untracked.txt")
}

func TestStashNoChangesReportsNoWIP(t *testing.T) {
	ctx := context.Background()
	d := New()
	dir := testRepo(t)

	msg, err := d.Stash(ctx, dir)
	require.NoError(t, err)
	assert.NotContains(t, msg, "WIP")
}

func TestLocalBranchAlreadyExists(t *testing.T) {
	ctx := context.Background()
	d := New()
	dir := testRepo(t)

	assert.True(t, d.LocalBranchAlreadyExists(ctx, dir, "main"))
	assert.False(t, d.LocalBranchAlreadyExists(ctx, dir, "does-not-exist"))
}

func TestCheckoutCreatesNewBranch(t *testing.T) {
	ctx := context.Background()
	d := New()
	dir := testRepo(t)

	require.NoError(t, d.Checkout(ctx, dir, []string{"-b", "feature"}))

	branch, err := d.GetCurrentBranch(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "feature", branch)
}

func TestCleanRemovesUntrackedFiles(t *testing.T) {
	ctx := context.Background()
	d := New()
	dir := testRepo(t)
	writeFile(t, dir, "junk.txt", "scratch\n")

	require.NoError(t, d.Clean(ctx, dir))

	untracked, err := d.GetUntrackedFiles(ctx, dir)
	require.NoError(t, err)
	assert.Empty(t, untracked)
}

func TestGetRevListCountParsesAheadBehind(t *testing.T) {
	ctx := context.Background()
	d := New()
	dir := testRepo(t)

	require.NoError(t, d.Checkout(ctx, dir, []string{"-b", "feature"}))
	writeFile(t, dir, "feature.txt", "feature work\n")
	runGit(t, dir, "add", "feature.txt")
	runGit(t, dir, "commit", "-m", "feature commit")

	ahead, behind, err := d.GetRevListCount(ctx, dir, "main...feature")
	require.NoError(t, err)
	assert.Equal(t, 0, ahead)
	assert.Equal(t, 1, behind)
}

func TestSparseCheckoutSetAndList(t *testing.T) {
	ctx := context.Background()
	d := New()
	dir := testRepo(t)

	require.NoError(t, d.SparseCheckoutSet(ctx, dir, []string{"services/a"}))

	patterns, err := d.SparseCheckoutList(ctx, dir)
	require.NoError(t, err)
	assert.Contains(t, patterns, "services/a")

	require.NoError(t, d.SparseCheckoutDisable(ctx, dir))
}
