// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoEntryValidate(t *testing.T) {
	tests := []struct {
		name          string
		entry         RepoEntry
		defaultBranch string
		wantErr       bool
	}{
		{
			name:          "missing local",
			entry:         RepoEntry{Remote: "git@example.com:a/b.git"},
			defaultBranch: "main",
			wantErr:       true,
		},
		{
			name:          "missing remote",
			entry:         RepoEntry{Local: "services/a"},
			defaultBranch: "main",
			wantErr:       true,
		},
		{
			name:          "falls back to default branch",
			entry:         RepoEntry{Local: "services/a", Remote: "git@example.com:a/b.git"},
			defaultBranch: "main",
			wantErr:       false,
		},
		{
			name:          "no ref and no default branch",
			entry:         RepoEntry{Local: "services/a", Remote: "git@example.com:a/b.git"},
			defaultBranch: "",
			wantErr:       true,
		},
		{
			name:          "pinned commit needs no default branch",
			entry:         RepoEntry{Local: "services/a", Remote: "git@example.com:a/b.git", Commit: "deadbeef"},
			defaultBranch: "",
			wantErr:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate(tt.defaultBranch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRemoteRefDisplayName(t *testing.T) {
	entry := RepoEntry{Branch: "develop"}

	assert.Equal(t, "commits/abcdef1", RemoteRef{Kind: RefCommit, Value: "abcdef1234567890"}.DisplayName(entry))
	assert.Equal(t, "commits/abc", RemoteRef{Kind: RefCommit, Value: "abc"}.DisplayName(entry))
	assert.Equal(t, "tags/v1.2.3", RemoteRef{Kind: RefTag, Value: "v1.2.3"}.DisplayName(entry))
	assert.Equal(t, "develop", RemoteRef{Kind: RefBranch, Value: "origin/develop"}.DisplayName(entry))
}

func TestResetKindFlag(t *testing.T) {
	assert.Equal(t, "--soft", ResetSoft.Flag())
	assert.Equal(t, "--mixed", ResetMixed.Flag())
	assert.Equal(t, "--hard", ResetHard.Flag())
}

func TestStashKindString(t *testing.T) {
	assert.Equal(t, "normal", StashNormal.String())
	assert.Equal(t, "stash", StashBestEffort.String())
	assert.Equal(t, "hard", StashHard.String())
}
