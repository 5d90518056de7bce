// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWrapsNonNilErrors(t *testing.T) {
	cause := errors.New("boom")
	err := New(KindFetch, "services/a", cause)
	require.Error(t, err)

	var repoErr *RepoError
	require.True(t, errors.As(err, &repoErr))
	assert.Equal(t, KindFetch, repoErr.Kind)
	assert.Equal(t, "services/a", repoErr.Local)
	assert.ErrorIs(t, err, cause)
}

func TestNewReturnsNilForNilError(t *testing.T) {
	assert.NoError(t, New(KindFetch, "services/a", nil))
}

func TestRepoErrorIsMatchesByKindOnly(t *testing.T) {
	fetchA := New(KindFetch, "a", errors.New("x"))
	fetchB := New(KindFetch, "b", errors.New("y"))
	setupA := New(KindSetup, "a", errors.New("z"))

	assert.True(t, errors.Is(fetchA, &RepoError{Kind: KindFetch}))
	assert.True(t, errors.Is(fetchB, &RepoError{Kind: KindFetch}))
	assert.False(t, errors.Is(setupA, &RepoError{Kind: KindFetch}))
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindConfig:          "config",
		KindSetup:           "setup",
		KindFetch:           "fetch",
		KindResolution:      "resolution",
		KindStateTransition: "state-transition",
		KindAdvisory:        "advisory",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}

func TestConfigErrorUnwraps(t *testing.T) {
	cause := errors.New("parse failure")
	err := &ConfigError{Path: "/ws/.gitrepos", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/ws/.gitrepos")
}
