// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package errors defines the sentinel error kinds the engine reports per
// repository and per run, so callers can classify a failure with errors.Is
// instead of matching on message text.
package errors

import "fmt"

// Kind classifies a failure by which stage of the engine produced it.
type Kind int

const (
	// KindConfig covers a missing, unparseable, or empty manifest.
	KindConfig Kind = iota
	// KindSetup covers directory creation, init, and add-remote failures.
	KindSetup
	// KindFetch covers unreachable remotes or failed ref updates.
	KindFetch
	// KindResolution covers a declared commit/tag/branch that does not
	// exist on any remote tracking ref.
	KindResolution
	// KindStateTransition covers stash, checkout, reset, and clean failures.
	KindStateTransition
	// KindAdvisory covers a non-fatal failure reported alongside a success,
	// such as a failed post-sync tracking-branch update.
	KindAdvisory
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindSetup:
		return "setup"
	case KindFetch:
		return "fetch"
	case KindResolution:
		return "resolution"
	case KindStateTransition:
		return "state-transition"
	case KindAdvisory:
		return "advisory"
	default:
		return "unknown"
	}
}

// RepoError wraps a per-repository failure with the stage that produced it
// and the local path of the affected repository.
type RepoError struct {
	Kind  Kind
	Local string
	Err   error
}

func (e *RepoError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Local, e.Kind, e.Err)
}

func (e *RepoError) Unwrap() error { return e.Err }

// Is reports whether target is a *RepoError with the same Kind, allowing
// callers to write errors.Is(err, &RepoError{Kind: KindFetch}).
func (e *RepoError) Is(target error) bool {
	t, ok := target.(*RepoError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return true
}

// New wraps err as a RepoError of the given kind for the given repo path.
func New(kind Kind, local string, err error) error {
	if err == nil {
		return nil
	}
	return &RepoError{Kind: kind, Local: local, Err: err}
}

// ConfigError reports a manifest-level failure; the run aborts before
// touching any repository.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
