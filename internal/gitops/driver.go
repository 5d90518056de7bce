// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package gitops provides typed wrappers around the git CLI: one function
// per operation, each launching git with a fixed argv in a given working
// directory and mapping a non-zero exit to an error carrying stderr. No
// function retries and none shells out through anything but os/exec.
package gitops

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/archmagece/mgit/internal/gitcmd"
)

// Driver wraps a gitcmd.Executor with the operation set the sync engine
// needs. It is safe for concurrent use across repositories since it holds
// no per-repo state; callers pass the working directory on every call.
type Driver struct {
	exec *gitcmd.Executor
}

// New creates a Driver using the default git binary on PATH.
func New(opts ...gitcmd.Option) *Driver {
	return &Driver{exec: gitcmd.NewExecutor(opts...)}
}

// IsRepository reports whether path is the root of a git working tree (not
// merely inside one): path/.git must exist and `rev-parse --show-cdup`
// must return empty.
func (d *Driver) IsRepository(ctx context.Context, path string) bool {
	if !d.exec.IsGitRepository(ctx, path) {
		return false
	}
	out, err := d.exec.RunOutput(ctx, path, "rev-parse", "--show-cdup")
	if err != nil {
		return false
	}
	return out == ""
}

// FindRemoteNameByURL scans `git remote -v` for a line containing url and
// returns the remote's name.
func (d *Driver) FindRemoteNameByURL(ctx context.Context, path, url string) (string, error) {
	lines, err := d.exec.RunLines(ctx, path, "remote", "-v")
	if err != nil {
		return "", fmt.Errorf("list remotes: %w", err)
	}
	for _, line := range lines {
		if strings.Contains(line, url) {
			fields := strings.Fields(line)
			if len(fields) > 0 {
				return fields[0], nil
			}
		}
	}
	return "", fmt.Errorf("no remote found for url %q", url)
}

// FindRemoteURLByName returns the URL configured for the named remote.
func (d *Driver) FindRemoteURLByName(ctx context.Context, path, name string) (string, error) {
	return d.exec.RunOutput(ctx, path, "remote", "get-url", name)
}

// ListRemotes returns the configured remote names, in git's own order.
func (d *Driver) ListRemotes(ctx context.Context, path string) ([]string, error) {
	return d.exec.RunLines(ctx, path, "remote")
}

// IsRemoteRefValid succeeds iff ref is reachable from some remote tracking
// branch.
func (d *Driver) IsRemoteRefValid(ctx context.Context, path, ref string) bool {
	ok, err := d.exec.RunQuiet(ctx, path, "branch", "--contains", ref, "-r")
	return err == nil && ok
}

// GetCurrentBranch returns the checked-out branch name, or "" when detached.
func (d *Driver) GetCurrentBranch(ctx context.Context, path string) (string, error) {
	out, err := d.exec.RunOutput(ctx, path, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return out, nil
}

// GetCurrentCommit returns the full SHA of HEAD.
func (d *Driver) GetCurrentCommit(ctx context.Context, path string) (string, error) {
	return d.exec.RunOutput(ctx, path, "rev-parse", "HEAD")
}

// GetTrackingBranch returns the upstream of the current branch, or "" when
// there is none.
func (d *Driver) GetTrackingBranch(ctx context.Context, path string) (string, error) {
	out, err := d.exec.RunOutput(ctx, path, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	if err != nil {
		return "", nil // no upstream is not fatal
	}
	return out, nil
}

// GetHeadTags returns the tags pointing at HEAD.
func (d *Driver) GetHeadTags(ctx context.Context, path string) ([]string, error) {
	return d.exec.RunLines(ctx, path, "tag", "--points-at", "HEAD")
}

// GetBranchLog returns a short, one-line log of HEAD for display.
func (d *Driver) GetBranchLog(ctx context.Context, path string) (string, error) {
	return d.exec.RunOutput(ctx, path, "log", "-1", "--pretty=format:%h %s")
}

// GetUntrackedFiles lists files not tracked by git and not ignored.
func (d *Driver) GetUntrackedFiles(ctx context.Context, path string) ([]string, error) {
	return d.exec.RunLines(ctx, path, "ls-files", ".", "--exclude-standard", "--others")
}

// GetChangedFiles lists tracked files with unstaged modifications.
func (d *Driver) GetChangedFiles(ctx context.Context, path string) ([]string, error) {
	return d.exec.RunLines(ctx, path, "diff", "--name-only")
}

// GetStagedFiles lists files staged for commit.
func (d *Driver) GetStagedFiles(ctx context.Context, path string) ([]string, error) {
	return d.exec.RunLines(ctx, path, "diff", "--cached", "--name-only")
}

var revListCountPattern = regexp.MustCompile(`(\d+)\s+(\d+)`)

// GetRevListCount runs `rev-list --count --left-right <pair>` and parses the
// "ahead behind" pair of counts from the output.
func (d *Driver) GetRevListCount(ctx context.Context, path, pair string) (ahead, behind int, err error) {
	out, err := d.exec.RunOutput(ctx, path, "rev-list", "--count", "--left-right", pair)
	if err != nil {
		return 0, 0, err
	}
	m := revListCountPattern.FindStringSubmatch(out)
	if m == nil {
		return 0, 0, fmt.Errorf("unrecognized rev-list output: %q", out)
	}
	ahead, _ = strconv.Atoi(m[1])
	behind, _ = strconv.Atoi(m[2])
	return ahead, behind, nil
}

// Init creates a new repository at path with a fixed initial branch name,
// avoiding ambiguity across host git configurations.
func (d *Driver) Init(ctx context.Context, path string) error {
	return d.run(ctx, path, "init", "-b", "master")
}

// AddRemoteURL configures a new remote.
func (d *Driver) AddRemoteURL(ctx context.Context, path, name, url string) error {
	return d.run(ctx, path, "remote", "add", name, url)
}

// UpdateRemoteURL rewrites an existing remote's URL.
func (d *Driver) UpdateRemoteURL(ctx context.Context, path, name, url string) error {
	return d.run(ctx, path, "remote", "set-url", name, url)
}

// Clean removes untracked files and directories.
func (d *Driver) Clean(ctx context.Context, path string) error {
	return d.run(ctx, path, "clean", "-fd")
}

// Reset runs `git reset <mode> <ref>`.
func (d *Driver) Reset(ctx context.Context, path string, mode string, ref string) error {
	return d.run(ctx, path, "reset", mode, ref)
}

// Checkout runs git with the given argv appended after "checkout".
func (d *Driver) Checkout(ctx context.Context, path string, argv []string) error {
	args := append([]string{"checkout"}, argv...)
	return d.run(ctx, path, args...)
}

// Stash stages untracked files then stashes everything including them,
// returning the message git printed (containing "WIP" iff something was
// actually stashed).
func (d *Driver) Stash(ctx context.Context, path string) (string, error) {
	untracked, err := d.exec.RunLines(ctx, path, "ls-files", "-o", "--exclude-standard")
	if err != nil {
		return "", fmt.Errorf("list untracked files: %w", err)
	}
	if len(untracked) > 0 {
		args := append([]string{"add"}, untracked...)
		if err := d.run(ctx, path, args...); err != nil {
			return "", fmt.Errorf("stage untracked files: %w", err)
		}
	}
	res, err := d.exec.Run(ctx, path, "stash", "-u")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &gitcmd.GitError{Command: "git stash -u", ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return strings.TrimSpace(res.Stdout), nil
}

// StashPop applies and drops the most recent stash.
func (d *Driver) StashPop(ctx context.Context, path string) error {
	return d.run(ctx, path, "stash", "pop")
}

// LocalBranchAlreadyExists reports whether branch exists locally.
func (d *Driver) LocalBranchAlreadyExists(ctx context.Context, path, branch string) bool {
	ok, err := d.exec.RunQuiet(ctx, path, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil && ok
}

// SetTrackingRemoteBranch sets the upstream of the current branch. Failures
// here are advisory: the caller reports the message, not the error.
func (d *Driver) SetTrackingRemoteBranch(ctx context.Context, path, branch, remoteRefStr string) string {
	res, err := d.exec.Run(ctx, path, "branch", "--set-upstream-to="+remoteRefStr, branch)
	if err != nil || res.ExitCode != 0 {
		if res != nil {
			return strings.TrimSpace(res.Stderr)
		}
		return err.Error()
	}
	return strings.TrimSpace(res.Stdout)
}

// Fetch runs `git fetch <remote>` or `--all`, optionally with a depth hint.
func (d *Driver) Fetch(ctx context.Context, path, remoteName string, all bool, depth int) error {
	args := []string{"fetch"}
	if all {
		args = append(args, "--all")
	} else {
		args = append(args, remoteName)
	}
	if depth > 0 {
		args = append(args, "--depth", strconv.Itoa(depth))
	}
	return d.run(ctx, path, args...)
}

// NewRemoteBranch creates branch newBranch on the remote from base, by
// pushing the local tracking ref for base to the new ref.
func (d *Driver) NewRemoteBranch(ctx context.Context, path, base, newBranch string) error {
	refspec := fmt.Sprintf("origin/%s:refs/heads/%s", base, newBranch)
	return d.run(ctx, path, "push", "origin", refspec, "--force")
}

// DelRemoteBranch deletes branch on origin.
func (d *Driver) DelRemoteBranch(ctx context.Context, path, branch string) error {
	return d.run(ctx, path, "push", "origin", "--delete", branch)
}

// NewLocalTag creates a lightweight tag at HEAD.
func (d *Driver) NewLocalTag(ctx context.Context, path, name string) error {
	return d.run(ctx, path, "tag", name)
}

// PushTag pushes a single tag to origin.
func (d *Driver) PushTag(ctx context.Context, path, name string) error {
	return d.run(ctx, path, "push", "origin", name)
}

// SparseCheckoutSet restricts the working tree to dirs in non-cone mode.
func (d *Driver) SparseCheckoutSet(ctx context.Context, path string, dirs []string) error {
	args := append([]string{"sparse-checkout", "set", "--no-cone"}, dirs...)
	return d.run(ctx, path, args...)
}

// SparseCheckoutDisable restores the full working tree.
func (d *Driver) SparseCheckoutDisable(ctx context.Context, path string) error {
	return d.run(ctx, path, "sparse-checkout", "disable")
}

// SparseCheckoutList returns the currently configured sparse patterns.
func (d *Driver) SparseCheckoutList(ctx context.Context, path string) ([]string, error) {
	return d.exec.RunLines(ctx, path, "sparse-checkout", "list")
}

// LsFiles returns `git ls-files -s` output verbatim (tab-separated rows).
func (d *Driver) LsFiles(ctx context.Context, path string) (string, error) {
	return d.exec.RunOutput(ctx, path, "ls-files", "-s")
}

// LogCurrent returns the current branch's log with a fixed format string.
func (d *Driver) LogCurrent(ctx context.Context, path string, n int) (string, error) {
	return d.exec.RunOutput(ctx, path, "log", fmt.Sprintf("-%d", n), "--pretty=format:%h %ad %s", "--date=short")
}

func (d *Driver) run(ctx context.Context, path string, args ...string) error {
	res, err := d.exec.Run(ctx, path, args...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &gitcmd.GitError{
			Command:  "git " + strings.Join(args, " "),
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
	}
	return nil
}
