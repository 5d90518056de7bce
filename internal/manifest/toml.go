// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	headerLine1 = "# This file is automatically @generated by mgit."
	headerLine2 = "# Editing it as you wish."

	// DefaultFileName is the manifest file name consulted when --config is
	// not supplied.
	DefaultFileName = ".gitrepos"
)

// Locate resolves the effective manifest path for a workspace root and an
// optional --config override.
func Locate(root, configFlag string) string {
	if configFlag != "" {
		return configFlag
	}
	return filepath.Join(root, DefaultFileName)
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Save serializes m and writes it to path, creating parent directories as
// needed. The output is byte-for-byte deterministic given an unchanged
// manifest value.
func Save(path string, m *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	return os.WriteFile(path, []byte(Encode(m)), 0o644)
}

// Encode renders m in the fixed textual form described by the manifest
// format: a generated-file preamble, top-level keys in a fixed order, then
// one [[repos]] block per entry with fields in local/remote/branch/tag/commit
// order, omitting absent optional fields.
func Encode(m *Manifest) string {
	var b strings.Builder
	b.WriteString(headerLine1)
	b.WriteByte('\n')
	b.WriteString(headerLine2)
	b.WriteByte('\n')

	wroteTop := false
	if m.Version != "" {
		fmt.Fprintf(&b, "version = %s\n", quote(m.Version))
		wroteTop = true
	}
	if m.DefaultBranch != "" {
		fmt.Fprintf(&b, "default-branch = %s\n", quote(m.DefaultBranch))
		wroteTop = true
	}
	if m.DefaultRemote != "" {
		fmt.Fprintf(&b, "default-remote = %s\n", quote(m.DefaultRemote))
		wroteTop = true
	}
	_ = wroteTop
	b.WriteByte('\n')

	for _, r := range m.Repos {
		b.WriteString("[[repos]]\n")
		fmt.Fprintf(&b, "local = %s\n", quote(r.Local))
		fmt.Fprintf(&b, "remote = %s\n", quote(r.Remote))
		if r.Branch != "" {
			fmt.Fprintf(&b, "branch = %s\n", quote(r.Branch))
		}
		if r.Tag != "" {
			fmt.Fprintf(&b, "tag = %s\n", quote(r.Tag))
		}
		if r.Commit != "" {
			fmt.Fprintf(&b, "commit = %s\n", quote(r.Commit))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// quote renders a TOML basic string. strconv.Quote's escaping is a superset
// of what basic TOML strings need for the plain paths/URLs/SHAs this format
// carries, so it is reused rather than hand-rolled.
func quote(s string) string {
	return strconv.Quote(s)
}

// SortEntries orders entries lexicographically by Local path, with "."
// sorting first, matching the deterministic traversal order snapshot/init
// require.
func SortEntries(entries []RepoEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Local, entries[j].Local
		if a == "." {
			return b != "."
		}
		if b == "." {
			return false
		}
		return a < b
	})
}
