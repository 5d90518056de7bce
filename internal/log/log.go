// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package log provides the leveled logger the CLI writes diagnostics
// through, so it does not have to know whether output is colored. The
// engine packages (syncengine, gitops, compare) take no Logger and do not log.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Level orders verbosity from quietest to loudest.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// Logger is the interface the CLI depends on, so a test sink can
// substitute for the colored terminal logger without a package cycle.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Standard is the default terminal-backed Logger.
type Standard struct {
	Out      io.Writer
	Level    Level
	NoColor  bool
}

// New creates a Standard logger writing to os.Stderr at level.
func New(level Level, noColor bool) *Standard {
	return &Standard{Out: os.Stderr, Level: level, NoColor: noColor}
}

func (s *Standard) Debugf(format string, args ...any) { s.emit(LevelDebug, "debug", color.FgMagenta, format, args...) }
func (s *Standard) Infof(format string, args ...any)  { s.emit(LevelInfo, "info", color.FgCyan, format, args...) }
func (s *Standard) Warnf(format string, args ...any)  { s.emit(LevelWarn, "warn", color.FgYellow, format, args...) }
func (s *Standard) Errorf(format string, args ...any) { s.emit(LevelError, "error", color.FgRed, format, args...) }

func (s *Standard) emit(level Level, tag string, attr color.Attribute, format string, args ...any) {
	if level > s.Level {
		return
	}
	prefix := "[" + tag + "] "
	if !s.NoColor {
		prefix = color.New(attr).Sprint("[" + tag + "] ")
	}
	fmt.Fprintf(s.Out, prefix+format+"\n", args...)
}

var _ Logger = (*Standard)(nil)

// Nop discards everything. Used by library callers and tests that don't
// care about diagnostics.
type Nop struct{}

func (Nop) Debugf(string, ...any) {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}

var _ Logger = Nop{}
