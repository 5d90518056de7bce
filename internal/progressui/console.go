// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package progressui implements the terminal-facing ProgressSink
// implementations: a plain line-oriented console sink for piped output and
// CI logs, and a bubbletea-driven multi-bar renderer for interactive
// terminals.
package progressui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/archmagece/mgit/internal/syncengine"
)

// ConsoleSink renders lifecycle events as plain lines to w: one line per
// start or tick, one or two per finish, none for total. It is safe for
// concurrent use; every write is serialized behind a mutex so interleaved
// worker output never tears a line in half.
type ConsoleSink struct {
	w         io.Writer
	noColor   bool
	mu        sync.Mutex
	total     int
	startedAt time.Time
}

// NewConsoleSink creates a sink writing to w. When noColor is true, ANSI
// color codes are suppressed regardless of the terminal's capabilities.
func NewConsoleSink(w io.Writer, noColor bool) *ConsoleSink {
	return &ConsoleSink{w: w, noColor: noColor}
}

func (s *ConsoleSink) StartTotal(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = n
	s.startedAt = time.Now()
	fmt.Fprintf(s.w, "syncing %d repositories...\n", n)
}

func (s *ConsoleSink) OnEvent(ev syncengine.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Kind {
	case syncengine.EventStart:
		fmt.Fprintf(s.w, "[%d/%d] %s: starting\n", ev.Index, ev.Total, ev.Label)
	case syncengine.EventTick:
		fmt.Fprintf(s.w, "[%d/%d] %s\n", ev.Index, ev.Total, ev.Message)
	case syncengine.EventFinish:
		mark := s.colorize(ev.OK, "ok")
		if !ev.OK {
			mark = s.colorize(ev.OK, "failed")
		}
		fmt.Fprintf(s.w, "[%d/%d] %s\n", ev.Index, ev.Total, mark)
		if ev.Message != "" {
			fmt.Fprintf(s.w, "      %s\n", ev.Message)
		}
	case syncengine.EventTotal:
		// aggregate position is implied by the finish lines above; the
		// console sink does not redraw a bar in place.
	}
}

func (s *ConsoleSink) FinishTotal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "done, started %s\n", humanize.Time(s.startedAt))
}

func (s *ConsoleSink) colorize(ok bool, text string) string {
	if s.noColor {
		return text
	}
	if ok {
		return color.GreenString(text)
	}
	return color.RedString(text)
}

var _ syncengine.ProgressSink = (*ConsoleSink)(nil)
