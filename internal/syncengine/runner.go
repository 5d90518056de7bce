// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package syncengine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/archmagece/mgit/internal/compare"
	"github.com/archmagece/mgit/internal/gitops"
	"github.com/archmagece/mgit/internal/manifest"
)

// defaultThreads matches the documented default worker count (§5).
const defaultThreads = 4

// RunRequest bundles everything one invocation of the runner needs.
type RunRequest struct {
	Root     string
	Manifest *manifest.Manifest
	Options  Options
	Sink     ProgressSink
	Driver   *gitops.Driver
}

// Run fans RunUnit out across every repo in the manifest, bounded by
// Options.Threads (default 4), and returns the aggregated report. A panic
// inside one worker is converted into a Failure outcome for that repo
// rather than propagating to its siblings.
func Run(ctx context.Context, req RunRequest) RunReport {
	sink := req.Sink
	if sink == nil {
		sink = SilentSink{}
	}
	entries := manifest.ExcludeIgnore(req.Manifest.Repos, req.Options.Ignore)

	threads := req.Options.Threads
	if threads <= 0 {
		threads = defaultThreads
	}

	sink.StartTotal(len(entries))
	defer sink.FinishTotal()

	var (
		mu       sync.Mutex
		outcomes []RepoOutcome
		index    int32
		position int32
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			idx := int(atomic.AddInt32(&index, 1))
			outcome := runOneUnit(gctx, req.Root, entry, req.Options, req.Driver, sink, idx, len(entries))

			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()

			pos := atomic.AddInt32(&position, 1)
			sink.OnEvent(ProgressEvent{Kind: EventTotal, Position: int(pos), Total: len(entries)})
			return nil
		})
	}
	_ = g.Wait()

	report := RunReport{}
	for _, o := range outcomes {
		if o.OK {
			report.Successes = append(report.Successes, o)
		} else {
			report.Failures = append(report.Failures, o)
		}
	}
	return report
}

// runOneUnit runs one repository's state machine with before/after
// comparator capture and panic isolation (§4.E steps 2-5).
func runOneUnit(ctx context.Context, root string, entry manifest.RepoEntry, opts Options, d *gitops.Driver, sink ProgressSink, idx, total int) (outcome RepoOutcome) {
	outcome.Entry = entry

	defer func() {
		if r := recover(); r != nil {
			outcome.OK = false
			outcome.Err = fmt.Errorf("panic in worker for %s: %v", entry.Local, r)
			sink.OnEvent(ProgressEvent{Kind: EventFinish, Index: idx, Total: total, OK: false, Message: outcome.Err.Error()})
		}
	}()

	sink.OnEvent(ProgressEvent{Kind: EventStart, Index: idx, Total: total, Label: entry.Local})

	var before string
	if !opts.Silent {
		before, _ = compare.Summary(ctx, root, entry, opts.DefaultBranch, false, d)
	}

	trackMessage, err := RunUnit(ctx, root, entry, opts, d)
	if err != nil {
		outcome.OK = false
		outcome.Err = err
		sink.OnEvent(ProgressEvent{Kind: EventFinish, Index: idx, Total: total, OK: false, Message: err.Error()})
		return outcome
	}

	var after string
	if !opts.Silent {
		after, _ = compare.Summary(ctx, root, entry, opts.DefaultBranch, false, d)
		if before != after && strings.Contains(after, compare.AlreadyUpToDate) {
			after = strings.Replace(after, compare.AlreadyUpToDate, "update to "+entry.Local, 1)
		}
	}

	outcome.OK = true
	outcome.TrackMessage = trackMessage
	sink.OnEvent(ProgressEvent{Kind: EventFinish, Index: idx, Total: total, OK: true, Message: after})
	return outcome
}
