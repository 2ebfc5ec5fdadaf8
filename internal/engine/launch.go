// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
	"github.com/matt-FFFFFF/drydock/internal/target"
)

// LaunchAll fans command out across every target as concurrent background
// processes. Launching is sequential so batch indices stay correlated with
// the target list; only the started processes run concurrently. All jobs
// are launched before any is waited on.
//
// Every started pid is added to the shared registry. An empty target list
// is valid and yields an empty batch.
func (e *Engine) LaunchAll(ctx context.Context, targets target.List, command string) (*Batch, error) {
	batch := &Batch{Jobs: make([]*Job, 0, len(targets))}

	for _, tgt := range targets {
		argv := tgt.Argv(command, e.argvOptions())
		rendered := renderCommand(argv)
		job := &Job{Target: tgt, Command: rendered}

		// Logged at launch time, before any output is known, so
		// operators can correlate concurrent streams.
		if e.mode == ModeVerbose {
			ctxlog.Info(ctx, "launching", "target", tgt.String(), "command", rendered)
		}

		e.log.Append(ctx, "launch "+rendered)

		if e.mode == ModeTest {
			batch.Jobs = append(batch.Jobs, job)
			continue
		}

		ps, rOut, err := e.spawn(ctx, argv, e.mode != ModeVerbose)
		if err != nil {
			// Already-launched siblings stay registered; only the
			// teardown path reaps them.
			return batch, fmt.Errorf("launch failed on %s: %w", tgt, err)
		}

		job.ps = ps
		job.drain = drainPipe(rOut, nil)

		e.reg.Add(ps)

		batch.Jobs = append(batch.Jobs, job)
	}

	return batch, nil
}

// Run is the batch primitive exposed to strategies: launch across all
// targets, then await completion.
func (e *Engine) Run(ctx context.Context, targets target.List, command string) error {
	batch, err := e.LaunchAll(ctx, targets, command)
	if err != nil {
		return err
	}

	return e.AwaitAll(ctx, batch)
}
