// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
)

// AwaitAll waits on every job in launch order, not completion order, and
// fails with the first non-zero status found while iterating. The failing
// job's captured output is written out before the *CommandError is
// returned.
//
// Jobs at indices after the failing one may still be running when the
// error is raised; they are neither waited on nor killed here. Only the
// signal teardown path or process exit reaps the stragglers. On full
// success every entry has been cleared from the shared registry.
func (e *Engine) AwaitAll(ctx context.Context, b *Batch) error {
	for _, job := range b.Jobs {
		if job.ps == nil {
			// Test mode: nothing was spawned.
			continue
		}

		done := make(chan struct{})

		go watchCancel(ctx, job.ps, done)

		state, psErr := job.ps.Wait()

		close(done)
		e.reg.Remove(job.ps.Pid)

		out := <-job.drain
		if out.err != nil {
			ctxlog.Warn(ctx, "captured output truncated", "target", job.Target.String(), "error", out.err)
		}

		if psErr != nil {
			return fmt.Errorf("wait failed on %s: %w", job.Target, psErr)
		}

		if status := state.ExitCode(); status != 0 {
			if len(out.data) > 0 {
				_, _ = os.Stdout.Write(out.data)
			}

			return &CommandError{Target: job.Target, Command: job.Command, Status: status}
		}

		ctxlog.Debug(ctx, "job completed", "target", job.Target.String())
	}

	return nil
}
