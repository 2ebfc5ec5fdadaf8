// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"os"

	"github.com/matt-FFFFFF/drydock/internal/target"
)

// Job is one in-flight or completed unit of work within a batch.
// Created at launch time; only the monitor attaches the exit status.
type Job struct {
	// Target is the destination the job runs on.
	Target target.Target
	// Command is the rendered command line, used only for diagnostics.
	Command string

	ps *os.Process
	// drain yields the capped combined output once the capture pipe hits
	// EOF. Started at launch so a chatty child never blocks on a full
	// pipe while the monitor is waiting on an earlier index. Yields an
	// immediate empty result in verbose and test modes.
	drain <-chan captured
}

// Pid returns the job's process id, or 0 when nothing was spawned.
func (j *Job) Pid() int {
	if j.ps == nil {
		return 0
	}

	return j.ps.Pid
}

// Batch is an ordered sequence of jobs sharing one launch call.
// Index i always refers to the i-th entry of the launching target list,
// even when host addresses repeat.
type Batch struct {
	Jobs []*Job
}

// Len returns the number of jobs in the batch.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}

	return len(b.Jobs)
}
