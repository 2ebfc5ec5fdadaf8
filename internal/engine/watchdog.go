// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"os"
	"time"

	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
	"github.com/shirou/gopsutil/v4/process"
)

// ParentPollInterval is how often the watchdog checks the tracked parent.
const ParentPollInterval = 500 * time.Millisecond

// selfKill is swapped out in tests.
var selfKill = func() {
	ps, err := os.FindProcess(os.Getpid())
	if err != nil {
		return
	}

	_ = ps.Kill()
}

// WatchParent polls whether the tracked parent process is still alive and,
// when it has vanished, force-kills every descendant of this process and
// then the process itself. The engine may be invoked as a subprocess of a
// supervisor that cannot reliably forward interrupts; losing the parent
// must not leave orphaned remote sessions running indefinitely.
//
// There is no one left to read a diagnostic, so none is produced beyond
// the kill actions. The loop exits when ctx is cancelled.
func WatchParent(ctx context.Context, ppid int) {
	ticker := time.NewTicker(ParentPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			alive, err := process.PidExistsWithContext(ctx, int32(ppid))
			if err == nil && alive {
				continue
			}

			ctxlog.Info(ctx, "parent vanished, killing job tree", "ppid", ppid)
			killDescendants(ctx)
			selfKill()

			return
		}
	}
}

// killDescendants walks the process table by parent-pid linkage and
// force-kills every descendant of this process, leaves first.
func killDescendants(ctx context.Context) {
	self, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return
	}

	killChildrenOf(ctx, self)
}

func killChildrenOf(ctx context.Context, p *process.Process) {
	children, err := p.ChildrenWithContext(ctx)
	if err != nil {
		return
	}

	for _, c := range children {
		killChildrenOf(ctx, c)

		if err := c.KillWithContext(ctx); err != nil {
			ctxlog.Debug(ctx, "descendant kill failed", "pid", c.Pid, "error", err)
		}
	}
}
