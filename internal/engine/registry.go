// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"os"
	"sync"

	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
)

// Registry is the shared set of in-flight process identities. The batch
// launcher adds entries, the monitor removes them on completion, and the
// signal handler and parent watchdog read it to address every live job at
// once. All methods are safe for concurrent use; the mutex discipline
// guarantees a signal handler never observes a half-updated set.
type Registry struct {
	mu    sync.Mutex
	procs map[int]*os.Process
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{procs: make(map[int]*os.Process)}
}

// Add registers a started process.
func (r *Registry) Add(ps *os.Process) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.procs[ps.Pid] = ps
}

// Remove deregisters a completed process.
func (r *Registry) Remove(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.procs, pid)
}

// Len returns the number of registered processes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.procs)
}

// Snapshot returns the currently registered processes.
func (r *Registry) Snapshot() []*os.Process {
	r.mu.Lock()
	defer r.mu.Unlock()

	procs := make([]*os.Process, 0, len(r.procs))
	for _, ps := range r.procs {
		procs = append(procs, ps)
	}

	return procs
}

// SignalAll delivers sig to every registered process. Processes that have
// already exited are tolerated; nothing is removed from the registry, the
// waiters still reap their own entries.
func (r *Registry) SignalAll(ctx context.Context, sig os.Signal) {
	for _, ps := range r.Snapshot() {
		if err := ps.Signal(sig); err != nil {
			ctxlog.Debug(ctx, "signal delivery failed", "pid", ps.Pid, "signal", sig.String(), "error", err)
			continue
		}

		ctxlog.Info(ctx, "signalled process", "pid", ps.Pid, "signal", sig.String())
	}
}
