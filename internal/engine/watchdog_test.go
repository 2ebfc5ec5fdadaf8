// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchParentKillsTreeWhenParentVanishes(t *testing.T) {
	killed := make(chan struct{})
	stub := gostub.Stub(&selfKill, func() { close(killed) })
	defer stub.Reset()

	// A process that exits immediately stands in for a vanished parent.
	cmd := exec.Command("true")
	require.NoError(t, cmd.Start())

	ppid := cmd.Process.Pid
	require.NoError(t, cmd.Wait())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go WatchParent(ctx, ppid)

	select {
	case <-killed:
	case <-time.After(4 * ParentPollInterval):
		require.Fail(t, "watchdog did not fire within the polling interval")
	}
}

func TestWatchParentExitsOnContextCancel(t *testing.T) {
	stub := gostub.Stub(&selfKill, func() { t.Error("selfKill must not run while parent is alive") })
	defer stub.Reset()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})

	go func() {
		// Our own test process is the tracked parent here, so it stays
		// alive for the duration.
		WatchParent(ctx, 1)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		assert.Fail(t, "watchdog did not stop on context cancellation")
	}
}
