// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
)

// exitFn is swapped out in tests.
var exitFn = os.Exit

// Watch monitors the signal channel and runs the teardown routine on the
// first termination signal received, then exits the process with status 0.
// It returns without exiting if the channel is closed first.
func Watch(ctx context.Context, sigCh chan os.Signal, teardown func(os.Signal)) {
	sig, ok := <-sigCh
	if !ok {
		return
	}

	ctxlog.Logger(ctx).Info("watch", "detail", "received termination signal, stopping all jobs", "signal", sig.String())

	if teardown != nil {
		teardown(sig)
	}

	exitFn(0)
}
