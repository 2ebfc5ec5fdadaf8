// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the entry point for the drydock command-line application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/drydock"
	"github.com/matt-FFFFFF/drydock/cmd"
	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	cmd.RootCmd.Version = fmt.Sprintf("%s (commit: %s)", drydock.Version, drydock.Commit)

	// Signal handling is owned by the deploy command, which knows about
	// the jobs that must be torn down before exiting.
	err := cmd.RootCmd.Run(ctx, os.Args)
	if err != nil {
		ctxlog.Logger(ctx).Error("command failed", "error", err)
		os.Exit(1)
	}

	os.Exit(0)
}
