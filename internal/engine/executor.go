// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
	"github.com/matt-FFFFFF/drydock/internal/target"
)

// Execute runs one command to completion on exactly one target.
//
// In verbose mode the child's output streams live; otherwise combined
// output is captured and only emitted alongside a failure report. When
// capture is true the captured output is also returned to the caller on
// success, regardless of mode: verbose with capture tees the stream, so
// the caller still gets the buffer. In test mode nothing is spawned and
// the rendered command line is returned instead.
//
// A non-zero exit never passes silently: the captured output is written
// out first, then a *CommandError carrying the target, rendered command
// and verbatim status is returned.
func (e *Engine) Execute(ctx context.Context, tgt target.Target, command string, capture bool) (string, error) {
	argv := tgt.Argv(command, e.argvOptions())
	rendered := renderCommand(argv)
	logger := ctxlog.Logger(ctx).With("target", tgt.String())

	if e.mode == ModeTest {
		logger.Debug("test mode, not executing", "command", rendered)
		return rendered, nil
	}

	e.log.Append(ctx, "run "+rendered)
	logger.Debug("executing", "command", rendered)

	verbose := e.mode == ModeVerbose

	ps, rOut, err := e.spawn(ctx, argv, capture || !verbose)
	if err != nil {
		return "", fmt.Errorf("on %s: %w", tgt, err)
	}

	e.reg.Add(ps)

	var tee io.Writer
	if verbose && capture {
		tee = os.Stdout
	}

	// The drain must run alongside the wait or a chatty child fills the
	// kernel pipe buffer and both sides block forever.
	outCh := drainPipe(rOut, tee)

	done := make(chan struct{})

	go watchCancel(ctx, ps, done)

	state, psErr := ps.Wait()

	close(done)
	e.reg.Remove(ps.Pid)

	out := <-outCh
	if out.err != nil {
		logger.Warn("captured output truncated", "error", out.err)
	}

	if psErr != nil {
		return "", fmt.Errorf("wait failed on %s: %w", tgt, psErr)
	}

	if status := state.ExitCode(); status != 0 {
		// In verbose mode the output has already streamed.
		if !verbose && len(out.data) > 0 {
			_, _ = os.Stdout.Write(out.data)
		}

		return "", &CommandError{Target: tgt, Command: rendered, Status: status}
	}

	logger.Debug("command succeeded")

	if capture {
		return string(out.data), nil
	}

	return "", nil
}

// ExecuteOn resolves targets down to exactly one target and executes on
// it. More than one host where one is required is a caller contract
// violation and fails fast with target.ErrSingleTarget before any
// connection is attempted.
func (e *Engine) ExecuteOn(ctx context.Context, targets target.List, command string, capture bool) (string, error) {
	tgt, err := targets.Single()
	if err != nil {
		return "", err
	}

	return e.Execute(ctx, tgt, command, capture)
}
