// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
	"github.com/matt-FFFFFF/drydock/internal/runlog"
	"github.com/matt-FFFFFF/drydock/internal/target"
)

const maxBufferSize = 8 * 1024 * 1024 // 8MB

// Mode is the execution mode, resolved once per engine invocation and
// threaded through every executor call.
type Mode int

const (
	// ModeCompact suppresses child output unless a job fails.
	ModeCompact Mode = iota
	// ModeVerbose streams child output live to the engine's own streams.
	ModeVerbose
	// ModeTest renders and records commands without spawning anything.
	ModeTest
)

// ParseMode parses a mode string from config or flags.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "compact":
		return ModeCompact, nil
	case "verbose":
		return ModeVerbose, nil
	case "test":
		return ModeTest, nil
	default:
		return ModeCompact, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Engine runs deployment commands against targets. One Engine is built
// per invocation; its mode and timeouts do not change per host.
type Engine struct {
	mode                  Mode
	connectTimeoutSeconds int
	log                   *runlog.Sink
	reg                   *Registry
}

// New creates an engine. log may be nil.
func New(mode Mode, connectTimeoutSeconds int, log *runlog.Sink) *Engine {
	return &Engine{
		mode:                  mode,
		connectTimeoutSeconds: connectTimeoutSeconds,
		log:                   log,
		reg:                   NewRegistry(),
	}
}

// Mode returns the engine's execution mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Registry returns the shared process registry, for the signal and
// watchdog layers.
func (e *Engine) Registry() *Registry {
	return e.reg
}

func (e *Engine) argvOptions() target.ArgvOptions {
	return target.ArgvOptions{
		ConnectTimeoutSeconds: e.connectTimeoutSeconds,
		Verbose:               e.mode == ModeVerbose,
	}
}

// Teardown signals every registered process and logs the stop. Both the
// interrupt handler and the parent watchdog converge here.
func (e *Engine) Teardown(ctx context.Context, sig os.Signal) {
	e.reg.SignalAll(ctx, sig)
	e.log.Append(ctx, "deployment stopped")
}

// spawn starts the argv-rendered process for a target. With pipe set,
// stdout and stderr are combined into a single pipe and the read end is
// returned; otherwise the child inherits the engine's streams and the
// read end is nil.
func (e *Engine) spawn(ctx context.Context, argv []string, pipe bool) (*os.Process, *os.File, error) {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}

	var rOut *os.File

	if pipe {
		r, w, err := os.Pipe()
		if err != nil {
			return nil, nil, errors.Join(ErrFailedToCreatePipe, err)
		}

		rOut = r
		files = []*os.File{os.Stdin, w, w}
	}

	ps, err := os.StartProcess(path, argv, &os.ProcAttr{Files: files})

	// The parent's copy of the write end must be closed regardless of
	// outcome, or reads from the pipe never see EOF.
	if pipe {
		_ = files[1].Close()
	}

	if err != nil {
		if rOut != nil {
			_ = rOut.Close()
		}

		return nil, nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	ctxlog.Debug(ctx, "process started", "pid", ps.Pid, "path", path)

	return ps, rOut, nil
}

// watchCancel kills ps if ctx is cancelled before done is closed.
// Killing a waited-on process resolves the in-flight wait with a
// terminated status rather than hanging.
func watchCancel(ctx context.Context, ps *os.Process, done <-chan struct{}) {
	select {
	case <-ctx.Done():
		killPs(ctx, ps)
	case <-done:
	}
}

// killPs kills the process, tolerating one that has already exited.
func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}

// captured is the result of draining one capture pipe.
type captured struct {
	data []byte
	err  error
}

// drainPipe consumes rOut concurrently with the child's wait. A child
// that writes more than the kernel pipe buffer would otherwise block on
// write while the engine blocks in Wait. The capped buffer is delivered
// on the returned channel once the pipe hits EOF; output past the cap is
// discarded but still consumed so the child can always run to exit.
// When tee is non-nil everything read is also copied to it as it arrives.
// A nil rOut yields an immediate empty result.
func drainPipe(rOut *os.File, tee io.Writer) <-chan captured {
	ch := make(chan captured, 1)

	if rOut == nil {
		ch <- captured{}
		return ch
	}

	go func() {
		var r io.Reader = rOut
		if tee != nil {
			r = io.TeeReader(rOut, tee)
		}

		data, err := readAllUpToMax(r, maxBufferSize)

		_, _ = io.Copy(io.Discard, r)
		_ = rOut.Close()

		ch <- captured{data: data, err: err}
	}()

	return ch
}

func readAllUpToMax(r io.Reader, maxBufferSize int64) ([]byte, error) {
	var buf bytes.Buffer

	n, err := io.CopyN(&buf, r, maxBufferSize+1)
	if err != nil && err != io.EOF {
		return nil, errors.Join(ErrFailedToReadBuffer, err)
	}

	if n > maxBufferSize {
		return buf.Bytes()[:maxBufferSize], ErrBufferOverflow
	}

	return buf.Bytes(), nil
}

// renderCommand is the command line used for diagnostics and launch logs.
func renderCommand(argv []string) string {
	return strings.Join(argv, " ")
}
