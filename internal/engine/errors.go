// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/drydock/internal/target"
)

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrFailedToReadBuffer is returned when the buffer from the operating system pipe could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrBufferOverflow is returned when the output exceeds the max size.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", maxBufferSize)
	// ErrUnknownMode is returned when an execution mode string cannot be parsed.
	ErrUnknownMode = errors.New("unknown execution mode")
)

// CommandError is the diagnostic surfaced when a job exits non-zero.
// The exit status is reported verbatim, never reinterpreted. A connection
// failure surfaces through the same path: the transport's own non-zero
// exit is the signal.
type CommandError struct {
	Target  target.Target
	Command string
	Status  int
}

// Error implements the error interface for CommandError.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed on %s: %q exited with status %d", e.Target, e.Command, e.Status)
}
