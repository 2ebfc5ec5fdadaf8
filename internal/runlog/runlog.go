// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runlog appends timestamped lines to the deployment log file.
// The sink is a stateless collaborator of the job engine: it must never
// abort the engine, so write failures are swallowed after a debug log.
package runlog

import (
	"context"
	"os"
	"time"

	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
	"github.com/spf13/afero"
)

// TimeFormat is the timestamp prefix for each log line.
const TimeFormat = "2006-01-02 15:04:05"

const appendFlags = os.O_APPEND | os.O_CREATE | os.O_WRONLY

// FsFactory returns the filesystem the sink writes to. Tests replace it
// with an in-memory implementation.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// nowFn is swapped out in tests.
var nowFn = time.Now

// Sink appends one line per message to a configured log file path.
// The zero value and the nil sink are no-ops.
type Sink struct {
	path string
	fs   afero.Fs
}

// New creates a sink for the given path. An empty path yields a no-op sink.
func New(path string) *Sink {
	if path == "" {
		return nil
	}

	return &Sink{path: path, fs: FsFactory()}
}

// Append writes "<timestamp>  <msg>\n" to the log file, creating it if
// needed. Errors are logged at debug level and not propagated.
func (s *Sink) Append(ctx context.Context, msg string) {
	if s == nil || s.path == "" {
		return
	}

	f, err := s.fs.OpenFile(s.path, appendFlags, 0o644)
	if err != nil {
		ctxlog.Debug(ctx, "runlog open failed", "path", s.path, "error", err)
		return
	}

	defer f.Close() //nolint:errcheck

	line := nowFn().Format(TimeFormat) + "  " + msg + "\n"
	if _, err := f.WriteString(line); err != nil {
		ctxlog.Debug(ctx, "runlog write failed", "path", s.path, "error", err)
	}
}
