// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runlog

import (
	"context"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendWritesTimestampedLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	stub := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stub.Reset()

	fixed := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	stub.Stub(&nowFn, func() time.Time { return fixed })

	s := New("/var/log/deploy.log")
	s.Append(context.Background(), "deploy started")
	s.Append(context.Background(), "deploy finished")

	data, err := afero.ReadFile(fs, "/var/log/deploy.log")
	require.NoError(t, err)
	assert.Equal(t,
		"2025-06-01 12:30:00  deploy started\n2025-06-01 12:30:00  deploy finished\n",
		string(data))
}

func TestNilSinkIsNoOp(t *testing.T) {
	var s *Sink

	// Must not panic.
	s.Append(context.Background(), "ignored")

	assert.Nil(t, New(""))
}

func TestAppendSwallowsErrors(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	stub := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stub.Reset()

	s := New("/deploy.log")

	// Write fails on the read-only fs; the engine must not see it.
	s.Append(context.Background(), "dropped")
}
