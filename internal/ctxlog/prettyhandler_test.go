// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandlerWritesMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewPretty(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(buf))
	logger := slog.New(h)

	logger.Info("deploy started", "hosts", 3)

	out := buf.String()
	assert.Contains(t, out, "deploy started")
	assert.Contains(t, out, "hosts")
}

func TestPrettyHandlerRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewPretty(&slog.HandlerOptions{Level: slog.LevelError}, WithDestinationWriter(buf))

	require.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, h.Enabled(context.Background(), slog.LevelError))

	logger := slog.New(h)
	logger.Info("suppressed")
	assert.Empty(t, buf.String())
}

func TestPrettyHandlerWithAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewPretty(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(buf))
	logger := slog.New(h).With("strategy", "rolling")

	logger.Warn("slow host")

	out := buf.String()
	assert.Contains(t, out, "slow host")
	assert.Contains(t, out, "rolling")
}
