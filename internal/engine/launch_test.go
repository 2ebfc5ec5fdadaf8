// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/drydock/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLaunchAllBatchSizeMatchesHostSet(t *testing.T) {
	// Test mode keeps this purely about correlation: nothing is spawned.
	e := New(ModeTest, 10, nil)

	for _, n := range []int{0, 1, 5, 100} {
		hosts := make([]string, 0, n)
		for i := range n {
			hosts = append(hosts, fmt.Sprintf("host-%d", i))
		}

		list := target.FromHosts(strings.Join(hosts, ","), "deploy")
		batch, err := e.LaunchAll(context.Background(), list, "systemctl restart app")

		require.NoError(t, err)
		require.Equal(t, n, batch.Len(), "n=%d", n)

		for i, job := range batch.Jobs {
			assert.Equal(t, fmt.Sprintf("host-%d", i), job.Target.Addr, "index correlation broken at %d", i)
			assert.Contains(t, job.Command, fmt.Sprintf("deploy@host-%d", i))
		}
	}
}

func TestLaunchAllKeepsDuplicateHostsCorrelated(t *testing.T) {
	e := New(ModeTest, 0, nil)

	list := target.FromHosts("h1,h1,h2", "")
	batch, err := e.LaunchAll(context.Background(), list, "uptime")

	require.NoError(t, err)
	require.Equal(t, 3, batch.Len(), "duplicates are not deduplicated")
	assert.Equal(t, "h1", batch.Jobs[0].Target.Addr)
	assert.Equal(t, "h1", batch.Jobs[1].Target.Addr)
	assert.Equal(t, "h2", batch.Jobs[2].Target.Addr)
}

func TestLaunchAllEmptyHostSetYieldsZeroWork(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := New(ModeCompact, 0, nil)

	batch, err := e.LaunchAll(context.Background(), nil, "uptime")
	require.NoError(t, err)
	assert.Equal(t, 0, batch.Len())

	require.NoError(t, e.AwaitAll(context.Background(), batch))
}

func TestLaunchAllRegistersPids(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := New(ModeCompact, 0, nil)

	list := target.List{target.Local(), target.Local(), target.Local()}
	batch, err := e.LaunchAll(context.Background(), list, "sleep 0.2")

	require.NoError(t, err)
	assert.Equal(t, 3, e.Registry().Len(), "all jobs launch before any wait")

	require.NoError(t, e.AwaitAll(context.Background(), batch))
	assert.Equal(t, 0, e.Registry().Len(), "registry cleared on full success")
}

func TestRunAllSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := New(ModeCompact, 0, nil)

	list := target.List{target.Local(), target.Local()}
	require.NoError(t, e.Run(context.Background(), list, "true"))
}
