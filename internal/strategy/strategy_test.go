// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package strategy

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/drydock/internal/config"
	"github.com/matt-FFFFFF/drydock/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return config.Merge(config.Default(), &config.Config{
		Hosts: "h1,h2",
		User:  "deploy",
		Commands: map[string]string{
			"deploy":  "cd /srv/app && git pull",
			"restart": "systemctl restart app",
			"build":   "make all",
		},
		Container: "build-env",
	})
}

func TestGetUnknownStrategy(t *testing.T) {
	_, err := Get("does-not-exist")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestBuiltinsRegistered(t *testing.T) {
	names := Names()

	for _, want := range []string{"build", "deploy", "exec", "restart", "rolling"} {
		assert.Contains(t, names, want)
	}

	assert.IsIncreasing(t, names, "names must be sorted")
}

func TestDeployStrategyDryRun(t *testing.T) {
	e := engine.New(engine.ModeTest, 0, nil)

	s, err := Get("deploy")
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background(), e, testConfig()))
}

func TestRollingStrategyDryRun(t *testing.T) {
	e := engine.New(engine.ModeTest, 0, nil)

	s, err := Get("rolling")
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background(), e, testConfig()))
}

func TestDeployRequiresCommandTemplate(t *testing.T) {
	e := engine.New(engine.ModeTest, 0, nil)
	cfg := config.Merge(config.Default(), &config.Config{Hosts: "h1"})

	s, err := Get("deploy")
	require.NoError(t, err)

	err = s.Run(context.Background(), e, cfg)
	require.ErrorIs(t, err, ErrMissingCommand)
}

func TestExecRequiresCommandLine(t *testing.T) {
	e := engine.New(engine.ModeTest, 0, nil)

	s, err := Get("exec")
	require.NoError(t, err)

	err = s.Run(context.Background(), e, testConfig())
	require.ErrorIs(t, err, ErrMissingCommand)

	cfg := testConfig()
	cfg.Command = "uptime"
	require.NoError(t, s.Run(context.Background(), e, cfg))
}

func TestBuildRequiresContainer(t *testing.T) {
	e := engine.New(engine.ModeTest, 0, nil)

	cfg := testConfig()
	cfg.Container = ""

	s, err := Get("build")
	require.NoError(t, err)

	err = s.Run(context.Background(), e, cfg)
	require.ErrorIs(t, err, ErrNoContainer)
}
