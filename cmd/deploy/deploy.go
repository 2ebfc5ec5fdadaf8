// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package deploy contains the deploy command, which resolves the project
// configuration, builds the job engine and runs the named strategy.
package deploy

import (
	"context"
	"errors"
	"os"
	"syscall"

	"github.com/matt-FFFFFF/drydock/internal/config"
	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
	"github.com/matt-FFFFFF/drydock/internal/engine"
	"github.com/matt-FFFFFF/drydock/internal/runlog"
	"github.com/matt-FFFFFF/drydock/internal/signalbroker"
	"github.com/matt-FFFFFF/drydock/internal/strategy"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	hostsFlag          = "hosts"
	userFlag           = "user"
	strategyFlag       = "strategy"
	configFlag         = "config"
	verboseFlag        = "verbose"
	testFlag           = "test"
	logFileFlag        = "log-file"
	containerFlag      = "container"
	connectTimeoutFlag = "connect-timeout"

	commandArg = "command"

	defaultConfigFile = "drydock.yaml"
)

// ErrDeployFailed wraps any strategy failure for the exit path.
var ErrDeployFailed = errors.New("deployment failed")

// DeployCmd runs a deployment strategy against the configured hosts.
var DeployCmd = &cli.Command{
	Name: "deploy",
	Description: `Run a named deployment strategy.

Configuration is resolved from three layers: built-in defaults, the project
file (drydock.yaml by default, or --config, which supports Hashicorp's
go-getter URL syntax), and these flags. Flags win.

The exec strategy runs the trailing command argument on every host:

    drydock deploy -s exec --hosts web-1,web-2 -- 'uname -a'`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name: commandArg,
		},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     hostsFlag,
			Aliases:  []string{"H"},
			Usage:    "Host list; comma or space separated.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     userFlag,
			Aliases:  []string{"u"},
			Usage:    "Remote user prefixed to every host address.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     strategyFlag,
			Aliases:  []string{"s"},
			Usage:    "Name of the deployment strategy to run.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:      configFlag,
			Aliases:   []string{"c"},
			Usage:     "Project file path or go-getter URL.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:        verboseFlag,
			Aliases:     []string{"v"},
			Usage:       "Stream command output live instead of capturing it.",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        testFlag,
			Aliases:     []string{"t"},
			Usage:       "Dry run: render commands without executing anything.",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:      logFileFlag,
			Usage:     "Append a timestamped deployment log to this file.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     containerFlag,
			Usage:    "Build container id for container strategies.",
			OnlyOnce: true,
		},
		&cli.IntFlag{
			Name:  connectTimeoutFlag,
			Usage: "Seconds to wait for an ssh connection to establish.",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	cfg, err := resolveConfig(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	mode, err := engine.ParseMode(cfg.Mode)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if cfg.StrategiesFile != "" {
		if err := strategy.LoadFile(cfg.StrategiesFile); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	strat, err := strategy.Get(cfg.Strategy)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	eng := engine.New(mode, cfg.ConnectTimeout(), runlog.New(cfg.LogFile))

	// An interrupt tears down every tracked job and exits 0: an
	// operator-requested stop is not a failure.
	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, func(os.Signal) {
		eng.Teardown(ctx, syscall.SIGTERM)
	})

	// If a supervising parent vanishes mid-run, the watchdog force-kills
	// the whole job tree rather than leaving remote sessions orphaned.
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	if ppid := os.Getppid(); ppid > 1 {
		go engine.WatchParent(watchCtx, ppid)
	}

	logger.Info("deployment starting", "strategy", strat.Name(), "hosts", cfg.Hosts, "mode", cfg.Mode)

	if err := strat.Run(ctx, eng, cfg); err != nil {
		logger.Error("deployment failed", "strategy", strat.Name(), "error", err)
		return cli.Exit(errors.Join(ErrDeployFailed, err).Error(), 1)
	}

	logger.Info("deployment complete", "strategy", strat.Name())

	return nil
}

// resolveConfig merges defaults, the project file and the flags, in that
// order of increasing precedence.
func resolveConfig(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()

	src := cmd.String(configFlag)
	if src == "" {
		// The default project file is optional.
		if ok, err := afero.Exists(config.FsFactory(), defaultConfigFile); err == nil && ok {
			src = defaultConfigFile
		}
	}

	if src != "" {
		fileCfg, err := config.Load(ctx, src)
		if err != nil {
			return nil, err
		}

		cfg = config.Merge(cfg, fileCfg)
	}

	mode := ""

	switch {
	case cmd.Bool(testFlag):
		mode = "test"
	case cmd.Bool(verboseFlag):
		mode = "verbose"
	}

	overlay := &config.Config{
		Hosts:     cmd.String(hostsFlag),
		User:      cmd.String(userFlag),
		Strategy:  cmd.String(strategyFlag),
		Mode:      mode,
		LogFile:   cmd.String(logFileFlag),
		Container: cmd.String(containerFlag),
		Command:   cmd.StringArg(commandArg),
	}

	// Presence matters here: an explicit zero disables the bound.
	if cmd.IsSet(connectTimeoutFlag) {
		timeout := int(cmd.Int(connectTimeoutFlag))
		overlay.ConnectTimeoutSeconds = &timeout
	}

	return config.Merge(cfg, overlay), nil
}
