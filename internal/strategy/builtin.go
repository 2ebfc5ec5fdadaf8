// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package strategy

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/drydock/internal/config"
	"github.com/matt-FFFFFF/drydock/internal/engine"
	"github.com/matt-FFFFFF/drydock/internal/target"
)

// Func adapts a plain function to the Strategy interface.
type Func func(ctx context.Context, e *engine.Engine, cfg *config.Config) error

type builtin struct {
	name        string
	description string
	fn          Func
}

// Name implements Strategy.
func (b *builtin) Name() string { return b.name }

// Description implements Strategy.
func (b *builtin) Description() string { return b.description }

// Run implements Strategy.
func (b *builtin) Run(ctx context.Context, e *engine.Engine, cfg *config.Config) error {
	return b.fn(ctx, e, cfg)
}

// NewFunc creates a strategy from a function, for registration.
func NewFunc(name, description string, fn Func) Strategy {
	return &builtin{name: name, description: description, fn: fn}
}

func init() {
	Register(NewFunc("deploy",
		"run the deploy command on all hosts in parallel, then restart",
		runDeploy))
	Register(NewFunc("rolling",
		"deploy and restart one host at a time",
		runRolling))
	Register(NewFunc("restart",
		"run the restart command on all hosts in parallel",
		runRestart))
	Register(NewFunc("exec",
		"run an ad-hoc command on all hosts in parallel",
		runExec))
	Register(NewFunc("build",
		"run the build command inside the build container",
		runBuild))
}

func requireCommand(cfg *config.Config, name string) (string, error) {
	cmd := cfg.CommandFor(name)
	if cmd == "" {
		return "", fmt.Errorf("%w: commands.%s", ErrMissingCommand, name)
	}

	return cmd, nil
}

func runDeploy(ctx context.Context, e *engine.Engine, cfg *config.Config) error {
	deploy, err := requireCommand(cfg, config.CmdDeploy)
	if err != nil {
		return err
	}

	targets := cfg.Targets()

	if err := e.Run(ctx, targets, deploy); err != nil {
		return err
	}

	if restart := cfg.CommandFor(config.CmdRestart); restart != "" {
		return e.Run(ctx, targets, restart)
	}

	return nil
}

func runRolling(ctx context.Context, e *engine.Engine, cfg *config.Config) error {
	deploy, err := requireCommand(cfg, config.CmdDeploy)
	if err != nil {
		return err
	}

	restart := cfg.CommandFor(config.CmdRestart)

	for _, tgt := range cfg.Targets() {
		if _, err := e.Execute(ctx, tgt, deploy, false); err != nil {
			return err
		}

		if restart == "" {
			continue
		}

		if _, err := e.Execute(ctx, tgt, restart, false); err != nil {
			return err
		}
	}

	return nil
}

func runRestart(ctx context.Context, e *engine.Engine, cfg *config.Config) error {
	restart, err := requireCommand(cfg, config.CmdRestart)
	if err != nil {
		return err
	}

	return e.Run(ctx, cfg.Targets(), restart)
}

func runExec(ctx context.Context, e *engine.Engine, cfg *config.Config) error {
	if cfg.Command == "" {
		return fmt.Errorf("%w: no command line given", ErrMissingCommand)
	}

	return e.Run(ctx, cfg.Targets(), cfg.Command)
}

func runBuild(ctx context.Context, e *engine.Engine, cfg *config.Config) error {
	build, err := requireCommand(cfg, config.CmdBuild)
	if err != nil {
		return err
	}

	if cfg.Container == "" {
		return ErrNoContainer
	}

	_, err = e.Execute(ctx, target.Container(cfg.Container), build, false)

	return err
}
