// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/drydock/cmd/check"
	"github.com/matt-FFFFFF/drydock/cmd/deploy"
	"github.com/matt-FFFFFF/drydock/cmd/strategies"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		deploy.DeployCmd,
		check.CheckCmd,
		strategies.StrategiesCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "drydock",
	Description: `Drydock is a deployment orchestrator that executes shell commands
across one or more remote hosts, or inside a build container. Deployments are
driven by named strategies: sequences of calls into a job engine that launches
commands as parallel or serial OS processes, aggregates failures, and tears the
whole job tree down on interrupt or when its parent process vanishes.`,
	Usage:     "drydock deploy --hosts web-1,web-2 --strategy rolling",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
