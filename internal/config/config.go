// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config resolves the engine's inputs from three layers: built-in
// defaults, a YAML project file and runtime flags. Resolution is an
// explicit ordered merge; flags win over the file, the file wins over
// defaults.
package config

import (
	"maps"

	"github.com/matt-FFFFFF/drydock/internal/target"
)

// Default command templates, overridable per project via the commands map.
const (
	CmdDeploy  = "deploy"
	CmdRestart = "restart"
	CmdBuild   = "build"
)

// Config holds the resolved inputs for one engine invocation.
type Config struct {
	// Hosts is the raw host list; mixed comma/space separators are accepted.
	Hosts string `yaml:"hosts"`
	// User is the remote user prefixed to every host address.
	User string `yaml:"user"`
	// Strategy is the name of the deployment strategy to run.
	Strategy string `yaml:"strategy"`
	// Mode is the execution mode: compact, verbose or test.
	Mode string `yaml:"mode"`
	// LogFile is the deployment log path; empty disables the log.
	LogFile string `yaml:"log_file"`
	// ConnectTimeoutSeconds bounds ssh connection establishment. A
	// pointer so an explicit zero (disable the bound) survives the
	// merge; nil means the layer does not speak to it.
	ConnectTimeoutSeconds *int `yaml:"connect_timeout"`
	// Container is the build container id used by container strategies.
	Container string `yaml:"container"`
	// Commands maps logical command names (deploy, restart, build, ...)
	// to the shell command templates the strategies run.
	Commands map[string]string `yaml:"commands"`
	// StrategiesFile optionally names a YAML file with extra strategies.
	StrategiesFile string `yaml:"strategies_file"`

	// Command is an ad-hoc command supplied on the command line for the
	// exec strategy. Never read from the file.
	Command string `yaml:"-"`
}

// Default returns the built-in configuration layer.
func Default() *Config {
	timeout := 10

	return &Config{
		Strategy:              "deploy",
		Mode:                  "compact",
		ConnectTimeoutSeconds: &timeout,
		Commands:              map[string]string{},
	}
}

// Merge overlays non-zero fields of overlay onto base and returns the
// result. Neither input is mutated. The commands map is merged per key.
func Merge(base, overlay *Config) *Config {
	out := *base
	out.Commands = maps.Clone(base.Commands)

	if out.Commands == nil {
		out.Commands = map[string]string{}
	}

	if overlay == nil {
		return &out
	}

	if overlay.Hosts != "" {
		out.Hosts = overlay.Hosts
	}

	if overlay.User != "" {
		out.User = overlay.User
	}

	if overlay.Strategy != "" {
		out.Strategy = overlay.Strategy
	}

	if overlay.Mode != "" {
		out.Mode = overlay.Mode
	}

	if overlay.LogFile != "" {
		out.LogFile = overlay.LogFile
	}

	if overlay.ConnectTimeoutSeconds != nil {
		out.ConnectTimeoutSeconds = overlay.ConnectTimeoutSeconds
	}

	if overlay.Container != "" {
		out.Container = overlay.Container
	}

	if overlay.StrategiesFile != "" {
		out.StrategiesFile = overlay.StrategiesFile
	}

	if overlay.Command != "" {
		out.Command = overlay.Command
	}

	maps.Copy(out.Commands, overlay.Commands)

	return &out
}

// Targets returns the normalized remote target list.
func (c *Config) Targets() target.List {
	return target.FromHosts(c.Hosts, c.User)
}

// CommandFor returns the command template for a logical name, or empty
// when the project does not define it.
func (c *Config) CommandFor(name string) string {
	return c.Commands[name]
}

// ConnectTimeout returns the resolved ssh connection timeout in seconds.
// Zero disables the bound.
func (c *Config) ConnectTimeout() int {
	if c.ConnectTimeoutSeconds == nil {
		return 0
	}

	return *c.ConnectTimeoutSeconds
}
