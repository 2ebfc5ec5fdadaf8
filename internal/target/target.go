// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package target models the destinations a command can be executed on:
// the local shell, a single remote host reached over ssh, or a running
// container reached via the container runtime's exec facility.
package target

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/matt-FFFFFF/drydock/internal/hostlist"
)

// ErrSingleTarget is returned when exactly one target is required but the
// resolved target set contains a different number of entries.
var ErrSingleTarget = errors.New("exactly one target required")

// Kind discriminates the target variants.
type Kind int

const (
	// KindLocal executes in a local subshell.
	KindLocal Kind = iota
	// KindRemote executes on a remote host over ssh.
	KindRemote
	// KindContainer executes inside a running container.
	KindContainer
)

const (
	sshExe    = "ssh"
	dockerExe = "docker"
	binSh     = "/bin/sh"
)

// Target is a single execution destination. Immutable once constructed.
type Target struct {
	Kind Kind
	// Addr is the host address for KindRemote, or the container id for
	// KindContainer. Unused for KindLocal.
	Addr string
	// User is the optional remote user for KindRemote.
	User string
}

// Local returns the local shell target.
func Local() Target {
	return Target{Kind: KindLocal}
}

// Remote returns a target for a single remote host, optionally as user.
func Remote(host, user string) Target {
	return Target{Kind: KindRemote, Addr: host, User: user}
}

// Container returns a target for a running container.
func Container(id string) Target {
	return Target{Kind: KindContainer, Addr: id}
}

// String renders the target for diagnostics.
func (t Target) String() string {
	switch t.Kind {
	case KindRemote:
		return hostlist.WithUser(t.Addr, t.User)
	case KindContainer:
		return "container:" + t.Addr
	default:
		return "localhost"
	}
}

// ArgvOptions control how a command is rendered into an OS argv.
type ArgvOptions struct {
	// ConnectTimeoutSeconds bounds ssh connection establishment.
	ConnectTimeoutSeconds int
	// Verbose keeps ssh connection sharing enabled; when false the
	// control channel is disabled so concurrent sessions don't collide
	// on a shared control socket.
	Verbose bool
}

// Argv renders command into the argv to spawn for this target.
// The first element is an executable name to be resolved against PATH.
func (t Target) Argv(command string, o ArgvOptions) []string {
	switch t.Kind {
	case KindRemote:
		argv := []string{sshExe, "-o", "BatchMode=yes"}
		if o.ConnectTimeoutSeconds > 0 {
			argv = append(argv, "-o", "ConnectTimeout="+strconv.Itoa(o.ConnectTimeoutSeconds))
		}

		if !o.Verbose {
			argv = append(argv, "-o", "ControlMaster=no", "-o", "ControlPath=none")
		}

		return append(argv, hostlist.WithUser(t.Addr, t.User), command)
	case KindContainer:
		return []string{dockerExe, "exec", t.Addr, binSh, "-c", command}
	default:
		return []string{defaultShell(), "-c", command}
	}
}

func defaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}

	return binSh
}

// List is an ordered sequence of targets. Order is the host-list order
// after normalization; duplicates are not deduplicated and an empty list
// is valid input that yields zero work.
type List []Target

// FromHosts builds a remote target list from a raw host list string.
func FromHosts(raw, user string) List {
	hosts := hostlist.Normalize(raw)
	if len(hosts) == 0 {
		return nil
	}

	list := make(List, 0, len(hosts))
	for _, h := range hosts {
		list = append(list, Remote(h, user))
	}

	return list
}

// Strings renders every target for display.
func (l List) Strings() []string {
	out := make([]string, 0, len(l))
	for _, t := range l {
		out = append(out, t.String())
	}

	return out
}

// Single returns the only element of the list, or ErrSingleTarget when
// the list does not contain exactly one target. Callers that are defined
// to run on one target use this to fail fast before any connection is
// attempted.
func (l List) Single() (Target, error) {
	if len(l) != 1 {
		return Target{}, fmt.Errorf("%w: got %d", ErrSingleTarget, len(l))
	}

	return l[0], nil
}
