// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/drydock/internal/engine"
	"github.com/matt-FFFFFF/drydock/internal/hostlist"
)

var (
	// ErrNoHosts is reported when no deployment host is configured.
	ErrNoHosts = errors.New("no hosts configured")
	// ErrNoStrategy is reported when no strategy name is configured.
	ErrNoStrategy = errors.New("no strategy configured")
	// ErrBadTimeout is reported for a negative connection timeout.
	ErrBadTimeout = errors.New("connect_timeout must not be negative")
)

// Validate checks the resolved configuration and aggregates every problem
// found rather than stopping at the first.
func (c *Config) Validate() error {
	var result *multierror.Error

	if len(hostlist.Normalize(c.Hosts)) == 0 {
		result = multierror.Append(result, ErrNoHosts)
	}

	if c.Strategy == "" {
		result = multierror.Append(result, ErrNoStrategy)
	}

	if _, err := engine.ParseMode(c.Mode); err != nil {
		result = multierror.Append(result, fmt.Errorf("mode: %w", err))
	}

	if c.ConnectTimeout() < 0 {
		result = multierror.Append(result, ErrBadTimeout)
	}

	return result.ErrorOrNil()
}
