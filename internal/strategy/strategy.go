// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package strategy provides deployment strategies and a registry to
// select them by name. A strategy is a sequence of calls into the job
// engine's primitives; the engine itself never knows which strategy is
// driving it.
//
// Strategies are either built in or loaded from a YAML definition file.
// Sourcing executable strategy scripts at runtime is deliberately not
// supported.
package strategy

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/matt-FFFFFF/drydock/internal/config"
	"github.com/matt-FFFFFF/drydock/internal/engine"
)

var (
	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrMissingCommand is returned when a strategy needs a command
	// template the project does not define.
	ErrMissingCommand = errors.New("missing command template")
	// ErrNoContainer is returned when a container step runs without a
	// configured container.
	ErrNoContainer = errors.New("no container configured")
)

// Strategy is one deployment operation: an ordered sequence of calls into
// the engine primitives.
type Strategy interface {
	// Name is the registry key.
	Name() string
	// Description is a one-line summary for the strategy listing.
	Description() string
	// Run executes the strategy. Any error aborts the whole deployment.
	Run(ctx context.Context, e *engine.Engine, cfg *config.Config) error
}

// Registry holds the mapping between strategy names and implementations.
type Registry map[string]Strategy

// DefaultRegistry is the default registry for strategies.
var DefaultRegistry = make(Registry)

// Register registers a strategy in the default registry.
// A later registration with the same name replaces the earlier one.
func Register(s Strategy) {
	DefaultRegistry[s.Name()] = s
}

// Get returns the named strategy from the default registry.
func Get(name string) (Strategy, error) {
	s, ok := DefaultRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}

	return s, nil
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(DefaultRegistry))
	for name := range DefaultRegistry {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
