// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/drydock/internal/config"
	"github.com/matt-FFFFFF/drydock/internal/engine"
	"github.com/matt-FFFFFF/drydock/internal/target"
	"github.com/spf13/afero"
)

var (
	// ErrStrategyUnmarshal is returned when a strategy file cannot be parsed.
	ErrStrategyUnmarshal = errors.New("failed to unmarshal strategy definitions")
	// ErrBadStep is returned when a step does not set exactly one action.
	ErrBadStep = errors.New("step must set exactly one of run, run_one, local, container")
	// ErrUnnamedStrategy is returned when a definition has no name.
	ErrUnnamedStrategy = errors.New("strategy definition has no name")
)

// FsFactory returns the filesystem strategy files are read from.
// Tests replace it with an in-memory implementation.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// stepDef is one action of a YAML-defined strategy. Exactly one field is set.
type stepDef struct {
	// Run executes on all configured hosts as one parallel batch.
	Run string `yaml:"run,omitempty"`
	// RunOne executes on the single configured host.
	RunOne string `yaml:"run_one,omitempty"`
	// Local executes in a local subshell.
	Local string `yaml:"local,omitempty"`
	// Container executes inside the configured build container.
	Container string `yaml:"container,omitempty"`
}

func (s stepDef) actions() int {
	n := 0
	for _, v := range []string{s.Run, s.RunOne, s.Local, s.Container} {
		if v != "" {
			n++
		}
	}

	return n
}

type strategyDef struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Steps       []stepDef `yaml:"steps"`
}

type fileDef struct {
	Strategies []strategyDef `yaml:"strategies"`
}

// yamlStrategy runs the steps of one definition in order.
type yamlStrategy struct {
	def strategyDef
}

// Name implements Strategy.
func (y *yamlStrategy) Name() string { return y.def.Name }

// Description implements Strategy.
func (y *yamlStrategy) Description() string {
	if y.def.Description == "" {
		return "user-defined strategy"
	}

	return y.def.Description
}

// Run implements Strategy.
func (y *yamlStrategy) Run(ctx context.Context, e *engine.Engine, cfg *config.Config) error {
	for _, step := range y.def.Steps {
		var err error

		switch {
		case step.Run != "":
			err = e.Run(ctx, cfg.Targets(), step.Run)
		case step.RunOne != "":
			_, err = e.ExecuteOn(ctx, cfg.Targets(), step.RunOne, false)
		case step.Local != "":
			_, err = e.Execute(ctx, target.Local(), step.Local, false)
		case step.Container != "":
			if cfg.Container == "" {
				return ErrNoContainer
			}

			_, err = e.Execute(ctx, target.Container(cfg.Container), step.Container, false)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Parse parses strategy definitions from YAML.
func Parse(data []byte) ([]Strategy, error) {
	var file fileDef
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrStrategyUnmarshal, err)
	}

	strategies := make([]Strategy, 0, len(file.Strategies))

	for _, def := range file.Strategies {
		if def.Name == "" {
			return nil, ErrUnnamedStrategy
		}

		for i, step := range def.Steps {
			if step.actions() != 1 {
				return nil, fmt.Errorf("%w: strategy %q step %d", ErrBadStep, def.Name, i)
			}
		}

		strategies = append(strategies, &yamlStrategy{def: def})
	}

	return strategies, nil
}

// LoadFile parses a strategy definition file and registers every
// strategy it contains.
func LoadFile(path string) error {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return fmt.Errorf("failed to read strategy file: %w", err)
	}

	strategies, err := Parse(data)
	if err != nil {
		return err
	}

	for _, s := range strategies {
		Register(s)
	}

	return nil
}
