// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package strategy

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/drydock/internal/engine"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strategiesDoc = `
strategies:
  - name: hotfix
    description: pull and restart without a build
    steps:
      - run: "cd /srv/app && git pull"
      - run: "systemctl restart app"
      - local: "echo hotfix done"
  - name: image
    steps:
      - container: "make image"
`

func TestParse(t *testing.T) {
	strategies, err := Parse([]byte(strategiesDoc))
	require.NoError(t, err)
	require.Len(t, strategies, 2)

	assert.Equal(t, "hotfix", strategies[0].Name())
	assert.Equal(t, "pull and restart without a build", strategies[0].Description())
	assert.Equal(t, "user-defined strategy", strategies[1].Description())
}

func TestParseRejectsBadStep(t *testing.T) {
	_, err := Parse([]byte(`
strategies:
  - name: broken
    steps:
      - run: "a"
        local: "b"
`))
	require.ErrorIs(t, err, ErrBadStep)

	_, err = Parse([]byte(`
strategies:
  - name: empty-step
    steps:
      - {}
`))
	require.ErrorIs(t, err, ErrBadStep)
}

func TestParseRejectsUnnamed(t *testing.T) {
	_, err := Parse([]byte("strategies:\n  - steps: []\n"))
	require.ErrorIs(t, err, ErrUnnamedStrategy)
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("strategies: [unterminated"))
	require.ErrorIs(t, err, ErrStrategyUnmarshal)
}

func TestLoadFileRegisters(t *testing.T) {
	fs := afero.NewMemMapFs()
	stub := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stub.Reset()

	require.NoError(t, afero.WriteFile(fs, "/strategies.yaml", []byte(strategiesDoc), 0o644))
	require.NoError(t, LoadFile("/strategies.yaml"))

	s, err := Get("hotfix")
	require.NoError(t, err)

	// Dry run the loaded strategy end to end.
	e := engine.New(engine.ModeTest, 0, nil)
	require.NoError(t, s.Run(context.Background(), e, testConfig()))
}

func TestLoadFileMissing(t *testing.T) {
	stub := gostub.Stub(&FsFactory, func() afero.Fs { return afero.NewMemMapFs() })
	defer stub.Reset()

	require.Error(t, LoadFile("/nope.yaml"))
}
