// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package deploy

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/drydock/internal/config"
	"github.com/matt-FFFFFF/drydock/internal/ctxlog"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestDeployTestMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, defaultConfigFile, []byte(`
hosts: web-1 web-2
user: deployer
strategy: restart
commands:
  restart: systemctl restart app
`), 0o644))

	stub := gostub.Stub(&config.FsFactory, func() afero.Fs { return fs })
	defer stub.Reset()

	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	// --strategy overrides the file; exec takes the trailing command
	// argument. Test mode renders commands without spawning anything.
	err := DeployCmd.Run(ctx, []string{
		"deploy", "--strategy", "exec", "--test", "uptime",
	})
	require.NoError(t, err)
}
