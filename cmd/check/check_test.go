// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package check

import (
	"testing"

	"github.com/matt-FFFFFF/drydock/internal/config"
	"github.com/stretchr/testify/assert"
)

var negativeTimeout = -1

func TestFlatten(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		cfg  *config.Config
		want []string
	}{
		{
			name: "valid config has no problems",
			cfg: &config.Config{
				Hosts:    "web-1",
				Strategy: "deploy",
				Mode:     "compact",
			},
			want: nil,
		},
		{
			name: "every problem is reported",
			cfg:  &config.Config{Mode: "nope", ConnectTimeoutSeconds: &negativeTimeout},
			want: []string{
				config.ErrNoHosts.Error(),
				config.ErrNoStrategy.Error(),
				"mode: unknown execution mode: \"nope\"",
				config.ErrBadTimeout.Error(),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, flatten(tc.cfg.Validate()))
		})
	}
}
