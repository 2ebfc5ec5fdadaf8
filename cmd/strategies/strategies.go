// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package strategies contains the strategies command, which lists every
// registered deployment strategy.
package strategies

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/matt-FFFFFF/drydock/internal/strategy"
	"github.com/urfave/cli/v3"
)

const strategiesFileFlag = "strategies-file"

// StrategiesCmd lists the available deployment strategies.
var StrategiesCmd = &cli.Command{
	Name:        "strategies",
	Description: "List the available deployment strategies.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      strategiesFileFlag,
			Usage:     "Also load strategies from this YAML definition file.",
			TakesFile: true,
			OnlyOnce:  true,
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		if path := cmd.String(strategiesFileFlag); path != "" {
			if err := strategy.LoadFile(path); err != nil {
				return cli.Exit(err.Error(), 1)
			}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

		for _, name := range strategy.Names() {
			s, err := strategy.Get(name)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			fmt.Fprintf(w, "%s\t%s\n", s.Name(), s.Description())
		}

		return w.Flush()
	},
}
