// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package check contains the check command, which resolves the
// configuration exactly as deploy would and reports every problem found.
package check

import (
	"context"
	"fmt"
	"os"

	"github.com/TylerBrock/colorjson"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/drydock/internal/config"
	"github.com/urfave/cli/v3"
)

const (
	hostsFlag    = "hosts"
	userFlag     = "user"
	strategyFlag = "strategy"
	configFlag   = "config"
	jsonFlag     = "json"

	defaultConfigFile = "drydock.yaml"
)

// styles follows the terminal's 16-colour palette so the output respects
// the user's theme.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Width(16)
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")).
		Bold(true)
	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
	problemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			PaddingLeft(2)
)

// CheckCmd validates the resolved configuration without running anything.
var CheckCmd = &cli.Command{
	Name: "check",
	Description: `Resolve the configuration from defaults, the project file and flags,
then validate it. Every problem is reported, not just the first. Exits
non-zero when the configuration would not deploy.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     hostsFlag,
			Aliases:  []string{"H"},
			Usage:    "Host list; comma or space separated.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     userFlag,
			Aliases:  []string{"u"},
			Usage:    "Remote user prefixed to every host address.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     strategyFlag,
			Aliases:  []string{"s"},
			Usage:    "Name of the deployment strategy to run.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:      configFlag,
			Aliases:   []string{"c"},
			Usage:     "Project file path or go-getter URL.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:     jsonFlag,
			Usage:    "Emit the resolved configuration and problems as JSON.",
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Default()

	src := cmd.String(configFlag)
	if src == "" {
		if _, err := config.FsFactory().Stat(defaultConfigFile); err == nil {
			src = defaultConfigFile
		}
	}

	if src != "" {
		fileCfg, err := config.Load(ctx, src)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		cfg = config.Merge(cfg, fileCfg)
	}

	cfg = config.Merge(cfg, &config.Config{
		Hosts:    cmd.String(hostsFlag),
		User:     cmd.String(userFlag),
		Strategy: cmd.String(strategyFlag),
	})

	problems := flatten(cfg.Validate())

	if cmd.Bool(jsonFlag) {
		if err := renderJSON(cfg, src, problems); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	} else {
		render(cfg, src, problems)
	}

	if len(problems) > 0 {
		return cli.Exit("", 1)
	}

	return nil
}

func flatten(err error) []string {
	if err == nil {
		return nil
	}

	merr, ok := err.(*multierror.Error)
	if !ok {
		return []string{err.Error()}
	}

	problems := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		problems = append(problems, e.Error())
	}

	return problems
}

func render(cfg *config.Config, src string, problems []string) {
	fmt.Println(titleStyle.Render("drydock configuration"))

	if src == "" {
		src = "(none)"
	}

	rows := []struct{ key, value string }{
		{"source", src},
		{"hosts", cfg.Hosts},
		{"user", cfg.User},
		{"strategy", cfg.Strategy},
		{"mode", cfg.Mode},
		{"container", cfg.Container},
		{"log file", cfg.LogFile},
		{"connect timeout", fmt.Sprintf("%ds", cfg.ConnectTimeout())},
	}

	for _, row := range rows {
		if row.value == "" {
			row.value = "-"
		}

		fmt.Println(keyStyle.Render(row.key) + row.value)
	}

	if len(problems) == 0 {
		fmt.Println(okStyle.Render("OK"))
		return
	}

	fmt.Println(failStyle.Render(fmt.Sprintf("%d problem(s)", len(problems))))

	for _, p := range problems {
		fmt.Println(problemStyle.Render("- " + p))
	}
}

func renderJSON(cfg *config.Config, src string, problems []string) error {
	report := map[string]any{
		"source":          src,
		"hosts":           cfg.Targets().Strings(),
		"strategy":        cfg.Strategy,
		"mode":            cfg.Mode,
		"container":       cfg.Container,
		"log_file":        cfg.LogFile,
		"connect_timeout": cfg.ConnectTimeout(),
		"problems":        problems,
		"ok":              len(problems) == 0,
	}

	formatter := colorjson.NewFormatter()
	formatter.Indent = 2

	out, err := formatter.Marshal(report)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	out = append(out, '\n')
	_, err = os.Stdout.Write(out)

	return err
}
