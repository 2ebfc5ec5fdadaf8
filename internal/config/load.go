// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-getter/v2"
	"github.com/spf13/afero"
)

var (
	// ErrGetConfigFile is returned when the file cannot be retrieved.
	ErrGetConfigFile = errors.New("failed to get config file")
	// ErrParseConfigFile is returned when the file cannot be parsed.
	ErrParseConfigFile = errors.New("failed to parse config file")
)

// FsFactory returns the filesystem used for local reads. Tests replace it
// with an in-memory implementation.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Load reads and parses a project file. src uses Hashicorp's go-getter
// syntax, so local paths as well as git/http/s3 URLs work. A plain local
// path is read directly.
func Load(ctx context.Context, src string) (*Config, error) {
	data, err := read(ctx, src)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Join(ErrParseConfigFile, err)
	}

	return cfg, nil
}

func read(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, ErrGetConfigFile
	}

	fs := FsFactory()
	if ok, err := afero.Exists(fs, src); err == nil && ok {
		data, err := afero.ReadFile(fs, src)
		if err != nil {
			return nil, errors.Join(ErrGetConfigFile, err)
		}

		return data, nil
	}

	return fetch(ctx, src)
}

// fetch retrieves src with go-getter into a temporary file and reads it.
func fetch(ctx context.Context, src string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "drydock-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	dst := filepath.Join(tmpDir, "config.yaml")

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Dst:     dst,
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	if _, err := client.Get(ctx, req); err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	return data, nil
}
