// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color colorizes strings with ANSI escape codes.
// The NO_COLOR and FORCE_COLOR environment variables override the default
// behavior of only emitting escape codes when stdout is a terminal.
package color
