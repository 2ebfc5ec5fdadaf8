// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package engine is the job execution engine: it launches deployment
// commands as OS processes against local, remote or container targets,
// tracks their pids in a shared registry, waits for completion in launch
// order and correlates failures back to the originating target and
// rendered command.
//
// The engine has no retry policy and no whole-batch timeout. A failure is
// fatal at the point it is raised; sibling jobs launched after a failing
// one are left running and are only reaped by the signal teardown path or
// the parent watchdog.
package engine
