// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package hostlist normalizes host list strings.
// Deployment targets may be written with comma or whitespace separators,
// or a mix of both; the engine always works with the normalized form.
package hostlist

import "strings"

// Normalize splits a raw host list on commas and whitespace, trims each
// token and drops empties. Order is preserved and duplicates are kept:
// batch jobs are correlated by index, not by address.
func Normalize(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	if len(fields) == 0 {
		return nil
	}

	return fields
}

// WithUser prefixes host with "user@" unless user is empty or the host
// already carries a user part.
func WithUser(host, user string) string {
	if user == "" || strings.Contains(host, "@") {
		return host
	}

	return user + "@" + host
}
