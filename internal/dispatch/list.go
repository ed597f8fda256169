// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
)

// parseParenList strips a single wrapping `(...)` pair from s (rejecting any
// non-whitespace content before `(` or after `)`) and splits its content on
// top-level commas, honoring double-quoted text literals so a comma inside a
// quoted string does not split the list.
func parseParenList(s string) ([]string, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || strings.TrimSpace(s[:open]) != "" {
		return nil, dberr.Parse("lists must be wrapped in parentheses")
	}
	closeIdx := strings.LastIndexByte(s, ')')
	if closeIdx < 0 || closeIdx < open {
		return nil, dberr.Parse("lists must be wrapped in parentheses")
	}
	if strings.TrimSpace(s[closeIdx+1:]) != "" {
		return nil, dberr.Parse("unexpected content after closing parenthesis")
	}

	inner := s[open+1 : closeIdx]
	items := splitTopLevelCommas(inner)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.TrimSpace(item)
	}
	return out, nil
}

// splitTopLevelCommas splits s on commas that are not inside a
// double-quoted literal.
func splitTopLevelCommas(s string) []string {
	var parts []string
	var buf strings.Builder
	inQuote := false
	for _, c := range s {
		switch {
		case c == '"':
			inQuote = !inQuote
			buf.WriteRune(c)
		case c == ',' && !inQuote:
			parts = append(parts, buf.String())
			buf.Reset()
		default:
			buf.WriteRune(c)
		}
	}
	parts = append(parts, buf.String())
	return parts
}
