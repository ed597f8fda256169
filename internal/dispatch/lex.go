// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import "strings"

// splitCommands splits raw source text into individual, semicolon-terminated
// commands, stripping `#`-to-newline comments and lowercasing everything
// outside double-quoted text literals. Semicolons and `#` inside a quoted
// literal do not terminate the command or start a comment.
func splitCommands(src string) []string {
	var commands []string
	var buf strings.Builder
	inQuote := false

	flush := func() {
		cmd := strings.TrimSpace(buf.String())
		if cmd != "" {
			commands = append(commands, cmd)
		}
		buf.Reset()
	}

	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			inQuote = !inQuote
			buf.WriteRune(c)
		case inQuote:
			buf.WriteRune(c)
		case c == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case c == ';':
			flush()
		default:
			buf.WriteRune(lowerOutsideQuote(c))
		}
	}
	flush()
	return commands
}

func lowerOutsideQuote(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

// splitWord splits cmd on its first run of whitespace, returning the first
// word and the (left-trimmed) remainder. Mirrors the original dispatcher's
// cmd.split_once(' ').
func splitWord(cmd string) (word string, rest string) {
	cmd = strings.TrimSpace(cmd)
	for i, c := range cmd {
		if c == ' ' || c == '\t' || c == '\n' {
			return cmd[:i], strings.TrimSpace(cmd[i+1:])
		}
	}
	return cmd, ""
}

