// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package predicate

import (
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
)

// splitWord splits off a run of characters valid inside an operand token
// (alphanumeric, plus the quote/dot/minus characters a literal may need)
// until it sees anything else. Returns the token and the remainder.
func splitWord(given string) (string, string) {
	for i, c := range given {
		if !isWordRune(c) {
			return given[:i], given[i:]
		}
	}
	return given, ""
}

func isWordRune(c rune) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return true
	}
	return c == '"' || c == '.' || c == '-'
}

// splitParenthesisChunk reads a balanced parenthesized chunk off the front
// of cond, returning its interior (without the outer parens) and the
// remainder. Fails (ok=false) if cond does not start with '('.
func splitParenthesisChunk(cond string) (chunk string, rest string, ok bool) {
	if !strings.HasPrefix(cond, "(") {
		return "", cond, false
	}

	openCount := 0
	for i, c := range cond {
		switch c {
		case '(':
			openCount++
		case ')':
			openCount--
		}
		if openCount == 0 {
			return cond[1:i], cond[i+1:], true
		}
	}
	return "", cond, false
}

// errNoLogOp is returned by Parse when the token after a constraint or
// parenthesis chunk is neither "and" nor "or".
var errNoLogOp = dberr.Parse("did not find a valid logical operator")
