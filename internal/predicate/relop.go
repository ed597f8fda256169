// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package predicate

import "github.com/solidcoredata/minidb/internal/dberr"

// RelOp is a relative comparison operator.
type RelOp int

const (
	Equals RelOp = iota
	NotEqual
	GreaterThan
	LessThan
	GreaterThanOrEqual
	LessThanOrEqual
)

// evalCmp applies op to a three-way comparison result (as returned by
// value.Data.Compare: -1, 0, or 1).
func (op RelOp) evalCmp(cmp int) bool {
	switch op {
	case Equals:
		return cmp == 0
	case NotEqual:
		return cmp != 0
	case GreaterThan:
		return cmp > 0
	case LessThan:
		return cmp < 0
	case GreaterThanOrEqual:
		return cmp >= 0
	case LessThanOrEqual:
		return cmp <= 0
	default:
		return false
	}
}

// splitRelOp reads a relative operator off the front of cond, returning the
// operator and the remainder of the string.
func splitRelOp(cond string) (RelOp, string, error) {
	var char1, char2 byte
	if len(cond) >= 1 {
		char1 = cond[0]
	}
	if len(cond) >= 2 {
		char2 = cond[1]
	}

	switch {
	case char1 == '>' && char2 == '=':
		return GreaterThanOrEqual, cond[2:], nil
	case char1 == '<' && char2 == '=':
		return LessThanOrEqual, cond[2:], nil
	case char1 == '!' && char2 == '=':
		return NotEqual, cond[2:], nil
	case char1 == '=':
		return Equals, cond[1:], nil
	case char1 == '>':
		return GreaterThan, cond[1:], nil
	case char1 == '<':
		return LessThan, cond[1:], nil
	default:
		return 0, cond, dberr.Parse("did not find a valid relative operator")
	}
}
