// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package predicate

import (
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

// Constraint is a single comparison: `left_operand rel_op right_operand`.
type Constraint struct {
	Left  Operand
	Rel   RelOp
	Right Operand
}

// parseConstraintSplit reads a Constraint off the front of prop, returning
// it and the remainder of the string.
func parseConstraintSplit(prop string) (Constraint, string, error) {
	prop = strings.TrimSpace(prop)

	leftTok, rest := splitWord(prop)
	rest = strings.TrimLeft(rest, " \t")
	rel, rest, err := splitRelOp(rest)
	if err != nil {
		return Constraint{}, prop, err
	}
	rest = strings.TrimLeft(rest, " \t")
	rightTok, rest := splitWord(rest)

	left, err := parseOperand(leftTok)
	if err != nil {
		return Constraint{}, prop, err
	}
	right, err := parseOperand(rightTok)
	if err != nil {
		return Constraint{}, prop, err
	}

	return Constraint{Left: left, Rel: rel, Right: right}, rest, nil
}

// eval evaluates the constraint against a joined record. Panics on
// cross-domain comparison or on an unresolved identifier operand — both
// programmer contract failures that convertWith should have already ruled
// out.
func (c Constraint) eval(joined [][]value.Data) bool {
	left := c.Left.dataIn(joined)
	right := c.Right.dataIn(joined)
	return c.Rel.evalCmp(left.Compare(right))
}

// convertWith resolves any identifier operands against tables and checks
// that the two sides are domain-compatible. Rejects constant-vs-constant
// comparisons as meaningless (always true or always false regardless of
// data).
func (c *Constraint) convertWith(tables []*store.Table) error {
	if err := c.Left.resolve(tables); err != nil {
		return err
	}
	if err := c.Right.resolve(tables); err != nil {
		return err
	}

	switch {
	case c.Left.kind == opAttribute && c.Right.kind == opAttribute:
		leftDomain := tables[c.Left.tableIdx].Attributes()[c.Left.attrIdx].Domain
		rightDomain := tables[c.Right.tableIdx].Attributes()[c.Right.attrIdx].Domain
		if leftDomain != rightDomain {
			return dberr.Constraint("attributes with incompatible domains cannot be compared")
		}
		return nil
	case c.Left.kind == opAttribute && c.Right.kind == opValue:
		domain := tables[c.Left.tableIdx].Attributes()[c.Left.attrIdx].Domain
		if domain != c.Right.literal.Domain() {
			return dberr.Constraint("attribute compared with value from an incorrect domain")
		}
		return nil
	case c.Left.kind == opValue && c.Right.kind == opAttribute:
		domain := tables[c.Right.tableIdx].Attributes()[c.Right.attrIdx].Domain
		if domain != c.Left.literal.Domain() {
			return dberr.Constraint("attribute compared with value from an incorrect domain")
		}
		return nil
	default:
		return dberr.Parse("comparisons between two constants are not allowed")
	}
}

// refsSingleTable reports the sole table index this constraint references,
// if any. Panics if called before convertWith (an unresolved identifier
// operand would make the question meaningless).
func (c Constraint) refsSingleTable() (int, bool) {
	switch {
	case c.Left.kind == opAttribute && c.Right.kind == opAttribute:
		if c.Left.tableIdx == c.Right.tableIdx {
			return c.Left.tableIdx, true
		}
		return 0, false
	case c.Left.kind == opAttribute:
		return c.Left.tableIdx, true
	case c.Right.kind == opAttribute:
		return c.Right.tableIdx, true
	default:
		panic("minidb: refsSingleTable called before resolving operands")
	}
}

// getKey returns the literal key value this constraint pins, if it has the
// shape `key_attribute = literal` (in either operand order) against the
// table's designated primary-key attribute.
func (c Constraint) getKey(tables []*store.Table) (value.Data, bool) {
	if c.Rel != Equals {
		return value.Data{}, false
	}
	if c.Left.kind == opAttribute && c.Right.kind == opValue {
		t := tables[c.Left.tableIdx]
		if t.HasKey() && t.KeyAttributeIndex() == c.Left.attrIdx {
			return c.Right.literal, true
		}
	}
	if c.Right.kind == opAttribute && c.Left.kind == opValue {
		t := tables[c.Right.tableIdx]
		if t.HasKey() && t.KeyAttributeIndex() == c.Right.attrIdx {
			return c.Left.literal, true
		}
	}
	return value.Data{}, false
}
