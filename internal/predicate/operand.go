// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package predicate implements the WHERE-clause predicate algebra: parsing
// Operand/Constraint/Condition out of text, resolving identifiers against a
// table list, the AND/OR short-circuit evaluator, the single-table
// push-down planner, and the key-index fast path.
//
// Grounded on the original MiniDBMS's logic.rs end to end.
package predicate

import (
	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

// operandKind tags which of Operand's three states is populated.
type operandKind int

const (
	// opIdentifier is a placeholder for an attribute name not yet resolved
	// against a table list.
	opIdentifier operandKind = iota
	// opAttribute is a resolved (table index, attribute index) coordinate.
	opAttribute
	// opValue is a literal.
	opValue
)

// Operand is either an unresolved attribute name, a resolved attribute
// coordinate, or a literal value.
type Operand struct {
	kind       operandKind
	identifier value.Identifier
	tableIdx   int
	attrIdx    int
	literal    value.Data
}

// parseOperand parses tok as a literal (quoted string, else integer, else
// float) or, failing those, as an unresolved Identifier.
func parseOperand(tok string) (Operand, error) {
	if data, ok, err := value.ParseOperandLiteral(tok); ok {
		if err != nil {
			return Operand{}, err
		}
		return Operand{kind: opValue, literal: data}, nil
	} else if err != nil {
		return Operand{}, err
	}

	id, err := value.NewIdentifier(tok)
	if err != nil {
		return Operand{}, dberr.Parse("could not parse operand %q", tok)
	}
	return Operand{kind: opIdentifier, identifier: id}, nil
}

// resolve converts an opIdentifier Operand into an opAttribute one by
// looking it up across tables. Leaves opAttribute/opValue operands
// untouched.
func (o *Operand) resolve(tables []*store.Table) error {
	if o.kind != opIdentifier {
		return nil
	}
	for i, t := range tables {
		for j, a := range t.Attributes() {
			if a.Name.Equal(o.identifier) {
				*o = Operand{kind: opAttribute, tableIdx: i, attrIdx: j}
				return nil
			}
		}
	}
	return dberr.Constraint("could not find an attribute named %q in the given tables", o.identifier.Name())
}

// dataIn resolves o's value against a joined record: a literal returns
// itself, an attribute indexes into joined[table][attr]. Panics if called
// on an unresolved identifier operand, mirroring the Rust original's
// "can't evaluate constraint before converting" panic (a programmer
// contract failure, not a user-facing error).
func (o Operand) dataIn(joined [][]value.Data) value.Data {
	switch o.kind {
	case opValue:
		return o.literal
	case opAttribute:
		return joined[o.tableIdx][o.attrIdx]
	default:
		panic("minidb: cannot evaluate operand before resolving its identifier")
	}
}
