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

type logOp int

const (
	opAnd logOp = iota
	opOr
)

// boolEval is either a Constraint or a nested Condition; exactly one field
// is populated.
type boolEval struct {
	constraint *Constraint
	condition  *Condition
}

type clause struct {
	op   logOp
	eval boolEval
}

// Condition is an alternating sequence of logical operators and
// constraints/nested conditions. The first clause's operator is a
// placeholder (always AND).
type Condition struct {
	clauses []clause
}

// Empty reports whether the condition has no clauses, i.e. a WHERE clause
// was omitted entirely.
func (c *Condition) Empty() bool { return len(c.clauses) == 0 }

// Parse reads an entire Condition out of cond.
func Parse(cond string) (*Condition, error) {
	if strings.TrimSpace(cond) == "" {
		return &Condition{}, nil
	}

	var clauses []clause
	lastOp := opAnd

	for {
		cond = strings.TrimLeft(cond, " \t")

		if chunk, rest, ok := splitParenthesisChunk(cond); ok {
			nested, err := Parse(chunk)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, clause{op: lastOp, eval: boolEval{condition: nested}})
			cond = rest
		} else {
			constraint, rest, err := parseConstraintSplit(cond)
			if err != nil {
				return nil, dberr.Parse("did not find a valid constraint or parenthesis chunk")
			}
			clauses = append(clauses, clause{op: lastOp, eval: boolEval{constraint: &constraint}})
			cond = rest
		}

		cond = strings.TrimLeft(cond, " \t")
		var tok string
		tok, cond = splitWord(cond)
		switch strings.ToLower(tok) {
		case "and":
			lastOp = opAnd
		case "or":
			lastOp = opOr
		default:
			if strings.TrimSpace(cond) == "" {
				return &Condition{clauses: clauses}, nil
			}
			return nil, errNoLogOp
		}
	}
}

// convertWith resolves every identifier operand in the condition tree.
func (c *Condition) convertWith(tables []*store.Table) error {
	for _, cl := range c.clauses {
		if cl.eval.condition != nil {
			if err := cl.eval.condition.convertWith(tables); err != nil {
				return err
			}
		} else {
			if err := cl.eval.constraint.convertWith(tables); err != nil {
				return err
			}
		}
	}
	return nil
}

// eval evaluates the condition against a joined record using the
// short-circuit AND/OR walk: AND skips evaluation once the running result
// is already false; OR returns true immediately once the running result is
// already true, otherwise adopts the term's value.
func (c *Condition) eval(joined [][]value.Data) bool {
	curr := true
	for _, cl := range c.clauses {
		termTrue := func() bool {
			if cl.eval.condition != nil {
				return cl.eval.condition.eval(joined)
			}
			return cl.eval.constraint.eval(joined)
		}

		switch cl.op {
		case opAnd:
			if !curr {
				continue
			}
			if !termTrue() {
				curr = false
			}
		case opOr:
			if curr {
				return true
			}
			curr = termTrue()
		}
	}
	return curr
}
