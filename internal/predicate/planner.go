// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package predicate

import (
	"github.com/solidcoredata/minidb/internal/bst"
	"github.com/solidcoredata/minidb/internal/memtable"
	"github.com/solidcoredata/minidb/internal/metrics"
	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

// removeClause extracts clauses[i] via swap-remove (order among
// AND-connected clauses does not matter).
func removeClause(c *Condition, i int) clause {
	removed := c.clauses[i]
	last := len(c.clauses) - 1
	c.clauses[i] = c.clauses[last]
	c.clauses = c.clauses[:last]
	return removed
}

func stashClause(helpers map[int]*Condition, tableNum int, cl clause) {
	h, ok := helpers[tableNum]
	if !ok {
		h = &Condition{}
		helpers[tableNum] = h
	}
	h.clauses = append(h.clauses, cl)
}

// splitLoadHelpers extracts AND-connected, single-table-referencing
// sub-terms into helpers[tableIdx], gated by alwaysTrue: once any OR is
// encountered anywhere on the path from the root, alwaysTrue becomes false
// and nothing more is extracted (but nested conditions are still
// recursively split in place). Reports whether the WHOLE of c, after
// splitting, refers to only one table.
func (c *Condition) splitLoadHelpers(helpers map[int]*Condition, alwaysTrue bool) (int, bool) {
	for _, cl := range c.clauses {
		if cl.op == opOr {
			alwaysTrue = false
		}
	}

	singleTable := true
	lastTable := 0
	haveTable := false

	i := 0
	for i < len(c.clauses) {
		cl := c.clauses[i]
		if cl.eval.condition != nil {
			tableNum, ok := cl.eval.condition.splitLoadHelpers(helpers, alwaysTrue)
			if !ok || (haveTable && tableNum != lastTable) {
				singleTable = false
			}
			lastTable = tableNum
			haveTable = true
			if ok && alwaysTrue {
				stashClause(helpers, tableNum, removeClause(c, i))
				continue
			}
		} else {
			if tableNum, ok := cl.eval.constraint.refsSingleTable(); ok {
				if haveTable && tableNum != lastTable {
					singleTable = false
				}
				lastTable = tableNum
				haveTable = true
				if alwaysTrue {
					stashClause(helpers, tableNum, removeClause(c, i))
					continue
				}
			}
		}
		i++
	}

	if singleTable && haveTable {
		return lastTable, true
	}
	return 0, false
}

// getRecordNumsFromBST returns candidate record ordinals for a
// single-table helper condition known to own tree: full in-order
// enumeration if any OR is present or no key-equality term is found, a
// single BST.Find if exactly one consistent key-equality term is found, or
// an empty result for contradictory key-equality terms (e.g. `k=1 and
// k=2`).
func (c *Condition) getRecordNumsFromBST(tree *bst.Tree, tables []*store.Table) []uint64 {
	for _, cl := range c.clauses {
		if cl.op == opOr {
			return tree.InOrderPayloads()
		}
	}

	var key value.Data
	haveKey := false

	i := 0
	for i < len(c.clauses) {
		cl := c.clauses[i]
		if cl.eval.condition != nil {
			i++
			continue
		}
		newKey, ok := cl.eval.constraint.getKey(tables)
		if !ok {
			i++
			continue
		}
		removeClause(c, i)
		if haveKey {
			if key.Equal(newKey) {
				continue
			}
			return nil
		}
		key = newKey
		haveKey = true
	}

	if haveKey {
		metrics.IndexLookups.Inc()
		if ordinal, found := tree.Find(key); found {
			return []uint64{ordinal}
		}
		return nil
	}
	return tree.InOrderPayloads()
}

// filterTableCoords returns the ordinals of tableNum's records matching c,
// using the key index (if tree is non-nil) for candidate generation.
func (c *Condition) filterTableCoords(memTables []*memtable.MemTable, tableNum int, tree *bst.Tree, tables []*store.Table) []uint64 {
	var coords []uint64
	if tree != nil {
		coords = c.getRecordNumsFromBST(tree, tables)
	} else {
		n := len(memTables[tableNum].Records)
		coords = make([]uint64, n)
		for i := range coords {
			coords[i] = uint64(i)
		}
	}

	selected := make([]uint64, 0, len(coords))
	joined := make([][]value.Data, len(memTables))
	for _, coord := range coords {
		joined[tableNum] = memTables[tableNum].Records[coord]
		metrics.RecordsScanned.Inc()
		if c.eval(joined) {
			selected = append(selected, coord)
		}
	}
	return selected
}

// evalCoords filters a list of already-joined cartesian coordinates.
func (c *Condition) evalCoords(tableCoords [][]uint64, memTables []*memtable.MemTable) [][]uint64 {
	selected := make([][]uint64, 0, len(tableCoords))
	joined := make([][]value.Data, len(memTables))
	for _, coord := range tableCoords {
		for tableIdx, recNum := range coord {
			joined[tableIdx] = memTables[tableIdx].Records[recNum]
		}
		if c.eval(joined) {
			selected = append(selected, coord)
		}
	}
	return selected
}
