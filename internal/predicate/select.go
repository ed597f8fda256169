// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package predicate

import (
	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/memtable"
	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

// Select evaluates c as a query over tables (a cartesian join when more
// than one), returning the resulting MemTable. c need not be pre-converted
// — Select resolves identifiers itself.
//
// Single-table, AND-connected sub-terms are pushed down per table (via
// splitLoadHelpers) and evaluated against each table's own records (taking
// the key-index fast path when available) before the remaining condition
// is evaluated against the cartesian product of what survives.
func Select(cond *Condition, tables []*store.Table) (*memtable.MemTable, error) {
	if len(tables) == 0 {
		return nil, dberr.Constraint("must select from at least one table")
	}
	if err := cond.convertWith(tables); err != nil {
		return nil, err
	}

	helpers := make(map[int]*Condition)
	cond.splitLoadHelpers(helpers, true)

	memTables := make([]*memtable.MemTable, len(tables))
	var joinedAttributes []store.Attribute
	for i, t := range tables {
		mt, err := memtable.Build(t)
		if err != nil {
			return nil, err
		}
		memTables[i] = mt
		joinedAttributes = append(joinedAttributes, mt.Attributes...)
	}

	recordNums := make([][]uint64, len(tables))
	for i := range tables {
		helper, ok := helpers[i]
		if !ok {
			helper = &Condition{}
		}
		recordNums[i] = helper.filterTableCoords(memTables, i, tables[i].Index(), tables)
	}

	for _, nums := range recordNums {
		if len(nums) == 0 {
			return memtable.BuildFromRecords(nil, joinedAttributes)
		}
	}

	tableCoords := cartesianProduct(recordNums)
	selected := cond.evalCoords(tableCoords, memTables)

	rows := buildJoinedRecords(selected, memTables)
	return memtable.BuildFromRecords(rows, joinedAttributes)
}

// buildJoinedRecords concatenates, for each selected coordinate tuple, the
// matching record from every table in table order.
func buildJoinedRecords(selected [][]uint64, memTables []*memtable.MemTable) [][]value.Data {
	rows := make([][]value.Data, 0, len(selected))
	for _, coord := range selected {
		var row []value.Data
		for tableIdx, recNum := range coord {
			row = append(row, memTables[tableIdx].Records[recNum]...)
		}
		rows = append(rows, row)
	}
	return rows
}

// cartesianProduct enumerates every combination of one index per input
// slice via a mixed-radix counter, rightmost digit fastest. Returns nil if
// any slice is empty.
func cartesianProduct(perTable [][]uint64) [][]uint64 {
	for _, nums := range perTable {
		if len(nums) == 0 {
			return nil
		}
	}

	counters := make([]int, len(perTable))
	var out [][]uint64

	for {
		coord := make([]uint64, len(perTable))
		for i, c := range counters {
			coord[i] = perTable[i][c]
		}
		out = append(out, coord)

		carry := true
		for i := len(counters) - 1; i >= 0 && carry; i-- {
			counters[i]++
			if counters[i] == len(perTable[i]) {
				counters[i] = 0
			} else {
				carry = false
			}
		}
		if carry {
			return out
		}
	}
}
