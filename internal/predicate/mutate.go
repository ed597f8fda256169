// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package predicate

import (
	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/memtable"
	"github.com/solidcoredata/minidb/internal/store"
)

// matchingOrdinals resolves cond (a single-table condition, not yet
// converted) against table and returns the matching record ordinals.
func matchingOrdinals(cond *Condition, table *store.Table) ([]uint64, error) {
	if err := cond.convertWith([]*store.Table{table}); err != nil {
		return nil, err
	}
	mt, err := memtable.Build(table)
	if err != nil {
		return nil, err
	}
	return cond.filterTableCoords([]*memtable.MemTable{mt}, 0, table.Index(), []*store.Table{table})
}

// Update applies newValues to every record of table matching cond. Rejects
// setting the key column on more than one matched record at a time (spec
// §4.3/§5), since each would need an independent uniqueness check against
// all the others' pending new values.
func Update(cond *Condition, table *store.Table, newValues []store.NewValue) error {
	ordinals, err := matchingOrdinals(cond, table)
	if err != nil {
		return err
	}

	if table.HasKey() && len(ordinals) > 1 {
		for _, nv := range newValues {
			if nv.Name.Equal(table.Attributes()[table.KeyAttributeIndex()].Name) {
				return dberr.Constraint("cannot set more than one key value at a time")
			}
		}
	}

	for _, n := range ordinals {
		if err := table.UpdateRecord(n, newValues); err != nil {
			return err
		}
	}
	return nil
}

// Delete drops every record of table matching cond.
func Delete(cond *Condition, table *store.Table) error {
	ordinals, err := matchingOrdinals(cond, table)
	if err != nil {
		return err
	}
	return table.DeleteAll(ordinals)
}
