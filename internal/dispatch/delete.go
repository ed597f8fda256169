// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/predicate"
)

// runDelete parses `<table> [WHERE <cond>]`. With a WHERE clause, matching
// rows are culled; without one, the whole table is dropped (spec §6).
func (d *Dispatcher) runDelete(rest string) error {
	tableName, condText := rest, ""
	hasWhere := false
	if before, after, ok := splitOnKeyword(rest, "where"); ok {
		tableName, condText = before, strings.TrimSpace(after)
		hasWhere = true
	}
	tableName = strings.TrimSpace(tableName)
	if tableName == "" {
		return dberr.Parse("DELETE requires a table name")
	}

	table, ok := d.db.Table(tableName)
	if !ok {
		return dberr.Parse("no table found with the given name")
	}

	if !hasWhere {
		if err := d.db.DropTable(tableName); err != nil {
			return err
		}
		fmt.Fprintf(d.out, "success!\n")
		return nil
	}

	cond, err := predicate.Parse(condText)
	if err != nil {
		return err
	}
	return predicate.Delete(cond, table)
}
