// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/value"
)

// runRename parses `<table> (new_attr, …)`, renaming attributes positionally.
func (d *Dispatcher) runRename(rest string) error {
	tableName, listPart := splitWord(rest)
	if tableName == "" || listPart == "" {
		return dberr.Parse("RENAME command requires attribute names")
	}

	table, ok := d.db.Table(strings.TrimSpace(tableName))
	if !ok {
		return dberr.Parse("no table found with the given name")
	}

	names, err := parseParenList(listPart)
	if err != nil {
		return err
	}

	newAttrs := make([]value.Identifier, len(names))
	for i, n := range names {
		id, err := value.NewIdentifier(n)
		if err != nil {
			return err
		}
		newAttrs[i] = id
	}

	if len(table.Attributes()) != len(newAttrs) {
		return dberr.Constraint("incorrect number of attributes found to RENAME table")
	}
	return table.RenameAttributes(newAttrs)
}
