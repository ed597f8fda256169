// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/store"
)

// runLet parses `<new> KEY <attr|NONE> SELECT …`, runs the embedded SELECT,
// and persists its (possibly re-keyed) result as a new table.
func (d *Dispatcher) runLet(rest string) error {
	newName, rest, ok := splitOnKeyword(rest, "key")
	if !ok {
		return dberr.Parse("LET command requires a KEY clause")
	}
	newName = strings.TrimSpace(newName)

	keyWord, selectRest, ok := splitOnKeyword(rest, "select")
	if !ok {
		return dberr.Parse("LET command requires a SELECT clause")
	}
	keyWord = strings.TrimSpace(keyWord)

	mt, err := d.parseSelect(selectRest)
	if err != nil {
		return err
	}

	hasKey := keyWord != "none"
	if hasKey {
		if err := mt.SetKey(keyWord); err != nil {
			return err
		}
	}

	attrs := mt.ProjectedAttributes()
	tbl, err := store.Build(newName, attrs, hasKey, 0, d.db.Path())
	if err != nil {
		return err
	}

	for i := range mt.Records {
		if err := tbl.WriteRecord(mt.ProjectedRecord(i)); err != nil {
			return err
		}
	}
	if err := tbl.PersistRecordCount(); err != nil {
		return err
	}

	d.db.AddTable(newName, tbl)
	fmt.Fprintf(d.out, "success!\n")
	return nil
}
