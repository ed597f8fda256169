// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/store"
)

// runDescribe parses `<table|all>` and prints each named table's attribute
// listing.
func (d *Dispatcher) runDescribe(rest string) error {
	tableName := strings.TrimSpace(rest)
	if tableName == "" {
		return dberr.Parse("DESCRIBE requires at least one argument")
	}

	if tableName != "all" {
		table, ok := d.db.Table(tableName)
		if !ok {
			return dberr.Parse("table name not found in current database")
		}
		d.printDescribe(tableName, table)
		return nil
	}

	names := d.db.Tables()
	sort.Strings(names)
	for _, name := range names {
		table, _ := d.db.Table(name)
		d.printDescribe(name, table)
	}
	return nil
}

// printDescribe renders one row per attribute (the upper-cased name and its
// domain in one cell, e.g. "GIVEN TEXT", and a PRIMARY KEY marker on
// whichever attribute is keyed — the key may be at any position, not only
// the first), grounded on the original's
// print_attributes, using the same tablewriter formatting MemTable results
// render with (SPEC_FULL.md §10.5).
func (d *Dispatcher) printDescribe(name string, table *store.Table) {
	fmt.Fprintln(d.out, name)

	var b strings.Builder
	t := tablewriter.NewWriter(&b)
	if d.cfg.ColumnPad != "" {
		t.SetTablePadding(d.cfg.ColumnPad)
	}
	t.SetHeader([]string{"Attribute", "Key"})
	for i, a := range table.Attributes() {
		marker := ""
		if table.HasKey() && i == table.KeyAttributeIndex() {
			marker = "PRIMARY KEY"
		}
		t.Append([]string{strings.ToUpper(a.Name.Name()) + " " + a.Domain.String(), marker})
	}
	t.Render()
	d.out.Write([]byte(b.String()))
}
