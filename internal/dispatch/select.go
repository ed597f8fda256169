// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/memtable"
	"github.com/solidcoredata/minidb/internal/predicate"
	"github.com/solidcoredata/minidb/internal/store"
)

// parseSelect parses `<attrs|ALL> FROM <t1,…> [WHERE <cond>]` and runs the
// query, returning the resulting MemTable.
func (d *Dispatcher) parseSelect(rest string) (*memtable.MemTable, error) {
	attrList, rest, ok := splitOnKeyword(rest, "from")
	if !ok {
		return nil, dberr.Parse("SELECT command requires FROM clause")
	}

	tableList, condText := rest, ""
	if before, after, ok := splitOnKeyword(rest, "where"); ok {
		tableList, condText = before, strings.TrimSpace(after)
	}

	selectAttrs := splitAndTrim(attrList, ",")
	tableNames := splitAndTrim(tableList, ",")

	tables := make([]*store.Table, 0, len(tableNames))
	for _, name := range tableNames {
		t, ok := d.db.Table(name)
		if !ok {
			return nil, dberr.Parse("no table found with the given name %q", name)
		}
		tables = append(tables, t)
	}

	cond, err := predicate.Parse(condText)
	if err != nil {
		return nil, err
	}

	mt, err := predicate.Select(cond, tables)
	if err != nil {
		return nil, err
	}

	if len(selectAttrs) != 1 || selectAttrs[0] != "all" {
		if err := mt.Project(selectAttrs); err != nil {
			return nil, err
		}
	}
	return mt, nil
}

func (d *Dispatcher) runSelect(rest string) error {
	mt, err := d.parseSelect(rest)
	if err != nil {
		return err
	}
	var b strings.Builder
	mt.Render(&b, d.cfg.ColumnPad)
	_, err = d.out.Write([]byte(b.String()))
	return err
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
