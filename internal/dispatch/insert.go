// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/value"
)

// runInsert parses `<table> VALUES (v, …)`, typing each literal by its
// column's domain, and appends the record.
func (d *Dispatcher) runInsert(rest string) error {
	tableName, listPart, ok := splitOnKeyword(rest, "values")
	if !ok {
		return dberr.Parse("invalid arguments for INSERT")
	}
	tableName = strings.TrimSpace(tableName)

	table, ok := d.db.Table(tableName)
	if !ok {
		return dberr.Parse("no table found with the given name")
	}

	literals, err := parseParenList(listPart)
	if err != nil {
		return err
	}
	attrs := table.Attributes()
	if len(literals) != len(attrs) {
		return dberr.Constraint("INSERT has %d values, table has %d attributes", len(literals), len(attrs))
	}

	record := make([]value.Data, len(literals))
	for i, lit := range literals {
		d, err := parseLiteralForDomain(lit, attrs[i].Domain)
		if err != nil {
			return err
		}
		record[i] = d
	}

	return table.WriteSingleRecord(record)
}

// parseLiteralForDomain parses a literal token as domain's exact type,
// rejecting any other shape (e.g. an unquoted string for Text).
func parseLiteralForDomain(lit string, domain value.Domain) (value.Data, error) {
	switch domain {
	case value.Integer:
		return value.NewIntegerFromText(lit)
	case value.Float:
		return value.NewFloatFromText(lit)
	case value.Text:
		if len(lit) < 2 || !strings.HasPrefix(lit, `"`) || !strings.HasSuffix(lit, `"`) {
			return value.Data{}, dberr.Parse("string literal expected; wrap text values in double quotes")
		}
		return value.NewText(lit[1 : len(lit)-1])
	default:
		return value.Data{}, dberr.Parse("unrecognized domain")
	}
}

// splitOnKeyword splits s on the first standalone occurrence of keyword
// (surrounded by whitespace or string boundaries), returning the text
// before and after it.
func splitOnKeyword(s, keyword string) (before, after string, ok bool) {
	for from := 0; ; {
		idx := strings.Index(s[from:], keyword)
		if idx < 0 {
			return "", "", false
		}
		idx += from
		end := idx + len(keyword)
		if (idx == 0 || strings.IndexByte(" \t\n", s[idx-1]) >= 0) &&
			(end == len(s) || strings.IndexByte(" \t\n", s[end]) >= 0) {
			return s[:idx], s[end:], true
		}
		from = idx + 1
	}
}
