// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/predicate"
	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

// runUpdate parses `<table> SET <attr>=<lit>, … [WHERE <cond>]`.
func (d *Dispatcher) runUpdate(rest string) error {
	tableName, rest, ok := splitOnKeyword(rest, "set")
	if !ok {
		return dberr.Parse("UPDATE command requires SET clause")
	}
	tableName = strings.TrimSpace(tableName)

	table, ok := d.db.Table(tableName)
	if !ok {
		return dberr.Parse("no table found with the given name")
	}

	assignText, condText := rest, ""
	if before, after, ok := splitOnKeyword(rest, "where"); ok {
		assignText, condText = before, strings.TrimSpace(after)
	}

	newValues, err := parseAssignments(assignText, table)
	if err != nil {
		return err
	}

	cond, err := predicate.Parse(condText)
	if err != nil {
		return err
	}
	return predicate.Update(cond, table, newValues)
}

// parseAssignments parses a comma-separated `attr=literal` list, typing
// each literal by its column's domain.
func parseAssignments(s string, table *store.Table) ([]store.NewValue, error) {
	assignments := splitTopLevelCommas(s)
	newValues := make([]store.NewValue, 0, len(assignments))
	for _, a := range assignments {
		name, lit, ok := strings.Cut(a, "=")
		if !ok {
			return nil, dberr.Parse("malformed SET assignment %q", a)
		}
		name = strings.TrimSpace(name)
		lit = strings.TrimSpace(lit)

		var domain value.Domain
		found := false
		for _, attr := range table.Attributes() {
			if attr.Name.Name() == name {
				domain = attr.Domain
				found = true
				break
			}
		}
		if !found {
			return nil, dberr.Parse("no attribute named %q in table", name)
		}

		id, err := value.NewIdentifier(name)
		if err != nil {
			return nil, err
		}
		val, err := parseLiteralForDomain(lit, domain)
		if err != nil {
			return nil, err
		}
		newValues = append(newValues, store.NewValue{Name: id, Value: val})
	}
	return newValues, nil
}
