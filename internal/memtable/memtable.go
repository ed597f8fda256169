// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memtable implements the materialized, in-memory view of a table
// (or a join of several) that query execution filters, projects, and
// ultimately renders: spec §4's "MemTable" component.
package memtable

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

// MemTable is a fully materialized relation: its attribute list, every
// record, and a mutable projection mask naming which attributes (and in
// what order) are currently visible.
type MemTable struct {
	Records    [][]value.Data
	Attributes []store.Attribute

	projection []int // indices into Attributes, in display order
}

// Build materializes every live record of tbl, projecting all attributes.
func Build(tbl *store.Table) (*MemTable, error) {
	records, err := tbl.ReadAll()
	if err != nil {
		return nil, err
	}
	return BuildFromRecords(records, tbl.Attributes())
}

// BuildFromRecords wraps an already-materialized record set, e.g. the
// result of a join or a SELECT's filtered output. Rejects a duplicate
// attribute name.
func BuildFromRecords(records [][]value.Data, attributes []store.Attribute) (*MemTable, error) {
	seen := make(map[string]bool, len(attributes))
	for _, a := range attributes {
		if seen[a.Name.Name()] {
			return nil, dberr.Constraint("duplicate attribute name %q in result set", a.Name.Name())
		}
		seen[a.Name.Name()] = true
	}

	projection := make([]int, len(attributes))
	for i := range projection {
		projection[i] = i
	}

	return &MemTable{
		Records:    records,
		Attributes: attributes,
		projection: projection,
	}, nil
}

// Project narrows (and reorders) the visible attribute set to exactly the
// named attributes, in the given order. Fails if a name is not currently
// projected.
func (m *MemTable) Project(names []string) error {
	newProjection := make([]int, 0, len(names))
	for _, want := range names {
		found := false
		for _, attriNum := range m.projection {
			if want == m.Attributes[attriNum].Name.Name() {
				newProjection = append(newProjection, attriNum)
				found = true
				break
			}
		}
		if !found {
			return dberr.Parse("could not find attribute %q to project", want)
		}
	}
	m.projection = newProjection
	return nil
}

// ProjectedAttributes returns the attribute list in current projection order.
func (m *MemTable) ProjectedAttributes() []store.Attribute {
	out := make([]store.Attribute, len(m.projection))
	for i, attriNum := range m.projection {
		out[i] = m.Attributes[attriNum]
	}
	return out
}

// ProjectedRecord returns record recNum with only the projected columns,
// in projection order.
func (m *MemTable) ProjectedRecord(recNum int) []value.Data {
	out := make([]value.Data, len(m.projection))
	for i, attriNum := range m.projection {
		out[i] = m.Records[recNum][attriNum]
	}
	return out
}

// SetKey reorders attributes and records so that keyAttr becomes attribute
// 0, for use by the LET directive's ad-hoc keying. Fails if keyAttr is not
// a projected attribute, or if its values are not unique across records.
func (m *MemTable) SetKey(keyAttr string) error {
	keyNum := -1
	for i, a := range m.ProjectedAttributes() {
		if a.Name.Name() == keyAttr {
			keyNum = i
			break
		}
	}
	if keyNum < 0 {
		return dberr.Parse("could not find attribute %q to use as key", keyAttr)
	}

	seen := make([]value.Data, 0, len(m.Records))
	for _, rec := range m.Records {
		v := rec[m.projection[keyNum]]
		for _, other := range seen {
			if v.Domain() == other.Domain() && v.Equal(other) {
				return dberr.Parse("cannot use %q as key: duplicate value across records", keyAttr)
			}
		}
		seen = append(seen, v)
	}

	m.projection[0], m.projection[keyNum] = m.projection[keyNum], m.projection[0]
	return nil
}

// Render writes the result set as a bordered table via tablewriter,
// including a leading row-number column, or a "Nothing Found." notice when
// there are no records. columnPad, if non-empty, overrides tablewriter's
// default column padding.
func (m *MemTable) Render(w *strings.Builder, columnPad string) {
	if len(m.Records) == 0 {
		w.WriteString("Nothing Found.\n")
		return
	}

	table := tablewriter.NewWriter(w)
	if columnPad != "" {
		table.SetTablePadding(columnPad)
	}
	header := make([]string, 0, len(m.projection)+1)
	header = append(header, "")
	for _, attriNum := range m.projection {
		header = append(header, m.Attributes[attriNum].Name.Name())
	}
	table.SetHeader(header)

	for i := range m.Records {
		row := make([]string, 0, len(m.projection)+1)
		row = append(row, strconv.Itoa(i+1))
		for _, d := range m.ProjectedRecord(i) {
			row = append(row, d.String())
		}
		table.Append(row)
	}
	table.Render()
}
