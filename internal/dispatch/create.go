// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"strings"

	"github.com/solidcoredata/minidb/internal/database"
	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

func (d *Dispatcher) runCreate(rest string) error {
	sub, rest := splitWord(rest)
	switch sub {
	case "database":
		return d.runCreateDatabase(rest)
	case "table":
		return d.runCreateTable(rest)
	default:
		return dberr.Parse("syntax error after directive CREATE")
	}
}

// runCreateDatabase ensures the directory exists and, matching the
// original's create_database (which sets db.path directly rather than
// requiring a separate USE), makes it the active registry immediately.
func (d *Dispatcher) runCreateDatabase(rest string) error {
	name := strings.TrimSpace(rest)
	existed, err := database.CreateDatabase(name)
	if err != nil {
		return err
	}
	if existed {
		fmt.Fprintf(d.out, "a database with the given name exists already\n")
	} else {
		fmt.Fprintf(d.out, "success!\n")
	}

	db, err := database.Build("./" + name)
	if err != nil {
		return err
	}
	d.db = db
	return nil
}

// runCreateTable parses `<id> (attr domain [primary key], …)`. Every
// attribute definition, not only the first, is scanned for a trailing
// PRIMARY KEY marker (SPEC_FULL.md's CREATE TABLE PRIMARY KEY grammar
// decision): the grammar `(attr domain [PRIMARY KEY], …)` attaches the
// marker to each individual pair, not just the first.
func (d *Dispatcher) runCreateTable(rest string) error {
	if d.db.Path() == "" {
		return dberr.Parse("database path not set; run USE before table creation")
	}

	tableName, rest := splitWord(rest)
	if tableName == "" {
		return dberr.Parse("not enough arguments for CREATE TABLE")
	}

	defs, err := parseParenList(rest)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return dberr.Parse("attribute list must not be empty")
	}

	attributes := make([]store.Attribute, 0, len(defs))
	hasKey := false
	keyAttrIndex := 0

	for i, def := range defs {
		fields := strings.Fields(def)
		if len(fields) < 2 {
			return dberr.Parse("did not find a domain for an attribute in the list")
		}
		name, err := value.NewIdentifier(fields[0])
		if err != nil {
			return err
		}
		domain, err := value.DomainFromWord(fields[1])
		if err != nil {
			return err
		}

		switch len(fields) {
		case 2:
			// no primary key marker
		case 4:
			if strings.ToLower(fields[2]) != "primary" || strings.ToLower(fields[3]) != "key" {
				return dberr.Parse("did not recognize trailing tokens in attribute definition %q", def)
			}
			if hasKey {
				return dberr.Constraint("at most one attribute may be PRIMARY KEY")
			}
			hasKey = true
			keyAttrIndex = i
		default:
			return dberr.Parse("did not recognize trailing tokens in attribute definition %q", def)
		}

		attributes = append(attributes, store.Attribute{Name: name, Domain: domain})
	}

	tbl, err := store.Build(tableName, attributes, hasKey, keyAttrIndex, d.db.Path())
	if err != nil {
		return err
	}
	d.db.AddTable(tableName, tbl)
	fmt.Fprintf(d.out, "success!\n")
	return nil
}
