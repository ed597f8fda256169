// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package database implements the table registry: discovering a
// directory's `.dat` files, adopting their sibling `.index` files, and the
// CREATE DATABASE / USE directives that switch the registry's root wholesale.
package database

import (
	"log"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

// Database is the active directory's table registry.
type Database struct {
	path  string
	table map[string]*store.Table
}

// New returns a registry with no active directory, matching the engine's
// state before the first USE or CREATE DATABASE.
func New() *Database {
	return &Database{table: make(map[string]*store.Table)}
}

// Path returns the active database directory, or "" if none is selected.
func (db *Database) Path() string { return db.path }

// Table looks up a table by name.
func (db *Database) Table(name string) (*store.Table, bool) {
	t, ok := db.table[name]
	return t, ok
}

// Tables returns every table name currently registered, in no particular
// order.
func (db *Database) Tables() []string {
	names := make([]string, 0, len(db.table))
	for name := range db.table {
		names = append(names, name)
	}
	return names
}

// AddTable registers a newly built table under name.
func (db *Database) AddTable(name string, t *store.Table) {
	db.table[name] = t
}

// Build replaces the registry wholesale with every table found in dir:
// every sibling (<name>.dat, <name>.index) pair is loaded via
// store.ReadFromFile, matching the original's Database::build, which
// discards the previous table map entirely rather than merging
// (SPEC_FULL.md §12).
func Build(dir string) (*Database, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, dberr.IO(err, "reading database directory %s", dir)
	}

	table := make(map[string]*store.Table)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".dat") {
			continue
		}
		tableName := strings.TrimSuffix(name, ".dat")
		t, err := store.ReadFromFile(tableName, dir)
		if err != nil {
			return nil, err
		}
		table[tableName] = t
	}

	warnOnSchemaFingerprintCollisions(table)

	return &Database{path: dir, table: table}, nil
}

// CreateDatabase ensures dir exists, creating it if necessary. It is
// idempotent: an already-existing directory is reported as informational,
// not an error (SPEC_FULL.md §12, grounded on db_cmds/create.rs's
// create_database).
func CreateDatabase(name string) (alreadyExisted bool, err error) {
	if _, err := value.NewIdentifier(name); err != nil {
		return false, err
	}
	dir := "./" + name

	if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
		return true, nil
	}
	if err := os.Mkdir(dir, 0o755); err != nil {
		return false, dberr.IO(err, "creating database directory %s", dir)
	}
	return false, nil
}

// schemaFingerprint hashes a table's attribute list (name, domain pairs in
// order) for the in-memory diagnostic described in SPEC_FULL.md §11. It is
// never persisted.
func schemaFingerprint(t *store.Table) uint64 {
	h := xxhash.New()
	for _, a := range t.Attributes() {
		h.WriteString(a.Name.Name())
		h.Write([]byte{byte(a.Domain)})
	}
	return h.Sum64()
}

// warnOnSchemaFingerprintCollisions logs a diagnostic when two distinctly
// named tables in the freshly loaded registry share an identical attribute
// schema. Harmless, but often signals a copy-pasted CREATE TABLE; never a
// hard error.
func warnOnSchemaFingerprintCollisions(table map[string]*store.Table) {
	seenBy := make(map[uint64]string, len(table))
	for name, t := range table {
		fp := schemaFingerprint(t)
		if other, ok := seenBy[fp]; ok {
			log.Printf("minidb: tables %q and %q share an identical schema", other, name)
			continue
		}
		seenBy[fp] = name
	}
}

// PersistAll flushes every table's record count and key index to disk, used
// at EXIT and as the best-effort save attempted before an unrecoverable
// error terminates the dispatcher (spec §6/§7).
func (db *Database) PersistAll() error {
	for _, t := range db.table {
		if err := t.PersistRecordCount(); err != nil {
			return err
		}
		if err := t.WriteIndex(); err != nil {
			return err
		}
	}
	return nil
}

// DropTable removes a table's files and unregisters it.
func (db *Database) DropTable(name string) error {
	t, ok := db.table[name]
	if !ok {
		return dberr.Parse("no table found with the given name")
	}
	if err := t.CleanUp(); err != nil {
		return err
	}
	delete(db.table, name)
	return nil
}
