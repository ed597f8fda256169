// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/minidb/internal/config"
	"github.com/solidcoredata/minidb/internal/dispatch"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { require.NoError(t, os.Chdir(cwd)) })
}

func newDispatcher(out *strings.Builder) *dispatch.Dispatcher {
	return dispatch.New(config.Default(), out)
}

// S1 — Index fast path.
func TestIndexFastPath(t *testing.T) {
	chdirTemp(t)
	var out strings.Builder
	d := newDispatcher(&out)

	require.NoError(t, d.RunSource(`
		create database shop;
		use shop;
		create table parts (pid integer primary key, name text);
		insert parts values (1, "a");
		insert parts values (2, "b");
		insert parts values (3, "c");
	`))

	out.Reset()
	require.NoError(t, d.Execute(`select name from parts where pid = 2`))
	require.Contains(t, out.String(), "b")
}

// S2 — Compacting delete.
func TestCompactingDelete(t *testing.T) {
	chdirTemp(t)
	var out strings.Builder
	d := newDispatcher(&out)

	require.NoError(t, d.RunSource(`
		create database shop;
		use shop;
		create table nums (n integer primary key);
		insert nums values (3);
		insert nums values (1);
		insert nums values (4);
	`))

	err := d.Execute(`insert nums values (1)`)
	require.Error(t, err)

	require.NoError(t, d.Execute(`delete nums where n < 4`))

	out.Reset()
	require.NoError(t, d.Execute(`select all from nums`))
	require.Contains(t, out.String(), "4")
}

// S3 — Cross-table join.
func TestCrossTableJoin(t *testing.T) {
	chdirTemp(t)
	var out strings.Builder
	d := newDispatcher(&out)

	require.NoError(t, d.RunSource(`
		create database shop;
		use shop;
		create table a (x integer primary key);
		create table b (y integer primary key);
		insert a values (1);
		insert a values (2);
		insert b values (10);
		insert b values (20);
	`))

	out.Reset()
	require.NoError(t, d.Execute(`select x,y from a,b where x=1 or y=20`))
	rendered := out.String()
	require.Contains(t, rendered, "10")
	require.Contains(t, rendered, "20")
}

// S4 — LET materialization with key reassignment.
func TestLetMaterialization(t *testing.T) {
	chdirTemp(t)
	var out strings.Builder
	d := newDispatcher(&out)

	require.NoError(t, d.RunSource(`
		create database shop;
		use shop;
		create table orders (oid integer primary key, cust text);
		insert orders values (1, "al");
		insert orders values (2, "bo");
		let custonly key cust select cust from orders;
	`))

	err := d.Execute(`insert custonly values ("al")`)
	require.Error(t, err)
}

// S6 — Rename, exit, and re-open.
func TestRenameAndReopen(t *testing.T) {
	chdirTemp(t)
	var out strings.Builder
	d := newDispatcher(&out)

	require.NoError(t, d.RunSource(`
		create database shop;
		use shop;
		create table people (first text, last text);
		insert people values ("ada", "lovelace");
		rename people (given, family);
	`))

	err := d.Execute(`exit`)
	require.ErrorIs(t, err, dispatch.Exit)

	d2 := newDispatcher(&out)
	require.NoError(t, d2.Execute(`use shop`))

	out.Reset()
	require.NoError(t, d2.Execute(`describe people`))
	require.Contains(t, out.String(), "GIVEN TEXT")
	require.Contains(t, out.String(), "FAMILY TEXT")
}

func TestRecoverableErrorContinuesScript(t *testing.T) {
	chdirTemp(t)
	var out strings.Builder
	d := newDispatcher(&out)

	require.NoError(t, d.RunSource(`
		create database shop;
		use shop;
		create table t (n integer);
		select bogus from t;
		insert t values (1);
	`))

	out.Reset()
	require.NoError(t, d.Execute(`select all from t`))
	require.Contains(t, out.String(), "1")
}
