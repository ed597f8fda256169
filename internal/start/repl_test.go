// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package start_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/minidb/internal/config"
	"github.com/solidcoredata/minidb/internal/dispatch"
	"github.com/solidcoredata/minidb/internal/start"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { require.NoError(t, os.Chdir(cwd)) })
}

func TestScriptRunsToExit(t *testing.T) {
	chdirTemp(t)
	var out strings.Builder
	d := dispatch.New(config.Default(), &out)

	err := start.Script(d, `
		create database shop;
		use shop;
		create table t (n integer);
		insert t values (1);
		exit;
	`)
	require.NoError(t, err)
	require.Contains(t, out.String(), "program end")
}

func TestInteractiveStopsAtExit(t *testing.T) {
	chdirTemp(t)
	var out strings.Builder
	d := dispatch.New(config.Default(), &out)

	in := strings.NewReader("create database shop; use shop; exit;\n")
	err := start.Interactive(context.Background(), d, in, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "program end")
}

func TestInteractiveReportsRecoverableAndContinues(t *testing.T) {
	chdirTemp(t)
	var out strings.Builder
	d := dispatch.New(config.Default(), &out)

	in := strings.NewReader("create database shop; use shop; create table t (n integer); select bogus from t; insert t values (1); exit;\n")
	err := start.Interactive(context.Background(), d, in, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "error:")
	require.Contains(t, out.String(), "program end")
}
