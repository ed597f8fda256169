// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/minidb/internal/config"
)

func TestLoadNoFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minidb.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "/var/lib/minidb"
echo_commands = true
column_pad = "~"
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/minidb", cfg.DataDir)
	require.True(t, cfg.EchoCommands)
	require.Equal(t, "~", cfg.ColumnPad)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load("/no/such/file.toml")
	require.Error(t, err)
}
