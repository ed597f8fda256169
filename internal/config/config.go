// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the engine's ambient, non-persisted settings: the
// default database root, whether the REPL echoes commands before running
// them, and the column padding character used when rendering results. None
// of these fields may influence the on-disk byte layout in internal/store —
// they are presentation and ergonomics only.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/solidcoredata/minidb/internal/dberr"
)

// Config is the ambient engine configuration, loaded from an optional TOML
// file.
type Config struct {
	// DataDir is the default database root directory, used when no
	// --datadir flag is given.
	DataDir string `toml:"data_dir"`

	// EchoCommands, if true, prints each command before executing it —
	// useful when running a script non-interactively.
	EchoCommands bool `toml:"echo_commands"`

	// ColumnPad is the single rune tablewriter pads column values with.
	// An empty value means tablewriter's own default.
	ColumnPad string `toml:"column_pad"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{DataDir: ".", EchoCommands: false}
}

// Load reads and parses path, starting from Default() so a partial file
// only overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, dberr.Parse("reading config file %s: %v", path, err)
	}
	return cfg, nil
}
