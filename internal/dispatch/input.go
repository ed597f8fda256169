// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"os"
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
)

// runInput parses `<file> [OUTPUT <file>]`, executing the named script
// against the current registry. Output is redirected to the named file for
// the script's duration if OUTPUT is given, else it stays on d.out.
func (d *Dispatcher) runInput(rest string) error {
	inputPath, rest := splitWord(rest)
	if inputPath == "" {
		return dberr.Parse("INPUT requires a file path")
	}

	outputPath := ""
	if word, after := splitWord(rest); word == "output" {
		outputPath = strings.TrimSpace(after)
	}

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return dberr.IO(err, "reading input script %s", inputPath)
	}

	if outputPath == "" {
		return d.RunSource(string(src))
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return dberr.IO(err, "creating output file %s", outputPath)
	}
	defer f.Close()

	prevOut := d.out
	d.out = f
	defer func() { d.out = prevOut }()

	return d.RunSource(string(src))
}
