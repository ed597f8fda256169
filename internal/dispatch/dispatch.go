// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch implements the command surface: a lexer that splits
// semicolon-terminated source into individual commands, and one handler per
// directive that resolves table names against an internal/database registry
// and drives internal/predicate, internal/store, and internal/memtable to
// carry out the command.
package dispatch

import (
	"fmt"
	"io"

	"github.com/solidcoredata/minidb/internal/config"
	"github.com/solidcoredata/minidb/internal/database"
	"github.com/solidcoredata/minidb/internal/dberr"
)

// exitSignal is a distinct error type for the EXIT directive. It is never
// classified by dberr.Recoverable, so RunSource and its callers in
// internal/start must check for it (via the Exit value below) before
// consulting dberr.Recoverable.
type exitSignal struct{}

func (exitSignal) Error() string { return "exit" }

// Exit is the sentinel returned by Execute when the EXIT directive runs.
var Exit error = exitSignal{}

// Dispatcher holds the active database registry and executes commands
// against it.
type Dispatcher struct {
	db  *database.Database
	out io.Writer
	cfg config.Config
}

// New returns a Dispatcher with no database selected, writing command
// output to out.
func New(cfg config.Config, out io.Writer) *Dispatcher {
	return &Dispatcher{db: database.New(), out: out, cfg: cfg}
}

// RunSource splits src into commands and executes them in order, stopping
// at the first command that returns a non-recoverable error or EXIT.
// Recoverable errors (dberr.Recoverable) are reported to out and execution
// continues with the next command, matching the REPL's error policy
// (spec §7).
func (d *Dispatcher) RunSource(src string) error {
	for _, cmd := range splitCommands(src) {
		if d.cfg.EchoCommands {
			fmt.Fprintf(d.out, "> %s\n", cmd)
		}
		err := d.Execute(cmd)
		if err == nil {
			continue
		}
		if err == Exit {
			return Exit
		}
		if dberr.Recoverable(err) {
			fmt.Fprintf(d.out, "error: %v\n", err)
			continue
		}
		return err
	}
	return nil
}

// Execute runs a single command (already case-folded and semicolon-
// stripped, e.g. by splitCommands). directive is the first whitespace-
// delimited token; the remainder is passed to the matching handler.
func (d *Dispatcher) Execute(cmd string) error {
	directive, rest := splitWord(cmd)
	switch directive {
	case "create":
		return d.runCreate(rest)
	case "use":
		return d.runUse(rest)
	case "describe":
		return d.runDescribe(rest)
	case "select":
		return d.runSelect(rest)
	case "insert":
		return d.runInsert(rest)
	case "update":
		return d.runUpdate(rest)
	case "delete":
		return d.runDelete(rest)
	case "let":
		return d.runLet(rest)
	case "rename":
		return d.runRename(rest)
	case "input":
		return d.runInput(rest)
	case "exit":
		return d.runExit(rest)
	case "":
		return nil
	default:
		return dberr.Parse("unrecognized command directive %q", directive)
	}
}
