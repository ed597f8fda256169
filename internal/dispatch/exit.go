// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"strings"
)

// runExit persists every table's record count and key index, then returns
// the Exit sentinel for the caller to act on (spec §6: EXIT terminates the
// process with code 0 once persistence succeeds).
func (d *Dispatcher) runExit(rest string) error {
	if strings.TrimSpace(rest) != "" {
		fmt.Fprintln(d.out, "EXIT command does not take arguments.")
	}
	fmt.Fprintln(d.out, "saving indices and table sizes")
	if err := d.db.PersistAll(); err != nil {
		return err
	}
	fmt.Fprintln(d.out, "program end")
	return Exit
}

// PersistAll flushes the active registry's record counts and indexes,
// without returning the Exit sentinel — used for the best-effort save
// before the dispatcher's caller terminates on an unrecoverable error
// (spec §7).
func (d *Dispatcher) PersistAll() error {
	return d.db.PersistAll()
}
