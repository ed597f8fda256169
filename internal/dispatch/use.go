// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"strings"

	"github.com/solidcoredata/minidb/internal/database"
	"github.com/solidcoredata/minidb/internal/value"
)

// runUse replaces the active registry wholesale with every table found
// under ./<id>/, per the original's run_use (Database::build).
func (d *Dispatcher) runUse(rest string) error {
	name, err := value.NewIdentifier(strings.TrimSpace(rest))
	if err != nil {
		return err
	}

	db, err := database.Build("./" + name.Name())
	if err != nil {
		return err
	}
	d.db = db
	fmt.Fprintf(d.out, "success!\n")
	return nil
}
