// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package start

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/solidcoredata/minidb/internal/dispatch"
)

// Interactive reads a semicolon-terminated command at a time from in and
// runs it against d, printing a "> " prompt before each read and stopping
// on EXIT, EOF, or ctx cancellation. On cancellation or an unrecoverable
// command error it attempts a best-effort save (spec §7) before returning.
func Interactive(ctx context.Context, d *dispatch.Dispatcher, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	var pending strings.Builder

	for {
		select {
		case <-ctx.Done():
			return d.PersistAll()
		default:
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		pending.WriteString(scanner.Text())
		pending.WriteByte('\n')

		if !strings.Contains(pending.String(), ";") {
			continue
		}

		src := pending.String()
		pending.Reset()

		err := d.RunSource(src)
		if err == nil {
			continue
		}
		if err == dispatch.Exit {
			return nil
		}
		if saveErr := d.PersistAll(); saveErr != nil {
			fmt.Fprintf(out, "error during best-effort save: %v\n", saveErr)
		}
		return err
	}
}

// Script runs the entirety of src against d in one pass (the non-
// interactive counterpart of Interactive, used by `minidb run`), applying
// the same best-effort save on an unrecoverable error.
func Script(d *dispatch.Dispatcher, src string) error {
	err := d.RunSource(src)
	if err == nil || err == dispatch.Exit {
		return nil
	}
	if saveErr := d.PersistAll(); saveErr != nil {
		return saveErr
	}
	return err
}
