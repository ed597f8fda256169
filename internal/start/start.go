// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package start runs the REPL/script loop under a cancelable context, so
// an interrupt (Ctrl-C) triggers the same best-effort save path as an
// unrecoverable command error, instead of an abrupt kill. It does not
// introduce concurrency into command execution: one command still
// completes before the next begins, this only lets the loop observe
// cancellation between commands.
package start

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// StartFunc is the unit of work Start supervises: cmd/minidb passes the
// REPL loop here.
type StartFunc func(ctx context.Context) error

// Start runs run under a context that is canceled on os.Interrupt, waits up
// to stopTimeout for run to notice cancellation and return, then reports
// run's error (if any).
func Start(ctx context.Context, stopTimeout time.Duration, run StartFunc) error {
	notify := make(chan os.Signal, 3)
	signal.Notify(notify, os.Interrupt)
	ctx, cancel := context.WithCancel(ctx)
	once := &sync.Once{}
	fin := make(chan bool)
	unlock := func() {
		close(fin)
	}
	unlockOnce := func() {
		once.Do(unlock)
	}
	runErr := atomic.Value{}
	go func() {
		err := run(ctx)
		if err != nil {
			runErr.Store(err)
		}
		unlockOnce()
	}()
	select {
	case <-notify:
	case <-fin:
	}
	cancel()
	go func() {
		<-time.After(stopTimeout)
		unlockOnce()
	}()
	<-fin
	if err, ok := runErr.Load().(error); ok {
		return err
	}
	return nil
}

// RunAll runs every run concurrently under a shared, first-error-cancels
// context, and waits for all of them to return.
func RunAll(ctx context.Context, runs ...func(ctx context.Context) error) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, run := range runs {
		run := run
		group.Go(func() error { return run(ctx) })
	}

	return group.Wait()
}
