// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dberr classifies the error kinds minidb's dispatcher distinguishes
// when deciding whether a failed command leaves the REPL running or forces a
// best-effort save and exit.
package dberr

import "github.com/cockroachdb/errors"

// Sentinel kinds. Wrap a more specific error with errors.Wrapf(ErrParse, ...)
// (or errors.Mark for an error that already carries its own message) so that
// errors.Is(err, ErrParse) keeps working after the error is wrapped further
// up the call stack.
var (
	// ErrParse marks malformed syntax: unknown directive, missing clause,
	// unquoted text literal, identifier out of range.
	ErrParse = errors.New("parse error")

	// ErrConstraint marks a violated data constraint: duplicate identifier,
	// cross-domain comparison, duplicate primary-key value, setting the key
	// of multiple rows to the same literal, unresolved attribute name,
	// domain mismatch in a constraint.
	ErrConstraint = errors.New("constraint error")

	// ErrFileFormat marks unexpected bytes while decoding a header, domain
	// tag, or float encoding.
	ErrFileFormat = errors.New("file format error")

	// ErrIndexInsert marks a key-index insert rejected because the key is
	// already present or its encoded length exceeds the 255-byte prefix.
	ErrIndexInsert = errors.New("index insert error")

	// ErrIO marks an underlying filesystem failure severe enough that the
	// dispatcher should attempt a best-effort save and terminate.
	ErrIO = errors.New("io error")
)

// Parse wraps as an ErrParse, using format and args as the message.
func Parse(format string, args ...interface{}) error {
	return errors.Wrapf(ErrParse, format, args...)
}

// Constraint wraps as an ErrConstraint.
func Constraint(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConstraint, format, args...)
}

// FileFormat wraps as an ErrFileFormat.
func FileFormat(format string, args ...interface{}) error {
	return errors.Wrapf(ErrFileFormat, format, args...)
}

// IndexInsert wraps as an ErrIndexInsert.
func IndexInsert(format string, args ...interface{}) error {
	return errors.Wrapf(ErrIndexInsert, format, args...)
}

// IO wraps err as an ErrIO, attaching a stack trace and message.
func IO(err error, format string, args ...interface{}) error {
	if err == nil {
		return errors.Wrapf(ErrIO, format, args...)
	}
	return errors.Wrapf(errors.Mark(err, ErrIO), format, args...)
}

// Recoverable reports whether err leaves persistent state safe to continue
// from: ParseError, ConstraintError, and IndexInsertError are reported to
// the user and the REPL continues with the next command. Anything else is
// treated as potentially corrupting.
func Recoverable(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, ErrConstraint) || errors.Is(err, ErrIndexInsert)
}
