// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value implements minidb's scalar type system: the closed set of
// storage Domains, fixed-width byte codecs for each, and the Identifier
// naming rules shared by table and attribute names.
//
// Every codec here is byte-exact and big-endian, grounded on the original
// MiniDBMS's db_types.rs/relation.rs: Integer is a 4-byte i32, Float is a
// 5-byte i32-plus-signed-fraction-byte, Text is always exactly 100 bytes on
// disk with trailing space padding.
package value

import (
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
)

// Domain is the closed type tag for a stored value.
type Domain uint8

// Domain tags match the on-disk header encoding in spec §4.3: 0=Integer,
// 1=Text, 2=Float.
const (
	Integer Domain = 0
	Text    Domain = 1
	Float   Domain = 2
)

// SizeInBytes returns the fixed storage width of d.
func (d Domain) SizeInBytes() int {
	switch d {
	case Integer:
		return 4
	case Text:
		return 100
	case Float:
		return 5
	default:
		return 0
	}
}

// String renders the domain the way DESCRIBE prints it.
func (d Domain) String() string {
	switch d {
	case Integer:
		return "INTEGER"
	case Text:
		return "TEXT"
	case Float:
		return "FLOAT"
	default:
		return "UNKNOWN"
	}
}

// DomainFromTag decodes a header domain byte, failing with FileFormatError
// on any value outside the closed set.
func DomainFromTag(tag byte) (Domain, error) {
	switch tag {
	case 0:
		return Integer, nil
	case 1:
		return Text, nil
	case 2:
		return Float, nil
	default:
		return 0, dberr.FileFormat("incorrect domain tag %d read from table header", tag)
	}
}

// DomainFromWord parses a CREATE TABLE attribute domain keyword.
func DomainFromWord(word string) (Domain, error) {
	switch strings.ToUpper(word) {
	case "INTEGER":
		return Integer, nil
	case "TEXT":
		return Text, nil
	case "FLOAT":
		return Float, nil
	default:
		return 0, dberr.Parse("unrecognized domain %q", word)
	}
}

// identifierByteWidth is the fixed, space-padded width an Identifier
// occupies in a table header (spec §3: persisted as 19 space-padded bytes).
const identifierByteWidth = 19

// reservedWords are directive and clause keywords that may not be used as
// table or attribute identifiers.
var reservedWords = map[string]bool{
	"create": true, "database": true, "use": true, "table": true,
	"insert": true, "values": true, "select": true, "from": true,
	"where": true, "update": true, "set": true, "delete": true,
	"let": true, "key": true, "rename": true, "describe": true,
	"input": true, "output": true, "exit": true, "all": true,
	"none": true, "and": true, "or": true, "primary": true,
	"integer": true, "text": true, "float": true,
}

// Identifier is a case-folded ASCII-alphanumeric name of length 1..=19 that
// is not a reserved keyword. It is immutable once constructed.
type Identifier struct {
	name string
}

// NewIdentifier validates and case-folds raw into an Identifier.
func NewIdentifier(raw string) (Identifier, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if len(name) == 0 {
		return Identifier{}, dberr.Parse("identifier cannot be an empty string")
	}
	if len(name) > identifierByteWidth {
		return Identifier{}, dberr.Parse("identifier %q cannot be longer than %d characters", raw, identifierByteWidth)
	}
	for _, c := range name {
		if !isASCIIAlphanumeric(c) {
			return Identifier{}, dberr.Parse("identifier %q is not alphanumeric", raw)
		}
	}
	if reservedWords[name] {
		return Identifier{}, dberr.Parse("identifier %q is a reserved keyword", raw)
	}
	return Identifier{name: name}, nil
}

func isASCIIAlphanumeric(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Name returns the case-folded identifier text.
func (id Identifier) Name() string { return id.name }

// Equal reports whether two identifiers denote the same name.
func (id Identifier) Equal(other Identifier) bool { return id.name == other.name }

// EncodeFixed renders id as the 19-byte space-padded on-disk form.
func (id Identifier) EncodeFixed() [identifierByteWidth]byte {
	var buf [identifierByteWidth]byte
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf[:], id.name)
	return buf
}

// DecodeIdentifier parses a fixed-width, space-padded identifier field.
func DecodeIdentifier(b []byte) (Identifier, error) {
	return NewIdentifier(strings.TrimRight(string(b), " "))
}
