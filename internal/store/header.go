// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"encoding/binary"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/value"
)

// encodeHeader renders the fixed header described in SPEC_FULL.md §4.3:
//
//	offset 0:  u64  key_attribute_index (0 if no key)
//	offset 8:  u64  attribute_count = A
//	offset 16: A*20 attribute entries (19-byte identifier, 1-byte domain tag)
//	offset 16+20A: u64 record_count
func encodeHeader(attributes []Attribute, hasKey bool, keyAttrIndex int, recordCount uint64) ([]byte, error) {
	buf := make([]byte, metaOffset(len(attributes)))

	keyIdx := uint64(0)
	if hasKey {
		keyIdx = uint64(keyAttrIndex)
	}
	binary.BigEndian.PutUint64(buf[0:8], keyIdx)
	binary.BigEndian.PutUint64(buf[8:16], uint64(len(attributes)))

	for i, a := range attributes {
		off := 16 + i*20
		encoded := a.Name.EncodeFixed()
		copy(buf[off:off+19], encoded[:])
		buf[off+19] = byte(a.Domain)
	}

	binary.BigEndian.PutUint64(buf[len(buf)-8:], recordCount)
	return buf, nil
}

// decodedHeader is the parsed form of a table file's fixed header.
type decodedHeader struct {
	keyAttrIndex int
	attributes   []Attribute
	recordCount  uint64
	metaOffset   int64
}

func decodeHeader(raw []byte) (decodedHeader, error) {
	if len(raw) < 16 {
		return decodedHeader{}, dberr.FileFormat("table header truncated")
	}
	keyAttrIndex := binary.BigEndian.Uint64(raw[0:8])
	attrCount := binary.BigEndian.Uint64(raw[8:16])

	off := metaOffset(int(attrCount))
	if int64(len(raw)) < off {
		return decodedHeader{}, dberr.FileFormat("table header truncated: expected %d bytes, got %d", off, len(raw))
	}

	attributes := make([]Attribute, attrCount)
	for i := range attributes {
		entryOff := 16 + i*20
		identifier, err := value.DecodeIdentifier(raw[entryOff : entryOff+19])
		if err != nil {
			return decodedHeader{}, err
		}
		domain, err := value.DomainFromTag(raw[entryOff+19])
		if err != nil {
			return decodedHeader{}, err
		}
		attributes[i] = Attribute{Name: identifier, Domain: domain}
	}

	recordCount := binary.BigEndian.Uint64(raw[off-8 : off])

	return decodedHeader{
		keyAttrIndex: int(keyAttrIndex),
		attributes:   attributes,
		recordCount:  recordCount,
		metaOffset:   off,
	}, nil
}
