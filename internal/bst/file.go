// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bst

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/value"
)

// WriteToFile truncates path and writes every node in in-order traversal as
// `[key_len: u8][key_bytes][payload: u64 big-endian]`. EOF is the only
// framing; there is no trailing count or checksum.
func (t *Tree) WriteToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return dberr.IO(err, "creating index file %s", path)
	}
	defer f.Close()

	w := &indexWriter{f: f}
	w.writeInOrder(t.root)
	if w.err != nil {
		return dberr.IO(w.err, "writing index file %s", path)
	}
	if err := f.Sync(); err != nil {
		return dberr.IO(err, "syncing index file %s", path)
	}
	return nil
}

type indexWriter struct {
	f   io.Writer
	err error
}

func (w *indexWriter) writeInOrder(n *node) {
	if n == nil || w.err != nil {
		return
	}
	w.writeInOrder(n.left)
	if w.err != nil {
		return
	}

	encoded, err := n.key.EncodeKey()
	if err != nil {
		w.err = err
		return
	}
	var hdr [9]byte
	hdr[0] = byte(len(encoded))
	binary.BigEndian.PutUint64(hdr[1:9], n.payload)

	if _, err := w.f.Write(hdr[:1]); err != nil {
		w.err = err
		return
	}
	if _, err := w.f.Write(encoded); err != nil {
		w.err = err
		return
	}
	if _, err := w.f.Write(hdr[1:9]); err != nil {
		w.err = err
		return
	}

	w.writeInOrder(n.right)
}

// ReadFromFile decodes the in-order byte stream at path into a linear
// sequence of entries, then rebuilds a balanced tree from it via recursive
// midpoint split (see fromEntries).
func ReadFromFile(path string) (*Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, dberr.IO(err, "reading index file %s", path)
	}

	var entries []entry
	pos := 0
	for pos < len(raw) {
		keyLen := int(raw[pos])
		pos++
		if pos+keyLen+8 > len(raw) {
			return nil, dberr.FileFormat("index file %s truncated mid-record", path)
		}
		keyBytes := raw[pos : pos+keyLen]
		pos += keyLen
		payload := binary.BigEndian.Uint64(raw[pos : pos+8])
		pos += 8

		key, err := value.DecodeKey(keyBytes)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: key, payload: payload})
	}

	return &Tree{root: fromEntries(entries)}, nil
}
