// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bst implements the key index: a binary search tree mapping a
// typed value.Data key to a record ordinal, persisted as an in-order byte
// stream and rebalanced by recursive midpoint split on load.
//
// Grounded on the original MiniDBMS's binary_search_tree.rs, generalized
// from string keys to typed value.Data keys per the data model in
// SPEC_FULL.md §4.1/§4.2, and reworked from Rust's borrow-checked
// Option<Box<Node>> child slots to Go's pointer-to-pointer iterative
// descent idiom.
package bst

import (
	"math"

	"github.com/solidcoredata/minidb/internal/dberr"
	"github.com/solidcoredata/minidb/internal/value"
)

// node is a single BST node. Children are nil when absent.
type node struct {
	key     value.Data
	payload uint64
	left    *node
	right   *node
}

// Tree is an in-memory key index. The zero value is an empty tree.
type Tree struct {
	root *node
}

// New returns an empty tree.
func New() *Tree { return &Tree{} }

// Insert adds key→payload. Fails if the key's encoded length exceeds 255
// bytes (the on-disk length prefix is a single byte) or if the key is
// already present.
func (t *Tree) Insert(key value.Data, payload uint64) error {
	encoded, err := key.EncodeKey()
	if err != nil {
		return err
	}
	if len(encoded) > math.MaxUint8 {
		return dberr.IndexInsert("key encodes to %d bytes, exceeding the 255-byte limit", len(encoded))
	}

	slot := &t.root
	for *slot != nil {
		switch key.Compare((*slot).key) {
		case 0:
			return dberr.IndexInsert("key %s already present in index", key)
		case -1:
			slot = &(*slot).left
		default:
			slot = &(*slot).right
		}
	}
	*slot = &node{key: key, payload: payload}
	return nil
}

// Find returns the payload stored under key, and whether it was present.
func (t *Tree) Find(key value.Data) (uint64, bool) {
	n := t.root
	for n != nil {
		switch key.Compare(n.key) {
		case 0:
			return n.payload, true
		case -1:
			n = n.left
		default:
			n = n.right
		}
	}
	return 0, false
}

// Remove deletes key and returns its payload, or ok=false if absent. The
// two-children case splices in the in-order predecessor (the right-most
// node of the left subtree): the predecessor's key/payload are copied into
// the removed node's slot, the ORIGINAL node's payload is what is
// returned, and the predecessor (which by construction has no right
// child) is unlinked by replacing it with its own left child.
func (t *Tree) Remove(key value.Data) (uint64, bool) {
	slot := &t.root
	for *slot != nil {
		n := *slot
		switch key.Compare(n.key) {
		case -1:
			slot = &n.left
		case 1:
			slot = &n.right
		default:
			return removeAt(slot), true
		}
	}
	return 0, false
}

func removeAt(slot **node) uint64 {
	n := *slot
	returned := n.payload

	switch {
	case n.left != nil && n.right != nil:
		predSlot := &n.left
		for (*predSlot).right != nil {
			predSlot = &(*predSlot).right
		}
		pred := *predSlot
		n.key = pred.key
		n.payload = pred.payload
		*predSlot = pred.left
	case n.left != nil:
		*slot = n.left
	case n.right != nil:
		*slot = n.right
	default:
		*slot = nil
	}
	return returned
}

// InOrderPayloads returns every payload in ascending key order.
func (t *Tree) InOrderPayloads() []uint64 {
	var out []uint64
	var walk func(*node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.payload)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// entry is one decoded (key, payload) pair used while loading and
// rebalancing a tree.
type entry struct {
	key     value.Data
	payload uint64
}

func (t *Tree) inOrderEntries() []entry {
	var out []entry
	var walk func(*node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, entry{key: n.key, payload: n.payload})
		walk(n.right)
	}
	walk(t.root)
	return out
}

// fromEntries rebuilds a tree from an in-order (ascending-key) entry
// sequence using recursive midpoint split, yielding a balanced tree in
// O(n): the left half seeds the left subtree, the first element of the
// right half becomes the node, and the remainder of the right half seeds
// the right subtree.
func fromEntries(entries []entry) *node {
	if len(entries) == 0 {
		return nil
	}
	mid := len(entries) / 2
	left, rightHalf := entries[:mid], entries[mid:]
	root := &node{key: rightHalf[0].key, payload: rightHalf[0].payload}
	root.left = fromEntries(left)
	root.right = fromEntries(rightHalf[1:])
	return root
}

// Rebalance rebuilds the tree in place from its current in-order contents,
// producing a balanced tree. Used after a bulk delete and at quiescent
// points (spec: "mutations rebuild balance lazily by write-then-reload").
func (t *Tree) Rebalance() {
	t.root = fromEntries(t.inOrderEntries())
}

// Empty reports whether the tree holds no entries.
func (t *Tree) Empty() bool { return t.root == nil }
