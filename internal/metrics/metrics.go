// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics exposes the counters that make Testable Property 13
// ("observable by instrumenting a counter of records scanned") mechanically
// checkable: a point lookup through the key index should grow
// RecordsScanned by at most one per matched row, while a full scan grows it
// by the table's record count.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// RecordsScanned counts every record the query executor pulls out of a
// MemTable during the per-table filtering pass. The cartesian-product join
// pass that follows is not counted.
var RecordsScanned = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "minidb_records_scanned_total",
	Help: "Total number of records examined while evaluating WHERE predicates.",
})

// IndexLookups counts every key-index point lookup performed via the BST
// fast path (as opposed to a full in-order enumeration).
var IndexLookups = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "minidb_index_lookups_total",
	Help: "Total number of key-index point lookups performed.",
})

func init() {
	prometheus.MustRegister(RecordsScanned, IndexLookups)
}
