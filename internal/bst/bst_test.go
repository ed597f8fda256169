// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bst_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/minidb/internal/bst"
	"github.com/solidcoredata/minidb/internal/value"
)

func TestInsertFindRemove(t *testing.T) {
	tree := bst.New()
	require.NoError(t, tree.Insert(value.NewInteger(5), 100))
	require.NoError(t, tree.Insert(value.NewInteger(2), 200))
	require.NoError(t, tree.Insert(value.NewInteger(8), 300))

	payload, ok := tree.Find(value.NewInteger(2))
	require.True(t, ok)
	require.Equal(t, uint64(200), payload)

	_, ok = tree.Find(value.NewInteger(99))
	require.False(t, ok)

	err := tree.Insert(value.NewInteger(5), 999)
	require.Error(t, err)

	payload, ok = tree.Remove(value.NewInteger(5))
	require.True(t, ok)
	require.Equal(t, uint64(100), payload)
	_, ok = tree.Find(value.NewInteger(5))
	require.False(t, ok)
}

func TestRemoveTwoChildrenUsesInOrderPredecessor(t *testing.T) {
	tree := bst.New()
	for _, v := range []int32{50, 30, 70, 20, 40, 60, 80, 35, 45} {
		require.NoError(t, tree.Insert(value.NewInteger(v), uint64(v)))
	}

	payload, ok := tree.Remove(value.NewInteger(30))
	require.True(t, ok)
	require.Equal(t, uint64(30), payload)

	for _, v := range []int32{50, 70, 20, 40, 60, 80, 35, 45} {
		_, ok := tree.Find(value.NewInteger(v))
		require.True(t, ok, "expected %d to remain", v)
	}
	_, ok = tree.Find(value.NewInteger(30))
	require.False(t, ok)

	got := tree.InOrderPayloads()
	require.Equal(t, []uint64{20, 35, 40, 45, 50, 60, 70, 80}, got)
}

func TestInOrderPayloadsAscending(t *testing.T) {
	tree := bst.New()
	values := []int32{9, 1, 5, 3, 7, 0, 8, 2, 6, 4}
	for _, v := range values {
		require.NoError(t, tree.Insert(value.NewInteger(v), uint64(v)))
	}
	require.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, tree.InOrderPayloads())
}

func TestWriteReadRoundTripRebalances(t *testing.T) {
	tree := bst.New()
	for i := int32(0); i < 20; i++ {
		require.NoError(t, tree.Insert(value.NewInteger(i), uint64(i)))
	}

	path := filepath.Join(t.TempDir(), "test.index")
	require.NoError(t, tree.WriteToFile(path))

	reloaded, err := bst.ReadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, tree.InOrderPayloads(), reloaded.InOrderPayloads())

	for i := int32(0); i < 20; i++ {
		payload, ok := reloaded.Find(value.NewInteger(i))
		require.True(t, ok)
		require.Equal(t, uint64(i), payload)
	}
}

func TestTextKeyRoundTrip(t *testing.T) {
	tree := bst.New()
	for _, s := range []string{"banana", "apple", "cherry"} {
		d, err := value.NewText(s)
		require.NoError(t, err)
		require.NoError(t, tree.Insert(d, uint64(len(s))))
	}

	path := filepath.Join(t.TempDir(), "text.index")
	require.NoError(t, tree.WriteToFile(path))
	reloaded, err := bst.ReadFromFile(path)
	require.NoError(t, err)

	d, err := value.NewText("apple")
	require.NoError(t, err)
	payload, ok := reloaded.Find(d)
	require.True(t, ok)
	require.Equal(t, uint64(len("apple")), payload)
}

func TestInsertAcceptsLargestTextKey(t *testing.T) {
	tree := bst.New()
	d, err := value.NewText(string(make([]byte, 100)))
	require.NoError(t, err)
	// A 100-byte text key encodes under the 255 limit; this merely exercises
	// the happy path for the largest possible key.
	require.NoError(t, tree.Insert(d, 1))
}

func TestEmptyTreeFileRoundTrip(t *testing.T) {
	tree := bst.New()
	path := filepath.Join(t.TempDir(), "empty.index")
	require.NoError(t, tree.WriteToFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(0), info.Size())

	reloaded, err := bst.ReadFromFile(path)
	require.NoError(t, err)
	require.True(t, reloaded.Empty())
}
