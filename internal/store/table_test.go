// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

func mustAttr(t *testing.T, name string, domain value.Domain) store.Attribute {
	t.Helper()
	id, err := value.NewIdentifier(name)
	require.NoError(t, err)
	return store.Attribute{Name: id, Domain: domain}
}

func TestBuildWriteReadRecord(t *testing.T) {
	dir := t.TempDir()
	attrs := []store.Attribute{
		mustAttr(t, "id", value.Integer),
		mustAttr(t, "name", value.Text),
	}
	tbl, err := store.Build("people", attrs, true, 0, dir)
	require.NoError(t, err)

	name, err := value.NewText("ada")
	require.NoError(t, err)
	require.NoError(t, tbl.WriteSingleRecord([]value.Data{value.NewInteger(1), name}))

	rec, err := tbl.ReadRecord(0)
	require.NoError(t, err)
	require.Equal(t, int32(1), rec[0].Int())
	require.Equal(t, "ada", rec[1].TextContent())

	_, err = tbl.ReadRecord(1)
	require.Error(t, err)
}

func TestBuildRejectsDuplicateAttributeName(t *testing.T) {
	dir := t.TempDir()
	attrs := []store.Attribute{
		mustAttr(t, "id", value.Integer),
		mustAttr(t, "id", value.Text),
	}
	_, err := store.Build("dup", attrs, false, 0, dir)
	require.Error(t, err)
}

func TestBuildRejectsExistingFile(t *testing.T) {
	dir := t.TempDir()
	attrs := []store.Attribute{mustAttr(t, "id", value.Integer)}
	_, err := store.Build("t1", attrs, false, 0, dir)
	require.NoError(t, err)

	_, err = store.Build("t1", attrs, false, 0, dir)
	require.Error(t, err)
}

func TestWriteRecordRejectsDuplicateKey(t *testing.T) {
	dir := t.TempDir()
	attrs := []store.Attribute{mustAttr(t, "id", value.Integer)}
	tbl, err := store.Build("keyed", attrs, true, 0, dir)
	require.NoError(t, err)

	require.NoError(t, tbl.WriteRecord([]value.Data{value.NewInteger(1)}))
	err = tbl.WriteRecord([]value.Data{value.NewInteger(1)})
	require.Error(t, err)
	require.Equal(t, uint64(1), tbl.RecordCount())
}

func TestReadFromFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	attrs := []store.Attribute{
		mustAttr(t, "id", value.Integer),
		mustAttr(t, "score", value.Float),
	}
	tbl, err := store.Build("scores", attrs, true, 0, dir)
	require.NoError(t, err)

	score, err := value.NewFloatFromText("3.50")
	require.NoError(t, err)
	require.NoError(t, tbl.WriteSingleRecord([]value.Data{value.NewInteger(7), score}))
	require.NoError(t, tbl.Rebalance())

	reloaded, err := store.ReadFromFile("scores", dir)
	require.NoError(t, err)
	require.True(t, reloaded.HasKey())
	require.Equal(t, uint64(1), reloaded.RecordCount())

	rec, err := reloaded.ReadRecord(0)
	require.NoError(t, err)
	require.Equal(t, int32(7), rec[0].Int())
	require.Equal(t, "3.50", rec[1].String())
}

func TestUpdateRecordChangesKeyWithoutCollision(t *testing.T) {
	dir := t.TempDir()
	attrs := []store.Attribute{mustAttr(t, "id", value.Integer)}
	tbl, err := store.Build("upd", attrs, true, 0, dir)
	require.NoError(t, err)
	require.NoError(t, tbl.WriteRecord([]value.Data{value.NewInteger(1)}))
	require.NoError(t, tbl.WriteRecord([]value.Data{value.NewInteger(2)}))

	err = tbl.UpdateRecord(0, []store.NewValue{{Name: attrs[0].Name, Value: value.NewInteger(2)}})
	require.Error(t, err)

	err = tbl.UpdateRecord(0, []store.NewValue{{Name: attrs[0].Name, Value: value.NewInteger(99)}})
	require.NoError(t, err)

	_, found := tbl.Index().Find(value.NewInteger(1))
	require.False(t, found)
	ordinal, found := tbl.Index().Find(value.NewInteger(99))
	require.True(t, found)
	require.Equal(t, uint64(0), ordinal)
}

func TestDeleteAllTruncatesAndRebuildsIndex(t *testing.T) {
	dir := t.TempDir()
	attrs := []store.Attribute{mustAttr(t, "id", value.Integer)}
	tbl, err := store.Build("del", attrs, true, 0, dir)
	require.NoError(t, err)
	for _, v := range []int32{1, 2, 3, 4} {
		require.NoError(t, tbl.WriteRecord([]value.Data{value.NewInteger(v)}))
	}

	require.NoError(t, tbl.DeleteAll([]uint64{1, 3}))
	require.Equal(t, uint64(2), tbl.RecordCount())

	rec0, err := tbl.ReadRecord(0)
	require.NoError(t, err)
	require.Equal(t, int32(1), rec0[0].Int())
	rec1, err := tbl.ReadRecord(1)
	require.NoError(t, err)
	require.Equal(t, int32(3), rec1[0].Int())

	_, found := tbl.Index().Find(value.NewInteger(2))
	require.False(t, found)
	ordinal, found := tbl.Index().Find(value.NewInteger(3))
	require.True(t, found)
	require.Equal(t, uint64(1), ordinal)
}

func TestRenameAttributesPreservesDomains(t *testing.T) {
	dir := t.TempDir()
	attrs := []store.Attribute{
		mustAttr(t, "id", value.Integer),
		mustAttr(t, "label", value.Text),
	}
	tbl, err := store.Build("ren", attrs, false, 0, dir)
	require.NoError(t, err)

	newID, err := value.NewIdentifier("key")
	require.NoError(t, err)
	newLabel, err := value.NewIdentifier("tag")
	require.NoError(t, err)
	require.NoError(t, tbl.RenameAttributes([]value.Identifier{newID, newLabel}))

	require.Equal(t, "key", tbl.Attributes()[0].Name.Name())
	require.Equal(t, value.Integer, tbl.Attributes()[0].Domain)

	reloaded, err := store.ReadFromFile("ren", dir)
	require.NoError(t, err)
	require.Equal(t, "tag", reloaded.Attributes()[1].Name.Name())
}
