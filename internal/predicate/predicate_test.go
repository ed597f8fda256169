// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package predicate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/minidb/internal/predicate"
	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

func buildPeople(t *testing.T, dir string) *store.Table {
	t.Helper()
	idAttr, err := value.NewIdentifier("id")
	require.NoError(t, err)
	nameAttr, err := value.NewIdentifier("name")
	require.NoError(t, err)
	attrs := []store.Attribute{
		{Name: idAttr, Domain: value.Integer},
		{Name: nameAttr, Domain: value.Text},
	}
	tbl, err := store.Build("people", attrs, true, 0, dir)
	require.NoError(t, err)

	for i, name := range []string{"ada", "bob", "cleo"} {
		n, err := value.NewText(name)
		require.NoError(t, err)
		require.NoError(t, tbl.WriteRecord([]value.Data{value.NewInteger(int32(i + 1)), n}))
	}
	return tbl
}

func TestSelectKeyEqualityUsesIndex(t *testing.T) {
	dir := t.TempDir()
	tbl := buildPeople(t, dir)

	cond, err := predicate.Parse("id = 2")
	require.NoError(t, err)

	mt, err := predicate.Select(cond, []*store.Table{tbl})
	require.NoError(t, err)
	require.Len(t, mt.Records, 1)
	require.Equal(t, "bob", mt.Records[0][1].TextContent())
}

func TestSelectAndOr(t *testing.T) {
	dir := t.TempDir()
	tbl := buildPeople(t, dir)

	cond, err := predicate.Parse(`id = 1 or id = 3`)
	require.NoError(t, err)
	mt, err := predicate.Select(cond, []*store.Table{tbl})
	require.NoError(t, err)
	require.Len(t, mt.Records, 2)

	cond, err = predicate.Parse(`id = 1 and name = "ada"`)
	require.NoError(t, err)
	mt, err = predicate.Select(cond, []*store.Table{tbl})
	require.NoError(t, err)
	require.Len(t, mt.Records, 1)
}

func TestSelectNoMatchIsEmpty(t *testing.T) {
	dir := t.TempDir()
	tbl := buildPeople(t, dir)

	cond, err := predicate.Parse("id = 99")
	require.NoError(t, err)
	mt, err := predicate.Select(cond, []*store.Table{tbl})
	require.NoError(t, err)
	require.Empty(t, mt.Records)
}

func TestSelectJoinCartesianProduct(t *testing.T) {
	dir := t.TempDir()
	people := buildPeople(t, dir)

	ownerAttr, err := value.NewIdentifier("ownerid")
	require.NoError(t, err)
	petAttr, err := value.NewIdentifier("petname")
	require.NoError(t, err)
	pets, err := store.Build("pets", []store.Attribute{
		{Name: ownerAttr, Domain: value.Integer},
		{Name: petAttr, Domain: value.Text},
	}, false, 0, dir)
	require.NoError(t, err)
	rex, err := value.NewText("rex")
	require.NoError(t, err)
	require.NoError(t, pets.WriteRecord([]value.Data{value.NewInteger(1), rex}))

	cond, err := predicate.Parse("id = ownerid")
	require.NoError(t, err)
	mt, err := predicate.Select(cond, []*store.Table{people, pets})
	require.NoError(t, err)
	require.Len(t, mt.Records, 1)
	require.Equal(t, "ada", mt.Records[0][1].TextContent())
	require.Equal(t, "rex", mt.Records[0][3].TextContent())
}

func TestUpdateRejectsMultipleKeyChanges(t *testing.T) {
	dir := t.TempDir()
	tbl := buildPeople(t, dir)

	cond, err := predicate.Parse(`id = 1 or id = 2`)
	require.NoError(t, err)

	idAttr := tbl.Attributes()[0].Name
	err = predicate.Update(cond, tbl, []store.NewValue{{Name: idAttr, Value: value.NewInteger(50)}})
	require.Error(t, err)
}

func TestUpdateSingleRecord(t *testing.T) {
	dir := t.TempDir()
	tbl := buildPeople(t, dir)

	cond, err := predicate.Parse("id = 1")
	require.NoError(t, err)
	nameAttr := tbl.Attributes()[1].Name
	newName, err := value.NewText("zed")
	require.NoError(t, err)
	require.NoError(t, predicate.Update(cond, tbl, []store.NewValue{{Name: nameAttr, Value: newName}}))

	rec, err := tbl.ReadRecord(0)
	require.NoError(t, err)
	require.Equal(t, "zed", rec[1].TextContent())
}

func TestDeleteAll(t *testing.T) {
	dir := t.TempDir()
	tbl := buildPeople(t, dir)

	cond, err := predicate.Parse("id = 2")
	require.NoError(t, err)
	require.NoError(t, predicate.Delete(cond, tbl))
	require.Equal(t, uint64(2), tbl.RecordCount())

	_, found := tbl.Index().Find(value.NewInteger(2))
	require.False(t, found)
}
