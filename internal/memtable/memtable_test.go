// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memtable_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/minidb/internal/memtable"
	"github.com/solidcoredata/minidb/internal/store"
	"github.com/solidcoredata/minidb/internal/value"
)

func attr(t *testing.T, name string, domain value.Domain) store.Attribute {
	t.Helper()
	id, err := value.NewIdentifier(name)
	require.NoError(t, err)
	return store.Attribute{Name: id, Domain: domain}
}

func TestProjectNarrowsAndReorders(t *testing.T) {
	attrs := []store.Attribute{
		attr(t, "id", value.Integer),
		attr(t, "name", value.Text),
	}
	nameVal, err := value.NewText("ada")
	require.NoError(t, err)
	records := [][]value.Data{{value.NewInteger(1), nameVal}}

	mt, err := memtable.BuildFromRecords(records, attrs)
	require.NoError(t, err)

	require.NoError(t, mt.Project([]string{"name", "id"}))
	rec := mt.ProjectedRecord(0)
	require.Equal(t, "ada", rec[0].TextContent())
	require.Equal(t, int32(1), rec[1].Int())
}

func TestProjectUnknownAttributeFails(t *testing.T) {
	attrs := []store.Attribute{attr(t, "id", value.Integer)}
	mt, err := memtable.BuildFromRecords(nil, attrs)
	require.NoError(t, err)
	require.Error(t, mt.Project([]string{"missing"}))
}

func TestSetKeyRejectsDuplicateValues(t *testing.T) {
	attrs := []store.Attribute{attr(t, "id", value.Integer)}
	records := [][]value.Data{{value.NewInteger(1)}, {value.NewInteger(1)}}
	mt, err := memtable.BuildFromRecords(records, attrs)
	require.NoError(t, err)
	require.Error(t, mt.SetKey("id"))
}

func TestSetKeySwapsToFront(t *testing.T) {
	attrs := []store.Attribute{
		attr(t, "name", value.Text),
		attr(t, "id", value.Integer),
	}
	nameVal, err := value.NewText("ada")
	require.NoError(t, err)
	records := [][]value.Data{{nameVal, value.NewInteger(1)}}
	mt, err := memtable.BuildFromRecords(records, attrs)
	require.NoError(t, err)

	require.NoError(t, mt.SetKey("id"))
	require.Equal(t, "id", mt.ProjectedAttributes()[0].Name.Name())
}

func TestRenderEmptyReportsNothingFound(t *testing.T) {
	attrs := []store.Attribute{attr(t, "id", value.Integer)}
	mt, err := memtable.BuildFromRecords(nil, attrs)
	require.NoError(t, err)

	var sb strings.Builder
	mt.Render(&sb, "")
	require.Contains(t, sb.String(), "Nothing Found.")
}

func TestRenderColumnPadAppliesCustomPadding(t *testing.T) {
	attrs := []store.Attribute{attr(t, "id", value.Integer)}
	records := [][]value.Data{{value.NewInteger(1)}}
	mt, err := memtable.BuildFromRecords(records, attrs)
	require.NoError(t, err)

	var withDefault, withCustom strings.Builder
	mt.Render(&withDefault, "")
	mt.Render(&withCustom, "~")

	require.NotEqual(t, withDefault.String(), withCustom.String())
	require.Contains(t, withCustom.String(), "~")
}
