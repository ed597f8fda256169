// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/minidb/internal/value"
)

func TestIntegerRoundTripBoundaries(t *testing.T) {
	for _, v := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32} {
		d := value.NewInteger(v)
		encoded, err := d.EncodeFixed()
		require.NoError(t, err)

		decoded, err := value.DecodeFixed(value.Integer, encoded)
		require.NoError(t, err)
		require.Equal(t, v, decoded.Int())
		require.True(t, d.Equal(decoded))
	}
}

func TestIntegerFromTextBoundaries(t *testing.T) {
	d, err := value.NewIntegerFromText("2147483647")
	require.NoError(t, err)
	require.Equal(t, int32(math.MaxInt32), d.Int())

	d, err = value.NewIntegerFromText("-2147483648")
	require.NoError(t, err)
	require.Equal(t, int32(math.MinInt32), d.Int())

	_, err = value.NewIntegerFromText("2147483648")
	require.Error(t, err)

	_, err = value.NewIntegerFromText("not-a-number")
	require.Error(t, err)
}

func TestFloatRoundTripPositive(t *testing.T) {
	d, err := value.NewFloatFromText("3.50")
	require.NoError(t, err)

	encoded, err := d.EncodeFixed()
	require.NoError(t, err)
	require.Len(t, encoded, 5)

	decoded, err := value.DecodeFixed(value.Float, encoded)
	require.NoError(t, err)
	require.Equal(t, "3.50", decoded.String())
	require.True(t, d.Equal(decoded))
}

func TestFloatRoundTripNegativeZeroIntegerPart(t *testing.T) {
	// spec's S5 scenario: a negative value whose integer part is zero must
	// still render with an explicit '-' sign, since the sign lives only in
	// the fractional byte's 100-offset when the integer part is 0.
	d, err := value.NewFloatFromText("-0.05")
	require.NoError(t, err)
	require.Equal(t, "-0.05", d.String())

	encoded, err := d.EncodeFixed()
	require.NoError(t, err)
	require.Equal(t, byte(100+5), encoded[4])

	decoded, err := value.DecodeFixed(value.Float, encoded)
	require.NoError(t, err)
	require.Equal(t, "-0.05", decoded.String())
	require.True(t, d.Equal(decoded))
}

func TestFloatFractionalByte100IsRejected(t *testing.T) {
	buf := []byte{0, 0, 0, 0, 100}
	_, err := value.DecodeFixed(value.Float, buf)
	require.Error(t, err)
}

func TestFloatFractionalByteAbove199IsRejected(t *testing.T) {
	buf := []byte{0, 0, 0, 0, 200}
	_, err := value.DecodeFixed(value.Float, buf)
	require.Error(t, err)

	buf = []byte{0, 0, 0, 0, 255}
	_, err = value.DecodeFixed(value.Float, buf)
	require.Error(t, err)
}

func TestFloatFractionalByteJustUnder100IsPositive(t *testing.T) {
	buf := []byte{0, 0, 0, 0, 99}
	d, err := value.DecodeFixed(value.Float, buf)
	require.NoError(t, err)
	require.Equal(t, "0.99", d.String())
}

func TestTextRoundTripStripsTrailingPadding(t *testing.T) {
	d, err := value.NewText("ada")
	require.NoError(t, err)

	encoded, err := d.EncodeFixed()
	require.NoError(t, err)
	require.Len(t, encoded, 100)
	require.Equal(t, "ada", strings.TrimRight(string(encoded), " "))

	decoded, err := value.DecodeFixed(value.Text, encoded)
	require.NoError(t, err)
	require.Equal(t, "ada", decoded.TextContent())
	require.True(t, d.Equal(decoded))
}

func TestTextRejectsOverlongValue(t *testing.T) {
	_, err := value.NewText(strings.Repeat("x", 101))
	require.Error(t, err)
}

func TestTextAtMaxWidthRoundTrips(t *testing.T) {
	s := strings.Repeat("x", 100)
	d, err := value.NewText(s)
	require.NoError(t, err)

	encoded, err := d.EncodeFixed()
	require.NoError(t, err)
	decoded, err := value.DecodeFixed(value.Text, encoded)
	require.NoError(t, err)
	require.Equal(t, s, decoded.TextContent())
}
