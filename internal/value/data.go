// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/solidcoredata/minidb/internal/dberr"
)

// textByteWidth is the fixed on-disk width of a Text column (spec §3).
const textByteWidth = 100

// textMaxLiteralLen is the maximum length of a quoted string literal operand
// in a WHERE clause (spec §4.4); column values may still be up to
// textByteWidth long.
const textMaxLiteralLen = 30

// Data is a tagged scalar value. Exactly one of the fields below is
// meaningful, selected by Domain. Equality and ordering are defined only
// between values of the same Domain; comparing across domains is a
// programmer error and panics, mirroring the Rust original's unchecked
// match on (Data, Data) pairs.
type Data struct {
	domain Domain

	i32 int32 // Integer value, or the Float integer part.

	fracMag uint8 // Float: fractional magnitude, 0..=99.
	fracNeg bool  // Float: true if the fraction is negative.

	text string // Text value (already trimmed, un-padded).
}

// NewInteger builds an Integer value.
func NewInteger(v int32) Data {
	return Data{domain: Integer, i32: v}
}

// NewIntegerFromText parses a base-10 integer literal (INSERT value or
// WHERE-clause operand).
func NewIntegerFromText(s string) (Data, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return Data{}, dberr.Parse("could not parse integer literal %q", s)
	}
	return NewInteger(int32(v)), nil
}

// NewText builds a Text value, rejecting content over 100 bytes.
func NewText(s string) (Data, error) {
	if len(s) > textByteWidth {
		return Data{}, dberr.Parse("text value longer than %d characters", textByteWidth)
	}
	return Data{domain: Text, text: s}, nil
}

// NewFloatParts builds a Float value from its encoded-form parts: an integer
// part, a fractional magnitude in [0,99], and its sign.
func NewFloatParts(intPart int32, fracMag uint8, fracNeg bool) (Data, error) {
	if fracMag > 99 {
		return Data{}, dberr.Parse("float fractional magnitude out of range")
	}
	return Data{domain: Float, i32: intPart, fracMag: fracMag, fracNeg: fracNeg}, nil
}

// NewFloatFromText parses any float literal strconv.ParseFloat accepts,
// rounding it to two decimal places per spec §4.1.
func NewFloatFromText(s string) (Data, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Data{}, dberr.Parse("could not parse float literal %q", s)
	}
	return NewFloatFromValue(f)
}

// NewFloatFromValue rounds a float64 to two decimal places and splits it
// into the encoded integer-part/fraction-magnitude/sign representation
// defined by spec §4.1: the integer part is the truncated signed integer,
// and the fractional byte is chosen so that value == integer_part +
// fraction under the decode rule.
func NewFloatFromValue(f float64) (Data, error) {
	rounded := math.Round(f*100) / 100
	if rounded > math.MaxInt32 || rounded < math.MinInt32 {
		return Data{}, dberr.Parse("float literal out of range")
	}
	intPart := int32(math.Trunc(rounded))
	fraction := rounded - float64(intPart)
	// fraction is in (-1, 1); round the hundredths magnitude defensively
	// against floating point noise.
	fracCentis := int32(math.Round(math.Abs(fraction) * 100))
	if fracCentis > 99 {
		// Carries happen only from floating point noise at exact integers
		// (e.g. 3.00 rounding to fracCentis==100); clamp to zero.
		fracCentis = 0
	}
	return Data{
		domain:  Float,
		i32:     intPart,
		fracMag: uint8(fracCentis),
		fracNeg: fraction < 0,
	}, nil
}

// Domain reports the value's type tag.
func (d Data) Domain() Domain { return d.domain }

// Int returns the Integer value. Only meaningful if Domain() == Integer.
func (d Data) Int() int32 { return d.i32 }

// TextContent returns the Text value. Only meaningful if Domain() == Text.
func (d Data) TextContent() string { return d.text }

// FloatParts returns the Float encoding parts. Only meaningful if
// Domain() == Float.
func (d Data) FloatParts() (intPart int32, fracMag uint8, fracNeg bool) {
	return d.i32, d.fracMag, d.fracNeg
}

// Cents returns the Float's exact value in hundredths, usable for ordering
// and equality without floating point error. Only meaningful for Float.
func (d Data) Cents() int64 {
	mag := int64(d.fracMag)
	if d.fracNeg {
		mag = -mag
	}
	return int64(d.i32)*100 + mag
}

// Equal reports value equality. Cross-domain comparisons are always false
// (spec §3: "Equality... defined only between same-domain values").
func (d Data) Equal(other Data) bool {
	if d.domain != other.domain {
		return false
	}
	switch d.domain {
	case Integer:
		return d.i32 == other.i32
	case Float:
		return d.Cents() == other.Cents()
	case Text:
		return d.text == other.text
	default:
		return false
	}
}

// Compare returns -1, 0, or 1 for d respectively less than, equal to, or
// greater than other. Panics if the two values' domains differ: ordering
// across domains is undefined and calling this across domains is a
// programmer contract failure (spec §3), not a recoverable error.
func (d Data) Compare(other Data) int {
	if d.domain != other.domain {
		panic(fmt.Sprintf("minidb: cannot compare values of different domains (%s vs %s)", d.domain, other.domain))
	}
	switch d.domain {
	case Integer:
		switch {
		case d.i32 < other.i32:
			return -1
		case d.i32 > other.i32:
			return 1
		default:
			return 0
		}
	case Float:
		a, b := d.Cents(), other.Cents()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	case Text:
		return strings.Compare(d.text, other.text)
	default:
		return 0
	}
}

// String renders the value the way SELECT results print it.
func (d Data) String() string {
	switch d.domain {
	case Integer:
		return strconv.FormatInt(int64(d.i32), 10)
	case Text:
		return d.text
	case Float:
		return d.floatString()
	default:
		return ""
	}
}

func (d Data) floatString() string {
	if d.i32 == 0 && d.fracNeg {
		// Spec §4.1: "negative values whose integer part is zero render
		// with an explicit '-' before '0.'"
		return fmt.Sprintf("-0.%02d", d.fracMag)
	}
	return fmt.Sprintf("%d.%02d", d.i32, d.fracMag)
}

// --- fixed-width byte codecs, big-endian throughout ---

// EncodeFixed renders d in its fixed on-disk column width.
func (d Data) EncodeFixed() ([]byte, error) {
	switch d.domain {
	case Integer:
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(d.i32))
		return buf, nil
	case Float:
		buf := make([]byte, 5)
		binary.BigEndian.PutUint32(buf, uint32(d.i32))
		if d.fracNeg {
			buf[4] = 100 + d.fracMag
		} else {
			buf[4] = d.fracMag
		}
		return buf, nil
	case Text:
		buf := make([]byte, textByteWidth)
		for i := range buf {
			buf[i] = ' '
		}
		copy(buf, d.text)
		return buf, nil
	default:
		return nil, dberr.Constraint("cannot encode value with unknown domain")
	}
}

// DecodeFixed decodes a fixed-width column of the given domain.
func DecodeFixed(domain Domain, b []byte) (Data, error) {
	if len(b) != domain.SizeInBytes() {
		return Data{}, dberr.FileFormat("expected %d bytes for %s column, got %d", domain.SizeInBytes(), domain, len(b))
	}
	switch domain {
	case Integer:
		return Data{domain: Integer, i32: int32(binary.BigEndian.Uint32(b))}, nil
	case Float:
		intPart := int32(binary.BigEndian.Uint32(b[0:4]))
		fracByte := b[4]
		switch {
		case fracByte < 100:
			return Data{domain: Float, i32: intPart, fracMag: fracByte, fracNeg: false}, nil
		case fracByte == 100:
			return Data{}, dberr.FileFormat("float fractional byte 100 is unused")
		case fracByte < 200:
			return Data{domain: Float, i32: intPart, fracMag: fracByte - 100, fracNeg: true}, nil
		default:
			return Data{}, dberr.FileFormat("float fractional byte %d out of range", fracByte)
		}
	case Text:
		return Data{domain: Text, text: strings.TrimRight(string(b), " ")}, nil
	default:
		return Data{}, dberr.FileFormat("unknown domain tag")
	}
}

// --- variable-length key encoding for the BST (spec §4.2) ---

// EncodeKey renders d the way the key-index persists it: every domain uses
// its fixed codec (Integer 4 bytes, Float 5, Text the 100-byte padded form),
// so the length alone tells DecodeKey which domain a key belongs to, and
// every key stays under the index's 255-byte length prefix.
func (d Data) EncodeKey() ([]byte, error) {
	switch d.domain {
	case Integer, Float, Text:
		return d.EncodeFixed()
	default:
		return nil, dberr.Constraint("cannot encode key with unknown domain")
	}
}

// DecodeKey decodes an index key byte sequence. Per spec §4.1, decoding is
// length-dispatched: 4 bytes is an Integer, 5 bytes is a Float, anything
// else is Text, with its trailing space padding stripped.
func DecodeKey(b []byte) (Data, error) {
	switch len(b) {
	case 4:
		return DecodeFixed(Integer, b)
	case 5:
		return DecodeFixed(Float, b)
	default:
		return Data{domain: Text, text: strings.TrimRight(string(b), " ")}, nil
	}
}

// ParseOperandLiteral parses a WHERE-clause literal operand: a double-quoted
// string (0..=30 characters inside the quotes), else an integer (tried
// before float so bare integer literals never become floats), else a float.
// Returns ok=false if tok is none of these (the caller should then try to
// resolve it as an attribute Identifier).
func ParseOperandLiteral(tok string) (Data, bool, error) {
	if strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) && len(tok) >= 2 {
		inner := tok[1 : len(tok)-1]
		if len(inner) > textMaxLiteralLen {
			return Data{}, true, dberr.Parse("string literal longer than %d characters", textMaxLiteralLen)
		}
		d, err := NewText(inner)
		return d, true, err
	}

	if n, err := strconv.ParseInt(tok, 10, 32); err == nil {
		return NewInteger(int32(n)), true, nil
	}

	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		d, err := NewFloatFromText(tok)
		return d, true, err
	}

	return Data{}, false, nil
}
