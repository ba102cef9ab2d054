/*
Package fontbuild assembles synthetic SFNT font binaries for tests.

Fonts built here contain a font header, a table directory and arbitrary tables,
most importantly a 'cmap' table with any number of encoding records and subtables.
The builder deliberately does not validate its input: tests use it to produce
broken fonts as well.
*/
package fontbuild

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// TrueType is the scalar type of TrueType fonts.
const TrueType uint32 = 0x00010000

// Segment is one segment of a format 4 cmap subtable.
type Segment struct {
	Start, End  uint16
	Delta       int16
	RangeOffset uint16
}

// Format4 describes a format 4 cmap subtable.
type Format4 struct {
	Segments []Segment
	GlyphIDs []uint16 // the trailing glyphIdArray
	Language uint16

	SegCountX2  uint16 // if > 0, written instead of the actual segment count × 2
	Length      uint16 // if > 0, written instead of the actual byte length
	ReservedPad uint16
}

// Bytes serializes a format 4 subtable.
func (f4 Format4) Bytes() []byte {
	n := len(f4.Segments)
	size := 14 + 8*n + 2 + 2*len(f4.GlyphIDs)
	b := make([]byte, size)
	segX2 := uint16(2 * n)
	if f4.SegCountX2 > 0 {
		segX2 = f4.SegCountX2
	}
	length := uint16(size)
	if f4.Length > 0 {
		length = f4.Length
	}
	searchRange, entrySelector := uint16(2), uint16(0)
	for int(searchRange)*2 <= 2*n {
		searchRange *= 2
		entrySelector++
	}
	PutU16(b, 0, 4)
	PutU16(b, 2, length)
	PutU16(b, 4, f4.Language)
	PutU16(b, 6, segX2)
	PutU16(b, 8, searchRange)
	PutU16(b, 10, entrySelector)
	PutU16(b, 12, uint16(2*n)-searchRange)
	at := 14
	for _, s := range f4.Segments {
		PutU16(b, at, s.End)
		at += 2
	}
	PutU16(b, at, f4.ReservedPad)
	at += 2
	for _, s := range f4.Segments {
		PutU16(b, at, s.Start)
		at += 2
	}
	for _, s := range f4.Segments {
		PutU16(b, at, uint16(s.Delta))
		at += 2
	}
	for _, s := range f4.Segments {
		PutU16(b, at, s.RangeOffset)
		at += 2
	}
	for _, g := range f4.GlyphIDs {
		PutU16(b, at, g)
		at += 2
	}
	return b
}

// Subtable is a cmap encoding record together with the subtable it points to.
// If Data is nil, Format4 is serialized instead.
type Subtable struct {
	PlatformID uint16
	EncodingID uint16
	Format4    Format4
	Data       []byte
}

// UnicodeBMP returns a platform 0, encoding 3 subtable.
func UnicodeBMP(f4 Format4) Subtable {
	return Subtable{PlatformID: 0, EncodingID: 3, Format4: f4}
}

// CMap serializes a cmap table. Subtables are laid out in the order given,
// following the encoding records.
func CMap(subtables ...Subtable) []byte {
	bodies := make([][]byte, len(subtables))
	offset := 4 + 8*len(subtables)
	head := make([]byte, offset)
	PutU16(head, 0, 0)
	PutU16(head, 2, uint16(len(subtables)))
	for i, st := range subtables {
		body := st.Data
		if body == nil {
			body = st.Format4.Bytes()
		}
		bodies[i] = body
		PutU16(head, 4+8*i, st.PlatformID)
		PutU16(head, 6+8*i, st.EncodingID)
		PutU32(head, 8+8*i, uint32(offset))
		offset += len(body)
	}
	for _, body := range bodies {
		head = append(head, body...)
	}
	return head
}

// Table is a font table with its tag.
type Table struct {
	Tag  string
	Data []byte

	BadChecksum bool // write a wrong checksum into the table record
}

// Font describes a complete font binary.
type Font struct {
	ScalarType uint32
	Tables     []Table
	TableCount uint16 // if > 0, written instead of the actual number of tables
}

// Bytes serializes a font. Tables are placed at 4-byte aligned offsets following
// the table directory, in the order given.
func (f Font) Bytes() []byte {
	n := len(f.Tables)
	count := uint16(n)
	if f.TableCount > 0 {
		count = f.TableCount
	}
	scalar := f.ScalarType
	if scalar == 0 {
		scalar = TrueType
	}
	b := make([]byte, 12+16*n)
	PutU32(b, 0, scalar)
	PutU16(b, 4, count)
	// searchRange, entrySelector and rangeShift are informational only
	PutU16(b, 6, 16)
	PutU16(b, 8, 0)
	PutU16(b, 10, 0)
	for i, t := range f.Tables {
		for len(b)%4 != 0 {
			b = append(b, 0)
		}
		rec := 12 + 16*i
		copy(b[rec:rec+4], []byte((t.Tag + "    ")[:4]))
		sum := Checksum(t.Data)
		if t.BadChecksum {
			sum ^= 0xdeadbeef
		}
		PutU32(b, rec+4, sum)
		PutU32(b, rec+8, uint32(len(b)))
		PutU32(b, rec+12, uint32(len(t.Data)))
		b = append(b, t.Data...)
	}
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// UnicodeFont returns a font with a cmap table holding a single Unicode BMP
// subtable, plus any extra tables.
func UnicodeFont(f4 Format4, extra ...Table) []byte {
	tables := append([]Table{{Tag: "cmap", Data: CMap(UnicodeBMP(f4))}}, extra...)
	return Font{Tables: tables}.Bytes()
}

// NameEntry is a string of table 'name'.
type NameEntry struct {
	NameID uint16
	Value  string
}

// Name serializes a 'name' table of format 0, with all strings recorded for
// platform Windows, encoding Unicode BMP, language en-US.
func Name(entries ...NameEntry) []byte {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	storage := 6 + 12*len(entries)
	b := make([]byte, storage)
	PutU16(b, 2, uint16(len(entries)))
	PutU16(b, 4, uint16(storage))
	var strs []byte
	for i, e := range entries {
		s, err := enc.Bytes([]byte(e.Value))
		if err != nil {
			panic(err)
		}
		rec := 6 + 12*i
		PutU16(b, rec, 3)
		PutU16(b, rec+2, 1)
		PutU16(b, rec+4, 0x409)
		PutU16(b, rec+6, e.NameID)
		PutU16(b, rec+8, uint16(len(s)))
		PutU16(b, rec+10, uint16(len(strs)))
		strs = append(strs, s...)
	}
	return append(b, strs...)
}

// MaxP serializes a version 0.5 'maxp' table.
func MaxP(numGlyphs uint16) []byte {
	b := make([]byte, 6)
	PutU32(b, 0, 0x00005000)
	PutU16(b, 4, numGlyphs)
	return b
}

// Checksum calculates an SFNT table checksum.
func Checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}

// PutU16 writes v big-endian at position at.
func PutU16(b []byte, at int, v uint16) {
	binary.BigEndian.PutUint16(b[at:at+2], v)
}

// PutU32 writes v big-endian at position at.
func PutU32(b []byte, at int, v uint32) {
	binary.BigEndian.PutUint32(b[at:at+4], v)
}
