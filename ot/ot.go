package ot

import (
	"fmt"
)

// Font represents the parsed structure of an SFNT font: its table directory
// and its character to glyph mapping.
//
// A Font is created by Parse and never changed afterwards.
type Font struct {
	data          binarySegm    // the font binary, kept in on-disk byte order
	directory     FontDirectory // table records
	cmap          *CMapTable    // cmap table is mandatory
	parseErrors   []FontError   // Errors accumulated during parsing
	parseWarnings []FontWarning // Warnings accumulated during parsing
}

// Directory returns the table directory of the font.
func (otf *Font) Directory() FontDirectory {
	return otf.directory
}

// CMap returns the parsed character map of the font.
func (otf *Font) CMap() *CMapTable {
	if otf == nil {
		return nil
	}
	return otf.cmap
}

// GlyphIndex returns the glyph index for a character code of the Unicode BMP.
// If the font does not map the code to a glyph, false is returned. This is not
// an error; clients usually substitute the .notdef glyph (glyph index 0).
func (otf *Font) GlyphIndex(code uint16) (GlyphIndex, bool) {
	if otf == nil || otf.cmap == nil {
		return 0, false
	}
	return otf.cmap.GlyphIndex(code)
}

// Table returns the bytes of the first table in the directory with the given tag.
// Returns nil if the font has no such table or if the table's record points outside
// of the font data. The bytes are a view into the font data and must not be altered.
func (otf *Font) Table(tag Tag) []byte {
	if otf == nil {
		return nil
	}
	rec, ok := otf.directory.Lookup(tag)
	if !ok {
		return nil
	}
	b, err := otf.data.view(int(rec.Offset), int(rec.Length))
	if err != nil {
		return nil
	}
	return b
}

// Binary returns the complete font data. Clients should treat it as read-only.
func (otf *Font) Binary() []byte {
	return otf.data
}

// Errors returns all errors encountered during font parsing.
func (otf *Font) Errors() []FontError {
	if otf.parseErrors == nil {
		return []FontError{}
	}
	return otf.parseErrors
}

// Warnings returns all warnings encountered during font parsing, e.g.
// table records dropped because of capacity limits, or checksum mismatches.
func (otf *Font) Warnings() []FontWarning {
	if otf.parseWarnings == nil {
		return []FontWarning{}
	}
	return otf.parseWarnings
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Font directory --------------------------------------------------------

// FontHeader is the offset subtable at the start of a font file. Only
// TableCount is relevant for parsing, the other fields are informational.
//
// TrueType fonts use 0x00010000 as the scalar type, CFF based OpenType fonts
// use 'OTTO'. Apple additionally allows 'true' and 'typ1'.
type FontHeader struct {
	ScalarType    uint32
	TableCount    uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// TableRecord locates one table within the font binary.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32 // from the start of the font file
	Length   uint32 // in bytes
}

func (rec TableRecord) String() string {
	return fmt.Sprintf("%s @%d|%d (checksum 0x%08x)", rec.Tag, rec.Offset, rec.Length, rec.Checksum)
}

// FontDirectory is the ordered list of table records of a font.
type FontDirectory struct {
	Header  FontHeader
	Records []TableRecord
}

// Len returns the number of table records in the directory.
func (dir FontDirectory) Len() int {
	return len(dir.Records)
}

// Lookup returns the first table record with a given tag.
// Tags are not required to be unique, and we will not rely on the order of tags.
func (dir FontDirectory) Lookup(tag Tag) (TableRecord, bool) {
	for _, rec := range dir.Records {
		if rec.Tag == tag {
			return rec, true
		}
	}
	return TableRecord{}, false
}

// Tags returns the tags of all table records, in directory order.
func (dir FontDirectory) Tags() []Tag {
	tags := make([]Tag, len(dir.Records))
	for i, rec := range dir.Records {
		tags[i] = rec.Tag
	}
	return tags
}

// --- Tag -------------------------------------------------------------------

// OpenType defines Tag as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
//
// Tags are sequences of characters, not numbers, therefore bytes are taken in order
// without any byte order normalization.
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return MakeTag([]byte(t))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}
