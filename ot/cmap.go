package ot

import (
	"fmt"
)

// --- CMap table ------------------------------------------------------------

// This table defines mapping of character codes to a default glyph index. Different
// subtables may be defined that each contain mappings for different character encoding
// schemes. The table header indicates the character encodings for which subtables are
// present.
//
// OpenType cmap documentation: “Apart from a format 14 subtable, all other subtables are exclusive:
// applications should select and use one and ignore the others.”
//
// We support exactly one platform/encoding/format combination:
//
//	0 (Unicode)  3    4   Unicode BMP
//
// If a font contains more than one encoding record for it, the last one is used.

// Platform IDs and Platform Specific IDs as per
// https://www.microsoft.com/typography/otspec/name.htm
const (
	PlatformUnicode   uint16 = 0
	PlatformMacintosh uint16 = 1
	PlatformWindows   uint16 = 3

	EncodingUnicodeBMP uint16 = 3 // psid for Unicode 2.0 and later, BMP only
)

// Sizes of fixed-size cmap structures, in bytes.
const (
	cmapHeaderSize     = 4
	encodingRecordSize = 8
	format4HeaderSize  = 14
)

// CMapTable represents a font's cmap table, i.e. the table to receive glyphs
// from code-points.
type CMapTable struct {
	Offset   uint32           // offset of the cmap table within the font
	Header   CMapHeader       // version and number of subtables
	Records  []EncodingRecord // encoding records, at most Limits.MaxSubtables
	Selected EncodingRecord   // the encoding record of Subtable
	Subtable CMapSubtable     // currently always a *SegmentedCoverage
}

// CMapHeader is the header of a cmap table.
type CMapHeader struct {
	Version       uint16
	SubTableCount uint16
}

// EncodingRecord references a cmap subtable for a platform and encoding.
type EncodingRecord struct {
	PlatformID uint16
	EncodingID uint16
	Offset     uint32 // from the start of the cmap table
}

// IsUnicodeBMP reports whether an encoding record is for Unicode platform 0, encoding 3.
func (rec EncodingRecord) IsUnicodeBMP() bool {
	return rec.PlatformID == PlatformUnicode && rec.EncodingID == EncodingUnicodeBMP
}

func (rec EncodingRecord) String() string {
	return fmt.Sprintf("platform=%d encoding=%d @%d", rec.PlatformID, rec.EncodingID, rec.Offset)
}

// GlyphIndex returns the glyph index for a character code, or false if the font
// does not map the code.
func (t *CMapTable) GlyphIndex(code uint16) (GlyphIndex, bool) {
	if t == nil {
		return 0, false
	}
	if sc, ok := t.Subtable.(*SegmentedCoverage); ok {
		return sc.Lookup(code)
	}
	return 0, false
}

// CMapSubtable is one of the subtable formats of table cmap. Implementations are
// *SegmentedCoverage (format 4) and UnsupportedSubtable.
type CMapSubtable interface {
	Format() uint16
}

// UnsupportedSubtable stands in for a cmap subtable in a format we do not
// interpret.
type UnsupportedSubtable struct {
	format uint16
}

// Format returns the format number found in the font.
func (u UnsupportedSubtable) Format() uint16 {
	return u.format
}

// SubtableHeader is the common start of cmap subtables of formats 0 to 6.
type SubtableHeader struct {
	Format   uint16
	Length   uint16 // in bytes, including the header
	Language uint16
}

// SegmentedCoverage is a cmap subtable of format 4, mapping segments of
// character codes to glyph indices. All arrays have the same length, which
// is SegCountX2/2.
type SegmentedCoverage struct {
	Header        SubtableHeader
	SegCountX2    uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
	ReservedPad   uint16
	EndCode       []uint16
	StartCode     []uint16
	IDDelta       []int16
	IDRangeOffset []uint16
	GlyphIDArray  []uint16
}

// Format returns 4.
func (t *SegmentedCoverage) Format() uint16 {
	return 4
}

// SegmentCount returns the number of segments.
func (t *SegmentedCoverage) SegmentCount() int {
	return len(t.EndCode)
}

// consistent checks that all segment arrays have the length derived from SegCountX2.
func (t *SegmentedCoverage) consistent() bool {
	n := int(t.SegCountX2 / 2)
	return len(t.EndCode) == n && len(t.StartCode) == n &&
		len(t.IDDelta) == n && len(t.IDRangeOffset) == n
}

// ---------------------------------------------------------------------------

// ParseCMap parses the cmap table of a font, given the font binary and its directory.
func ParseCMap(font []byte, dir FontDirectory, opts ...ParseOption) (*CMapTable, error) {
	return parseCMap(binarySegm(font), dir, newParseConfig(opts), &errorCollector{})
}

func parseCMap(src binarySegm, dir FontDirectory, cfg *parseConfig, ec *errorCollector) (*CMapTable, error) {
	tag := T("cmap")
	rec, ok := dir.Lookup(tag)
	if !ok {
		return nil, ec.fail(ErrMissingTable, tag, "Directory", "font has no cmap table", 0)
	}
	t := &CMapTable{Offset: rec.Offset}
	hdr, err := src.view(int(rec.Offset), cmapHeaderSize)
	if err != nil {
		return nil, ec.fail(ErrMalformedFont, tag, "Header",
			fmt.Sprintf("cmap header exceeds font size %d", len(src)), rec.Offset)
	}
	t.Header = CMapHeader{
		Version:       u16(hdr[0:]),
		SubTableCount: u16(hdr[2:]),
	}
	n := int(t.Header.SubTableCount)
	tracer().Debugf("font cmap has %d sub-tables", n)
	if n > cfg.limits.MaxSubtables {
		ec.addWarning(tag, fmt.Sprintf("cmap declares %d sub-tables, only the first %d will be read",
			n, cfg.limits.MaxSubtables), rec.Offset)
		n = cfg.limits.MaxSubtables
	}
	t.Records = make([]EncodingRecord, 0, n)
	var records binarySegm
	if n > 0 {
		if records, err = src.view(int(rec.Offset)+cmapHeaderSize, encodingRecordSize*n); err != nil {
			return nil, ec.fail(ErrMalformedFont, tag, "EncodingRecord",
				fmt.Sprintf("%d encoding records exceed font size %d", n, len(src)), rec.Offset)
		}
	}
	selected := None[EncodingRecord]()
	for b := records; len(b) > 0; b = b[encodingRecordSize:] {
		enc := EncodingRecord{
			PlatformID: u16(b[0:]),
			EncodingID: u16(b[2:]),
			Offset:     u32(b[4:]),
		}
		tracer().Debugf("cmap encoding record %s", enc)
		t.Records = append(t.Records, enc)
		if enc.IsUnicodeBMP() { // later records override earlier ones
			selected = Some(enc)
		}
	}
	enc, ok := selected.Unwrap()
	if !ok {
		return nil, ec.fail(ErrMissingTable, tag, "EncodingRecord",
			"no encoding record for Unicode BMP (platform 0, encoding 3)", rec.Offset)
	}
	t.Selected = enc
	at, err := checkedAddUint32(rec.Offset, enc.Offset)
	if err != nil {
		return nil, ec.fail(ErrMalformedFont, tag, "Subtable", err.Error(), rec.Offset)
	}
	if t.Subtable, err = parseCMapSubtable(src, at, cfg, ec); err != nil {
		return nil, err
	}
	if u, ok := t.Subtable.(UnsupportedSubtable); ok {
		return nil, ec.fail(ErrUnsupportedFormat, tag, "Subtable",
			fmt.Sprintf("cmap subtable format %d not supported", u.Format()), at)
	}
	return t, nil
}

// parseCMapSubtable parses the cmap subtable at absolute offset at.
// Subtables of formats other than 4 are returned as UnsupportedSubtable.
func parseCMapSubtable(src binarySegm, at uint32, cfg *parseConfig, ec *errorCollector) (CMapSubtable, error) {
	format, err := src.u16(int(at))
	if err != nil {
		return nil, ec.fail(ErrMalformedFont, T("cmap"), "Subtable",
			fmt.Sprintf("subtable offset %d exceeds font size %d", at, len(src)), at)
	}
	tracer().Debugf("cmap table contains subtable with format %d", format)
	if format != 4 {
		return UnsupportedSubtable{format: format}, nil
	}
	return parseSegmentedCoverage(src, at, cfg, ec)
}

// parseSegmentedCoverage parses a format 4 subtable. The layout is:
//
//	header:  format, length, language, segCountX2, searchRange, entrySelector, rangeShift
//	         endCode[segCount]
//	         reservedPad
//	         startCode[segCount]
//	         idDelta[segCount]
//	         idRangeOffset[segCount]
//	         glyphIdArray[…] up to the end of the subtable
func parseSegmentedCoverage(src binarySegm, at uint32, cfg *parseConfig, ec *errorCollector) (*SegmentedCoverage, error) {
	tag := T("cmap")
	hdr, err := src.view(int(at), format4HeaderSize)
	if err != nil {
		return nil, ec.fail(ErrMalformedFont, tag, "Format4", "subtable header exceeds font size", at)
	}
	t := &SegmentedCoverage{
		Header: SubtableHeader{
			Format:   u16(hdr[0:]),
			Length:   u16(hdr[2:]),
			Language: u16(hdr[4:]),
		},
		SegCountX2:    u16(hdr[6:]),
		SearchRange:   u16(hdr[8:]),
		EntrySelector: u16(hdr[10:]),
		RangeShift:    u16(hdr[12:]),
	}
	if t.SegCountX2&1 != 0 {
		return nil, ec.fail(ErrMalformedFont, tag, "Format4",
			fmt.Sprintf("odd segCountX2 %d", t.SegCountX2), at)
	}
	segCount := int(t.SegCountX2 / 2)
	if segCount > cfg.limits.MaxSegments {
		return nil, ec.fail(ErrCapacity, tag, "Format4",
			fmt.Sprintf("%d segments exceed capacity of %d", segCount, cfg.limits.MaxSegments), at)
	}
	tracer().Debugf("cmap format 4 has %d segments", segCount)
	start := int(at) + format4HeaderSize
	segmentsSize := 8*segCount + 2 // four arrays plus reservedPad
	end := int(at) + int(t.Header.Length)
	if end > len(src) {
		return nil, ec.fail(ErrMalformedFont, tag, "Format4",
			fmt.Sprintf("subtable length %d exceeds font size %d", t.Header.Length, len(src)), at)
	}
	glyphsStart := start + segmentsSize
	if glyphsStart > end {
		return nil, ec.fail(ErrMalformedFont, tag, "Format4",
			fmt.Sprintf("subtable length %d too short for %d segments", t.Header.Length, segCount), at)
	}
	slots := (end - glyphsStart) / 2
	if slots > cfg.limits.MaxGlyphSlots {
		return nil, ec.fail(ErrCapacity, tag, "Format4",
			fmt.Sprintf("glyph id array of %d entries exceeds capacity of %d", slots, cfg.limits.MaxGlyphSlots), at)
	}
	arrayBytes := 2 * segCount
	if t.EndCode, err = src.u16Array(start, segCount); err != nil {
		return nil, ec.fail(ErrMalformedFont, tag, "Format4", "endCode array", at)
	}
	if t.ReservedPad, err = src.u16(start + arrayBytes); err != nil {
		return nil, ec.fail(ErrMalformedFont, tag, "Format4", "reservedPad", at)
	}
	if t.StartCode, err = src.u16Array(start+arrayBytes+2, segCount); err != nil {
		return nil, ec.fail(ErrMalformedFont, tag, "Format4", "startCode array", at)
	}
	deltas, err := src.u16Array(start+2*arrayBytes+2, segCount)
	if err != nil {
		return nil, ec.fail(ErrMalformedFont, tag, "Format4", "idDelta array", at)
	}
	t.IDDelta = make([]int16, segCount)
	for i, d := range deltas {
		t.IDDelta[i] = int16(d)
	}
	if t.IDRangeOffset, err = src.u16Array(start+3*arrayBytes+2, segCount); err != nil {
		return nil, ec.fail(ErrMalformedFont, tag, "Format4", "idRangeOffset array", at)
	}
	if t.GlyphIDArray, err = src.u16Array(glyphsStart, slots); err != nil {
		return nil, ec.fail(ErrMalformedFont, tag, "Format4", "glyphIdArray", at)
	}
	if t.ReservedPad != 0 {
		ec.addWarning(tag, fmt.Sprintf("format 4 reservedPad is %d, should be 0", t.ReservedPad), at)
	}
	return t, nil
}
