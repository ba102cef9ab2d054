package ot

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfntcmap/internal/fontbuild"
)

func cmapFont(subtables ...fontbuild.Subtable) []byte {
	return fontbuild.Font{Tables: []fontbuild.Table{
		{Tag: "head", Data: make([]byte, 54)},
		{Tag: "cmap", Data: fontbuild.CMap(subtables...)},
	}}.Bytes()
}

func shiftedLatin(delta int16) fontbuild.Format4 {
	return fontbuild.Format4{
		Segments: []fontbuild.Segment{
			{Start: 65, End: 90, Delta: delta},
			{Start: 0xffff, End: 0xffff, Delta: 1},
		},
	}
}

func TestCMapLastUnicodeRecordWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	b := cmapFont(
		fontbuild.UnicodeBMP(shiftedLatin(0)),
		fontbuild.Subtable{PlatformID: PlatformWindows, EncodingID: 1, Format4: shiftedLatin(50)},
		fontbuild.UnicodeBMP(shiftedLatin(100)),
	)
	otf, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(otf.CMap().Records) != 3 {
		t.Errorf("expected 3 encoding records, have %d", len(otf.CMap().Records))
	}
	if otf.CMap().Selected != otf.CMap().Records[2] {
		t.Errorf("expected last Unicode BMP record to be selected, is %s", otf.CMap().Selected)
	}
	if g, ok := otf.GlyphIndex('A'); !ok || g != 165 {
		t.Errorf("expected 'A' to map to glyph 165, is %d/%v", g, ok)
	}
}

func TestCMapOnlyUnicodeBMPQualifies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	b := cmapFont(
		fontbuild.Subtable{PlatformID: PlatformUnicode, EncodingID: 4, Format4: shiftedLatin(20)},
		fontbuild.UnicodeBMP(shiftedLatin(10)),
		fontbuild.Subtable{PlatformID: PlatformWindows, EncodingID: 1, Format4: shiftedLatin(50)},
	)
	otf, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	if g, ok := otf.GlyphIndex('Z'); !ok || g != 100 {
		t.Errorf("expected 'Z' to map to glyph 100, is %d/%v", g, ok)
	}
	dir, _ := ParseDirectory(b)
	cmap, err := ParseCMap(b, dir)
	if err != nil {
		t.Fatal(err)
	}
	if cmap.Selected.Offset != otf.CMap().Selected.Offset {
		t.Errorf("expected ParseCMap to select the same subtable as Parse")
	}
	if cmap.Header.SubTableCount != 3 {
		t.Errorf("expected cmap header to declare 3 sub-tables, is %d", cmap.Header.SubTableCount)
	}
}

func TestCMapMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	noCMap := fontbuild.Font{Tables: []fontbuild.Table{{Tag: "head", Data: make([]byte, 54)}}}.Bytes()
	if _, err := Parse(noCMap); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected font without cmap to fail with ErrMissingTable, got %v", err)
	}
	noUnicode := cmapFont(
		fontbuild.Subtable{PlatformID: PlatformWindows, EncodingID: 1, Format4: shiftedLatin(0)},
		fontbuild.Subtable{PlatformID: PlatformMacintosh, EncodingID: 0, Format4: shiftedLatin(0)},
	)
	if _, err := Parse(noUnicode); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected cmap without Unicode BMP record to fail with ErrMissingTable, got %v", err)
	}
	empty := cmapFont()
	if _, err := Parse(empty); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected cmap without records to fail with ErrMissingTable, got %v", err)
	}
}

func TestCMapUnsupportedFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	format12 := make([]byte, 28)
	fontbuild.PutU16(format12, 0, 12)
	fontbuild.PutU32(format12, 4, 28)
	fontbuild.PutU32(format12, 12, 1)
	b := cmapFont(fontbuild.Subtable{PlatformID: PlatformUnicode, EncodingID: EncodingUnicodeBMP, Data: format12})
	_, err := Parse(b)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected format 12 to fail with ErrUnsupportedFormat, got %v", err)
	}
}

func TestCMapSegmentCapacity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	f4 := fontbuild.Format4{}
	for i := 0; i < 299; i++ {
		c := uint16(0x100 + 2*i)
		f4.Segments = append(f4.Segments, fontbuild.Segment{Start: c, End: c, Delta: 1})
	}
	f4.Segments = append(f4.Segments, fontbuild.Segment{Start: 0xffff, End: 0xffff, Delta: 1})
	b := fontbuild.UnicodeFont(f4)
	if _, err := Parse(b); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected 300 segments to exceed capacity, got %v", err)
	}
	otf, err := Parse(b, WithLimits(Limits{MaxSegments: 512}))
	if err != nil {
		t.Fatalf("expected 300 segments to fit into raised capacity, got %v", err)
	}
	sc := otf.CMap().Subtable.(*SegmentedCoverage)
	if sc.SegmentCount() != 300 {
		t.Errorf("expected 300 segments, have %d", sc.SegmentCount())
	}
	if g, ok := otf.GlyphIndex(0x102); !ok || g != 0x103 {
		t.Errorf("expected U+0102 to map to glyph 0x103, is %d/%v", g, ok)
	}
	if _, ok := otf.GlyphIndex(0x101); ok {
		t.Errorf("expected U+0101 to be unmapped")
	}
}

func TestCMapGlyphSlotCapacity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	f4 := fontbuild.Format4{
		Segments: []fontbuild.Segment{
			{Start: 0x4e00, End: 0x4e00 + 1024, RangeOffset: 4},
			{Start: 0xffff, End: 0xffff, Delta: 1},
		},
		GlyphIDs: make([]uint16, 1025),
	}
	for i := range f4.GlyphIDs {
		f4.GlyphIDs[i] = uint16(i + 1)
	}
	b := fontbuild.UnicodeFont(f4)
	if _, err := Parse(b); !errors.Is(err, ErrCapacity) {
		t.Errorf("expected 1025 glyph slots to exceed capacity, got %v", err)
	}
	otf, err := Parse(b, WithLimits(Limits{MaxGlyphSlots: 2048}))
	if err != nil {
		t.Fatalf("expected 1025 glyph slots to fit into raised capacity, got %v", err)
	}
	if g, ok := otf.GlyphIndex(0x4e00 + 1024); !ok || g != 1025 {
		t.Errorf("expected last code of segment to map to glyph 1025, is %d/%v", g, ok)
	}
}

func TestCMapMalformedFormat4(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	odd := shiftedLatin(0)
	odd.SegCountX2 = 5
	tooLong := shiftedLatin(0)
	tooLong.Length = 0xfff0
	tooShort := shiftedLatin(0)
	tooShort.Length = 10
	tests := []struct {
		name string
		f4   fontbuild.Format4
	}{
		{"odd segCountX2", odd},
		{"length exceeds font", tooLong},
		{"length too short for segments", tooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(fontbuild.UnicodeFont(tt.f4))
			if !errors.Is(err, ErrMalformedFont) {
				t.Errorf("expected ErrMalformedFont, got %v", err)
			}
		})
	}
}

func TestCMapMalformedTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	cmap := fontbuild.CMap(fontbuild.UnicodeBMP(shiftedLatin(0)))
	fontbuild.PutU32(cmap, 8, 60000) // subtable offset beyond end of font
	b := fontbuild.Font{Tables: []fontbuild.Table{{Tag: "cmap", Data: cmap}}}.Bytes()
	if _, err := Parse(b); !errors.Is(err, ErrMalformedFont) {
		t.Errorf("expected subtable offset out of bounds to fail with ErrMalformedFont, got %v", err)
	}
	// header declares 5 encoding records, but there are none
	b = fontbuild.Font{Tables: []fontbuild.Table{{Tag: "cmap", Data: []byte{0, 0, 0, 5}}}}.Bytes()
	if _, err := Parse(b); !errors.Is(err, ErrMalformedFont) {
		t.Errorf("expected truncated encoding records to fail with ErrMalformedFont, got %v", err)
	}
	// cmap record points beyond end of font
	b = fontbuild.UnicodeFont(shiftedLatin(0))
	fontbuild.PutU32(b, 12+8, uint32(len(b)))
	if _, err := Parse(b); !errors.Is(err, ErrMalformedFont) {
		t.Errorf("expected cmap offset out of bounds to fail with ErrMalformedFont, got %v", err)
	}
}

func TestCMapRecordOverflowClamps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	var subtables []fontbuild.Subtable
	subtables = append(subtables, fontbuild.UnicodeBMP(shiftedLatin(0)))
	for i := 1; i < 20; i++ {
		subtables = append(subtables, fontbuild.Subtable{PlatformID: PlatformWindows, EncodingID: 1,
			Format4: shiftedLatin(int16(i))})
	}
	otf, err := Parse(cmapFont(subtables...))
	if err != nil {
		t.Fatal(err)
	}
	if len(otf.CMap().Records) != DefaultLimits.MaxSubtables {
		t.Errorf("expected %d encoding records, have %d", DefaultLimits.MaxSubtables, len(otf.CMap().Records))
	}
	if otf.CMap().Header.SubTableCount != 20 {
		t.Errorf("expected header to keep declared count of 20, is %d", otf.CMap().Header.SubTableCount)
	}
	if len(otf.Warnings()) != 1 {
		t.Errorf("expected a warning about dropped encoding records, have %v", otf.Warnings())
	}
	// a qualifying record beyond capacity is not seen
	last := append(subtables[1:], fontbuild.UnicodeBMP(shiftedLatin(0)))
	if _, err := Parse(cmapFont(last...)); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected Unicode BMP record beyond capacity to be ignored, got %v", err)
	}
}

func TestCMapReservedPadWarning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	f4 := shiftedLatin(0)
	f4.ReservedPad = 3
	otf, err := Parse(fontbuild.UnicodeFont(f4))
	if err != nil {
		t.Fatal(err)
	}
	if len(otf.Warnings()) != 1 || otf.Warnings()[0].Table != T("cmap") {
		t.Errorf("expected a warning for reservedPad, have %v", otf.Warnings())
	}
	sc := otf.CMap().Subtable.(*SegmentedCoverage)
	if sc.ReservedPad != 3 {
		t.Errorf("expected reservedPad to be kept, is %d", sc.ReservedPad)
	}
	if g, ok := otf.GlyphIndex('B'); !ok || g != 66 {
		t.Errorf("expected 'B' to still map to glyph 66, is %d/%v", g, ok)
	}
}
