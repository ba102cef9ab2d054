package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfntcmap/internal/fontbuild"
)

func parseSubtable(t *testing.T, f4 fontbuild.Format4) *SegmentedCoverage {
	t.Helper()
	otf, err := Parse(fontbuild.UnicodeFont(f4))
	if err != nil {
		t.Fatalf("cannot parse font: %v", err)
	}
	return otf.CMap().Subtable.(*SegmentedCoverage)
}

// segments creates a subtable in memory, without the detour through a font binary.
func segments(start, end []uint16, delta []int16, ro []uint16, glyphs ...uint16) *SegmentedCoverage {
	return &SegmentedCoverage{
		Header:        SubtableHeader{Format: 4},
		SegCountX2:    uint16(2 * len(end)),
		EndCode:       end,
		StartCode:     start,
		IDDelta:       delta,
		IDRangeOffset: ro,
		GlyphIDArray:  glyphs,
	}
}

func TestGlyphLookupBoundaries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	sc := parseSubtable(t, latinFormat4())
	tests := []struct {
		code  uint16
		glyph GlyphIndex
		found bool
	}{
		{0, 0, false},
		{64, 0, false},
		{65, 65, true},
		{77, 77, true},
		{90, 90, true},
		{91, 0, false},
		{0xfffe, 0, false},
		{0xffff, 0, true}, // sentinel segment maps to glyph 0 by delta 1
	}
	for _, tt := range tests {
		g, ok := sc.Lookup(tt.code)
		if ok != tt.found || (ok && g != tt.glyph) {
			t.Errorf("code %#04x: expected glyph %d/%v, have %d/%v", tt.code, tt.glyph, tt.found, g, ok)
		}
	}
}

func TestGlyphLookupDeltaWrapsAround(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	sc := parseSubtable(t, fontbuild.Format4{
		Segments: []fontbuild.Segment{
			{Start: 50, End: 60, Delta: -100},
			{Start: 0xff00, End: 0xff10, Delta: 0x200},
			{Start: 0xffff, End: 0xffff, Delta: 1},
		},
	})
	if g, ok := sc.Lookup(50); !ok || g != 65486 {
		t.Errorf("expected 50 - 100 to wrap around to 65486, is %d/%v", g, ok)
	}
	if g, ok := sc.Lookup(0xff01); !ok || g != 0x101 {
		t.Errorf("expected 0xff01 + 0x200 to wrap around to 0x101, is %d/%v", g, ok)
	}
}

func TestGlyphLookupRangeOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	sc := parseSubtable(t, fontbuild.Format4{
		Segments: []fontbuild.Segment{
			{Start: 65, End: 67, Delta: 5, RangeOffset: 4},
			{Start: 0xffff, End: 0xffff, Delta: 1},
		},
		GlyphIDs: []uint16{10, 0, 12},
	})
	if len(sc.GlyphIDArray) != 3 {
		t.Fatalf("expected 3 glyph id slots, have %d", len(sc.GlyphIDArray))
	}
	if g, ok := sc.Lookup(65); !ok || g != 15 {
		t.Errorf("expected 'A' to map to 10 + 5 = 15, is %d/%v", g, ok)
	}
	if g, ok := sc.Lookup(66); ok {
		t.Errorf("expected 'B' to hit the missing glyph slot, is %d", g)
	}
	if g, ok := sc.Lookup(67); !ok || g != 17 {
		t.Errorf("expected 'C' to map to 12 + 5 = 17, is %d/%v", g, ok)
	}
}

func TestGlyphLookupRangeOffsetOfLaterSegment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	// idRangeOffset of segment 1 (of 3) has to skip 2 entries of the idRangeOffset
	// array plus 2 slots of glyphIdArray belonging to segment 0.
	sc := parseSubtable(t, fontbuild.Format4{
		Segments: []fontbuild.Segment{
			{Start: 0x30, End: 0x31, RangeOffset: 6},
			{Start: 0x40, End: 0x41, RangeOffset: 8},
			{Start: 0xffff, End: 0xffff, Delta: 1},
		},
		GlyphIDs: []uint16{100, 101, 200, 201},
	})
	expected := map[uint16]GlyphIndex{0x30: 100, 0x31: 101, 0x40: 200, 0x41: 201}
	for code, glyph := range expected {
		if g, ok := sc.Lookup(code); !ok || g != glyph {
			t.Errorf("code %#04x: expected glyph %d, have %d/%v", code, glyph, g, ok)
		}
	}
}

func TestGlyphLookupSignedSlot(t *testing.T) {
	sc := segments([]uint16{65, 0xffff}, []uint16{65, 0xffff}, []int16{2, 1}, []uint16{4, 0}, 0xffff)
	if g, ok := sc.Lookup(65); !ok || g != 1 {
		t.Errorf("expected slot 0xffff (-1) + 2 to map to glyph 1, is %d/%v", g, ok)
	}
}

func TestGlyphLookupSlotOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	sc := segments([]uint16{65, 0xffff}, []uint16{70, 0xffff}, []int16{0, 1}, []uint16{4, 0}, 1, 2)
	if g, ok := sc.Lookup(66); !ok || g != 2 {
		t.Errorf("expected 'B' to map to glyph 2, is %d/%v", g, ok)
	}
	if g, ok := sc.Lookup(67); ok {
		t.Errorf("expected 'C' to be outside of glyph id array, is %d", g)
	}
	sc = segments([]uint16{65, 0xffff}, []uint16{70, 0xffff}, []int16{0, 1}, []uint16{0xfffe, 0}, 1, 2)
	if g, ok := sc.Lookup(65); ok {
		t.Errorf("expected huge range offset to point outside of glyph id array, is %d", g)
	}
}

func TestGlyphLookupFirstSegmentDecides(t *testing.T) {
	// segments are not sorted: 55 is covered by segment 1, but segment 0 is found first
	sc := segments(
		[]uint16{100, 50, 0xffff},
		[]uint16{200, 60, 0xffff},
		[]int16{1, 1, 1},
		[]uint16{0, 0, 0},
	)
	if g, ok := sc.Lookup(55); ok {
		t.Errorf("expected 55 not to be found, is %d", g)
	}
	if g, ok := sc.Lookup(150); !ok || g != 151 {
		t.Errorf("expected 150 to map to 151, is %d/%v", g, ok)
	}
}

func TestGlyphLookupInconsistentSubtable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.cmap")
	defer teardown()
	//
	sc := segments([]uint16{65}, []uint16{90}, []int16{0, 1}, []uint16{0})
	if _, ok := sc.Lookup(70); ok {
		t.Errorf("expected inconsistent subtable to map nothing")
	}
	sc = segments([]uint16{65}, []uint16{90}, []int16{0}, []uint16{0})
	sc.SegCountX2 = 4
	if _, ok := sc.Lookup(70); ok {
		t.Errorf("expected subtable with wrong segCountX2 to map nothing")
	}
	var empty *SegmentedCoverage
	if _, ok := ResolveGlyph(empty, 70); ok {
		t.Errorf("expected nil subtable to map nothing")
	}
	if _, ok := ResolveGlyph(&SegmentedCoverage{}, 70); ok {
		t.Errorf("expected subtable without segments to map nothing")
	}
}
