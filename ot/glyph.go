package ot

// ResolveGlyph returns the glyph index a format 4 cmap subtable maps a character
// code to. If the code is not covered by any segment, or if it maps to the reserved
// "missing glyph" entry of the glyph id array, false is returned.
func ResolveGlyph(t *SegmentedCoverage, code uint16) (GlyphIndex, bool) {
	return t.Lookup(code)
}

// Lookup returns the glyph index for a character code, or false if the code is not
// mapped.
//
// Segments are searched linearly in the order they appear in the font, and the first
// segment with endCode ≥ code is the only one considered. Arithmetic is modulo 65536,
// as required by the format: idDelta is a signed value added to an unsigned one.
func (t *SegmentedCoverage) Lookup(code uint16) (GlyphIndex, bool) {
	if t == nil {
		return 0, false
	}
	if !t.consistent() {
		tracer().Errorf("format 4 segment arrays inconsistent with segCountX2 = %d", t.SegCountX2)
		return 0, false
	}
	inx := -1
	for i, end := range t.EndCode {
		if end >= code {
			inx = i
			break
		}
	}
	if inx < 0 || t.StartCode[inx] > code {
		return 0, false
	}
	delta := uint16(t.IDDelta[inx])
	if t.IDRangeOffset[inx] == 0 {
		return GlyphIndex(code + delta), true
	}
	// idRangeOffset is relative to its own position in the idRangeOffset array,
	// which directly precedes glyphIdArray.
	addr := int(t.IDRangeOffset[inx]/2) + int(code-t.StartCode[inx]) - (t.SegmentCount() - inx)
	if addr < 0 || addr >= len(t.GlyphIDArray) {
		tracer().Debugf("glyph id array index %d out of range for code %d", addr, code)
		return 0, false
	}
	g := int16(t.GlyphIDArray[addr])
	if g == 0 {
		return 0, false
	}
	return GlyphIndex(uint16(g) + delta), true
}
