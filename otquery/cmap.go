package otquery

import (
	"fmt"
	"strings"

	"github.com/npillmayer/sfntcmap/ot"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

// SegmentInfo describes one segment of a format 4 cmap subtable.
type SegmentInfo struct {
	Index       int    `cbor:"1,keyasint"`
	Start       uint16 `cbor:"2,keyasint"`
	End         uint16 `cbor:"3,keyasint"`
	Delta       int16  `cbor:"4,keyasint"`
	RangeOffset uint16 `cbor:"5,keyasint"`
	Mapped      int    `cbor:"6,keyasint"` // number of codes in the segment which resolve to a glyph other than .notdef
}

// Size returns the number of character codes a segment spans, or 0 for an
// inverted segment (start > end).
func (seg SegmentInfo) Size() int {
	if seg.Start > seg.End {
		return 0
	}
	return int(seg.End) - int(seg.Start) + 1
}

func segmentedCoverage(otf *ot.Font) *ot.SegmentedCoverage {
	cmap := otf.CMap()
	if cmap == nil {
		return nil
	}
	sc, _ := cmap.Subtable.(*ot.SegmentedCoverage)
	return sc
}

// Segments lists the segments of a font's Unicode BMP subtable, in font order.
func Segments(otf *ot.Font) []SegmentInfo {
	sc := segmentedCoverage(otf)
	if sc == nil {
		return nil
	}
	segs := make([]SegmentInfo, 0, sc.SegmentCount())
	for i := 0; i < sc.SegmentCount(); i++ {
		seg := SegmentInfo{
			Index:       i,
			Start:       sc.StartCode[i],
			End:         sc.EndCode[i],
			Delta:       sc.IDDelta[i],
			RangeOffset: sc.IDRangeOffset[i],
		}
		if seg.Start <= seg.End {
			for c := int(seg.Start); c <= int(seg.End); c++ {
				if g, ok := sc.Lookup(uint16(c)); ok && g != 0 {
					seg.Mapped++
				}
			}
		}
		segs = append(segs, seg)
	}
	return segs
}

// CoverageEntry is a character code mapped by a font.
type CoverageEntry struct {
	Code  rune
	Glyph ot.GlyphIndex
	Name  string // Unicode character name
}

func (e CoverageEntry) String() string {
	return fmt.Sprintf("U+%04X → %d  %s", e.Code, e.Glyph, e.Name)
}

// Coverage lists all characters from the range [from…to] which a font maps to a
// glyph other than .notdef. The range is clipped to the Unicode BMP.
func Coverage(otf *ot.Font, from, to rune) []CoverageEntry {
	if from < 0 {
		from = 0
	}
	if to > 0xffff {
		to = 0xffff
	}
	var entries []CoverageEntry
	for r := from; r <= to; r++ {
		if g, ok := otf.GlyphIndex(uint16(r)); ok && g != 0 {
			entries = append(entries, CoverageEntry{
				Code:  r,
				Glyph: g,
				Name:  runenames.Name(r),
			})
		}
	}
	tracer().Debugf("font covers %d characters of [U+%04X…U+%04X]", len(entries), from, to)
	return entries
}

// CMapSummary describes the structure of a font's character map: its encoding
// records, which of them has been selected, and the format 4 subtable header.
func CMapSummary(otf *ot.Font) string {
	cmap := otf.CMap()
	if cmap == nil {
		return "font has no cmap\n"
	}
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "cmap @%d: version %d, %d sub-table(s)\n", cmap.Offset,
		cmap.Header.Version, cmap.Header.SubTableCount)
	for i, rec := range cmap.Records {
		marker := " "
		if rec == cmap.Selected {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s [%d] %s\n", marker, i, rec)
	}
	sc := segmentedCoverage(otf)
	if sc == nil {
		return sb.String()
	}
	fmt.Fprintf(&sb, "format %d, length %d, language %d\n", sc.Header.Format, sc.Header.Length,
		sc.Header.Language)
	fmt.Fprintf(&sb, "segCountX2 %d, searchRange %d, entrySelector %d, rangeShift %d\n",
		sc.SegCountX2, sc.SearchRange, sc.EntrySelector, sc.RangeShift)
	fmt.Fprintf(&sb, "%d segments, %d glyph id slots\n", sc.SegmentCount(), len(sc.GlyphIDArray))
	if n := NumGlyphs(otf); n > 0 {
		beyond := 0
		for _, seg := range Segments(otf) {
			for c := int(seg.Start); seg.Start <= seg.End && c <= int(seg.End); c++ {
				if g, ok := sc.Lookup(uint16(c)); ok && int(g) >= n {
					beyond++
				}
			}
		}
		fmt.Fprintf(&sb, "font has %d glyphs", n)
		if beyond > 0 {
			fmt.Fprintf(&sb, ", %d code(s) map beyond the last glyph", beyond)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// SegmentListing renders the segments of a font's cmap as a table.
func SegmentListing(otf *ot.Font) string {
	data := [][]string{
		{"Index", "Start", "End", "Delta", "RangeOffset", "Mapped"},
	}
	for _, seg := range Segments(otf) {
		data = append(data, []string{
			fmt.Sprintf("%d", seg.Index),
			fmt.Sprintf("U+%04X", seg.Start),
			fmt.Sprintf("U+%04X", seg.End),
			fmt.Sprintf("%d", seg.Delta),
			fmt.Sprintf("%d", seg.RangeOffset),
			fmt.Sprintf("%d/%d", seg.Mapped, seg.Size()),
		})
	}
	return render(data)
}

// TableListing renders the table directory of a font.
func TableListing(otf *ot.Font) string {
	data := [][]string{
		{"Tag", "Offset", "Length", "Checksum"},
	}
	if otf != nil {
		for _, rec := range otf.Directory().Records {
			data = append(data, []string{
				rec.Tag.String(),
				fmt.Sprintf("%d", rec.Offset),
				fmt.Sprintf("%d", rec.Length),
				fmt.Sprintf("0x%08x", rec.Checksum),
			})
		}
	}
	return render(data)
}

func render(data [][]string) string {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		tracer().Errorf("cannot render table: %v", err)
		return ""
	}
	return s
}
