package otquery

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfntcmap/internal/fontbuild"
	"github.com/npillmayer/sfntcmap/ot"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	otf *ot.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.query")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// testFont maps 'A'…'C' to glyphs 1…3 through the glyph id array, and
// 'a'…'z' to glyphs 1…26 by delta. Glyph 2 of the array is missing.
func testFont() []byte {
	head := make([]byte, 54)
	fontbuild.PutU16(head, 0, 1)
	fontbuild.PutU32(head, 12, HeadMagicNumber)
	fontbuild.PutU16(head, 18, 2048)
	return fontbuild.UnicodeFont(fontbuild.Format4{
		Segments: []fontbuild.Segment{
			{Start: 'A', End: 'C', RangeOffset: 6},
			{Start: 'a', End: 'z', Delta: 1 - 'a'},
			{Start: 0xffff, End: 0xffff, Delta: 1},
		},
		GlyphIDs: []uint16{1, 0, 3},
	},
		fontbuild.Table{Tag: "head", Data: head},
		fontbuild.Table{Tag: "maxp", Data: fontbuild.MaxP(20)},
		fontbuild.Table{Tag: "name", Data: fontbuild.Name(
			fontbuild.NameEntry{NameID: uint16(sfnt.NameIDFamily), Value: "Test Sans"},
			fontbuild.NameEntry{NameID: uint16(sfnt.NameIDSubfamily), Value: "Regular"},
			fontbuild.NameEntry{NameID: uint16(sfnt.NameIDFull), Value: "Test Sans Regular"},
		)},
	)
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.cmap").SetTraceLevel(tracing.LevelError)
	otf, err := ot.Parse(testFont())
	env.Require().NoError(err)
	env.otf = otf
	tracing.Select("font.cmap").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	env.Equal("TrueType", FontType(env.otf), "expected font type of test font to be TrueType")
	env.Equal("unknown", FontType(nil))
}

func (env *InfoTestEnviron) TestNames() {
	env.Equal("Test Sans Regular", FontName(env.otf))
	names := map[sfnt.NameID]string{}
	for id, value := range NamesRange(env.otf) {
		names[id] = value
	}
	env.Len(names, 3)
	env.Equal("Test Sans", names[sfnt.NameIDFamily])
}

func (env *InfoTestEnviron) TestNameFromFamily() {
	b := fontbuild.UnicodeFont(fontbuild.Format4{
		Segments: []fontbuild.Segment{{Start: 0xffff, End: 0xffff, Delta: 1}},
	}, fontbuild.Table{Tag: "name", Data: fontbuild.Name(
		fontbuild.NameEntry{NameID: uint16(sfnt.NameIDFamily), Value: "Test"},
		fontbuild.NameEntry{NameID: uint16(sfnt.NameIDSubfamily), Value: "Bold"},
	)})
	otf, err := ot.Parse(b)
	env.Require().NoError(err)
	env.Equal("Test Bold", FontName(otf))
	env.Equal(0, NumGlyphs(otf), "expected font without maxp to have 0 glyphs")
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'head'")
	env.Equal(HeadMagicNumber, h.MagicNumber, "expected OpenType head magic number")
	env.Equal(uint16(2048), h.UnitsPerEm)
	env.Equal(uint16(1), h.MajorVersion)
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'maxp'")
	env.Equal(uint16(20), m.NumGlyphs, "expected matching numGlyphs")
	env.Equal(uint32(0x00005000), m.VersionFixed)
	env.Equal(20, NumGlyphs(env.otf))
}

func (env *InfoTestEnviron) TestSegments() {
	segs := Segments(env.otf)
	env.Require().Len(segs, 3)
	env.Equal(uint16('A'), segs[0].Start)
	env.Equal(2, segs[0].Mapped, "expected the missing glyph slot not to count")
	env.Equal(3, segs[0].Size())
	env.Equal(26, segs[1].Mapped)
	env.Equal(int16(1), segs[2].Delta)
	listing := SegmentListing(env.otf)
	env.Contains(listing, "U+0041")
	env.Contains(listing, "2/3")
}

func (env *InfoTestEnviron) TestCoverage() {
	cov := Coverage(env.otf, '@', 'D')
	env.Require().Len(cov, 2)
	env.Equal('A', cov[0].Code)
	env.Equal(ot.GlyphIndex(1), cov[0].Glyph)
	env.Equal("LATIN CAPITAL LETTER A", cov[0].Name)
	env.Equal('C', cov[1].Code)
	env.Equal(ot.GlyphIndex(3), cov[1].Glyph)
	env.True(strings.HasPrefix(cov[1].String(), "U+0043"))
	env.Len(Coverage(env.otf, 0, 0x10ffff), 28, "expected coverage to be clipped to the BMP")
	env.Empty(Coverage(env.otf, 'Z', 'A'))
}

func (env *InfoTestEnviron) TestCMapSummary() {
	summary := CMapSummary(env.otf)
	env.T().Logf("cmap summary:\n%s", summary)
	env.Contains(summary, "1 sub-table(s)")
	env.Contains(summary, "* [0] platform=0 encoding=3")
	env.Contains(summary, "3 segments, 3 glyph id slots")
	// 't'…'z' map to glyphs 20…26, beyond the last of 20 glyphs
	env.Contains(summary, "font has 20 glyphs, 7 code(s) map beyond the last glyph")
	env.Equal("font has no cmap\n", CMapSummary(nil))
}

func (env *InfoTestEnviron) TestTableListing() {
	listing := TableListing(env.otf)
	for _, tag := range []string{"cmap", "head", "maxp", "name"} {
		env.Contains(listing, tag)
	}
	env.Contains(listing, "Checksum")
}

func (env *InfoTestEnviron) TestSnapshot() {
	b, err := Snapshot(env.otf)
	env.Require().NoError(err)
	again, err := Snapshot(env.otf)
	env.Require().NoError(err)
	env.Equal(b, again, "expected snapshots to be deterministic")
	snap, err := ReadSnapshot(b)
	env.Require().NoError(err)
	env.Equal("Test Sans Regular", snap.Name)
	env.Equal("TrueType", snap.Type)
	env.Equal(20, snap.NumGlyphs)
	env.Len(snap.Tables, 4)
	env.Equal("cmap", snap.Tables[0].Tag)
	env.Equal(EncodingEntry{Platform: 0, Encoding: 3, Format: 4}, snap.Encoding)
	env.Equal(Segments(env.otf), snap.Segments)
	env.Equal([]uint16{1, 0, 3}, snap.GlyphIDs)
	_, err = ReadSnapshot([]byte{0xff, 0x00})
	env.Error(err)
}
