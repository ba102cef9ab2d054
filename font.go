package sfntcmap

import (
	"github.com/npillmayer/sfntcmap/internal/fontload"
	"github.com/npillmayer/sfntcmap/ot"
)

// ScalableFont is an internal representation of an outline-font of type
// TTF of OTF, together with its parsed character map.
type ScalableFont struct {
	Fontname string
	Filepath string // file path, empty for fonts parsed from memory
	Binary   []byte // raw data
	*ot.Font        // table directory and cmap
}

// LoadFont reads a font file and parses it. The file must fit into the
// capacity set with ot.WithLimits (default 64 KB).
//
// Either a complete font is returned or an error. Errors wrap one of
// ot.ErrIO, ot.ErrCapacity, ot.ErrMissingTable, ot.ErrUnsupportedFormat or
// ot.ErrMalformedFont.
func LoadFont(fontfile string, opts ...ot.ParseOption) (*ScalableFont, error) {
	limits := ot.ResolveLimits(opts...)
	bytez, err := fontload.Read(fontfile, limits.MaxFileSize)
	if err != nil {
		tracer().Errorf("cannot load font %s: %v", fontfile, err)
		return nil, err
	}
	f, err := ParseFont(bytez, opts...)
	if err != nil {
		tracer().Errorf("cannot parse font %s: %v", fontfile, err)
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseFont parses a font from memory. The data must not change while the
// font is in use.
func ParseFont(fbytes []byte, opts ...ot.ParseOption) (*ScalableFont, error) {
	otf, err := ot.Parse(fbytes, opts...)
	if err != nil {
		return nil, err
	}
	f := &ScalableFont{
		Binary: fbytes,
		Font:   otf,
	}
	f.Fontname = fontload.FullName(fbytes)
	for _, w := range otf.Warnings() {
		tracer().Infof("font %q: %s", f.Fontname, w)
	}
	tracer().Debugf("loaded and parsed SFNT %s with %d tables", f.Fontname, otf.Directory().Len())
	return f, nil
}

// GlyphIndex returns the glyph index for a code-point of the Unicode BMP.
// If the font does not map the code-point, false is returned; this is a normal
// result, not an error.
func GlyphIndex(f *ScalableFont, code uint16) (ot.GlyphIndex, bool) {
	if f == nil || f.Font == nil {
		return 0, false
	}
	return f.Font.GlyphIndex(code)
}

// NotdefGlyph is the glyph every font uses for missing characters.
const NotdefGlyph ot.GlyphIndex = 0

// GlyphIndexOrNotdef returns the glyph for a rune, or NotdefGlyph if the font
// does not map it. Runes outside of the BMP always resolve to NotdefGlyph.
func GlyphIndexOrNotdef(f *ScalableFont, r rune) ot.GlyphIndex {
	if r < 0 || r > 0xffff {
		return NotdefGlyph
	}
	if g, ok := GlyphIndex(f, uint16(r)); ok {
		return g
	}
	return NotdefGlyph
}
