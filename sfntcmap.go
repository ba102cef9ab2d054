/*
Package sfntcmap maps Unicode characters to glyphs of TrueType and OpenType fonts.

A font file is read into memory completely, its table directory is parsed and
its character map ('cmap') is decoded. After that, glyph lookup is a pure
function over immutable data. Fonts are never altered after loading and may be
shared between goroutines without locking.

	f, err := sfntcmap.LoadFont("fonts/Go-Regular.ttf", ot.WithLimits(ot.Limits{MaxFileSize: 1 << 20}))
	if err != nil {
	    ...
	}
	gid, ok := sfntcmap.GlyphIndex(f, 'A')

Only the Unicode BMP subtable in segmented coverage format (platform 0, encoding 3,
format 4) is interpreted. Fonts lacking it are rejected with ot.ErrMissingTable,
fonts which have it in a different format with ot.ErrUnsupportedFormat.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

# Status

Does not contain methods for font collections (*.ttc), nor for glyph outlines,
metrics or shaping.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntcmap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sfntcmap'
func tracer() tracing.Trace {
	return tracing.Select("sfntcmap")
}
