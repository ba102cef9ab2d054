/*
Package ot reads the binary structure of SFNT fonts (TrueType and OpenType) and
resolves Unicode code-points to glyph indices.

Intended audience for this package are glyph-atlas builders and renderers which need
to know which glyph of a font represents a given character, but do not want to pull in
a complete font engine. Package `ot` is a low-level package: it parses the table
directory of a font and its character-to-glyph mapping ('cmap'), and nothing more.
Other tables are enumerated and handed out as raw bytes, but never interpreted.

The parsing steps are:

▪︎ the offset table (a.k.a. font header) and the table directory, see ParseDirectory

▪︎ the 'cmap' header and its encoding records, see ParseCMap

▪︎ the one 'cmap' subtable in segmented coverage format (format 4) which maps the
Unicode BMP, i.e. platform 0 (Unicode) with encoding 3. If more than one encoding
record qualifies, the last one in the table wins.

Glyph lookup then works on the parsed, immutable structures only. A parsed Font
is never changed after Parse returns and may be shared between goroutines freely.

# Byte order

All numeric values in a font file are stored big-endian. Values are copied out of
the font's bytes as they are laid out in memory and then normalized to the host's
byte order (see ToHostOrder16 and friends). The raw font data itself is never changed.

# Capacities

Every structure has a fixed capacity (see Limits). Tables and encoding records
beyond capacity are dropped with a warning, while segment arrays of format 4
exceeding capacity are rejected with ErrCapacity.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.cmap'
func tracer() tracing.Trace {
	return tracing.Select("font.cmap")
}
