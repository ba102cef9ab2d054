package otquery

import (
	"github.com/npillmayer/sfntcmap/ot"
)

// MaxPTableInfo is a typed query view over table 'maxp'. Only the fields common
// to versions 0.5 (CFF fonts) and 1.0 (TrueType fonts) are decoded.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16
}

const maxpMinSize = 6

// MaxPInfo decodes table 'maxp' from raw bytes.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func MaxPInfo(otf *ot.Font) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	b := otf.Table(ot.T("maxp"))
	if len(b) < maxpMinSize {
		return info, false
	}
	info.VersionFixed = u32(b[0:4])
	info.NumGlyphs = u16(b[4:6])
	return info, true
}

// NumGlyphs returns the number of glyphs in a font, or 0 if the font has no
// readable 'maxp' table.
func NumGlyphs(otf *ot.Font) int {
	info, ok := MaxPInfo(otf)
	if !ok {
		return 0
	}
	return int(info.NumGlyphs)
}
