package otquery

import (
	"github.com/npillmayer/sfntcmap/ot"
)

// HeadTableInfo is a typed query view over table 'head'.
// Dates, bounding box and style fields are not decoded.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	IndexToLocFormat   int16
}

const headTableSize = 54

// HeadMagicNumber is the value of HeadTableInfo.MagicNumber for well-formed fonts.
const HeadMagicNumber uint32 = 0x5F0F3CF5

// HeadInfo decodes table 'head' from raw bytes.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	b := otf.Table(ot.T("head"))
	if len(b) < headTableSize {
		return info, false
	}
	info.MajorVersion = u16(b[0:2])
	info.MinorVersion = u16(b[2:4])
	info.FontRevision = u32(b[4:8])
	info.CheckSumAdjustment = u32(b[8:12])
	info.MagicNumber = u32(b[12:16])
	info.Flags = u16(b[16:18])
	info.UnitsPerEm = u16(b[18:20])
	info.IndexToLocFormat = int16(u16(b[50:52]))
	return info, true
}

// FontType returns the kind of outlines a font carries, derived from the scalar
// type in the font header: "TrueType", "OpenType" (CFF), "Type1" or "unknown".
func FontType(otf *ot.Font) string {
	if otf == nil {
		return "unknown"
	}
	switch otf.Directory().Header.ScalarType {
	case 0x00010000, uint32(ot.T("true")):
		return "TrueType"
	case uint32(ot.T("OTTO")):
		return "OpenType"
	case uint32(ot.T("typ1")):
		return "Type1"
	}
	return "unknown"
}
