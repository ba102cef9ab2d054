package otquery

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/npillmayer/sfntcmap/ot"
)

// FontSnapshot is a self-contained record of the structures parsed from a font,
// suitable for storing alongside glyph atlases or for comparing fonts.
type FontSnapshot struct {
	Name       string        `cbor:"1,keyasint,omitempty"`
	Type       string        `cbor:"2,keyasint"`
	ScalarType uint32        `cbor:"3,keyasint"`
	Tables     []TableEntry  `cbor:"4,keyasint"`
	Encoding   EncodingEntry `cbor:"5,keyasint"`
	Segments   []SegmentInfo `cbor:"6,keyasint"`
	GlyphIDs   []uint16      `cbor:"7,keyasint,omitempty"`
	NumGlyphs  int           `cbor:"8,keyasint,omitempty"`
}

// TableEntry is a table record of a FontSnapshot.
type TableEntry struct {
	Tag      string `cbor:"1,keyasint"`
	Offset   uint32 `cbor:"2,keyasint"`
	Length   uint32 `cbor:"3,keyasint"`
	Checksum uint32 `cbor:"4,keyasint"`
}

// EncodingEntry is the selected cmap encoding record of a FontSnapshot.
type EncodingEntry struct {
	Platform uint16 `cbor:"1,keyasint"`
	Encoding uint16 `cbor:"2,keyasint"`
	Format   uint16 `cbor:"3,keyasint"`
}

// TakeSnapshot collects the parsed structures of a font.
func TakeSnapshot(otf *ot.Font) FontSnapshot {
	snap := FontSnapshot{
		Name:      FontName(otf),
		Type:      FontType(otf),
		NumGlyphs: NumGlyphs(otf),
	}
	if otf == nil {
		return snap
	}
	snap.ScalarType = otf.Directory().Header.ScalarType
	for _, rec := range otf.Directory().Records {
		snap.Tables = append(snap.Tables, TableEntry{
			Tag:      rec.Tag.String(),
			Offset:   rec.Offset,
			Length:   rec.Length,
			Checksum: rec.Checksum,
		})
	}
	if cmap := otf.CMap(); cmap != nil {
		snap.Encoding = EncodingEntry{
			Platform: cmap.Selected.PlatformID,
			Encoding: cmap.Selected.EncodingID,
		}
		if cmap.Subtable != nil {
			snap.Encoding.Format = cmap.Subtable.Format()
		}
	}
	snap.Segments = Segments(otf)
	if sc := segmentedCoverage(otf); sc != nil {
		snap.GlyphIDs = sc.GlyphIDArray
	}
	return snap
}

// encMode produces deterministic output: equal fonts yield equal snapshots.
var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor encoding options: %v", err))
	}
	return em
}()

// Snapshot encodes the parsed structures of a font as CBOR.
func Snapshot(otf *ot.Font) ([]byte, error) {
	snap := TakeSnapshot(otf)
	b, err := encMode.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("cannot encode font snapshot: %w", err)
	}
	tracer().Debugf("font snapshot of %q has %d bytes", snap.Name, len(b))
	return b, nil
}

// ReadSnapshot decodes a snapshot produced by Snapshot.
func ReadSnapshot(b []byte) (FontSnapshot, error) {
	var snap FontSnapshot
	if err := cbor.Unmarshal(b, &snap); err != nil {
		return FontSnapshot{}, fmt.Errorf("cannot decode font snapshot: %w", err)
	}
	return snap, nil
}
