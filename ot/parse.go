package ot

import (
	"fmt"
)

// Sizes of fixed-size structures, in bytes.
const (
	fontHeaderSize  = 12 // offset subtable
	tableRecordSize = 16 // tag + checksum + offset + length
)

// ---------------------------------------------------------------------------

// Parse parses an SFNT font from a byte slice.
// An ot.Font keeps a reference to the font's byte-data after the Parse function returns.
// The data is assumed immutable while the ot.Font remains in use.
//
// Parse either returns a complete font or an error; there is no partial result.
// Errors wrap one of ErrCapacity, ErrMissingTable, ErrUnsupportedFormat or
// ErrMalformedFont.
func Parse(font []byte, opts ...ParseOption) (*Font, error) {
	cfg := newParseConfig(opts)
	ec := &errorCollector{}
	src := binarySegm(font)
	if len(src) == 0 {
		return nil, ec.fail(ErrCapacity, 0, "Binary", "empty font data", 0)
	}
	if len(src) > cfg.limits.MaxFileSize {
		return nil, ec.fail(ErrCapacity, 0, "Binary",
			fmt.Sprintf("font data of %d bytes exceeds capacity of %d bytes", len(src), cfg.limits.MaxFileSize), 0)
	}
	dir, err := parseDirectory(src, cfg, ec)
	if err != nil {
		return nil, err
	}
	if cfg.checksums {
		if err := validateChecksums(src, dir, cfg.strictChecksums, ec); err != nil {
			return nil, err
		}
	}
	cmap, err := parseCMap(src, dir, cfg, ec)
	if err != nil {
		return nil, err
	}
	otf := &Font{
		data:      src,
		directory: dir,
		cmap:      cmap,
	}
	// Transfer accumulated errors and warnings to the Font
	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings
	if ec.hasWarnings() {
		tracer().Infof("font parsed with %d warning(s)", len(ec.warnings))
	}
	return otf, nil
}

// --- Font directory --------------------------------------------------------

// ParseDirectory parses the offset subtable and the table records of a font.
// Table records beyond capacity are silently dropped; use Parse to receive
// warnings about dropped records.
func ParseDirectory(font []byte, opts ...ParseOption) (FontDirectory, error) {
	return parseDirectory(binarySegm(font), newParseConfig(opts), &errorCollector{})
}

func parseDirectory(src binarySegm, cfg *parseConfig, ec *errorCollector) (FontDirectory, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	hdr, err := src.view(0, fontHeaderSize)
	if err != nil {
		return FontDirectory{}, ec.fail(ErrMalformedFont, 0, "Header",
			fmt.Sprintf("font data of %d bytes too short for font header", len(src)), 0)
	}
	dir := FontDirectory{
		Header: FontHeader{
			ScalarType:    u32(hdr[0:]),
			TableCount:    u16(hdr[4:]),
			SearchRange:   u16(hdr[6:]),
			EntrySelector: u16(hdr[8:]),
			RangeShift:    u16(hdr[10:]),
		},
	}
	tracer().Debugf("header = %v, scalar type = %x|%s", dir.Header, dir.Header.ScalarType,
		Tag(dir.Header.ScalarType).String())
	n := int(dir.Header.TableCount)
	if n > cfg.limits.MaxTables {
		ec.addWarning(0, fmt.Sprintf("font declares %d tables, only the first %d will be read",
			n, cfg.limits.MaxTables), 4)
		n = cfg.limits.MaxTables
	}
	dir.Records = make([]TableRecord, 0, n)
	if n == 0 {
		return dir, nil
	}
	// "The Offset Table is followed immediately by the Table Record entries", 16 bytes each.
	size, err := checkedMulInt(tableRecordSize, n)
	if err != nil {
		return FontDirectory{}, ec.fail(ErrMalformedFont, 0, "TableRecords", err.Error(), fontHeaderSize)
	}
	buf, err := src.view(fontHeaderSize, size)
	if err != nil {
		return FontDirectory{}, ec.fail(ErrMalformedFont, 0, "TableRecords",
			fmt.Sprintf("%d table records exceed font size %d", n, len(src)), fontHeaderSize)
	}
	for b := buf; len(b) > 0; b = b[tableRecordSize:] {
		rec := TableRecord{
			Tag:      MakeTag(b[0:4]),
			Checksum: u32(b[4:8]),
			Offset:   u32(b[8:12]),
			Length:   u32(b[12:16]),
		}
		tracer().Debugf("table record %s", rec)
		dir.Records = append(dir.Records, rec)
	}
	return dir, nil
}
