package otquery

import (
	"fmt"
	"iter"

	"github.com/npillmayer/sfntcmap/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// nameKey identifies a NameRecord entry in OpenType table 'name'.
// The key follows the OpenType NameRecord fields directly.
type nameKey struct {
	Platform uint16
	Encoding uint16
	Language uint16      // not supported
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
}

// isSupportedNameEncoding selects the UTF-16BE encoded records: Unicode BMP and
// Windows BMP. Macintosh records use legacy 8-bit encodings and are skipped.
func isSupportedNameEncoding(key nameKey) bool {
	return (key.Platform == ot.PlatformUnicode && key.Encoding == ot.EncodingUnicodeBMP) ||
		(key.Platform == ot.PlatformWindows && key.Encoding == 1)
}

// NamesRange yields decoded `(nameID, value)` pairs from a font's `name` table.
//
// Only currently supported encodings are yielded (Unicode BMP and Windows BMP),
// and malformed or out-of-bounds records are skipped.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	names := checkNameTableSafe(otf)
	return func(yield func(sfnt.NameID, string) bool) {
		if names == nil {
			return
		}
		count := int(u16(names[2:4])) // number of name records
		stringStorageOffset := int(u16(names[4:6]))
		for i := range count {
			recordSlice := names[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
			key := nameKey{
				Platform: u16(recordSlice[0:2]),
				Encoding: u16(recordSlice[2:4]),
				Language: u16(recordSlice[4:6]),
				Name:     sfnt.NameID(u16(recordSlice[6:8])),
			}
			if !isSupportedNameEncoding(key) {
				continue
			}
			strLen := int(u16(recordSlice[8:10]))
			start := stringStorageOffset + int(u16(recordSlice[10:12]))
			end := start + strLen
			if end > len(names) {
				continue
			}
			stringValue, err := decodeNameUTF16(names[start:end])
			if err != nil || stringValue == "" {
				continue
			}
			if !yield(key.Name, stringValue) {
				return
			}
		}
	}
}

// FontName returns the full name of a font. If the font does not record a full
// name, it is assembled from family and subfamily.
func FontName(otf *ot.Font) string {
	var full, family, subfamily string
	for nameID, value := range NamesRange(otf) {
		switch nameID {
		case sfnt.NameIDFull:
			if full == "" {
				full = value
			}
		case sfnt.NameIDFamily:
			if family == "" {
				family = value
			}
		case sfnt.NameIDSubfamily:
			if subfamily == "" {
				subfamily = value
			}
		}
	}
	if full != "" || family == "" {
		return full
	}
	if subfamily == "" {
		return family
	}
	return family + " " + subfamily
}

// checkNameTableSafe checks if the name table is safe to use, i.e. no out-of-bounds access,
// no empty tables, etc.
func checkNameTableSafe(otf *ot.Font) []byte {
	if otf == nil {
		return nil
	}
	b := otf.Table(ot.T("name"))
	if b == nil {
		tracer().Debugf("no name table found in font")
		return nil
	}
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return nil
	}
	count := int(u16(b[2:4]))
	strOff := int(u16(b[4:6]))
	if strOff > len(b) {
		tracer().Debugf("name table invalid string offset: %d", strOff)
		return nil
	}
	recordsEnd := nameHeaderSize + count*nameRecordSize
	if recordsEnd > len(b) {
		tracer().Debugf("name table record section out of bounds: count=%d", count)
		return nil
	}
	return b
}

func decodeNameUTF16(str []byte) (string, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	decoder := enc.NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return string(s), nil
}
