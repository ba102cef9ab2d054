package ot

import (
	"fmt"
)

// TableChecksum calculates the checksum of a font table: the sum of its
// big-endian 32-bit words, with a trailing partial word padded by zeros.
func TableChecksum(b []byte) uint32 {
	var sum uint32
	for len(b) >= 4 {
		sum += u32(b)
		b = b[4:]
	}
	if len(b) > 0 {
		var last [4]byte
		copy(last[:], b)
		sum += u32(last[:])
	}
	return sum
}

// ValidateChecksums checks the checksum of every table in the font's directory.
// Checksums are non-critical for glyph mapping, therefore any mismatch is
// returned as a warning. An empty result means that all checksums are correct.
func (otf *Font) ValidateChecksums() []FontWarning {
	if otf == nil {
		return nil
	}
	ec := &errorCollector{}
	_ = validateChecksums(otf.data, otf.directory, false, ec)
	return ec.warnings
}

// validateChecksums checks table checksums. Mismatches are recorded as warnings,
// or, if strict is set, reported as an error of kind ErrMalformedFont.
func validateChecksums(src binarySegm, dir FontDirectory, strict bool, ec *errorCollector) error {
	for _, rec := range dir.Records {
		end, err := checkedAddUint32(rec.Offset, rec.Length)
		if err != nil || end > uint32(len(src)) {
			issue := fmt.Sprintf("table bounds [%d:%d] exceed font size %d", rec.Offset,
				uint64(rec.Offset)+uint64(rec.Length), len(src))
			if strict {
				return ec.fail(ErrMalformedFont, rec.Tag, "Checksum", issue, rec.Offset)
			}
			ec.addWarning(rec.Tag, issue, rec.Offset)
			continue
		}
		b := src[rec.Offset:end]
		if rec.Tag == T("head") && len(b) >= 12 {
			// Field checkSumAdjustment of table 'head' is excluded from the checksum.
			dup := make([]byte, len(b))
			copy(dup, b)
			dup[8], dup[9], dup[10], dup[11] = 0, 0, 0, 0
			b = dup
		}
		if sum := TableChecksum(b); sum != rec.Checksum {
			issue := fmt.Sprintf("checksum mismatch: calculated 0x%08x, recorded 0x%08x", sum, rec.Checksum)
			if strict {
				return ec.fail(ErrMalformedFont, rec.Tag, "Checksum", issue, rec.Offset)
			}
			ec.addWarning(rec.Tag, issue, rec.Offset)
		}
	}
	return nil
}
