package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/sfntcmap"
	"github.com/npillmayer/sfntcmap/otquery"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

func cmapOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	pterm.Printf("%s", otquery.CMapSummary(intp.font.Font))
	return nil, false
}

func segmentsOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	pterm.Println(otquery.SegmentListing(intp.font.Font))
	return nil, false
}

// glyphOp resolves a character, e.g. "glyph:A", "glyph:U+00E4" or "glyph:228".
func glyphOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	r, err := parseCode(op.arg)
	if err != nil {
		return err, false
	}
	if r > 0xffff {
		pterm.Printf("U+%04X is outside of the BMP => .notdef\n", r)
		return nil, false
	}
	if g, ok := sfntcmap.GlyphIndex(intp.font, uint16(r)); ok {
		pterm.Printf("U+%04X %s => glyph %d\n", r, runenames.Name(r), g)
	} else {
		pterm.Printf("U+%04X %s => not found\n", r, runenames.Name(r))
	}
	return nil, false
}

// coverageOp lists covered characters of a range, e.g. "coverage:0041-007A".
func coverageOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	from, to, err := parseRange(op.arg)
	if err != nil {
		return err, false
	}
	entries := otquery.Coverage(intp.font.Font, from, to)
	for _, e := range entries {
		pterm.Println(e.String())
	}
	pterm.Printf("%d of %d characters covered\n", len(entries), to-from+1)
	return nil, false
}

// exportOp writes a CBOR snapshot of the font's structures, e.g. "export:font.cbor".
func exportOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	if op.noArg() {
		return errors.New("usage: export:<file>"), false
	}
	b, err := otquery.Snapshot(intp.font.Font)
	if err != nil {
		return err, false
	}
	if err = os.WriteFile(op.arg, b, 0o644); err != nil {
		return err, false
	}
	pterm.Printf("wrote %d bytes to %s\n", len(b), op.arg)
	return nil, false
}

// parseCode accepts a single character, a code-point in U+ or 0x notation,
// or a decimal number.
func parseCode(arg string) (rune, error) {
	if arg == "" {
		return 0, errors.New("usage: glyph:<char>|U+<hex>|0x<hex>|<decimal>")
	}
	upper := strings.ToUpper(arg)
	switch {
	case strings.HasPrefix(upper, "U+"), strings.HasPrefix(upper, "0X"):
		n, err := strconv.ParseUint(arg[2:], 16, 32)
		if err != nil || n > utf8.MaxRune {
			return 0, fmt.Errorf("not a code-point: %s", arg)
		}
		return rune(n), nil
	case utf8.RuneCountInString(arg) == 1:
		r, _ := utf8.DecodeRuneInString(arg)
		return r, nil
	}
	n, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || n > utf8.MaxRune {
		return 0, fmt.Errorf("not a code-point: %s", arg)
	}
	return rune(n), nil
}

// parseRange accepts two hexadecimal code-points separated by '-'.
func parseRange(arg string) (from, to rune, err error) {
	lo, hi, ok := strings.Cut(arg, "-")
	if !ok {
		return 0, 0, errors.New("usage: coverage:<hex>-<hex>")
	}
	var n, m uint64
	if n, err = strconv.ParseUint(strings.TrimPrefix(strings.ToUpper(lo), "U+"), 16, 32); err != nil {
		return 0, 0, fmt.Errorf("not a code-point: %s", lo)
	}
	if m, err = strconv.ParseUint(strings.TrimPrefix(strings.ToUpper(hi), "U+"), 16, 32); err != nil {
		return 0, 0, fmt.Errorf("not a code-point: %s", hi)
	}
	if n > m || m > 0xffff {
		return 0, 0, fmt.Errorf("invalid range of BMP code-points: %s", arg)
	}
	return rune(n), rune(m), nil
}
