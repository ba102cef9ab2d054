package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/sfntcmap/ot"
	"github.com/npillmayer/sfntcmap/otquery"
	"github.com/pterm/pterm"
)

var errNoFont = errors.New("no font loaded")

func tablesOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	dir := intp.font.Directory()
	pterm.Printf("%s font, %d tables (header declares %d)\n", otquery.FontType(intp.font.Font),
		dir.Len(), dir.Header.TableCount)
	pterm.Println(otquery.TableListing(intp.font.Font))
	return nil, false
}

// tableOp dumps the first bytes of a table, e.g. "table:head" or "table:name:64".
func tableOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	if op.noArg() {
		return errors.New("usage: table:<tag>[:<bytes>]"), false
	}
	tag := ot.T(op.arg)
	b := intp.font.Table(tag)
	if b == nil {
		return fmt.Errorf("table %q not found in font", tag), false
	}
	n := 64
	if op.format != "" {
		var err error
		if n, err = strconv.Atoi(op.format); err != nil || n <= 0 {
			return fmt.Errorf("byte count not numeric: %v", op.format), false
		}
	}
	tracer().Infof("setting table: %v", tag)
	pterm.Printf("table %s has %d bytes\n", tag, len(b))
	if n > len(b) {
		n = len(b)
	}
	pterm.Println(hex.Dump(b[:n]))
	return nil, false
}

func nameOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	pterm.Printf("name: %s\n", otquery.FontName(intp.font.Font))
	for id, value := range otquery.NamesRange(intp.font.Font) {
		pterm.Printf("  [%2d] %s\n", id, value)
	}
	if n := otquery.NumGlyphs(intp.font.Font); n > 0 {
		pterm.Printf("glyphs: %d\n", n)
	}
	if h, ok := otquery.HeadInfo(intp.font.Font); ok {
		pterm.Printf("units per em: %d, revision 0x%08x\n", h.UnitsPerEm, h.FontRevision)
		if h.MagicNumber != otquery.HeadMagicNumber {
			pterm.Error.Printf("head has wrong magic number 0x%08x\n", h.MagicNumber)
		}
	}
	return nil, false
}

func warningsOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	warnings := intp.font.Warnings()
	if op.arg == "checksums" {
		warnings = intp.font.ValidateChecksums()
	}
	if len(warnings) == 0 {
		pterm.Println("no warnings")
	}
	for _, w := range warnings {
		pterm.Println(w.String())
	}
	return nil, false
}
