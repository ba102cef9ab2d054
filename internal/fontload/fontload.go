// Package fontload reads font files into memory, within a fixed capacity.
package fontload

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfntcmap/ot"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'font.cmap'
func tracer() tracing.Trace {
	return tracing.Select("font.cmap")
}

// Read loads a font file completely into memory. The file must not be empty and
// must not be larger than maxSize bytes.
//
// Errors wrap ot.ErrIO if the file cannot be opened or read, and ot.ErrCapacity
// if its size is out of range. No data is returned on error.
func Read(fontfile string, maxSize int) ([]byte, error) {
	f, err := os.Open(fontfile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ot.ErrIO, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ot.ErrIO, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ot.ErrIO, fontfile)
	}
	size := info.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: font file %s is empty", ot.ErrCapacity, fontfile)
	}
	if size > int64(maxSize) {
		return nil, fmt.Errorf("%w: font file %s has %d bytes, capacity is %d bytes",
			ot.ErrCapacity, fontfile, size, maxSize)
	}
	bytez := make([]byte, size)
	if _, err = io.ReadFull(f, bytez); err != nil {
		return nil, fmt.Errorf("%w: %w", ot.ErrIO, err)
	}
	tracer().Debugf("read %d bytes from font file %s", size, fontfile)
	return bytez, nil
}

// FullName returns the full name of a font, as recorded in its 'name' table.
// Returns an empty string if the name cannot be determined; name lookup is a
// convenience and never an error.
func FullName(bytez []byte) string {
	f, err := sfnt.Parse(bytez)
	if err != nil {
		tracer().Debugf("cannot determine font name: %v", err)
		return ""
	}
	name, err := f.Name(nil, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}
