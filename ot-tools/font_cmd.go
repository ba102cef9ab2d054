package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/npillmayer/sfntcmap"
	"github.com/npillmayer/sfntcmap/ot"
	"github.com/npillmayer/sfntcmap/otquery"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	opts := []ot.ParseOption{ot.WithLimits(ot.Limits{MaxFileSize: mustFlagInt(flags["maxsize"], "maxsize")})}
	if mustFlagBool(flags["checksums"], "checksums") {
		opts = append(opts, ot.WithChecksums())
	}
	f, err := sfntcmap.LoadFont(fontPath, opts...)
	if err != nil {
		fatalf("cannot load font %s: %v", fontPath, err)
	}

	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Type: %s\n", otquery.FontType(f.Font))
	if name := otquery.FontName(f.Font); name != "" {
		fmt.Printf("Name: %s\n", name)
	}
	if n := otquery.NumGlyphs(f.Font); n > 0 {
		fmt.Printf("Glyphs: %d\n", n)
	}

	tags := f.Directory().Tags()
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	fmt.Printf("Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Printf(" %s", tag.String())
	}
	fmt.Println()
	fmt.Print(otquery.CMapSummary(f.Font))

	warns := f.Warnings()
	fmt.Printf("Issues: warnings=%d\n", len(warns))
	if len(args["tables"].Value) > 0 {
		printSelectedTables(f.Font, args["tables"].Value)
	}
	if mustFlagBool(flags["errors"], "errors") {
		for _, w := range warns {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

func printSelectedTables(otf *ot.Font, raw string) {
	for _, name := range splitCSVSpace(raw) {
		tag := ot.T(name)
		b := otf.Table(tag)
		if b == nil {
			fmt.Printf("Table %s: missing\n", tag)
			continue
		}
		rec, _ := otf.Directory().Lookup(tag)
		fmt.Printf("Table %s: offset=%d length=%d checksum=0x%08x\n", tag, rec.Offset, rec.Length, rec.Checksum)
		n := min(len(b), 32)
		fmt.Print(hex.Dump(b[:n]))
	}
}

func runExportCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	f := mustLoadFont(fontPath, mustFlagInt(flags["maxsize"], "maxsize"))
	out, err := flags["output"].GetString()
	if err != nil {
		fatalf("invalid --output flag: %v", err)
	}
	b, err := otquery.Snapshot(f.Font)
	if err != nil {
		fatalf("%v", err)
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		fatalf("cannot write %s: %v", out, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", out, len(b))
}
