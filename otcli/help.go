package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "cmap", "segments", "format4":
		pterm.Info.Println("cmap / format 4")
		pterm.Println(`
	Table cmap starts with a list of encoding records:
	+----------+----------+---------------------+
	| Platform | Encoding | Offset to subtable  |
	+----------+----------+---------------------+
	Only platform 0 (Unicode) / encoding 3 (BMP) is used; the last such record wins.

	The subtable (format 4) maps segments of character codes:
	+---------+-----------+---------+---------------+
	| endCode | startCode | idDelta | idRangeOffset |
	+---------+-----------+---------+---------------+
	For idRangeOffset 0, glyph = code + idDelta (mod 65536),
	otherwise the glyph is looked up in glyphIdArray and idDelta is added.
	The last segment maps 0xFFFF and terminates the list.
	`)
	case "glyph", "coverage":
		pterm.Info.Println("glyph / coverage")
		pterm.Println(`
	glyph:A          resolve character 'A'
	glyph:U+00E4     resolve a code-point given in hex
	glyph:228        resolve a code-point given in decimal
	coverage:41-7A   list all characters of a range which map to a glyph
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	tables                 list the table directory
	table:<tag>[:<n>]      dump the first n bytes of a table
	cmap                   summarize the character map
	segments               list the segments of the format 4 subtable
	glyph:<char>           resolve a character to a glyph index
	coverage:<from>-<to>   list covered characters of a range
	name                   show names from table 'name'
	warnings[:checksums]   show parsing warnings, or validate checksums
	export:<file>          write a CBOR snapshot of the font's structures
	help[:<topic>]         topics: cmap, glyph
	quit
	Commands may be chained, separated by blanks.
	`)
	}
}
