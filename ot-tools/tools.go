package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/sfntcmap"
	"github.com/npillmayer/sfntcmap/ot"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for SFNT font diagnostics and character to glyph mapping.")

	commando.
		Register("glyphs").
		SetDescription("Resolve characters to glyph indices using the font's Unicode BMP cmap.").
		SetShortDescription("map text to glyphs").
		AddArgument("font", "font file path", "").
		AddArgument("text...", "text to map (several arguments are joined by commas)", "").
		AddFlag("codepoints,c", "hexadecimal code-points instead of text, e.g. U+0041,U+00E4", commando.String, "-").
		AddFlag("maxsize,m", "maximum font file size in bytes (0 uses default)", commando.Int, 0).
		SetAction(runGlyphsCommand)

	commando.
		Register("font").
		SetDescription("Print diagnostics and table information for a font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "font file path", "").
		AddArgument("tables...", "optional list of table tags (e.g. cmap,head)", "").
		AddFlag("maxsize,m", "maximum font file size in bytes (0 uses default)", commando.Int, 0).
		AddFlag("checksums,k", "validate table checksums", commando.Bool, nil).
		AddFlag("errors,e", "print parse warnings", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.
		Register("export").
		SetDescription("Write a CBOR snapshot of the font's directory and cmap segments.").
		SetShortDescription("export snapshot").
		AddArgument("font", "font file path", "").
		AddFlag("output,o", "output file", commando.String, "font.cbor").
		AddFlag("maxsize,m", "maximum font file size in bytes (0 uses default)", commando.Int, 0).
		SetAction(runExportCommand)

	commando.Parse(nil)
}

func runGlyphsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	f := mustLoadFont(fontPath, mustFlagInt(flags["maxsize"], "maxsize"))
	codes, err := flags["codepoints"].GetString()
	if err != nil {
		fatalf("invalid --codepoints flag: %v", err)
	}
	text, err := glyphsInput(args["text"].Value, codes)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(formatGlyphOutput(f, text))
}

// glyphsInput selects the characters to map. A list of code-points given
// with --codepoints overrides the text argument; "-" is the flag's unset value.
func glyphsInput(text string, codes string) (string, error) {
	if codes = strings.TrimSpace(codes); codes == "" || codes == "-" {
		return text, nil
	}
	runes, err := parseCodepoints(codes)
	if err != nil {
		return "", err
	}
	return string(runes), nil
}

// parseCodepoints reads a list of hexadecimal code-points, optionally
// prefixed by "U+" or "0x", separated by commas or white space.
func parseCodepoints(list string) ([]rune, error) {
	var runes []rune
	for _, field := range splitCSVSpace(list) {
		digits := field
		for _, prefix := range []string{"U+", "u+", "0x", "0X"} {
			if d, ok := strings.CutPrefix(field, prefix); ok {
				digits = d
				break
			}
		}
		n, err := strconv.ParseUint(digits, 16, 32)
		switch {
		case err != nil || digits == "":
			return nil, fmt.Errorf("not a code-point: %q", field)
		case n > unicode.MaxRune:
			return nil, fmt.Errorf("code-point %q out of Unicode range", field)
		}
		runes = append(runes, rune(n))
	}
	if len(runes) == 0 {
		return nil, errors.New("empty list of code-points")
	}
	return runes, nil
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// formatGlyphOutput lists code-point/glyph pairs, separated by '|'.
// Unmapped code-points are shown with glyph 0 (.notdef) and marked by '!'.
func formatGlyphOutput(f *sfntcmap.ScalableFont, text string) string {
	sb := strings.Builder{}
	for _, r := range text {
		if sb.Len() > 0 {
			sb.WriteString("|")
		}
		g := sfntcmap.GlyphIndexOrNotdef(f, r)
		sb.WriteString(fmt.Sprintf("U+%04X=%d", r, g))
		if g == sfntcmap.NotdefGlyph {
			sb.WriteString("!")
		}
	}
	return sb.String()
}

func mustLoadFont(path string, maxsize int) *sfntcmap.ScalableFont {
	f, err := sfntcmap.LoadFont(path, ot.WithLimits(ot.Limits{MaxFileSize: maxsize}))
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	return f
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ot-tools: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
