/*
Package otquery answers diagnostic questions about a parsed font: which tables it
contains, how its character map is structured, which characters of a range it
covers, and what the font calls itself.

None of the functions here is needed for glyph lookup. They are intended for
tools (see otcli) and for tests, and they never fail: missing or malformed
tables simply yield empty results.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.query'
func tracer() tracing.Trace {
	return tracing.Select("font.query")
}
