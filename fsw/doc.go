/*
Package fsw recognizes Formal SignWriting inside arbitrary text and decodes it.

Formal SignWriting (FSW) is a compact notation for SignWriting diagrams
(see http://signwriting.org). A sign is written as an optional temporal prefix
(a spelling of the sign as a sequence of symbols), followed by a lane marker,
the size of the sign and a list of symbols, each placed at (x,y)-coordinates:

	AS10011S10019S2e704S33b00M525x535S2e748483x510S10011501x466S10019476x475

Every field may alternatively be written as a single code-point from
the Sutton SignWriting block or private-use plane 4 ("SignWriting in Unicode",
FSWU), and the two forms may be
mixed freely within one sign. These two strings denote the same sign:

	"M500x500S10000490x490"
	"\U0001D803\U0001D906\U0001D906\U00040001\U0001D8FC\U0001D8FC"

The package provides a table driven recognizer for this grammar, operating one
code-point at a time. Text not belonging to a sign is handed back to the client
unchanged, as are partial matches which turn out not to be a sign after all.
Completed signs are decoded into symbol identifiers and lane-relative
coordinates (type Sign).

# Grammar

	SignToken   := Prefix? Visual | PunctSymbol Placement
	Prefix      := 'A' Symbol+
	Visual      := Lane Size Symbol Placement (Symbol Placement)*
	Lane        := 'B' | 'L' | 'M' | 'R'
	Size        := Width 'x' Height
	Placement   := Width 'x' Height
	Symbol      := 'S' Group Category Variant Fill Rotation
	PunctSymbol := a Symbol with Group '3' and Category '8'

A bare punctuation symbol with a placement is treated as if it were wrapped in
a middle-lane sign of size 500x500.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fsw

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'signtex.fsw'
func tracer() tracing.Trace {
	return tracing.Select("signtex.fsw")
}
