/*
Package swquery answers questions about the Sutton SignWriting fonts.

The converter draws every symbol with glyphs from two fonts, one for the fill
and one for the outline (see package swtikz). Package swquery checks that these
fonts actually contain the glyphs referenced, and extracts some descriptive
information from them.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package swquery

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/signtex/fsw"
	"github.com/npillmayer/signtex/swtikz"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'signtex.query'
func tracer() tracing.Trace {
	return tracing.Select("signtex.query")
}

// Coverage checks the SignWriting fonts for glyphs of symbols. It implements
// swtikz.GlyphChecker.
//
// A Coverage is not safe for concurrent use.
type Coverage struct {
	fill, line *sfnt.Font
	buf        sfnt.Buffer
}

var _ swtikz.GlyphChecker = (*Coverage)(nil)

// NewCoverage creates a checker for a fill and a line font. Either of them
// may be nil, in which case only the other font is consulted.
func NewCoverage(fill, line *sfnt.Font) *Coverage {
	return &Coverage{fill: fill, line: line}
}

// HasSymbol reports whether all fonts present contain a glyph for a symbol.
func (c *Coverage) HasSymbol(id fsw.SymbolID) bool {
	if c.fill == nil && c.line == nil {
		return false
	}
	if c.fill != nil && c.glyph(c.fill, swtikz.FillBase+rune(id)) == 0 {
		return false
	}
	if c.line != nil && c.glyph(c.line, swtikz.LineBase+rune(id)) == 0 {
		return false
	}
	return true
}

func (c *Coverage) glyph(f *sfnt.Font, r rune) sfnt.GlyphIndex {
	gid, err := f.GlyphIndex(&c.buf, r)
	if err != nil {
		tracer().Errorf("cannot look up glyph for %U: %v", r, err)
		return 0
	}
	return gid
}

// Report summarizes a scan over a range of symbols.
type Report struct {
	Checked int
	Missing int
	Samples []fsw.SymbolID // the first missing symbols, at most MaxSamples
}

// MaxSamples limits Report.Samples.
const MaxSamples = 10

// Scan checks all symbols from first to last, inclusive.
func (c *Coverage) Scan(first, last fsw.SymbolID) Report {
	var r Report
	for id := first; id <= last; id++ {
		r.Checked++
		if c.HasSymbol(id) {
			continue
		}
		r.Missing++
		if len(r.Samples) < MaxSamples {
			r.Samples = append(r.Samples, id)
		}
	}
	tracer().Infof("scanned %d symbols, %d missing", r.Checked, r.Missing)
	return r
}
