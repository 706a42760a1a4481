package swquery

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontInfo contains descriptive information about a font.
type FontInfo struct {
	Family     string
	Subfamily  string
	Version    string
	UnitsPerEm sfnt.Units
	Glyphs     int
}

// Info extracts information from table 'name' and a few global values.
// Missing names are left empty.
func Info(f *sfnt.Font) FontInfo {
	var buf sfnt.Buffer
	info := FontInfo{
		UnitsPerEm: f.UnitsPerEm(),
		Glyphs:     f.NumGlyphs(),
	}
	info.Family = name(f, &buf, sfnt.NameIDFamily)
	info.Subfamily = name(f, &buf, sfnt.NameIDSubfamily)
	info.Version = name(f, &buf, sfnt.NameIDVersion)
	return info
}

func name(f *sfnt.Font, buf *sfnt.Buffer, id sfnt.NameID) string {
	s, err := f.Name(buf, id)
	if err != nil {
		tracer().Debugf("font has no name %d: %v", id, err)
		return ""
	}
	return s
}

// GlyphBounds returns the bounding box of the glyph for r at a size of ppem
// pixels per em, in font coordinates (y growing downwards), and its advance.
// ok is false if the font has no glyph for r.
func GlyphBounds(f *sfnt.Font, r rune, ppem int) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	var buf sfnt.Buffer
	gid, err := f.GlyphIndex(&buf, r)
	if err != nil || gid == 0 {
		return bounds, advance, false
	}
	bounds, advance, err = f.GlyphBounds(&buf, gid, fixed.I(ppem), font.HintingNone)
	if err != nil {
		tracer().Errorf("cannot get bounds of glyph %d: %v", gid, err)
		return bounds, advance, false
	}
	return bounds, advance, true
}
