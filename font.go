package signtex

import (
	"github.com/npillmayer/signtex/internal/fontload"
	"github.com/npillmayer/signtex/swquery"
	"github.com/npillmayer/signtex/swview"
	"golang.org/x/image/font/sfnt"
)

// File names of the Sutton SignWriting fonts.
const (
	FillFontFile = "SuttonSignWritingFill.ttf"
	LineFontFile = "SuttonSignWritingLine.ttf"
)

// ScalableFont is an internal representation of an outline-font of type
// TTF of OTF.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container, not safe for concurrent use
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	f, err := fontload.LoadOpenTypeFont(fontfile)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return &ScalableFont{
		Fontname: f.Fontname,
		Filepath: f.Filepath,
		Binary:   f.Binary,
		SFNT:     f.SFNT,
	}, nil
}

// SignFonts is the pair of fonts signs are drawn with.
type SignFonts struct {
	Fill *ScalableFont
	Line *ScalableFont
}

// LoadSignFonts looks for the Sutton SignWriting fonts in a list of
// directories and loads them. Both fonts have to be found, though not
// necessarily in the same directory.
func LoadSignFonts(dirs ...string) (*SignFonts, error) {
	fonts := &SignFonts{}
	for _, ff := range []struct {
		name   string
		target **ScalableFont
	}{
		{FillFontFile, &fonts.Fill},
		{LineFontFile, &fonts.Line},
	} {
		path, err := fontload.Find(ff.name, dirs...)
		if err != nil {
			return nil, err
		}
		if *ff.target, err = LoadOpenTypeFont(path); err != nil {
			return nil, err
		}
		tracer().Infof("using %s", path)
	}
	return fonts, nil
}

// Coverage returns a glyph checker for the fonts, to be used in
// swtikz.Config.Glyphs.
func (fonts *SignFonts) Coverage() *swquery.Coverage {
	return swquery.NewCoverage(fonts.Fill.SFNT, fonts.Line.SFNT)
}

// Renderer returns a PNG renderer for the fonts.
func (fonts *SignFonts) Renderer() *swview.Renderer {
	return swview.NewRenderer(fonts.Fill.SFNT, fonts.Line.SFNT)
}
