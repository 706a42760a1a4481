/*
Package swview renders decoded signs to raster images.

Rendering follows the layout of the TikZ output of package swtikz: every
symbol is drawn as a white fill glyph covered by a black outline glyph, with
the top left corner of the glyphs at the symbol's coordinates. Symbols later
in a sign are drawn on top of earlier ones. The result is meant as a quick
preview, without the help of a TeX installation.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package swview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/signtex/fsw"
	"github.com/npillmayer/signtex/swtikz"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// tracer writes to trace with key 'signtex.view'
func tracer() tracing.Trace {
	return tracing.Select("signtex.view")
}

// ErrNothingToDraw is returned for signs without any glyph found in the fonts.
var ErrNothingToDraw = errors.New("no drawable glyphs")

// Layer selects one of the two glyphs of a symbol.
type Layer int

// Layers of a symbol, in drawing order.
const (
	LayerFill Layer = iota
	LayerLine
)

// DefaultCodepoint maps symbols to the code-points of the Sutton SignWriting
// fonts.
func DefaultCodepoint(id fsw.SymbolID, layer Layer) rune {
	if layer == LayerFill {
		return swtikz.FillBase + rune(id)
	}
	return swtikz.LineBase + rune(id)
}

// Renderer draws signs with a pair of fonts.
type Renderer struct {
	Fill      *sfnt.Font // optional
	Line      *sfnt.Font
	PPEM      int // font size in pixels; one sign coordinate unit is PPEM/30 pixels
	Margin    int // in pixels
	Codepoint func(fsw.SymbolID, Layer) rune
}

// NewRenderer creates a renderer for the SignWriting fonts with a default size.
func NewRenderer(fill, line *sfnt.Font) *Renderer {
	return &Renderer{
		Fill:      fill,
		Line:      line,
		PPEM:      60,
		Margin:    8,
		Codepoint: DefaultCodepoint,
	}
}

type glyphPath struct {
	segs   sfnt.Segments
	dx, dy float32
	color  image.Image
}

// Render draws a sign. The image is sized to fit the sign's glyphs plus margin.
func (rd *Renderer) Render(sign fsw.Sign) (*image.RGBA, error) {
	if rd.Line == nil {
		return nil, errors.New("renderer needs a line font")
	}
	if rd.PPEM <= 0 {
		return nil, fmt.Errorf("invalid size %d ppem", rd.PPEM)
	}
	codepoint := rd.Codepoint
	if codepoint == nil {
		codepoint = DefaultCodepoint
	}
	unit := float32(rd.PPEM) / 30
	var (
		paths                  []glyphPath
		minX, minY, maxX, maxY float32
		buf                    sfnt.Buffer
	)
	for _, p := range sign.Placements {
		for _, layer := range []Layer{LayerFill, LayerLine} {
			f, c := rd.Line, image.Image(image.Black)
			if layer == LayerFill {
				if rd.Fill == nil {
					continue
				}
				f, c = rd.Fill, image.White
			}
			r := codepoint(p.Symbol, layer)
			gid, err := f.GlyphIndex(&buf, r)
			if err != nil || gid == 0 {
				tracer().Infof("no glyph for symbol %s at %U", p.Symbol.Key(), r)
				continue
			}
			segs, err := f.LoadGlyph(&buf, gid, fixed.I(rd.PPEM), nil)
			if err != nil {
				return nil, fmt.Errorf("cannot load glyph %d: %w", gid, err)
			}
			// segments are owned by buf until the next call
			segs = append(sfnt.Segments(nil), segs...)
			b := segs.Bounds()
			dx := float32(p.X)*unit - float32(b.Min.X)/64
			dy := float32(p.Y)*unit - float32(b.Min.Y)/64
			gx0, gy0 := float32(p.X)*unit, float32(p.Y)*unit
			gx1 := gx0 + float32(b.Max.X-b.Min.X)/64
			gy1 := gy0 + float32(b.Max.Y-b.Min.Y)/64
			if len(paths) == 0 {
				minX, minY, maxX, maxY = gx0, gy0, gx1, gy1
			} else {
				minX, minY = min(minX, gx0), min(minY, gy0)
				maxX, maxY = max(maxX, gx1), max(maxY, gy1)
			}
			paths = append(paths, glyphPath{segs: segs, dx: dx, dy: dy, color: c})
		}
	}
	if len(paths) == 0 {
		return nil, ErrNothingToDraw
	}
	margin := float32(rd.Margin)
	width := int(maxX-minX+2*margin) + 1
	height := int(maxY-minY+2*margin) + 1
	shiftX, shiftY := margin-minX, margin-minY

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	rast := vector.NewRasterizer(width, height)
	for _, p := range paths {
		rast.Reset(width, height)
		rast.DrawOp = draw.Over
		tx, ty := shiftX+p.dx, shiftY+p.dy
		for _, seg := range p.segs {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				rast.MoveTo(tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64)
			case sfnt.SegmentOpLineTo:
				rast.LineTo(tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64)
			case sfnt.SegmentOpQuadTo:
				rast.QuadTo(
					tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64,
					tx+float32(seg.Args[1].X)/64, ty+float32(seg.Args[1].Y)/64,
				)
			case sfnt.SegmentOpCubeTo:
				rast.CubeTo(
					tx+float32(seg.Args[0].X)/64, ty+float32(seg.Args[0].Y)/64,
					tx+float32(seg.Args[1].X)/64, ty+float32(seg.Args[1].Y)/64,
					tx+float32(seg.Args[2].X)/64, ty+float32(seg.Args[2].Y)/64,
				)
			}
		}
		rast.ClosePath()
		rast.Draw(img, img.Bounds(), p.color, image.Point{})
	}
	tracer().Debugf("rendered %d glyphs into %dx%d image", len(paths), width, height)
	return img, nil
}

// WritePNG renders a sign and encodes it as PNG.
func (rd *Renderer) WritePNG(w io.Writer, sign fsw.Sign) error {
	img, err := rd.Render(sign)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG renders a sign into file path, creating directories as needed.
func (rd *Renderer) SavePNG(path string, sign fsw.Sign) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	if err = rd.WritePNG(f, sign); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
