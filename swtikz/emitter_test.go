package swtikz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/signtex/fsw"
	"github.com/npillmayer/signtex/swtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emit(t *testing.T, conf Config, write func(e *Emitter)) string {
	t.Helper()
	var buf bytes.Buffer
	e, err := NewEmitter(&buf, conf)
	require.NoError(t, err)
	write(e)
	require.NoError(t, e.Close())
	return buf.String()
}

func TestSignInMiddleLane(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.tikz")
	defer teardown()
	//
	sign := fsw.Sign{Lane: fsw.LaneM, Placements: []fsw.Placement{{Symbol: 5, X: -10, Y: 20}}}
	out := emit(t, DefaultConfig(), func(e *Emitter) {
		require.NoError(t, e.WriteSign(sign))
	})
	want := `{\makeatletter\begin{tikzpicture}` +
		`\draw[white](\f@size/30*-90 pt,\f@size/30*-12 pt)rectangle(\f@size/30*110 pt,\f@size/30*-10 pt);` +
		`\draw(\f@size/30*-10 pt,\f@size/30*-20 pt) node [color=white,anchor=north west] {\swfill\char1048582};` +
		`\draw(\f@size/30*-10 pt,\f@size/30*-20 pt) node [anchor=north west] {\swline\char983046};` +
		`\end{tikzpicture}}\\`
	assert.Equal(t, want, out)
}

func TestNonDefaultOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.tikz")
	defer teardown()
	//
	conf := DefaultConfig()
	conf.SizeMacro = `\mysize`
	conf.Mirror = false
	conf.Rotation = 0
	sign := fsw.Sign{Lane: fsw.LaneB, Placements: []fsw.Placement{{Symbol: 0, X: 0, Y: 0}}}
	out := emit(t, conf, func(e *Emitter) {
		require.NoError(t, e.WriteSign(sign))
	})
	want := `{\begin{tikzpicture}[rotate=90,yscale=-1]` +
		`\draw(\mysize/30*0 pt,\mysize/30*0 pt) node [color=white,anchor=north west,rotate=90,yscale=-1] {\swfill\char1048577};` +
		`\draw(\mysize/30*0 pt,\mysize/30*0 pt) node [anchor=north west,rotate=90,yscale=-1] {\swline\char983041};` +
		`\end{tikzpicture}}`
	assert.Equal(t, want, out)
}

func TestSpellingDiagram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.tikz")
	defer teardown()
	//
	conf := DefaultConfig()
	conf.Spelling = true
	sign := fsw.Sign{
		Spelling:   [][]fsw.SymbolID{{1, 2}, {3}},
		Lane:       fsw.LaneB,
		Placements: []fsw.Placement{{Symbol: 0, X: 0, Y: 0}},
	}
	out := emit(t, conf, func(e *Emitter) {
		require.NoError(t, e.WriteSign(sign))
	})
	box := `node [draw,inner sep=1pt,scale=0.5,anchor=north west]`
	assert.Contains(t, out, `\draw(\f@size/30*-12 pt,\f@size/30*64 pt) `+box+` {\swline\char983042};`)
	assert.Contains(t, out, `\draw(\f@size/30*-12 pt,\f@size/30*40 pt) `+box+` {\swline\char983043};`)
	assert.Contains(t, out, `\draw(\f@size/30*12 pt,\f@size/30*64 pt) `+box+` {\swline\char983044};`)
	assert.Equal(t, 3, strings.Count(out, "inner sep"))
	//
	conf.Spelling = false
	out = emit(t, conf, func(e *Emitter) {
		require.NoError(t, e.WriteSign(sign))
	})
	assert.NotContains(t, out, "inner sep")
}

func TestConversionThroughRecognizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.tikz")
	defer teardown()
	//
	out := emit(t, DefaultConfig(), func(e *Emitter) {
		rec := fsw.NewRecognizer(e)
		require.NoError(t, rec.Run(strings.NewReader("Wort: B500x500S10000490x490 – ü")))
	})
	assert.True(t, strings.HasPrefix(out, "Wort: {\\makeatletter\\begin{tikzpicture}\\draw("), out)
	assert.True(t, strings.HasSuffix(out, "\\end{tikzpicture}} – ü"), out)
}

func TestUTF16Output(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.tikz")
	defer teardown()
	//
	conf := DefaultConfig()
	conf.Output = swtext.UTF16LE
	out := emit(t, conf, func(e *Emitter) {
		require.NoError(t, e.WriteLiteral('a', '€'))
	})
	assert.Equal(t, "\xff\xfea\x00\xac\x20", out)
	//
	conf.Output = swtext.UTF16BE
	out = emit(t, conf, func(e *Emitter) {
		require.NoError(t, e.WriteLiteral('a'))
	})
	assert.Equal(t, "\xfe\xff\x00a", out)
	// round trip through the decoder
	conf.Output = swtext.UTF16LE
	out = emit(t, conf, func(e *Emitter) {
		require.NoError(t, e.WriteLiteral([]rune("Grüße 𝄞")...))
	})
	runes, enc, err := swtext.DecodeAll([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, swtext.UTF16LE, enc)
	assert.Equal(t, "Grüße 𝄞", string(runes))
}

type fontCoverage map[fsw.SymbolID]bool

func (c fontCoverage) HasSymbol(id fsw.SymbolID) bool {
	return c[id]
}

func TestMissingGlyphsAreCounted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.tikz")
	defer teardown()
	//
	conf := DefaultConfig()
	conf.Glyphs = fontCoverage{0: true}
	conf.Spelling = true
	var missing int
	out := emit(t, conf, func(e *Emitter) {
		require.NoError(t, e.WriteSign(fsw.Sign{
			Spelling:   [][]fsw.SymbolID{{7}},
			Placements: []fsw.Placement{{Symbol: 0}, {Symbol: 5}},
		}))
		missing = e.MissingGlyphs()
		require.NoError(t, e.WritePostamble())
	})
	assert.Equal(t, 2, missing)
	assert.Contains(t, out, "% 2 symbol(s) not found in the SignWriting fonts.\n")
	assert.Contains(t, out, "% 1 sign(s) converted.\n")
}
