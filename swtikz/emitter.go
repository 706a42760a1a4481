package swtikz

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/signtex/fsw"
	"github.com/npillmayer/signtex/swtext"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Glyphs of symbol id are found at these code-points of the Sutton SignWriting fonts.
const (
	FillBase rune = 0x100001
	LineBase rune = 0xf0001
)

// Layout of the spelling diagram, in units of the size macro divided by 30.
const (
	SpellingCell = 24
	SpellingTop  = 40
)

// Emitter writes text and signs to an output stream. It implements fsw.Sink.
//
// Output is buffered; clients have to call Close when done.
type Emitter struct {
	conf    Config
	out     *bufio.Writer
	enc     io.WriteCloser // output encoder, if not UTF-8
	scale   string         // coordinate unit
	opts    string         // picture options, including brackets
	nodeOpt string         // node options, including a leading comma
	signs   int
	missing int
}

var _ fsw.Sink = (*Emitter)(nil)

// NewEmitter creates an emitter writing to w. conf is validated first.
func NewEmitter(w io.Writer, conf Config) (*Emitter, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	e := &Emitter{conf: conf}
	switch conf.Output {
	case swtext.UTF16LE:
		e.enc = transform.NewWriter(w, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
	case swtext.UTF16BE:
		e.enc = transform.NewWriter(w, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder())
	}
	if e.enc != nil {
		e.out = bufio.NewWriter(e.enc)
	} else {
		e.out = bufio.NewWriter(w)
	}
	e.scale = conf.SizeMacro + "/30"
	if opts := conf.options(); len(opts) > 0 {
		e.opts = "[" + strings.Join(opts, ",") + "]"
		e.nodeOpt = "," + strings.Join(opts, ",")
	}
	tracer().Debugf("emitter: unit %s, options %q, output %s", e.scale, e.opts, conf.Output)
	return e, nil
}

// Signs returns the number of signs written.
func (e *Emitter) Signs() int {
	return e.signs
}

// MissingGlyphs returns the number of symbols drawn which are not covered by
// the configured GlyphChecker.
func (e *Emitter) MissingGlyphs() int {
	return e.missing
}

// WriteLiteral writes code-points unchanged.
func (e *Emitter) WriteLiteral(runes ...rune) error {
	for _, r := range runes {
		if _, err := e.out.WriteRune(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSign writes a sign as a TikZ picture.
func (e *Emitter) WriteSign(sign fsw.Sign) error {
	e.signs++
	e.put("{")
	if e.conf.internal() {
		e.put(`\makeatletter`)
	}
	e.put(`\begin{tikzpicture}`, e.opts)
	if sign.Lane != fsw.LaneB {
		// an invisible box keeps the width of signs in a column constant
		e.putf(`\draw[white](%[1]s*-90 pt,%[1]s*-12 pt)rectangle(%[1]s*110 pt,%[1]s*-10 pt);`, e.scale)
	}
	if e.conf.Spelling {
		e.spelling(sign.Spelling)
	}
	for _, p := range sign.Placements {
		e.check(p.Symbol)
		e.putf(`\draw(%[1]s*%[2]d pt,%[1]s*%[3]d pt) node [color=white,anchor=north west%[4]s] {\swfill\char%[5]d};`,
			e.scale, p.X, -p.Y, e.nodeOpt, FillBase+rune(p.Symbol))
		e.putf(`\draw(%[1]s*%[2]d pt,%[1]s*%[3]d pt) node [anchor=north west%[4]s] {\swline\char%[5]d};`,
			e.scale, p.X, -p.Y, e.nodeOpt, LineBase+rune(p.Symbol))
	}
	e.put(`\end{tikzpicture}}`)
	if sign.Lane != fsw.LaneB {
		e.put(`\\`)
	}
	return e.err()
}

// spelling draws the groups of the spelling prefix as columns of small boxed
// symbols, centered above the sign.
func (e *Emitter) spelling(groups [][]fsw.SymbolID) {
	rows := 0
	for _, g := range groups {
		rows = max(rows, len(g))
	}
	n := len(groups)
	for g, group := range groups {
		x := (2*g - (n - 1)) * SpellingCell / 2
		for r, id := range group {
			y := SpellingTop + (rows-1-r)*SpellingCell
			e.check(id)
			e.putf(`\draw(%[1]s*%[2]d pt,%[1]s*%[3]d pt) node [draw,inner sep=1pt,scale=0.5,anchor=north west%[4]s] {\swline\char%[5]d};`,
				e.scale, x, y, e.nodeOpt, LineBase+rune(id))
		}
	}
}

func (e *Emitter) check(id fsw.SymbolID) {
	if e.conf.Glyphs == nil || e.conf.Glyphs.HasSymbol(id) {
		return
	}
	e.missing++
	tracer().Errorf("symbol %s (id %d) not found in SignWriting fonts", id.Key(), id)
}

// put and putf write to the buffered output. Errors are sticky in a
// bufio.Writer and collected by err.
func (e *Emitter) put(s ...string) {
	for _, part := range s {
		e.out.WriteString(part)
	}
}

func (e *Emitter) putf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func (e *Emitter) err() error {
	_, err := e.out.Write(nil)
	return err
}

// Close flushes buffered output. The underlying writer is not closed.
func (e *Emitter) Close() error {
	if err := e.out.Flush(); err != nil {
		return err
	}
	if e.enc != nil {
		return e.enc.Close()
	}
	return nil
}
