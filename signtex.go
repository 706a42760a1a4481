/*
Package signtex converts SignWriting embedded in (Xe)LaTeX documents into
TikZ drawings.

Signs may be written in Formal SignWriting, either in ASCII form
(e.g., "M518x529S14c20481x471S27106503x489") or with the code-points of
"SignWriting in Unicode". Everything else in a document is copied unchanged.
A conversion reads a byte stream in any of UTF-8, UTF-16 or UTF-32 (see
package swtext), finds and decodes signs (package fsw) and writes them as
TikZ pictures (package swtikz).

The Sutton SignWriting fonts are needed for typesetting the output, and
optionally by the converter itself, to check for missing glyphs (package
swquery) and to write preview images of signs (package swview).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package signtex

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/signtex/fsw"
	"github.com/npillmayer/signtex/swtext"
	"github.com/npillmayer/signtex/swtikz"
)

// tracer writes to trace with key 'signtex'
func tracer() tracing.Trace {
	return tracing.Select("signtex")
}

// Options control a conversion.
type Options struct {
	Config     swtikz.Config
	Input      swtext.Encoding // Unknown detects the encoding from a byte-order mark
	Header     string          // command line to name in a header comment, if any
	Preamble   bool            // write comments on document requirements and statistics
	PreviewDir string          // if set, a PNG image of every sign is written to this directory
	Fonts      *SignFonts      // needed for previews
}

// DefaultOptions returns options for converting with a preamble.
func DefaultOptions() Options {
	return Options{
		Config:   swtikz.DefaultConfig(),
		Preamble: true,
	}
}

// Result holds statistics of a conversion.
type Result struct {
	Encoding      swtext.Encoding // encoding of the input
	Signs         int             // signs converted
	Mismatches    int             // partial signs copied as text
	MissingGlyphs int             // symbols not found in the fonts, if checked
	Previews      int             // preview images written
}

// Convert reads a document from r and writes the converted document to w.
//
// Conversion stops at malformed input. Output up to the error is written to w.
func Convert(r io.Reader, w io.Writer, opts Options) (Result, error) {
	var result Result
	if opts.PreviewDir != "" && opts.Fonts == nil {
		return result, errors.New("previews need the SignWriting fonts")
	}
	emitter, err := swtikz.NewEmitter(w, opts.Config)
	if err != nil {
		return result, err
	}
	var sink fsw.Sink = emitter
	var previews *previewSink
	if opts.PreviewDir != "" {
		previews = &previewSink{Sink: emitter, fonts: opts.Fonts, dir: opts.PreviewDir}
		sink = previews
	}
	decoder := swtext.NewDecoderWithEncoding(r, opts.Input)
	recognizer := fsw.NewRecognizer(sink)
	err = convert(decoder, recognizer, emitter, opts)
	if cerr := emitter.Close(); err == nil {
		err = cerr
	}
	result.Encoding = decoder.Encoding()
	result.Signs = recognizer.Signs()
	result.Mismatches = recognizer.Mismatches()
	result.MissingGlyphs = emitter.MissingGlyphs()
	if previews != nil {
		result.Previews = previews.count
	}
	tracer().Infof("converted %d sign(s) from %s input", result.Signs, result.Encoding)
	return result, err
}

func convert(decoder *swtext.Decoder, rec *fsw.Recognizer, e *swtikz.Emitter, opts Options) error {
	if opts.Header != "" {
		if err := e.WriteHeader(opts.Header); err != nil {
			return err
		}
	}
	if opts.Preamble {
		if err := e.WritePreamble(); err != nil {
			return err
		}
	}
	if err := rec.Run(decoder); err != nil {
		return err
	}
	if opts.Preamble {
		return e.WritePostamble()
	}
	return nil
}

// ConvertString converts a UTF-8 string without preamble.
func ConvertString(s string, conf swtikz.Config) (string, error) {
	var out strings.Builder
	_, err := Convert(strings.NewReader(s), &out, Options{Config: conf, Input: swtext.UTF8})
	return out.String(), err
}

// previewSink renders every sign passing through to a PNG file.
type previewSink struct {
	fsw.Sink
	fonts *SignFonts
	dir   string
	count int
}

func (ps *previewSink) WriteSign(sign fsw.Sign) error {
	if err := ps.Sink.WriteSign(sign); err != nil {
		return err
	}
	path := filepath.Join(ps.dir, fmt.Sprintf("sign-%04d.png", ps.count+1))
	if err := ps.fonts.Renderer().SavePNG(path, sign); err != nil {
		tracer().Errorf("no preview for %s: %v", sign, err)
		return nil
	}
	ps.count++
	return nil
}
