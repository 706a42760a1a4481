/*
Package swtikz writes SignWriting signs as TikZ pictures.

Every symbol of a sign is drawn as two text nodes placed on top of each other:
the glyph from the Sutton SignWriting fill font in white, then the glyph from
the line font in the current color. Documents using the output need

	\usepackage{fontspec}
	\usepackage{tikz}
	\newfontfamily\swfill{SuttonSignWritingFill.ttf}
	\newfontfamily\swline{SuttonSignWritingLine.ttf}

Coordinates are scaled relative to the current font size, read from a TeX macro
(\f@size by default). Signs therefore grow and shrink with the surrounding text.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package swtikz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/signtex/fsw"
	"github.com/npillmayer/signtex/swtext"
)

// tracer writes to trace with key 'signtex.tikz'
func tracer() tracing.Trace {
	return tracing.Select("signtex.tikz")
}

// DefaultSizeMacro is the LaTeX-internal macro holding the current font size.
const DefaultSizeMacro = `\f@size`

// DefaultRotation draws symbols upright.
const DefaultRotation = -90

// GlyphChecker reports whether the SignWriting fonts contain glyphs for a
// symbol.
type GlyphChecker interface {
	HasSymbol(id fsw.SymbolID) bool
}

// Config holds the options for drawing signs. A Config is not modified by an
// Emitter.
type Config struct {
	SizeMacro string          // macro expanding to the font size in pt, including the backslash
	Mirror    bool            // false draws symbols flipped vertically
	Rotation  int             // in degrees
	Spelling  bool            // draw the spelling prefix above a sign
	Output    swtext.Encoding // UTF8, UTF16LE or UTF16BE
	Glyphs    GlyphChecker    // optional
}

// ErrConfig is matched by every error returned from Config.Validate.
var ErrConfig = errors.New("invalid configuration")

// DefaultConfig returns the configuration used if no options are given.
func DefaultConfig() Config {
	return Config{
		SizeMacro: DefaultSizeMacro,
		Mirror:    true,
		Rotation:  DefaultRotation,
		Output:    swtext.UTF8,
	}
}

// MacroName turns a name given on the command line into a macro by adding a
// leading backslash, if missing.
func MacroName(name string) string {
	if strings.HasPrefix(name, `\`) {
		return name
	}
	return `\` + name
}

// Validate checks a configuration.
func (conf Config) Validate() error {
	if conf.SizeMacro == "" || conf.SizeMacro == `\` {
		return fmt.Errorf("%w: empty size macro", ErrConfig)
	}
	if !strings.HasPrefix(conf.SizeMacro, `\`) {
		return fmt.Errorf("%w: size macro %q does not start with a backslash", ErrConfig, conf.SizeMacro)
	}
	switch conf.Output {
	case swtext.Unknown, swtext.UTF8, swtext.UTF16LE, swtext.UTF16BE:
	default:
		return fmt.Errorf("%w: unsupported output encoding %s", ErrConfig, conf.Output)
	}
	return nil
}

// internal reports whether the size macro contains an '@' and has to be used
// between \makeatletter and \makeatother.
func (conf Config) internal() bool {
	return strings.Contains(conf.SizeMacro, "@")
}

// options returns the TikZ options for non-default rotation and mirroring.
func (conf Config) options() []string {
	var opts []string
	if conf.Rotation != DefaultRotation {
		opts = append(opts, fmt.Sprintf("rotate=%d", conf.Rotation+90))
	}
	if !conf.Mirror {
		opts = append(opts, "yscale=-1")
	}
	return opts
}
