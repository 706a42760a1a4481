package swtikz

import "fmt"

// WritePreamble writes TeX comments telling users what their document needs
// for the output to compile.
func (e *Emitter) WritePreamble() error {
	e.comment("In order for this conversion to work your document needs a few things.")
	e.comment(`\usepackage{fontspec}`)
	e.comment(`\usepackage{tikz}`)
	e.comment(`\begin{document}`)
	e.comment(`\newfontfamily\swfill{SuttonSignWritingFill.ttf}`)
	e.comment(`\newfontfamily\swline{SuttonSignWritingLine.ttf}`)
	if e.conf.internal() && e.conf.SizeMacro != DefaultSizeMacro {
		e.comment(fmt.Sprintf("The size macro %s has to hold the font size in pt, e.g.", e.conf.SizeMacro))
		e.comment(fmt.Sprintf(`\makeatletter\def%s{\f@size}\makeatother`, e.conf.SizeMacro))
	}
	if e.conf.Rotation != DefaultRotation {
		e.comment(fmt.Sprintf("Symbols are rotated by %d degrees (TikZ option rotate).", e.conf.Rotation+90))
	}
	if !e.conf.Mirror {
		e.comment("Symbols are flipped vertically (TikZ option yscale=-1).")
	}
	if e.conf.Spelling {
		e.comment("Spellings are drawn above signs, using TikZ node option draw.")
	}
	e.put("\n")
	return e.err()
}

// WritePostamble writes a closing comment with statistics of the conversion.
func (e *Emitter) WritePostamble() error {
	e.put("\n")
	e.comment(fmt.Sprintf("%d sign(s) converted.", e.signs))
	if e.missing > 0 {
		e.comment(fmt.Sprintf("%d symbol(s) not found in the SignWriting fonts.", e.missing))
	}
	return e.err()
}

// WriteHeader writes a comment naming the command which created the output.
func (e *Emitter) WriteHeader(command string) error {
	e.comment("This file was generated by:")
	e.comment("   " + command)
	return e.err()
}

func (e *Emitter) comment(text string) {
	e.put("% ", text, "\n")
}
