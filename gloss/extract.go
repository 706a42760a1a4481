/*
Package gloss prepares glossaries of signs.

Glossaries are collected from lesson documents, where they are typeset
within a glossary environment as pairs of lines, a gloss (a word of the
spoken language) followed by the sign's notation:

	\begin{glossary}
	\textbf{house / home}\\
	M518x529S14c20481x471S27106503x489

	\textbf{tree}\\
	M520x533S1f010490x467S2e704507x485
	\end{glossary}

Extract writes the bare pairs as alternating lines. A Merger reads any number
of such lists and writes them as a single list, sorted by gloss.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package gloss

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'signtex.gloss'
func tracer() tracing.Trace {
	return tracing.Select("signtex.gloss")
}

// Markers of a glossary environment.
const (
	BeginGlossary = `\begin{glossary}`
	EndGlossary   = `\end{glossary}`
)

// ErrMalformed is returned for input not in the expected line format.
var ErrMalformed = errors.New("malformed glossary")

// LineError tells where a glossary is malformed.
type LineError struct {
	Line int
	Msg  string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *LineError) Unwrap() error {
	return ErrMalformed
}

// Extract reads a document from r and writes the gloss/notation pairs of all
// of its glossaries to w, one line each.
//
// Within a glossary, blank lines separate pairs. A line on its own, e.g.
// \columnbreak, is skipped. A gloss line has the form \textbf{gloss}\\ and may
// hold alternatives separated by " / ", which yield a pair each.
func Extract(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(ScanLines)
	out := bufio.NewWriter(w)
	var (
		inside bool
		prev   string // previous non-blank line of the current block
		n      int    // line number
		pairs  int
	)
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if !inside {
			inside = strings.Contains(line, BeginGlossary)
			prev = ""
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), EndGlossary) {
			inside = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			prev = ""
			continue
		}
		if prev == "" {
			prev = line
			continue
		}
		glosses, ok := parseGloss(prev)
		if !ok {
			return &LineError{Line: n - 1, Msg: fmt.Sprintf("expected a gloss, have %q", prev)}
		}
		for _, g := range glosses {
			out.WriteString(g)
			out.WriteByte('\n')
			out.WriteString(line)
			out.WriteByte('\n')
			pairs++
		}
		prev = line
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	tracer().Infof("extracted %d gloss(es)", pairs)
	return out.Flush()
}

// parseGloss returns the alternatives of a gloss line.
func parseGloss(line string) ([]string, bool) {
	line = strings.TrimRight(line, " \t")
	g, ok := strings.CutPrefix(line, `\textbf{`)
	if !ok {
		return nil, false
	}
	if g, ok = strings.CutSuffix(g, `}\\`); !ok {
		return nil, false
	}
	return strings.Split(g, " / "), true
}

// ScanLines is a split function for a bufio.Scanner. Lines may be terminated
// by LF, CR LF or CR. The terminator is stripped.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// CR at the end of the buffer; need more data to see a LF
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
