package fsw

import (
	"errors"
	"fmt"
	"io"
)

// Sink receives the output of a Recognizer: text passed through and decoded
// signs, in input order.
type Sink interface {
	WriteLiteral(runes ...rune) error
	WriteSign(Sign) error
}

// Recognizer finds signs in a stream of code-points. Signs are decoded and
// handed to a Sink, as is every code-point not being part of a sign.
//
// A Recognizer is not safe for concurrent use.
type Recognizer struct {
	state      State
	sink       Sink
	signs      int
	mismatches int
}

// NewRecognizer creates a recognizer writing to sink.
func NewRecognizer(sink Sink) *Recognizer {
	return &Recognizer{sink: sink}
}

// Signs returns the number of signs written to the sink.
func (rec *Recognizer) Signs() int {
	return rec.signs
}

// Mismatches returns the number of partial signs which have been passed through
// as text.
func (rec *Recognizer) Mismatches() int {
	return rec.mismatches
}

// Step feeds a single code-point.
func (rec *Recognizer) Step(c rune) error {
	tr, err := rec.state.Feed(c)
	if err != nil {
		return err
	}
	return rec.deliver(tr)
}

// Finish processes the end of input. Any pending code-points are written to
// the sink.
func (rec *Recognizer) Finish() error {
	tr, err := rec.state.Finish()
	if err != nil {
		return err
	}
	return rec.deliver(tr)
}

// Run reads code-points from in until end of input and calls Finish.
// Read errors are returned as *Error of kind EncodingError; code-points read up
// to that point are delivered to the sink beforehand.
func (rec *Recognizer) Run(in io.RuneReader) error {
	var count int64
	for {
		c, _, err := in.ReadRune()
		if err == io.EOF {
			return rec.Finish()
		} else if err != nil {
			if ferr := rec.Finish(); ferr != nil {
				tracer().Errorf("cannot flush pending input: %v", ferr)
			}
			return encodingError(err, count)
		}
		if err = rec.Step(c); err != nil {
			return err
		}
		count++
	}
}

func (rec *Recognizer) deliver(tr Transition) error {
	switch tr.Outcome {
	case Advance:
		return nil
	case Flush:
		if tr.Mismatch != nil {
			rec.mismatches++
		}
	case Complete:
		sign, err := DecodeSign(tr.Token)
		if err != nil {
			tracer().Errorf("cannot decode %q: %v", string(tr.Token), err)
			return err
		}
		rec.signs++
		tracer().Debugf("sign #%d: %s", rec.signs, sign)
		if err = rec.sink.WriteSign(sign); err != nil {
			return err
		}
	}
	if len(tr.Literal) == 0 {
		return nil
	}
	return rec.sink.WriteLiteral(tr.Literal...)
}

// encodingError wraps a read error. Decoders reporting the byte position of
// malformed input implement ByteOffset; otherwise the number of code-points
// read is used.
func encodingError(err error, count int64) error {
	e := &Error{Kind: EncodingError, Offset: count, Actual: -1, Err: err}
	var located interface{ ByteOffset() int64 }
	if errors.As(err, &located) {
		e.Offset = located.ByteOffset()
	}
	return e
}

// ErrNotASign is returned by ParseSign for text which is not exactly one sign.
var ErrNotASign = errors.New("not a single sign")

type signCollector struct {
	signs []Sign
	text  bool
}

func (sc *signCollector) WriteLiteral(runes ...rune) error {
	for _, r := range runes {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			sc.text = true
		}
	}
	return nil
}

func (sc *signCollector) WriteSign(sign Sign) error {
	sc.signs = append(sc.signs, sign)
	return nil
}

// ParseSign decodes a string holding a single sign, in ASCII or Unicode form.
// Surrounding white space is ignored.
func ParseSign(s string) (Sign, error) {
	sc := &signCollector{}
	rec := NewRecognizer(sc)
	for _, c := range s {
		if err := rec.Step(c); err != nil {
			return Sign{}, err
		}
	}
	if err := rec.Finish(); err != nil {
		return Sign{}, err
	}
	if len(sc.signs) != 1 || sc.text {
		return Sign{}, fmt.Errorf("%w: %q", ErrNotASign, s)
	}
	return sc.signs[0], nil
}
