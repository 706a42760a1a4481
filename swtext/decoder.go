/*
Package swtext decodes byte streams into a sequence of Unicode code-points.

Documents handed to the SignWriting converter come from all kinds of editors,
and we cannot rely on them being UTF-8. A Decoder therefore sniffs the first
bytes of a stream for a byte-order mark and settles on one of UTF-8, UTF-16
(little or big endian) or UTF-32 (little or big endian). Without a byte-order
mark, input is taken to be UTF-8. Once settled, the encoding does not change
for the rest of the stream.

Malformed input (a stray UTF-8 continuation byte, an unpaired surrogate) is a
fatal error: there is no sensible way to resynchronize a converter which
re-emits its input verbatim. A stream ending in the middle of a multi-byte
sequence, however, is treated as a regular end of input.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package swtext

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'signtex.text'
func tracer() tracing.Trace {
	return tracing.Select("signtex.text")
}

// Encoding is the Unicode transformation format of an input stream.
type Encoding uint8

// Encodings recognized by a Decoder. Unknown is the state of a decoder which has
// not yet seen any input.
const (
	Unknown Encoding = iota
	UTF8
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

var encodingNames = [...]string{
	Unknown: "unknown",
	UTF8:    "utf8",
	UTF16LE: "utf16le",
	UTF16BE: "utf16be",
	UTF32LE: "utf32le",
	UTF32BE: "utf32be",
}

func (e Encoding) String() string {
	if int(e) >= len(encodingNames) {
		return "invalid"
	}
	return encodingNames[e]
}

// ParseEncoding returns the encoding for one of the names returned by
// Encoding.String, or Unknown and false.
func ParseEncoding(name string) (Encoding, bool) {
	for i, n := range encodingNames {
		if n == name {
			return Encoding(i), true
		}
	}
	return Unknown, false
}

// errTruncated signals end of input in the middle of a code unit sequence.
var errTruncated = errors.New("truncated sequence")

// Decoder reads code-points from a byte stream. It implements io.RuneReader.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	in       io.ByteReader
	enc      Encoding
	declared Encoding // encoding set by the client, if any
	held     []byte   // bytes read ahead while sniffing, not yet consumed
	unit     []byte   // bytes of the code-point currently being decoded
	offset   int64    // number of bytes consumed, including a byte-order mark
	err      error    // sticky error
}

// NewDecoder creates a decoder for r, which will detect the encoding from r's
// first bytes.
func NewDecoder(r io.Reader) *Decoder {
	d := &Decoder{}
	d.Reset(r)
	return d
}

// NewDecoderWithEncoding creates a decoder for r with a fixed encoding.
// No byte-order mark detection will take place; a byte-order mark at the start of
// the stream will be delivered as U+FEFF. Passing Unknown is equivalent to
// calling NewDecoder.
func NewDecoderWithEncoding(r io.Reader, enc Encoding) *Decoder {
	d := &Decoder{declared: enc}
	d.Reset(r)
	return d
}

// Reset discards all state and restarts decoding from r.
func (d *Decoder) Reset(r io.Reader) {
	d.in = byteReader(r)
	d.enc = d.declared
	d.held = d.held[:0]
	d.unit = d.unit[:0]
	d.offset = 0
	d.err = nil
}

func byteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// Encoding returns the encoding of the input stream. It returns Unknown until
// the first code-point has been requested.
func (d *Decoder) Encoding() Encoding {
	return d.enc
}

// Offset returns the number of input bytes consumed so far.
func (d *Decoder) Offset() int64 {
	return d.offset
}

// ReadRune returns the next code-point of the input and the number of bytes it
// occupied. At end of input it returns io.EOF. Malformed input results in a
// *DecodeError, which is sticky: every subsequent call will return it again.
func (d *Decoder) ReadRune() (r rune, size int, err error) {
	if d.err != nil {
		return 0, 0, d.err
	}
	if d.enc == Unknown {
		if err = d.sniff(); err != nil {
			d.err = err
			return 0, 0, err
		}
	}
	start := d.offset
	d.unit = d.unit[:0]
	switch d.enc {
	case UTF8:
		r, err = d.decodeUTF8()
	case UTF16LE, UTF16BE:
		r, err = d.decodeUTF16(d.enc == UTF16BE)
	case UTF32LE, UTF32BE:
		r, err = d.decodeUTF32(d.enc == UTF32BE)
	default:
		err = &DecodeError{Encoding: d.enc, Offset: start, Issue: "decoder in invalid encoding state"}
	}
	if err == errTruncated {
		tracer().Infof("input ends inside a %s sequence, dropping %d byte(s) at offset %d",
			d.enc, len(d.unit), start)
		err = io.EOF
	}
	if err != nil {
		d.err = err
		return 0, 0, err
	}
	return r, int(d.offset - start), nil
}

// Runes returns the remaining input as a lazy sequence. Iteration stops at end of
// input; a decoding error is yielded once as the last element.
func (d *Decoder) Runes() iter.Seq2[rune, error] {
	return func(yield func(rune, error) bool) {
		for {
			r, _, err := d.ReadRune()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(0, err)
				return
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// DecodeAll is a convenience function which decodes a complete byte slice.
func DecodeAll(b []byte) ([]rune, Encoding, error) {
	d := NewDecoder(bytes.NewReader(b))
	runes := make([]rune, 0, len(b))
	for r, err := range d.Runes() {
		if err != nil {
			return runes, d.Encoding(), err
		}
		runes = append(runes, r)
	}
	return runes, d.Encoding(), nil
}

// --- Byte-order mark detection ---------------------------------------------

// sniff reads up to 4 bytes and matches them against byte-order marks.
// Bytes not belonging to a byte-order mark are held back as content.
func (d *Decoder) sniff() error {
	var head [4]byte
	n := 0
	for n < len(head) {
		b, err := d.in.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		head[n] = b
		n++
	}
	h := head[:n]
	bom := 0
	switch {
	case n >= 4 && h[0] == 0x00 && h[1] == 0x00 && h[2] == 0xfe && h[3] == 0xff:
		d.enc, bom = UTF32BE, 4
	case n >= 4 && h[0] == 0xff && h[1] == 0xfe && h[2] == 0x00 && h[3] == 0x00:
		d.enc, bom = UTF32LE, 4
	case n >= 2 && h[0] == 0xfe && h[1] == 0xff:
		d.enc, bom = UTF16BE, 2
	case n >= 2 && h[0] == 0xff && h[1] == 0xfe:
		d.enc, bom = UTF16LE, 2
	case n >= 3 && h[0] == 0xef && h[1] == 0xbb && h[2] == 0xbf:
		d.enc, bom = UTF8, 3
	default:
		d.enc = UTF8
	}
	d.offset += int64(bom)
	d.held = append(d.held[:0], h[bom:]...)
	tracer().Debugf("input encoding is %s (byte-order mark of %d bytes)", d.enc, bom)
	return nil
}

// --- Code unit decoding ----------------------------------------------------

func (d *Decoder) nextByte() (byte, error) {
	var b byte
	if len(d.held) > 0 {
		b = d.held[0]
		d.held = d.held[1:]
	} else {
		var err error
		if b, err = d.in.ReadByte(); err != nil {
			return 0, err
		}
	}
	d.offset++
	d.unit = append(d.unit, b)
	return b, nil
}

// fill reads len(buf) bytes. It returns io.EOF if no byte at all is available and
// errTruncated if input ends after some bytes.
func (d *Decoder) fill(buf []byte) error {
	for i := range buf {
		b, err := d.nextByte()
		if err == io.EOF {
			if i == 0 {
				return io.EOF
			}
			return errTruncated
		} else if err != nil {
			return err
		}
		buf[i] = b
	}
	return nil
}

func (d *Decoder) malformed(issue string) error {
	return &DecodeError{
		Encoding: d.enc,
		Offset:   d.offset - int64(len(d.unit)),
		Bytes:    append([]byte(nil), d.unit...),
		Issue:    issue,
	}
}

// UTF-8 layout:
//
//	0xxx xxxx
//	110x xxxx  10xx xxxx
//	1110 xxxx  10xx xxxx  10xx xxxx
//	1111 0xxx  10xx xxxx  10xx xxxx  10xx xxxx
func (d *Decoder) decodeUTF8() (rune, error) {
	b0, err := d.nextByte()
	if err != nil {
		return 0, err
	}
	var r rune
	var trail int
	switch {
	case b0 < 0x80:
		return rune(b0), nil
	case b0&0xc0 == 0x80:
		return 0, d.malformed("continuation byte without leading byte")
	case b0&0xe0 == 0xc0:
		r, trail = rune(b0&0x1f), 1
	case b0&0xf0 == 0xe0:
		r, trail = rune(b0&0x0f), 2
	case b0&0xf8 == 0xf0:
		r, trail = rune(b0&0x07), 3
	default:
		return 0, d.malformed("invalid leading byte")
	}
	for range trail {
		b, err := d.nextByte()
		if err == io.EOF {
			return 0, errTruncated
		} else if err != nil {
			return 0, err
		}
		if b&0xc0 != 0x80 {
			return 0, d.malformed("leading byte not followed by continuation byte")
		}
		r = r<<6 | rune(b&0x3f)
	}
	if !utf8.ValidRune(r) {
		return 0, d.malformed("sequence does not encode a Unicode scalar value")
	}
	return r, nil
}

func (d *Decoder) unit16(bigEndian bool) (rune, error) {
	var b [2]byte
	if err := d.fill(b[:]); err != nil {
		return 0, err
	}
	if bigEndian {
		return rune(b[0])<<8 | rune(b[1]), nil
	}
	return rune(b[1])<<8 | rune(b[0]), nil
}

// UTF-16 code units:
//
//	0000–d7ff  code-point
//	d800–dbff  lead surrogate, has to be followed by a trail surrogate
//	dc00–dfff  trail surrogate, has to follow a lead surrogate
//	e000–ffff  code-point
func (d *Decoder) decodeUTF16(bigEndian bool) (rune, error) {
	u, err := d.unit16(bigEndian)
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(u) {
		return u, nil
	}
	if u >= 0xdc00 {
		return 0, d.malformed("trail surrogate without lead surrogate")
	}
	u2, err := d.unit16(bigEndian)
	if err == io.EOF {
		return 0, errTruncated
	} else if err != nil {
		return 0, err
	}
	if u2 < 0xdc00 || u2 > 0xdfff {
		return 0, d.malformed("lead surrogate not followed by trail surrogate")
	}
	return utf16.DecodeRune(u, u2), nil
}

func (d *Decoder) decodeUTF32(bigEndian bool) (rune, error) {
	var b [4]byte
	if err := d.fill(b[:]); err != nil {
		return 0, err
	}
	var u uint32
	if bigEndian {
		u = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	} else {
		u = uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0])
	}
	if u > utf8.MaxRune || !utf8.ValidRune(rune(u)) {
		return 0, d.malformed("value is not a Unicode scalar value")
	}
	return rune(u), nil
}
