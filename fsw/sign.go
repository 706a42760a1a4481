package fsw

import (
	"fmt"
	"strings"
)

// SymbolID is the linear number of a SignWriting symbol. The symbol key S10000
// has id 0; ids increase by 96 per base symbol (6 fills × 16 rotations).
type SymbolID int

// GroupSeparator is the symbol (S38800) which separates groups of symbols in
// the spelling prefix of a sign.
const GroupSeparator SymbolID = (0x388 - 0x100) * 96

// LastSymbol is the symbol with the highest code-point, S38b07.
const LastSymbol = SymbolID(cpSymbolLast - cpSymbolFirst)

// Key returns the symbol key in ASCII form, e.g. "S10000".
func (id SymbolID) Key() string {
	base := int(id)/96 + 0x100
	fill := int(id) % 96 / 16
	rot := int(id) % 16
	return fmt.Sprintf("S%03x%x%x", base, fill, rot)
}

// Codepoint returns the symbol in Unicode form, U+40001 through U+4F428.
func (id SymbolID) Codepoint() rune {
	return cpSymbolFirst + rune(id)
}

// Lane is the horizontal placement of a sign. LaneB is used for horizontal
// writing, the other lanes for vertical columns.
type Lane uint8

// Lanes of a sign.
const (
	LaneB Lane = iota
	LaneL
	LaneM
	LaneR
)

func (l Lane) String() string {
	return string("BLMR"[l&3])
}

// XOffset is the horizontal origin of symbol coordinates in lane l.
func (l Lane) XOffset() int {
	switch l {
	case LaneL:
		return 550
	case LaneR:
		return 450
	}
	return 500
}

// YOffset is the vertical origin of symbol coordinates.
const YOffset = 500

// Placement is a symbol at a position relative to the lane's origin.
type Placement struct {
	Symbol SymbolID
	X, Y   int
}

// Sign is a decoded sign.
type Sign struct {
	Spelling   [][]SymbolID // groups of symbols of the spelling prefix
	Lane       Lane
	Placements []Placement
}

// String returns the sign in ASCII form. The declared size of the sign is not
// retained by decoding and is written as 500x500.
func (sign Sign) String() string {
	var b strings.Builder
	if len(sign.Spelling) > 0 {
		b.WriteByte('A')
		for i, group := range sign.Spelling {
			if i > 0 {
				b.WriteString(GroupSeparator.Key())
			}
			for _, id := range group {
				b.WriteString(id.Key())
			}
		}
	}
	b.WriteString(sign.Lane.String())
	b.WriteString("500x500")
	for _, p := range sign.Placements {
		fmt.Fprintf(&b, "%s%dx%d", p.Symbol.Key(), p.X+sign.Lane.XOffset(), p.Y+YOffset)
	}
	return b.String()
}

// DecodeSign decodes a sign as accepted by the recognizer. Symbol keys and
// coordinates may be given in either form.
//
// Tokens not produced by a recognizer may result in an error of kind
// InvariantViolation.
func DecodeSign(token []rune) (Sign, error) {
	cur := &cursor{buf: token}
	sign := Sign{}
	if cur.peek() == 'A' || cur.peek() == cpPrefix {
		cur.next()
		var group []SymbolID
		for cur.peek() == 'S' || symbolCP.contains(cur.peek()) {
			id, err := cur.symbol()
			if err != nil {
				return sign, err
			}
			if id == GroupSeparator {
				if len(group) > 0 {
					sign.Spelling = append(sign.Spelling, group)
				}
				group = nil
				continue
			}
			group = append(group, id)
		}
		if len(group) > 0 {
			sign.Spelling = append(sign.Spelling, group)
		}
	}
	switch l := cur.next(); l {
	case 'B', cpLaneB:
		sign.Lane = LaneB
	case 'L', cpLaneL:
		sign.Lane = LaneL
	case 'M', cpLaneM:
		sign.Lane = LaneM
	case 'R', cpLaneR:
		sign.Lane = LaneR
	default:
		return sign, cur.fail("lane", l)
	}
	// size is not needed for drawing
	if _, err := cur.coordinate(true); err != nil {
		return sign, err
	}
	if _, err := cur.coordinate(false); err != nil {
		return sign, err
	}
	for !cur.atEnd() {
		id, err := cur.symbol()
		if err != nil {
			return sign, err
		}
		x, err := cur.coordinate(true)
		if err != nil {
			return sign, err
		}
		y, err := cur.coordinate(false)
		if err != nil {
			return sign, err
		}
		sign.Placements = append(sign.Placements, Placement{
			Symbol: id,
			X:      x - sign.Lane.XOffset(),
			Y:      y - YOffset,
		})
	}
	if len(sign.Placements) == 0 {
		return sign, cur.fail("symbol", -1)
	}
	return sign, nil
}

// cursor reads the fields of a token.
type cursor struct {
	buf []rune
	pos int
}

func (cur *cursor) atEnd() bool {
	return cur.pos >= len(cur.buf)
}

func (cur *cursor) peek() rune {
	if cur.atEnd() {
		return -1
	}
	return cur.buf[cur.pos]
}

func (cur *cursor) next() rune {
	r := cur.peek()
	if r >= 0 {
		cur.pos++
	}
	return r
}

func (cur *cursor) fail(what string, r rune) error {
	offset := cur.pos - 1
	if r < 0 {
		offset = cur.pos
	}
	return &Error{
		Kind:     InvariantViolation,
		Offset:   int64(offset),
		Expected: what,
		Actual:   r,
	}
}

// symbol reads a symbol key, either 'S' followed by five hex digits or a single
// code-point.
func (cur *cursor) symbol() (SymbolID, error) {
	r := cur.next()
	if symbolCP.contains(r) {
		return SymbolID(r - cpSymbolFirst), nil
	}
	if r != 'S' {
		return 0, cur.fail("symbol", r)
	}
	var digits [5]int
	for i := range digits {
		d := cur.next()
		v, ok := hexValue(d)
		if !ok {
			return 0, cur.fail("hex digit", d)
		}
		digits[i] = v
	}
	base := digits[0]*0x100 + digits[1]*0x10 + digits[2]
	if base < 0x100 {
		return 0, cur.fail("symbol", 'S')
	}
	id := SymbolID((base-0x100)*96 + digits[3]*0x10 + digits[4])
	return id, nil
}

// coordinate reads a coordinate, either three decimal digits or a single
// code-point. A width in decimal form is followed by an 'x'.
func (cur *cursor) coordinate(width bool) (int, error) {
	r := cur.next()
	if coordCP.contains(r) {
		return int(r-cpCoordFirst) + 250, nil
	}
	if r < '0' || r > '9' {
		return 0, cur.fail("coordinate", r)
	}
	v := int(r - '0')
	for range 2 {
		d := cur.next()
		if d < '0' || d > '9' {
			return 0, cur.fail("decimal digit", d)
		}
		v = v*10 + int(d-'0')
	}
	if width {
		if x := cur.next(); x != 'x' {
			return 0, cur.fail("'x'", x)
		}
	}
	return v, nil
}

func hexValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	}
	return 0, false
}
