package fsw

import (
	"fmt"
	"strings"
)

// Code-points of the Unicode form (FSWU).
const (
	cpPrefix      rune = 0x1d800
	cpLaneB       rune = 0x1d801
	cpLaneL       rune = 0x1d802
	cpLaneM       rune = 0x1d803
	cpLaneR       rune = 0x1d804
	cpCoordFirst  rune = 0x1d80c // coordinate 250
	cpCoordLast   rune = 0x1d9ff // coordinate 749
	cpSymbolFirst rune = 0x40001 // S10000
	cpSymbolLast  rune = 0x4f428 // S38b07
	cpPunctFirst  rune = 0x4f2a1 // S38700
)

// --- Positions -------------------------------------------------------------

// Phase is the top level of a recognizer position.
type Phase uint8

// Phases of the recognizer.
const (
	PhaseStart Phase = iota
	PhasePunctuation
	PhasePrefix
	PhaseVisual
)

// Mode is the second level of a recognizer position: the field currently
// being matched.
type Mode uint8

// Modes of the recognizer.
const (
	ModeStart Mode = iota
	ModeSize
	ModeSymbol
	ModePlacement
)

// Submode is the third level of a recognizer position: the character of a
// field which is expected next.
type Submode uint8

// Submodes of the recognizer. First through Rotation address the characters of
// a symbol key, FirstW through ThirdH the characters of a coordinate pair.
const (
	SubStart Submode = iota
	SubFirst
	SubSecond
	SubThird
	SubFill
	SubRotation
	SubFirstW
	SubSecondW
	SubThirdW
	SubX
	SubFirstH
	SubSecondH
	SubThirdH
	SubEnd
)

var phaseNames = [...]string{"Start", "Punctuation", "Prefix", "Visual"}
var modeNames = [...]string{"Start", "Size", "Symbol", "Placement"}
var submodeNames = [...]string{"Start", "First", "Second", "Third", "Fill", "Rotation",
	"FirstW", "SecondW", "ThirdW", "X", "FirstH", "SecondH", "ThirdH", "End"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

func (s Submode) String() string {
	if int(s) < len(submodeNames) {
		return submodeNames[s]
	}
	return fmt.Sprintf("Submode(%d)", s)
}

// Position is a state of the recognizer automaton.
type Position struct {
	Phase Phase
	Mode  Mode
	Sub   Submode
}

// Start is the initial position of the recognizer.
var Start = Position{PhaseStart, ModeStart, SubStart}

func (p Position) String() string {
	return p.Phase.String() + "/" + p.Mode.String() + "/" + p.Sub.String()
}

// Accepting is true if the code-points matched so far form a complete sign.
func (p Position) Accepting() bool {
	return p.Sub == SubEnd
}

// --- Character classes -----------------------------------------------------

type span struct {
	lo, hi rune
}

// class is a set of code-points, given as a list of inclusive ranges.
type class []span

func single(r rune) class { return class{{r, r}} }
func between(lo, hi rune) class { return class{{lo, hi}} }
func union(cls ...class) class {
	var u class
	for _, c := range cls {
		u = append(u, c...)
	}
	return u
}

func (cl class) contains(r rune) bool {
	for _, s := range cl {
		if r >= s.lo && r <= s.hi {
			return true
		}
	}
	return false
}

func (cl class) String() string {
	parts := make([]string, len(cl))
	for i, s := range cl {
		switch {
		case s.lo == s.hi && s.lo < 0x80:
			parts[i] = fmt.Sprintf("'%c'", s.lo)
		case s.lo == s.hi:
			parts[i] = fmt.Sprintf("%U", s.lo)
		case s.hi < 0x80:
			parts[i] = fmt.Sprintf("'%c'-'%c'", s.lo, s.hi)
		default:
			parts[i] = fmt.Sprintf("%U-%U", s.lo, s.hi)
		}
	}
	return strings.Join(parts, "|")
}

var (
	decDigits   = between('0', '9')
	hexDigits   = union(decDigits, between('a', 'f'))
	prefixMark  = union(single('A'), single(cpPrefix))
	laneMark    = union(single('B'), between('L', 'M'), single('R'), between(cpLaneB, cpLaneR))
	symbolMark  = single('S')
	symbolCP    = between(cpSymbolFirst, cpSymbolLast)
	punctCP     = between(cpPunctFirst, cpSymbolLast)
	coordCP     = between(cpCoordFirst, cpCoordLast)
	fillDigits  = between('0', '5')
	coordSep    = single('x')
	anyDigit    = class(nil) // in digit rules: no restriction
	symbolGroup = between('1', '3')
)

// --- Bounded numerals ------------------------------------------------------

// digitRule constrains a digit of a numeral, depending on the digits already
// matched: if the previous digits are in when[0] and when[1] (nil matching
// anything), the digit has to be in then.
type digitRule struct {
	when [2]class
	then class
}

// numeral is a three-digit number where the range of each digit depends on the
// digits before it.
type numeral struct {
	first  class
	second []digitRule
	third  []digitRule
}

// symbolNumeral is the numeric part of a symbol key, S100 through S38b.
var symbolNumeral = numeral{
	first: symbolGroup,
	second: []digitRule{
		{when: [2]class{between('1', '2'), anyDigit}, then: hexDigits},
		{when: [2]class{single('3'), anyDigit}, then: between('0', '8')},
	},
	third: []digitRule{
		{when: [2]class{between('1', '2'), anyDigit}, then: hexDigits},
		{when: [2]class{single('3'), between('0', '7')}, then: hexDigits},
		{when: [2]class{single('3'), single('8')}, then: union(decDigits, between('a', 'b'))},
	},
}

// punctNumeral is the numeric part of a punctuation symbol key, S387 through S38b.
var punctNumeral = numeral{
	first: single('3'),
	second: []digitRule{
		{when: [2]class{single('3'), anyDigit}, then: single('8')},
	},
	third: []digitRule{
		{when: [2]class{single('3'), single('8')}, then: union(between('7', '9'), between('a', 'b'))},
	},
}

// coordNumeral is a coordinate in the range 250 through 749.
var coordNumeral = numeral{
	first: between('2', '7'),
	second: []digitRule{
		{when: [2]class{single('2'), anyDigit}, then: between('5', '9')},
		{when: [2]class{between('3', '6'), anyDigit}, then: decDigits},
		{when: [2]class{single('7'), anyDigit}, then: between('0', '4')},
	},
	third: []digitRule{
		{when: [2]class{anyDigit, anyDigit}, then: decDigits},
	},
}

// --- Transition table ------------------------------------------------------

// edge is a transition of the automaton. It is taken for a code-point in on,
// provided the digits recorded for the current numeral match when.
type edge struct {
	on     class
	when   [2]class
	target Position
}

func (e edge) matches(c rune, digits [2]rune) bool {
	return e.on.contains(c) && e.applies(digits)
}

// applies is true if the digit context of e is satisfied.
func (e edge) applies(digits [2]rune) bool {
	for i, cl := range e.when {
		if cl != nil && !cl.contains(digits[i]) {
			return false
		}
	}
	return true
}

type table map[Position][]edge

func (t table) add(from Position, on class, to Position) {
	t[from] = append(t[from], edge{on: on, target: to})
}

func (t table) addRules(from Position, rules []digitRule, to Position) {
	for _, rule := range rules {
		t[from] = append(t[from], edge{on: rule.then, when: rule.when, target: to})
	}
}

// addSymbol generates the sub-machine for the five characters following the
// 'S' of a symbol key.
func (t table) addSymbol(phase Phase, mode Mode, num numeral, next Position) {
	at := func(sub Submode) Position { return Position{phase, mode, sub} }
	t.add(at(SubFirst), num.first, at(SubSecond))
	t.addRules(at(SubSecond), num.second, at(SubThird))
	t.addRules(at(SubThird), num.third, at(SubFill))
	t.add(at(SubFill), fillDigits, at(SubRotation))
	t.add(at(SubRotation), hexDigits, next)
}

// addCoordinates generates the sub-machine for a pair of coordinates. Either of
// them may be a numeral or a single code-point; a numeral width is followed by
// an 'x'.
func (t table) addCoordinates(phase Phase, mode Mode, next Position) {
	at := func(sub Submode) Position { return Position{phase, mode, sub} }
	t.add(at(SubFirstW), coordNumeral.first, at(SubSecondW))
	t.add(at(SubFirstW), coordCP, at(SubFirstH))
	t.addRules(at(SubSecondW), coordNumeral.second, at(SubThirdW))
	t.addRules(at(SubThirdW), coordNumeral.third, at(SubX))
	t.add(at(SubX), coordSep, at(SubFirstH))
	t.add(at(SubFirstH), coordNumeral.first, at(SubSecondH))
	t.add(at(SubFirstH), coordCP, next)
	t.addRules(at(SubSecondH), coordNumeral.second, at(SubThirdH))
	t.addRules(at(SubThirdH), coordNumeral.third, next)
}

func buildTransitions() table {
	t := make(table)
	var (
		punctSymbol    = Position{PhasePunctuation, ModeSymbol, SubFirst}
		punctPlacement = Position{PhasePunctuation, ModePlacement, SubFirstW}
		punctEnd       = Position{PhasePunctuation, ModePlacement, SubEnd}
		prefixStart    = Position{PhasePrefix, ModeSymbol, SubStart}
		prefixSymbol   = Position{PhasePrefix, ModeSymbol, SubFirst}
		visualStart    = Position{PhaseVisual, ModeStart, SubStart}
		visualSize     = Position{PhaseVisual, ModeSize, SubFirstW}
		visualSymStart = Position{PhaseVisual, ModeSymbol, SubStart}
		visualSymbol   = Position{PhaseVisual, ModeSymbol, SubFirst}
		visualPlace    = Position{PhaseVisual, ModePlacement, SubFirstW}
		visualEnd      = Position{PhaseVisual, ModePlacement, SubEnd}
	)
	t.add(Start, prefixMark, prefixStart)
	t.add(Start, laneMark, visualSize)
	t.add(Start, symbolMark, punctSymbol)
	t.add(Start, punctCP, punctPlacement)
	// bare punctuation
	t.addSymbol(PhasePunctuation, ModeSymbol, punctNumeral, punctPlacement)
	t.addCoordinates(PhasePunctuation, ModePlacement, punctEnd)
	t[punctEnd] = []edge{}
	// spelling prefix
	t.add(prefixStart, symbolMark, prefixSymbol)
	t.add(prefixStart, symbolCP, visualStart)
	t.addSymbol(PhasePrefix, ModeSymbol, symbolNumeral, visualStart)
	t.add(visualStart, laneMark, visualSize)
	t.add(visualStart, symbolMark, prefixSymbol)
	t.add(visualStart, symbolCP, visualStart)
	// signbox
	t.addCoordinates(PhaseVisual, ModeSize, visualSymStart)
	t.add(visualSymStart, symbolMark, visualSymbol)
	t.add(visualSymStart, symbolCP, visualPlace)
	t.addSymbol(PhaseVisual, ModeSymbol, symbolNumeral, visualPlace)
	t.addCoordinates(PhaseVisual, ModePlacement, visualEnd)
	t.add(visualEnd, symbolMark, visualSymbol)
	t.add(visualEnd, symbolCP, visualPlace)
	return t
}

// transitions is shared by all recognizers and never modified after init.
var transitions = buildTransitions()

// expected describes the code-points acceptable at a position, given the
// digits matched so far.
func expected(edges []edge, digits [2]rune) string {
	var alternatives []string
	for _, e := range edges {
		if e.applies(digits) {
			alternatives = append(alternatives, e.on.String())
		}
	}
	if len(alternatives) == 0 {
		return "end of sign"
	}
	return strings.Join(alternatives, " or ")
}
