package fsw

// Outcome is the effect of feeding a code-point to a State.
type Outcome uint8

const (
	// Advance: the code-point continues the pending sign.
	Advance Outcome = iota
	// Pass: there is no pending sign and the code-point does not start one.
	Pass
	// Flush: the code-point does not continue the pending sign. The pending
	// code-points and the code-point itself are to be output unchanged.
	Flush
	// Complete: the pending sign is complete. The code-point fed either starts a
	// new sign or is output after the completed one.
	Complete
)

func (o Outcome) String() string {
	switch o {
	case Advance:
		return "advance"
	case Pass:
		return "pass"
	case Flush:
		return "flush"
	case Complete:
		return "complete"
	}
	return "invalid"
}

// Transition reports the outcome of State.Feed. Slices are owned by the State
// and valid until the next call to Feed, Finish or Reset.
type Transition struct {
	Outcome  Outcome
	Token    []rune // the completed sign, for Complete
	Literal  []rune // code-points to output verbatim, after Token if any
	Mismatch *Error // for Flush: what the recognizer would have accepted
}

// wrapper is implicitly put in front of a bare punctuation symbol.
var wrapper = []rune("M500x500")

// State is the automaton recognizing signs, one code-point at a time.
// The zero value is an automaton at the Start position.
type State struct {
	pos     Position
	pending []rune
	digits  [2]rune // digits of the numeral currently being matched
	offset  int64   // number of code-points fed
	token   []rune
	literal []rune
}

// NewState creates an automaton at the Start position.
func NewState() *State {
	return &State{pos: Start}
}

// Reset discards a pending sign and returns to the Start position.
func (s *State) Reset() {
	s.pos = Start
	s.pending = s.pending[:0]
	s.digits = [2]rune{}
}

// Position returns the current position of the automaton.
func (s *State) Position() Position {
	return s.pos
}

// Pending returns the code-points of the sign matched so far. The slice is
// valid until the next call to Feed.
func (s *State) Pending() []rune {
	return s.pending
}

// Feed advances the automaton by one code-point.
//
// An error is returned only if the automaton has reached a position without
// transitions. This cannot happen with an intact transition table; the error
// is of kind InvariantViolation.
func (s *State) Feed(c rune) (Transition, error) {
	defer func() { s.offset++ }()
	edges, ok := transitions[s.pos]
	if !ok {
		return Transition{}, s.invariant(c)
	}
	for _, e := range edges {
		if e.matches(c, s.digits) {
			s.advance(c, e.target)
			return Transition{Outcome: Advance}, nil
		}
	}
	if s.pos.Accepting() {
		return s.complete(c, true)
	}
	if s.pos == Start {
		s.literal = append(s.literal[:0], c)
		return Transition{Outcome: Pass, Literal: s.literal}, nil
	}
	mismatch := &Error{
		Kind:     GrammarMismatch,
		Offset:   s.offset,
		Position: s.pos,
		Expected: expected(edges, s.digits),
		Actual:   c,
	}
	tracer().Debugf("not a sign: %v", mismatch)
	s.literal = append(append(s.literal[:0], s.pending...), c)
	s.Reset()
	return Transition{Outcome: Flush, Literal: s.literal, Mismatch: mismatch}, nil
}

// Finish is to be called at end of input. A complete pending sign is reported
// with outcome Complete, an incomplete one is flushed.
func (s *State) Finish() (Transition, error) {
	if s.pos.Accepting() {
		return s.complete(0, false)
	}
	if len(s.pending) == 0 {
		return Transition{Outcome: Pass}, nil
	}
	tracer().Debugf("input ends inside a sign at %s, flushing %d code-points", s.pos, len(s.pending))
	s.literal = append(s.literal[:0], s.pending...)
	s.Reset()
	return Transition{Outcome: Flush, Literal: s.literal}, nil
}

func (s *State) advance(c rune, to Position) {
	switch s.pos.Sub {
	case SubFirst, SubFirstW, SubFirstH:
		s.digits = [2]rune{c, 0}
	case SubSecond, SubSecondW, SubSecondH:
		s.digits[1] = c
	}
	s.pending = append(s.pending, c)
	s.pos = to
}

// complete hands out the pending sign and restarts from Start with the
// trailing code-point c, if any.
func (s *State) complete(c rune, trailing bool) (Transition, error) {
	s.token = s.token[:0]
	if s.pos.Phase == PhasePunctuation {
		s.token = append(s.token, wrapper...)
	}
	s.token = append(s.token, s.pending...)
	s.Reset()
	tr := Transition{Outcome: Complete, Token: s.token}
	if !trailing {
		return tr, nil
	}
	edges, ok := transitions[Start]
	if !ok {
		return tr, s.invariant(c)
	}
	for _, e := range edges {
		if e.matches(c, s.digits) {
			s.advance(c, e.target)
			return tr, nil
		}
	}
	s.literal = append(s.literal[:0], c)
	tr.Literal = s.literal
	return tr, nil
}

func (s *State) invariant(c rune) error {
	err := &Error{
		Kind:     InvariantViolation,
		Offset:   s.offset,
		Position: s.pos,
		Expected: "a position with transitions",
		Actual:   c,
	}
	tracer().Errorf("recognizer: %v", err)
	return err
}
