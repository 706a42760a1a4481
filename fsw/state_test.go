package fsw

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// accepts feeds input to a fresh State and reports whether it has been matched
// completely.
func accepts(t *testing.T, input string) bool {
	t.Helper()
	s := NewState()
	for _, c := range input {
		tr, err := s.Feed(c)
		require.NoError(t, err)
		if tr.Outcome != Advance {
			return false
		}
	}
	return s.Position().Accepting()
}

func TestSymbolKeyDigits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.fsw")
	defer teardown()
	//
	tests := []struct {
		key  string
		want bool
	}{
		{"S10000", true},
		{"S2ff5f", true},
		{"S37f00", true},
		{"S38b07", true},
		{"S38b5f", true},
		{"S38c00", false},
		{"S39000", false},
		{"S40000", false},
		{"S00000", false},
		{"S10060", false},
		{"S1af50", true},
		{"S1A000", false},
		{"S1000g", false},
	}
	for _, tt := range tests {
		got := accepts(t, "M500x500"+tt.key+"500x500")
		assert.Equal(t, tt.want, got, "symbol key %s", tt.key)
	}
}

func TestCoordinateDigits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.fsw")
	defer teardown()
	//
	tests := []struct {
		coord string
		want  bool
	}{
		{"250", true},
		{"299", true},
		{"300", true},
		{"699", true},
		{"700", true},
		{"749", true},
		{"249", false},
		{"750", false},
		{"800", false},
		{"199", false},
		{"5a0", false},
	}
	for _, tt := range tests {
		width := accepts(t, "M500x500S10000"+tt.coord+"x500")
		height := accepts(t, "M500x500S10000500x"+tt.coord)
		size := accepts(t, "M"+tt.coord+"x500S10000500x500")
		assert.Equal(t, tt.want, width, "width %s", tt.coord)
		assert.Equal(t, tt.want, height, "height %s", tt.coord)
		assert.Equal(t, tt.want, size, "size %s", tt.coord)
	}
	// no 'x' after a code-point width
	assert.True(t, accepts(t, "M500x500S10000\U0001D8FC500"))
	assert.False(t, accepts(t, "M500x500S10000\U0001D8FCx500"))
	assert.False(t, accepts(t, "M500x500S10000500500"))
}

func TestPrefixRequiresSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.fsw")
	defer teardown()
	//
	assert.True(t, accepts(t, "AS10000S20000M500x500S10000500x500"))
	assert.True(t, accepts(t, "\U0001D800\U00040001M500x500S10000500x500"))
	assert.False(t, accepts(t, "AM500x500S10000500x500"))
	assert.False(t, accepts(t, "M500x500"), "a sign needs at least one placed symbol")
	assert.False(t, accepts(t, "M500x500S10000"))
}

func TestMismatchIsReported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.fsw")
	defer teardown()
	//
	s := NewState()
	for _, c := range "ab M5" {
		_, err := s.Feed(c)
		require.NoError(t, err)
	}
	assert.Equal(t, []rune("M5"), s.Pending())
	tr, err := s.Feed('y')
	require.NoError(t, err)
	assert.Equal(t, Flush, tr.Outcome)
	assert.Equal(t, []rune("M5y"), tr.Literal)
	require.NotNil(t, tr.Mismatch)
	assert.Equal(t, GrammarMismatch, tr.Mismatch.Kind)
	assert.False(t, tr.Mismatch.Fatal())
	assert.Equal(t, int64(5), tr.Mismatch.Offset)
	assert.Equal(t, Position{PhaseVisual, ModeSize, SubSecondW}, tr.Mismatch.Position)
	assert.Equal(t, 'y', tr.Mismatch.Actual)
	assert.Equal(t, "'0'-'9'", tr.Mismatch.Expected)
	assert.Contains(t, tr.Mismatch.Error(), "LATIN SMALL LETTER Y")
	assert.Equal(t, Start, s.Position())
	assert.Empty(t, s.Pending())
}

func TestCompletionReentersMatching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.fsw")
	defer teardown()
	//
	s := NewState()
	for _, c := range "B500x500S10000500x500" {
		tr, err := s.Feed(c)
		require.NoError(t, err)
		require.Equal(t, Advance, tr.Outcome)
	}
	tr, err := s.Feed('R')
	require.NoError(t, err)
	assert.Equal(t, Complete, tr.Outcome)
	assert.Equal(t, "B500x500S10000500x500", string(tr.Token))
	assert.Empty(t, tr.Literal, "R starts another sign")
	assert.Equal(t, []rune("R"), s.Pending())
	//
	tr, err = s.Finish()
	require.NoError(t, err)
	assert.Equal(t, Flush, tr.Outcome)
	assert.Equal(t, []rune("R"), tr.Literal)
	assert.Nil(t, tr.Mismatch)
}

func TestEveryTargetHasTransitions(t *testing.T) {
	for from, edges := range transitions {
		for _, e := range edges {
			_, ok := transitions[e.target]
			assert.True(t, ok, "%s -> %s: target without transitions", from, e.target)
		}
	}
	for _, p := range []Position{
		{PhaseVisual, ModePlacement, SubEnd},
		{PhasePunctuation, ModePlacement, SubEnd},
	} {
		_, ok := transitions[p]
		assert.True(t, ok, "missing accepting position %s", p)
	}
}

func TestMissingTransitionIsInvariantViolation(t *testing.T) {
	s := &State{pos: Position{PhasePrefix, ModeSize, SubX}}
	_, err := s.Feed('x')
	require.Error(t, err)
	var ferr *Error
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, InvariantViolation, ferr.Kind)
	assert.True(t, ferr.Fatal())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "Start/Start/Start", Start.String())
	assert.Equal(t, "Visual/Placement/ThirdH", Position{PhaseVisual, ModePlacement, SubThirdH}.String())
	assert.Equal(t, "Punctuation/Symbol/Rotation", Position{PhasePunctuation, ModeSymbol, SubRotation}.String())
}
