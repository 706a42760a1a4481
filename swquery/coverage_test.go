package swquery

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/signtex/fsw"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type QueryTestEnviron struct {
	suite.Suite
	font *sfnt.Font
}

// listen for 'go test' command --> run test methods
func TestQueryFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.query")
	defer teardown()
	suite.Run(t, new(QueryTestEnviron))
}

// run once, before test suite methods
func (env *QueryTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("signtex.query").SetTraceLevel(tracing.LevelError)
	f, err := sfnt.Parse(goregular.TTF)
	env.Require().NoError(err, "cannot parse Go regular font")
	env.font = f
	tracing.Select("signtex.query").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *QueryTestEnviron) TestInfo() {
	info := Info(env.font)
	env.Contains(info.Family, "Go")
	env.Contains(info.Subfamily, "Regular")
	env.NotEmpty(info.Version)
	env.Positive(int(info.UnitsPerEm))
	env.Greater(info.Glyphs, 100)
}

func (env *QueryTestEnviron) TestGlyphLookup() {
	c := NewCoverage(env.font, nil)
	env.NotZero(c.glyph(env.font, 'A'))
	env.Zero(c.glyph(env.font, 0x100001))
}

func (env *QueryTestEnviron) TestTextFontHasNoSymbols() {
	c := NewCoverage(env.font, env.font)
	env.False(c.HasSymbol(0))
	env.False(c.HasSymbol(fsw.GroupSeparator))
	r := c.Scan(0, 20)
	env.Equal(21, r.Checked)
	env.Equal(21, r.Missing)
	env.Len(r.Samples, MaxSamples)
	env.Equal(fsw.SymbolID(0), r.Samples[0])
}

func (env *QueryTestEnviron) TestNoFonts() {
	c := NewCoverage(nil, nil)
	env.False(c.HasSymbol(0))
}

func (env *QueryTestEnviron) TestGlyphBounds() {
	bounds, advance, ok := GlyphBounds(env.font, 'M', 64)
	env.Require().True(ok)
	env.Positive(int(advance))
	env.Less(int(bounds.Min.Y), 0, "glyph extends above the baseline")
	_, _, ok = GlyphBounds(env.font, 0xf0001, 64)
	env.False(ok)
}
