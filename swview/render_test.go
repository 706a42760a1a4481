package swview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/signtex/fsw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// letters maps symbols to Latin capitals, which the Go fonts have glyphs for.
func letters(id fsw.SymbolID, _ Layer) rune {
	return 'A' + rune(id)
}

func goFont(t *testing.T) *sfnt.Font {
	t.Helper()
	f, err := sfnt.Parse(goregular.TTF)
	require.NoError(t, err)
	return f
}

func hasDarkPixel(t *testing.T, path string) bool {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()
	img, err := png.Decode(fh)
	require.NoError(t, err)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if cr, cg, cb, _ := img.At(x, y).RGBA(); cr < 0x4000 && cg < 0x4000 && cb < 0x4000 {
				return true
			}
		}
	}
	return false
}

func TestRenderSign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.view")
	defer teardown()
	//
	f := goFont(t)
	rd := NewRenderer(f, f)
	rd.Codepoint = letters
	sign := fsw.Sign{Lane: fsw.LaneM, Placements: []fsw.Placement{
		{Symbol: 0, X: -20, Y: -20},
		{Symbol: 1, X: 10, Y: 10},
	}}
	img, err := rd.Render(sign)
	require.NoError(t, err)
	b := img.Bounds()
	// two glyphs 30 units apart, 2 pixels per unit
	assert.Greater(t, b.Dx(), 60)
	assert.Greater(t, b.Dy(), 60)
	//
	path := filepath.Join(t.TempDir(), "preview", "sign.png")
	require.NoError(t, rd.SavePNG(path, sign))
	assert.True(t, hasDarkPixel(t, path))
}

func TestRenderWithoutGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex.view")
	defer teardown()
	//
	f := goFont(t)
	rd := NewRenderer(nil, f)
	_, err := rd.Render(fsw.Sign{Placements: []fsw.Placement{{Symbol: 5}}})
	assert.ErrorIs(t, err, ErrNothingToDraw)
	//
	rd = NewRenderer(f, nil)
	_, err = rd.Render(fsw.Sign{Placements: []fsw.Placement{{Symbol: 5}}})
	assert.Error(t, err)
}

func TestDefaultCodepoints(t *testing.T) {
	assert.Equal(t, rune(0x100001), DefaultCodepoint(0, LayerFill))
	assert.Equal(t, rune(0xf0006), DefaultCodepoint(5, LayerLine))
}
