package signtex

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/signtex/internal/fontload"
	"github.com/npillmayer/signtex/swtext"
	"github.com/npillmayer/signtex/swtikz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/encoding/unicode"
)

// fakeFontDir places copies of the Go regular font under the names of the
// SignWriting fonts. It has none of the symbol glyphs.
func fakeFontDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{FillFontFile, LineFontFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), goregular.TTF, 0o644))
	}
	return dir
}

func TestConvertString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex")
	defer teardown()
	//
	out, err := ConvertString("Haus M500x500S10000490x490.", swtikz.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `Haus {\makeatletter\begin{tikzpicture}`), out)
	assert.Contains(t, out, `{\swline\char983041}`)
	assert.True(t, strings.HasSuffix(out, `\end{tikzpicture}}\\.`), out)
	//
	out, err = ConvertString("kein Zeichen: M5x", swtikz.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "kein Zeichen: M5x", out)
}

func TestConvertWithPreamble(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex")
	defer teardown()
	//
	var out bytes.Buffer
	opts := DefaultOptions()
	opts.Header = "fswtex in.tex out.tex"
	result, err := Convert(strings.NewReader("B500x500S10000490x490 M5"), &out, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Signs)
	assert.Equal(t, swtext.UTF8, result.Encoding)
	assert.True(t, strings.HasPrefix(out.String(), "% This file was generated by:\n%    fswtex in.tex out.tex\n"))
	assert.Contains(t, out.String(), `% \usepackage{tikz}`)
	assert.Contains(t, out.String(), "\\end{tikzpicture}} M5\n")
	assert.True(t, strings.HasSuffix(out.String(), "% 1 sign(s) converted.\n"))
}

func TestConvertUTF16Input(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex")
	defer teardown()
	//
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	in, err := enc.String("a \U0001D803\U0001D906\U0001D906\U00040001\U0001D8FC\U0001D8FC b")
	require.NoError(t, err)
	opts := Options{Config: swtikz.DefaultConfig()}
	var out bytes.Buffer
	result, err := Convert(strings.NewReader(in), &out, opts)
	require.NoError(t, err)
	assert.Equal(t, swtext.UTF16BE, result.Encoding)
	assert.Equal(t, 1, result.Signs)
	assert.True(t, strings.HasPrefix(out.String(), "a {"), out.String())
	assert.True(t, strings.HasSuffix(out.String(), `}\\ b`), out.String())
}

func TestConvertMalformedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex")
	defer teardown()
	//
	var out bytes.Buffer
	opts := Options{Config: swtikz.DefaultConfig(), Input: swtext.UTF8}
	_, err := Convert(strings.NewReader("abc\xff"), &out, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, swtext.ErrMalformed), err.Error())
	assert.Equal(t, "abc", out.String())
}

func TestConvertInvalidConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex")
	defer teardown()
	//
	conf := swtikz.DefaultConfig()
	conf.SizeMacro = "size"
	_, err := ConvertString("x", conf)
	assert.ErrorIs(t, err, swtikz.ErrConfig)
	//
	opts := DefaultOptions()
	opts.PreviewDir = t.TempDir()
	_, err = Convert(strings.NewReader("x"), &bytes.Buffer{}, opts)
	assert.Error(t, err)
}

func TestLoadSignFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex")
	defer teardown()
	//
	_, err := LoadSignFonts(t.TempDir())
	assert.ErrorIs(t, err, fontload.ErrNotFound)
	//
	dir := fakeFontDir(t)
	fonts, err := LoadSignFonts(t.TempDir(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FillFontFile), fonts.Fill.Filepath)
	assert.Equal(t, filepath.Join(dir, LineFontFile), fonts.Line.Filepath)
	assert.NotNil(t, fonts.Line.SFNT)
}

func TestConvertWithFontChecks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "signtex")
	defer teardown()
	//
	fonts, err := LoadSignFonts(fakeFontDir(t))
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Config.Glyphs = fonts.Coverage()
	opts.Fonts = fonts
	opts.PreviewDir = filepath.Join(t.TempDir(), "preview")
	var out bytes.Buffer
	result, err := Convert(strings.NewReader("M500x500S10000490x490S20500500x500"), &out, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Signs)
	assert.Equal(t, 2, result.MissingGlyphs)
	// the Go font has no SignWriting glyphs to preview
	assert.Equal(t, 0, result.Previews)
	assert.Contains(t, out.String(), "% 2 symbol(s) not found in the SignWriting fonts.\n")
}
