/*
Command fswtex converts Formal SignWriting in (Xe)LaTeX documents to TikZ.

Usage:

	fswtex [flags] [input [output]]

Without arguments, fswtex reads from stdin and writes to stdout. With one
argument, the input is read from a file. Flag -i starts an interactive session
converting single lines.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/signtex"
	"github.com/npillmayer/signtex/swtext"
	"github.com/npillmayer/signtex/swtikz"
	"github.com/pterm/pterm"
)

// tracer traces with key 'signtex'
func tracer() tracing.Trace {
	return tracing.Select("signtex")
}

// traceKeys are the trace keys of all packages of the converter.
var traceKeys = []string{
	"signtex",
	"signtex.text",
	"signtex.fsw",
	"signtex.tikz",
	"signtex.query",
	"signtex.view",
}

// Exit codes
const (
	exitFatal = 1
	exitUsage = 2
)

// settings collects the command line flags.
type settings struct {
	size        string
	nomirror    bool
	rotate      int
	spelling    bool
	fonts       string
	preview     string
	encoding    string
	tlevel      string
	interactive bool
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintln(os.Stderr, "error configuring tracing")
		os.Exit(exitFatal)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	var s settings
	flag.StringVar(&s.size, "size", "", `name of the font size macro (default \f@size)`)
	flag.BoolVar(&s.nomirror, "nomirror", false, "flip symbols vertically")
	flag.IntVar(&s.rotate, "rotate", swtikz.DefaultRotation, "rotation of symbols in degrees")
	flag.BoolVar(&s.spelling, "spelling", false, "draw spellings above signs")
	flag.StringVar(&s.fonts, "fonts", "", "directory of the SignWriting fonts, for glyph checks")
	flag.StringVar(&s.preview, "preview", "", "directory to write PNG previews of signs to (needs -fonts)")
	flag.StringVar(&s.encoding, "encoding", "utf8", "output encoding [utf8|utf16le|utf16be]")
	flag.StringVar(&s.tlevel, "trace", "Error", "Trace level [Debug|Info|Error]")
	flag.BoolVar(&s.interactive, "i", false, "interactive mode")
	flag.Usage = usage
	flag.Parse()

	if err := setTraceLevel(s.tlevel); err != nil {
		exit(exitUsage, err)
	}
	opts, err := s.options()
	if err != nil {
		exit(exitUsage, err)
	}
	if s.interactive {
		if flag.NArg() > 0 {
			usage()
			os.Exit(exitUsage)
		}
		if err := startREPL(opts); err != nil {
			exit(exitFatal, err)
		}
		return
	}
	if flag.NArg() > 2 {
		usage()
		os.Exit(exitUsage)
	}
	opts.Header = strings.Join(append([]string{filepath.Base(os.Args[0])}, os.Args[1:]...), " ")
	if err := run(flag.Args(), opts); err != nil {
		exit(exitFatal, err)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] [input [output]]\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(out, "Converts Formal SignWriting in a (Xe)LaTeX document to TikZ pictures.")
	fmt.Fprintln(out, "Reads from stdin and writes to stdout if no files are given.")
	fmt.Fprintln(out)
	flag.PrintDefaults()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// stdout may carry converted output, so messages go to stderr.
func message(p pterm.PrefixPrinter, format string, args ...any) {
	fmt.Fprint(os.Stderr, p.Sprintln(fmt.Sprintf(format, args...)))
}

func exit(code int, err error) {
	message(pterm.Error, "%v", err)
	os.Exit(code)
}

func setTraceLevel(tlevel string) error {
	level := tracing.LevelError
	switch tlevel {
	case "Debug":
		level = tracing.LevelDebug
	case "Info":
		level = tracing.LevelInfo
	case "Error":
	default:
		return fmt.Errorf("invalid trace level: %s", tlevel)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", tlevel)
	return nil
}

// options creates the conversion options from the command line flags,
// loading the SignWriting fonts if requested.
func (s settings) options() (signtex.Options, error) {
	opts := signtex.DefaultOptions()
	conf := &opts.Config
	if s.size != "" {
		conf.SizeMacro = swtikz.MacroName(s.size)
	}
	conf.Mirror = !s.nomirror
	conf.Rotation = s.rotate
	conf.Spelling = s.spelling
	enc, ok := swtext.ParseEncoding(s.encoding)
	if !ok || enc == swtext.Unknown {
		return opts, fmt.Errorf("unsupported output encoding %q", s.encoding)
	}
	conf.Output = enc
	if err := conf.Validate(); err != nil {
		return opts, err
	}
	if s.preview != "" && s.fonts == "" {
		return opts, errors.New("-preview needs -fonts")
	}
	if s.fonts != "" {
		fonts, err := signtex.LoadSignFonts(s.fonts)
		if err != nil {
			return opts, err
		}
		opts.Fonts = fonts
		conf.Glyphs = fonts.Coverage()
		opts.PreviewDir = s.preview
	}
	return opts, nil
}

// run converts a file or stdin, writing to a file or stdout.
func run(args []string, opts signtex.Options) (err error) {
	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	if len(args) > 1 {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	result, err := signtex.Convert(in, out, opts)
	if err != nil {
		return err
	}
	tracer().Infof("%d sign(s), %d partial sign(s) left as text", result.Signs, result.Mismatches)
	if result.MissingGlyphs > 0 {
		message(pterm.Warning, "%d symbol(s) not found in the SignWriting fonts", result.MissingGlyphs)
	}
	if result.Previews > 0 {
		message(pterm.Info, "%d preview(s) written to %s", result.Previews, opts.PreviewDir)
	}
	return nil
}
