package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/signtex/gloss"
	"github.com/thatisuday/commando"
	"golang.org/x/text/language"
)

func main() {
	commando.
		SetExecutableName("sw-tools").
		SetVersion("v0.1.0").
		SetDescription("Tools for preparing SignWriting glossaries and checking the SignWriting fonts.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("extract").
		SetDescription("Extract gloss/notation pairs from the glossary environments of a (Xe)LaTeX file.").
		SetShortDescription("extract glossary").
		AddArgument("file", "(Xe)LaTeX input file", "").
		AddFlag("output,o", "output file (default stdout)", commando.String, "-").
		SetAction(runExtractCommand)

	commando.
		Register("sort").
		SetDescription("Merge lists of gloss/notation pairs and sort them by gloss.").
		SetShortDescription("merge and sort glossaries").
		AddArgument("files...", "lists of alternating gloss and notation lines", "").
		AddFlag("lang,l", "language of the glosses (BCP 47, e.g. en, de)", commando.String, "en").
		AddFlag("output,o", "output file (default stdout)", commando.String, "-").
		SetAction(runSortCommand)

	commando.
		Register("font").
		SetDescription("Print information about the SignWriting fonts and check them for missing symbols.").
		SetShortDescription("font diagnostics").
		AddArgument("dir", "directory holding the SignWriting fonts", ".").
		SetAction(runFontCommand)

	commando.
		Register("view").
		SetDescription("Render a sign given in Formal SignWriting to a PNG image.").
		SetShortDescription("sign to image").
		AddArgument("sign", "sign in ASCII or Unicode form", "").
		AddFlag("fonts,f", "directory holding the SignWriting fonts", commando.String, ".").
		AddFlag("output,o", "output PNG file", commando.String, "sw-tools-view.png").
		AddFlag("ppem,p", "render scale in pixels-per-em", commando.Int, 60).
		SetAction(runViewCommand)

	commando.Parse(nil)
}

func runExtractCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	path := strings.TrimSpace(args["file"].Value)
	if path == "" {
		fatalf("input file is required")
	}
	in, err := os.Open(path)
	if err != nil {
		fatalf("%v", err)
	}
	defer in.Close()
	withOutput(flags["output"], func(w io.Writer) error {
		return gloss.Extract(in, w)
	})
}

func runSortCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	files := splitList(args["files"].Value)
	if len(files) == 0 {
		fatalf("at least one input file is required")
	}
	lang, err := parseLanguage(flags["lang"])
	if err != nil {
		fatalf("%v", err)
	}
	merger := gloss.NewMerger(lang)
	for _, path := range files {
		if err := addFile(merger, path); err != nil {
			fatalf("%s: %v", path, err)
		}
	}
	verbosef(flags, "%d entries from %d file(s)\n", merger.Len(), len(files))
	withOutput(flags["output"], func(w io.Writer) error {
		_, err := merger.WriteTo(w)
		return err
	})
}

func addFile(merger *gloss.Merger, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return merger.Add(f)
}

func parseLanguage(flag commando.FlagValue) (language.Tag, error) {
	s, err := flag.GetString()
	if err != nil {
		return language.Und, fmt.Errorf("invalid --lang flag: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		s = "en"
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language tag %q: %w", s, err)
	}
	return tag, nil
}

// withOutput calls write with the file named by flag output, or stdout for "-".
func withOutput(flag commando.FlagValue, write func(io.Writer) error) {
	path, err := flag.GetString()
	if err != nil {
		fatalf("invalid --output flag: %v", err)
	}
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		if err := write(os.Stdout); err != nil {
			fatalf("%v", err)
		}
		return
	}
	f, err := os.Create(path)
	if err != nil {
		fatalf("cannot create output file: %v", err)
	}
	if err := write(f); err != nil {
		f.Close()
		fatalf("%v", err)
	}
	if err := f.Close(); err != nil {
		fatalf("%v", err)
	}
}

// splitList splits a variadic argument, which commando joins by commas.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ','
	})
}

func verbosef(flags map[string]commando.FlagValue, format string, args ...interface{}) {
	if v, err := flags["verbose"].GetBool(); err == nil && v {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return strings.TrimSpace(s)
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "sw-tools: "+format+"\n", args...)
	os.Exit(1)
}
