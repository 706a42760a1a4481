package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/signtex"
	"github.com/npillmayer/signtex/fsw"
	"github.com/npillmayer/signtex/swquery"
	"github.com/npillmayer/signtex/swtikz"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	dir := strings.TrimSpace(args["dir"].Value)
	fonts, err := signtex.LoadSignFonts(dir)
	if err != nil {
		fatalf("%v", err)
	}
	for _, f := range []*signtex.ScalableFont{fonts.Fill, fonts.Line} {
		info := swquery.Info(f.SFNT)
		fmt.Printf("Path: %s\n", f.Filepath)
		if info.Family != "" {
			fmt.Printf("Family: %s\n", info.Family)
		}
		if info.Subfamily != "" {
			fmt.Printf("Subfamily: %s\n", info.Subfamily)
		}
		if info.Version != "" {
			fmt.Printf("Version: %s\n", info.Version)
		}
		fmt.Printf("Units per em: %d\n", info.UnitsPerEm)
		fmt.Printf("Glyphs: %d\n", info.Glyphs)
	}
	report := fonts.Coverage().Scan(0, fsw.LastSymbol)
	fmt.Printf("Symbols: checked=%d missing=%d\n", report.Checked, report.Missing)
	if len(report.Samples) > 0 {
		keys := make([]string, len(report.Samples))
		for i, id := range report.Samples {
			keys[i] = id.Key()
		}
		fmt.Printf("First missing: %s\n", strings.Join(keys, ","))
	}
	verbosef(flags, "glyphs of S10000 are expected at %U (fill) and %U (line)\n", swtikz.FillBase, swtikz.LineBase)
}

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	sign, err := fsw.ParseSign(args["sign"].Value)
	if err != nil {
		fatalf("%v", err)
	}
	fonts, err := signtex.LoadSignFonts(mustFlagString(flags["fonts"], "fonts"))
	if err != nil {
		fatalf("%v", err)
	}
	outPath := mustFlagString(flags["output"], "output")
	if outPath == "" {
		fatalf("output path is empty")
	}
	ppem := mustFlagInt(flags["ppem"], "ppem")
	if ppem <= 0 {
		fatalf("--ppem must be > 0")
	}
	rd := fonts.Renderer()
	rd.PPEM = ppem
	if err := rd.SavePNG(outPath, sign); err != nil {
		fatalf("render failed: %v", err)
	}
	fmt.Printf("wrote %s (%d symbols)\n", outPath, len(sign.Placements))
}
