package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "set", "settings":
		pterm.Info.Println("Settings")
		pterm.Println(`
	:set:size:<name>         font size macro, e.g. :set:size:mysize
	:set:rotate:<degrees>    rotation of symbols
	:set:mirror:on|off       off flips symbols vertically
	:set:spelling:on|off     draw spellings above signs
	:show                    list current settings
	`)
	case "fsw", "sign", "signs":
		pterm.Info.Println("Formal SignWriting")
		pterm.Println(`
	A sign consists of an optional spelling, a lane with the size of the sign,
	and a list of symbols with their coordinates:
	+-----------------------+------+---------+----------------------------+
	| A S10001 S10002       | M    | 500x500 | S10005 490x520 ...         |
	+-----------------------+------+---------+----------------------------+
	  spelling (optional)     lane   size      symbol key and coordinates
	Lanes are B, L, M and R. Coordinates range from 250 to 749.
	Signs may also be given in Unicode form (U+1D800 .. U+1D9FF, U+40001 .. ).
	:sign:<FSW> shows the symbols of a sign.
	`)
	default:
		pterm.Info.Println("General Help")
		pterm.Println(`
	Any line not starting with ':' is converted and printed.
	:help:set     settings of the conversion
	:help:fsw     notation of signs
	:sign:<FSW>   decode a single sign
	:stats        statistics of this session
	:quit         leave (or <ctrl>D)
	`)
	}
}
