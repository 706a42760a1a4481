package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/signtex"
	"github.com/npillmayer/signtex/fsw"
	"github.com/npillmayer/signtex/swtext"
	"github.com/npillmayer/signtex/swtikz"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	repl  *readline.Instance
	opts  signtex.Options
	lines int
	stats signtex.Result
}

func startREPL(opts signtex.Options) error {
	repl, err := readline.New("fsw > ")
	if err != nil {
		return err
	}
	defer repl.Close()
	opts.Preamble = false
	opts.Header = ""
	opts.Config.Output = swtext.UTF8
	opts.PreviewDir = "" // preview files are numbered per conversion
	pterm.Info.Println("Welcome to the SignWriting to TikZ converter")
	pterm.Info.Println("Enter text to convert, or :help. Quit with <ctrl>D")
	intp := &Intp{repl: repl, opts: opts}
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			intp.convert(line)
			continue
		}
		op := parseCommand(line)
		f, ok := commandFn[op.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", op.code)
			continue
		}
		err, quit := f(intp, op)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) convert(line string) {
	var out strings.Builder
	result, err := signtex.Convert(strings.NewReader(line), &out, intp.opts)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	intp.lines++
	intp.stats.Signs += result.Signs
	intp.stats.Mismatches += result.Mismatches
	intp.stats.MissingGlyphs += result.MissingGlyphs
	pterm.Println(out.String())
	if result.Mismatches > 0 {
		pterm.Info.Printf("%d partial sign(s) left as text\n", result.Mismatches)
	}
}

// Op is a command of the interactive mode, e.g. ":set:rotate:0".
type Op struct {
	code  int
	arg   string
	value string
}

const (
	QUIT int = iota
	HELP
	SET
	SHOW
	SIGN
	STATS
)

var opMap = map[string]int{
	"quit":  QUIT,
	"q":     QUIT,
	"help":  HELP,
	"set":   SET,
	"show":  SHOW,
	"sign":  SIGN,
	"stats": STATS,
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:  quitOp,
	HELP:  helpOp,
	SET:   setOp,
	SHOW:  showOp,
	SIGN:  signOp,
	STATS: statsOp,
}

// parseCommand splits a command line of the form ":op:arg:value". Unknown
// commands are treated as a request for help. The value may contain further
// colons.
func parseCommand(line string) *Op {
	c := strings.SplitN(strings.TrimSpace(strings.TrimPrefix(line, ":")), ":", 3)
	code, ok := opMap[strings.ToLower(c[0])]
	if !ok {
		code = HELP
	}
	op := &Op{code: code, arg: getOptArg(c, 1), value: getOptArg(c, 2)}
	tracer().Debugf("parsed command: %v", c)
	return op
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return strings.TrimSpace(s[inx])
	}
	return ""
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}

func setOp(intp *Intp, op *Op) (error, bool) {
	conf := intp.opts.Config
	switch strings.ToLower(op.arg) {
	case "size":
		conf.SizeMacro = swtikz.MacroName(op.value)
	case "rotate":
		deg, err := strconv.Atoi(op.value)
		if err != nil {
			return fmt.Errorf("rotation not numeric: %v", op.value), false
		}
		conf.Rotation = deg
	case "mirror":
		on, err := parseSwitch(op.value)
		if err != nil {
			return err, false
		}
		conf.Mirror = on
	case "spelling":
		on, err := parseSwitch(op.value)
		if err != nil {
			return err, false
		}
		conf.Spelling = on
	default:
		return fmt.Errorf("unknown setting %q", op.arg), false
	}
	if err := conf.Validate(); err != nil {
		return err, false
	}
	intp.opts.Config = conf
	tracer().Infof("%s set to %s", op.arg, op.value)
	return nil, false
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, have %q", v)
}

func showOp(intp *Intp, op *Op) (error, bool) {
	conf := intp.opts.Config
	data := [][]string{
		{"Setting", "Value"},
		{"size", conf.SizeMacro},
		{"rotate", strconv.Itoa(conf.Rotation)},
		{"mirror", strconv.FormatBool(conf.Mirror)},
		{"spelling", strconv.FormatBool(conf.Spelling)},
		{"glyph checks", strconv.FormatBool(conf.Glyphs != nil)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// signOp decodes a single sign and lists its symbols.
func signOp(intp *Intp, op *Op) (error, bool) {
	if op.arg == "" {
		return errors.New("usage: :sign:<FSW>"), false
	}
	sign, err := fsw.ParseSign(op.arg)
	if err != nil {
		return err, false
	}
	pterm.Printf("Sign %s in lane %s\n", sign, sign.Lane)
	for i, group := range sign.Spelling {
		keys := make([]string, len(group))
		for j, id := range group {
			keys[j] = id.Key()
		}
		pterm.Printf("spelling group %d: %s\n", i+1, strings.Join(keys, " "))
	}
	data := [][]string{{"#", "Symbol", "Id", "Code-point", "x", "y"}}
	for i, p := range sign.Placements {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			p.Symbol.Key(),
			strconv.Itoa(int(p.Symbol)),
			fmt.Sprintf("%U", p.Symbol.Codepoint()),
			strconv.Itoa(p.X),
			strconv.Itoa(p.Y),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func statsOp(intp *Intp, op *Op) (error, bool) {
	data := [][]string{
		{"Lines", "Signs", "Partial signs", "Missing glyphs"},
		{
			strconv.Itoa(intp.lines),
			strconv.Itoa(intp.stats.Signs),
			strconv.Itoa(intp.stats.Mismatches),
			strconv.Itoa(intp.stats.MissingGlyphs),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}
