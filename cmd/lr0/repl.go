package main

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/lr0"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse input lines",
		Long: `repl reads input lines and parses each of them, printing the trace.
Lines are tokenized with a lexer derived from the terminals of the grammar,
or with a tokenizer for Go-like tokens (--lexer go).

Commands:
  :trace <level>   set the trace level [Debug|Info|Error]
  :quit            leave (or <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	addParserFlags(cmd)
	rootCmd.AddCommand(cmd)
}

// Intp is our interpreter object
type Intp struct {
	g      *lr.Grammar
	parser *lr0.Parser
	repl   *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	lrgen, err := generate()
	if err != nil {
		return err
	}
	repl, err := readline.New("lr0> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{
		g:      lrgen.Grammar(),
		parser: newParser(lrgen),
		repl:   repl,
	}
	pterm.Info.Printf("Welcome to the LR(0) REPL for grammar %s\n", intp.g.Name)
	pterm.Info.Println("Quit with <ctrl>D")
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
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// Eval parses a line of input or executes a command.
func (intp *Intp) Eval(line string) bool {
	if strings.HasPrefix(line, ":") {
		args := strings.Fields(line)
		switch args[0] {
		case ":quit", ":q":
			return true
		case ":trace":
			if len(args) == 2 {
				tracer().SetTraceLevel(tracing.TraceLevelFromString(args[1]))
				return false
			}
		}
		pterm.Error.Printf("unknown command %q\n", line)
		return false
	}
	input, err := tokenize(intp.g, line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	if err = parseAndPrint(intp.parser, input); err != nil {
		log.Error("parse", "err", err)
	}
	return false
}
