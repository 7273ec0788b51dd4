package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/lrzero/lr"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	grammar *string
	trace   *string
	debug   *bool
	noColor *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "lr0",
	Short: "Construct LR(0) parser tables for a grammar and trace parses",
	Long: `lr0 builds the canonical collection of LR(0) item sets for a grammar,
derives ACTION and GOTO tables from it, and runs a shift-reduce parser on
input sequences of terminals, printing every step.

Grammars are read from a file given with --grammar, one line per non-terminal:

    E -> E + T | T

Without --grammar the classic expression grammar is used.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(*rootFlags.debug, *rootFlags.noColor)
		initDisplay(*rootFlags.noColor)
		initTracing(*rootFlags.trace)
	},
}

func init() {
	rootFlags.grammar = rootCmd.PersistentFlags().StringP("grammar", "g", "", "grammar file (default: expression grammar)")
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
	rootFlags.debug = rootCmd.PersistentFlags().Bool("debug", false, "log debug messages")
	rootFlags.noColor = rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// We provide the classic expression grammar as a default.
//
//  S ➞ E
//  E ➞ E + T  |  T
//  T ➞ T * F  |  F
//  F ➞ ( E )  |  id
//
// It is not LR(0): the tables have shift/reduce conflicts in 3 states.
const exprGrammar = `# expression grammar
S -> E
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

// loadGrammar reads the grammar given by flag --grammar.
func loadGrammar() (*lr.Grammar, error) {
	path := *rootFlags.grammar
	if path == "" {
		return lr.ReadGrammar("Expr", strings.NewReader(exprGrammar))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open grammar %s: %w", path, err)
	}
	defer f.Close()
	return lr.ReadGrammar(path, f)
}

// generate loads the grammar and creates the parser tables. Conflicts are
// logged as warnings.
func generate() (*lr.TableGenerator, error) {
	g, err := loadGrammar()
	if err != nil {
		return nil, err
	}
	g.Dump()
	lrgen := lr.NewTableGenerator(g)
	lrgen.CreateTables()
	log.Info("tables created", "grammar", g.Name, "states", lrgen.CFSM().Size())
	for _, c := range lrgen.Conflicts() {
		log.Warn("conflict", "kind", c.Kind(), "state", c.State, "terminal", c.Terminal.Name,
			"actions", lrgen.ActionTable().CellString(c.State, c.Terminal))
	}
	return lrgen, nil
}
