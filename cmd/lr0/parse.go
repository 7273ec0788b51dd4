package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/lrzero/lr"
	"github.com/npillmayer/lrzero/lr/lr0"
	"github.com/npillmayer/lrzero/lr/scanner"
	"github.com/npillmayer/lrzero/lr/scanner/lexmach"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Flags shared by commands parse and repl.
var parseFlags = struct {
	input       string
	lexer       string
	preferShift bool
	tree        bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse [terminal ...]",
		Short: "Parse a sequence of terminals and print the trace",
		Example: `  lr0 parse id '*' id + id --prefer-shift
  lr0 parse --input 'alpha * (beta + gamma)' --prefer-shift --tree
  lr0 parse --input 'x * 42' --lexer go -g numbers.txt`,
		RunE: runParse,
	}
	cmd.Flags().StringVarP(&parseFlags.input, "input", "i", "", "input text, tokenized with a lexer derived from the grammar")
	addParserFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func addParserFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&parseFlags.preferShift, "prefer-shift", false, "resolve shift/reduce conflicts in favour of shift")
	cmd.Flags().BoolVar(&parseFlags.tree, "tree", false, "print the parse tree of an accepted input")
	cmd.Flags().StringVar(&parseFlags.lexer, "lexer", "lexmachine", "tokenizer for input text [lexmachine|go]")
}

func runParse(cmd *cobra.Command, args []string) error {
	if parseFlags.input != "" && len(args) > 0 {
		return fmt.Errorf("either give terminals as arguments or --input, not both")
	}
	lrgen, err := generate()
	if err != nil {
		return err
	}
	p := newParser(lrgen)
	input := args
	if parseFlags.input != "" {
		if input, err = tokenize(lrgen.Grammar(), parseFlags.input); err != nil {
			return err
		}
	}
	return parseAndPrint(p, input)
}

func newParser(lrgen *lr.TableGenerator) *lr0.Parser {
	var opts []lr0.Option
	if parseFlags.preferShift {
		opts = append(opts, lr0.ResolveConflicts(lr0.PreferShift))
	}
	return lr0.NewParser(lrgen.Grammar(), lrgen.GotoTable(), lrgen.ActionTable(), opts...)
}

// tokenize splits an input text into terminal names of g, using the
// tokenizer selected by flag --lexer.
func tokenize(g *lr.Grammar, text string) ([]string, error) {
	tok, err := newTokenizer(g, text)
	if err != nil {
		return nil, err
	}
	var scanErr error
	tok.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	names, err := scanner.TerminalNames(tok, g)
	if err == nil {
		err = scanErr
	}
	if err != nil {
		return nil, fmt.Errorf("cannot tokenize input: %w", err)
	}
	log.Debug("tokenized", "lexer", parseFlags.lexer, "input", text, "terminals", strings.Join(names, " "))
	return names, nil
}

// newTokenizer creates either a lexer derived from the terminals of g, or a
// tokenizer for Go-like tokens, which maps token classes to terminals
// "id", "number" and "string".
func newTokenizer(g *lr.Grammar, text string) (scanner.Tokenizer, error) {
	switch parseFlags.lexer {
	case "go":
		return scanner.GoTokenizer(g.Name, strings.NewReader(text),
			scanner.SkipComments(true), scanner.UnifyStrings(true)), nil
	case "lexmachine", "":
		lm, err := lexmach.ForGrammar(g)
		if err != nil {
			return nil, fmt.Errorf("cannot create lexer for grammar %s: %w", g.Name, err)
		}
		scan, err := lm.Scanner(text)
		if err != nil {
			return nil, err
		}
		return scan, nil
	}
	return nil, fmt.Errorf("unknown lexer %q, use 'lexmachine' or 'go'", parseFlags.lexer)
}

func parseAndPrint(p *lr0.Parser, input []string) error {
	trace, err := p.Parse(input)
	if errors.Is(err, lr0.ErrUnknownTerminal) {
		return err
	}
	printTrace(trace)
	if err != nil {
		var serr *lr0.SyntaxError
		if errors.As(err, &serr) && serr.Conflict && !parseFlags.preferShift {
			pterm.Info.Println("conflicted cell reached; try --prefer-shift")
		}
		pterm.Error.Println(err.Error())
		return nil
	}
	pterm.Success.Printf("accepted after %d steps\n", len(trace))
	if parseFlags.tree {
		tree, err := lr0.BuildTree(p.G, trace)
		if err != nil {
			return err
		}
		printTree(tree)
	}
	return nil
}

func printTrace(trace lr0.Trace) {
	data := pterm.TableData{{"Stack", "Input", "Action", "Output"}}
	for _, step := range trace {
		data = append(data, []string{
			step.StackString(),
			strings.Join(step.Input, " "),
			step.Action.String(),
			step.Note,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printTree(tree *lr0.Node) {
	var ll pterm.LeveledList
	tree.Walk(func(node *lr0.Node, level int) {
		text := node.Symbol.Name
		if !node.IsLeaf() {
			text = fmt.Sprintf("%s %v", text, node.Span)
		}
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	})
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}
