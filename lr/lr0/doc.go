/*
Package lr0 provides an LR(0) shift-reduce parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The parser drives a stack
machine over these tables and records every step it takes.

The main focus for this implementation is demonstration and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Lists")
	b.LHS("S").T("(").N("L").T(")").End()  // S ➞ ( L )
	b.LHS("S").T("x").End()                // S ➞ x
	b.LHS("L").N("S").End()                // L ➞ S
	b.LHS("L").N("L").T(",").N("S").End()  // L ➞ L , S
	g, err := b.Grammar()

This grammar is subjected to table generation.

	lrgen := lr.NewTableGenerator(g)
	lrgen.CreateTables()
	if lrgen.HasConflicts { ... }  // conflicted cells will reject

Finally parse some input, given as a sequence of terminal names:

	p := lr0.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	trace, err := p.Parse([]string{"(", "x", ",", "x", ")"})
	fmt.Println(trace)

The end-of-input marker is appended by the parser. A parser does not hold any
state of a parse run and may be used from concurrent goroutines.

Conflicts

Tables of a grammar which is not LR(0) contain cells with more than one
action. Reaching such a cell is a syntax error, unless the parser has been
configured with a conflict resolver:

	p := lr0.NewParser(g, gotoT, actionT, lr0.ResolveConflicts(lr0.PreferShift))

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr0

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrzero.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.lr")
}
